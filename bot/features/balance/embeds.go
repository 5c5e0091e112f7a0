package balance

import (
	"fmt"

	"coinbot/bot/common"
	"coinbot/domain/entities"

	"github.com/bwmarrin/discordgo"
)

func buildBalanceEmbed(name string, info *entities.BalanceInfo) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title: fmt.Sprintf("%s's Balance", name),
		Color: common.ColorNeutral,
		Description: fmt.Sprintf("%s %s\n%s %s / %s",
			common.WalletEmoji, common.FormatBalance(info.Balance),
			common.BankEmoji, common.FormatBalance(info.BankBalance), common.FormatBalance(info.MaxBankBalance),
		),
		Footer: &discordgo.MessageEmbedFooter{
			Text: fmt.Sprintf("Global Rank: #%s", common.FormatBalance(info.GlobalRank)),
		},
	}
}

func buildTransferEmbed(dir direction, result *entities.TransferResult) *discordgo.MessageEmbed {
	title := "Deposited"
	if dir == directionWithdraw {
		title = "Withdrawn"
	}

	embed := &discordgo.MessageEmbed{
		Title:       title,
		Color:       common.ColorNeutral,
		Description: common.FormatCoins(result.Amount),
		Fields: []*discordgo.MessageEmbedField{
			{
				Name:   "Current Wallet Balance",
				Value:  common.FormatCoins(result.Wallet),
				Inline: true,
			},
			{
				Name:   "Current Bank Balance",
				Value:  common.FormatCoins(result.Bank),
				Inline: true,
			},
		},
	}
	if result.Clipped() {
		embed.Footer = &discordgo.MessageEmbedFooter{
			Text: fmt.Sprintf("Your bank only had room for %s of %s.",
				common.FormatCoins(result.Amount), common.FormatCoins(result.Requested)),
		}
	}
	return embed
}

func transferConfirmation(dir direction, result *entities.TransferResult) string {
	verb := "Deposited"
	if dir == directionWithdraw {
		verb = "Withdrew"
	}
	return fmt.Sprintf("✅ %s %s.", verb, common.FormatCoins(result.Amount))
}
