package daily

import (
	"fmt"
	"strconv"
	"time"

	"coinbot/bot/common"
	"coinbot/domain/entities"

	"github.com/bwmarrin/discordgo"
)

const blankField = "\u200b"

func buildDailyEmbed(name string, result *entities.DailyRewardResult) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title:       fmt.Sprintf("%s's Daily Coins", name),
		Color:       common.ColorNeutral,
		Description: fmt.Sprintf("> %s was placed in your wallet!", common.FormatCoins(result.Total)),
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Base", Value: common.FormatCoins(result.Amount), Inline: true},
			{Name: "Streak Bonus", Value: common.FormatCoins(result.StreakBonus), Inline: true},
			{Name: blankField, Value: blankField, Inline: true},
			{Name: "Next Daily", Value: common.FormatDiscordTimestamp(result.NextClaimAt, "R"), Inline: true},
			{Name: "Streak", Value: strconv.Itoa(result.Streak), Inline: true},
			{Name: blankField, Value: blankField, Inline: true},
		},
	}
}

func buildStreakReminderEmbed(streak int, expiresAt time.Time) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title: "🔥 Your daily streak is about to reset",
		Color: common.ColorWarning,
		Description: fmt.Sprintf("Your **%d** day streak resets %s. Claim your daily before then to keep it!",
			streak, common.FormatDiscordTimestamp(expiresAt, "R")),
	}
}
