package bot

import (
	"fmt"

	"github.com/bwmarrin/discordgo"
)

func slashCommands() []*discordgo.ApplicationCommand {
	amountOption := func(verb string) []*discordgo.ApplicationCommandOption {
		return []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "amount",
				Description: fmt.Sprintf("Amount to %s, or \"all\"", verb),
				Required:    true,
				MaxLength:   16,
			},
		}
	}

	return []*discordgo.ApplicationCommand{
		{
			Name:        "balance",
			Description: "Check your wallet, bank and global rank",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionUser,
					Name:        "user",
					Description: "User to check (defaults to you)",
					Required:    false,
				},
			},
		},
		{
			Name:        "daily",
			Description: "Claim your daily coins",
		},
		{
			Name:        "weekly",
			Description: "Claim your weekly coins",
		},
		{
			Name:        "deposit",
			Description: "Move coins from your wallet into your bank",
			Options:     amountOption("deposit"),
		},
		{
			Name:        "withdraw",
			Description: "Move coins from your bank into your wallet",
			Options:     amountOption("withdraw"),
		},
		{
			Name:        "ping",
			Description: "Check the bot's latency",
		},
		{
			Name:        "leaderboard",
			Description: "Show the richest wallets",
		},
	}
}

// registerCommands replaces the registered slash commands, scoped to the
// configured guild when one is set
func (b *Bot) registerCommands() error {
	commands := slashCommands()
	_, err := b.session.ApplicationCommandBulkOverwrite(b.session.State.User.ID, b.config.GuildID, commands)
	if err != nil {
		return fmt.Errorf("cannot register commands: %w", err)
	}
	return nil
}
