package leaderboard

import (
	"context"
	"fmt"
	"strings"

	"coinbot/application"
	"coinbot/bot/common"
	"coinbot/domain/entities"

	"github.com/bwmarrin/discordgo"
)

// Feature serves the leaderboard command and posts the scheduled leaderboard
type Feature struct {
	session    *discordgo.Session
	uowFactory application.UnitOfWorkFactory
	economy    *application.Economy
	channelID  string
}

// New creates the leaderboard feature. channelID is where scheduled posts go.
func New(session *discordgo.Session, uowFactory application.UnitOfWorkFactory, economy *application.Economy, channelID string) *Feature {
	return &Feature{
		session:    session,
		uowFactory: uowFactory,
		economy:    economy,
		channelID:  channelID,
	}
}

// HandleLeaderboard shows the richest wallets
func (f *Feature) HandleLeaderboard(ctx context.Context, inv *common.Invocation) (*common.Reply, error) {
	uow := f.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, common.NewSystemError(err, "failed to begin transaction")
	}
	defer uow.Rollback()

	entries, err := f.economy.Ledger(uow).GetLeaderboard(ctx, application.LeaderboardSize)
	if err != nil {
		return nil, err
	}

	return &common.Reply{Embed: buildLeaderboardEmbed(entries, inv.UserID)}, nil
}

// PostLeaderboard sends the leaderboard to the configured channel
func (f *Feature) PostLeaderboard(ctx context.Context, entries []*entities.LeaderboardEntry) error {
	if f.channelID == "" {
		return fmt.Errorf("no leaderboard channel configured")
	}

	embed := buildLeaderboardEmbed(entries, 0)
	embed.Title = "📊 Daily Leaderboard"
	if _, err := f.session.ChannelMessageSendEmbed(f.channelID, embed, discordgo.WithContext(ctx)); err != nil {
		return fmt.Errorf("failed to post leaderboard: %w", err)
	}
	return nil
}

// buildLeaderboardEmbed bolds the viewer's row when viewerID is set
func buildLeaderboardEmbed(entries []*entities.LeaderboardEntry, viewerID int64) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title: "🏆 Richest Wallets",
		Color: common.ColorNeutral,
	}

	if len(entries) == 0 {
		embed.Description = "Nobody has any coins yet. Claim your `daily` to get started!"
		return embed
	}

	var b strings.Builder
	for _, entry := range entries {
		line := fmt.Sprintf("%s %s · %s", rankLabel(entry.Rank), common.GetUserMention(entry.DiscordID), common.FormatCoins(entry.Balance))
		if entry.DiscordID == viewerID {
			line = "**" + line + "**"
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	embed.Description = strings.TrimSuffix(b.String(), "\n")
	return embed
}

func rankLabel(rank int64) string {
	switch rank {
	case 1:
		return "🥇"
	case 2:
		return "🥈"
	case 3:
		return "🥉"
	default:
		return fmt.Sprintf("`#%d`", rank)
	}
}
