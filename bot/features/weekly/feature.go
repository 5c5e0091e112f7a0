package weekly

import (
	"context"
	"fmt"

	"coinbot/application"
	"coinbot/bot/common"
	"coinbot/domain/entities"

	"github.com/bwmarrin/discordgo"
)

// Feature serves the weekly command
type Feature struct {
	uowFactory application.UnitOfWorkFactory
	economy    *application.Economy
}

// New creates the weekly feature
func New(uowFactory application.UnitOfWorkFactory, economy *application.Economy) *Feature {
	return &Feature{
		uowFactory: uowFactory,
		economy:    economy,
	}
}

// HandleWeekly claims the invoker's weekly reward
func (f *Feature) HandleWeekly(ctx context.Context, inv *common.Invocation) (*common.Reply, error) {
	uow := f.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, common.NewSystemError(err, "failed to begin transaction")
	}
	defer uow.Rollback()

	result, err := f.economy.Weekly(uow).Claim(ctx, inv.UserID)
	if err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, common.NewSystemError(err, "failed to commit transaction")
	}

	return &common.Reply{Embed: buildWeeklyEmbed(common.DisplayName(inv.User), result)}, nil
}

func buildWeeklyEmbed(name string, result *entities.WeeklyRewardResult) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Author: &discordgo.MessageEmbedAuthor{
			Name: fmt.Sprintf("%s's Weekly Coins", name),
		},
		Color:       common.ColorDark,
		Description: "Run this command every week to get a moderate sum of coins!",
		Fields: []*discordgo.MessageEmbedField{
			{
				Name:  "You received:",
				Value: fmt.Sprintf("• %s **%s**", common.WalletEmoji, common.FormatBalance(result.Total)),
			},
		},
		Footer: &discordgo.MessageEmbedFooter{
			Text: "Claim again in " + common.FormatDaysHours(result.NextClaimAt.Sub(result.LastClaimed)),
		},
	}
}
