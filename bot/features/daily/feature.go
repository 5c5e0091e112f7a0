package daily

import (
	"context"
	"fmt"
	"time"

	"coinbot/application"
	"coinbot/bot/common"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

// Feature serves the daily command and the streak reminder DMs
type Feature struct {
	session    *discordgo.Session
	uowFactory application.UnitOfWorkFactory
	economy    *application.Economy
}

// New creates the daily feature
func New(session *discordgo.Session, uowFactory application.UnitOfWorkFactory, economy *application.Economy) *Feature {
	return &Feature{
		session:    session,
		uowFactory: uowFactory,
		economy:    economy,
	}
}

// HandleDaily claims the invoker's daily reward
func (f *Feature) HandleDaily(ctx context.Context, inv *common.Invocation) (*common.Reply, error) {
	uow := f.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, common.NewSystemError(err, "failed to begin transaction")
	}
	defer uow.Rollback()

	result, err := f.economy.Daily(uow).Claim(ctx, inv.UserID)
	if err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, common.NewSystemError(err, "failed to commit transaction")
	}

	log.WithFields(log.Fields{
		"user_id": inv.UserID,
		"streak":  result.Streak,
		"total":   result.Total,
	}).Info("Daily reward claimed")

	return &common.Reply{Embed: buildDailyEmbed(common.DisplayName(inv.User), result)}, nil
}

// SendStreakReminder DMs a user whose streak is about to reset
func (f *Feature) SendStreakReminder(ctx context.Context, discordID int64, streak int, expiresAt time.Time) error {
	channel, err := f.session.UserChannelCreate(common.FormatUserID(discordID), discordgo.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("failed to open DM channel with %d: %w", discordID, err)
	}

	if _, err := f.session.ChannelMessageSendEmbed(channel.ID, buildStreakReminderEmbed(streak, expiresAt), discordgo.WithContext(ctx)); err != nil {
		return fmt.Errorf("failed to send streak reminder to %d: %w", discordID, err)
	}
	return nil
}
