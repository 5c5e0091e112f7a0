package application

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	log "github.com/sirupsen/logrus"
)

// LeaderboardSize is how many wallets the leaderboard shows
const LeaderboardSize = 10

// SchedulerConfig selects which recurring jobs run
type SchedulerConfig struct {
	Location            *time.Location
	LeaderboardSchedule string // empty disables the leaderboard post
	RemindersEnabled    bool
	ReminderLead        time.Duration
}

// Scheduler runs the recurring economy jobs on cron schedules
type Scheduler struct {
	cron       *cron.Cron
	uowFactory UnitOfWorkFactory
	economy    *Economy
	poster     LeaderboardPoster
	reminders  StreakReminderSender
	config     SchedulerConfig
	ctx        context.Context
}

// NewScheduler creates the scheduler and registers its jobs
func NewScheduler(
	uowFactory UnitOfWorkFactory,
	economy *Economy,
	poster LeaderboardPoster,
	reminders StreakReminderSender,
	config SchedulerConfig,
) (*Scheduler, error) {
	if config.Location == nil {
		config.Location = time.UTC
	}

	s := &Scheduler{
		cron:       cron.New(cron.WithLocation(config.Location)),
		uowFactory: uowFactory,
		economy:    economy,
		poster:     poster,
		reminders:  reminders,
		config:     config,
		ctx:        context.Background(),
	}

	if config.LeaderboardSchedule != "" && poster != nil {
		if _, err := s.cron.AddFunc(config.LeaderboardSchedule, s.leaderboardTask); err != nil {
			return nil, fmt.Errorf("register leaderboard job: %w", err)
		}
	}
	if config.RemindersEnabled && reminders != nil {
		if _, err := s.cron.AddFunc("@hourly", s.streakReminderTask); err != nil {
			return nil, fmt.Errorf("register streak reminder job: %w", err)
		}
	}

	return s, nil
}

// Jobs returns the number of registered jobs
func (s *Scheduler) Jobs() int {
	return len(s.cron.Entries())
}

// Start runs the cron loop until ctx is cancelled or the returned stop
// function is called
func (s *Scheduler) Start(ctx context.Context) func() {
	s.ctx = ctx
	s.cron.Start()
	log.WithField("jobs", s.Jobs()).Info("Scheduler started")

	return func() {
		stopCtx := s.cron.Stop()
		<-stopCtx.Done()
		log.Info("Scheduler stopped")
	}
}

func (s *Scheduler) leaderboardTask() {
	if err := s.PostLeaderboard(s.ctx); err != nil {
		log.Errorf("Error posting scheduled leaderboard: %v", err)
	}
}

func (s *Scheduler) streakReminderTask() {
	sent, err := s.SendStreakReminders(s.ctx)
	if err != nil {
		log.Errorf("Error sending streak reminders: %v", err)
		return
	}
	log.WithField("sent", sent).Info("Streak reminders processed")
}

// PostLeaderboard reads the top wallets and hands them to the poster
func (s *Scheduler) PostLeaderboard(ctx context.Context) error {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	entries, err := s.economy.Ledger(uow).GetLeaderboard(ctx, LeaderboardSize)
	if err != nil {
		return fmt.Errorf("failed to get leaderboard: %w", err)
	}

	// Read-only, release the connection before calling Discord
	uow.Rollback()

	if len(entries) == 0 {
		log.Debug("Leaderboard is empty, skipping post")
		return nil
	}

	if err := s.poster.PostLeaderboard(ctx, entries); err != nil {
		return fmt.Errorf("failed to post leaderboard: %w", err)
	}

	log.WithFields(log.Fields{
		"entries": len(entries),
		"source":  "scheduler",
	}).Info("Leaderboard posted")
	return nil
}

// SendStreakReminders DMs every user whose streak resets in the hour after
// the configured lead. Individual send failures are logged and skipped.
func (s *Scheduler) SendStreakReminders(ctx context.Context) (int, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	states, err := s.economy.Daily(uow).GetExpiringStreaks(ctx, s.config.ReminderLead)
	if err != nil {
		return 0, fmt.Errorf("failed to get expiring streaks: %w", err)
	}
	uow.Rollback()

	sent := 0
	for _, state := range states {
		if err := s.reminders.SendStreakReminder(ctx, state.DiscordID, state.Streak, state.StreakExpiresAt()); err != nil {
			log.WithFields(log.Fields{
				"discordID": state.DiscordID,
				"error":     err,
			}).Warn("Failed to send streak reminder")
			continue
		}
		sent++
	}
	return sent, nil
}
