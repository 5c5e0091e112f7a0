package bot

import (
	"context"
	"strings"

	"coinbot/bot/common"
	"coinbot/bot/features/balance"
	"coinbot/infrastructure/observability"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

const rateLimitedMessage = "⏳ Slow down! You're sending commands too quickly."

// route runs one command and sends its replies
type route func(ctx context.Context, inv *common.Invocation, replier common.Replier) error

// respond adapts a handler that builds a single reply
func respond(handler func(ctx context.Context, inv *common.Invocation) (*common.Reply, error)) route {
	return func(ctx context.Context, inv *common.Invocation, replier common.Replier) error {
		reply, err := handler(ctx, inv)
		if err != nil {
			return err
		}
		if err := replier.Reply(reply); err != nil {
			return common.NewSystemError(err, "failed to send reply")
		}
		return nil
	}
}

func (b *Bot) buildRoutes() map[string]route {
	return map[string]route{
		"balance":     respond(b.balance.HandleBalance),
		"deposit":     respond(b.balance.HandleDeposit),
		"withdraw":    respond(b.balance.HandleWithdraw),
		"daily":       respond(b.daily.HandleDaily),
		"weekly":      respond(b.weekly.HandleWeekly),
		"leaderboard": respond(b.leaderboard.HandleLeaderboard),
		"ping":        b.ping.HandlePing,
	}
}

// dispatch runs the command's route, replies with the error message on
// failure and records the outcome
func (b *Bot) dispatch(ctx context.Context, inv *common.Invocation, replier common.Replier, source string) {
	handle, ok := b.routes[inv.Command]
	if !ok {
		log.WithField("command", inv.Command).Warn("No route for command")
		return
	}

	err := handle(ctx, inv, replier)
	b.recordOutcome(inv.Command, source, err)
	if err != nil {
		common.HandleError(replier, inv.Command, inv.UserID, err)
	}
}

func (b *Bot) recordOutcome(command, source string, err error) {
	if b.recorder == nil {
		return
	}

	outcome := observability.OutcomeSuccess
	if err != nil {
		outcome = observability.OutcomeError
		if _, userCaused := common.UserMessage(err); userCaused {
			outcome = observability.OutcomeUserError
		}
	}
	b.recorder.RecordCommand(command, source, outcome)
}

func (b *Bot) allow(command, source, userID string) bool {
	if b.limiter == nil || b.limiter.Allow(userID) {
		return true
	}
	if b.recorder != nil {
		b.recorder.RecordCommand(command, source, observability.OutcomeRateLimited)
	}
	log.WithFields(log.Fields{
		"user_id": userID,
		"command": command,
		"source":  source,
	}).Debug("Rate limited")
	return false
}

// handleMessageCreate runs prefix commands
func (b *Bot) handleMessageCreate(s *discordgo.Session, m *discordgo.MessageCreate) {
	if m.Author == nil || m.Author.Bot {
		return
	}

	command, args, ok := parsePrefixCommand(m.Content, b.config.Prefix)
	if !ok {
		return
	}

	// Rejected prefix commands get no reply
	if !b.allow(command, observability.SourcePrefix, m.Author.ID) {
		return
	}

	inv, err := prefixInvocation(command, args, m.Message)
	if err != nil {
		log.WithError(err).WithField("author_id", m.Author.ID).Error("Invalid message author")
		return
	}

	b.dispatch(context.Background(), inv, &common.MessageReplier{Session: s, Message: m.Message}, observability.SourcePrefix)
}

func prefixInvocation(command string, args []string, m *discordgo.Message) (*common.Invocation, error) {
	userID, err := common.ParseUserID(m.Author.ID)
	if err != nil {
		return nil, err
	}

	inv := &common.Invocation{
		Command: command,
		User:    m.Author,
		UserID:  userID,
		GuildID: m.GuildID,
		Args:    args,
	}
	if len(m.Mentions) > 0 {
		inv.Target = m.Mentions[0]
	}
	return inv, nil
}

// handleInteractionCreate routes slash commands, buttons and modals
func (b *Bot) handleInteractionCreate(s *discordgo.Session, i *discordgo.InteractionCreate) {
	user := common.InteractionUser(i.Interaction)
	if user == nil {
		return
	}
	replier := &common.InteractionReplier{Session: s, Interaction: i.Interaction}

	switch i.Type {
	case discordgo.InteractionApplicationCommand:
		data := i.ApplicationCommandData()
		if !b.allow(data.Name, observability.SourceSlash, user.ID) {
			b.replyRateLimited(replier)
			return
		}

		inv, err := slashInvocation(i.Interaction, user)
		if err != nil {
			common.HandleError(replier, data.Name, 0, common.NewSystemError(err, "invalid interaction user"))
			return
		}
		b.dispatch(context.Background(), inv, replier, observability.SourceSlash)

	case discordgo.InteractionMessageComponent:
		customID := i.MessageComponentData().CustomID
		if !strings.HasPrefix(customID, balance.CustomIDPrefix) {
			return
		}
		if !b.allow("balance_button", observability.SourceComponent, user.ID) {
			b.replyRateLimited(replier)
			return
		}
		err := b.balance.HandleComponent(context.Background(), s, i)
		b.finishInteraction(replier, "balance_button", observability.SourceComponent, user.ID, err)

	case discordgo.InteractionModalSubmit:
		customID := i.ModalSubmitData().CustomID
		if !strings.HasPrefix(customID, balance.CustomIDPrefix) {
			return
		}
		if !b.allow("balance_modal", observability.SourceModalSubmit, user.ID) {
			b.replyRateLimited(replier)
			return
		}
		err := b.balance.HandleModalSubmit(context.Background(), s, i)
		b.finishInteraction(replier, "balance_modal", observability.SourceModalSubmit, user.ID, err)
	}
}

func (b *Bot) finishInteraction(replier common.Replier, command, source, userID string, err error) {
	b.recordOutcome(command, source, err)
	if err == nil {
		return
	}
	discordID, _ := common.ParseUserID(userID)
	common.HandleError(replier, command, discordID, err)
}

func (b *Bot) replyRateLimited(replier common.Replier) {
	if err := replier.Reply(&common.Reply{Content: rateLimitedMessage, Ephemeral: true}); err != nil {
		log.WithError(err).Error("Error sending rate limit response")
	}
}

func slashInvocation(i *discordgo.Interaction, user *discordgo.User) (*common.Invocation, error) {
	userID, err := common.ParseUserID(user.ID)
	if err != nil {
		return nil, err
	}

	data := i.ApplicationCommandData()
	inv := &common.Invocation{
		Command: data.Name,
		User:    user,
		UserID:  userID,
		GuildID: i.GuildID,
	}

	for _, opt := range data.Options {
		switch opt.Type {
		case discordgo.ApplicationCommandOptionUser:
			inv.Target = resolvedUser(data, opt.Value)
		case discordgo.ApplicationCommandOptionString:
			inv.Args = append(inv.Args, opt.StringValue())
		}
	}
	return inv, nil
}

// resolvedUser prefers the full user Discord sent with the interaction
func resolvedUser(data discordgo.ApplicationCommandInteractionData, value interface{}) *discordgo.User {
	id, _ := value.(string)
	if data.Resolved != nil {
		if u, ok := data.Resolved.Users[id]; ok {
			return u
		}
	}
	return &discordgo.User{ID: id}
}
