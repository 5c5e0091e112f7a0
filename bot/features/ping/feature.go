package ping

import (
	"context"
	"fmt"
	"time"

	"coinbot/bot/common"

	"github.com/bwmarrin/discordgo"
)

// Feature measures gateway and reply latency
type Feature struct {
	heartbeat func() time.Duration
	now       func() time.Time
}

// New creates the ping feature reading heartbeat latency from the session
func New(session *discordgo.Session) *Feature {
	return &Feature{
		heartbeat: session.HeartbeatLatency,
		now:       time.Now,
	}
}

// HandlePing sends a placeholder, times the round trip, then edits the
// placeholder into the latency embed
func (f *Feature) HandlePing(ctx context.Context, inv *common.Invocation, replier common.Replier) error {
	start := f.now()
	if err := replier.Reply(&common.Reply{Content: "Calculating ping..."}); err != nil {
		return common.NewSystemError(err, "failed to send ping placeholder")
	}
	roundTrip := f.now().Sub(start)

	if err := replier.Edit(&common.Reply{Embed: buildPingEmbed(f.heartbeat(), roundTrip)}); err != nil {
		return common.NewSystemError(err, "failed to edit ping reply")
	}
	return nil
}

func buildPingEmbed(heartbeat, roundTrip time.Duration) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title: "🏓 Pong!",
		Color: common.ColorNeutral,
		Fields: []*discordgo.MessageEmbedField{
			{
				Name:   "Gateway",
				Value:  fmt.Sprintf("%dms", heartbeat.Milliseconds()),
				Inline: true,
			},
			{
				Name:   "Round Trip",
				Value:  fmt.Sprintf("%dms", roundTrip.Milliseconds()),
				Inline: true,
			},
		},
	}
}
