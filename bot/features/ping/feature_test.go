package ping

import (
	"context"
	"errors"
	"testing"
	"time"

	"coinbot/bot/common"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestFeature() *Feature {
	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	calls := 0
	return &Feature{
		heartbeat: func() time.Duration { return 42 * time.Millisecond },
		now: func() time.Time {
			calls++
			return base.Add(time.Duration(calls) * 120 * time.Millisecond)
		},
	}
}

func TestHandlePing(t *testing.T) {
	replier := &common.RecordingReplier{}

	err := newTestFeature().HandlePing(context.Background(), &common.Invocation{Command: "ping"}, replier)
	require.NoError(t, err)

	require.Len(t, replier.Replies, 1)
	assert.Equal(t, "Calculating ping...", replier.Replies[0].Content)

	require.Len(t, replier.Edits, 1)
	embed := replier.Edits[0].Embed
	require.NotNil(t, embed)
	assert.Equal(t, "42ms", embed.Fields[0].Value)
	assert.Equal(t, "120ms", embed.Fields[1].Value)
}

func TestHandlePing_ReplyFails(t *testing.T) {
	replier := &common.RecordingReplier{Err: errors.New("gateway closed")}

	err := newTestFeature().HandlePing(context.Background(), &common.Invocation{Command: "ping"}, replier)
	require.Error(t, err)

	_, userCaused := common.UserMessage(err)
	assert.False(t, userCaused)
	assert.Empty(t, replier.Edits)
}
