package events

import (
	"context"
	"testing"
	"time"

	"coinbot/domain/entities"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func receive(t *testing.T, ch <-chan Event) Event {
	t.Helper()
	select {
	case ev := <-ch:
		return ev
	case <-time.After(2 * time.Second):
		t.Fatal("event was not delivered")
		return nil
	}
}

func TestTransactionalBus_FlushDeliversAfterCommit(t *testing.T) {
	bus := NewBus()
	tx := NewTransactionalBus(bus)

	received := make(chan Event, 2)
	bus.Subscribe(EventTypeBalanceChange, func(ctx context.Context, event Event) {
		received <- event
	})

	event := BalanceChangeEvent{
		DiscordID:       123456,
		OldBalance:      1000,
		NewBalance:      101000,
		ChangeAmount:    100000,
		TransactionType: entities.TransactionTypeDailyReward,
	}
	require.NoError(t, tx.Publish(event))
	assert.Equal(t, 1, tx.Pending())

	select {
	case <-received:
		t.Fatal("event delivered before flush")
	case <-time.After(50 * time.Millisecond):
	}

	tx.Flush(context.Background())
	assert.Equal(t, 0, tx.Pending())

	got, ok := receive(t, received).(BalanceChangeEvent)
	require.True(t, ok)
	assert.Equal(t, event, got)
}

func TestTransactionalBus_DiscardDropsEvents(t *testing.T) {
	bus := NewBus()
	tx := NewTransactionalBus(bus)

	received := make(chan Event, 1)
	bus.Subscribe(EventTypeRewardClaimed, func(ctx context.Context, event Event) {
		received <- event
	})

	require.NoError(t, tx.Publish(RewardClaimedEvent{DiscordID: 1, Kind: entities.RewardKindWeekly, Total: 2000000}))
	tx.Discard()
	tx.Flush(context.Background())

	select {
	case ev := <-received:
		t.Fatalf("unexpected event %v", ev)
	case <-time.After(100 * time.Millisecond):
	}
}

func TestBus_RoutesByTypeAndSurvivesPanics(t *testing.T) {
	bus := NewBus()

	balance := make(chan Event, 1)
	rewards := make(chan Event, 1)
	bus.Subscribe(EventTypeBalanceChange, func(ctx context.Context, event Event) {
		panic("boom")
	})
	bus.Subscribe(EventTypeBalanceChange, func(ctx context.Context, event Event) {
		balance <- event
	})
	bus.Subscribe(EventTypeRewardClaimed, func(ctx context.Context, event Event) {
		rewards <- event
	})

	bus.Emit(context.Background(), BalanceChangeEvent{DiscordID: 7})

	assert.Equal(t, EventTypeBalanceChange, receive(t, balance).Type())
	select {
	case ev := <-rewards:
		t.Fatalf("reward handler received %v", ev)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestFlush_DetachesFromCancellation(t *testing.T) {
	bus := NewBus()
	tx := NewTransactionalBus(bus)

	ctxErr := make(chan error, 1)
	bus.Subscribe(EventTypeRewardClaimed, func(ctx context.Context, event Event) {
		ctxErr <- ctx.Err()
	})

	ctx, cancel := context.WithCancel(context.Background())
	require.NoError(t, tx.Publish(RewardClaimedEvent{DiscordID: 1}))
	cancel()
	tx.Flush(ctx)

	select {
	case err := <-ctxErr:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("event was not delivered")
	}
}
