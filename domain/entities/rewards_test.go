package entities

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDailyRewardState_HasClaimed(t *testing.T) {
	fresh := &DailyRewardState{LastClaimed: time.Unix(0, 0).UTC()}
	assert.False(t, fresh.HasClaimed())

	claimed := &DailyRewardState{LastClaimed: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)}
	assert.True(t, claimed.HasClaimed())
	assert.Equal(t, time.Date(2024, 3, 3, 12, 0, 0, 0, time.UTC), claimed.StreakExpiresAt())
}

func TestUserBalance_BankRoom(t *testing.T) {
	tests := []struct {
		name     string
		bank     int64
		maxBank  int64
		expected int64
	}{
		{name: "empty bank", bank: 0, maxBank: 1000, expected: 1000},
		{name: "partly full", bank: 400, maxBank: 1000, expected: 600},
		{name: "full", bank: 1000, maxBank: 1000, expected: 0},
		{name: "above a lowered cap", bank: 1500, maxBank: 1000, expected: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u := &UserBalance{BankBalance: tt.bank}
			assert.Equal(t, tt.expected, u.BankRoom(tt.maxBank))
		})
	}
}
