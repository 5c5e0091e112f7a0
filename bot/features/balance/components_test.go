package balance

import (
	"testing"

	"coinbot/bot/common"
	"coinbot/domain/entities"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCustomID(t *testing.T) {
	tests := []struct {
		name     string
		customID string
		dir      direction
		owner    int64
		wantErr  bool
	}{
		{name: "deposit button", customID: "balance_deposit:42", dir: directionDeposit, owner: 42},
		{name: "withdraw button", customID: "balance_withdraw:42", dir: directionWithdraw, owner: 42},
		{name: "deposit modal", customID: "balance_deposit_modal:807822793327509544", dir: directionDeposit, owner: 807822793327509544},
		{name: "withdraw modal", customID: "balance_withdraw_modal:7", dir: directionWithdraw, owner: 7},
		{name: "no owner", customID: "balance_deposit", wantErr: true},
		{name: "bad owner", customID: "balance_deposit:abc", wantErr: true},
		{name: "unknown action", customID: "balance_gamble:1", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			dir, owner, err := parseCustomID(tt.customID)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.dir, dir)
			assert.Equal(t, tt.owner, owner)
		})
	}
}

func TestCustomIDsRoundTrip(t *testing.T) {
	for _, dir := range []direction{directionDeposit, directionWithdraw} {
		for _, id := range []string{buttonCustomID(dir, 99), modalCustomID(dir, 99)} {
			gotDir, owner, err := parseCustomID(id)
			require.NoError(t, err)
			assert.Equal(t, dir, gotDir)
			assert.Equal(t, int64(99), owner)
		}
	}
	assert.Equal(t, "balance_deposit_modal:99", modalCustomID(directionDeposit, 99))
}

func TestBuildTransferModal(t *testing.T) {
	modal := buildTransferModal(directionWithdraw, 5)

	assert.Equal(t, "balance_withdraw_modal:5", modal.CustomID)
	row := modal.Components[0].(discordgo.ActionsRow)
	input := row.Components[0].(discordgo.TextInput)
	assert.Equal(t, amountInputID, input.CustomID)
	assert.Equal(t, common.MaxAmountLength, input.MaxLength)
	assert.True(t, input.Required)
}

func TestModalValue(t *testing.T) {
	data := discordgo.ModalSubmitInteractionData{
		CustomID: "balance_deposit_modal:1",
		Components: []discordgo.MessageComponent{
			&discordgo.ActionsRow{
				Components: []discordgo.MessageComponent{
					&discordgo.TextInput{CustomID: amountInputID, Value: "2,500"},
				},
			},
		},
	}

	assert.Equal(t, "2,500", modalValue(data, amountInputID))
	assert.Equal(t, "", modalValue(data, "missing"))
}

func TestCheckOwner(t *testing.T) {
	interaction := &discordgo.Interaction{Member: &discordgo.Member{User: &discordgo.User{ID: "10"}}}

	id, err := checkOwner(interaction, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(10), id)

	_, err = checkOwner(interaction, 11)
	require.Error(t, err)
	_, userCaused := common.UserMessage(err)
	assert.True(t, userCaused)
}

func TestBuildEmbeds(t *testing.T) {
	info := &entities.BalanceInfo{DiscordID: 1, Balance: 12345, BankBalance: 1000, MaxBankBalance: 17373077, GlobalRank: 3}
	embed := buildBalanceEmbed("Alex", info)

	assert.Equal(t, "Alex's Balance", embed.Title)
	assert.Equal(t, "🪙 12,345\n🏦 1,000 / 17,373,077", embed.Description)
	assert.Equal(t, "Global Rank: #3", embed.Footer.Text)

	clipped := buildTransferEmbed(directionDeposit, &entities.TransferResult{Requested: 500, Amount: 200, Wallet: 300, Bank: 1000})
	require.NotNil(t, clipped.Footer)
	assert.Equal(t, "Your bank only had room for ⏣ 200 of ⏣ 500.", clipped.Footer.Text)

	withdrawn := buildTransferEmbed(directionWithdraw, &entities.TransferResult{Requested: 50, Amount: 50, Wallet: 60, Bank: 0})
	assert.Equal(t, "Withdrawn", withdrawn.Title)
	assert.Equal(t, "✅ Withdrew ⏣ 50.", transferConfirmation(directionWithdraw, &entities.TransferResult{Amount: 50}))
}
