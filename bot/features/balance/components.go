package balance

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"coinbot/bot/common"
	"coinbot/domain/entities"
	"coinbot/domain/services"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

// CustomIDPrefix marks every button and modal owned by this feature
const CustomIDPrefix = "balance_"

const (
	amountInputID = "amount"
	modalSuffix   = "_modal"
)

func buttonCustomID(dir direction, ownerID int64) string {
	return fmt.Sprintf("%s%s:%d", CustomIDPrefix, dir, ownerID)
}

func modalCustomID(dir direction, ownerID int64) string {
	return fmt.Sprintf("%s%s%s:%d", CustomIDPrefix, dir, modalSuffix, ownerID)
}

// parseCustomID splits "balance_<dir>[_modal]:<owner>"
func parseCustomID(customID string) (direction, int64, error) {
	action, owner, ok := strings.Cut(strings.TrimPrefix(customID, CustomIDPrefix), ":")
	if !ok {
		return "", 0, fmt.Errorf("malformed custom id %q", customID)
	}

	dir := direction(strings.TrimSuffix(action, modalSuffix))
	if dir != directionDeposit && dir != directionWithdraw {
		return "", 0, fmt.Errorf("unknown balance action %q", action)
	}

	ownerID, err := strconv.ParseInt(owner, 10, 64)
	if err != nil {
		return "", 0, fmt.Errorf("invalid owner in custom id %q: %w", customID, err)
	}
	return dir, ownerID, nil
}

func buildBalanceComponents(info *entities.BalanceInfo) []discordgo.MessageComponent {
	return []discordgo.MessageComponent{
		discordgo.ActionsRow{
			Components: []discordgo.MessageComponent{
				discordgo.Button{
					Label:    "Withdraw",
					Style:    discordgo.SecondaryButton,
					CustomID: buttonCustomID(directionWithdraw, info.DiscordID),
					Disabled: info.BankBalance <= 0,
				},
				discordgo.Button{
					Label:    "Deposit",
					Style:    discordgo.SecondaryButton,
					CustomID: buttonCustomID(directionDeposit, info.DiscordID),
					Disabled: info.Balance <= 0,
				},
			},
		},
	}
}

func buildTransferModal(dir direction, ownerID int64) *discordgo.InteractionResponseData {
	title := "Deposit to Bank"
	placeholder := "Amount to deposit, or all"
	if dir == directionWithdraw {
		title = "Withdraw from Bank"
		placeholder = "Amount to withdraw, or all"
	}

	return &discordgo.InteractionResponseData{
		CustomID: modalCustomID(dir, ownerID),
		Title:    title,
		Components: []discordgo.MessageComponent{
			discordgo.ActionsRow{
				Components: []discordgo.MessageComponent{
					discordgo.TextInput{
						CustomID:    amountInputID,
						Label:       "Amount",
						Style:       discordgo.TextInputShort,
						Placeholder: placeholder,
						Required:    true,
						MinLength:   1,
						MaxLength:   common.MaxAmountLength,
					},
				},
			},
		},
	}
}

// modalValue finds a text input's value in a submitted modal
func modalValue(data discordgo.ModalSubmitInteractionData, customID string) string {
	for _, row := range data.Components {
		actionsRow, ok := row.(*discordgo.ActionsRow)
		if !ok {
			continue
		}
		for _, component := range actionsRow.Components {
			if input, ok := component.(*discordgo.TextInput); ok && input.CustomID == customID {
				return input.Value
			}
		}
	}
	return ""
}

// checkOwner rejects a balance button pressed by someone other than its owner
func checkOwner(i *discordgo.Interaction, ownerID int64) (int64, error) {
	user := common.InteractionUser(i)
	if user == nil {
		return 0, common.NewSystemError(errors.New("no user on interaction"), "interaction without user")
	}
	invokerID, err := common.ParseUserID(user.ID)
	if err != nil {
		return 0, common.NewSystemError(err, "invalid invoker id")
	}
	if invokerID != ownerID {
		return 0, common.NewUserError("These buttons belong to someone else. Run the balance command yourself!", "balance button used by non-owner")
	}
	return invokerID, nil
}

// HandleComponent opens the deposit or withdraw modal
func (f *Feature) HandleComponent(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate) error {
	dir, ownerID, err := parseCustomID(i.MessageComponentData().CustomID)
	if err != nil {
		return common.NewSystemError(err, "unroutable balance button")
	}
	if _, err := checkOwner(i.Interaction, ownerID); err != nil {
		return err
	}

	return s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseModal,
		Data: buildTransferModal(dir, ownerID),
	})
}

// HandleModalSubmit performs the transfer, refreshes the balance message and
// confirms privately
func (f *Feature) HandleModalSubmit(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate) error {
	data := i.ModalSubmitData()
	dir, ownerID, err := parseCustomID(data.CustomID)
	if err != nil {
		return common.NewSystemError(err, "unroutable balance modal")
	}
	if _, err := checkOwner(i.Interaction, ownerID); err != nil {
		return err
	}

	amount, err := common.ParseAmount(modalValue(data, amountInputID))
	if err != nil {
		return fmt.Errorf("%w: %v", services.ErrInvalidAmount, err)
	}

	result, info, err := f.transfer(ctx, ownerID, dir, amount)
	if err != nil {
		return err
	}

	name := f.names(i.GuildID, common.FormatUserID(ownerID))
	err = s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseUpdateMessage,
		Data: &discordgo.InteractionResponseData{
			Embeds:     []*discordgo.MessageEmbed{buildBalanceEmbed(name, info)},
			Components: buildBalanceComponents(info),
		},
	})
	if err != nil {
		return common.NewSystemError(err, "failed to update balance message")
	}

	_, err = s.FollowupMessageCreate(i.Interaction, false, &discordgo.WebhookParams{
		Content: transferConfirmation(dir, result),
		Flags:   discordgo.MessageFlagsEphemeral,
	})
	if err != nil {
		log.WithError(err).Warn("Failed to send transfer confirmation")
	}
	return nil
}
