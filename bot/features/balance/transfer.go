package balance

import (
	"context"
	"fmt"

	"coinbot/bot/common"
	"coinbot/domain/entities"
	"coinbot/domain/services"
)

type direction string

const (
	directionDeposit  direction = "deposit"
	directionWithdraw direction = "withdraw"
)

// HandleDeposit moves coins from the wallet to the bank
func (f *Feature) HandleDeposit(ctx context.Context, inv *common.Invocation) (*common.Reply, error) {
	return f.handleTransfer(ctx, inv, directionDeposit)
}

// HandleWithdraw moves coins from the bank to the wallet
func (f *Feature) HandleWithdraw(ctx context.Context, inv *common.Invocation) (*common.Reply, error) {
	return f.handleTransfer(ctx, inv, directionWithdraw)
}

func (f *Feature) handleTransfer(ctx context.Context, inv *common.Invocation, dir direction) (*common.Reply, error) {
	if inv.Arg(0) == "" {
		return nil, common.NewUserError(fmt.Sprintf("Please specify an amount to %s.", dir), "missing amount")
	}

	amount, err := common.ParseAmount(inv.Arg(0))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", services.ErrInvalidAmount, err)
	}

	result, _, err := f.transfer(ctx, inv.UserID, dir, amount)
	if err != nil {
		return nil, err
	}
	return &common.Reply{Embed: buildTransferEmbed(dir, result)}, nil
}

// transfer runs the move and reads the balance afterwards in one unit of work
func (f *Feature) transfer(ctx context.Context, discordID int64, dir direction, amount common.Amount) (*entities.TransferResult, *entities.BalanceInfo, error) {
	uow := f.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, nil, common.NewSystemError(err, "failed to begin transaction")
	}
	defer uow.Rollback()

	ledger := f.economy.Ledger(uow)

	var (
		result *entities.TransferResult
		err    error
	)
	switch {
	case dir == directionDeposit && amount.All:
		result, err = ledger.DepositAll(ctx, discordID)
	case dir == directionDeposit:
		result, err = ledger.Deposit(ctx, discordID, amount.Value)
	case amount.All:
		result, err = ledger.WithdrawAll(ctx, discordID)
	default:
		result, err = ledger.Withdraw(ctx, discordID, amount.Value)
	}
	if err != nil {
		return nil, nil, err
	}

	info, err := ledger.GetBalance(ctx, discordID)
	if err != nil {
		return nil, nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, nil, common.NewSystemError(err, "failed to commit transaction")
	}
	return result, info, nil
}
