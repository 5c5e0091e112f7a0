package balance

import (
	"context"

	"coinbot/bot/common"
	"coinbot/domain/entities"
)

// HandleBalance shows the wallet, bank and rank of the invoker or the mentioned user
func (f *Feature) HandleBalance(ctx context.Context, inv *common.Invocation) (*common.Reply, error) {
	target := inv.User
	if inv.Target != nil {
		target = inv.Target
	}

	targetID, err := common.ParseUserID(target.ID)
	if err != nil {
		return nil, common.NewSystemError(err, "invalid target user id")
	}

	info, err := f.getBalance(ctx, targetID)
	if err != nil {
		return nil, err
	}

	reply := &common.Reply{
		Embed: buildBalanceEmbed(f.names(inv.GuildID, target.ID), info),
	}
	if targetID == inv.UserID {
		reply.Components = buildBalanceComponents(info)
	}
	return reply, nil
}

func (f *Feature) getBalance(ctx context.Context, discordID int64) (*entities.BalanceInfo, error) {
	uow := f.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, common.NewSystemError(err, "failed to begin transaction")
	}
	defer uow.Rollback()

	info, err := f.economy.Ledger(uow).GetBalance(ctx, discordID)
	if err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, common.NewSystemError(err, "failed to commit transaction")
	}
	return info, nil
}
