package service

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/givehub/givehub.go/common"
	"github.com/givehub/givehub.go/db/models"
	"github.com/uptrace/bun"
)

// CreateTransfer moves money between two user wallets. The sender is
// debited the full amount, the receiver is credited the amount net of the
// transfer fee, and the fee lands on the transfer fee account. One posted
// ledger transaction carries all three legs.
func (svc *LedgerService) CreateTransfer(ctx context.Context, senderUserID, receiverUserID, amount int64) (*models.Transfer, error) {
	if amount <= 0 {
		return nil, fmt.Errorf("%w: transfer amount must be positive", ErrBadRequest)
	}
	if senderUserID == receiverUserID {
		return nil, fmt.Errorf("%w: cannot transfer to yourself", ErrBadRequest)
	}

	feeFraction, err := svc.FeePercentageFor(ctx, common.FeeTypeTransfer)
	if err != nil {
		return nil, err
	}
	fee := CalcFee(amount, feeFraction)
	if fee >= amount {
		return nil, fmt.Errorf("%w: transfer amount does not cover fees", ErrBadRequest)
	}

	feeAccount, err := svc.GetSystemAccount(ctx, common.SystemRoleTransferFee)
	if err != nil {
		return nil, err
	}

	transfer := &models.Transfer{
		Amount:         amount,
		FeesAmount:     fee,
		SenderUserID:   senderUserID,
		ReceiverUserID: receiverUserID,
		Status:         common.TransferStatusSuccess,
	}
	err = svc.DB.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		senderAccount, err := svc.lockedAccountByUserID(ctx, tx, senderUserID)
		if err != nil {
			return err
		}
		if senderAccount.AvailableBalance < amount {
			return fmt.Errorf("%w: balance %d, transfer %d", ErrInsufficientFunds, senderAccount.AvailableBalance, amount)
		}
		receiverAccount, err := svc.lockedAccountByUserID(ctx, tx, receiverUserID)
		if err != nil {
			return err
		}

		entries := []EntrySpec{
			{AccountID: senderAccount.ID, Type: common.EntryTypeDebit, Amount: amount},
			{AccountID: receiverAccount.ID, Type: common.EntryTypeCredit, Amount: amount - fee},
		}
		if fee > 0 {
			entries = append(entries, EntrySpec{AccountID: feeAccount.ID, Type: common.EntryTypeCredit, Amount: fee})
		}
		transaction, err := svc.CreateTransaction(ctx, TransactionSpec{
			TransactionDate: time.Now(),
			Status:          common.TransactionStatusPosted,
			Description:     fmt.Sprintf("Transfer from user %d to user %d", senderUserID, receiverUserID),
			Entries:         entries,
		}, tx)
		if err != nil {
			return err
		}

		transfer.TransactionID = transaction.ID
		if _, err := tx.NewInsert().Model(transfer).Exec(ctx); err != nil {
			return err
		}

		_, err = svc.createNotification(ctx, tx,
			"Transfer received",
			fmt.Sprintf("You received a transfer of %d.", amount-fee),
			"تم استلام تحويل",
			fmt.Sprintf("لقد استلمت تحويلاً بقيمة %d.", amount-fee),
			receiverUserID, transaction.ID)
		return err
	})
	if err != nil {
		return nil, err
	}

	svc.publishEvent(LedgerEvent{
		Type:          "transfer.settled",
		UserID:        senderUserID,
		TransactionID: transfer.TransactionID,
		Amount:        amount,
	})
	svc.publishEvent(LedgerEvent{
		Type:          "transfer.received",
		UserID:        receiverUserID,
		TransactionID: transfer.TransactionID,
		Amount:        amount - fee,
	})
	return transfer, nil
}

func (svc *LedgerService) TransfersFor(ctx context.Context, userID int64) ([]models.Transfer, error) {
	transfers := []models.Transfer{}
	err := svc.DB.NewSelect().Model(&transfers).
		WhereGroup(" AND ", func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Where("sender_user_id = ?", userID).WhereOr("receiver_user_id = ?", userID)
		}).
		OrderExpr("id DESC").
		Scan(ctx)
	return transfers, err
}
