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

// CreateWithdraw takes money out of a user's wallet: the wallet is
// debited the gross amount, the cash account is credited the net payout
// and the withdraw fee account the fee. The ledger effect is posted
// immediately; the actual payout to the user happens out of band.
func (svc *LedgerService) CreateWithdraw(ctx context.Context, userID, amount int64) (*models.Withdraw, error) {
	if amount <= 0 {
		return nil, fmt.Errorf("%w: withdraw amount must be positive", ErrBadRequest)
	}

	feeFraction, err := svc.FeePercentageFor(ctx, common.FeeTypeWithdraw)
	if err != nil {
		return nil, err
	}
	fee := CalcFee(amount, feeFraction)
	gross := amount + fee

	cashAccount, err := svc.GetSystemAccount(ctx, common.SystemRoleCash)
	if err != nil {
		return nil, err
	}
	feeAccount, err := svc.GetSystemAccount(ctx, common.SystemRoleWithdrawFee)
	if err != nil {
		return nil, err
	}

	withdraw := &models.Withdraw{
		Amount:     amount,
		FeesAmount: fee,
		UserID:     userID,
		Status:     common.WithdrawStatusSuccess,
	}
	err = svc.DB.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		userAccount, err := svc.lockedAccountByUserID(ctx, tx, userID)
		if err != nil {
			return err
		}
		if userAccount.AvailableBalance < gross {
			return fmt.Errorf("%w: balance %d, withdraw %d plus fee %d", ErrInsufficientFunds, userAccount.AvailableBalance, amount, fee)
		}

		entries := []EntrySpec{
			{AccountID: userAccount.ID, Type: common.EntryTypeDebit, Amount: gross},
			{AccountID: cashAccount.ID, Type: common.EntryTypeCredit, Amount: amount},
		}
		if fee > 0 {
			entries = append(entries, EntrySpec{AccountID: feeAccount.ID, Type: common.EntryTypeCredit, Amount: fee})
		}
		transaction, err := svc.CreateTransaction(ctx, TransactionSpec{
			TransactionDate: time.Now(),
			Status:          common.TransactionStatusPosted,
			Description:     fmt.Sprintf("Withdrawal for user %d", userID),
			Entries:         entries,
		}, tx)
		if err != nil {
			return err
		}

		withdraw.TransactionID = transaction.ID
		if _, err := tx.NewInsert().Model(withdraw).Exec(ctx); err != nil {
			return err
		}

		_, err = svc.createNotification(ctx, tx,
			"Withdrawal processed",
			fmt.Sprintf("Your withdrawal of %d has been processed.", amount),
			"تمت معالجة السحب",
			fmt.Sprintf("تمت معالجة سحبك بقيمة %d.", amount),
			userID, transaction.ID)
		return err
	})
	if err != nil {
		return nil, err
	}

	svc.publishEvent(LedgerEvent{
		Type:          "withdraw.settled",
		UserID:        userID,
		TransactionID: withdraw.TransactionID,
		Amount:        amount,
	})
	return withdraw, nil
}

func (svc *LedgerService) WithdrawsFor(ctx context.Context, userID int64) ([]models.Withdraw, error) {
	withdraws := []models.Withdraw{}
	err := svc.DB.NewSelect().Model(&withdraws).Where("user_id = ?", userID).OrderExpr("id DESC").Scan(ctx)
	return withdraws, err
}
