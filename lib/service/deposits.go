package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/givehub/givehub.go/common"
	"github.com/givehub/givehub.go/db/models"
	"github.com/uptrace/bun"
)

// DepositVerification is the gateway's answer about one payment intent.
// Settled and Failed are both false while the intent is still in flight.
type DepositVerification struct {
	IntentID string
	Settled  bool
	Failed   bool
}

// DepositVerifier asks the payment gateway whether an intent settled.
type DepositVerifier interface {
	VerifyDeposit(ctx context.Context, intentID string) (*DepositVerification, error)
}

// CreateDeposit opens a pending deposit for a user. No ledger effect
// happens yet; money enters the ledger only when the gateway confirms the
// intent and ConfirmDeposit posts the transaction.
func (svc *LedgerService) CreateDeposit(ctx context.Context, userID, amount int64, tokenType string) (*models.Deposit, error) {
	if amount <= 0 {
		return nil, fmt.Errorf("%w: deposit amount must be positive", ErrBadRequest)
	}

	feeFraction, err := svc.FeePercentageFor(ctx, common.FeeTypeDeposit)
	if err != nil {
		return nil, err
	}
	fee := CalcFee(amount, feeFraction)

	intentID, err := randBytesFromStr(24, alphaNumBytes)
	if err != nil {
		return nil, err
	}

	deposit := &models.Deposit{
		Amount:     amount,
		FeesAmount: fee,
		UserID:     userID,
		IntentID:   string(intentID),
		TokenType:  tokenType,
		Status:     common.DepositStatusPending,
	}
	if _, err := svc.DB.NewInsert().Model(deposit).Exec(ctx); err != nil {
		return nil, err
	}
	return deposit, nil
}

// ConfirmDeposit settles a pending deposit: one posted transaction
// debiting the cash account for the gross amount, crediting the user's
// wallet net of fees and the deposit fee account for the fee. Confirming
// a deposit twice is an invalid state transition, not a second credit.
func (svc *LedgerService) ConfirmDeposit(ctx context.Context, depositID int64) (*models.Deposit, error) {
	deposit := &models.Deposit{}
	err := svc.DB.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		q := tx.NewSelect().Model(deposit).Where("id = ?", depositID).Limit(1)
		err := svc.lockForUpdate(q).Scan(ctx)
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("%w: deposit %d", ErrNotFound, depositID)
		}
		if err != nil {
			return err
		}
		if deposit.Status != common.DepositStatusPending {
			return fmt.Errorf("%w: deposit %d is %s", ErrInvalidState, depositID, deposit.Status)
		}

		cashAccount, err := svc.GetSystemAccount(ctx, common.SystemRoleCash)
		if err != nil {
			return err
		}
		feeAccount, err := svc.GetSystemAccount(ctx, common.SystemRoleDepositFee)
		if err != nil {
			return err
		}
		userAccount, err := svc.lockedAccountByUserID(ctx, tx, deposit.UserID)
		if err != nil {
			return err
		}

		entries := []EntrySpec{
			{AccountID: cashAccount.ID, Type: common.EntryTypeDebit, Amount: deposit.Amount + deposit.FeesAmount},
			{AccountID: userAccount.ID, Type: common.EntryTypeCredit, Amount: deposit.Amount},
		}
		if deposit.FeesAmount > 0 {
			entries = append(entries, EntrySpec{AccountID: feeAccount.ID, Type: common.EntryTypeCredit, Amount: deposit.FeesAmount})
		}
		transaction, err := svc.CreateTransaction(ctx, TransactionSpec{
			TransactionDate: time.Now(),
			Status:          common.TransactionStatusPosted,
			Description:     fmt.Sprintf("Deposit %s for user %d", deposit.IntentID, deposit.UserID),
			Entries:         entries,
		}, tx)
		if err != nil {
			return err
		}

		deposit.Status = common.DepositStatusSuccess
		deposit.TransactionID = transaction.ID
		deposit.UpdatedAt = time.Now()
		_, err = tx.NewUpdate().Model(deposit).
			Column("status", "transaction_id", "updated_at").
			WherePK().
			Exec(ctx)
		if err != nil {
			return err
		}

		_, err = svc.createNotification(ctx, tx,
			"Deposit confirmed",
			fmt.Sprintf("Your deposit of %d has been credited.", deposit.Amount),
			"تم تأكيد الإيداع",
			fmt.Sprintf("تم إضافة إيداعك بقيمة %d.", deposit.Amount),
			deposit.UserID, transaction.ID)
		return err
	})
	if err != nil {
		return nil, err
	}

	svc.publishEvent(LedgerEvent{
		Type:          "deposit.settled",
		UserID:        deposit.UserID,
		TransactionID: deposit.TransactionID,
		Amount:        deposit.Amount,
	})
	return deposit, nil
}

// FailDeposit marks a pending deposit failed. No ledger effect exists to
// reverse because pending deposits never touched the ledger.
func (svc *LedgerService) FailDeposit(ctx context.Context, depositID int64) error {
	result, err := svc.DB.NewUpdate().Model((*models.Deposit)(nil)).
		Set("status = ?", common.DepositStatusFailed).
		Set("updated_at = ?", time.Now()).
		Where("id = ?", depositID).
		Where("status = ?", common.DepositStatusPending).
		Exec(ctx)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return fmt.Errorf("%w: deposit %d is not pending", ErrInvalidState, depositID)
	}
	return nil
}

// CheckPendingDeposits sweeps all pending deposits once: settled intents
// are confirmed, failed or expired ones are marked failed, in-flight ones
// are left alone. Each deposit is handled independently so one bad intent
// does not stall the sweep.
func (svc *LedgerService) CheckPendingDeposits(ctx context.Context) error {
	deposits := []models.Deposit{}
	err := svc.DB.NewSelect().Model(&deposits).
		Where("status = ?", common.DepositStatusPending).
		OrderExpr("id ASC").
		Scan(ctx)
	if err != nil {
		return err
	}

	expiry := time.Duration(svc.Config.DepositExpiry) * time.Second
	for _, deposit := range deposits {
		verification, err := svc.verifyWithRetry(ctx, deposit.IntentID)
		if err != nil {
			svc.Logger.Errorf("Failed to verify deposit %d intent %s: %v", deposit.ID, deposit.IntentID, err)
			continue
		}

		switch {
		case verification.Settled:
			if _, err := svc.ConfirmDeposit(ctx, deposit.ID); err != nil {
				svc.Logger.Errorf("Failed to confirm deposit %d: %v", deposit.ID, err)
			}
		case verification.Failed, time.Since(deposit.CreatedAt) > expiry:
			if err := svc.FailDeposit(ctx, deposit.ID); err != nil {
				svc.Logger.Errorf("Failed to mark deposit %d failed: %v", deposit.ID, err)
			}
		}
	}
	return nil
}

func (svc *LedgerService) verifyWithRetry(ctx context.Context, intentID string) (*DepositVerification, error) {
	var verification *DepositVerification
	operation := func() error {
		var err error
		verification, err = svc.DepositVerifier.VerifyDeposit(ctx, intentID)
		return err
	}
	err := backoff.Retry(operation, backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), 3), ctx))
	return verification, err
}

func (svc *LedgerService) DepositsFor(ctx context.Context, userID int64) ([]models.Deposit, error) {
	deposits := []models.Deposit{}
	err := svc.DB.NewSelect().Model(&deposits).Where("user_id = ?", userID).OrderExpr("id DESC").Scan(ctx)
	return deposits, err
}
