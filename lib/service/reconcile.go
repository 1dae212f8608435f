package service

import (
	"context"
	"database/sql"

	"github.com/givehub/givehub.go/common"
	"github.com/givehub/givehub.go/db/models"
	"github.com/uptrace/bun"
)

// UpdateAllBalances recomputes every account's balances from its posted
// entry history and overwrites the stored values. It never reads the
// stored balance, only derives, so it is idempotent and safe to run at any
// time to correct drift.
//
// Each account is its own atomic unit: one failing account is logged and
// retried on the next sweep instead of blocking the rest.
func (svc *LedgerService) UpdateAllBalances(ctx context.Context) error {
	var accountIDs []int64
	err := svc.DB.NewSelect().Model((*models.Account)(nil)).Column("id").OrderExpr("id ASC").Scan(ctx, &accountIDs)
	if err != nil {
		return err
	}
	for _, accountID := range accountIDs {
		accountID := accountID
		err := svc.DB.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
			return svc.reconcileAccountBalance(ctx, tx, accountID)
		})
		if err != nil {
			svc.Logger.Errorf("Failed to reconcile balance for account %d: %v", accountID, err)
		}
	}
	return nil
}

func (svc *LedgerService) reconcileAccountBalance(ctx context.Context, tx bun.Tx, accountID int64) error {
	balance, err := svc.postedBalanceFromEntries(ctx, tx, accountID)
	if err != nil {
		return err
	}
	_, err = tx.NewUpdate().
		Model((*models.Account)(nil)).
		Set("available_balance = ?", balance).
		Set("posted_balance = ?", balance).
		Where("id = ?", accountID).
		Exec(ctx)
	return err
}

// postedBalanceFromEntries derives an account balance as the credit sum
// minus the debit sum over entries whose owning transaction is posted.
func (svc *LedgerService) postedBalanceFromEntries(ctx context.Context, idb bun.IDB, accountID int64) (int64, error) {
	var creditSum, debitSum int64

	err := idb.NewSelect().
		Model((*models.Entry)(nil)).
		ColumnExpr("COALESCE(SUM(entry.amount), 0)").
		Join("INNER JOIN transactions AS t ON t.id = entry.transaction_id").
		Where("entry.account_id = ?", accountID).
		Where("entry.type = ?", common.EntryTypeCredit).
		Where("t.status = ?", common.TransactionStatusPosted).
		Scan(ctx, &creditSum)
	if err != nil {
		return 0, err
	}

	err = idb.NewSelect().
		Model((*models.Entry)(nil)).
		ColumnExpr("COALESCE(SUM(entry.amount), 0)").
		Join("INNER JOIN transactions AS t ON t.id = entry.transaction_id").
		Where("entry.account_id = ?", accountID).
		Where("entry.type = ?", common.EntryTypeDebit).
		Where("t.status = ?", common.TransactionStatusPosted).
		Scan(ctx, &debitSum)
	if err != nil {
		return 0, err
	}

	return creditSum - debitSum, nil
}
