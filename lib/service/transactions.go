package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/givehub/givehub.go/common"
	"github.com/givehub/givehub.go/db/models"
	"github.com/uptrace/bun"
)

type EntrySpec struct {
	AccountID   int64
	Type        string
	Amount      int64
	Description string
	Metadata    string
}

type TransactionSpec struct {
	TransactionNumber string
	Description       string
	TransactionDate   time.Time
	Status            string
	ExternalID        string
	Metadata          string
	Entries           []EntrySpec
}

// CreateTransaction validates and persists a balanced transaction together
// with its entries. When idb is nil the engine opens its own database
// transaction; a caller that needs the ledger effect to commit or roll
// back together with its own rows passes its bun.Tx instead.
//
// A spec with status posted has its balance effects applied in the same
// unit.
func (svc *LedgerService) CreateTransaction(ctx context.Context, spec TransactionSpec, idb bun.IDB) (*models.Transaction, error) {
	if err := validateEntries(spec.Entries); err != nil {
		return nil, err
	}

	if idb != nil {
		return svc.storeTransaction(ctx, idb, spec)
	}

	var transaction *models.Transaction
	err := svc.DB.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		var err error
		transaction, err = svc.storeTransaction(ctx, tx, spec)
		return err
	})
	return transaction, err
}

// validateEntries enforces the entry invariant before anything touches
// storage. Amounts are integers in minor units, so exact equality of the
// debit and credit sums implements the 1e-4 tolerance.
func validateEntries(entries []EntrySpec) error {
	if len(entries) == 0 {
		return fmt.Errorf("%w: transaction has no entries", ErrUnbalanced)
	}
	var totalDebits, totalCredits int64
	for _, entry := range entries {
		if entry.Amount <= 0 {
			return fmt.Errorf("%w: entry amount must be positive, got %d", ErrUnbalanced, entry.Amount)
		}
		switch entry.Type {
		case common.EntryTypeDebit:
			totalDebits += entry.Amount
		case common.EntryTypeCredit:
			totalCredits += entry.Amount
		default:
			return fmt.Errorf("%w: unknown entry type %q", ErrUnbalanced, entry.Type)
		}
	}
	if totalDebits != totalCredits {
		return fmt.Errorf("%w: debits %d, credits %d", ErrUnbalanced, totalDebits, totalCredits)
	}
	return nil
}

func (svc *LedgerService) storeTransaction(ctx context.Context, idb bun.IDB, spec TransactionSpec) (*models.Transaction, error) {
	status := spec.Status
	if status == "" {
		status = common.TransactionStatusPending
	}
	transactionDate := spec.TransactionDate
	if transactionDate.IsZero() {
		transactionDate = time.Now()
	}
	transactionNumber := spec.TransactionNumber
	if transactionNumber == "" {
		randBytes, err := randBytesFromStr(12, alphaNumBytes)
		if err != nil {
			return nil, err
		}
		transactionNumber = "TXN-" + string(randBytes)
	}

	transaction := &models.Transaction{
		TransactionNumber: transactionNumber,
		Description:       spec.Description,
		TransactionDate:   transactionDate,
		Status:            status,
		ExternalID:        spec.ExternalID,
		Metadata:          spec.Metadata,
	}
	if _, err := idb.NewInsert().Model(transaction).Exec(ctx); err != nil {
		return nil, err
	}

	entries := make([]models.Entry, 0, len(spec.Entries))
	for _, entrySpec := range spec.Entries {
		exists, err := idb.NewSelect().Model((*models.Account)(nil)).Where("id = ?", entrySpec.AccountID).Exists(ctx)
		if err != nil {
			return nil, err
		}
		if !exists {
			return nil, fmt.Errorf("%w: account %d", ErrNotFound, entrySpec.AccountID)
		}
		entries = append(entries, models.Entry{
			AccountID:     entrySpec.AccountID,
			TransactionID: transaction.ID,
			Type:          entrySpec.Type,
			Amount:        entrySpec.Amount,
			Description:   entrySpec.Description,
			Metadata:      entrySpec.Metadata,
		})
	}
	if _, err := idb.NewInsert().Model(&entries).Exec(ctx); err != nil {
		return nil, err
	}
	transaction.Entries = entries

	if transaction.Status == common.TransactionStatusPosted {
		if err := svc.applyBalanceEffects(ctx, idb, transaction.Entries); err != nil {
			return nil, err
		}
	}
	return transaction, nil
}

// applyBalanceEffects moves every entry's amount onto its account. The
// update is a single in-place increment per entry, so no stored balance is
// ever read, modified and written back.
func (svc *LedgerService) applyBalanceEffects(ctx context.Context, idb bun.IDB, entries []models.Entry) error {
	for _, entry := range entries {
		delta := BalanceEffect(entry.Type, entry.Amount)
		res, err := idb.NewUpdate().
			Model((*models.Account)(nil)).
			Set("available_balance = available_balance + ?", delta).
			Set("posted_balance = posted_balance + ?", delta).
			Where("id = ?", entry.AccountID).
			Exec(ctx)
		if err != nil {
			return err
		}
		affected, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if affected == 0 {
			return fmt.Errorf("%w: account %d", ErrNotFound, entry.AccountID)
		}
	}
	return nil
}

func (svc *LedgerService) FindTransaction(ctx context.Context, id int64) (*models.Transaction, error) {
	transaction := &models.Transaction{}
	err := svc.DB.NewSelect().Model(transaction).Relation("Entries").Where("transaction.id = ?", id).Limit(1).Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: transaction %d", ErrNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	return transaction, nil
}

func (svc *LedgerService) FindTransactionByNumber(ctx context.Context, transactionNumber string) (*models.Transaction, error) {
	transaction := &models.Transaction{}
	err := svc.DB.NewSelect().Model(transaction).Relation("Entries").Where("transaction_number = ?", transactionNumber).Limit(1).Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: transaction %s", ErrNotFound, transactionNumber)
	}
	if err != nil {
		return nil, err
	}
	return transaction, nil
}

// PostTransaction finalizes a pending transaction: the status flip and the
// balance effects commit or roll back as one unit.
func (svc *LedgerService) PostTransaction(ctx context.Context, id int64) (*models.Transaction, error) {
	var transaction *models.Transaction
	err := svc.DB.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		var err error
		transaction, err = svc.loadTransactionForUpdate(ctx, tx, id)
		if err != nil {
			return err
		}
		switch transaction.Status {
		case common.TransactionStatusPosted:
			return fmt.Errorf("%w: transaction %d is already posted", ErrInvalidState, id)
		case common.TransactionStatusVoided:
			return fmt.Errorf("%w: cannot post voided transaction %d", ErrInvalidState, id)
		}
		transaction.Status = common.TransactionStatusPosted
		if _, err := tx.NewUpdate().Model(transaction).Column("status").WherePK().Exec(ctx); err != nil {
			return err
		}
		return svc.applyBalanceEffects(ctx, tx, transaction.Entries)
	})
	if err != nil {
		return nil, err
	}
	return transaction, nil
}

// VoidTransaction cancels a transaction. Voiding a transaction that was
// already posted emits a compensating posted transaction with the
// debit/credit sides swapped, so account balances never go stale.
func (svc *LedgerService) VoidTransaction(ctx context.Context, id int64) (*models.Transaction, error) {
	var transaction *models.Transaction
	err := svc.DB.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		var err error
		transaction, err = svc.loadTransactionForUpdate(ctx, tx, id)
		if err != nil {
			return err
		}
		if transaction.Status == common.TransactionStatusVoided {
			return fmt.Errorf("%w: transaction %d is already voided", ErrInvalidState, id)
		}
		wasPosted := transaction.Status == common.TransactionStatusPosted
		transaction.Status = common.TransactionStatusVoided
		if _, err := tx.NewUpdate().Model(transaction).Column("status").WherePK().Exec(ctx); err != nil {
			return err
		}
		if !wasPosted {
			return nil
		}

		reversingEntries := make([]EntrySpec, 0, len(transaction.Entries))
		for _, entry := range transaction.Entries {
			reversedType := common.EntryTypeCredit
			if entry.Type == common.EntryTypeCredit {
				reversedType = common.EntryTypeDebit
			}
			reversingEntries = append(reversingEntries, EntrySpec{
				AccountID:   entry.AccountID,
				Type:        reversedType,
				Amount:      entry.Amount,
				Description: entry.Description,
			})
		}
		_, err = svc.storeTransaction(ctx, tx, TransactionSpec{
			Description:     fmt.Sprintf("Reversal of transaction %d", transaction.ID),
			TransactionDate: time.Now(),
			Status:          common.TransactionStatusPosted,
			Entries:         reversingEntries,
		})
		return err
	})
	if err != nil {
		return nil, err
	}
	return transaction, nil
}

func (svc *LedgerService) loadTransactionForUpdate(ctx context.Context, tx bun.Tx, id int64) (*models.Transaction, error) {
	transaction := &models.Transaction{}
	q := tx.NewSelect().Model(transaction).Relation("Entries").Where("transaction.id = ?", id).Limit(1)
	err := svc.lockForUpdate(q).Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: transaction %d", ErrNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	return transaction, nil
}
