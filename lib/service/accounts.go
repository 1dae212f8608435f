package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/givehub/givehub.go/common"
	"github.com/givehub/givehub.go/db/models"
	"github.com/uptrace/bun"
)

type AccountSpec struct {
	Name          string
	Description   string
	Type          string
	NormalBalance string
	AccountNumber string
	SystemRole    string
	UserID        int64
	CampaignID    int64
}

// CreateAccount provisions one ledger account. When idb is non-nil the
// insert joins the caller's database transaction so an account is only
// ever created together with its owning user or campaign.
func (svc *LedgerService) CreateAccount(ctx context.Context, spec AccountSpec, idb bun.IDB) (*models.Account, error) {
	if idb == nil {
		idb = svc.DB
	}
	if spec.AccountNumber != "" {
		exists, err := idb.NewSelect().Model((*models.Account)(nil)).Where("account_number = ?", spec.AccountNumber).Exists(ctx)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, fmt.Errorf("%w: account number %s already exists", ErrConflict, spec.AccountNumber)
		}
	}
	account := &models.Account{
		Name:          spec.Name,
		Description:   spec.Description,
		Type:          spec.Type,
		NormalBalance: spec.NormalBalance,
		AccountNumber: spec.AccountNumber,
		SystemRole:    spec.SystemRole,
		UserID:        spec.UserID,
		CampaignID:    spec.CampaignID,
		Status:        common.AccountStatusActive,
	}
	if _, err := idb.NewInsert().Model(account).Exec(ctx); err != nil {
		return nil, err
	}
	return account, nil
}

func (svc *LedgerService) FindAccountByUserID(ctx context.Context, userID int64) (*models.Account, error) {
	account := &models.Account{}
	err := svc.DB.NewSelect().Model(account).Where("user_id = ?", userID).Limit(1).Scan(ctx)
	return account, wrapAccountErr(err, fmt.Sprintf("user %d", userID))
}

func (svc *LedgerService) FindAccountByCampaignID(ctx context.Context, campaignID int64) (*models.Account, error) {
	account := &models.Account{}
	err := svc.DB.NewSelect().Model(account).Where("campaign_id = ?", campaignID).Limit(1).Scan(ctx)
	return account, wrapAccountErr(err, fmt.Sprintf("campaign %d", campaignID))
}

func (svc *LedgerService) FindAccountByNumber(ctx context.Context, accountNumber string) (*models.Account, error) {
	account := &models.Account{}
	err := svc.DB.NewSelect().Model(account).Where("account_number = ?", accountNumber).Limit(1).Scan(ctx)
	return account, wrapAccountErr(err, fmt.Sprintf("number %s", accountNumber))
}

// GetSystemAccount returns the singleton house account for a role (cash,
// deposit_fee, withdraw_fee, transfer_fee).
func (svc *LedgerService) GetSystemAccount(ctx context.Context, systemRole string) (*models.Account, error) {
	account := &models.Account{}
	err := svc.DB.NewSelect().Model(account).Where("system_role = ?", systemRole).Limit(1).Scan(ctx)
	return account, wrapAccountErr(err, fmt.Sprintf("system role %s", systemRole))
}

// CurrentUserBalance is a narrow read for client display: it returns only
// the wallet's available balance, not an authoritative ledger report.
func (svc *LedgerService) CurrentUserBalance(ctx context.Context, userID int64) (int64, error) {
	account, err := svc.FindAccountByUserID(ctx, userID)
	if err != nil {
		return 0, err
	}
	return account.AvailableBalance, nil
}

func wrapAccountErr(err error, ref string) error {
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: account for %s", ErrNotFound, ref)
	}
	return err
}

// lockedAccountByUserID re-reads a wallet account inside the caller's
// transaction with a row lock, for balance checks that precede a mutation.
func (svc *LedgerService) lockedAccountByUserID(ctx context.Context, tx bun.Tx, userID int64) (*models.Account, error) {
	account := &models.Account{}
	q := tx.NewSelect().Model(account).Where("user_id = ?", userID).Limit(1)
	err := svc.lockForUpdate(q).Scan(ctx)
	return account, wrapAccountErr(err, fmt.Sprintf("user %d", userID))
}
