package migrations

import (
	"context"
	"database/sql"
	"errors"

	"github.com/givehub/givehub.go/common"
	"github.com/givehub/givehub.go/db/models"
	"github.com/uptrace/bun"
)

// Seeds the singleton house accounts and the default fee percentages.
// Safe to re-run: every row is looked up before it is inserted.
func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		systemAccounts := []models.Account{
			{
				Name:          common.SystemRoleCash,
				Description:   "Platform cash account",
				Type:          common.AccountTypeAsset,
				NormalBalance: common.NormalBalanceDebit,
				SystemRole:    common.SystemRoleCash,
			},
			{
				Name:          common.SystemRoleDepositFee,
				Description:   "This account is for deposit fees",
				Type:          common.AccountTypeRevenue,
				NormalBalance: common.NormalBalanceCredit,
				SystemRole:    common.SystemRoleDepositFee,
			},
			{
				Name:          common.SystemRoleWithdrawFee,
				Description:   "This account is for withdraw fees",
				Type:          common.AccountTypeRevenue,
				NormalBalance: common.NormalBalanceCredit,
				SystemRole:    common.SystemRoleWithdrawFee,
			},
			{
				Name:          common.SystemRoleTransferFee,
				Description:   "This account is for transfer fees",
				Type:          common.AccountTypeRevenue,
				NormalBalance: common.NormalBalanceCredit,
				SystemRole:    common.SystemRoleTransferFee,
			},
		}
		for _, account := range systemAccounts {
			account := account
			exists := models.Account{}
			err := db.NewSelect().Model(&exists).Where("system_role = ?", account.SystemRole).Limit(1).Scan(ctx)
			if err == nil {
				continue
			}
			if !errors.Is(err, sql.ErrNoRows) {
				return err
			}
			if _, err := db.NewInsert().Model(&account).Exec(ctx); err != nil {
				return err
			}
		}

		feePercentages := []models.FeePercentage{
			{Type: common.FeeTypeDeposit, Amount: 200},
			{Type: common.FeeTypeWithdraw, Amount: 200},
			{Type: common.FeeTypeTransfer, Amount: 100},
		}
		for _, fee := range feePercentages {
			fee := fee
			exists := models.FeePercentage{}
			err := db.NewSelect().Model(&exists).Where("type = ?", fee.Type).Limit(1).Scan(ctx)
			if err == nil {
				continue
			}
			if !errors.Is(err, sql.ErrNoRows) {
				return err
			}
			if _, err := db.NewInsert().Model(&fee).Exec(ctx); err != nil {
				return err
			}
		}
		return nil
	}, nil)
}
