package service

import (
	"context"
	"testing"

	"github.com/givehub/givehub.go/common"
	"github.com/givehub/givehub.go/db/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReconcileRestoresDriftedBalance(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	userID := createTestUser(t, svc)
	fundUser(t, svc, userID, 1000)

	wallet, err := svc.FindAccountByUserID(ctx, userID)
	require.NoError(t, err)

	// corrupt the stored balance behind the engine's back
	_, err = svc.DB.NewUpdate().Model((*models.Account)(nil)).
		Set("available_balance = ?", 424242).
		Set("posted_balance = ?", 424242).
		Where("id = ?", wallet.ID).
		Exec(ctx)
	require.NoError(t, err)

	require.NoError(t, svc.UpdateAllBalances(ctx))

	assert.Equal(t, int64(1000), userBalance(t, svc, userID))
}

func TestReconcileIgnoresPendingTransactions(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	userID := createTestUser(t, svc)
	fundUser(t, svc, userID, 1000)

	cash, err := svc.GetSystemAccount(ctx, common.SystemRoleCash)
	require.NoError(t, err)
	wallet, err := svc.FindAccountByUserID(ctx, userID)
	require.NoError(t, err)

	// a pending transaction must not count toward the derived balance
	_, err = svc.CreateTransaction(ctx, TransactionSpec{
		Entries: []EntrySpec{
			{AccountID: cash.ID, Type: common.EntryTypeDebit, Amount: 500},
			{AccountID: wallet.ID, Type: common.EntryTypeCredit, Amount: 500},
		},
	}, nil)
	require.NoError(t, err)

	require.NoError(t, svc.UpdateAllBalances(ctx))
	assert.Equal(t, int64(1000), userBalance(t, svc, userID))
}

func TestReconcileIsIdempotent(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	userID := createTestUser(t, svc)
	fundUser(t, svc, userID, 750)

	require.NoError(t, svc.UpdateAllBalances(ctx))
	require.NoError(t, svc.UpdateAllBalances(ctx))

	assert.Equal(t, int64(750), userBalance(t, svc, userID))
}
