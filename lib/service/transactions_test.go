package service

import (
	"context"
	"testing"

	"github.com/givehub/givehub.go/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreatePendingTransactionHasNoBalanceEffect(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	userID := createTestUser(t, svc)
	cash, err := svc.GetSystemAccount(ctx, common.SystemRoleCash)
	require.NoError(t, err)
	wallet, err := svc.FindAccountByUserID(ctx, userID)
	require.NoError(t, err)

	transaction, err := svc.CreateTransaction(ctx, TransactionSpec{
		Entries: []EntrySpec{
			{AccountID: cash.ID, Type: common.EntryTypeDebit, Amount: 500},
			{AccountID: wallet.ID, Type: common.EntryTypeCredit, Amount: 500},
		},
	}, nil)
	require.NoError(t, err)
	assert.Equal(t, common.TransactionStatusPending, transaction.Status)
	assert.NotEmpty(t, transaction.TransactionNumber)
	assert.Len(t, transaction.Entries, 2)

	assert.Equal(t, int64(0), userBalance(t, svc, userID))
}

func TestCreatePostedTransactionAppliesEffects(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	userID := createTestUser(t, svc)
	fundUser(t, svc, userID, 500)

	assert.Equal(t, int64(500), userBalance(t, svc, userID))

	cash, err := svc.GetSystemAccount(ctx, common.SystemRoleCash)
	require.NoError(t, err)
	assert.Equal(t, int64(-500), cash.AvailableBalance)
}

func TestCreateTransactionRejectsUnbalancedEntries(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	userID := createTestUser(t, svc)
	wallet, err := svc.FindAccountByUserID(ctx, userID)
	require.NoError(t, err)
	cash, err := svc.GetSystemAccount(ctx, common.SystemRoleCash)
	require.NoError(t, err)

	_, err = svc.CreateTransaction(ctx, TransactionSpec{
		Status: common.TransactionStatusPosted,
		Entries: []EntrySpec{
			{AccountID: cash.ID, Type: common.EntryTypeDebit, Amount: 100},
			{AccountID: wallet.ID, Type: common.EntryTypeCredit, Amount: 90},
		},
	}, nil)
	assert.ErrorIs(t, err, ErrUnbalanced)
}

func TestCreateTransactionRejectsUnknownAccount(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	userID := createTestUser(t, svc)
	wallet, err := svc.FindAccountByUserID(ctx, userID)
	require.NoError(t, err)

	_, err = svc.CreateTransaction(ctx, TransactionSpec{
		Status: common.TransactionStatusPosted,
		Entries: []EntrySpec{
			{AccountID: 99999, Type: common.EntryTypeDebit, Amount: 100},
			{AccountID: wallet.ID, Type: common.EntryTypeCredit, Amount: 100},
		},
	}, nil)
	assert.ErrorIs(t, err, ErrNotFound)

	// the whole unit rolled back, no orphan entries applied
	assert.Equal(t, int64(0), userBalance(t, svc, userID))
}

func TestPostPendingTransaction(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	userID := createTestUser(t, svc)
	cash, err := svc.GetSystemAccount(ctx, common.SystemRoleCash)
	require.NoError(t, err)
	wallet, err := svc.FindAccountByUserID(ctx, userID)
	require.NoError(t, err)

	transaction, err := svc.CreateTransaction(ctx, TransactionSpec{
		Entries: []EntrySpec{
			{AccountID: cash.ID, Type: common.EntryTypeDebit, Amount: 300},
			{AccountID: wallet.ID, Type: common.EntryTypeCredit, Amount: 300},
		},
	}, nil)
	require.NoError(t, err)

	posted, err := svc.PostTransaction(ctx, transaction.ID)
	require.NoError(t, err)
	assert.Equal(t, common.TransactionStatusPosted, posted.Status)
	assert.Equal(t, int64(300), userBalance(t, svc, userID))

	// posting twice is an invalid transition
	_, err = svc.PostTransaction(ctx, transaction.ID)
	assert.ErrorIs(t, err, ErrInvalidState)
}

func TestVoidPendingTransactionHasNoEffect(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	userID := createTestUser(t, svc)
	cash, err := svc.GetSystemAccount(ctx, common.SystemRoleCash)
	require.NoError(t, err)
	wallet, err := svc.FindAccountByUserID(ctx, userID)
	require.NoError(t, err)

	transaction, err := svc.CreateTransaction(ctx, TransactionSpec{
		Entries: []EntrySpec{
			{AccountID: cash.ID, Type: common.EntryTypeDebit, Amount: 300},
			{AccountID: wallet.ID, Type: common.EntryTypeCredit, Amount: 300},
		},
	}, nil)
	require.NoError(t, err)

	voided, err := svc.VoidTransaction(ctx, transaction.ID)
	require.NoError(t, err)
	assert.Equal(t, common.TransactionStatusVoided, voided.Status)
	assert.Equal(t, int64(0), userBalance(t, svc, userID))

	// a voided transaction can never be posted
	_, err = svc.PostTransaction(ctx, transaction.ID)
	assert.ErrorIs(t, err, ErrInvalidState)
}

func TestVoidPostedTransactionEmitsReversal(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	userID := createTestUser(t, svc)
	cash, err := svc.GetSystemAccount(ctx, common.SystemRoleCash)
	require.NoError(t, err)
	wallet, err := svc.FindAccountByUserID(ctx, userID)
	require.NoError(t, err)

	transaction, err := svc.CreateTransaction(ctx, TransactionSpec{
		Status: common.TransactionStatusPosted,
		Entries: []EntrySpec{
			{AccountID: cash.ID, Type: common.EntryTypeDebit, Amount: 700},
			{AccountID: wallet.ID, Type: common.EntryTypeCredit, Amount: 700},
		},
	}, nil)
	require.NoError(t, err)
	require.Equal(t, int64(700), userBalance(t, svc, userID))

	voided, err := svc.VoidTransaction(ctx, transaction.ID)
	require.NoError(t, err)
	assert.Equal(t, common.TransactionStatusVoided, voided.Status)

	// compensating entries bring the balances back to zero
	assert.Equal(t, int64(0), userBalance(t, svc, userID))
	cash, err = svc.GetSystemAccount(ctx, common.SystemRoleCash)
	require.NoError(t, err)
	assert.Equal(t, int64(0), cash.AvailableBalance)

	// voiding twice is an invalid transition
	_, err = svc.VoidTransaction(ctx, transaction.ID)
	assert.ErrorIs(t, err, ErrInvalidState)
}

func TestFindTransactionByNumber(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	userID := createTestUser(t, svc)
	cash, err := svc.GetSystemAccount(ctx, common.SystemRoleCash)
	require.NoError(t, err)
	wallet, err := svc.FindAccountByUserID(ctx, userID)
	require.NoError(t, err)

	transaction, err := svc.CreateTransaction(ctx, TransactionSpec{
		TransactionNumber: "TXN-lookup-1",
		Entries: []EntrySpec{
			{AccountID: cash.ID, Type: common.EntryTypeDebit, Amount: 10},
			{AccountID: wallet.ID, Type: common.EntryTypeCredit, Amount: 10},
		},
	}, nil)
	require.NoError(t, err)

	found, err := svc.FindTransactionByNumber(ctx, "TXN-lookup-1")
	require.NoError(t, err)
	assert.Equal(t, transaction.ID, found.ID)

	_, err = svc.FindTransactionByNumber(ctx, "TXN-missing")
	assert.ErrorIs(t, err, ErrNotFound)
}
