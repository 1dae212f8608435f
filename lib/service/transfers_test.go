package service

import (
	"context"
	"testing"

	"github.com/givehub/givehub.go/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateTransferTakesFee(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	senderID := createTestUser(t, svc)
	receiverID := createTestUser(t, svc)
	fundUser(t, svc, senderID, 5000)

	// transfer fee is seeded at 1%
	transfer, err := svc.CreateTransfer(ctx, senderID, receiverID, 1000)
	require.NoError(t, err)
	assert.Equal(t, int64(10), transfer.FeesAmount)
	assert.Equal(t, common.TransferStatusSuccess, transfer.Status)

	assert.Equal(t, int64(4000), userBalance(t, svc, senderID))
	assert.Equal(t, int64(990), userBalance(t, svc, receiverID))

	feeAccount, err := svc.GetSystemAccount(ctx, common.SystemRoleTransferFee)
	require.NoError(t, err)
	assert.Equal(t, int64(10), feeAccount.AvailableBalance)

	// the receiver got a notification
	notifications, err := svc.NotificationsFor(ctx, receiverID)
	require.NoError(t, err)
	require.Len(t, notifications, 1)
	assert.Equal(t, transfer.TransactionID, notifications[0].TransactionID)
}

func TestCreateTransferInsufficientFunds(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	senderID := createTestUser(t, svc)
	receiverID := createTestUser(t, svc)
	fundUser(t, svc, senderID, 500)

	_, err := svc.CreateTransfer(ctx, senderID, receiverID, 1000)
	assert.ErrorIs(t, err, ErrInsufficientFunds)

	assert.Equal(t, int64(500), userBalance(t, svc, senderID))
	assert.Equal(t, int64(0), userBalance(t, svc, receiverID))
}

func TestCreateTransferRejectsSelfAndBadAmounts(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	senderID := createTestUser(t, svc)
	fundUser(t, svc, senderID, 500)

	_, err := svc.CreateTransfer(ctx, senderID, senderID, 100)
	assert.ErrorIs(t, err, ErrBadRequest)

	receiverID := createTestUser(t, svc)
	_, err = svc.CreateTransfer(ctx, senderID, receiverID, 0)
	assert.ErrorIs(t, err, ErrBadRequest)
}

func TestTransfersForListsBothDirections(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	senderID := createTestUser(t, svc)
	receiverID := createTestUser(t, svc)
	fundUser(t, svc, senderID, 5000)

	_, err := svc.CreateTransfer(ctx, senderID, receiverID, 1000)
	require.NoError(t, err)

	sent, err := svc.TransfersFor(ctx, senderID)
	require.NoError(t, err)
	assert.Len(t, sent, 1)

	received, err := svc.TransfersFor(ctx, receiverID)
	require.NoError(t, err)
	assert.Len(t, received, 1)
}
