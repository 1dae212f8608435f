package service

import (
	"context"
	"testing"

	"github.com/givehub/givehub.go/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFeePercentageForSeededTypes(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	deposit, err := svc.FeePercentageFor(ctx, common.FeeTypeDeposit)
	require.NoError(t, err)
	assert.InDelta(t, 0.02, deposit, 1e-9)

	withdraw, err := svc.FeePercentageFor(ctx, common.FeeTypeWithdraw)
	require.NoError(t, err)
	assert.InDelta(t, 0.02, withdraw, 1e-9)

	transfer, err := svc.FeePercentageFor(ctx, common.FeeTypeTransfer)
	require.NoError(t, err)
	assert.InDelta(t, 0.01, transfer, 1e-9)

	_, err = svc.FeePercentageFor(ctx, "unknown_fee")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCalcFeeTruncates(t *testing.T) {
	assert.Equal(t, int64(20), CalcFee(1000, 0.02))
	assert.Equal(t, int64(0), CalcFee(49, 0.02))
	assert.Equal(t, int64(1), CalcFee(99, 0.02))
	assert.Equal(t, int64(0), CalcFee(0, 0.02))
}
