package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/givehub/givehub.go/db/models"
)

// FeePercentageFor returns the configured fee fraction for a fee type.
// The stored amount is a basis-points-like integer divided by 10000, so a
// stored 200 yields 0.02. Fees are applied by the calling flows before
// they build their entries; the ledger engine itself never computes fees.
func (svc *LedgerService) FeePercentageFor(ctx context.Context, feeType string) (float64, error) {
	feePercentage := &models.FeePercentage{}
	err := svc.DB.NewSelect().Model(feePercentage).Where("type = ?", feeType).Limit(1).Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, fmt.Errorf("%w: fee percentage %s", ErrNotFound, feeType)
	}
	if err != nil {
		return 0, err
	}
	return float64(feePercentage.Amount) / 10000, nil
}

// CalcFee applies a fee fraction to an amount in minor units, truncating
// toward zero the way the reference fee math does.
func CalcFee(amount int64, fraction float64) int64 {
	return int64(float64(amount) * fraction)
}
