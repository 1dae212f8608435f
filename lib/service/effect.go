package service

import (
	"github.com/givehub/givehub.go/common"
)

// BalanceEffect returns the signed balance delta one entry applies to its
// account: credits increase, debits decrease. The rule is uniform across
// all accounts; an account's normal_balance is classification metadata and
// never flips the sign.
func BalanceEffect(entryType string, amount int64) int64 {
	if entryType == common.EntryTypeDebit {
		return -amount
	}
	return amount
}
