package models

import (
	"time"

	"github.com/uptrace/bun"
)

// FeePercentage : FeePercentage Model
//
// Amount is a basis-points-like integer; divide by 10000 to get the
// fraction (200 -> 2%).
type FeePercentage struct {
	bun.BaseModel `bun:"table:fee_percentages"`

	ID        int64     `bun:",pk,autoincrement"`
	Type      string    `bun:",unique,notnull"`
	Amount    int64     `bun:",notnull"`
	CreatedAt time.Time `bun:",nullzero,notnull,default:current_timestamp"`
	UpdatedAt time.Time `bun:",nullzero,notnull,default:current_timestamp"`
}
