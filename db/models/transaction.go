package models

import (
	"time"

	"github.com/uptrace/bun"
)

// Transaction : Transaction Model
//
// Status is a one-way state machine: pending -> posted, pending -> voided,
// posted -> voided. Entries are lifetime-bound to their transaction.
type Transaction struct {
	bun.BaseModel `bun:"table:transactions"`

	ID                int64     `bun:",pk,autoincrement"`
	TransactionNumber string    `bun:",nullzero,unique"`
	Description       string    `bun:",nullzero"`
	TransactionDate   time.Time `bun:",notnull"`
	Status            string    `bun:",notnull,default:'pending'"`
	ExternalID        string    `bun:",nullzero"`
	Metadata          string    `bun:",nullzero"`
	Entries           []Entry   `bun:"rel:has-many,join:id=transaction_id"`
	CreatedAt         time.Time `bun:",nullzero,notnull,default:current_timestamp"`
	UpdatedAt         time.Time `bun:",nullzero,notnull,default:current_timestamp"`
}
