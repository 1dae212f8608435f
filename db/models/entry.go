package models

import (
	"time"

	"github.com/uptrace/bun"
)

// Entry : Entry Model
//
// One debit or credit leg of a transaction against one account. Amount is
// a strictly positive integer in minor currency units.
type Entry struct {
	bun.BaseModel `bun:"table:entries"`

	ID            int64        `bun:",pk,autoincrement"`
	AccountID     int64        `bun:",notnull"`
	Account       *Account     `bun:"rel:belongs-to,join:account_id=id"`
	TransactionID int64        `bun:",notnull"`
	Transaction   *Transaction `bun:"rel:belongs-to,join:transaction_id=id"`
	Type          string       `bun:",notnull"`
	Amount        int64        `bun:",notnull"`
	Description   string       `bun:",nullzero"`
	Metadata      string       `bun:",nullzero"`
	CreatedAt     time.Time    `bun:",nullzero,notnull,default:current_timestamp"`
}
