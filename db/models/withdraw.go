package models

import (
	"time"

	"github.com/uptrace/bun"
)

// Withdraw : Withdraw Model
type Withdraw struct {
	bun.BaseModel `bun:"table:withdraws"`

	ID            int64        `bun:",pk,autoincrement"`
	Amount        int64        `bun:",notnull"`
	FeesAmount    int64        `bun:",notnull,default:0"`
	UserID        int64        `bun:",notnull"`
	User          *User        `bun:"rel:belongs-to,join:user_id=id"`
	TransactionID int64        `bun:",nullzero"`
	Transaction   *Transaction `bun:"rel:belongs-to,join:transaction_id=id"`
	Status        string       `bun:",notnull,default:'pending'"`
	CreatedAt     time.Time    `bun:",nullzero,notnull,default:current_timestamp"`
	UpdatedAt     time.Time    `bun:",nullzero,notnull,default:current_timestamp"`
}
