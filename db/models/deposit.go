package models

import (
	"time"

	"github.com/uptrace/bun"
)

// Deposit : Deposit Model
//
// Amount is net of fees; the gross amount received from the payment
// gateway is Amount + FeesAmount. IntentID is the gateway's reference used
// by the pending-deposit checker.
type Deposit struct {
	bun.BaseModel `bun:"table:deposits"`

	ID            int64        `bun:",pk,autoincrement"`
	Amount        int64        `bun:",notnull"`
	FeesAmount    int64        `bun:",notnull,default:0"`
	UserID        int64        `bun:",notnull"`
	User          *User        `bun:"rel:belongs-to,join:user_id=id"`
	IntentID      string       `bun:",nullzero"`
	TokenType     string       `bun:",nullzero"`
	TransactionID int64        `bun:",nullzero"`
	Transaction   *Transaction `bun:"rel:belongs-to,join:transaction_id=id"`
	Status        string       `bun:",notnull,default:'pending'"`
	CreatedAt     time.Time    `bun:",nullzero,notnull,default:current_timestamp"`
	UpdatedAt     time.Time    `bun:",nullzero,notnull,default:current_timestamp"`
}
