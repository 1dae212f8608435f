package models

import (
	"time"

	"github.com/uptrace/bun"
)

// Transfer : Transfer Model
type Transfer struct {
	bun.BaseModel `bun:"table:transfers"`

	ID             int64        `bun:",pk,autoincrement"`
	Amount         int64        `bun:",notnull"`
	FeesAmount     int64        `bun:",notnull,default:0"`
	SenderUserID   int64        `bun:",notnull"`
	Sender         *User        `bun:"rel:belongs-to,join:sender_user_id=id"`
	ReceiverUserID int64        `bun:",notnull"`
	Receiver       *User        `bun:"rel:belongs-to,join:receiver_user_id=id"`
	TransactionID  int64        `bun:",notnull"`
	Transaction    *Transaction `bun:"rel:belongs-to,join:transaction_id=id"`
	Status         string       `bun:",notnull,default:'success'"`
	CreatedAt      time.Time    `bun:",nullzero,notnull,default:current_timestamp"`
}
