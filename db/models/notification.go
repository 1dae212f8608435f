package models

import (
	"time"

	"github.com/uptrace/bun"
)

// Notification : Notification Model
type Notification struct {
	bun.BaseModel `bun:"table:notifications"`

	ID            int64     `bun:",pk,autoincrement"`
	Title         string    `bun:",notnull"`
	Body          string    `bun:",notnull"`
	TitleAr       string    `bun:",nullzero"`
	BodyAr        string    `bun:",nullzero"`
	UserID        int64     `bun:",notnull"`
	User          *User     `bun:"rel:belongs-to,join:user_id=id"`
	TransactionID int64     `bun:",nullzero"`
	Read          bool      `bun:",notnull,default:false"`
	CreatedAt     time.Time `bun:",nullzero,notnull,default:current_timestamp"`
}
