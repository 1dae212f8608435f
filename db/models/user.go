package models

import (
	"time"

	"github.com/uptrace/bun"
)

// User : User Model
type User struct {
	bun.BaseModel `bun:"table:users"`

	ID          int64     `bun:",pk,autoincrement"`
	Login       string    `bun:",unique,notnull"`
	Password    string    `bun:",notnull"`
	Name        string    `bun:",nullzero"`
	Email       string    `bun:",nullzero"`
	PhoneNumber string    `bun:",nullzero"`
	City        string    `bun:",nullzero"`
	Country     string    `bun:",nullzero"`
	Role        string    `bun:",notnull,default:'user'"`
	Status      string    `bun:",notnull,default:'active'"`
	Accounts    []Account `bun:"rel:has-many,join:id=user_id"`
	CreatedAt   time.Time `bun:",nullzero,notnull,default:current_timestamp"`
	UpdatedAt   time.Time `bun:",nullzero,notnull,default:current_timestamp"`
}
