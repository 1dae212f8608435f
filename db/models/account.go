package models

import (
	"time"

	"github.com/uptrace/bun"
)

// Account : Account Model
//
// An account is one named ledger bucket. Wallet accounts carry either a
// user_id or a campaign_id (never both); singleton house accounts carry a
// system_role instead. Balances are stored in minor currency units.
type Account struct {
	bun.BaseModel `bun:"table:accounts"`

	ID               int64     `bun:",pk,autoincrement"`
	Name             string    `bun:",nullzero"`
	Description      string    `bun:",nullzero"`
	Type             string    `bun:",notnull"`
	NormalBalance    string    `bun:",notnull,default:'debit'"`
	PostedBalance    int64     `bun:",notnull,default:0"`
	AvailableBalance int64     `bun:",notnull,default:0"`
	PendingBalance   int64     `bun:",notnull,default:0"`
	AccountNumber    string    `bun:",nullzero,unique"`
	Currency         string    `bun:",notnull,default:'USDT'"`
	Status           string    `bun:",notnull,default:'active'"`
	IsContraAccount  bool      `bun:",notnull,default:false"`
	ParentAccountID  int64     `bun:",nullzero"`
	SystemRole       string    `bun:",nullzero"`
	UserID           int64     `bun:",nullzero"`
	User             *User     `bun:"rel:belongs-to,join:user_id=id"`
	CampaignID       int64     `bun:",nullzero"`
	Campaign         *Campaign `bun:"rel:belongs-to,join:campaign_id=id"`
	Metadata         string    `bun:",nullzero"`
	Entries          []Entry   `bun:"rel:has-many,join:id=account_id"`
	CreatedAt        time.Time `bun:",nullzero,notnull,default:current_timestamp"`
	UpdatedAt        time.Time `bun:",nullzero,notnull,default:current_timestamp"`
}
