package models

import (
	"time"

	"github.com/uptrace/bun"
)

// Donation : Donation Model
//
// A donation is created atomically with the ledger transaction that moves
// the donor's funds into the campaign account. Its undistributed remainder
// is Amount minus the sum of its BeneficiaryDistribution rows.
type Donation struct {
	bun.BaseModel `bun:"table:donations"`

	ID            int64                     `bun:",pk,autoincrement"`
	Amount        int64                     `bun:",notnull"`
	CampaignID    int64                     `bun:",notnull"`
	Campaign      *Campaign                 `bun:"rel:belongs-to,join:campaign_id=id"`
	UserID        int64                     `bun:",notnull"`
	User          *User                     `bun:"rel:belongs-to,join:user_id=id"`
	TransactionID int64                     `bun:",notnull"`
	Transaction   *Transaction              `bun:"rel:belongs-to,join:transaction_id=id"`
	Status        string                    `bun:",notnull,default:'pending'"`
	Distributions []BeneficiaryDistribution `bun:"rel:has-many,join:id=donation_id"`
	CreatedAt     time.Time                 `bun:",nullzero,notnull,default:current_timestamp"`
	UpdatedAt     time.Time                 `bun:",nullzero,notnull,default:current_timestamp"`
}
