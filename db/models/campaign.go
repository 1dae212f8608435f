package models

import (
	"time"

	"github.com/uptrace/bun"
)

// Campaign : Campaign Model
//
// SingleTarget is the fixed per-beneficiary payout cap for one
// distribution run, in minor currency units. TotalCollected accumulates
// settled donations and is only mutated together with their ledger
// transactions.
type Campaign struct {
	bun.BaseModel `bun:"table:campaigns"`

	ID                   int64                 `bun:",pk,autoincrement"`
	Title                string                `bun:",notnull"`
	Description          string                `bun:",nullzero"`
	OrganizerID          int64                 `bun:",nullzero"`
	Status               string                `bun:",notnull,default:'active'"`
	SingleTarget         int64                 `bun:",notnull,default:0"`
	NumBeneficiaries     int64                 `bun:",notnull,default:0"`
	TotalCollected       int64                 `bun:",notnull,default:0"`
	Country              string                `bun:",nullzero"`
	City                 string                `bun:",nullzero"`
	Account              *Account              `bun:"rel:has-one,join:id=campaign_id"`
	Donations            []Donation            `bun:"rel:has-many,join:id=campaign_id"`
	BeneficiaryCampaigns []BeneficiaryCampaign `bun:"rel:has-many,join:id=campaign_id"`
	CreatedAt            time.Time             `bun:",nullzero,notnull,default:current_timestamp"`
	UpdatedAt            time.Time             `bun:",nullzero,notnull,default:current_timestamp"`
}
