package models

import (
	"time"

	"github.com/uptrace/bun"
)

// BeneficiaryCampaign : BeneficiaryCampaign Model
//
// Join row attaching a user as beneficiary of a campaign. The
// distributed_amount accumulator is mutated only by the distribution
// engine.
type BeneficiaryCampaign struct {
	bun.BaseModel `bun:"table:beneficiary_campaigns"`

	ID                int64                     `bun:",pk,autoincrement"`
	UserID            int64                     `bun:",notnull"`
	User              *User                     `bun:"rel:belongs-to,join:user_id=id"`
	CampaignID        int64                     `bun:",notnull"`
	Campaign          *Campaign                 `bun:"rel:belongs-to,join:campaign_id=id"`
	DistributedAmount int64                     `bun:",notnull,default:0"`
	Distributions     []BeneficiaryDistribution `bun:"rel:has-many,join:id=beneficiary_campaign_id"`
	CreatedAt         time.Time                 `bun:",nullzero,notnull,default:current_timestamp"`
	UpdatedAt         time.Time                 `bun:",nullzero,notnull,default:current_timestamp"`
}

// BeneficiaryDistribution : BeneficiaryDistribution Model
//
// One payout slice. A single beneficiary payout produces one row per
// contributing donation, so every payout can be traced back to the exact
// donations that funded it. DonationID is nullable only in legacy rows.
type BeneficiaryDistribution struct {
	bun.BaseModel `bun:"table:beneficiary_distribution"`

	ID                    int64                `bun:",pk,autoincrement"`
	BeneficiaryCampaignID int64                `bun:",notnull"`
	BeneficiaryCampaign   *BeneficiaryCampaign `bun:"rel:belongs-to,join:beneficiary_campaign_id=id"`
	BeneficiaryUserID     int64                `bun:",notnull"`
	CampaignID            int64                `bun:",notnull"`
	DonationID            int64                `bun:",nullzero"`
	Donation              *Donation            `bun:"rel:belongs-to,join:donation_id=id"`
	Amount                int64                `bun:",notnull"`
	Status                string               `bun:",notnull,default:'pending'"`
	TransactionID         int64                `bun:",nullzero"`
	CreatedAt             time.Time            `bun:",nullzero,notnull,default:current_timestamp"`
}
