package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/givehub/givehub.go/common"
	"github.com/givehub/givehub.go/db/models"
	"github.com/uptrace/bun"
)

type DistributionResult struct {
	TotalDistributed int64
	BeneficiaryCount int
	Distributions    []models.BeneficiaryDistribution
}

type donationRemainder struct {
	donation  *models.Donation
	remaining int64
}

// DistributeCampaignFunds pays a campaign's available balance out to its
// beneficiaries, capped at the campaign's single_target per beneficiary
// and per run, while consuming the campaign's settled donations
// oldest-first so every payout slice records which donation funded it.
//
// The whole pass is one atomic unit: a failure against any beneficiary
// rolls back every payout of this invocation. Runs for the same campaign
// are serialized.
func (svc *LedgerService) DistributeCampaignFunds(ctx context.Context, campaignID int64) (*DistributionResult, error) {
	lock := svc.campaignLock(campaignID)
	lock.Lock()
	defer lock.Unlock()

	result := &DistributionResult{}
	var events []LedgerEvent
	err := svc.DB.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		events = events[:0]
		campaign := &models.Campaign{}
		err := svc.campaignLockQuery(tx, campaign, campaignID).Scan(ctx)
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("%w: campaign %d", ErrNotFound, campaignID)
		}
		if err != nil {
			return err
		}

		campaignAccount := &models.Account{}
		err = svc.campaignAccountLockQuery(tx, campaignAccount, campaignID).Scan(ctx)
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("%w: account for campaign %d", ErrNotFound, campaignID)
		}
		if err != nil {
			return err
		}

		beneficiaries := []models.BeneficiaryCampaign{}
		err = tx.NewSelect().Model(&beneficiaries).
			Where("campaign_id = ?", campaignID).
			OrderExpr("id ASC").
			Scan(ctx)
		if err != nil {
			return err
		}
		if int64(len(beneficiaries)) != campaign.NumBeneficiaries {
			// self-heal the declared count, it drifts when beneficiaries are edited directly
			svc.Logger.Warnf("Campaign %d has %d beneficiaries, expected %d", campaignID, len(beneficiaries), campaign.NumBeneficiaries)
			campaign.NumBeneficiaries = int64(len(beneficiaries))
			if _, err := tx.NewUpdate().Model(campaign).Column("num_beneficiaries").WherePK().Exec(ctx); err != nil {
				return err
			}
		}
		if len(beneficiaries) == 0 {
			return fmt.Errorf("%w: no eligible beneficiaries found", ErrBadRequest)
		}

		// conservative guard: never start a round the balance cannot cover in full
		availableBalance := campaignAccount.AvailableBalance
		if availableBalance <= campaign.SingleTarget*int64(len(beneficiaries)) {
			return fmt.Errorf("%w: not enough funds available for distribution", ErrBadRequest)
		}

		remainders, err := svc.undistributedDonations(ctx, tx, campaignID)
		if err != nil {
			return err
		}
		if len(remainders) == 0 {
			return fmt.Errorf("%w: no donations with undistributed funds for campaign %d", ErrBadRequest, campaignID)
		}

		remainingBalance := availableBalance
		for _, beneficiaryCampaign := range beneficiaries {
			if remainingBalance <= 0 {
				break
			}

			userAccount, err := svc.lockedAccountByUserID(ctx, tx, beneficiaryCampaign.UserID)
			if err != nil {
				return err
			}

			toPay := campaign.SingleTarget
			if remainingBalance < toPay {
				toPay = remainingBalance
			}
			if toPay <= 0 {
				continue
			}

			transaction, err := svc.CreateTransaction(ctx, TransactionSpec{
				TransactionDate: time.Now(),
				Status:          common.TransactionStatusPosted,
				Description:     fmt.Sprintf("Distribution from campaign %d to beneficiary %d", campaign.ID, beneficiaryCampaign.UserID),
				Entries: []EntrySpec{
					{AccountID: campaignAccount.ID, Type: common.EntryTypeDebit, Amount: toPay},
					{AccountID: userAccount.ID, Type: common.EntryTypeCredit, Amount: toPay},
				},
			}, tx)
			if err != nil {
				return err
			}

			_, err = tx.NewUpdate().Model((*models.BeneficiaryCampaign)(nil)).
				Set("distributed_amount = distributed_amount + ?", toPay).
				Where("id = ?", beneficiaryCampaign.ID).
				Exec(ctx)
			if err != nil {
				return err
			}

			// consume the ordered donation remainders FIFO, one
			// distribution row per contributing donation
			stillOwed := toPay
			for _, remainder := range remainders {
				if stillOwed <= 0 {
					break
				}
				if remainder.remaining <= 0 {
					continue
				}
				slice := remainder.remaining
				if stillOwed < slice {
					slice = stillOwed
				}
				distribution := models.BeneficiaryDistribution{
					BeneficiaryCampaignID: beneficiaryCampaign.ID,
					BeneficiaryUserID:     beneficiaryCampaign.UserID,
					CampaignID:            beneficiaryCampaign.CampaignID,
					DonationID:            remainder.donation.ID,
					Amount:                slice,
					Status:                common.DistributionStatusCompleted,
					TransactionID:         transaction.ID,
				}
				if _, err := tx.NewInsert().Model(&distribution).Exec(ctx); err != nil {
					return err
				}
				result.Distributions = append(result.Distributions, distribution)
				remainder.remaining -= slice
				stillOwed -= slice
			}

			remainingBalance -= toPay
			events = append(events, LedgerEvent{
				Type:          "distribution.completed",
				UserID:        beneficiaryCampaign.UserID,
				CampaignID:    campaignID,
				TransactionID: transaction.ID,
				Amount:        toPay,
			})
		}

		result.TotalDistributed = availableBalance - remainingBalance
		result.BeneficiaryCount = len(beneficiaries)
		return nil
	})
	if err != nil {
		return nil, err
	}

	for _, event := range events {
		svc.publishEvent(event)
	}
	return result, nil
}

// undistributedDonations loads the campaign's settled donations oldest
// first, each with its amount not yet consumed by earlier distributions.
// Fully consumed donations are dropped.
func (svc *LedgerService) undistributedDonations(ctx context.Context, tx bun.Tx, campaignID int64) ([]*donationRemainder, error) {
	donations := []*models.Donation{}
	q := tx.NewSelect().Model(&donations).
		Where("campaign_id = ?", campaignID).
		Where("status = ?", common.DonationStatusSuccess).
		OrderExpr("created_at ASC, id ASC")
	if err := svc.lockForUpdate(q).Scan(ctx); err != nil {
		return nil, err
	}

	remainders := make([]*donationRemainder, 0, len(donations))
	for _, donation := range donations {
		var distributed int64
		err := tx.NewSelect().Model((*models.BeneficiaryDistribution)(nil)).
			ColumnExpr("COALESCE(SUM(amount), 0)").
			Where("donation_id = ?", donation.ID).
			Scan(ctx, &distributed)
		if err != nil {
			return nil, err
		}
		if remaining := donation.Amount - distributed; remaining > 0 {
			remainders = append(remainders, &donationRemainder{donation: donation, remaining: remaining})
		}
	}
	return remainders, nil
}

// DistributionView is one display row of the distribution read paths.
// Same-beneficiary-same-day slices are merged into a single row.
type DistributionView struct {
	BeneficiaryUserID int64  `json:"beneficiary_user_id"`
	BeneficiaryName   string `json:"beneficiary_name"`
	CampaignID        int64  `json:"campaign_id"`
	CampaignTitle     string `json:"campaign_title"`
	DonationID        int64  `json:"donation_id,omitempty"`
	Amount            int64  `json:"amount"`
	Date              string `json:"date"`
}

// GetDistributionsByDonation reports where one donation's money went,
// merged per beneficiary and day.
func (svc *LedgerService) GetDistributionsByDonation(ctx context.Context, donationID int64) ([]DistributionView, error) {
	distributions := []models.BeneficiaryDistribution{}
	err := svc.DB.NewSelect().Model(&distributions).
		Relation("BeneficiaryCampaign").
		Relation("BeneficiaryCampaign.User").
		Relation("BeneficiaryCampaign.Campaign").
		Where("beneficiary_distribution.donation_id = ?", donationID).
		Where("beneficiary_distribution.amount > 0").
		OrderExpr("beneficiary_distribution.id ASC").
		Scan(ctx)
	if err != nil {
		return nil, err
	}

	merged := map[string]*DistributionView{}
	order := []string{}
	for _, distribution := range distributions {
		date := distribution.CreatedAt.Format("2006-01-02")
		key := fmt.Sprintf("%d_%s", distribution.BeneficiaryUserID, date)
		view, ok := merged[key]
		if !ok {
			view = &DistributionView{
				BeneficiaryUserID: distribution.BeneficiaryUserID,
				CampaignID:        distribution.CampaignID,
				DonationID:        donationID,
				Date:              date,
			}
			if bc := distribution.BeneficiaryCampaign; bc != nil {
				if bc.User != nil {
					view.BeneficiaryName = bc.User.Name
				}
				if bc.Campaign != nil {
					view.CampaignTitle = bc.Campaign.Title
				}
			}
			merged[key] = view
			order = append(order, key)
		}
		view.Amount += distribution.Amount
	}

	views := make([]DistributionView, 0, len(order))
	for _, key := range order {
		views = append(views, *merged[key])
	}
	return views, nil
}

// GetDistributionsByBeneficiary lists every payout slice a user received
// across all campaigns they are a beneficiary of.
func (svc *LedgerService) GetDistributionsByBeneficiary(ctx context.Context, userID int64) ([]models.BeneficiaryDistribution, error) {
	beneficiaryCampaigns := []models.BeneficiaryCampaign{}
	err := svc.DB.NewSelect().Model(&beneficiaryCampaigns).Where("user_id = ?", userID).Scan(ctx)
	if err != nil {
		return nil, err
	}
	if len(beneficiaryCampaigns) == 0 {
		return []models.BeneficiaryDistribution{}, nil
	}

	ids := make([]int64, 0, len(beneficiaryCampaigns))
	for _, beneficiaryCampaign := range beneficiaryCampaigns {
		ids = append(ids, beneficiaryCampaign.ID)
	}

	distributions := []models.BeneficiaryDistribution{}
	err = svc.DB.NewSelect().Model(&distributions).
		Relation("Donation").
		Relation("BeneficiaryCampaign").
		Relation("BeneficiaryCampaign.Campaign").
		Where("beneficiary_distribution.beneficiary_campaign_id IN (?)", bun.In(ids)).
		OrderExpr("beneficiary_distribution.id DESC").
		Scan(ctx)
	return distributions, err
}
