package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/givehub/givehub.go/common"
	"github.com/givehub/givehub.go/db/models"
	"github.com/uptrace/bun"
)

type CampaignSpec struct {
	Title        string
	Description  string
	OrganizerID  int64
	SingleTarget int64
	Country      string
	City         string
}

// CreateCampaign provisions a campaign together with its ledger account,
// mirroring the per-user wallet provisioning in CreateUser.
func (svc *LedgerService) CreateCampaign(ctx context.Context, spec CampaignSpec) (*models.Campaign, error) {
	campaign := &models.Campaign{
		Title:        spec.Title,
		Description:  spec.Description,
		OrganizerID:  spec.OrganizerID,
		SingleTarget: spec.SingleTarget,
		Country:      spec.Country,
		City:         spec.City,
		Status:       "active",
	}
	err := svc.DB.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		if _, err := tx.NewInsert().Model(campaign).Exec(ctx); err != nil {
			return err
		}
		account, err := svc.CreateAccount(ctx, AccountSpec{
			Name:          spec.Title,
			Type:          common.AccountTypeAsset,
			NormalBalance: common.NormalBalanceCredit,
			CampaignID:    campaign.ID,
		}, tx)
		if err != nil {
			return err
		}
		campaign.Account = account
		return nil
	})
	if err != nil {
		return nil, err
	}
	return campaign, nil
}

// campaignLockQuery and campaignAccountLockQuery build the row-lock reads
// the money-moving flows take on a campaign. They stay single-table because
// Postgres rejects FOR UPDATE on the nullable side of an outer join, so a
// campaign and its account are never locked through a joined relation.
func (svc *LedgerService) campaignLockQuery(idb bun.IDB, campaign *models.Campaign, campaignID int64) *bun.SelectQuery {
	return svc.lockForUpdate(idb.NewSelect().Model(campaign).Where("id = ?", campaignID).Limit(1))
}

func (svc *LedgerService) campaignAccountLockQuery(idb bun.IDB, account *models.Account, campaignID int64) *bun.SelectQuery {
	return svc.lockForUpdate(idb.NewSelect().Model(account).Where("campaign_id = ?", campaignID).Limit(1))
}

func (svc *LedgerService) FindCampaign(ctx context.Context, campaignID int64) (*models.Campaign, error) {
	campaign := &models.Campaign{}
	err := svc.DB.NewSelect().Model(campaign).Relation("Account").Where("campaign.id = ?", campaignID).Limit(1).Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: campaign %d", ErrNotFound, campaignID)
	}
	if err != nil {
		return nil, err
	}
	return campaign, nil
}

// AddBeneficiary attaches a user as beneficiary of a campaign and bumps
// the campaign's declared beneficiary count.
func (svc *LedgerService) AddBeneficiary(ctx context.Context, campaignID, userID int64) (*models.BeneficiaryCampaign, error) {
	beneficiaryCampaign := &models.BeneficiaryCampaign{
		UserID:     userID,
		CampaignID: campaignID,
	}
	err := svc.DB.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		exists, err := tx.NewSelect().Model((*models.BeneficiaryCampaign)(nil)).
			Where("user_id = ? AND campaign_id = ?", userID, campaignID).Exists(ctx)
		if err != nil {
			return err
		}
		if exists {
			return fmt.Errorf("%w: user %d is already a beneficiary of campaign %d", ErrConflict, userID, campaignID)
		}
		if _, err := tx.NewInsert().Model(beneficiaryCampaign).Exec(ctx); err != nil {
			return err
		}
		_, err = tx.NewUpdate().Model((*models.Campaign)(nil)).
			Set("num_beneficiaries = num_beneficiaries + 1").
			Where("id = ?", campaignID).
			Exec(ctx)
		return err
	})
	if err != nil {
		return nil, err
	}
	return beneficiaryCampaign, nil
}
