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

// CreateDonation moves amount (minor units) from the donor's wallet into
// the campaign account. The ledger transaction, the donation row, the
// campaign total and the donor notification commit or roll back as one
// unit.
func (svc *LedgerService) CreateDonation(ctx context.Context, userID, campaignID, amount int64) (*models.Donation, error) {
	if amount <= 0 {
		return nil, fmt.Errorf("%w: donation amount must be positive", ErrBadRequest)
	}

	donation := &models.Donation{}
	err := svc.DB.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		userAccount, err := svc.lockedAccountByUserID(ctx, tx, userID)
		if err != nil {
			return err
		}
		if userAccount.AvailableBalance < amount {
			return fmt.Errorf("%w: balance %d, donation %d", ErrInsufficientFunds, userAccount.AvailableBalance, amount)
		}

		campaign := &models.Campaign{}
		err = svc.campaignLockQuery(tx, campaign, campaignID).Scan(ctx)
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

		transaction, err := svc.CreateTransaction(ctx, TransactionSpec{
			TransactionDate: time.Now(),
			Status:          common.TransactionStatusPosted,
			Description:     fmt.Sprintf("Donation from user %d to campaign %d", userID, campaignID),
			Entries: []EntrySpec{
				{AccountID: userAccount.ID, Type: common.EntryTypeDebit, Amount: amount},
				{AccountID: campaignAccount.ID, Type: common.EntryTypeCredit, Amount: amount},
			},
		}, tx)
		if err != nil {
			return err
		}

		donation.Status = common.DonationStatusSuccess
		donation.UserID = userID
		donation.Amount = amount
		donation.CampaignID = campaignID
		donation.TransactionID = transaction.ID
		if _, err := tx.NewInsert().Model(donation).Exec(ctx); err != nil {
			return err
		}

		if _, err := svc.createNotification(ctx, tx,
			"Successful Donation",
			fmt.Sprintf("You donated %.2f$ to campaign %s", float64(amount)/100, campaign.Title),
			"تبرع ناجح",
			fmt.Sprintf("لقد قمت بالتبرع بمبلغ %.2f$ للحملة %s", float64(amount)/100, campaign.Title),
			userID, transaction.ID); err != nil {
			return err
		}

		_, err = tx.NewUpdate().Model((*models.Campaign)(nil)).
			Set("total_collected = total_collected + ?", amount).
			Where("id = ?", campaignID).
			Exec(ctx)
		return err
	})
	if err != nil {
		return nil, err
	}

	svc.publishEvent(LedgerEvent{
		Type:          "donation.settled",
		UserID:        userID,
		CampaignID:    campaignID,
		TransactionID: donation.TransactionID,
		Amount:        donation.Amount,
	})
	return donation, nil
}

func (svc *LedgerService) FindDonation(ctx context.Context, donationID int64) (*models.Donation, error) {
	donation := &models.Donation{}
	err := svc.DB.NewSelect().Model(donation).Where("id = ?", donationID).Limit(1).Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: donation %d", ErrNotFound, donationID)
	}
	if err != nil {
		return nil, err
	}
	return donation, nil
}

func (svc *LedgerService) DonationsFor(ctx context.Context, userID int64) ([]models.Donation, error) {
	donations := []models.Donation{}
	err := svc.DB.NewSelect().Model(&donations).Where("user_id = ?", userID).OrderExpr("id DESC").Limit(100).Scan(ctx)
	return donations, err
}
