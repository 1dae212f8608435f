package service

import (
	"context"
	"testing"

	"github.com/givehub/givehub.go/common"
	"github.com/givehub/givehub.go/db/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestCampaign(t *testing.T, svc *LedgerService, singleTarget int64) *models.Campaign {
	t.Helper()
	organizerID := createTestUser(t, svc)
	campaign, err := svc.CreateCampaign(context.Background(), CampaignSpec{
		Title:        "Water wells",
		OrganizerID:  organizerID,
		SingleTarget: singleTarget,
	})
	require.NoError(t, err)
	return campaign
}

func TestCreateDonationMovesFunds(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	donorID := createTestUser(t, svc)
	fundUser(t, svc, donorID, 5000)
	campaign := createTestCampaign(t, svc, 500)

	donation, err := svc.CreateDonation(ctx, donorID, campaign.ID, 1000)
	require.NoError(t, err)
	assert.Equal(t, common.DonationStatusSuccess, donation.Status)
	assert.NotZero(t, donation.TransactionID)

	assert.Equal(t, int64(4000), userBalance(t, svc, donorID))

	campaignAccount, err := svc.FindAccountByCampaignID(ctx, campaign.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1000), campaignAccount.AvailableBalance)

	reloaded, err := svc.FindCampaign(ctx, campaign.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1000), reloaded.TotalCollected)

	// the donor got a notification tied to the ledger transaction
	notifications, err := svc.NotificationsFor(ctx, donorID)
	require.NoError(t, err)
	require.Len(t, notifications, 1)
	assert.Equal(t, donation.TransactionID, notifications[0].TransactionID)
}

func TestCreateDonationInsufficientFunds(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	donorID := createTestUser(t, svc)
	fundUser(t, svc, donorID, 100)
	campaign := createTestCampaign(t, svc, 500)

	_, err := svc.CreateDonation(ctx, donorID, campaign.ID, 1000)
	assert.ErrorIs(t, err, ErrInsufficientFunds)

	// nothing moved
	assert.Equal(t, int64(100), userBalance(t, svc, donorID))
	campaignAccount, err := svc.FindAccountByCampaignID(ctx, campaign.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), campaignAccount.AvailableBalance)
}

func TestCreateDonationRejectsBadInput(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	donorID := createTestUser(t, svc)
	fundUser(t, svc, donorID, 1000)

	_, err := svc.CreateDonation(ctx, donorID, 1, 0)
	assert.ErrorIs(t, err, ErrBadRequest)

	_, err = svc.CreateDonation(ctx, donorID, 99999, 100)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDonationEventPublished(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	donorID := createTestUser(t, svc)
	fundUser(t, svc, donorID, 1000)
	campaign := createTestCampaign(t, svc, 500)

	events, unsubscribe, err := svc.SubscribeLedgerEvents()
	require.NoError(t, err)
	defer unsubscribe()

	received := make(chan LedgerEvent, 1)
	go func() {
		received <- <-events
	}()

	donation, err := svc.CreateDonation(ctx, donorID, campaign.ID, 250)
	require.NoError(t, err)

	event := <-received
	assert.Equal(t, "donation.settled", event.Type)
	assert.Equal(t, donorID, event.UserID)
	assert.Equal(t, donation.TransactionID, event.TransactionID)
	assert.Equal(t, int64(250), event.Amount)
}

// Forces the donation row insert to fail after the ledger transaction has
// been written inside the same database transaction, and checks that the
// ledger transaction rolls back with it.
func TestCreateDonationRollsBackLedgerOnFailure(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	donorID := createTestUser(t, svc)
	fundUser(t, svc, donorID, 2000)
	campaign := createTestCampaign(t, svc, 500)

	transactionsBefore, err := svc.DB.NewSelect().Model((*models.Transaction)(nil)).Count(ctx)
	require.NoError(t, err)
	entriesBefore, err := svc.DB.NewSelect().Model((*models.Entry)(nil)).Count(ctx)
	require.NoError(t, err)

	_, err = svc.DB.NewDropTable().Model((*models.Donation)(nil)).Exec(ctx)
	require.NoError(t, err)

	_, err = svc.CreateDonation(ctx, donorID, campaign.ID, 500)
	require.Error(t, err)

	transactionsAfter, err := svc.DB.NewSelect().Model((*models.Transaction)(nil)).Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, transactionsBefore, transactionsAfter)
	entriesAfter, err := svc.DB.NewSelect().Model((*models.Entry)(nil)).Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, entriesBefore, entriesAfter)

	assert.Equal(t, int64(2000), userBalance(t, svc, donorID))

	campaignAccount, err := svc.FindAccountByCampaignID(ctx, campaign.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), campaignAccount.AvailableBalance)

	refreshed, err := svc.FindCampaign(ctx, campaign.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), refreshed.TotalCollected)
}
