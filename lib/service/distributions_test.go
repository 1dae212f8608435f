package service

import (
	"context"
	"testing"

	"github.com/givehub/givehub.go/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Worked example: single_target 500, two beneficiaries, campaign balance
// 1200 from two donations (1000 then 200). Each beneficiary receives 500,
// both payouts are carved FIFO out of the first donation, which ends up
// fully consumed; the campaign keeps 200.
func TestDistributeCampaignFunds(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	donorID := createTestUser(t, svc)
	fundUser(t, svc, donorID, 2000)
	campaign := createTestCampaign(t, svc, 500)

	beneficiaryA := createTestUser(t, svc)
	beneficiaryB := createTestUser(t, svc)
	_, err := svc.AddBeneficiary(ctx, campaign.ID, beneficiaryA)
	require.NoError(t, err)
	_, err = svc.AddBeneficiary(ctx, campaign.ID, beneficiaryB)
	require.NoError(t, err)

	firstDonation, err := svc.CreateDonation(ctx, donorID, campaign.ID, 1000)
	require.NoError(t, err)
	secondDonation, err := svc.CreateDonation(ctx, donorID, campaign.ID, 200)
	require.NoError(t, err)

	result, err := svc.DistributeCampaignFunds(ctx, campaign.ID)
	require.NoError(t, err)

	assert.Equal(t, int64(1000), result.TotalDistributed)
	assert.Equal(t, 2, result.BeneficiaryCount)
	require.Len(t, result.Distributions, 2)
	for _, distribution := range result.Distributions {
		assert.Equal(t, firstDonation.ID, distribution.DonationID)
		assert.Equal(t, int64(500), distribution.Amount)
		assert.Equal(t, common.DistributionStatusCompleted, distribution.Status)
		assert.NotZero(t, distribution.TransactionID)
	}

	assert.Equal(t, int64(500), userBalance(t, svc, beneficiaryA))
	assert.Equal(t, int64(500), userBalance(t, svc, beneficiaryB))

	campaignAccount, err := svc.FindAccountByCampaignID(ctx, campaign.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(200), campaignAccount.AvailableBalance)

	// first donation fully consumed, second untouched
	views, err := svc.GetDistributionsByDonation(ctx, firstDonation.ID)
	require.NoError(t, err)
	assert.Len(t, views, 2)

	views, err = svc.GetDistributionsByDonation(ctx, secondDonation.ID)
	require.NoError(t, err)
	assert.Len(t, views, 0)
}

func TestDistributeRequiresBeneficiaries(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	donorID := createTestUser(t, svc)
	fundUser(t, svc, donorID, 2000)
	campaign := createTestCampaign(t, svc, 500)
	_, err := svc.CreateDonation(ctx, donorID, campaign.ID, 1500)
	require.NoError(t, err)

	_, err = svc.DistributeCampaignFunds(ctx, campaign.ID)
	assert.ErrorIs(t, err, ErrBadRequest)
}

func TestDistributeRequiresCoveringBalance(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	donorID := createTestUser(t, svc)
	fundUser(t, svc, donorID, 2000)
	campaign := createTestCampaign(t, svc, 500)

	beneficiaryA := createTestUser(t, svc)
	beneficiaryB := createTestUser(t, svc)
	_, err := svc.AddBeneficiary(ctx, campaign.ID, beneficiaryA)
	require.NoError(t, err)
	_, err = svc.AddBeneficiary(ctx, campaign.ID, beneficiaryB)
	require.NoError(t, err)

	// balance exactly single_target * beneficiaries is not enough
	_, err = svc.CreateDonation(ctx, donorID, campaign.ID, 1000)
	require.NoError(t, err)

	_, err = svc.DistributeCampaignFunds(ctx, campaign.ID)
	assert.ErrorIs(t, err, ErrBadRequest)

	// nothing moved
	assert.Equal(t, int64(0), userBalance(t, svc, beneficiaryA))
	campaignAccount, err := svc.FindAccountByCampaignID(ctx, campaign.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1000), campaignAccount.AvailableBalance)
}

func TestDistributeHealsBeneficiaryCount(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	donorID := createTestUser(t, svc)
	fundUser(t, svc, donorID, 3000)
	campaign := createTestCampaign(t, svc, 500)

	beneficiaryID := createTestUser(t, svc)
	_, err := svc.AddBeneficiary(ctx, campaign.ID, beneficiaryID)
	require.NoError(t, err)

	// drift the declared count
	_, err = svc.DB.NewUpdate().Table("campaigns").
		Set("num_beneficiaries = ?", 5).
		Where("id = ?", campaign.ID).
		Exec(ctx)
	require.NoError(t, err)

	_, err = svc.CreateDonation(ctx, donorID, campaign.ID, 2000)
	require.NoError(t, err)

	result, err := svc.DistributeCampaignFunds(ctx, campaign.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(500), result.TotalDistributed)

	reloaded, err := svc.FindCampaign(ctx, campaign.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), reloaded.NumBeneficiaries)
}

func TestDistributeConsumesDonationsFIFO(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	donorID := createTestUser(t, svc)
	fundUser(t, svc, donorID, 2000)
	campaign := createTestCampaign(t, svc, 600)

	beneficiaryID := createTestUser(t, svc)
	_, err := svc.AddBeneficiary(ctx, campaign.ID, beneficiaryID)
	require.NoError(t, err)

	firstDonation, err := svc.CreateDonation(ctx, donorID, campaign.ID, 400)
	require.NoError(t, err)
	secondDonation, err := svc.CreateDonation(ctx, donorID, campaign.ID, 400)
	require.NoError(t, err)

	// payout of 600 spans both donations: 400 + 200
	result, err := svc.DistributeCampaignFunds(ctx, campaign.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(600), result.TotalDistributed)
	require.Len(t, result.Distributions, 2)
	assert.Equal(t, firstDonation.ID, result.Distributions[0].DonationID)
	assert.Equal(t, int64(400), result.Distributions[0].Amount)
	assert.Equal(t, secondDonation.ID, result.Distributions[1].DonationID)
	assert.Equal(t, int64(200), result.Distributions[1].Amount)

	// a second round has 200 left, below the covering guard
	_, err = svc.DistributeCampaignFunds(ctx, campaign.ID)
	assert.ErrorIs(t, err, ErrBadRequest)
}

func TestGetDistributionsByBeneficiary(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	donorID := createTestUser(t, svc)
	fundUser(t, svc, donorID, 3000)
	campaign := createTestCampaign(t, svc, 500)

	beneficiaryID := createTestUser(t, svc)
	_, err := svc.AddBeneficiary(ctx, campaign.ID, beneficiaryID)
	require.NoError(t, err)

	_, err = svc.CreateDonation(ctx, donorID, campaign.ID, 1500)
	require.NoError(t, err)
	_, err = svc.DistributeCampaignFunds(ctx, campaign.ID)
	require.NoError(t, err)

	distributions, err := svc.GetDistributionsByBeneficiary(ctx, beneficiaryID)
	require.NoError(t, err)
	require.Len(t, distributions, 1)
	assert.Equal(t, int64(500), distributions[0].Amount)

	none, err := svc.GetDistributionsByBeneficiary(ctx, donorID)
	require.NoError(t, err)
	assert.Len(t, none, 0)
}
