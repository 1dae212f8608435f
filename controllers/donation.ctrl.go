package controllers

import (
	"net/http"
	"strconv"

	"github.com/givehub/givehub.go/lib/responses"
	"github.com/givehub/givehub.go/lib/service"
	"github.com/labstack/echo/v4"
)

// DonationController : DonationController struct
type DonationController struct {
	svc *service.LedgerService
}

func NewDonationController(svc *service.LedgerService) *DonationController {
	return &DonationController{svc: svc}
}

type DonateRequestBody struct {
	CampaignID int64 `json:"campaign_id" validate:"required"`
	Amount     int64 `json:"amount" validate:"required,gt=0"`
}

type DonateResponseBody struct {
	ID            int64 `json:"id"`
	CampaignID    int64 `json:"campaign_id"`
	Amount        int64 `json:"amount"`
	TransactionID int64 `json:"transaction_id"`
}

// Donate : Donate Controller
func (controller *DonationController) Donate(c echo.Context) error {
	userID := c.Get("UserID").(int64)

	var body DonateRequestBody
	if err := c.Bind(&body); err != nil {
		c.Logger().Errorf("Failed to load donate request body: %v", err)
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}
	if err := c.Validate(&body); err != nil {
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}

	donation, err := controller.svc.CreateDonation(c.Request().Context(), userID, body.CampaignID, body.Amount)
	if err != nil {
		return svcErrorResponse(c, err)
	}

	return c.JSON(http.StatusOK, &DonateResponseBody{
		ID:            donation.ID,
		CampaignID:    donation.CampaignID,
		Amount:        donation.Amount,
		TransactionID: donation.TransactionID,
	})
}

// GetDonations : List the calling user's donations
func (controller *DonationController) GetDonations(c echo.Context) error {
	userID := c.Get("UserID").(int64)
	donations, err := controller.svc.DonationsFor(c.Request().Context(), userID)
	if err != nil {
		return svcErrorResponse(c, err)
	}
	return c.JSON(http.StatusOK, donations)
}

// GetDonationDistributions : Where did one donation's money go
func (controller *DonationController) GetDonationDistributions(c echo.Context) error {
	donationID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}
	views, err := controller.svc.GetDistributionsByDonation(c.Request().Context(), donationID)
	if err != nil {
		return svcErrorResponse(c, err)
	}
	return c.JSON(http.StatusOK, views)
}
