package controllers

import (
	"net/http"
	"strconv"

	"github.com/givehub/givehub.go/lib/responses"
	"github.com/givehub/givehub.go/lib/service"
	"github.com/labstack/echo/v4"
)

// CampaignController : CampaignController struct
type CampaignController struct {
	svc *service.LedgerService
}

func NewCampaignController(svc *service.LedgerService) *CampaignController {
	return &CampaignController{svc: svc}
}

type CreateCampaignRequestBody struct {
	Title        string `json:"title" validate:"required"`
	Description  string `json:"description"`
	SingleTarget int64  `json:"single_target" validate:"required,gt=0"`
	Country      string `json:"country"`
	City         string `json:"city"`
}

type CampaignResponseBody struct {
	ID             int64  `json:"id"`
	Title          string `json:"title"`
	SingleTarget   int64  `json:"single_target"`
	TotalCollected int64  `json:"total_collected"`
	AccountNumber  string `json:"account_number,omitempty"`
}

// CreateCampaign : Create Campaign Controller
func (controller *CampaignController) CreateCampaign(c echo.Context) error {
	userID := c.Get("UserID").(int64)

	var body CreateCampaignRequestBody
	if err := c.Bind(&body); err != nil {
		c.Logger().Errorf("Failed to load create campaign request body: %v", err)
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}
	if err := c.Validate(&body); err != nil {
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}

	campaign, err := controller.svc.CreateCampaign(c.Request().Context(), service.CampaignSpec{
		Title:        body.Title,
		Description:  body.Description,
		OrganizerID:  userID,
		SingleTarget: body.SingleTarget,
		Country:      body.Country,
		City:         body.City,
	})
	if err != nil {
		return svcErrorResponse(c, err)
	}

	response := &CampaignResponseBody{
		ID:           campaign.ID,
		Title:        campaign.Title,
		SingleTarget: campaign.SingleTarget,
	}
	if campaign.Account != nil {
		response.AccountNumber = campaign.Account.AccountNumber
	}
	return c.JSON(http.StatusOK, response)
}

// GetCampaign : Get Campaign Controller
func (controller *CampaignController) GetCampaign(c echo.Context) error {
	campaignID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}
	campaign, err := controller.svc.FindCampaign(c.Request().Context(), campaignID)
	if err != nil {
		return svcErrorResponse(c, err)
	}

	response := &CampaignResponseBody{
		ID:             campaign.ID,
		Title:          campaign.Title,
		SingleTarget:   campaign.SingleTarget,
		TotalCollected: campaign.TotalCollected,
	}
	if campaign.Account != nil {
		response.AccountNumber = campaign.Account.AccountNumber
	}
	return c.JSON(http.StatusOK, response)
}

type AddBeneficiaryRequestBody struct {
	UserID int64 `json:"user_id" validate:"required"`
}

// AddBeneficiary : Attach a user as beneficiary of a campaign
func (controller *CampaignController) AddBeneficiary(c echo.Context) error {
	campaignID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}

	var body AddBeneficiaryRequestBody
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}
	if err := c.Validate(&body); err != nil {
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}

	beneficiary, err := controller.svc.AddBeneficiary(c.Request().Context(), campaignID, body.UserID)
	if err != nil {
		return svcErrorResponse(c, err)
	}
	return c.JSON(http.StatusOK, beneficiary)
}
