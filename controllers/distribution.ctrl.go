package controllers

import (
	"net/http"
	"strconv"

	"github.com/givehub/givehub.go/lib/responses"
	"github.com/givehub/givehub.go/lib/service"
	"github.com/labstack/echo/v4"
)

// DistributionController : DistributionController struct
type DistributionController struct {
	svc *service.LedgerService
}

func NewDistributionController(svc *service.LedgerService) *DistributionController {
	return &DistributionController{svc: svc}
}

type DistributeResponseBody struct {
	TotalDistributed int64 `json:"total_distributed"`
	BeneficiaryCount int   `json:"beneficiary_count"`
	DistributionRows int   `json:"distribution_rows"`
}

// Distribute : Run a distribution round for a campaign
func (controller *DistributionController) Distribute(c echo.Context) error {
	campaignID, err := strconv.ParseInt(c.Param("campaign_id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}

	result, err := controller.svc.DistributeCampaignFunds(c.Request().Context(), campaignID)
	if err != nil {
		return svcErrorResponse(c, err)
	}

	return c.JSON(http.StatusOK, &DistributeResponseBody{
		TotalDistributed: result.TotalDistributed,
		BeneficiaryCount: result.BeneficiaryCount,
		DistributionRows: len(result.Distributions),
	})
}

// GetMyDistributions : Payouts the calling user received as beneficiary
func (controller *DistributionController) GetMyDistributions(c echo.Context) error {
	userID := c.Get("UserID").(int64)
	distributions, err := controller.svc.GetDistributionsByBeneficiary(c.Request().Context(), userID)
	if err != nil {
		return svcErrorResponse(c, err)
	}
	return c.JSON(http.StatusOK, distributions)
}
