package controllers

import (
	"net/http"
	"strconv"

	"github.com/givehub/givehub.go/lib/responses"
	"github.com/givehub/givehub.go/lib/service"
	"github.com/labstack/echo/v4"
)

// DepositController : DepositController struct
type DepositController struct {
	svc *service.LedgerService
}

func NewDepositController(svc *service.LedgerService) *DepositController {
	return &DepositController{svc: svc}
}

type CreateDepositRequestBody struct {
	Amount    int64  `json:"amount" validate:"required,gt=0"`
	TokenType string `json:"token_type"`
}

type CreateDepositResponseBody struct {
	ID         int64  `json:"id"`
	Amount     int64  `json:"amount"`
	FeesAmount int64  `json:"fees_amount"`
	IntentID   string `json:"intent_id"`
	Status     string `json:"status"`
}

// CreateDeposit : Create Deposit Controller
//
// Opens a pending deposit and hands the payment intent id back to the
// client. The wallet is credited later, when the gateway confirms.
func (controller *DepositController) CreateDeposit(c echo.Context) error {
	userID := c.Get("UserID").(int64)

	var body CreateDepositRequestBody
	if err := c.Bind(&body); err != nil {
		c.Logger().Errorf("Failed to load create deposit request body: %v", err)
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}
	if err := c.Validate(&body); err != nil {
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}

	deposit, err := controller.svc.CreateDeposit(c.Request().Context(), userID, body.Amount, body.TokenType)
	if err != nil {
		return svcErrorResponse(c, err)
	}

	return c.JSON(http.StatusOK, &CreateDepositResponseBody{
		ID:         deposit.ID,
		Amount:     deposit.Amount,
		FeesAmount: deposit.FeesAmount,
		IntentID:   deposit.IntentID,
		Status:     deposit.Status,
	})
}

// ConfirmDeposit : Admin endpoint to settle a pending deposit manually.
// The pending-deposit checker settles gateway-confirmed deposits on its
// own; this exists for support interventions.
func (controller *DepositController) ConfirmDeposit(c echo.Context) error {
	depositID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}
	deposit, err := controller.svc.ConfirmDeposit(c.Request().Context(), depositID)
	if err != nil {
		return svcErrorResponse(c, err)
	}
	return c.JSON(http.StatusOK, deposit)
}

// GetDeposits : List the calling user's deposits
func (controller *DepositController) GetDeposits(c echo.Context) error {
	userID := c.Get("UserID").(int64)
	deposits, err := controller.svc.DepositsFor(c.Request().Context(), userID)
	if err != nil {
		return svcErrorResponse(c, err)
	}
	return c.JSON(http.StatusOK, deposits)
}
