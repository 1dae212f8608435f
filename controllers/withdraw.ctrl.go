package controllers

import (
	"net/http"

	"github.com/givehub/givehub.go/lib/responses"
	"github.com/givehub/givehub.go/lib/service"
	"github.com/labstack/echo/v4"
)

// WithdrawController : WithdrawController struct
type WithdrawController struct {
	svc *service.LedgerService
}

func NewWithdrawController(svc *service.LedgerService) *WithdrawController {
	return &WithdrawController{svc: svc}
}

type WithdrawRequestBody struct {
	Amount int64 `json:"amount" validate:"required,gt=0"`
}

type WithdrawResponseBody struct {
	ID            int64  `json:"id"`
	Amount        int64  `json:"amount"`
	FeesAmount    int64  `json:"fees_amount"`
	TransactionID int64  `json:"transaction_id"`
	Status        string `json:"status"`
}

// Withdraw : Withdraw Controller
func (controller *WithdrawController) Withdraw(c echo.Context) error {
	userID := c.Get("UserID").(int64)

	var body WithdrawRequestBody
	if err := c.Bind(&body); err != nil {
		c.Logger().Errorf("Failed to load withdraw request body: %v", err)
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}
	if err := c.Validate(&body); err != nil {
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}

	withdraw, err := controller.svc.CreateWithdraw(c.Request().Context(), userID, body.Amount)
	if err != nil {
		return svcErrorResponse(c, err)
	}

	return c.JSON(http.StatusOK, &WithdrawResponseBody{
		ID:            withdraw.ID,
		Amount:        withdraw.Amount,
		FeesAmount:    withdraw.FeesAmount,
		TransactionID: withdraw.TransactionID,
		Status:        withdraw.Status,
	})
}

// GetWithdraws : List the calling user's withdrawals
func (controller *WithdrawController) GetWithdraws(c echo.Context) error {
	userID := c.Get("UserID").(int64)
	withdraws, err := controller.svc.WithdrawsFor(c.Request().Context(), userID)
	if err != nil {
		return svcErrorResponse(c, err)
	}
	return c.JSON(http.StatusOK, withdraws)
}
