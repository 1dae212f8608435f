package controllers

import (
	"net/http"

	"github.com/givehub/givehub.go/lib/service"
	"github.com/labstack/echo/v4"
)

// BalanceController : BalanceController struct
type BalanceController struct {
	svc *service.LedgerService
}

func NewBalanceController(svc *service.LedgerService) *BalanceController {
	return &BalanceController{svc: svc}
}

type BalanceResponse struct {
	AvailableBalance int64 `json:"available_balance"`
}

// Balance : Balance Controller
func (controller *BalanceController) Balance(c echo.Context) error {
	userId := c.Get("UserID").(int64)
	balance, err := controller.svc.CurrentUserBalance(c.Request().Context(), userId)
	if err != nil {
		return svcErrorResponse(c, err)
	}
	return c.JSON(http.StatusOK, &BalanceResponse{
		AvailableBalance: balance,
	})
}
