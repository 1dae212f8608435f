package controllers

import (
	"net/http"

	"github.com/givehub/givehub.go/lib/service"
	"github.com/labstack/echo/v4"
)

// ReconcileController : ReconcileController struct
type ReconcileController struct {
	svc *service.LedgerService
}

func NewReconcileController(svc *service.LedgerService) *ReconcileController {
	return &ReconcileController{svc: svc}
}

// Reconcile : Admin endpoint recomputing every account's posted balance
// from its entries.
func (controller *ReconcileController) Reconcile(c echo.Context) error {
	err := controller.svc.UpdateAllBalances(c.Request().Context())
	if err != nil {
		return svcErrorResponse(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"reconciled": true})
}
