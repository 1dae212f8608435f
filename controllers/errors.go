package controllers

import (
	"errors"

	"github.com/givehub/givehub.go/lib/responses"
	"github.com/givehub/givehub.go/lib/service"
	"github.com/labstack/echo/v4"
)

// svcErrorResponse translates the service layer's sentinel errors into
// their API responses. Unknown errors bubble up to the HTTPErrorHandler.
func svcErrorResponse(c echo.Context, err error) error {
	var resp responses.ErrorResponse
	switch {
	case errors.Is(err, service.ErrNotFound):
		resp = responses.NotFoundError
	case errors.Is(err, service.ErrInsufficientFunds):
		resp = responses.NotEnoughBalanceError
	case errors.Is(err, service.ErrUnbalanced):
		resp = responses.UnbalancedTransactionError
	case errors.Is(err, service.ErrInvalidState):
		resp = responses.InvalidStateError
	case errors.Is(err, service.ErrConflict):
		resp = responses.ConflictError
	case errors.Is(err, service.ErrBadRequest):
		resp = responses.BadArgumentsError
	default:
		return err
	}
	c.Logger().Errorf("Request failed: %v", err)
	return c.JSON(resp.HttpStatusCode, resp)
}
