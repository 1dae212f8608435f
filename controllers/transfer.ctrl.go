package controllers

import (
	"net/http"

	"github.com/givehub/givehub.go/lib/responses"
	"github.com/givehub/givehub.go/lib/service"
	"github.com/labstack/echo/v4"
)

// TransferController : TransferController struct
type TransferController struct {
	svc *service.LedgerService
}

func NewTransferController(svc *service.LedgerService) *TransferController {
	return &TransferController{svc: svc}
}

type TransferRequestBody struct {
	ReceiverLogin string `json:"receiver_login" validate:"required"`
	Amount        int64  `json:"amount" validate:"required,gt=0"`
}

type TransferResponseBody struct {
	ID            int64 `json:"id"`
	Amount        int64 `json:"amount"`
	FeesAmount    int64 `json:"fees_amount"`
	TransactionID int64 `json:"transaction_id"`
}

// Transfer : Transfer Controller
func (controller *TransferController) Transfer(c echo.Context) error {
	senderUserID := c.Get("UserID").(int64)

	var body TransferRequestBody
	if err := c.Bind(&body); err != nil {
		c.Logger().Errorf("Failed to load transfer request body: %v", err)
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}
	if err := c.Validate(&body); err != nil {
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}

	receiver, err := controller.svc.FindUserByLogin(c.Request().Context(), body.ReceiverLogin)
	if err != nil {
		return svcErrorResponse(c, err)
	}

	transfer, err := controller.svc.CreateTransfer(c.Request().Context(), senderUserID, receiver.ID, body.Amount)
	if err != nil {
		return svcErrorResponse(c, err)
	}

	return c.JSON(http.StatusOK, &TransferResponseBody{
		ID:            transfer.ID,
		Amount:        transfer.Amount,
		FeesAmount:    transfer.FeesAmount,
		TransactionID: transfer.TransactionID,
	})
}

// GetTransfers : List the calling user's transfers
func (controller *TransferController) GetTransfers(c echo.Context) error {
	userID := c.Get("UserID").(int64)
	transfers, err := controller.svc.TransfersFor(c.Request().Context(), userID)
	if err != nil {
		return svcErrorResponse(c, err)
	}
	return c.JSON(http.StatusOK, transfers)
}
