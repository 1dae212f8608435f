package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/givehub/givehub.go/common"
	"github.com/givehub/givehub.go/db/models"
	"github.com/givehub/givehub.go/lib/responses"
	"github.com/givehub/givehub.go/lib/service"
	"github.com/labstack/echo/v4"
)

// TransactionController : TransactionController struct
//
// Admin surface of the ledger engine. User-facing money movements go
// through their own flows (donations, transfers, deposits, withdrawals),
// this controller is for manual journal entries and corrections.
type TransactionController struct {
	svc *service.LedgerService
}

func NewTransactionController(svc *service.LedgerService) *TransactionController {
	return &TransactionController{svc: svc}
}

type EntryRequest struct {
	AccountNumber string `json:"account_number" validate:"required"`
	Type          string `json:"type" validate:"required,oneof=debit credit"`
	Amount        int64  `json:"amount" validate:"required,gt=0"`
	Description   string `json:"description"`
}

type CreateTransactionRequestBody struct {
	Description     string         `json:"description"`
	TransactionDate time.Time      `json:"transaction_date"`
	Status          string         `json:"status" validate:"omitempty,oneof=pending posted"`
	ExternalID      string         `json:"external_id"`
	Entries         []EntryRequest `json:"entries" validate:"required,min=2,dive"`
}

type TransactionResponseBody struct {
	ID                int64          `json:"id"`
	TransactionNumber string         `json:"transaction_number"`
	Description       string         `json:"description"`
	TransactionDate   time.Time      `json:"transaction_date"`
	Status            string         `json:"status"`
	Entries           []models.Entry `json:"entries,omitempty"`
}

// CreateTransaction : Create Transaction Controller
func (controller *TransactionController) CreateTransaction(c echo.Context) error {
	var body CreateTransactionRequestBody

	if err := c.Bind(&body); err != nil {
		c.Logger().Errorf("Failed to load create transaction request body: %v", err)
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}
	if err := c.Validate(&body); err != nil {
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}

	spec := service.TransactionSpec{
		Description:     body.Description,
		TransactionDate: body.TransactionDate,
		Status:          body.Status,
		ExternalID:      body.ExternalID,
	}
	if spec.Status == "" {
		spec.Status = common.TransactionStatusPending
	}
	ctx := c.Request().Context()
	for _, entry := range body.Entries {
		account, err := controller.svc.FindAccountByNumber(ctx, entry.AccountNumber)
		if err != nil {
			return svcErrorResponse(c, err)
		}
		spec.Entries = append(spec.Entries, service.EntrySpec{
			AccountID:   account.ID,
			Type:        entry.Type,
			Amount:      entry.Amount,
			Description: entry.Description,
		})
	}

	transaction, err := controller.svc.CreateTransaction(ctx, spec, nil)
	if err != nil {
		return svcErrorResponse(c, err)
	}
	return c.JSON(http.StatusOK, transactionResponse(transaction))
}

// GetTransaction : Get Transaction Controller
func (controller *TransactionController) GetTransaction(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}
	transaction, err := controller.svc.FindTransaction(c.Request().Context(), id)
	if err != nil {
		return svcErrorResponse(c, err)
	}
	return c.JSON(http.StatusOK, transactionResponse(transaction))
}

// PostTransaction : Post Transaction Controller
func (controller *TransactionController) PostTransaction(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}
	transaction, err := controller.svc.PostTransaction(c.Request().Context(), id)
	if err != nil {
		return svcErrorResponse(c, err)
	}
	return c.JSON(http.StatusOK, transactionResponse(transaction))
}

// VoidTransaction : Void Transaction Controller
func (controller *TransactionController) VoidTransaction(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}
	transaction, err := controller.svc.VoidTransaction(c.Request().Context(), id)
	if err != nil {
		return svcErrorResponse(c, err)
	}
	return c.JSON(http.StatusOK, transactionResponse(transaction))
}

func transactionResponse(transaction *models.Transaction) *TransactionResponseBody {
	return &TransactionResponseBody{
		ID:                transaction.ID,
		TransactionNumber: transaction.TransactionNumber,
		Description:       transaction.Description,
		TransactionDate:   transaction.TransactionDate,
		Status:            transaction.Status,
		Entries:           transaction.Entries,
	}
}
