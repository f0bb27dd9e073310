package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/shak0x90/steadygainsinvestments-sub000/internal/contracts"
	"github.com/shak0x90/steadygainsinvestments-sub000/internal/domain/transaction"
	appErrors "github.com/shak0x90/steadygainsinvestments-sub000/internal/errors"
	"github.com/shak0x90/steadygainsinvestments-sub000/internal/pkg"
)

func (h *Handler) RequestDeposit(c *gin.Context) {
	userID, err := h.GetUserIDFromContext(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	var body contracts.DepositRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		h.respondError(c, appErrors.ParseValidationErrors(err))
		return
	}

	ctx := c.Request.Context()
	t, err := h.Ledger.RequestDeposit(ctx, userID, body.Amount, body.Method, body.Details)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, t)
}

func (h *Handler) RequestWithdrawal(c *gin.Context) {
	userID, err := h.GetUserIDFromContext(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	var body contracts.WithdrawalRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		h.respondError(c, appErrors.ParseValidationErrors(err))
		return
	}

	ctx := c.Request.Context()
	t, err := h.Ledger.RequestWithdrawal(ctx, userID, body.Amount, body.Method, body.Details)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, t)
}

func (h *Handler) ListTransactions(c *gin.Context) {
	userID, err := h.GetUserIDFromContext(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	filters := parseTransactionFilters(c)
	pagination := h.parsePagination(c)

	ctx := c.Request.Context()
	items, total, err := h.Ledger.ListTransactions(ctx, userID, filters, pagination)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, pkg.NewPaginatedResponse(items, pagination.Page, pagination.Limit, total))
}

func (h *Handler) GetTransaction(c *gin.Context) {
	transactionID, err := pkg.ParseULID(c.Param("id"))
	if err != nil {
		h.respondError(c, appErrors.NewValidationError("id", "invalid format"))
		return
	}

	userID, err := h.GetUserIDFromContext(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	ctx := c.Request.Context()
	t, err := h.Ledger.GetTransaction(ctx, transactionID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	if t.UserId != userID {
		h.respondError(c, appErrors.ErrTransactionNotFound)
		return
	}

	c.JSON(http.StatusOK, t)
}

// Administrative endpoints.

func (h *Handler) ApproveDeposit(c *gin.Context) {
	transactionID, err := pkg.ParseULID(c.Param("id"))
	if err != nil {
		h.respondError(c, appErrors.NewValidationError("id", "invalid format"))
		return
	}

	ctx := c.Request.Context()
	t, err := h.Ledger.ApproveDeposit(ctx, transactionID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, t)
}

func (h *Handler) ResolveWithdrawal(c *gin.Context) {
	transactionID, err := pkg.ParseULID(c.Param("id"))
	if err != nil {
		h.respondError(c, appErrors.NewValidationError("id", "invalid format"))
		return
	}

	var body contracts.ResolveWithdrawalRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		h.respondError(c, appErrors.ParseValidationErrors(err))
		return
	}

	ctx := c.Request.Context()
	t, err := h.Ledger.ResolveWithdrawal(ctx, transactionID, transaction.Status(body.Decision))
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, t)
}

func (h *Handler) ListAllTransactions(c *gin.Context) {
	filters := parseTransactionFilters(c)
	pagination := h.parsePagination(c)

	ctx := c.Request.Context()
	items, total, err := h.Ledger.ListAllTransactions(ctx, filters, pagination)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, pkg.NewPaginatedResponse(items, pagination.Page, pagination.Limit, total))
}

func parseTransactionFilters(c *gin.Context) *transaction.ListFilters {
	var filters *transaction.ListFilters

	if statusStr := c.Query("status"); statusStr != "" && statusStr != "ALL" {
		status := transaction.Status(statusStr)
		if status.IsValid() {
			filters = &transaction.ListFilters{Status: &status}
		}
	}
	if typeStr := c.Query("type"); typeStr != "" && typeStr != "ALL" {
		typ := transaction.Types(typeStr)
		if typ.IsValid() {
			if filters == nil {
				filters = &transaction.ListFilters{}
			}
			filters.Type = &typ
		}
	}

	return filters
}
