package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/shak0x90/steadygainsinvestments-sub000/internal/contracts"
	appErrors "github.com/shak0x90/steadygainsinvestments-sub000/internal/errors"
	"github.com/shak0x90/steadygainsinvestments-sub000/internal/pkg"
)

// IssueReturn is administrative: the caller names the account being paid.
func (h *Handler) IssueReturn(c *gin.Context) {
	var body contracts.IssueReturnRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		h.respondError(c, appErrors.ParseValidationErrors(err))
		return
	}

	userID, err := pkg.ParseULID(body.UserID)
	if err != nil {
		h.respondError(c, appErrors.NewValidationError("user_id", "invalid format"))
		return
	}

	ctx := c.Request.Context()
	invoice, err := h.Ledger.IssueReturn(ctx, userID, body.PlanName, body.RoiPercentage, body.Month, body.Year, body.Note)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, invoice)
}

func (h *Handler) ListInvoices(c *gin.Context) {
	userID, err := h.GetUserIDFromContext(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	pagination := h.parsePagination(c)

	ctx := c.Request.Context()
	invoices, total, err := h.Ledger.ListInvoices(ctx, userID, pagination)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, pkg.NewPaginatedResponse(invoices, pagination.Page, pagination.Limit, total))
}
