package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/shak0x90/steadygainsinvestments-sub000/internal/contracts"
	"github.com/shak0x90/steadygainsinvestments-sub000/internal/domain/subscription"
	appErrors "github.com/shak0x90/steadygainsinvestments-sub000/internal/errors"
	"github.com/shak0x90/steadygainsinvestments-sub000/internal/pkg"
)

func (h *Handler) Subscribe(c *gin.Context) {
	userID, err := h.GetUserIDFromContext(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	var body contracts.SubscribeRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		h.respondError(c, appErrors.ParseValidationErrors(err))
		return
	}

	ctx := c.Request.Context()
	sub, err := h.Ledger.Subscribe(ctx, userID, body.PlanName, body.Amount, subscription.RiskLevel(body.RiskLevel))
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, sub)
}

func (h *Handler) ListSubscriptions(c *gin.Context) {
	userID, err := h.GetUserIDFromContext(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	ctx := c.Request.Context()
	subs, err := h.Ledger.ListSubscriptions(ctx, userID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"subscriptions": subs})
}

func (h *Handler) RequestModification(c *gin.Context) {
	userID, err := h.GetUserIDFromContext(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	var body contracts.ModificationRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		h.respondError(c, appErrors.ParseValidationErrors(err))
		return
	}

	change := subscription.PendingChange{Amount: body.Amount}
	if body.RiskLevel != nil {
		risk := subscription.RiskLevel(*body.RiskLevel)
		change.RiskLevel = &risk
	}

	ctx := c.Request.Context()
	sub, err := h.Ledger.RequestModification(ctx, userID, body.PlanName, change)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, sub)
}

func (h *Handler) CancelModification(c *gin.Context) {
	userID, err := h.GetUserIDFromContext(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	var body contracts.CancelModificationRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		h.respondError(c, appErrors.ParseValidationErrors(err))
		return
	}

	ctx := c.Request.Context()
	sub, err := h.Ledger.CancelModification(ctx, userID, body.PlanName)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, sub)
}

// Administrative endpoints.

func (h *Handler) ApproveModification(c *gin.Context) {
	subscriptionID, err := pkg.ParseULID(c.Param("id"))
	if err != nil {
		h.respondError(c, appErrors.NewValidationError("id", "invalid format"))
		return
	}

	ctx := c.Request.Context()
	sub, err := h.Ledger.ApproveModification(ctx, subscriptionID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, sub)
}

func (h *Handler) RejectModification(c *gin.Context) {
	subscriptionID, err := pkg.ParseULID(c.Param("id"))
	if err != nil {
		h.respondError(c, appErrors.NewValidationError("id", "invalid format"))
		return
	}

	ctx := c.Request.Context()
	sub, err := h.Ledger.RejectModification(ctx, subscriptionID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, sub)
}
