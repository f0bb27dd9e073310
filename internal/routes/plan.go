package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/shak0x90/steadygainsinvestments-sub000/internal/contracts"
	"github.com/shak0x90/steadygainsinvestments-sub000/internal/domain/plan"
	appErrors "github.com/shak0x90/steadygainsinvestments-sub000/internal/errors"
	"github.com/shak0x90/steadygainsinvestments-sub000/internal/pkg"
)

func (h *Handler) ListPlans(c *gin.Context) {
	activeOnly := c.DefaultQuery("active", "true") != "false"
	pagination := h.parsePagination(c)

	ctx := c.Request.Context()
	plans, total, err := h.PlanService.ListPlans(ctx, activeOnly, pagination)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, pkg.NewPaginatedResponse(plans, pagination.Page, pagination.Limit, total))
}

func (h *Handler) GetPlan(c *gin.Context) {
	ctx := c.Request.Context()
	p, err := h.PlanService.GetPlan(ctx, c.Param("name"))
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, p)
}

// Administrative endpoints.

func (h *Handler) CreatePlan(c *gin.Context) {
	var body contracts.PlanCreateRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		h.respondError(c, appErrors.ParseValidationErrors(err))
		return
	}

	ctx := c.Request.Context()
	p, err := h.PlanService.CreatePlan(ctx, plan.CreatePlanRequest{
		Name:          body.Name,
		Description:   body.Description,
		MinInvestment: body.MinInvestment,
		LowRoiMin:     body.LowRoiMin,
		LowRoiMax:     body.LowRoiMax,
		MediumRoiMin:  body.MediumRoiMin,
		MediumRoiMax:  body.MediumRoiMax,
		HighRoiMin:    body.HighRoiMin,
		HighRoiMax:    body.HighRoiMax,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, p)
}

func (h *Handler) UpdatePlan(c *gin.Context) {
	planID, err := pkg.ParseULID(c.Param("id"))
	if err != nil {
		h.respondError(c, appErrors.NewValidationError("id", "invalid format"))
		return
	}

	var body contracts.PlanUpdateRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		h.respondError(c, appErrors.ParseValidationErrors(err))
		return
	}

	ctx := c.Request.Context()
	p, err := h.PlanService.UpdatePlan(ctx, planID, plan.UpdatePlanRequest{
		Description:   body.Description,
		MinInvestment: body.MinInvestment,
		IsActive:      body.IsActive,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, p)
}
