package plan

import (
	"context"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"

	appErrors "github.com/shak0x90/steadygainsinvestments-sub000/internal/errors"
	"github.com/shak0x90/steadygainsinvestments-sub000/internal/pkg"
)

// Service owns administrator CRUD over plan reference data. The ledger
// core only reads plans through GetByName.
type Service struct {
	Repository Repository
}

func NewService(repo Repository) *Service {
	return &Service{Repository: repo}
}

type CreatePlanRequest struct {
	Name          string
	Description   string
	MinInvestment float64
	LowRoiMin     float64
	LowRoiMax     float64
	MediumRoiMin  float64
	MediumRoiMax  float64
	HighRoiMin    float64
	HighRoiMax    float64
}

type UpdatePlanRequest struct {
	Description   *string
	MinInvestment *float64
	IsActive      *bool
}

func (s *Service) CreatePlan(ctx context.Context, req CreatePlanRequest) (*Plan, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, appErrors.NewValidationError("name", "name is required")
	}
	if req.MinInvestment <= 0 {
		return nil, appErrors.NewValidationError("min_investment", "minimum investment must be greater than zero")
	}

	if existing, err := s.Repository.GetByName(ctx, name); err == nil && existing != nil {
		return nil, appErrors.NewConflictError("Plan " + name)
	}

	now := time.Now()
	p := &Plan{
		Id:            pkg.GenerateULIDObject(),
		Name:          name,
		Description:   strings.TrimSpace(req.Description),
		MinInvestment: req.MinInvestment,
		LowRoiMin:     req.LowRoiMin,
		LowRoiMax:     req.LowRoiMax,
		MediumRoiMin:  req.MediumRoiMin,
		MediumRoiMax:  req.MediumRoiMax,
		HighRoiMin:    req.HighRoiMin,
		HighRoiMax:    req.HighRoiMax,
		IsActive:      true,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.Repository.Create(ctx, p); err != nil {
		return nil, appErrors.NewDatabaseError(err)
	}

	return p, nil
}

func (s *Service) UpdatePlan(ctx context.Context, planID ulid.ULID, req UpdatePlanRequest) (*Plan, error) {
	p, err := s.Repository.GetByID(ctx, planID)
	if err != nil {
		return nil, appErrors.ErrPlanNotFound.WithError(err)
	}

	if req.Description != nil {
		p.Description = strings.TrimSpace(*req.Description)
	}
	if req.MinInvestment != nil {
		if *req.MinInvestment <= 0 {
			return nil, appErrors.NewValidationError("min_investment", "minimum investment must be greater than zero")
		}
		p.MinInvestment = *req.MinInvestment
	}
	if req.IsActive != nil {
		p.IsActive = *req.IsActive
	}

	p.UpdatedAt = time.Now()
	if err := s.Repository.Update(ctx, p); err != nil {
		return nil, appErrors.NewDatabaseError(err)
	}

	return p, nil
}

func (s *Service) GetPlan(ctx context.Context, name string) (*Plan, error) {
	p, err := s.Repository.GetByName(ctx, strings.TrimSpace(name))
	if err != nil {
		return nil, appErrors.ErrPlanNotFound.WithError(err)
	}
	return p, nil
}

func (s *Service) ListPlans(ctx context.Context, activeOnly bool, pagination *pkg.PaginationParams) ([]*Plan, int64, error) {
	return s.Repository.List(ctx, activeOnly, pagination)
}
