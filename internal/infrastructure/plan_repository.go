package infrastructure

import (
	"context"

	"github.com/oklog/ulid/v2"
	"gorm.io/gorm"

	"github.com/shak0x90/steadygainsinvestments-sub000/internal/domain/plan"
	"github.com/shak0x90/steadygainsinvestments-sub000/internal/pkg"
)

type PlanRepository struct {
	DB *gorm.DB
}

func NewPlanRepository(db *gorm.DB) plan.Repository {
	return &PlanRepository{DB: db}
}

func (r *PlanRepository) Create(ctx context.Context, p *plan.Plan) error {
	return r.DB.WithContext(ctx).Create(p).Error
}

func (r *PlanRepository) Update(ctx context.Context, p *plan.Plan) error {
	return r.DB.WithContext(ctx).Save(p).Error
}

func (r *PlanRepository) GetByID(ctx context.Context, planID ulid.ULID) (*plan.Plan, error) {
	var p plan.Plan
	err := r.DB.WithContext(ctx).Where("id = ?", planID.String()).First(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PlanRepository) GetByName(ctx context.Context, name string) (*plan.Plan, error) {
	var p plan.Plan
	err := r.DB.WithContext(ctx).Where("name = ?", name).First(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PlanRepository) List(ctx context.Context, activeOnly bool, pagination *pkg.PaginationParams) ([]*plan.Plan, int64, error) {
	query := r.DB.WithContext(ctx).Model(&plan.Plan{})
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}
	return pkg.Paginate[plan.Plan](query, pagination, "min_investment ASC")
}
