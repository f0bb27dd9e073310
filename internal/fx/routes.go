package fx

import (
	"time"

	"go.uber.org/fx"

	"github.com/shak0x90/steadygainsinvestments-sub000/internal/domain/ledger"
	"github.com/shak0x90/steadygainsinvestments-sub000/internal/domain/plan"
	"github.com/shak0x90/steadygainsinvestments-sub000/internal/middleware"
	"github.com/shak0x90/steadygainsinvestments-sub000/internal/routes"
)

var RoutesModule = fx.Module("routes",
	fx.Provide(
		newHandler,
		newRateLimiter,
	),
)

func newHandler(
	facade *ledger.Facade,
	planSvc *plan.Service,
	jwtSvc *middleware.JwtService,
) *routes.Handler {
	return &routes.Handler{
		Ledger:      facade,
		PlanService: planSvc,
		JwtService:  jwtSvc,
	}
}

func newRateLimiter() *middleware.RateLimiter {
	return middleware.NewRateLimiter(100, time.Minute)
}
