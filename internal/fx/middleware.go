package fx

import (
	"go.uber.org/fx"

	"github.com/shak0x90/steadygainsinvestments-sub000/config"
	"github.com/shak0x90/steadygainsinvestments-sub000/internal/middleware"
)

var MiddlewareModule = fx.Module("middleware",
	fx.Provide(
		newJwtService,
	),
)

func newJwtService(cfg *config.Config) (*middleware.JwtService, error) {
	return middleware.NewJwtService(cfg.JWT)
}
