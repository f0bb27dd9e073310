package main

import (
	"go.uber.org/fx"

	appfx "github.com/shak0x90/steadygainsinvestments-sub000/internal/fx"
)

func main() {
	fx.New(
		appfx.AppModule,
	).Run()
}
