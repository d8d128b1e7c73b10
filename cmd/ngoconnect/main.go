package main

import (
	"NGOConnect/internal/bootstrap"
	pkg "NGOConnect/pkg/routes"

	"go.uber.org/fx"
)

func main() {
	bootstrap.Loadenv()

	app := fx.New(
		pkg.EchoModules,
	)

	app.Run()
}
