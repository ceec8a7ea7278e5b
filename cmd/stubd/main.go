// stubd serves an in-memory stand-in for the ReelMatch backend so the
// client and CLI can run without the real API.
package main

import (
	"context"
	"log/slog"
	"os"

	"go.uber.org/fx"

	"reelmatch/config"
	logs "reelmatch/internal/infra/log"
	"reelmatch/internal/stub"
)

type startServerParams struct {
	fx.In
	fx.Lifecycle

	Server *stub.Server
}

func main() {
	fx.New(
		fx.Provide(
			config.New,
			logs.New,
			stub.NewStore,
			stub.NewTokenService,
			stub.NewHandler,
			stub.NewServer,
		),
		fx.Invoke(startServer),
	).Run()
}

func startServer(params startServerParams) {
	go func() {
		if err := params.Server.Serve(context.Background()); err != nil {
			slog.Error("Failed to start server", slog.Any("error", err))
			os.Exit(1)
		}
	}()
}
