package main

import (
	"context"
	"os"

	"github.com/go-faster/sdk/app"
	"go.uber.org/zap"

	appkg "github.com/veslo/orderdesk/internal/app"
)

func main() {
	app.Run(func(ctx context.Context, lg *zap.Logger, _ *app.Telemetry) error {
		cfg, err := appkg.LoadConfig()
		if err != nil {
			return err
		}
		return appkg.Run(ctx, lg, cfg, os.Args[1:])
	})
}
