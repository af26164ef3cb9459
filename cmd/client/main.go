package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/awnumar/memguard"

	"github.com/MKhiriev/go-pass-keeper-vault/internal/client"
	"github.com/MKhiriev/go-pass-keeper-vault/internal/config"
	"github.com/MKhiriev/go-pass-keeper-vault/internal/logger"
	"github.com/MKhiriev/go-pass-keeper-vault/internal/tui"
	"github.com/MKhiriev/go-pass-keeper-vault/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	memguard.CatchInterrupt()
	memguard.SafeExit(run())
}

func run() int {
	cfg, err := config.GetClientConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, "error getting configs:", err)
		return 2
	}

	log := logger.NewClientLogger("go-pass-keeper-vault", cfg.App.LogFile)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM)
	defer stop()

	info := models.NewAppBuildInfo(buildVersion, buildDate, buildCommit)
	log.Info().Str("build", info.String()).Strs("args", cfg.Args[:min(len(cfg.Args), 1)]).Msg("client started")
	app, err := client.NewApp(ctx, cfg, info, log)
	if err != nil {
		log.Error().Err(err).Msg("init client app error")
		fmt.Fprintln(os.Stderr, "error:", err)
		return 1
	}
	defer func() {
		if closeErr := app.Close(); closeErr != nil {
			log.Error().Err(closeErr).Msg("client close error")
		}
	}()

	if err = app.Run(ctx); err != nil {
		log.Error().Err(err).Msg("client run error")
		fmt.Fprintln(os.Stderr, "error:", tui.HumanizeError(err))
		if client.IsUsageError(err) {
			return 2
		}
		return 1
	}
	return 0
}
