package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "solar_dashboard/docs"
	"solar_dashboard/internal/config"
	"solar_dashboard/internal/handlers"
	"solar_dashboard/internal/logger"
	"solar_dashboard/internal/repository"
	"solar_dashboard/internal/repository/db"
	"solar_dashboard/internal/server"
	"solar_dashboard/internal/service"
	"solar_dashboard/internal/weather"

	"github.com/spf13/cobra"
)

const shutdownTimeout = 10 * time.Second

// @title                       Solar Dashboard API
// @version                     1.0
// @description                 Weather-driven solar panel telemetry with per-session developer overrides.
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
func main() {
	var configPath string

	root := &cobra.Command{
		Use:           "solar-dashboard",
		Short:         "Simulated solar panel dashboard",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVarP(&configPath, "config", "c", "", "config file (default configs/config.yml)")

	root.AddCommand(newServeCmd(&configPath), newEstimateCmd(&configPath))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := root.ExecuteContext(ctx); err != nil {
		logger.Get(logger.Options{}).Errorw("command failed", "err", err)
		stop()
		os.Exit(1)
	}
}

func newServeCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API, websocket stream and weather feed",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return serve(cmd.Context(), *configPath)
		},
	}
}

func serve(ctx context.Context, configPath string) error {
	loader := config.NewLoader(configPath)
	cfg, err := loader.Load()
	if err != nil {
		return err
	}

	log := logger.Get(logger.Options{Level: cfg.LogLevel, Format: cfg.LogFormat})
	log.Infow("config loaded", "file", loader.FileUsed(), "port", cfg.Port, "db", cfg.DB.Path)

	sqlDB, err := db.InitDB(cfg.DB.Path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := sqlDB.Close(); cerr != nil {
			log.Errorw("failed to close sqlite", "err", cerr)
		}
	}()

	repos := repository.NewRepository(sqlDB)
	client := weather.NewClient(cfg.Weather.BaseURL, cfg.Weather.Timeout)
	services := service.NewService(repos, cfg, client, log)
	apiHandler := handlers.NewHandler(services, log)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	go services.WeatherFeed.Run(ctx, cfg.Weather.RefreshInterval)

	watchConfig(loader, services, log)

	srv := &server.Server{}
	errc := make(chan error, 1)
	go func() {
		errc <- srv.Run(cfg.Port, apiHandler.InitRoutes())
	}()
	log.Infow("server started", "port", cfg.Port)

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	log.Infow("shutting down server...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return <-errc
}

// watchConfig applies panel settings and the log level from config edits.
// Everything else needs a restart.
func watchConfig(loader *config.Loader, services *service.Service, log *logger.Logger) {
	watching := loader.Watch(func(cfg *config.Config, err error) {
		if err != nil {
			log.Warnw("config reload rejected", "err", err)
			return
		}
		services.UpdateSettings(cfg.Settings())
		log.SetLevel(cfg.LogLevel)
		log.Infow("config reloaded", "panel_area", cfg.Panel.Area, "fault_chance", cfg.Telemetry.FaultChance)
	})
	if !watching {
		log.Infow("no config file in use; hot reload disabled")
	}
}
