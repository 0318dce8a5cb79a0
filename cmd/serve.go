package cmd

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"sheetform/internal/contact"
	"sheetform/internal/database"
	"sheetform/internal/dataset"
	"sheetform/internal/handlers"
	"sheetform/internal/logger"
	"sheetform/internal/sheets"

	"github.com/fsnotify/fsnotify"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var serveCmd = &cobra.Command{
	Use:     "serve",
	Aliases: []string{"s"},
	Short:   "Serve the contact form over HTTP",
	Long: `Serve the contact form page, its JSON API and the swagger UI.

Every browser or API client gets its own form, tracked by a session cookie
that expires after http.session_ttl of inactivity.

The stored rows are fetched once at startup and written to the log. When a
database_url is configured every submit attempt is journaled in Postgres.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().String("addr", ":8080", "listen address")
	viper.BindPFlag("http.addr", serveCmd.Flags().Lookup("addr"))
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if cfg.SubmitURL == "" {
		logger.Warn("submit_url not configured, every submit will report an error")
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	client := sheets.NewClient(nil, cfg.Endpoints())

	var journal *database.Journal
	var opts []contact.Option
	if cfg.DatabaseURL != "" {
		database.Migrations(cfg.Migrations, cfg.DatabaseURL)
		pool := database.Connection(ctx, cfg.DatabaseURL)
		defer pool.Close()
		journal = database.NewJournal(pool)
		opts = append(opts, contact.WithRecorder(journal))
	}
	sessions := contact.NewSessions(cfg.HTTP.SessionTTL, func() *contact.Submitter {
		return contact.NewSubmitter(client, opts...)
	})

	if cfg.FetchURL != "" {
		fetcher := dataset.NewFetcher(client, logger.L())
		go fetcher.Init(ctx)
	} else {
		logger.Warn("fetch_url not configured, skipping dataset load")
	}

	watchConfig(client)

	e := newEcho()
	handlers.Register(e, sessions, journal)

	errChan := make(chan error, 1)
	go func() {
		logger.Info("http server listening", zap.String("addr", cfg.HTTP.Addr))
		errChan <- e.Start(cfg.HTTP.Addr)
	}()

	return waitForShutdown(e, errChan)
}

func newEcho() *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Logger.SetLevel(log.WARN)

	e.Use(middleware.Recover())
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:  true,
		LogURI:     true,
		LogStatus:  true,
		LogLatency: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			logger.Info("request",
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
				zap.Int("status", v.Status),
				zap.Duration("latency", v.Latency),
			)
			return nil
		},
	}))
	return e
}

// watchConfig swaps the endpoint URLs and log level when the config file
// changes on disk.
func watchConfig(client *sheets.Client) {
	if viper.ConfigFileUsed() == "" {
		return
	}
	viper.OnConfigChange(func(event fsnotify.Event) {
		cfg, err := loadConfig()
		if err != nil {
			logger.Error("config reload failed", err, zap.String("file", event.Name))
			return
		}
		client.SetEndpoints(cfg.Endpoints())
		if err := logger.SetLevel(cfg.LogLevel); err != nil {
			logger.Error("invalid log level in reloaded config", err)
		}
		logger.Info("config reloaded", zap.String("file", event.Name), zap.String("op", event.Op.String()))
	})
	viper.WatchConfig()
}

func waitForShutdown(e *echo.Echo, errChan <-chan error) error {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	select {
	case err := <-errChan:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case sig := <-sigChan:
		logger.Info("shutting down", zap.String("signal", sig.String()))
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return e.Shutdown(ctx)
	}
}
