package commands

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ncobase/longrun/cmd/longrun/provider"
	"github.com/ncobase/longrun/config"
	"github.com/ncobase/longrun/logging/logger"
	"github.com/ncobase/longrun/version"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 5 * time.Second

func newServeCommand(load configLoader) *cobra.Command {
	return &cobra.Command{
		Use:     "serve",
		Aliases: []string{"s"},
		Args:    cobra.NoArgs,
		Short:   "Start the HTTP server",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := load()
			if err != nil {
				return err
			}
			logger.SetVersion(version.GetVersionInfo().Version)

			app, cleanup, err := provider.InitializeApp(cfg)
			if err != nil {
				return fmt.Errorf("failed to initialize: %w", err)
			}
			defer cleanup()

			config.Watch(cfg, func(c *config.Config) {
				if c.Logger != nil {
					app.Logger.SetLevel(logrus.Level(c.Logger.Level))
					logger.Infof(context.Background(), "Config reloaded, log level %d", c.Logger.Level)
				}
			})

			return runServer(app)
		},
	}
}

func runServer(app *provider.App) error {
	cfg := app.Config
	addr := fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("error starting server: %w", err)
	}
	defer func() { _ = listener.Close() }()

	srv := &http.Server{
		Addr:              listener.Addr().String(),
		Handler:           app.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errChan := make(chan error, 1)
	go func() {
		logger.Infof(context.Background(), "%s listening and serving HTTP on %s", cfg.AppName, srv.Addr)
		if err := srv.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
	}()

	return gracefulShutdown(srv, errChan)
}

func gracefulShutdown(srv *http.Server, errChan chan error) error {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case err := <-errChan:
		return fmt.Errorf("server error: %w", err)
	case <-quit:
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			logger.Errorf(ctx, "Shutdown error: %v", err)
			return fmt.Errorf("shutdown error: %w", err)
		}
		logger.Infof(ctx, "Server closed")
		return nil
	}
}
