// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/pdiddy/citation-graph/internal/api"
	"github.com/pdiddy/citation-graph/internal/config"
	"github.com/pdiddy/citation-graph/internal/graph"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve citation graphs over HTTP",
	Long: `Serve starts the HTTP service:

  GET /api/graph/<id>?depth=&dangling=&label=   citation graph as {nodes, edges}
  GET /api/references/<id>                      reference listing
  GET /health                                   liveness
  GET /metrics                                  Prometheus metrics

Every request builds its own graph; nothing is cached between requests.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().String("listen", "", "listen address (default: server.listen)")

	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := appConfig
	if cmd.Flags().Changed("listen") {
		cfg.Server.Listen, _ = cmd.Flags().GetString("listen")
		if err := config.Validate(cfg); err != nil {
			return err
		}
	}

	src, release, err := openSource(cfg.Lookup, appLog)
	if err != nil {
		return err
	}
	defer release()

	gin.SetMode(gin.ReleaseMode)
	router := api.NewRouter(&api.RouterDeps{
		Log:            appLog,
		Builder:        graph.NewBuilder(src, graph.OptionsFromConfig(cfg.Graph), appLog),
		Source:         src,
		Version:        version,
		RequestTimeout: cfg.Server.RequestTimeout,
	})

	srv := &http.Server{
		Addr:              cfg.Server.Listen,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := commandContext(cmd)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		appLog.WithFields(logrus.Fields{
			"listen": cfg.Server.Listen,
			"source": src.Name(),
		}).Info("citegraph serving")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	appLog.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down: %w", err)
	}
	return nil
}
