package main

//
//  @title           SmartInvest API
//  @version         1.0
//  @description     Stock analysis service: quotes, news sentiment, fundamentals and Buy/Hold/Sell recommendations.
//  @termsOfService  https://github.com/guttosm/smartinvest
//  @contact.name    API Support
//  @contact.url     https://github.com/guttosm/smartinvest
//  @contact.email   support@example.com
//  @license.name    MIT
//  @license.url     https://opensource.org/licenses/MIT
//  @host            localhost:8000
//  @BasePath        /
//  @schemes         http
//
//  @tag.name        analysis
//  @tag.description Complete, fundamental, technical and sector analyses
//
//  @tag.name        stocks
//  @tag.description Current quotes
//
//  @tag.name        news
//  @tag.description Stock and market headlines
//
//  @tag.name        sentiment
//  @tag.description News sentiment scoring
//
//  @tag.name        health
//  @tag.description Liveness and readiness probes

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/guttosm/smartinvest/config"
	_ "github.com/guttosm/smartinvest/docs" // swagger docs
	"github.com/guttosm/smartinvest/internal/app"
	"github.com/guttosm/smartinvest/internal/domain/dto"
	"github.com/guttosm/smartinvest/internal/logger"
	"github.com/guttosm/smartinvest/internal/service"
	"github.com/spf13/cobra"
)

// writeHeadroom keeps the server write deadline past the request deadline so
// a timed-out request can still be answered.
const writeHeadroom = 15 * time.Second

// startServer initializes and starts the HTTP server in a separate goroutine.
//
// Parameters:
//   - router (http.Handler): The HTTP router (Gin Engine) configured with all routes.
//   - port (string): The port where the server will listen for incoming requests.
//   - writeTimeout (time.Duration): upper bound for writing a response.
//
// Returns:
//   - *http.Server: The initialized HTTP server instance.
func startServer(router http.Handler, port string, writeTimeout time.Duration) *http.Server {
	server := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logger.L().Info().Str("port", port).Msg("server starting")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.L().Fatal().Err(err).Msg("server failed to start")
		}
	}()

	return server
}

// gracefulShutdown gracefully terminates the HTTP server and cleans up resources
// when an OS interrupt signal (SIGINT, SIGTERM) is received.
//
// Parameters:
//   - ctx (context.Context): A context with timeout for graceful shutdown.
//   - server (*http.Server): The HTTP server instance to shut down.
//   - cleanup (func()): Cleanup callback to release resources (e.g., DB connections).
func gracefulShutdown(ctx context.Context, server *http.Server, cleanup func()) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	<-quit
	logger.L().Info().Msg("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.L().Error().Err(err).Msg("server forced to shutdown")
	}

	cleanup()
	logger.L().Info().Msg("server exited gracefully")
}

// newRootCmd builds the smartinvest command tree.
//
// Commands:
//   - api: starts the REST API.
//   - analyze SYMBOL: prints the complete analysis of one symbol as JSON.
//
// Configuration is loaded once before any command runs; --log-level overrides LOG_LEVEL.
// Logs go to stderr.
func newRootCmd() *cobra.Command {
	var cfg config.Config

	root := &cobra.Command{
		Use:           "smartinvest",
		Short:         "SmartInvest stock analysis service",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			loaded, err := config.Load()
			if err != nil {
				return err
			}
			if lvl, _ := cmd.Flags().GetString("log-level"); lvl != "" {
				loaded.Log.Level = lvl
			}
			logger.InitWriter(cmd.ErrOrStderr(), loaded.Log.Level, loaded.Log.Pretty)
			cfg = loaded
			return nil
		},
	}
	root.PersistentFlags().String("log-level", "", "log level override (debug, info, warn, error)")

	root.AddCommand(newAPICmd(&cfg), newAnalyzeCmd(&cfg, app.BuildService))
	return root
}

func newAPICmd(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "api",
		Short: "Start the REST API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if port, _ := cmd.Flags().GetString("port"); port != "" {
				cfg.Server.Port = port
			}
			logger.L().Info().Msg("starting API server")

			router, cleanup, err := app.InitializeApp(*cfg)
			if err != nil {
				return fmt.Errorf("app init: %w", err)
			}

			server := startServer(router, cfg.Server.Port, app.RequestTimeout(*cfg)+writeHeadroom)
			gracefulShutdown(cmd.Context(), server, cleanup)
			return nil
		},
	}
	cmd.Flags().String("port", "", "port to listen on (defaults to SERVER_PORT)")
	return cmd
}

// serviceBuilder matches app.BuildService; tests substitute a fake.
type serviceBuilder func(cfg config.Config) (service.AnalysisService, func(), error)

func newAnalyzeCmd(cfg *config.Config, build serviceBuilder) *cobra.Command {
	return &cobra.Command{
		Use:   "analyze SYMBOL",
		Short: "Print the complete analysis of a symbol as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, cleanup, err := build(*cfg)
			if err != nil {
				return fmt.Errorf("app init: %w", err)
			}
			defer cleanup()
			return analyze(cmd.Context(), cmd.OutOrStdout(), svc, args[0])
		},
	}
}

// analyze writes the complete analysis of symbol to out in the API response shape.
func analyze(ctx context.Context, out io.Writer, svc service.AnalysisService, symbol string) error {
	a, err := svc.CompleteAnalysis(ctx, symbol)
	if err != nil {
		return fmt.Errorf("analyze %s: %w", symbol, err)
	}
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(dto.NewCompleteAnalysisResponse(a, svc.PoweredBy()))
}

// main is the entry point of the smartinvest application.
func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		logger.L().Error().Err(err).Msg("command failed")
		os.Exit(1)
	}
}
