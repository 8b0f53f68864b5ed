package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/common-nighthawk/go-figure"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/secscope/secscope/internal/api"
	"github.com/secscope/secscope/internal/assist"
	"github.com/secscope/secscope/internal/breach"
	"github.com/secscope/secscope/internal/probe"
	"github.com/secscope/secscope/internal/scoring"
	"github.com/secscope/secscope/internal/shared/constants"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run secscope as a REST API service",
	RunE: func(cmd *cobra.Command, args []string) error {
		applyServeDefaults(cmd.Flags())

		addr, _ := cmd.Flags().GetString("addr")
		authToken, _ := cmd.Flags().GetString("auth-token")
		shutdownTimeout, _ := cmd.Flags().GetDuration("shutdown-timeout")
		corsOrigins, _ := cmd.Flags().GetStringSlice("cors-origins")
		rateLimit, _ := cmd.Flags().GetInt("rate-limit")
		rateBurst, _ := cmd.Flags().GetInt("rate-burst")

		// Initialize structured logger
		zlog, err := zap.NewProduction()
		if err != nil {
			return fmt.Errorf("failed to create logger: %w", err)
		}
		defer func() {
			if err := zlog.Sync(); err != nil {
				fmt.Fprintf(os.Stderr, "failed to sync logger: %v\n", err)
			}
		}()

		cfg := scoringConfig()
		prober := probe.NewNetProber(cfg.FetchTimeout, cfg.WhoisTimeout, cfg.MXTimeout)
		engine := scoring.NewEngine(cfg, prober)

		breaches := &breach.Service{
			Passwords: breach.NewPasswordClient(constants.DefaultUpstreamTimeout),
			Directory: breach.NewDirectoryClient(viper.GetString("breach_api_key"), constants.DefaultUpstreamTimeout),
		}
		assistant := assist.NewClient(
			viper.GetString("assistant_api_key"),
			viper.GetString("assistant_model"),
			constants.DefaultUpstreamTimeout,
		)

		server := api.NewServer(api.Config{
			Scans:       engine,
			Breaches:    breaches,
			Assistant:   assistant,
			AuthToken:   authToken,
			Logger:      zlog,
			CORSOrigins: corsOrigins,
			RateLimit:   rateLimit,
			RateBurst:   rateBurst,
		})

		httpServer := &http.Server{
			Addr:         addr,
			Handler:      server,
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 30 * time.Second,
			IdleTimeout:  120 * time.Second,
		}

		figure.NewFigure("secscope", "", true).Print()

		// Channel to listen for errors from the server
		serverErrors := make(chan error, 1)

		go func() {
			fmt.Printf("%s API server listening on %s\n", colorInfo("→"), addr)
			fmt.Printf("%s Press Ctrl+C to gracefully shutdown\n", colorInfo("→"))
			serverErrors <- httpServer.ListenAndServe()
		}()

		// Channel to listen for interrupt signals
		shutdown := make(chan os.Signal, 1)
		signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

		select {
		case err := <-serverErrors:
			if !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("server error: %w", err)
			}
		case sig := <-shutdown:
			fmt.Printf("\n%s Received signal %v, initiating graceful shutdown...\n", colorInfo("→"), sig)

			ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()

			if err := httpServer.Shutdown(ctx); err != nil {
				if closeErr := httpServer.Close(); closeErr != nil {
					return fmt.Errorf("failed to gracefully shutdown server: %w (close error: %v)", err, closeErr)
				}
				return fmt.Errorf("failed to gracefully shutdown server: %w", err)
			}

			fmt.Printf("%s Server shutdown complete\n", colorSuccess("✓"))
		}

		return nil
	},
}

func init() {
	serveCmd.Flags().String("addr", "127.0.0.1:8080", "Address for the API server")
	serveCmd.Flags().String("auth-token", "", "Optional shared secret for API requests")
	serveCmd.Flags().Duration("shutdown-timeout", 30*time.Second, "Graceful shutdown timeout")
	serveCmd.Flags().StringSlice("cors-origins", []string{}, "Allowed CORS origins (empty = allow all)")
	serveCmd.Flags().Int("rate-limit", 10, "Rate limit per IP (requests/second, 0 = disabled)")
	serveCmd.Flags().Int("rate-burst", 20, "Rate limit burst size")
}
