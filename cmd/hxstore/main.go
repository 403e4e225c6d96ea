// Command hxstore serves a demo page of locally connected widgets.
package main

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/pthm/hxstore"
	"github.com/pthm/hxstore/internal/demo"
)

var (
	configPath string
	addr       string
	verbose    bool
)

var rootCmd = &cobra.Command{
	Use:   "hxstore",
	Short: "hxstore demo server",
	Long: `hxstore serves an HTMX page whose widgets each own a private,
reducer-driven store.`,
	SilenceUsage: true,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the demo page",
	RunE:  runServe,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "YAML config file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log at debug level")
	serveCmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides config)")
	rootCmd.AddCommand(serveCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := LoadConfig(configPath)
	if err != nil {
		return err
	}
	if addr != "" {
		cfg.Addr = addr
	}
	if verbose {
		cfg.LogLevel = "debug"
	}

	logger, err := cfg.Logger()
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	key, err := cfg.KeyBytes()
	if err != nil {
		return err
	}
	if key == nil {
		key = make([]byte, 32)
		if _, err := rand.Read(key); err != nil {
			return err
		}
		logger.Warn("no key configured, using a random one")
	}

	reg := hxstore.NewRegistry(key, cfg.RegistryOptions(logger)...)
	app, err := demo.New(reg, logger)
	if err != nil {
		return err
	}
	defer app.Close()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return serve(ctx, &http.Server{
		Addr:              cfg.Addr,
		Handler:           app.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}, logger)
}

// serve runs srv until ctx is cancelled, then shuts it down.
func serve(ctx context.Context, srv *http.Server, logger *zap.Logger) error {
	eg, egCtx := errgroup.WithContext(ctx)

	eg.Go(func() error {
		logger.Info("listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	eg.Go(func() error {
		<-egCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return eg.Wait()
}
