package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/muesli/termenv"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/jaminalder/tictactoe-timetravel/internal/app"
	"github.com/jaminalder/tictactoe-timetravel/internal/config"
	"github.com/jaminalder/tictactoe-timetravel/internal/term"
	"github.com/jaminalder/tictactoe-timetravel/internal/web"
)

func main() {
	configPath := flag.String("config", "config.yml", "path to the YAML config file")
	flag.Parse()

	conf := config.MustLoad(*configPath)
	logger, err := newLogger(conf)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	switch conf.Mode {
	case config.ModeTerm:
		err = runTerm(ctx, conf, logger)
	default:
		err = runWeb(ctx, conf, logger)
	}
	if err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("exit", zap.Error(err))
		os.Exit(1)
	}
}

// newLogger builds a production logger at the configured level; debug uses
// the console encoder.
func newLogger(conf *config.Config) (*zap.Logger, error) {
	level := zap.NewAtomicLevel()
	if err := level.UnmarshalText([]byte(conf.LogLevel)); err != nil {
		return nil, fmt.Errorf("log-level %q: %w", conf.LogLevel, err)
	}

	zc := zap.NewProductionConfig()
	if level.Level() == zapcore.DebugLevel {
		zc = zap.NewDevelopmentConfig()
	}
	zc.Level = level
	if conf.Mode == config.ModeTerm {
		// stdout belongs to the board
		zc.OutputPaths = []string{"stderr"}
	}
	return zc.Build()
}

func runWeb(ctx context.Context, conf *config.Config, logger *zap.Logger) error {
	log := logger.With(zap.String("component", "app"))
	svc := app.NewService(logger)

	go prune(ctx, svc, conf)

	srv := &http.Server{
		Addr:              conf.HTTPAddr,
		Handler:           web.NewServer(svc, logger),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("starting HTTP server", zap.String("addr", conf.HTTPAddr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("HTTP server error: %w", err)
		}
		return nil
	case <-ctx.Done():
		log.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

// prune drops games idle for longer than the configured TTL.
func prune(ctx context.Context, svc *app.Service, conf *config.Config) {
	ticker := time.NewTicker(conf.PruneInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			svc.Prune(now.Add(-conf.GameTTL))
		}
	}
}

func runTerm(ctx context.Context, conf *config.Config, logger *zap.Logger) error {
	opts := []termenv.OutputOption{}
	if conf.NoColor {
		opts = append(opts, termenv.WithProfile(termenv.Ascii))
	}
	out := termenv.NewOutput(os.Stdout, opts...)

	// Reading stdin cannot be interrupted, so a signal returns without
	// waiting for the next line.
	errCh := make(chan error, 1)
	go func() { errCh <- term.NewSession(out, logger).Run(ctx, os.Stdin) }()
	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		fmt.Fprintln(out)
		return ctx.Err()
	}
}
