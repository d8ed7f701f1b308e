package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/sync/errgroup"

	"canvas-mcp/internal/canvas"
	"canvas-mcp/internal/config"
	"canvas-mcp/internal/mcp"
	"canvas-mcp/internal/metrics"
	"canvas-mcp/internal/ops"
	"canvas-mcp/internal/tools"
)

const serverName = "canvas-mcp"

// set via -ldflags "-X main.version=..."
var version = "dev"

func main() {
	configPath := flag.String("config", "", "path to a YAML config file (optional)")
	showVersion := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Printf("%s %s\n", serverName, version)
		return
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", serverName, err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", serverName, err)
		fmt.Fprintln(os.Stderr, "Set CANVAS_BASE_URL (including /api/v1) and CANVAS_TOKEN, or pass -config pointing at a YAML file.")
		os.Exit(1)
	}

	logger, err := buildLogger(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", serverName, err)
		os.Exit(1)
	}
	defer logger.Sync()

	reg := prometheus.NewRegistry()
	collector := metrics.NewCollector(reg)

	client := canvas.New(cfg.BaseURL, cfg.Token, canvas.Options{
		Timeout:           cfg.RequestTimeout,
		PageSize:          cfg.PageSize,
		MaxParallel:       cfg.MaxParallel,
		RequestsPerSecond: cfg.RateLimit,
		Logger:            logger.Named("canvas"),
		Metrics:           collector,
	})

	registry := tools.NewRegistry(logger.Named("tools"), collector)
	if err := tools.RegisterCanvas(registry, client); err != nil {
		logger.Fatal("register tools", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	server := mcp.New(registry, os.Stdin, os.Stdout, logger.Named("mcp"), serverName, version)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return server.Serve(ctx)
	})

	if cfg.OpsAddr != "" {
		opsServer := ops.New(cfg.OpsAddr, reg, logger.Named("ops"), serverName, version)
		g.Go(opsServer.Start)
		g.Go(func() error {
			<-ctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return opsServer.Shutdown(shutdownCtx)
		})
	}

	logger.Info("server started",
		zap.String("version", version),
		zap.String("base_url", cfg.BaseURL),
		zap.Int("tools", len(registry.List())))

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		logger.Fatal("server error", zap.Error(err))
	}
	logger.Info("server stopped")
}

// buildLogger writes everything to stderr. stdout es del protocolo MCP y no
// puede llevar nada más.
func buildLogger(level, format string) (*zap.Logger, error) {
	var lvl zapcore.Level
	switch strings.ToLower(level) {
	case "debug":
		lvl = zapcore.DebugLevel
	case "info", "":
		lvl = zapcore.InfoLevel
	case "warn":
		lvl = zapcore.WarnLevel
	case "error":
		lvl = zapcore.ErrorLevel
	default:
		return nil, fmt.Errorf("unknown log level %q", level)
	}

	cfg := zap.NewProductionConfig()
	if strings.ToLower(format) == "console" {
		cfg.Encoding = "console"
		cfg.EncoderConfig = zap.NewDevelopmentEncoderConfig()
	}
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}
	return cfg.Build()
}
