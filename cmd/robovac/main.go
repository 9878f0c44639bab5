package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/sync/errgroup"

	"github.com/joshp123/gohome-robovac/internal/config"
	"github.com/joshp123/gohome-robovac/internal/core"
	"github.com/joshp123/gohome-robovac/internal/router"
	"github.com/joshp123/gohome-robovac/internal/server"
	"github.com/joshp123/gohome-robovac/plugins/robovac"
)

var version string
var log *zap.SugaredLogger
var debug bool

func init() {
	consoleEncoderConfig := zap.NewDevelopmentEncoderConfig()
	// naive systemd detection. Drop timestamp if running under it
	if os.Getenv("JOURNAL_STREAM") != "" {
		consoleEncoderConfig.TimeKey = ""
	}
	consoleEncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	consoleEncoder := zapcore.NewConsoleEncoder(consoleEncoderConfig)
	highPriority := zap.LevelEnablerFunc(func(lvl zapcore.Level) bool {
		return lvl >= zapcore.ErrorLevel
	})
	lowPriority := zap.LevelEnablerFunc(func(lvl zapcore.Level) bool {
		return (lvl < zapcore.ErrorLevel) != (lvl == zapcore.DebugLevel && !debug)
	})
	core := zapcore.NewTee(
		zapcore.NewCore(consoleEncoder, os.Stderr, lowPriority),
		zapcore.NewCore(consoleEncoder, os.Stderr, highPriority),
	)
	log = zap.New(core).WithOptions(zap.AddCaller()).Sugar()
}

func main() {
	defer func() { _ = log.Sync() }()

	app := &cli.Command{
		Name:    "gohome-robovac",
		Usage:   "local control and metrics for Eufy RoboVac vacuums",
		Version: version,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "config",
				Value: config.DefaultPath,
				Usage: "config file",
				Sources: cli.NewValueSourceChain(
					cli.EnvVar("ROBOVAC_CONFIG"),
				),
			},
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "enable debug logs",
				Sources: cli.NewValueSourceChain(
					cli.EnvVar("ROBOVAC_DEBUG"),
				),
			},
			&cli.StringFlag{
				Name:  "http-addr",
				Usage: "HTTP listen address, overrides core.http_addr",
				Sources: cli.NewValueSourceChain(
					cli.EnvVar("ROBOVAC_HTTP_ADDR"),
				),
			},
			&cli.StringFlag{
				Name:  "grpc-addr",
				Usage: "gRPC listen address, overrides core.grpc_addr",
				Sources: cli.NewValueSourceChain(
					cli.EnvVar("ROBOVAC_GRPC_ADDR"),
				),
			},
			&cli.BoolFlag{
				Name:  "enable-all-plugins",
				Usage: "load compiled plugins even when config does not enable them",
			},
		},
		Action: run,
	}
	if err := app.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}

func run(ctx context.Context, c *cli.Command) error {
	debug = c.Bool("debug")
	log.Debug("debug enabled")
	log.Infof("starting %s version: %s", c.Name, version)

	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return err
	}
	if addr := c.String("http-addr"); addr != "" {
		cfg.Core.HTTPAddr = addr
	}
	if addr := c.String("grpc-addr"); addr != "" {
		cfg.Core.GRPCAddr = addr
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	grpcServer, err := server.NewGRPCServer(cfg.Core.GRPCAddr)
	if err != nil {
		return fmt.Errorf("grpc listen: %w", err)
	}

	var compiled []core.Plugin
	vacuums, ok := robovac.NewPlugin(ctx, cfg, robovac.PluginOptions{
		Health: grpcServer.Health,
		Log:    log,
	})
	if ok {
		compiled = append(compiled, vacuums)
	}

	enabled := config.EnabledPlugins(cfg)
	all := c.Bool("enable-all-plugins")
	if err := core.ValidateEnabledPlugins(compiled, enabled, all); err != nil {
		return err
	}
	plugins := core.FilterPlugins(compiled, enabled, all)
	if err := core.ValidatePlugins(plugins); err != nil {
		return err
	}
	for _, p := range plugins {
		if p.Health() == core.HealthError {
			log.Warnw("plugin unhealthy", "plugin", p.ID(), "message", p.HealthMessage())
		}
	}
	router.RegisterPlugins(grpcServer.Server, grpcServer.Health, plugins)
	if err := core.WriteDashboards(cfg.Core.DashboardDir, plugins); err != nil {
		log.Warnw("failed to write dashboards", "dir", cfg.Core.DashboardDir, "error", err)
	}

	metricsRegistry, err := core.MetricsRegistry(version, plugins)
	if err != nil {
		return fmt.Errorf("metrics: %w", err)
	}
	httpServer := server.NewHTTPServer(cfg.Core.HTTPAddr, server.NewRouter(plugins, metricsRegistry))

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Infow("http listening", "addr", cfg.Core.HTTPAddr)
		return httpServer.ListenAndServe()
	})
	g.Go(func() error {
		log.Infow("grpc listening", "addr", cfg.Core.GRPCAddr)
		return grpcServer.Serve()
	})
	if vacuums != nil {
		g.Go(func() error {
			vacuums.Run(gctx)
			return nil
		})
	}
	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if vacuums != nil {
			if err := vacuums.Close(shutdownCtx); err != nil {
				log.Warnw("failed to close vacuums", "error", err)
			}
		}
		grpcServer.Stop()
		return httpServer.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
