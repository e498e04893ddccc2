// Command logod serves rendered logotypes over HTTP.
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/gogpu/logotype"
	"github.com/gogpu/logotype/fonts"
	"github.com/gogpu/logotype/internal/config"
	"github.com/gogpu/logotype/internal/imagecache"
	"github.com/gogpu/logotype/internal/server"
)

func main() {
	var (
		addr       = flag.String("addr", "", "listen address (overrides config)")
		configPath = flag.String("config", "logod.yaml", "optional YAML config file")
		preset     = flag.String("preset", "", "default preset (overrides config)")
		verbose    = flag.Bool("v", false, "debug logging")
	)
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	logotype.SetLogger(logger)

	if err := run(*configPath, *addr, *preset); err != nil {
		logger.Error("logod: exiting", "err", err)
		os.Exit(1)
	}
}

func run(configPath, addr, preset string) error {
	cfg, err := config.LoadOptional(configPath)
	if err != nil {
		return err
	}
	if addr != "" {
		cfg.Server.Addr = addr
	}
	if preset != "" {
		cfg.Render.DefaultPreset = preset
	}

	reg, err := fonts.NewRegistry(cfg.FontOptions()...)
	if err != nil {
		return err
	}
	defer func() { _ = reg.Close() }()

	r, err := logotype.NewRenderer(reg, cfg.RendererOptions()...)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	opts := server.Options{
		Addr:            cfg.Server.Addr,
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
		ReadTimeout:     cfg.Server.ReadTimeout,
		WriteTimeout:    cfg.Server.WriteTimeout,
	}
	if cfg.Server.Cache.Entries > 0 {
		opts.Cache = imagecache.New(imagecache.Options{
			MaxEntries:    cfg.Server.Cache.Entries,
			MaxImageBytes: cfg.Server.Cache.MaxImageBytes,
		})
		logotype.Logger().Debug("logod: image cache enabled", "capacity", opts.Cache.Capacity())
	}

	err = server.New(r, opts).ListenAndServe(ctx)
	if opts.Cache != nil {
		st := opts.Cache.Stats()
		logotype.Logger().Info("logod: image cache",
			"entries", st.Entries, "hit_rate", st.HitRate(), "evictions", st.Evictions, "oversize", st.Oversize)
	}
	return err
}
