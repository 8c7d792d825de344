// Command polaris opens the landing page in a desktop window.
//
// Usage:
//
//	polaris [-config polaris.toml] [-watch] [-script run.json] [-debug]
//
// Scroll with the mouse wheel, arrow keys, Page Up/Down, Space, Home and End.
// Escape closes the window.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/phanxgames/polaris"
	"github.com/phanxgames/polaris/config"
)

var (
	configPath = flag.String("config", "", "TOML settings file; built-in defaults when empty")
	watch      = flag.Bool("watch", false, "reload [scene] tuning when the settings file changes")
	scriptPath = flag.String("script", "", "JSON test script to drive the page")
	exitAfter  = flag.Bool("exit", false, "close the window when the test script finishes")
	debugLog   = flag.Bool("debug", false, "log per-second tick stats")
)

func main() {
	flag.Parse()
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "polaris: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg := config.Default()
	if *configPath != "" {
		var err error
		if cfg, err = config.Load(*configPath); err != nil {
			return err
		}
	}
	if *debugLog {
		cfg.Window.Debug = true
	}

	level := slog.LevelInfo
	if cfg.Window.Debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	runCfg := cfg.RunConfig()
	runCfg.Logger = logger
	if *scriptPath != "" {
		data, err := os.ReadFile(*scriptPath)
		if err != nil {
			return fmt.Errorf("read script: %w", err)
		}
		runner, err := polaris.LoadTestScript(data)
		if err != nil {
			return err
		}
		runCfg.Script = runner
		runCfg.ExitWhenScriptDone = *exitAfter
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	w, h := cfg.Window.Width, cfg.Window.Height
	page := polaris.NewPage(ctx, cfg.PageConfig(), w, h, polaris.PageOptions{
		Renderer: polaris.NewEbitenRenderer(w, h),
		Logger:   logger,
	})
	host := polaris.NewHost(page, runCfg)

	if *watch && *configPath != "" {
		go func() {
			err := config.Watch(ctx, *configPath, logger, func(c config.Config) {
				scene := c.SceneConfig()
				host.Post(func(p *polaris.Page) { p.SetTuning(scene) })
			})
			if err != nil {
				logger.Error("config watch stopped", "err", err)
			}
		}()
	}

	return polaris.RunHost(host)
}
