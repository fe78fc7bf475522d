package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/Carmen-Shannon/oxy-motion/common"
	"github.com/Carmen-Shannon/oxy-motion/engine"
	"github.com/Carmen-Shannon/oxy-motion/engine/config"
	"github.com/Carmen-Shannon/oxy-motion/engine/logger"
	"github.com/Carmen-Shannon/oxy-motion/engine/window"
	"go.uber.org/zap"
)

// terminalLogFile keeps log lines off the screen tcell draws on.
const terminalLogFile = "oxy-motion.log"

func main() {
	var (
		configPath = flag.String("config", "", "YAML configuration file (built-in defaults when empty)")
		backend    = flag.String("backend", "", "Window backend override: glfw or terminal")
		logLevel   = flag.String("log-level", "", "Log level override: debug, info, warn or error")
		profile    = flag.Bool("profile", false, "Log tick rate and memory statistics every second")
	)
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		cfg = loaded
	}
	cfg.Window.Backend = common.Coalesce(*backend, cfg.Window.Backend)
	cfg.Logging.Level = common.Coalesce(*logLevel, cfg.Logging.Level)
	cfg.Engine.Profiling = cfg.Engine.Profiling || *profile
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	backendType, _ := window.ParseBackend(cfg.Window.Backend)
	if backendType == window.BackendTerminal {
		cfg.Logging.File = common.Coalesce(cfg.Logging.File, terminalLogFile)
	}

	// ── Logger ──────────────────────────────────────────────────────────
	log, err := logger.New(logger.Config{
		Level:            cfg.Logging.Level,
		Format:           cfg.Logging.Format,
		File:             cfg.Logging.File,
		SampleInitial:    100,
		SampleThereafter: 100,
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	// ── Engine + Window ─────────────────────────────────────────────────
	win, err := window.NewWindow(
		window.WithTitle(cfg.Window.Title),
		window.WithWidth(cfg.Window.Width),
		window.WithHeight(cfg.Window.Height),
		window.WithBackend(backendType),
		window.WithLogger(log.Named("window")),
	)
	if err != nil {
		log.Fatal("failed to create window", zap.String("backend", string(backendType)), zap.Error(err))
	}

	eng := engine.NewEngine(
		engine.WithWindow(win),
		engine.WithTickRate(cfg.Engine.TickRate),
		engine.WithProfiling(cfg.Engine.Profiling),
		engine.WithMotionCapacity(cfg.Engine.MotionCapacity),
		engine.WithLogger(log.Named("engine")),
	)

	if _, err := assemble(eng, cfg, log); err != nil {
		_ = win.Close()
		log.Fatal("failed to assemble scene", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	go func() {
		<-ctx.Done()
		eng.Quit()
	}()

	log.Info("starting",
		zap.String("backend", string(backendType)),
		zap.String("scene", cfg.Scene.Name),
		zap.Float64("tick_rate", cfg.Engine.TickRate),
	)
	eng.Run()
	log.Info("stopped")
}
