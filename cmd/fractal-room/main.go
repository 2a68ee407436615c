package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"runtime"
	"time"

	"fractal-room/internal/config"
	"fractal-room/internal/game"
	"fractal-room/internal/input"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func init() {
	runtime.LockOSThread()
}

func main() {
	configPath := flag.String("config", "", "path to a YAML config file")
	debug := flag.Bool("debug", false, "verbose logging")
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.TimeOnly})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if *debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	cfg := config.Default()
	if *configPath != "" {
		var err error
		if cfg, err = config.Load(*configPath); err != nil {
			log.Fatal().Err(err).Str("path", *configPath).Msg("Loading config")
		}
	}

	if err := glfw.Init(); err != nil {
		log.Fatal().Err(err).Msg("Initializing GLFW")
	}
	defer glfw.Terminate()

	window, err := game.SetupWindow(cfg.Window)
	if err != nil {
		log.Fatal().Err(err).Msg("Creating window")
	}
	defer window.Destroy()

	// Ctrl-C aborts asset loading or closes the window
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt)
	go func() {
		<-sig
		cancel()
		window.SetShouldClose(true)
	}()

	app := game.NewApp(cfg, window, input.NewManager())
	if err := app.Initialize(ctx); err != nil {
		// deferred cleanup is skipped by Fatal
		glfw.Terminate()
		log.Fatal().Err(err).Msg("Startup failed")
	}
	if err := app.Run(); err != nil {
		log.Error().Err(err).Msg("Run")
	}
}
