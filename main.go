package main

import (
	"context"
	"flag"
	"time"

	"github.com/soocke/trackpoint-go/app"
	"github.com/soocke/trackpoint-go/config"
	"github.com/soocke/trackpoint-go/debug"
)

func main() {
	cfgPath := flag.String("config", "trackpoint.json", "path to the JSON config file")
	debugFlag := flag.Bool("debug", false, "debug logging and runtime stats")
	video := flag.String("video", "", "video to open at start-up")
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if *debugFlag {
		cfg.Debug = true
	}
	logger := NewLogger(cfg.SlogLevel())
	if err != nil {
		logger.Warn("config load failed, using defaults", "path", *cfgPath, "error", err)
	}

	application := app.NewApp("Trackpoint", cfg, *cfgPath, logger)
	if cfg.Debug {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		debug.StartRuntimeLogger(ctx, 5*time.Second, logger, application.Stats)
	}
	application.Start(*video)
}
