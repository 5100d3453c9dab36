package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/preranah7/archweekly/internal/buildinfo"
	"github.com/preranah7/archweekly/internal/client/cli"
	"github.com/preranah7/archweekly/internal/client/config"
	"github.com/preranah7/archweekly/internal/logging"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := config.LoadConfig()
	logger, err := logging.New(os.Stderr, cfg.LogLevel)
	if err != nil {
		log.Fatalf("%v", err)
	}

	app, err := cli.NewApp(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("%v", err)
	}

	app.Run(ctx)

}
