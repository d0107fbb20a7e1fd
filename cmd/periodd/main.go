// periodd serves period formatting, parsing and arithmetic over websockets.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/lambdcalculus/periods/internal/config"
	"github.com/lambdcalculus/periods/internal/server"
	"github.com/lambdcalculus/periods/pkg/logger"
	"github.com/spf13/pflag"
)

func main() {
	confPath := pflag.StringP("config", "c", "", "path to config.toml (default: config/config.toml next to the executable)")
	pflag.Parse()

	conf, err := config.Read(*confPath)
	if err != nil {
		logger.Errorf("%v Using defaults.", err)
	}
	lvl, err := conf.Server.Level()
	if err != nil {
		logger.Warnf("%v", err)
	}
	log := logger.NewLoggerOutputs(lvl, nil, conf.Server.LogOutputs...)
	logger.SetLogger(log)

	srv, err := server.MakeServer(conf, log.Named("server"))
	if err != nil {
		log.Fatalf("Couldn't make server (%v).", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := srv.Run(ctx); err != nil {
		log.Fatalf("Server stopped running: %v", err)
		os.Exit(1)
	}
	log.Info("Server stopped.")
}
