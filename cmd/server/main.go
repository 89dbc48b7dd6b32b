package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/nickzhog/storage-bench/internal/server/app"
	"github.com/nickzhog/storage-bench/internal/server/config"
	grpcserver "github.com/nickzhog/storage-bench/internal/server/grpc"
	"github.com/nickzhog/storage-bench/internal/server/web"
	"github.com/nickzhog/storage-bench/pkg/logging"
)

func main() {
	logger := logging.GetLogger()

	cfg, err := config.GetConfig()
	if err != nil {
		logger.Fatalf("config: %s", err.Error())
	}
	logger.Tracef("backends: %v, address: %s, grpc: %s", cfg.Settings.Backends, cfg.Settings.Address, cfg.Settings.AddressGRPC)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	a, err := app.New(ctx, cfg, logger)
	if err != nil {
		logger.Fatalf("init: %s", err.Error())
	}
	defer a.Close(context.Background())

	grpcDone := make(chan struct{})
	go func() {
		defer close(grpcDone)
		if cfg.Settings.AddressGRPC == "" {
			return
		}
		if err := grpcserver.Serve(ctx, a.Server, cfg); err != nil {
			logger.Errorf("grpc serve: %s", err.Error())
			stop()
		}
	}()

	if err = web.Serve(ctx, a.Server, cfg); err != nil {
		logger.Errorf("serve: %s", err.Error())
	}
	stop()
	<-grpcDone
}
