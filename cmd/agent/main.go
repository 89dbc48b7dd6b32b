package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/nickzhog/storage-bench/internal/agent/agent"
	"github.com/nickzhog/storage-bench/internal/agent/config"
	grpcclient "github.com/nickzhog/storage-bench/internal/agent/grpc_client"
	"github.com/nickzhog/storage-bench/internal/server/app"
	serverconfig "github.com/nickzhog/storage-bench/internal/server/config"
	"github.com/nickzhog/storage-bench/pkg/logging"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "agent",
		Short:        "Triggers storage benchmark passes",
		SilenceUsage: true,
	}
	root.AddCommand(newTriggerCmd(), newOnceCmd())
	return root
}

func newTriggerCmd() *cobra.Command {
	cfg := config.NewConfig()

	cmd := &cobra.Command{
		Use:   "trigger",
		Short: "Call the server's fetch and read endpoints on a schedule",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cfg.ApplyEnv(); err != nil {
				return err
			}

			logger := logging.GetLogger()
			logger.Tracef("config: %+v", cfg.Settings)

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			if cfg.Settings.AddressGRPC == "" {
				agent.NewAgent(cfg, logger).Run(ctx)
				return nil
			}

			client, err := grpcclient.NewClient(cfg.Settings.AddressGRPC)
			if err != nil {
				return err
			}
			defer client.Close()

			agent.NewAgentWithCaller(cfg, client, logger).Run(ctx)
			return nil
		},
	}

	cmd.Flags().StringVarP(&cfg.Settings.Address, "address", "a", cfg.Settings.Address, "server address")
	cmd.Flags().StringVarP(&cfg.Settings.AddressGRPC, "grpc", "g", cfg.Settings.AddressGRPC, "server grpc address, calls go over grpc when set")
	cmd.Flags().DurationVarP(&cfg.Settings.FetchInterval, "interval", "i", cfg.Settings.FetchInterval, "interval between passes")
	cmd.Flags().BoolVarP(&cfg.Settings.ReadAfter, "read", "r", cfg.Settings.ReadAfter, "read all data after each insert")

	return cmd
}

func newOnceCmd() *cobra.Command {
	var backends []string

	cmd := &cobra.Command{
		Use:   "once",
		Short: "Run one fetch, insert and read pass in-process",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := logging.GetLogger()

			cfg, err := serverconfig.Load(nil)
			if err != nil {
				return err
			}
			if len(backends) > 0 {
				cfg.Settings.Backends = backends
			}

			ctx := cmd.Context()
			a, err := app.New(ctx, cfg, logger)
			if err != nil {
				return err
			}
			defer a.Close(context.Background())

			if _, err = a.Server.FetchAndInsert(ctx); err != nil {
				return err
			}
			_, err = a.Server.ReadAll(ctx)
			return err
		},
	}

	cmd.Flags().StringSliceVarP(&backends, "backends", "b", nil, "backends to use, overrides BACKENDS")

	return cmd
}
