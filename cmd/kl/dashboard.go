package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/zulandar/kitlog/internal/dashboard"
	"go.uber.org/zap"
)

func newDashboardCmd() *cobra.Command {
	var (
		configPath string
		port       int
	)

	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Start the local web dashboard",
		Long:  "Launches a local web dashboard for browsing, adding and advancing builds. It listens on localhost only.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDashboard(cmd, configPath, port)
		},
	}

	addConfigFlag(cmd, &configPath)
	cmd.Flags().IntVarP(&port, "port", "p", 8080, "port to listen on (overrides dashboard.port)")
	return cmd
}

func runDashboard(cmd *cobra.Command, configPath string, port int) error {
	cfg, store, logger, err := openStore(cmd, configPath)
	if err != nil {
		return err
	}
	defer logger.Sync()

	if !cmd.Flags().Changed("port") {
		port = cfg.Dashboard.Port
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		fmt.Fprintf(cmd.OutOrStdout(), "\nReceived %s, shutting down...\n", sig)
		cancel()
	}()

	logger.Info("starting dashboard", zap.Int("port", port), zap.String("storage", cfg.Storage.Driver))
	return dashboard.Start(ctx, dashboard.StartOpts{
		Store:  store,
		Port:   port,
		Out:    cmd.OutOrStdout(),
		Logger: logger,
	})
}
