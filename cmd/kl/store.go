package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/zulandar/kitlog/internal/config"
	"github.com/zulandar/kitlog/internal/logging"
	"github.com/zulandar/kitlog/internal/storage"
	"github.com/zulandar/kitlog/internal/tracker"
	"go.uber.org/zap"
)

const defaultConfigPath = "kitlog.yaml"

func addConfigFlag(cmd *cobra.Command, configPath *string) {
	cmd.Flags().StringVarP(configPath, "config", "c", defaultConfigPath, "path to Kitlog config file")
}

// loadConfig reads the config file. The default path may be absent, in which
// case built-in defaults apply; an explicitly passed path must exist.
func loadConfig(cmd *cobra.Command, configPath string) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if cmd.Flags().Changed("config") {
		cfg, err = config.Load(configPath)
	} else {
		cfg, err = config.LoadOrDefault(configPath)
	}
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

// openStore loads config, builds the logger and opens the tracker over the
// configured storage backend.
func openStore(cmd *cobra.Command, configPath string) (*config.Config, *tracker.Store, *zap.Logger, error) {
	cfg, err := loadConfig(cmd, configPath)
	if err != nil {
		return nil, nil, nil, err
	}

	logger, err := logging.New(cfg.Log)
	if err != nil {
		return nil, nil, nil, err
	}

	p, err := storage.Open(cfg.Storage)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("open storage: %w", err)
	}

	store := tracker.New(p, tracker.WithLogger(logger))
	store.Open()
	return cfg, store, logger, nil
}
