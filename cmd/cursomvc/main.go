package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/dropDatabas3/cursomvc/internal/config"
	"github.com/dropDatabas3/cursomvc/internal/observability/logger"

	// registra los adapters de store vía init()
	_ "github.com/dropDatabas3/cursomvc/internal/store/adapters/dal"
)

// version se pisa en build con -ldflags "-X main.version=..."
var version = "dev"

func main() {
	// .env es opcional
	_ = godotenv.Load()

	var configPath string

	root := &cobra.Command{
		Use:           "cursomvc",
		Short:         "API de clientes, categorías y productos",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&configPath, "config", envOr("CONFIG_PATH", "config.yaml"), "Ruta al config YAML (env CONFIG_PATH)")

	load := func() (*config.Config, error) {
		cfg, err := config.Load(configPath)
		if err != nil {
			return nil, err
		}
		logger.Init(logger.Config{
			Env:         cfg.App.Env,
			Level:       cfg.App.LogLevel,
			ServiceName: "cursomvc",
			Version:     version,
		})
		return cfg, nil
	}

	root.AddCommand(
		newServeCmd(load),
		newMigrateCmd(load),
		newSeedCmd(load),
		newTokenCmd(load),
	)

	err := root.ExecuteContext(context.Background())
	_ = logger.Sync()
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

type loadFunc func() (*config.Config, error)

func envOr(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
