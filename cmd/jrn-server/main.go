package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jrnhq/jrn/internal/assistant"
	"github.com/jrnhq/jrn/internal/config"
	"github.com/jrnhq/jrn/internal/logger"
	"github.com/jrnhq/jrn/internal/repository"
	"github.com/jrnhq/jrn/internal/server"
)

// Version will be set during build with ldflags
var Version = "1.0.0"

func main() {
	var debug bool

	rootCmd := &cobra.Command{
		Use:     "jrn-server",
		Short:   "JRN journaling API server",
		Version: Version,
	}
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable verbose database logging")

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			log, err := logger.New(cfg.Log.Level, cfg.Log.Format)
			if err != nil {
				return err
			}

			db, err := repository.NewDatabase(cfg, debug)
			if err != nil {
				return err
			}
			defer db.Close()

			gateway := assistant.NewGateway(cfg.AI, log)
			return server.New(cfg, db, gateway, log).Run()
		},
	}

	migrateCmd := &cobra.Command{
		Use:   "migrate",
		Short: "Run the schema migration and exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			db, err := repository.NewDatabase(cfg, debug)
			if err != nil {
				return err
			}
			defer db.Close()

			fmt.Println("migration complete")
			return nil
		},
	}

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
