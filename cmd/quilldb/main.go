package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/spf13/cobra"

	"quilldb/internal/app/frontend/network"
	"quilldb/internal/app/server"
	"quilldb/internal/applog"
	"quilldb/internal/config"
)

var configPath string

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "quilldb",
	Short: "quilldb - a teaching relational database engine",
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to a YAML config file")
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(recoverCmd)
}

func loadConfig(dbname string) (config.Config, error) {
	cfg := config.Default()
	if configPath != "" {
		loaded, err := config.Load(configPath)
		if err != nil {
			return config.Config{}, err
		}
		cfg = loaded
	}
	if dbname != "" {
		cfg.DataDir = dbname
	}
	return cfg, nil
}

var serveCmd = &cobra.Command{
	Use:   "serve <dbname>",
	Short: "start the engine and its RPC front end",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(args[0])
		if err != nil {
			return err
		}
		if err := cfg.Validate(); err != nil {
			return err
		}

		lg := applog.New(os.Stderr, cfg.LogLevel)

		db, err := server.NewEngineWithConfig(cfg, lg)
		if err != nil {
			return fmt.Errorf("starting engine: %w", err)
		}

		if cfg.Metrics.Enabled {
			go func() {
				mux := http.NewServeMux()
				mux.Handle("/metrics", db.Metrics().Handler())
				lg.Info().Str("address", cfg.Metrics.Address).Msg("metrics endpoint listening")
				if err := http.ListenAndServe(cfg.Metrics.Address, mux); err != nil {
					lg.Error().Err(err).Msg("metrics server stopped")
				}
			}()
		}

		if !cfg.Network.Enabled {
			lg.Info().Msg("network front end disabled, blocking forever")
			select {}
		}

		ln := network.NewListener(db, lg)
		return ln.ListenAndServe(cfg.Network.Address)
	},
}

var recoverCmd = &cobra.Command{
	Use:   "recover <dbname>",
	Short: "run startup recovery against a database directory and exit",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(args[0])
		if err != nil {
			return err
		}
		if err := cfg.Validate(); err != nil {
			return err
		}

		lg := applog.New(os.Stderr, cfg.LogLevel)

		db, err := server.NewEngineWithConfig(cfg, lg)
		if err != nil {
			return fmt.Errorf("recovery failed: %w", err)
		}

		t, err := db.NewTx()
		if err != nil {
			return err
		}
		if err := t.Commit(); err != nil {
			return err
		}

		fmt.Printf("recovery complete for %s\n", cfg.DataDir)
		return nil
	},
}
