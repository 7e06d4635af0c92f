package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Agrid-Dev/hvacstandards/cmd/app"
)

// cli holds what every subcommand shares once the root pre-run is done.
type cli struct {
	configPath string
	envFile    string

	cfg app.Config
	log *zap.Logger
}

func main() {
	if err := rootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	c := &cli{}

	cmd := &cobra.Command{
		Use:          "hvacstd",
		Short:        "NECB2011 HVAC reference data and configuration rules",
		SilenceUsage: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			return c.init()
		},
		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			if c.log != nil {
				_ = c.log.Sync()
			}
		},
	}
	cmd.PersistentFlags().StringVar(&c.configPath, "config", "config.yaml", "path to config file (.yaml/.yml/.json)")
	cmd.PersistentFlags().StringVar(&c.envFile, "env-file", ".env", "dotenv file loaded before the environment is read")

	cmd.AddCommand(serveCmd(c))
	cmd.AddCommand(lookupCmd(c))
	cmd.AddCommand(stagesCmd(c))
	cmd.AddCommand(validateCmd(c))
	cmd.AddCommand(exhaustCmd(c))
	cmd.AddCommand(configureCmd(c))
	return cmd
}

func (c *cli) init() error {
	if c.envFile != "" {
		if err := godotenv.Load(c.envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("load %s: %w", c.envFile, err)
		}
	}

	cfg, err := app.LoadConfig(c.configPath)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	log, err := app.NewLogger(cfg.Log.Level, cfg.Log.Development)
	if err != nil {
		return err
	}
	c.cfg = cfg
	c.log = log.With(zap.String("instance", cfg.InstanceID))
	return nil
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
