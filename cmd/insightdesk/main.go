package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"InsightDesk/internal/config"
	"InsightDesk/internal/logging"
	"InsightDesk/internal/version"
)

var (
	configPath string
	envPath    string
	logLevel   string

	cfg *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "insightdesk",
	Short: "Customer feedback labeling and promotion forecasting",
	Long: `InsightDesk labels customer feedback by sentiment and forecasts how
discount depth affects conversion, revenue, and contribution margin.

Run "insightdesk serve" for the dashboards, or use the label and forecast
commands to process CSV files directly.`,
	Version:           version.Version,
	SilenceUsage:      true,
	PersistentPreRunE: loadConfig,
}

func init() {
	defaultConfig := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		defaultConfig = v
	}

	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", defaultConfig, "Path to the YAML config file (or set CONFIG_PATH)")
	rootCmd.PersistentFlags().StringVar(&envPath, "env-file", ".env", "Optional .env file loaded before the config")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Override log.level (debug, info, warn, error)")

	rootCmd.AddCommand(serveCmd, labelCmd, forecastCmd)
}

func loadConfig(cmd *cobra.Command, _ []string) error {
	config.LoadDotEnv(envPath)

	c, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if logLevel != "" {
		c.Log.Level = logLevel
	}
	if err := c.Validate(); err != nil {
		return fmt.Errorf("config validation: %w", err)
	}

	logging.Init(c.Log.Level, c.Log.Format)
	cfg = c
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
