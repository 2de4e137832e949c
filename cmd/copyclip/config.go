package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"go.copyclip.dev/copyclip/internal/logging"
	"go.copyclip.dev/copyclip/internal/paths"
)

// bindViper wires a command's flags into a viper instance with the standard
// config file search order and COPYCLIP_* env var prefix.
//
// Precedence (lowest → highest): defaults → config file → COPYCLIP_* env vars → flags
func bindViper(cmd *cobra.Command, v *viper.Viper) error {
	configFlag, _ := cmd.Flags().GetString("config")
	if configFlag != "" {
		v.SetConfigFile(configFlag)
	} else {
		v.SetConfigName("copyclip")
		v.SetConfigType("toml")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(fmt.Sprintf("%s/.config/copyclip", home))
		}
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("config: %w", err)
		}
	}

	v.SetEnvPrefix("COPYCLIP")
	v.AutomaticEnv()

	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return fmt.Errorf("binding flags: %w", err)
	}
	return nil
}

// addLoggingFlags adds the standard logging flags to a command.
func addLoggingFlags(cmd *cobra.Command) {
	cmd.Flags().String("log-format", "auto", "log format: auto|text|json")
	cmd.Flags().String("log-level", "", "log level: debug|info|warn|error (default: info, debug when interactive)")
}

// addConfigFlag adds the --config flag to a command.
func addConfigFlag(cmd *cobra.Command) {
	cmd.Flags().String("config", "", "path to config file (overrides auto-discovery)")
}

// addDataDirFlag adds the --data-dir flag to a command.
func addDataDirFlag(cmd *cobra.Command) {
	cmd.Flags().String("data-dir", "", "data directory (default: $XDG_DATA_HOME/clipboard-manager)")
}

// setupLogging reads logging flags from viper and configures slog.
func setupLogging(v *viper.Viper) {
	resolveLogging(logging.IsTTY(os.Stderr), v.GetString("log-format"), v.GetString("log-level"))
}

// resolveDataDir creates and returns the data dir selected by flags.
func resolveDataDir(v *viper.Viper) (string, error) {
	return paths.DataDir(v.GetString("data-dir"))
}
