// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the dex-browser CLI.
//
// dex-browser pages through the public creature-data API, searches the
// full name index, and shows one record's detail, either as one-shot
// commands or as an interactive terminal browser.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// version is set at build time via ldflags.
var version = "dev"

// logger is built in PersistentPreRunE and synced after every command.
var logger = zap.NewNop()

// rootCmd is the base command for the dex-browser CLI.
var rootCmd = &cobra.Command{
	Use:   "dex-browser",
	Short: "Browse and search the Pokémon catalogue from the terminal",
	Long: `dex-browser browses the PokeAPI catalogue page by page, searches every
record name, and shows the full detail of one record.

Use list, search, and show for one-shot output (text, JSON, or YAML), or
browse for the interactive terminal browser.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		l, err := buildLogger(cmd)
		if err != nil {
			return err
		}
		logger = l
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./dex-browser.yaml or ~/.config/dex-browser/dex-browser.yaml)")
	rootCmd.PersistentFlags().String("base-url", "", "API root (default https://pokeapi.co/api/v2)")
	rootCmd.PersistentFlags().Int("page-size", 0, "records per page (default 12)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().String("log-file", "", "write logs to this file instead of stderr")

	_ = viper.BindPFlag("base_url", rootCmd.PersistentFlags().Lookup("base-url"))
	_ = viper.BindPFlag("page_size", rootCmd.PersistentFlags().Lookup("page-size"))
}

func initConfig() {
	// A missing .env file is not an error.
	_ = godotenv.Load()

	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("dex-browser")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "dex-browser"))
		}
	}

	viper.SetEnvPrefix("DEX_BROWSER")
	viper.AutomaticEnv()
	setConfigDefaults(viper.GetViper())

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// buildLogger returns a production zap logger. The interactive browser
// owns the terminal, so it only logs when --log-file is given.
func buildLogger(cmd *cobra.Command) (*zap.Logger, error) {
	verbose, _ := cmd.Flags().GetBool("verbose")
	logFile, _ := cmd.Flags().GetString("log-file")

	if cmd.Name() == browseCmd.Name() && logFile == "" {
		return zap.NewNop(), nil
	}

	config := zap.NewProductionConfig()
	if verbose {
		config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	if logFile != "" {
		config.OutputPaths = []string{logFile}
		config.ErrorOutputPaths = []string{logFile}
	}
	l, err := config.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return l, nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}
