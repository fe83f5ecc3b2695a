package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/alexiusacademia/gorcc/internal/config"
	"github.com/alexiusacademia/gorcc/internal/logging"
	"github.com/alexiusacademia/gorcc/internal/version"
)

var (
	cfgFile string
	verbose bool

	// error from reading the config file, reported by the first command
	// that needs the settings
	configErr error
)

var rootCmd = &cobra.Command{
	Use:   "gorcc",
	Short: "Reinforced Concrete Column Load and Slenderness Tool",
	Long: `gorcc - Go Reinforced Concrete Column Designer

A CLI tool for the gravity loading and slenderness of reinforced concrete
columns based on the National Structural Code of the Philippines (NSCP).

This tool helps structural engineers perform:
  - Tributary area partitioning of floor slabs to columns and walls
  - Floor load takedown with NSCP load combinations
  - Effective moment of inertia of columns for elastic analysis
  - Nonsway moment magnification of slender columns

All calculations follow NSCP 2015 (Volume 1) provisions.`,
	SilenceErrors: true,
	SilenceUsage:  true,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println()
		fmt.Println("  ╔═══════════════════════════════════════════════════════════╗")
		fmt.Println("  ║                                                           ║")
		fmt.Printf("  ║   gorcc v%-49s║\n", version.Version)
		fmt.Println("  ║   Go Reinforced Concrete Column Designer                  ║")
		fmt.Println("  ║   Alexius S. Academia ©  2025                             ║")
		fmt.Println("  ║                                                           ║")
		fmt.Println("  ╚═══════════════════════════════════════════════════════════╝")
		fmt.Println()
		fmt.Println("  A CLI tool for the gravity loading and slenderness of")
		fmt.Println("  reinforced concrete columns based on the National Structural")
		fmt.Println("  Code of the Philippines (NSCP).")
		fmt.Println()
		fmt.Println("  Features:")
		fmt.Println("    • Voronoi tributary areas for columns and walls")
		fmt.Println("    • Occupancy zones and floor load tables")
		fmt.Println("    • Factored loads using NSCP load combinations")
		fmt.Println("    • Effective moment of inertia and moment magnifier")
		fmt.Println()
		fmt.Println("  Use 'gorcc --help' to see available commands.")
		fmt.Println()
		fmt.Println("  ─────────────────────────────────────────────────────────────")
		fmt.Printf("  Copyright © %s %s. All rights reserved.\n", version.Year, version.Author)
		fmt.Println()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.CompletionOptions.DisableDefaultCmd = true

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $HOME/.gorcc/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output (debug logging)")
}

// initConfig reads in config file and ENV variables
func initConfig() {
	configErr = config.Init(viper.GetViper(), cfgFile)
	if configErr == nil && verbose && viper.ConfigFileUsed() != "" {
		fmt.Fprintf(os.Stderr, "Using config file: %s\n", viper.ConfigFileUsed())
	}
}

// bindFlags binds the flags of cmd that override config keys. Bindings are
// made per command because several commands share flag names.
func bindFlags(cmd *cobra.Command, keys map[string]string) error {
	var err error
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		key, ok := keys[f.Name]
		if !ok || err != nil {
			return
		}
		err = viper.BindPFlag(key, f)
	})
	return err
}

// loadSettings returns the effective configuration and a logger built from it
func loadSettings() (config.Config, *zap.Logger, error) {
	if configErr != nil {
		return config.Config{}, nil, configErr
	}
	cfg, err := config.Load(viper.GetViper())
	if err != nil {
		return config.Config{}, nil, err
	}
	logger, err := logging.New(logging.Level(cfg.Log.Level, verbose), cfg.Log.Format)
	if err != nil {
		return config.Config{}, nil, fmt.Errorf("create logger: %w", err)
	}
	return cfg, logger, nil
}
