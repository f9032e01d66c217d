package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/jamesainslie/squeeze/pkg/squeeze/config"
)

var (
	cfgFile string
	rootCmd = &cobra.Command{
		Use:   "squeeze [path]",
		Short: "Find near-optimal 7z compression parameters",
		Long: `Squeeze discovers near-optimal 7z parameters for the directories in a
working directory by measuring real archive sizes across greedy,
single-parameter sweeps: dictionary size, then word size, then solid
block size, then thread count. The final compression runs with the
winning combination and its archives are left on disk.

Examples:
  squeeze                    # Tune in the current directory
  squeeze ~/datasets         # Tune a specific working directory
  squeeze -d .               # Show the sweep plan without compressing
  squeeze -f json .          # Machine-readable report
  squeeze config show        # Show configuration
  squeeze config init        # Write a default config file`,
		Args: cobra.MaximumNArgs(1),
		RunE: runTune,
	}
)

func init() {
	cobra.OnInitialize(initConfig)

	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ~/.config/squeeze/config.yaml)")
	rootCmd.PersistentFlags().StringP("binary", "b", "", "compressor binary name or path")
	rootCmd.PersistentFlags().StringSliceP("exclude", "e", nil, "directory names to skip (can be specified multiple times)")
	rootCmd.PersistentFlags().String("probe", "", "size probe strategy: du or native")
	rootCmd.PersistentFlags().StringP("format", "f", "", "report format: pretty, plain, json, yaml")
	rootCmd.PersistentFlags().IntP("threads", "t", 0, "max thread count to sweep (0=logical CPUs)")
	rootCmd.PersistentFlags().BoolP("dry-run", "d", false, "show the sweep plan without compressing")
	rootCmd.PersistentFlags().BoolP("quiet", "q", false, "minimal output")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "debug output")

	// Bind flags to viper
	_ = viper.BindPFlag("binary", rootCmd.PersistentFlags().Lookup("binary"))
	_ = viper.BindPFlag("exclude", rootCmd.PersistentFlags().Lookup("exclude"))
	_ = viper.BindPFlag("probe", rootCmd.PersistentFlags().Lookup("probe"))
	_ = viper.BindPFlag("format", rootCmd.PersistentFlags().Lookup("format"))
	_ = viper.BindPFlag("threads", rootCmd.PersistentFlags().Lookup("threads"))
	_ = viper.BindPFlag("dry_run", rootCmd.PersistentFlags().Lookup("dry-run"))
	_ = viper.BindPFlag("quiet", rootCmd.PersistentFlags().Lookup("quiet"))
	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
}

// initConfig reads in config file and environment variables.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")

		if xdgConfigHome := os.Getenv("XDG_CONFIG_HOME"); xdgConfigHome != "" {
			viper.AddConfigPath(filepath.Join(xdgConfigHome, "squeeze"))
		}

		homeDir, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(homeDir, ".config", "squeeze"))
		}
	}

	viper.SetEnvPrefix("SQUEEZE")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()

	config.SetDefaults(viper.GetViper())

	// Read config file (ignore if not found)
	_ = viper.ReadInConfig()
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// getQuiet returns true if quiet mode is enabled.
func getQuiet() bool {
	return viper.GetBool("quiet")
}

// printInfo prints a message if quiet mode is not enabled.
func printInfo(format string, args ...interface{}) {
	if !getQuiet() {
		fmt.Printf(format+"\n", args...)
	}
}

// printError prints an error message to stderr.
func printError(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
}
