package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jamesainslie/squeeze/pkg/squeeze/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the resolved configuration",
	RunE:  runConfigShow,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default config file if none exists",
	RunE:  runConfigInit,
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configInitCmd)
	rootCmd.AddCommand(configCmd)
}

// runConfigShow prints the effective settings after merging defaults,
// config file, and environment.
func runConfigShow(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		printError("%v", err)
		return err
	}

	if cfg.ConfigFile != "" {
		fmt.Printf("# config file: %s\n", cfg.ConfigFile)
	} else {
		fmt.Println("# config file: (none, using defaults)")
	}

	fmt.Printf("binary:  %s\n", cfg.Binary)
	fmt.Printf("root:    %s\n", cfg.Root)
	fmt.Printf("exclude: %s\n", strings.Join(cfg.Exclude, ", "))
	fmt.Printf("probe:   %s\n", cfg.Probe)
	fmt.Printf("format:  %s\n", cfg.Format)
	fmt.Printf("logging:\n")
	fmt.Printf("  level:         %s\n", cfg.Logging.Level)
	fmt.Printf("  console_level: %s\n", cfg.Logging.ConsoleLevel)
	return nil
}

// runConfigInit writes the default config file.
func runConfigInit(cmd *cobra.Command, args []string) error {
	if err := config.WriteDefault(); err != nil {
		printError("%v", err)
		return err
	}

	dir, err := config.ConfigDir()
	if err != nil {
		return err
	}
	printInfo("config written to %s", filepath.Join(dir, "config.yaml"))
	return nil
}
