package main

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/jamesainslie/squeeze/pkg/squeeze/archiver"
	"github.com/jamesainslie/squeeze/pkg/squeeze/config"
	"github.com/jamesainslie/squeeze/pkg/squeeze/logging"
	"github.com/jamesainslie/squeeze/pkg/squeeze/output"
	"github.com/jamesainslie/squeeze/pkg/squeeze/probe"
	"github.com/jamesainslie/squeeze/pkg/squeeze/tuner"
)

// runTune is the root command: probe, sweep, report.
func runTune(cmd *cobra.Command, args []string) error {
	root, err := resolveRoot(args)
	if err != nil {
		printError("%v", err)
		return err
	}

	if err := initLogging(); err != nil {
		printError("%v", err)
		return err
	}
	defer logging.Close()

	arch, err := archiver.New(viper.GetString("binary"), root, viper.GetStringSlice("exclude"))
	if err != nil {
		printError("%v", err)
		return err
	}

	prober, err := probe.New(viper.GetString("probe"))
	if err != nil {
		printError("%v", err)
		return err
	}

	tn := tuner.New(arch, prober, tuner.Options{
		MaxThreads: viper.GetInt("threads"),
	})

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if viper.GetBool("dry_run") {
		return printPlan(ctx, tn)
	}

	res, err := tn.Run(ctx)
	if err != nil {
		printError("%v", err)
		return err
	}

	formatter, err := output.Get(viper.GetString("format"))
	if err != nil {
		printError("%v (available: %s)", err, strings.Join(output.Available(), ", "))
		return err
	}

	var buf bytes.Buffer
	if err := formatter.Format(&buf, output.FromResult(res)); err != nil {
		printError("formatting report: %v", err)
		return err
	}
	fmt.Print(buf.String())
	return nil
}

// resolveRoot picks the working root: the positional argument when
// given, the configured root otherwise. Tilde paths expand to the
// user's home directory.
func resolveRoot(args []string) (string, error) {
	root := viper.GetString("root")
	if len(args) == 1 {
		root = args[0]
	}
	return config.ExpandPath(root)
}

// printPlan shows the candidate tables a run would sweep, without
// invoking the compressor.
func printPlan(ctx context.Context, tn *tuner.Tuner) error {
	dict, block, word, threads, err := tn.Plan(ctx)
	if err != nil {
		printError("%v", err)
		return err
	}

	printInfo("dict:    %s", strings.Join(dict, " "))
	printInfo("word:    %s", joinInts(word))
	printInfo("block:   %s", strings.Join(block, " "))
	printInfo("threads: %s", joinInts(threads))
	return nil
}

// joinInts renders an int slice as a space-separated string.
func joinInts(values []int) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, " ")
}

// initLogging wires the logging package from the resolved settings.
// --verbose forces debug console output; --quiet silences the console
// while the log file keeps its configured level.
func initLogging() error {
	consoleLevel := viper.GetString("logging.console_level")
	if viper.GetBool("verbose") {
		consoleLevel = "debug"
	}
	if getQuiet() {
		consoleLevel = ""
	}

	return logging.Init(logging.Config{
		Level:        viper.GetString("logging.level"),
		Path:         viper.GetString("logging.path"),
		Components:   viper.GetStringMapString("logging.components"),
		ConsoleLevel: consoleLevel,
	})
}
