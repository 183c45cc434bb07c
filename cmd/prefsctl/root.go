package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/joshuapare/prefkit/internal/logger"
	"github.com/joshuapare/prefkit/pkg/prefs"
)

var (
	// Global flags
	verbose     bool
	quiet       bool
	jsonOut     bool
	profilePath string
	sysFlag     []string
	rcFlag      string
	stateFlag   string
)

var rootCmd = &cobra.Command{
	Use:   "prefsctl",
	Short: "Inspect and edit preference files",
	Long: `prefsctl reads and writes typed preference files. A profile names the
system files that seed defaults, the user's rc file and the session state
file; keys are merged in that order just as the application does on start-up.`,
	Version:           version,
	SilenceUsage:      true,
	PersistentPreRunE: setupLogging,
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().
		BoolVarP(&quiet, "quiet", "q", false, "Suppress all output except errors")
	rootCmd.PersistentFlags().BoolVar(&jsonOut, "json", false, "Output in JSON format")
	rootCmd.PersistentFlags().StringVarP(&profilePath, "profile", "p", "", "TOML profile naming the preference files")
	rootCmd.PersistentFlags().StringArrayVar(&sysFlag, "sys", nil, "System preference file (repeatable)")
	rootCmd.PersistentFlags().StringVar(&rcFlag, "rc", "", "User rc file")
	rootCmd.PersistentFlags().StringVar(&stateFlag, "state", "", "Session state file")
}

func execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func setupLogging(cmd *cobra.Command, _ []string) error {
	if quiet {
		return logger.Init(logger.Options{})
	}
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return logger.Init(logger.Options{Enabled: true, Writer: cmd.ErrOrStderr(), Level: level})
}

// openStore resolves the profile and loads every file it names. Item-level
// warnings are printed; file-level failures are returned.
func openStore() (*prefs.Store, Profile, error) {
	p, err := resolveProfile()
	if err != nil {
		return nil, p, err
	}

	printVerbose("Loading sys=%v rc=%s state=%s\n", p.Sys, p.RC, p.State)

	store := prefs.New(prefs.DefaultOptions())
	report, err := store.Load(p.Sys, p.RC, p.State)
	if err != nil {
		store.Close()
		return nil, p, fmt.Errorf("failed to load preferences: %w", err)
	}
	for _, w := range report.Warnings {
		printWarning("%v\n", w)
	}
	return store, p, nil
}

// Helper functions for output

// printInfo prints an info message if not in quiet mode
func printInfo(format string, args ...interface{}) {
	if !quiet {
		fmt.Fprintf(os.Stdout, format, args...)
	}
}

// printError prints an error message
func printError(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "Error: "+format, args...)
}

// printWarning prints a non-fatal problem to stderr unless in quiet mode
func printWarning(format string, args ...interface{}) {
	if !quiet {
		fmt.Fprintf(os.Stderr, "Warning: "+format, args...)
	}
}

// printVerbose prints a verbose message if verbose mode is enabled
func printVerbose(format string, args ...interface{}) {
	if verbose && !quiet {
		fmt.Fprintf(os.Stdout, format, args...)
	}
}

// printJSON outputs data as JSON
func printJSON(v interface{}) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}
