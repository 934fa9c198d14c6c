package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var (
	// Global flags
	verbose bool
	quiet   bool
)

// printer groups digits per locale so throughput numbers stay readable.
var printer = message.NewPrinter(language.English)

var rootCmd = &cobra.Command{
	Use:   "arenactl",
	Short: "Exercise and inspect arenakit allocators",
	Long: `arenactl drives the arenakit allocators from the command line:
timed allocation runs, randomized pool churn with free-list integrity
checks, and a double-buffered frame-loop simulation.`,
	Version: "0.1.0",
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().
		BoolVarP(&quiet, "quiet", "q", false, "Suppress all output except errors")
}

func execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Helper functions for output

// printInfo prints an info message if not in quiet mode
func printInfo(format string, args ...interface{}) {
	if !quiet {
		printer.Fprintf(os.Stdout, format, args...)
	}
}

// printVerbose prints a verbose message if verbose mode is enabled
func printVerbose(format string, args ...interface{}) {
	if verbose && !quiet {
		printer.Fprintf(os.Stdout, format, args...)
	}
}
