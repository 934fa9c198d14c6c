package main

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/joshuapare/arenakit/cmd/arenaview/logger"
)

var (
	version = "0.1.0"
	commit  = "none"
	date    = "unknown"
)

func main() {
	args := os.Args[1:]
	debugMode := false

	// Extract --debug/-d flag
	filteredArgs := make([]string, 0, len(args))
	for _, arg := range args {
		if arg == "--debug" || arg == "-d" {
			debugMode = true
		} else {
			filteredArgs = append(filteredArgs, arg)
		}
	}

	// Initialize logger (must be before any logging calls)
	if err := logger.Init(logger.Options{
		Enabled: debugMode,
		Level:   slog.LevelDebug,
	}); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to init logging: %v\n", err)
	}

	if len(filteredArgs) > 0 && (filteredArgs[0] == "--help" || filteredArgs[0] == "-h") {
		printHelp()
		os.Exit(0)
	}

	if len(filteredArgs) > 0 && (filteredArgs[0] == "--version" || filteredArgs[0] == "-v") {
		fmt.Printf("arenaview %s\n", version)
		fmt.Printf("  commit: %s\n", commit)
		fmt.Printf("  built: %s\n", date)
		os.Exit(0)
	}

	// Optional positional args: slot count and frame capacity
	slots := DefaultSlots
	frameCap := uintptr(DefaultFrameCap)
	if len(filteredArgs) > 0 {
		n, err := strconv.Atoi(filteredArgs[0])
		if err != nil || n < 1 {
			fmt.Fprintf(os.Stderr, "Error: slot count must be a positive integer, got %q\n", filteredArgs[0])
			os.Exit(1)
		}
		slots = n
	}
	if len(filteredArgs) > 1 {
		n, err := strconv.Atoi(filteredArgs[1])
		if err != nil || n < 1 {
			fmt.Fprintf(os.Stderr, "Error: frame capacity must be a positive integer, got %q\n", filteredArgs[1])
			os.Exit(1)
		}
		frameCap = uintptr(n)
	}

	logger.Info("starting arenaview", "slots", slots, "frameCap", frameCap, "debug", debugMode)

	m := NewModel(slots, frameCap)

	p := tea.NewProgram(
		m,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	finalModel, err := p.Run()
	if err != nil {
		logger.Error("TUI error", "error", err)
		fmt.Fprintf(os.Stderr, "Error running TUI: %v\n", err)
		os.Exit(1)
	}

	// Clean up resources
	if model, ok := finalModel.(Model); ok {
		if err := model.Close(); err != nil {
			// Log error but don't fail - cleanup is best effort
			logger.Warn("error releasing allocators", "error", err)
		}
	}

	logger.Info("arenaview exited normally")
}

func printHelp() {
	fmt.Println("arenaview - Interactive TUI for arena allocator state")
	fmt.Println()
	fmt.Println("USAGE:")
	fmt.Println("  arenaview [options] [slots] [frame-capacity]")
	fmt.Println()
	fmt.Println("DESCRIPTION:")
	fmt.Println("  Launches an interactive terminal UI driving a pool allocator and a")
	fmt.Println("  double-buffered frame arena.")
	fmt.Println()
	fmt.Println("  Features:")
	fmt.Println("    - Split-pane layout (slot-occupancy grid + frame cursor gauge)")
	fmt.Println("    - Keyboard navigation (vim-style keys supported)")
	fmt.Println("    - Allocate and free pool slots, watch the free list reuse them")
	fmt.Println("    - Push, swap, and clear the double-buffered frame arena")
	fmt.Println("    - Live counters and region fingerprints per pane")
	fmt.Println("    - Free-list integrity checks on demand (V)")
	fmt.Println()
	fmt.Println("  Navigation:")
	fmt.Println("    ↑/k, ↓/j    Move between grid rows")
	fmt.Println("    ←/h, →/l    Move along a grid row")
	fmt.Println("    Tab         Switch between pool and frame panes")
	fmt.Println("    ?           Show help")
	fmt.Println("    q           Quit")
	fmt.Println()
	fmt.Println("OPTIONS:")
	fmt.Println("  -d, --debug    Enable debug logging to ~/.arenaview/logs/")
	fmt.Println("  -h, --help     Show this help message")
	fmt.Println("  -v, --version  Show version information")
	fmt.Println()
	fmt.Println("EXAMPLES:")
	fmt.Println("  arenaview")
	fmt.Println("  arenaview 128 8192")
	fmt.Println()
	fmt.Println("For scripted workloads, use the 'arenactl' command instead.")
}
