package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/pavanmanishd/bitalloc"
)

var (
	// Global flags
	verbose    bool
	quiet      bool
	jsonOut    bool
	useMmap    bool
	strict     bool
	regionSize int
)

// stdout is where command output goes; tests replace it.
var stdout io.Writer = os.Stdout

var rootCmd = &cobra.Command{
	Use:   "bitallocctl",
	Short: "Drive a fixed-size bitmap allocator",
	Long: `bitallocctl creates a bitmap allocator over a fixed region and runs
allocations against it, printing the offsets handed out, the occupancy
index and allocator statistics.`,
	Version:       "0.1.0",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log every allocator event")
	rootCmd.PersistentFlags().
		BoolVarP(&quiet, "quiet", "q", false, "Suppress all output except errors")
	rootCmd.PersistentFlags().BoolVar(&jsonOut, "json", false, "Output in JSON format")
	rootCmd.PersistentFlags().BoolVar(&useMmap, "mmap", false, "Back the region with mmap instead of the Go heap")
	rootCmd.PersistentFlags().BoolVar(&strict, "strict", false, "Reject frees that do not match a live allocation")
	rootCmd.PersistentFlags().
		IntVar(&regionSize, "size", bitalloc.MaxRegionSize, "Region size in bytes")
}

func execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// newLogger returns the logger handed to the allocator.
func newLogger() *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	if quiet {
		level = slog.LevelError
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// newAllocator builds an allocator of size bytes according to the global
// flags. The returned function releases the region.
func newAllocator(size int) (*bitalloc.Allocator, func() error, error) {
	opts := []bitalloc.Option{bitalloc.WithLogger(newLogger())}
	if strict {
		opts = append(opts, bitalloc.WithStrictFree())
	}

	if useMmap {
		printVerbose("Mapping %d byte region\n", size)
		m, err := bitalloc.NewMapped(size, opts...)
		if err != nil {
			return nil, nil, err
		}
		return m.Allocator, m.Close, nil
	}

	a, err := bitalloc.New(make([]byte, max(size, 0)), opts...)
	if err != nil {
		return nil, nil, err
	}
	return a, func() error { return nil }, nil
}

// Helper functions for output

// printInfo prints an info message if not in quiet mode
func printInfo(format string, args ...any) {
	if !quiet {
		fmt.Fprintf(stdout, format, args...)
	}
}

// printVerbose prints a verbose message if verbose mode is enabled
func printVerbose(format string, args ...any) {
	if verbose && !quiet {
		fmt.Fprintf(stdout, format, args...)
	}
}

// printJSON outputs data as JSON
func printJSON(v any) error {
	encoder := json.NewEncoder(stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

// printMetrics prints allocator statistics as indented text.
func printMetrics(m bitalloc.Metrics) {
	printInfo("\nAllocator Statistics:\n")
	printInfo("  Capacity:      %d bytes (%d quanta)\n", m.Capacity, m.Quanta)
	printInfo("  In use:        %d bytes (%d quanta)\n", m.SizeInUse, m.QuantaInUse)
	printInfo("  Largest free:  %d bytes\n", m.LargestFree)
	printInfo("  Utilization:   %.2f%%\n", m.Utilization*100)
	printInfo("  Cursor:        quantum %d\n", m.Cursor)
	printInfo("  Allocations:   %d (%d at cursor, %d by scan, %d failed)\n",
		m.Allocs, m.ProbeHits, m.ScanHits, m.Failures)
	printInfo("  Frees:         %d (%d ignored)\n", m.Frees, m.IgnoredFrees)
}
