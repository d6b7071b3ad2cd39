package main

import (
	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/pavanmanishd/bitalloc"
)

func init() {
	rootCmd.AddCommand(newLayoutCmd())
}

func newLayoutCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "layout",
		Short: "Show how a region is partitioned",
		Long: `The layout command shows how a region of --size bytes is split into
the occupancy index and the data region.

Example:
  bitallocctl layout --size 3000`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLayout()
		},
	}
	return cmd
}

// regionLayout is the JSON form of the layout command.
type regionLayout struct {
	RegionSize int `json:"region_size"`
	IndexBytes int `json:"index_bytes"`
	DataStart  int `json:"data_start"`
	Usable     int `json:"usable"`
	Quanta     int `json:"quanta"`
	Capacity   int `json:"capacity"`
}

func runLayout() error {
	a, closeFn, err := newAllocator(regionSize)
	if err != nil {
		return err
	}
	defer closeFn()

	m := a.Metrics()
	l := regionLayout{
		RegionSize: m.RegionSize,
		IndexBytes: m.IndexBytes,
		DataStart:  m.DataStart,
		Usable:     m.RegionSize - m.DataStart,
		Quanta:     m.Quanta,
		Capacity:   m.Capacity,
	}
	if jsonOut {
		return printJSON(l)
	}

	p := message.NewPrinter(language.English)
	printInfo("\nRegion Layout:\n")
	printInfo("%s", p.Sprintf("  Region:      %d bytes\n", l.RegionSize))
	printInfo("%s", p.Sprintf("  Index:       %d bytes at offset 0\n", l.IndexBytes))
	printInfo("%s", p.Sprintf("  Data start:  offset %d\n", l.DataStart))
	printInfo("%s", p.Sprintf("  Usable:      %d bytes\n", l.Usable))
	printInfo("%s", p.Sprintf("  Quanta:      %d × %d bytes = %d bytes\n", l.Quanta, bitalloc.Quantum, l.Capacity))
	return nil
}
