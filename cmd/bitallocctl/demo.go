package main

import (
	"strings"

	"github.com/spf13/cobra"
)

// demoRegionSize and demoScript reproduce the allocator's reference walk-through.
const demoRegionSize = 3000

const demoScript = `
alloc p1 17
alloc p2 99 128
alloc p3 9
alloc p4 120 128
alloc p5 128
alloc p6 2528 16   # larger than what is left
alloc p7 2520 16
free p7
alloc p8 2520
dump
stats
`

func init() {
	rootCmd.AddCommand(newDemoCmd())
}

func newDemoCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Run the reference allocation sequence",
		Long: `The demo command allocates a mix of plain and aligned blocks from a
3000 byte region, frees one, and prints every offset together with the
final occupancy index and statistics.

Example:
  bitallocctl demo
  bitallocctl demo --mmap --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDemo()
		},
	}
	return cmd
}

func runDemo() error {
	ops, err := parseScript(strings.NewReader(demoScript))
	if err != nil {
		return err
	}
	return runScript(ops, demoRegionSize)
}
