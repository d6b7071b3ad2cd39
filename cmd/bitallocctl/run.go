package main

import (
	"io"
	"os"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(newRunCmd())
}

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run [script]",
		Short: "Run an allocation script",
		Long: `The run command executes an allocation script against a fresh allocator.
The script is read from the named file, or from stdin when no file is given.

Script syntax, one operation per line, '#' starts a comment:
  alloc <name> <size> [align]   allocate and remember the offset as <name>
  free <name>                   free a named allocation
  reset                         free everything
  dump                          print the occupancy index
  stats                         print allocator statistics

Example:
  bitallocctl run ops.txt
  echo "alloc a 100 64" | bitallocctl run --size 1024 --json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in := cmd.InOrStdin()
			if len(args) == 1 {
				f, err := os.Open(args[0])
				if err != nil {
					return errors.Wrap(err, "open script")
				}
				defer f.Close()
				in = f
			}
			return runScriptFrom(in)
		},
	}
	return cmd
}

func runScriptFrom(in io.Reader) error {
	ops, err := parseScript(in)
	if err != nil {
		return err
	}
	return runScript(ops, regionSize)
}
