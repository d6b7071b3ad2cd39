package main

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/pavanmanishd/bitalloc"
)

type opKind string

const (
	opAlloc opKind = "alloc"
	opFree  opKind = "free"
	opReset opKind = "reset"
	opDump  opKind = "dump"
	opStats opKind = "stats"
)

// scriptOp is one line of an allocation script:
//
//	alloc <name> <size> [align]
//	free <name>
//	reset
//	dump
//	stats
type scriptOp struct {
	line  int
	kind  opKind
	name  string
	size  int
	align int
}

// parseScript reads an allocation script. Blank lines and text after '#'
// are ignored.
func parseScript(r io.Reader) ([]scriptOp, error) {
	var ops []scriptOp
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		text, _, _ := strings.Cut(sc.Text(), "#")
		fields := strings.Fields(text)
		if len(fields) == 0 {
			continue
		}
		op, err := parseOp(line, fields)
		if err != nil {
			return nil, err
		}
		ops = append(ops, op)
	}
	if err := sc.Err(); err != nil {
		return nil, errors.Wrap(err, "read script")
	}
	return ops, nil
}

func parseOp(line int, fields []string) (scriptOp, error) {
	op := scriptOp{line: line, kind: opKind(strings.ToLower(fields[0]))}
	args := fields[1:]

	switch op.kind {
	case opAlloc:
		if len(args) != 2 && len(args) != 3 {
			return op, errors.Newf("line %d: usage: alloc <name> <size> [align]", line)
		}
		op.name = args[0]
		op.align = bitalloc.Quantum
		var err error
		if op.size, err = strconv.Atoi(args[1]); err != nil {
			return op, errors.Newf("line %d: bad size %q", line, args[1])
		}
		if len(args) == 3 {
			if op.align, err = strconv.Atoi(args[2]); err != nil {
				return op, errors.Newf("line %d: bad alignment %q", line, args[2])
			}
		}
	case opFree:
		if len(args) != 1 {
			return op, errors.Newf("line %d: usage: free <name>", line)
		}
		op.name = args[0]
	case opReset, opDump, opStats:
		if len(args) != 0 {
			return op, errors.Newf("line %d: %s takes no arguments", line, op.kind)
		}
	default:
		return op, errors.Newf("line %d: unknown operation %q", line, fields[0])
	}
	return op, nil
}

// stepResult is the outcome of one script operation.
type stepResult struct {
	Line    int               `json:"line"`
	Op      opKind            `json:"op"`
	Name    string            `json:"name,omitempty"`
	Size    int               `json:"size,omitempty"`
	Align   int               `json:"align,omitempty"`
	Offset  int               `json:"offset,omitempty"`
	Error   string            `json:"error,omitempty"`
	Dump    string            `json:"dump,omitempty"`
	Metrics *bitalloc.Metrics `json:"metrics,omitempty"`
}

type allocation struct {
	off  int
	size int
}

// scriptRunner applies script operations to an allocator, tracking the
// offset and size of every named allocation so frees can be issued.
type scriptRunner struct {
	a       *bitalloc.Allocator
	live    map[string]allocation
	results []stepResult
}

func newScriptRunner(a *bitalloc.Allocator) *scriptRunner {
	return &scriptRunner{a: a, live: make(map[string]allocation)}
}

// exec runs ops in order. Failed allocations and rejected frees are
// recorded as results; misuse of names stops the script.
func (r *scriptRunner) exec(ops []scriptOp) error {
	for _, op := range ops {
		res := stepResult{Line: op.line, Op: op.kind, Name: op.name}

		switch op.kind {
		case opAlloc:
			if al, ok := r.live[op.name]; ok && al.off != bitalloc.NilOffset {
				return errors.Newf("line %d: %q is already allocated", op.line, op.name)
			}
			res.Size, res.Align = op.size, op.align
			off, err := r.a.AllocAligned(op.size, op.align)
			if err != nil {
				res.Error = err.Error()
			}
			res.Offset = off
			// A failed allocation keeps its name with NilOffset; freeing it is a
			// no-op and allocating it again is allowed.
			r.live[op.name] = allocation{off: off, size: op.size}
		case opFree:
			al, ok := r.live[op.name]
			if !ok {
				return errors.Newf("line %d: free of unknown allocation %q", op.line, op.name)
			}
			res.Size, res.Offset = al.size, al.off
			if err := r.a.FreeChecked(al.off, al.size); err != nil {
				res.Error = err.Error()
			}
			delete(r.live, op.name)
		case opReset:
			r.a.Reset()
			clear(r.live)
		case opDump:
			res.Dump = r.a.Dump()
		case opStats:
			m := r.a.Metrics()
			res.Metrics = &m
		}
		r.results = append(r.results, res)
	}
	return nil
}

// printResults writes results as text.
func printResults(results []stepResult) {
	for _, res := range results {
		switch res.Op {
		case opAlloc:
			if res.Error != "" {
				printInfo("%-6s alloc(%d, %d) failed: %s\n", res.Name, res.Size, res.Align, res.Error)
			} else {
				printInfo("%-6s alloc(%d, %d) = %d\n", res.Name, res.Size, res.Align, res.Offset)
			}
		case opFree:
			if res.Error != "" {
				printInfo("%-6s free(%d, %d) ignored: %s\n", res.Name, res.Offset, res.Size, res.Error)
			} else {
				printInfo("%-6s free(%d, %d)\n", res.Name, res.Offset, res.Size)
			}
		case opReset:
			printInfo("reset\n")
		case opDump:
			printInfo("%s\n", res.Dump)
		case opStats:
			printMetrics(*res.Metrics)
		}
	}
}

// scriptReport is the JSON form of a script run.
type scriptReport struct {
	Results []stepResult     `json:"results"`
	Metrics bitalloc.Metrics `json:"metrics"`
}

// runScript executes ops on a fresh allocator of size bytes and prints the outcome.
func runScript(ops []scriptOp, size int) error {
	a, closeFn, err := newAllocator(size)
	if err != nil {
		return err
	}
	defer closeFn()

	m := a.Metrics()
	printVerbose("Usable: %d bytes in %d quanta from offset %d\n",
		m.RegionSize-m.DataStart, m.Quanta, m.DataStart)

	r := newScriptRunner(a)
	if err := r.exec(ops); err != nil {
		return err
	}
	if err := a.Validate(); err != nil {
		return err
	}

	if jsonOut {
		return printJSON(scriptReport{Results: r.results, Metrics: a.Metrics()})
	}
	printResults(r.results)
	return nil
}
