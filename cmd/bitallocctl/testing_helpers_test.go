package main

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/pavanmanishd/bitalloc"
)

// captureOutput captures command output while running a function and
// restores the global flags afterwards.
func captureOutput(t *testing.T, fn func() error) (string, error) {
	t.Helper()

	origStdout := stdout
	origFlags := []any{verbose, quiet, jsonOut, useMmap, strict, regionSize}
	t.Cleanup(func() {
		stdout = origStdout
		verbose = origFlags[0].(bool)
		quiet = origFlags[1].(bool)
		jsonOut = origFlags[2].(bool)
		useMmap = origFlags[3].(bool)
		strict = origFlags[4].(bool)
		regionSize = origFlags[5].(int)
	})

	var buf bytes.Buffer
	stdout = &buf
	err := fn()
	return buf.String(), err
}

// decodeReport parses the JSON output of a script run.
func decodeReport(t *testing.T, output string) scriptReport {
	t.Helper()
	var report scriptReport
	if err := json.Unmarshal([]byte(output), &report); err != nil {
		t.Fatalf("invalid JSON output: %v\nOutput: %s", err, output)
	}
	return report
}

// assertContains checks that output contains all expected strings
func assertContains(t *testing.T, output string, expected []string) {
	t.Helper()
	for _, want := range expected {
		if !strings.Contains(output, want) {
			t.Errorf("output missing expected string %q\nGot: %s", want, output)
		}
	}
}

func newHeapAllocator(t *testing.T, size int) *bitalloc.Allocator {
	t.Helper()
	a, err := bitalloc.New(make([]byte, size))
	if err != nil {
		t.Fatalf("New(%d): %v", size, err)
	}
	return a
}
