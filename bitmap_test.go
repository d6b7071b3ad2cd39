package bitalloc

import (
	"bytes"
	"strings"
	"testing"
)

func TestBitmapMSBFirst(t *testing.T) {
	tests := []struct {
		bit      int
		expected []byte
	}{
		{0, []byte{0x80, 0x00}},
		{1, []byte{0x40, 0x00}},
		{7, []byte{0x01, 0x00}},
		{8, []byte{0x00, 0x80}},
		{9, []byte{0x00, 0x40}},
		{15, []byte{0x00, 0x01}},
	}

	for _, tt := range tests {
		bm := make(bitmap, 2)
		bm.set(tt.bit, true)
		if !bytes.Equal(bm, tt.expected) {
			t.Errorf("set(%d) = %08b, want %08b", tt.bit, []byte(bm), tt.expected)
		}
		if !bm.get(tt.bit) {
			t.Errorf("get(%d) = false after set", tt.bit)
		}
		bm.set(tt.bit, false)
		if !bytes.Equal(bm, []byte{0, 0}) {
			t.Errorf("clearing bit %d left %08b", tt.bit, []byte(bm))
		}
	}
}

func TestBitmapSetRange(t *testing.T) {
	bm := make(bitmap, 2)
	bm.setRange(3, 7, true)
	if want := []byte{0x1f, 0xc0}; !bytes.Equal(bm, want) {
		t.Fatalf("setRange(3, 7) = %08b, want %08b", []byte(bm), want)
	}

	bm.setRange(4, 2, false)
	if want := []byte{0x13, 0xc0}; !bytes.Equal(bm, want) {
		t.Fatalf("clear range(4, 2) = %08b, want %08b", []byte(bm), want)
	}

	bm.setRange(0, 0, true)
	if want := []byte{0x13, 0xc0}; !bytes.Equal(bm, want) {
		t.Fatalf("empty setRange changed bitmap to %08b", []byte(bm))
	}
}

func TestBitmapRangeFree(t *testing.T) {
	bm := make(bitmap, 2)
	bm.set(5, true)

	tests := []struct {
		name         string
		start, count int
		limit        int
		expected     bool
	}{
		{"before set bit", 0, 5, 16, true},
		{"covers set bit", 3, 4, 16, false},
		{"starts at set bit", 5, 1, 16, false},
		{"after set bit", 6, 10, 16, true},
		{"past limit", 6, 10, 15, false},
		{"exactly at limit", 6, 9, 15, true},
		{"empty run", 5, 0, 16, true},
		{"negative start", -1, 2, 16, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := bm.rangeFree(tt.start, tt.count, tt.limit); got != tt.expected {
				t.Errorf("rangeFree(%d, %d, %d) = %v, want %v", tt.start, tt.count, tt.limit, got, tt.expected)
			}
		})
	}
}

func TestBitmapCounting(t *testing.T) {
	bm := make(bitmap, 3)
	bm.setRange(2, 3, true)  // 2..4
	bm.setRange(10, 1, true) // 10
	bm.set(23, true)         // beyond the limit used below

	if got := bm.count(20); got != 4 {
		t.Errorf("count(20) = %d, want 4", got)
	}
	if got := bm.count(24); got != 5 {
		t.Errorf("count(24) = %d, want 5", got)
	}
	// free runs below 20: 0..1, 5..9, 11..19
	if got := bm.longestFreeRun(20); got != 9 {
		t.Errorf("longestFreeRun(20) = %d, want 9", got)
	}
	if got := bm.longestFreeRun(0); got != 0 {
		t.Errorf("longestFreeRun(0) = %d, want 0", got)
	}
}

func TestBitmapRender(t *testing.T) {
	bm := make(bitmap, 2)
	bm.setRange(1, 2, true)
	bm.set(9, true)

	got := bm.render(10, 4)
	want := strings.Join([]string{"0110", "0000", "01"}, "\n")
	if got != want {
		t.Errorf("render(10, 4) = %q, want %q", got, want)
	}
}
