// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package lz78

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/dsnet/minipack/internal/testutil"
)

func roundTrip(t *testing.T, input []byte) []byte {
	t.Helper()
	c := New()
	got, _ := testutil.RoundTrip(c, input)
	if diff := cmp.Diff(input, got); diff != "" {
		t.Errorf("round trip mismatch (-input +got):\n%s", diff)
	}
	return got
}

func TestScenarios(t *testing.T) {
	vectors := map[string]string{
		"S1": "aaaabbcddd",
		"S2": "abacabacabadaca",
		"S3": "hellolololololo",
		"S4": "aacaacabcabaaac",
		"S5": "aacaacabcabaaacaacaacabcabaaacaacaacabcabaaac",
		"S6": "aaaaaaaaaaaaaa",
	}
	for name, s := range vectors {
		t.Run(name, func(t *testing.T) { roundTrip(t, []byte(s)) })
	}
}

func TestEmptyInput(t *testing.T) {
	c := New()
	out := make([]byte, 16)
	ok, n := c.Compress(nil, out)
	if !ok || n != 0 {
		t.Fatalf("Compress(nil) = (%v, %d), want (true, 0)", ok, n)
	}
	ok, n = c.Decompress(out[:0], nil)
	if !ok || n != 0 {
		t.Fatalf("Decompress(empty) = (%v, %d), want (true, 0)", ok, n)
	}
}

func TestOutputOverflow(t *testing.T) {
	c := New()
	out := make([]byte, 0)
	ok, n := c.Compress([]byte("hello"), out)
	if ok || n != 0 {
		t.Fatalf("Compress into undersized buffer = (%v, %d), want (false, 0)", ok, n)
	}
}

// TestNoCollisionInputs covers invariant 11: these short ASCII strings are
// far too small to drive two distinct phrases into the same one-of-8192
// dictionary slot, so they must round-trip exactly.
func TestNoCollisionInputs(t *testing.T) {
	for _, s := range []string{
		"aaaabbcddd",
		"abacabacabadaca",
		"hellolololololo",
		"mississippi",
		"abababababab",
	} {
		t.Run(s, func(t *testing.T) { roundTrip(t, []byte(s)) })
	}
}

func TestRandomBuffers(t *testing.T) {
	r := testutil.NewRand(5)
	for _, size := range []int{0, 1, 2, 17, 300, 4096} {
		input := r.Bytes(size)
		t.Run("", func(t *testing.T) { roundTrip(t, input) })
	}
}

func TestDeterministic(t *testing.T) {
	c := New()
	input := []byte("the quick brown fox jumps over the lazy dog, the quick brown fox")
	out1 := make([]byte, 256)
	out2 := make([]byte, 256)
	ok1, n1 := c.Compress(input, out1)
	ok2, n2 := c.Compress(input, out2)
	if !ok1 || !ok2 || n1 != n2 || !cmp.Equal(out1[:n1], out2[:n2]) {
		t.Error("Compress is not deterministic across repeated calls")
	}
}

func TestCorruptStreamRejected(t *testing.T) {
	c := New()
	// header nibble 0xC sets POS and POS_4BIT (bits 2 and 3): a reference to
	// dictionary slot 0, which is never populated on a fresh decode. Decode
	// must reject it instead of indexing an unassigned slot.
	bogus := []byte{0xC0}
	out := make([]byte, 16)
	if ok, _ := c.Decompress(bogus, out); ok {
		t.Error("Decompress accepted a stream referencing an unassigned dictionary slot")
	}
}

func TestCorruptStreamOutOfRangePos(t *testing.T) {
	c := New()
	// header nibble 0x4 sets POS alone (not POS_4BIT): a full 16-bit position
	// follows, here 0xFF0F (the first byte's low nibble 0 starts it), far
	// outside the dictionary's dictCapacity slots.
	// Decode must reject it rather than index the slot table out of range.
	bogus := []byte{0x40, 0xff, 0xff}
	out := make([]byte, 16)
	if ok, _ := c.Decompress(bogus, out); ok {
		t.Error("Decompress accepted a stream referencing an out-of-range dictionary position")
	}
}

func TestHashDJB2(t *testing.T) {
	// DJB2: initial state 5381, per byte h = h*33 + b.
	want := uint32(5381)
	want = want*33 + 'a'
	if got := hashDJB2([]byte("a")); got != want {
		t.Errorf("hashDJB2(\"a\") = %d, want %d", got, want)
	}
}
