// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package huffman

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/dsnet/minipack/internal/prefixtree"
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
	out := make([]byte, 64)
	ok, n := c.Compress(nil, out)
	if !ok {
		t.Fatal("Compress(nil) reported failure")
	}
	if out[0] != 0 || out[1] != 0 || out[2] != 0 {
		t.Fatalf("empty encoding = % x, want tail=0 num_nodes=0", out[:n])
	}

	ok, n = c.Decompress(out[:n], nil)
	if !ok || n != 0 {
		t.Fatalf("Decompress(empty encoding) = (%v, %d), want (true, 0)", ok, n)
	}
}

func TestSingleDistinctByte(t *testing.T) {
	roundTrip(t, []byte("zzzzzzzzzzzzzzzzzzzz"))
}

func TestOutputOverflow(t *testing.T) {
	c := New()
	out := make([]byte, 2) // too small to hold even the header
	ok, n := c.Compress([]byte("hello world"), out)
	if ok || n != 0 {
		t.Fatalf("Compress into undersized buffer = (%v, %d), want (false, 0)", ok, n)
	}
}

func TestRandomBuffers(t *testing.T) {
	r := testutil.NewRand(1)
	for _, size := range []int{0, 1, 2, 17, 257, 4096} {
		input := r.Bytes(size)
		t.Run("", func(t *testing.T) { roundTrip(t, input) })
	}
}

// TestTreeWellFormed checks invariant 7 from the specification: every node
// reachable from the root is reachable by exactly one root-to-leaf path, and
// the leaf set equals the set of distinct input bytes.
func TestTreeWellFormed(t *testing.T) {
	input := []byte("abacabacabadaca")
	var counts [256]int
	for _, b := range input {
		counts[b]++
	}
	tree, leafOf := prefixtree.Build(&counts)

	seen := make(map[int16]bool)
	var walk func(idx int16)
	walk = func(idx int16) {
		if seen[idx] {
			t.Fatalf("node %d reached more than once", idx)
		}
		seen[idx] = true
		n := tree.Nodes[idx]
		if tree.IsLeaf(idx) {
			return
		}
		walk(n.Left)
		walk(n.Right)
	}
	walk(tree.Root())

	if len(seen) != len(tree.Nodes) {
		t.Fatalf("reached %d of %d nodes", len(seen), len(tree.Nodes))
	}

	wantLeaves := map[byte]bool{}
	for _, b := range input {
		wantLeaves[b] = true
	}
	for b := range wantLeaves {
		if leafOf[b] == prefixtree.Null || !tree.IsLeaf(leafOf[b]) {
			t.Errorf("byte %q has no leaf in the tree", b)
		}
	}
}

func TestTailCorrectness(t *testing.T) {
	c := New()
	input := []byte("abacabacabadaca")
	out := make([]byte, 256)
	ok, n := c.Compress(input, out)
	if !ok {
		t.Fatal("Compress failed")
	}
	tail := out[0]
	if tail >= 8 {
		t.Fatalf("tail = %d, want < 8", tail)
	}
	if tail != 0 {
		lastByte := out[n-1]
		if lastByte>>uint(tail) != 0 {
			t.Errorf("bits past tail (%d) in final byte %#08b should be zero-padded", tail, lastByte)
		}
	}
}

func TestDeterministic(t *testing.T) {
	c := New()
	input := []byte("the quick brown fox jumps over the lazy dog")
	out1 := make([]byte, 512)
	out2 := make([]byte, 512)
	ok1, n1 := c.Compress(input, out1)
	ok2, n2 := c.Compress(input, out2)
	if !ok1 || !ok2 || n1 != n2 || !cmp.Equal(out1[:n1], out2[:n2]) {
		t.Error("Compress is not deterministic across repeated calls")
	}
}
