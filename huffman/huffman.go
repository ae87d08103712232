// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Package huffman implements a static Huffman byte-stream codec: a
// frequency-sorted binary tree is built over the input's distinct byte
// values, serialized alongside a packed bit stream of per-byte codes.
//
// The wire format is a byte-aligned header followed by an LSB-first bit
// stream body:
//
//	offset 0: tail       uint8        // valid bits in the final body byte; 0 means full
//	offset 1: num_nodes  uint16 (LE)
//	offset 3: num_nodes * { code uint8; left int16 (LE); right int16 (LE) }
//	then:     packed bit stream, LSB-first within each byte
//
// The last arena node is always the tree's root.
package huffman

import (
	"encoding/binary"

	"github.com/dsnet/golib/errs"

	"github.com/dsnet/minipack/internal/prefixtree"
)

// Error is the wrapper type for errors specific to this package.
type Error string

func (e Error) Error() string { return "huffman: " + string(e) }

var (
	// ErrCorrupt indicates the compressed stream cannot be a legal encoding.
	ErrCorrupt error = Error("stream is corrupted")

	// ErrShortBuffer indicates the output buffer cannot hold the result.
	ErrShortBuffer error = Error("output buffer too small")
)

const headerBase = 3 // tail (1) + num_nodes (2)
const nodeSize = 5   // code (1) + left (2) + right (2)

// Codec implements the static Huffman coder.
//
// The zero value is ready to use; Codec carries no state between calls.
type Codec struct{}

// New returns a ready-to-use Huffman Codec.
func New() *Codec { return new(Codec) }

// String reports the codec's name for diagnostics.
func (*Codec) String() string { return "huffman" }

// Compress implements the codec contract described in the minipack package.
func (*Codec) Compress(input, output []byte) (ok bool, written int) {
	n, err := compress(input, output)
	if err != nil {
		return false, 0
	}
	return true, n
}

// Decompress implements the codec contract described in the minipack package.
func (*Codec) Decompress(input, output []byte) (ok bool, written int) {
	n, err := decompress(input, output)
	if err != nil {
		return false, 0
	}
	return true, n
}

func compress(input, output []byte) (n int, err error) {
	defer errs.Recover(&err)

	var counts [256]int
	for _, b := range input {
		counts[b]++
	}
	tree, leafOf := prefixtree.Build(&counts)

	hdrLen := headerBase + len(tree.Nodes)*nodeSize
	errs.Assert(hdrLen <= len(output), ErrShortBuffer)

	binary.LittleEndian.PutUint16(output[1:3], uint16(len(tree.Nodes)))
	for i, nd := range tree.Nodes {
		off := headerBase + i*nodeSize
		output[off] = nd.Code
		binary.LittleEndian.PutUint16(output[off+1:off+3], uint16(nd.Left))
		binary.LittleEndian.PutUint16(output[off+3:off+5], uint16(nd.Right))
	}

	bw := newBitWriter(output[hdrLen:])
	for _, b := range input {
		for _, bit := range tree.CodeBits(leafOf[b]) {
			errs.Assert(bw.PutBit(bit), ErrShortBuffer)
		}
	}

	bodyLen, tail := bw.Len()
	output[0] = tail
	return hdrLen + bodyLen, nil
}

func decompress(input, output []byte) (n int, err error) {
	defer errs.Recover(&err)

	errs.Assert(len(input) >= headerBase, ErrCorrupt)
	tail := input[0]
	errs.Assert(tail < 8, ErrCorrupt)
	numNodes := int(binary.LittleEndian.Uint16(input[1:3]))

	hdrLen := headerBase + numNodes*nodeSize
	errs.Assert(hdrLen <= len(input), ErrCorrupt)

	nodes := make([]prefixtree.Node, numNodes)
	for i := range nodes {
		off := headerBase + i*nodeSize
		nodes[i] = prefixtree.Node{
			Code:  input[off],
			Left:  int16(binary.LittleEndian.Uint16(input[off+1 : off+3])),
			Right: int16(binary.LittleEndian.Uint16(input[off+3 : off+5])),
		}
	}
	tree := &prefixtree.Tree{Nodes: nodes}

	if numNodes == 0 {
		return 0, nil // empty-input law: zero nodes decodes to zero bytes
	}

	root := tree.Root()
	br := newBitReader(input[hdrLen:], tail)
	cur := root
	for {
		bit, ok := br.GetBit()
		if !ok {
			break
		}
		nd := tree.Nodes[cur]
		var next int16
		if bit == 0 {
			next = nd.Left
		} else {
			next = nd.Right
		}
		if next == prefixtree.Null {
			// Defensive recovery per the wire format's safety rule: a
			// malformed stream resets to the root instead of indexing
			// past the arena.
			cur = root
			continue
		}
		cur = next
		if tree.IsLeaf(cur) {
			errs.Assert(n < len(output), ErrShortBuffer)
			output[n] = tree.Nodes[cur].Code
			n++
			cur = root
		}
	}
	return n, nil
}
