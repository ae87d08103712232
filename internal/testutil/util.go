// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Package testutil is a collection of testing helper methods.
package testutil

// Codec is the subset of the minipack.Codec interface that test helpers need.
// Defined locally so that testutil does not import the root package (which
// would create an import cycle with the per-algorithm test packages).
type Codec interface {
	Compress(input []byte, output []byte) (ok bool, written int)
	Decompress(input []byte, output []byte) (ok bool, written int)
}

// RoundTrip compresses input with c, decompresses the result, and returns the
// decompressed bytes along with the compressed size. It panics (failing the
// calling test loudly) if either step reports overflow, since every vector
// exercised by this helper sizes its buffers generously.
func RoundTrip(c Codec, input []byte) (output []byte, compressedLen int) {
	// The fixed headroom covers the largest Huffman header (3 + 511*5 bytes).
	comp := make([]byte, 2*len(input)+4096)
	ok, n := c.Compress(input, comp)
	if !ok {
		panic("testutil: Compress reported overflow")
	}
	comp = comp[:n]

	out := make([]byte, len(input))
	ok, n = c.Decompress(comp, out)
	if !ok {
		panic("testutil: Decompress reported overflow or malformed input")
	}
	return out[:n], len(comp)
}
