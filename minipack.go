// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Package minipack collects a small family of lossless byte-stream codecs —
// static Huffman, LZ77, and LZ78 — behind one uniform contract over
// caller-provided buffers. Each codec lives in its own subpackage (huffman, lz77, lz78) and
// is exposed here as a named entry in Codecs for harnesses, benchmarks, and
// the minipack command to iterate over without caring which one they hold.
package minipack

import (
	"fmt"

	"github.com/dsnet/minipack/huffman"
	"github.com/dsnet/minipack/lz77"
	"github.com/dsnet/minipack/lz78"
)

// Codec is the contract every codec in this module satisfies. Compress and
// Decompress never return an error value; instead they report success via ok
// and, on failure, report written as zero; output may already hold partial
// data written before the failure was detected. A false ok
// covers both an output buffer too small to hold the result and, for
// Decompress, an input stream that cannot be a legal encoding.
type Codec interface {
	fmt.Stringer

	// Compress encodes input into output, reporting the number of bytes
	// written. It never reads past len(input) or writes past len(output).
	Compress(input, output []byte) (ok bool, written int)

	// Decompress decodes input into output, reporting the number of bytes
	// written. It never reads past len(input) or writes past len(output).
	Decompress(input, output []byte) (ok bool, written int)
}

// Codecs lists every codec this module implements, keyed by name.
var Codecs = map[string]Codec{
	huffman.New().String(): huffman.New(),
	lz77.New().String():    lz77.New(),
	lz78.New().String():    lz78.New(),
}

// Names reports the registered codec names, in the fixed order huffman,
// lz77, lz78.
func Names() []string {
	return []string{"huffman", "lz77", "lz78"}
}
