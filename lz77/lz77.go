// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Package lz77 implements a sliding-window byte-stream codec. Each emitted
// record describes a backward match (offset, length) within the trailing
// windowSize bytes of already-processed input, followed by the single
// literal byte that follows the match. All three fields are delta-encoded
// against the previous record's fields and nibble-packed by internal/nibble.
//
// Wire format, one record after another until the compressed buffer is
// exhausted:
//
//	header: 4 bits — PAIR, DT, PAIR_4BIT, DT_4BIT (bit 0 through bit 3)
//	if PAIR: d_offset, d_length — 2 nibbles if PAIR_4BIT, else 2 bytes
//	if DT:   d_next             — 1 nibble if DT_4BIT,   else 1 byte
//
// PAIR is set whenever (offset, length) != (0, 0); DT is set whenever a
// literal follows the match (i.e. the record is not the last one, covering
// every remaining byte of input). There is no explicit end-of-stream marker;
// decoding stops when the nibble stream is exhausted.
package lz77

import (
	"github.com/dsnet/golib/errs"

	"github.com/dsnet/minipack/internal/nibble"
)

// windowSize bounds how far back a match may reach, and — since PairType is
// fixed to uint8 on the wire — also bounds the representable match length.
const windowSize = 255

// Error is the wrapper type for errors specific to this package.
type Error string

func (e Error) Error() string { return "lz77: " + string(e) }

var (
	// ErrCorrupt indicates the compressed stream cannot be a legal encoding.
	ErrCorrupt error = Error("stream is corrupted")

	// ErrShortBuffer indicates the output buffer cannot hold the result.
	ErrShortBuffer error = Error("output buffer too small")
)

// Codec implements the sliding-window LZ77 coder.
//
// The zero value is ready to use; Codec carries no state between calls.
type Codec struct{}

// New returns a ready-to-use LZ77 Codec.
func New() *Codec { return new(Codec) }

// String reports the codec's name for diagnostics.
func (*Codec) String() string { return "lz77" }

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

// bestMatch finds the longest run starting at input[i] that also occurs
// starting somewhere in input[ws:i]. Ties are broken in favor of the latest
// (smallest-offset) candidate, which is also the cheapest to delta-encode
// against a recent offset.
func bestMatch(input []byte, ws, i int) (offset, length uint8) {
	maxLen := len(input) - i
	if maxLen > windowSize {
		maxLen = windowSize
	}

	bestLen, bestStart := 0, i
	for s := ws; s < i; s++ {
		l := 0
		for l < maxLen && input[s+l] == input[i+l] {
			l++
		}
		if l >= bestLen {
			bestLen, bestStart = l, s
		}
	}
	if bestLen == 0 {
		return 0, 0
	}
	return uint8(i - bestStart), uint8(bestLen)
}

func compress(input, output []byte) (n int, err error) {
	defer errs.Recover(&err)

	w := nibble.NewWriter(output)
	var lastOffset, lastLength, lastNext uint8

	i, N := 0, len(input)
	for i < N {
		ws := i - windowSize
		if ws < 0 {
			ws = 0
		}
		offset, length := bestMatch(input, ws, i)

		hasNext := i+int(length) < N
		var next uint8
		if hasNext {
			next = input[i+int(length)]
		}

		dOffset, fitsOffset := nibble.DeltaU8(offset, lastOffset)
		dLength, fitsLength := nibble.DeltaU8(length, lastLength)
		dNext, fitsNext := nibble.DeltaU8(next, lastNext)

		pair := offset != 0 || length != 0
		pair4 := fitsOffset && fitsLength

		var hdr uint8
		if pair {
			hdr |= 1 << 0
		}
		if hasNext {
			hdr |= 1 << 1
		}
		if pair4 {
			hdr |= 1 << 2
		}
		if fitsNext {
			hdr |= 1 << 3
		}
		errs.Assert(w.PutNibble(hdr), ErrShortBuffer)

		if pair {
			if pair4 {
				errs.Assert(w.PutNibble(dOffset), ErrShortBuffer)
				errs.Assert(w.PutNibble(dLength), ErrShortBuffer)
			} else {
				errs.Assert(w.PutByte(dOffset), ErrShortBuffer)
				errs.Assert(w.PutByte(dLength), ErrShortBuffer)
			}
		}
		if hasNext {
			if fitsNext {
				errs.Assert(w.PutNibble(dNext), ErrShortBuffer)
			} else {
				errs.Assert(w.PutByte(dNext), ErrShortBuffer)
			}
		}

		lastOffset, lastLength, lastNext = offset, length, next
		i += int(length)
		i++
	}
	return w.Len(), nil
}

func decompress(input, output []byte) (n int, err error) {
	defer errs.Recover(&err)

	r := nibble.NewReader(input)
	var lastOffset, lastLength, lastNext uint8
	out := 0

	for r.More() {
		hdr, ok := r.GetNibble()
		if !ok {
			break
		}
		pair := hdr&(1<<0) != 0
		dt := hdr&(1<<1) != 0
		pair4 := hdr&(1<<2) != 0
		dt4 := hdr&(1<<3) != 0

		var offset, length uint8
		if pair {
			var dOffset, dLength uint8
			var ok bool
			if pair4 {
				dOffset, ok = r.GetNibble()
				errs.Assert(ok, ErrCorrupt)
				dLength, ok = r.GetNibble()
				errs.Assert(ok, ErrCorrupt)
			} else {
				dOffset, ok = r.GetByte()
				errs.Assert(ok, ErrCorrupt)
				dLength, ok = r.GetByte()
				errs.Assert(ok, ErrCorrupt)
			}
			offset = nibble.UndeltaU8(dOffset, lastOffset)
			length = nibble.UndeltaU8(dLength, lastLength)
		}

		var next uint8
		if dt {
			var dNext uint8
			var ok bool
			if dt4 {
				dNext, ok = r.GetNibble()
			} else {
				dNext, ok = r.GetByte()
			}
			errs.Assert(ok, ErrCorrupt)
			next = nibble.UndeltaU8(dNext, lastNext)
		}

		if pair && length > 0 {
			errs.Assert(int(offset) >= 1 && int(offset) <= out, ErrCorrupt)
			for k := 0; k < int(length); k++ {
				errs.Assert(out < len(output), ErrShortBuffer)
				output[out] = output[out-int(offset)]
				out++
			}
		}
		if dt {
			errs.Assert(out < len(output), ErrShortBuffer)
			output[out] = next
			out++
		}

		lastOffset, lastLength, lastNext = offset, length, next
	}
	return out, nil
}
