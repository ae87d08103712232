// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Package lz78 implements a dictionary byte-stream codec. A phrase cursor
// grows as long as the extended phrase already occurs in a fixed-capacity,
// direct-mapped dictionary; each record then carries a reference to the
// phrase being extended (if any) plus the single literal byte that extends
// it, both delta-encoded and nibble-packed by internal/nibble.
//
// Wire format, one record after another until the compressed buffer is
// exhausted:
//
//	header: 4 bits — DT, DT_4BIT, POS, POS_4BIT (bit 0 through bit 3)
//	if POS: d_pos   — 1 nibble if POS_4BIT, else 2 bytes (PosType = uint16)
//	if DT:  d_next  — 1 nibble if DT_4BIT,  else 1 byte
//
// POS is set whenever the record extends an existing phrase (buf_size > 0
// at emission time); DT is set whenever a literal follows (i.e. the record
// is not the last one, covering every remaining byte of input).
//
// Known limitation: the dictionary is a direct-mapped table of dictCapacity
// slots addressed by a DJB2 hash. Two distinct phrases that hash to the same
// slot collide, and the later phrase silently overwrites the earlier one —
// see the package-level discussion of this corpus's LZ78 in the design
// notes. This implementation documents the restriction rather than widening
// the table or rejecting on collision, matching the format described here.
package lz78

import (
	"bytes"

	"github.com/dsnet/golib/errs"

	"github.com/dsnet/minipack/internal/nibble"
)

// dictCapacity is the number of direct-mapped dictionary slots.
const dictCapacity = 8192

const dictMask = dictCapacity - 1

// Error is the wrapper type for errors specific to this package.
type Error string

func (e Error) Error() string { return "lz78: " + string(e) }

var (
	// ErrCorrupt indicates the compressed stream cannot be a legal encoding.
	ErrCorrupt error = Error("stream is corrupted")

	// ErrShortBuffer indicates the output buffer cannot hold the result.
	ErrShortBuffer error = Error("output buffer too small")
)

// Codec implements the LZ78 dictionary coder.
//
// The zero value is ready to use; Codec carries no state between calls.
type Codec struct{}

// New returns a ready-to-use LZ78 Codec.
func New() *Codec { return new(Codec) }

// String reports the codec's name for diagnostics.
func (*Codec) String() string { return "lz78" }

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

// hashDJB2 is the DJB2 hash: initial state 5381, per byte h = h*33 + b.
func hashDJB2(data []byte) uint32 {
	h := uint32(5381)
	for _, b := range data {
		h = h*33 + uint32(b)
	}
	return h
}

// encodeEntry is a dictionary slot on the compress side, referencing a byte
// range of the input buffer the encoder has full access to. This lets the
// phrase-growing loop verify an actual content match rather than trusting a
// bare hash, which would otherwise grow phrases across hash collisions.
type encodeEntry struct {
	start, size int
	valid       bool
}

type encodeDict struct {
	slots [dictCapacity]encodeEntry
}

func (d *encodeDict) slotOf(input []byte, start, size int) int {
	return int(hashDJB2(input[start:start+size])) & dictMask
}

// find reports the slot a phrase would occupy and whether that slot already
// holds exactly that phrase.
func (d *encodeDict) find(input []byte, start, size int) (slot int, ok bool) {
	slot = d.slotOf(input, start, size)
	e := d.slots[slot]
	if !e.valid || e.size != size {
		return slot, false
	}
	return slot, bytes.Equal(input[e.start:e.start+e.size], input[start:start+size])
}

func (d *encodeDict) insert(input []byte, start, size int) {
	slot := d.slotOf(input, start, size)
	d.slots[slot] = encodeEntry{start: start, size: size, valid: true}
}

func compress(input, output []byte) (n int, err error) {
	defer errs.Recover(&err)

	w := nibble.NewWriter(output)
	dict := &encodeDict{}
	var lastNext uint8
	var lastPos uint16

	N := len(input)
	for buf := 0; buf < N; {
		bufSize := 0
		for buf+bufSize < N {
			if _, ok := dict.find(input, buf, bufSize+1); !ok {
				break
			}
			bufSize++
		}

		hasNext := buf+bufSize < N
		var next uint8
		if hasNext {
			next = input[buf+bufSize]
		}
		dNext, fitsNext := nibble.DeltaU8(next, lastNext)

		posPresent := bufSize > 0
		var pos uint16
		var dPos uint16
		var fitsPos bool
		if posPresent {
			slot, ok := dict.find(input, buf, bufSize)
			errs.Assert(ok, Error("phrase-growth invariant violated")) // internal consistency
			pos = uint16(slot)
			dPos, fitsPos = nibble.DeltaU16(pos, lastPos)
		}

		var hdr uint8
		if hasNext {
			hdr |= 1 << 0
		}
		if fitsNext {
			hdr |= 1 << 1
		}
		if posPresent {
			hdr |= 1 << 2
		}
		if fitsPos {
			hdr |= 1 << 3
		}
		errs.Assert(w.PutNibble(hdr), ErrShortBuffer)

		if posPresent {
			if fitsPos {
				errs.Assert(w.PutNibble(uint8(dPos)), ErrShortBuffer)
			} else {
				errs.Assert(w.PutUint16(dPos), ErrShortBuffer)
			}
			lastPos = pos
		}
		if hasNext {
			if fitsNext {
				errs.Assert(w.PutNibble(dNext), ErrShortBuffer)
			} else {
				errs.Assert(w.PutByte(dNext), ErrShortBuffer)
			}
		}
		lastNext = next

		if hasNext {
			dict.insert(input, buf, bufSize+1)
			buf += bufSize + 1
		} else {
			buf += bufSize
		}
	}
	return w.Len(), nil
}

// decodeEntry is a dictionary slot on the decompress side, referencing a
// byte range of the output buffer already produced.
type decodeEntry struct {
	start, size int
	valid       bool
}

func decompress(input, output []byte) (n int, err error) {
	defer errs.Recover(&err)

	r := nibble.NewReader(input)
	var slots [dictCapacity]decodeEntry
	var lastNext uint8
	var lastPos uint16
	out := 0

	for r.More() {
		hdr, ok := r.GetNibble()
		if !ok {
			break
		}
		dt := hdr&(1<<0) != 0
		dt4 := hdr&(1<<1) != 0
		posPresent := hdr&(1<<2) != 0
		pos4 := hdr&(1<<3) != 0

		var pos uint16
		if posPresent {
			var dPos uint16
			if pos4 {
				v, ok := r.GetNibble()
				errs.Assert(ok, ErrCorrupt)
				dPos = uint16(v)
			} else {
				v, ok := r.GetUint16()
				errs.Assert(ok, ErrCorrupt)
				dPos = v
			}
			pos = nibble.UndeltaU16(dPos, lastPos)
			lastPos = pos
			errs.Assert(int(pos) < dictCapacity, ErrCorrupt)
		}

		var next uint8
		if dt {
			var dNext uint8
			if dt4 {
				v, ok := r.GetNibble()
				errs.Assert(ok, ErrCorrupt)
				dNext = v
			} else {
				v, ok := r.GetByte()
				errs.Assert(ok, ErrCorrupt)
				dNext = v
			}
			next = nibble.UndeltaU8(dNext, lastNext)
		}
		lastNext = next

		spanStart := out
		if posPresent {
			e := slots[pos]
			errs.Assert(e.valid, ErrCorrupt)
			errs.Assert(out+e.size <= len(output), ErrShortBuffer)
			copy(output[out:out+e.size], output[e.start:e.start+e.size])
			out += e.size
		}
		if dt {
			errs.Assert(out < len(output), ErrShortBuffer)
			output[out] = next
			out++
		}

		if dt {
			span := output[spanStart:out]
			slot := int(hashDJB2(span)) & dictMask
			slots[slot] = decodeEntry{start: spanStart, size: out - spanStart, valid: true}
		}
	}
	return out, nil
}
