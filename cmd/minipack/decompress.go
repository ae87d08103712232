// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var decompressCmd = &cobra.Command{
	Use:   "decompress <codec> <input> <output>",
	Short: "Decompress a file with the named codec",
	Args:  cobra.ExactArgs(3),
	RunE:  runDecompress,
}

// maxDecompressGuess caps how far decodeIntoGrowingBuffer will grow the
// output buffer before giving up, since the wire format carries no explicit
// uncompressed size field to size the buffer up front.
const maxDecompressGuess = 1 << 30

func runDecompress(cmd *cobra.Command, args []string) error {
	c, err := lookupCodec(args[0])
	if err != nil {
		return err
	}
	input, err := os.ReadFile(args[1])
	if err != nil {
		return err
	}

	output, n, err := decodeIntoGrowingBuffer(c, input)
	if err != nil {
		return err
	}
	if err := os.WriteFile(args[2], output[:n], 0644); err != nil {
		return err
	}

	fmt.Printf("%s: %d -> %d bytes\n", c, len(input), n)
	return nil
}

func decodeIntoGrowingBuffer(c interface {
	Decompress(input, output []byte) (ok bool, written int)
}, input []byte) (output []byte, written int, err error) {
	size := 4*len(input) + 64
	for size <= maxDecompressGuess {
		output = make([]byte, size)
		if ok, n := c.Decompress(input, output); ok {
			return output, n, nil
		}
		size *= 2
	}
	return nil, 0, fmt.Errorf("decompress failed: no output buffer up to %d bytes worked (malformed input, or uncompressed size exceeds the guess cap)", maxDecompressGuess)
}
