// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var compressCmd = &cobra.Command{
	Use:   "compress <codec> <input> <output>",
	Short: "Compress a file with the named codec",
	Args:  cobra.ExactArgs(3),
	RunE:  runCompress,
}

func runCompress(cmd *cobra.Command, args []string) error {
	c, err := lookupCodec(args[0])
	if err != nil {
		return err
	}
	input, err := os.ReadFile(args[1])
	if err != nil {
		return err
	}

	output := make([]byte, 2*len(input)+64)
	ok, n := c.Compress(input, output)
	if !ok {
		return fmt.Errorf("%s: compress failed (output buffer too small)", c)
	}
	if err := os.WriteFile(args[2], output[:n], 0644); err != nil {
		return err
	}

	fmt.Printf("%s: %d -> %d bytes (%.2fx)\n", c, len(input), n, ratio(len(input), n))
	return nil
}

func ratio(inLen, outLen int) float64 {
	if outLen == 0 {
		return 0
	}
	return float64(inLen) / float64(outLen)
}
