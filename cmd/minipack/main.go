// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Command minipack is a small demonstration harness for the codecs in this
// module: it compresses and decompresses files on disk, and reports encode
// speed, decode speed, and compression ratio over synthetic or file-backed
// input.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "minipack: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "minipack",
	Short: "Compress and decompress files with the huffman, lz77, and lz78 codecs",
	Long: `minipack drives the huffman, lz77, and lz78 codecs in this module
against real files: compress, decompress, and bench subcommands cover the
round-trip and the throughput/ratio measurements a reader would want when
comparing the three against each other.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.AddCommand(compressCmd)
	rootCmd.AddCommand(decompressCmd)
	rootCmd.AddCommand(benchCmd)
}
