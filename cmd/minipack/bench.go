// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package main

import (
	"fmt"
	"os"
	"time"

	"github.com/dsnet/golib/strconv"
	"github.com/spf13/cobra"

	"github.com/dsnet/minipack"
	"github.com/dsnet/minipack/internal/testutil"
)

var (
	benchSize string
	benchSeed int
	benchFile string
)

var benchCmd = &cobra.Command{
	Use:   "bench",
	Short: "Report encode speed, decode speed, and ratio for every codec",
	RunE:  runBench,
}

func init() {
	benchCmd.Flags().StringVar(&benchSize, "size", "1e5", "size of the synthetic input to generate (ignored if --file is set)")
	benchCmd.Flags().IntVar(&benchSeed, "seed", 1, "seed for the synthetic input generator")
	benchCmd.Flags().StringVar(&benchFile, "file", "", "benchmark against this file instead of synthetic input")
}

func runBench(cmd *cobra.Command, args []string) error {
	input, err := benchInput()
	if err != nil {
		return err
	}

	for _, name := range minipack.Names() {
		c := minipack.Codecs[name]

		comp := make([]byte, 2*len(input)+64)
		start := time.Now()
		ok, n := c.Compress(input, comp)
		encDur := time.Since(start)
		if !ok {
			fmt.Printf("%-8s SKIP (compress buffer too small)\n", name)
			continue
		}
		comp = comp[:n]

		decBuf := make([]byte, len(input))
		start = time.Now()
		ok, decN := c.Decompress(comp, decBuf)
		decDur := time.Since(start)
		if !ok || decN != len(input) {
			fmt.Printf("%-8s SKIP (decompress round trip failed)\n", name)
			continue
		}

		fmt.Printf("%-8s ratio=%.2fx encode=%.2f MB/s decode=%.2f MB/s\n",
			name, ratio(len(input), n), mbPerSec(len(input), encDur), mbPerSec(len(input), decDur))
	}
	return nil
}

func benchInput() ([]byte, error) {
	if benchFile != "" {
		return os.ReadFile(benchFile)
	}
	n, err := strconv.ParsePrefix(benchSize, strconv.AutoParse)
	if err != nil {
		return nil, fmt.Errorf("invalid --size %q: %v", benchSize, err)
	}
	return testutil.NewRand(benchSeed).Bytes(int(n)), nil
}

func mbPerSec(n int, d time.Duration) float64 {
	if d <= 0 {
		return 0
	}
	return (float64(n) / (1 << 20)) / d.Seconds()
}
