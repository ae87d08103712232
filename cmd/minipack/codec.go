// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package main

import (
	"fmt"

	"github.com/dsnet/minipack"
)

func lookupCodec(name string) (minipack.Codec, error) {
	c, ok := minipack.Codecs[name]
	if !ok {
		return nil, fmt.Errorf("unknown codec %q (want one of %v)", name, minipack.Names())
	}
	return c, nil
}
