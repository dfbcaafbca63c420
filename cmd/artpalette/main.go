// Artpalette - A colour palette extractor for artwork
//
// Artpalette extracts representative colour palettes from artwork. Images
// come from local files, URLs, the Art Institute of Chicago collection or a
// generative model.
//
// Copyright (c) 2025 John Mylchreest
// Licensed under the MIT License
package main

import (
	"os"

	"github.com/jmylchreest/artpalette/internal/cli"
)

func main() {
	if err := cli.NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
