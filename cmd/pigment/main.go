// Pigment - Dominant colour extraction for image classification
//
// Pigment samples an image, clusters the pixels in the LAB colour space,
// and turns the dominant colours into feature vectors for classifier
// plugins.
//
// Copyright (c) 2025 John Mylchreest
// Licensed under the MIT License
package main

import (
	"github.com/jmylchreest/pigment/internal/cli"
)

func main() {
	cli.Execute()
}
