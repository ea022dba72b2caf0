/*
Package graymap converts binary color pixmaps (PPM, P6) into binary graymaps
(PGM, P5). Every pixel is mapped to the luminance 0.3*R + 0.59*G + 0.11*B,
truncated to an integer and reduced modulo 256.

The package provides a command line interface, supporting single file,
directory and numbered batch conversions. To check the supported commands type:

	$ graymap --help

In case you wish to integrate the API in a self constructed environment here is a simple example:

	package main

	import (
		"fmt"
		"os"

		"github.com/esimov/graymap"
	)

	func main() {
		p := &graymap.Processor{
			Creator: graymap.DefaultCreator,
		}

		if _, err := p.Process(os.Stdin, os.Stdout); err != nil {
			fmt.Fprintf(os.Stderr, "Error converting image: %s", err.Error())
		}
	}
*/
package graymap
