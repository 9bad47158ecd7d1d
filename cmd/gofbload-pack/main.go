// Copyright (C) 2021  Antonio Lassandro

// This program is free software: you can redistribute it and/or modify it
// under the terms of the GNU General Public License as published by the Free
// Software Foundation, either version 3 of the License, or (at your option)
// any later version.

// This program is distributed in the hope that it will be useful, but WITHOUT
// ANY WARRANTY; without even the implied warranty of MERCHANTABILITY or
// FITNESS FOR A PARTICULAR PURPOSE.  See the GNU General Public License for
// more details.

// You should have received a copy of the GNU General Public License along
// with this program.  If not, see <http://www.gnu.org/licenses/>.

package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/lassandro/gofbload/pkg/pixel"
)

var helpvar bool
var outvar string
var widthvar int
var heightvar int

const usage = "gofbload-pack [-width W] [-height H] [-out outfile] image..."

func init() {
	log.SetFlags(0)
	log.SetOutput(os.Stderr)
}

func init() {
	flag.BoolVar(&helpvar, "help", false, "Displays command usage")
	flag.StringVar(
		&outvar, "out", "frames.bin",
		"Specifies the output file; each image becomes one framebuffer, "+
			"in argument order",
	)
	flag.IntVar(&widthvar, "width", 640, "Framebuffer width in pixels")
	flag.IntVar(&heightvar, "height", 480, "Framebuffer height in pixels")
	flag.Parse()
}

func gofbload_pack() int {
	if helpvar {
		fmt.Println(usage)
		flag.PrintDefaults()
		return 0
	}

	args := flag.Args()

	if len(args) == 0 {
		log.Println(usage)
		return 1
	}

	file, err := os.Create(outvar)

	if err != nil {
		log.Println("Error creating output file")
		log.Println(err)
		return 1
	}

	defer file.Close()

	enc := pixel.Encoder{W: file, Width: widthvar, Height: heightvar}

	for _, arg := range args {
		img, err := pixel.Decode(arg)

		if err != nil {
			log.Printf("Error loading %s", arg)
			log.Println(err)
			return 1
		}

		if err := enc.Encode(img); err != nil {
			log.Println("Error writing output file")
			log.Println(err)
			return 1
		}
	}

	if err := file.Close(); err != nil {
		log.Println("Error writing output file")
		log.Println(err)
		return 1
	}

	sentinel, _ := enc.Sentinel()

	fmt.Printf(
		"%s: %d framebuffers of %dx%d, %d words\n",
		outvar, enc.Frames(), widthvar, heightvar,
		enc.Frames()*widthvar*heightvar,
	)
	fmt.Printf("Sentinel: %#08x (pass as gofbload -sentinel)\n", sentinel)

	return 0
}

func main() {
	os.Exit(gofbload_pack())
}
