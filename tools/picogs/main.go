package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/clktmr/picogs/tools/pack"
	"github.com/clktmr/picogs/tools/texture"
)

const usageString = `picogs is a tool for building GS assets.

Usage:

	%s <command> [arguments]

The commands are:

	texture  convert images to GS textures
	pack     bundle textures into a flashable UF2 image
`

func usage() {
	fmt.Fprintf(flag.CommandLine.Output(), usageString, os.Args[0])
	flag.PrintDefaults()
}

func main() {
	log.Default().SetFlags(0)
	flag.Usage = usage
	flag.Parse()

	if flag.NArg() < 1 {
		flag.Usage()
		os.Exit(1)
	}

	switch flag.Arg(0) {
	case "texture":
		texture.Main(flag.Args())
	case "pack":
		pack.Main(flag.Args())
	default:
		fmt.Fprintf(flag.CommandLine.Output(), "unknown command: %s\n", flag.Arg(0))
		flag.Usage()
		os.Exit(1)
	}
}
