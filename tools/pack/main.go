// Package pack bundles GS texture assets into a UF2 image that can be
// dropped onto the host controller's mass storage bootloader.
package pack

import (
	"bytes"
	"encoding/binary"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	gst "github.com/clktmr/picogs/gs/texture"
)

var (
	flags = flag.NewFlagSet("pack", flag.ExitOnError)

	out    = flags.String("o", "assets.uf2", "output file")
	addr   = flags.Uint("addr", 0x10100000, "flash address of the asset pack")
	family = flags.String("family", "data", "UF2 family (data, arm, riscv)")
)

const usageString = `GS asset packer.

Usage: %s [flags] <file.gst>...

`

func usage() {
	fmt.Fprintf(flags.Output(), usageString, "pack")
	flags.PrintDefaults()
}

// The pack starts with a directory so firmware can look assets up by name:
//
//	magic   "GSPK"
//	count   uint32
//	entries [count] of name [16]byte, offset uint32, size uint32
//
// Offsets are relative to the pack start.
const packMagic = "GSPK"

const nameLen = 16

type entry struct {
	Name   [nameLen]byte
	Offset uint32
	Size   uint32
}

func Main(args []string) {
	flags.Usage = usage
	flags.Parse(args[1:])

	if flags.NArg() < 1 {
		flags.Usage()
		os.Exit(1)
	}

	var fam uint32
	switch *family {
	case "data":
		fam = uf2_data
	case "arm":
		fam = uf2_rp2350_arm_s
	case "riscv":
		fam = uf2_rp2350_riscv
	default:
		log.Fatalln("unsupported family:", *family)
	}

	pack, err := build(flags.Args())
	if err != nil {
		log.Fatalln(err)
	}

	f, err := os.Create(*out)
	if err != nil {
		log.Fatalln(err)
	}
	defer f.Close()

	w := NewUF2Writer(f, uint32(*addr), UF2FamilyIDPresent, fam, len(pack))
	if _, err := w.Write(pack); err != nil {
		log.Fatalln(err)
	}
	if err := w.Flush(); err != nil {
		log.Fatalln(err)
	}
}

func build(files []string) ([]byte, error) {
	dir := make([]entry, len(files))
	var blobs bytes.Buffer
	offset := uint32(len(packMagic) + 4 + len(dir)*binary.Size(entry{}))

	for i, file := range files {
		data, err := os.ReadFile(file)
		if err != nil {
			return nil, err
		}
		// validate before flashing broken assets
		if _, err := gst.Load(bytes.NewReader(data)); err != nil {
			return nil, fmt.Errorf("%s: %w", file, err)
		}

		name := strings.TrimSuffix(filepath.Base(file), filepath.Ext(file))
		if len(name) > nameLen {
			return nil, fmt.Errorf("%s: name exceeds %d bytes", file, nameLen)
		}
		copy(dir[i].Name[:], name)
		dir[i].Offset = offset + uint32(blobs.Len())
		dir[i].Size = uint32(len(data))
		blobs.Write(data)
	}

	var pack bytes.Buffer
	pack.WriteString(packMagic)
	binary.Write(&pack, binary.LittleEndian, uint32(len(dir)))
	binary.Write(&pack, binary.LittleEndian, dir)
	pack.Write(blobs.Bytes())
	return pack.Bytes(), nil
}
