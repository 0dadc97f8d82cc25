// Package texture implements the image to GS texture converter.
package texture

import (
	"bytes"
	"flag"
	"fmt"
	"go/format"
	"image"
	"log"
	"os"
	"path/filepath"
	"strings"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	gst "github.com/clktmr/picogs/gs/texture"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	flags = flag.NewFlagSet("texture", flag.ExitOnError)

	formatName = flags.String("format", "RGB565", "texel format (BC1, BC2, BC3, BC4, RGB565, RGBA8888, R8)")
	dither     = flags.Bool("dither", false, "enable Floyd-Steinberg error diffusion")
	mips       = flags.Int("mips", 0, "number of additional mip levels")
	gosrc      = flags.Bool("go", false, "emit a Go source file embedding the texture")
	gopkg      = flags.String("pkg", "assets", "package name for generated Go source")

	imagefile string
)

const usageString = `Image to GS texture converter.

Usage: %s [flags] <image>

`

func usage() {
	fmt.Fprintf(flags.Output(), usageString, "texture")
	flags.PrintDefaults()
}

func parseFormat(s string) (gst.Format, error) {
	for f := gst.BC1; f <= gst.R8; f++ {
		if strings.EqualFold(f.String(), s) {
			return f, nil
		}
	}
	return 0, fmt.Errorf("unsupported format: %s", s)
}

func Main(args []string) {
	flags.Usage = usage
	flags.Parse(args[1:])

	if flags.NArg() == 1 {
		imagefile = flags.Arg(0)
	} else {
		flags.Usage()
		os.Exit(1)
	}

	format, err := parseFormat(*formatName)
	if err != nil {
		log.Fatalln(err)
	}

	r, err := os.Open(imagefile)
	if err != nil {
		log.Fatalln(err)
	}
	defer r.Close()

	src, _, err := image.Decode(r)
	if err != nil {
		log.Fatalln(err)
	}

	tex, err := Encode(src, format, *mips, *dither)
	if err != nil {
		log.Fatalln(err)
	}

	base := strings.TrimSuffix(imagefile, filepath.Ext(imagefile))
	if *gosrc {
		err = writeGoSource(base, tex)
	} else {
		err = writeGst(base+".gst", tex)
	}
	if err != nil {
		log.Fatalln(err)
	}
}

func writeGst(name string, tex *gst.Texture) error {
	w, err := os.Create(name)
	if err != nil {
		return err
	}
	defer w.Close()
	return tex.Store(w)
}

// writeGoSource emits a Go file that loads the texture from an embedded .gst
// blob at init time.
func writeGoSource(base string, tex *gst.Texture) error {
	var blob bytes.Buffer
	if err := tex.Store(&blob); err != nil {
		return err
	}

	src := &bytes.Buffer{}
	fmt.Fprintf(src, "// Code generated by picogs texture; DO NOT EDIT.\n\n")
	fmt.Fprintf(src, "package %s\n\n", *gopkg)
	fmt.Fprintf(src, "import \"github.com/clktmr/picogs/gs/texture\"\n\n")
	fmt.Fprintf(src, "var %s = texture.MustLoadBytes([]byte{", identifier(base))
	for i, b := range blob.Bytes() {
		if i%16 == 0 {
			fmt.Fprint(src, "\n\t")
		}
		fmt.Fprintf(src, "%#02x, ", b)
	}
	fmt.Fprint(src, "\n})\n")

	formatted, err := format.Source(src.Bytes())
	if err != nil {
		return err
	}
	return os.WriteFile(base+"_gst.go", formatted, 0644)
}

// identifier derives an exported Go identifier from a file name.
func identifier(path string) string {
	name := filepath.Base(path)
	title := cases.Title(language.Und)
	var id strings.Builder
	for _, word := range strings.FieldsFunc(name, func(r rune) bool {
		return !('a' <= r && r <= 'z' || 'A' <= r && r <= 'Z' || '0' <= r && r <= '9')
	}) {
		id.WriteString(title.String(word))
	}
	if id.Len() == 0 || '0' <= id.String()[0] && id.String()[0] <= '9' {
		return "Texture" + id.String()
	}
	return id.String()
}
