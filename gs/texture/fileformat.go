package texture

import (
	"bytes"
	"compress/zlib"
	"encoding/binary"
	"errors"
	"io"

	"github.com/sigurn/crc8"
)

// The .gst container stores a tiled texture payload with a small header. The
// payload is zlib compressed, the header checksum guards against flashing a
// truncated or corrupted asset.

var ErrChecksum = errors.New("checksum mismatch")
var ErrHeader = errors.New("invalid header")

var headerCRC8 = crc8.MakeTable(crc8.Params{Poly: 0x07, Init: 0x00, RefIn: false, RefOut: false, XorOut: 0x00, Check: 0xF4, Name: "CRC-8 GST"})

const magic = 0x4753 // "GS"

type header struct {
	Magic                 uint16
	Format                Format
	WidthLog2, HeightLog2 uint8
	Levels                uint8
	Size                  uint32
	Check                 uint8
}

func (h *header) checksum() uint8 {
	var buf [10]byte
	buf[0] = byte(h.Magic)
	buf[1] = byte(h.Magic >> 8)
	buf[2] = byte(h.Format)
	buf[3] = h.WidthLog2
	buf[4] = h.HeightLog2
	buf[5] = h.Levels
	binary.LittleEndian.PutUint32(buf[6:], h.Size)
	return crc8.Checksum(buf[:], headerCRC8)
}

func Load(r io.Reader) (*Texture, error) {
	var hdr header
	err := binary.Read(r, binary.LittleEndian, &hdr)
	if err != nil {
		return nil, err
	}
	if hdr.Magic != magic || hdr.Format > R8 {
		return nil, ErrHeader
	}
	if hdr.Check != hdr.checksum() {
		return nil, ErrChecksum
	}

	zr, err := zlib.NewReader(r)
	if err != nil {
		return nil, err
	}
	defer zr.Close()

	tex := &Texture{
		Format:     hdr.Format,
		WidthLog2:  hdr.WidthLog2,
		HeightLog2: hdr.HeightLog2,
		Levels:     hdr.Levels,
		Pix:        make([]byte, hdr.Size),
	}
	_, err = io.ReadFull(zr, tex.Pix)
	if err != nil {
		return nil, err
	}
	return tex, nil
}

// MustLoadBytes loads a .gst blob, panicking on malformed data. Used by
// generated asset files.
func MustLoadBytes(b []byte) *Texture {
	t, err := Load(bytes.NewReader(b))
	if err != nil {
		panic(err)
	}
	return t
}

func (t *Texture) Store(w io.Writer) error {
	hdr := header{
		Magic:      magic,
		Format:     t.Format,
		WidthLog2:  t.WidthLog2,
		HeightLog2: t.HeightLog2,
		Levels:     t.Levels,
		Size:       uint32(len(t.Pix)),
	}
	hdr.Check = hdr.checksum()

	err := binary.Write(w, binary.LittleEndian, hdr)
	if err != nil {
		return err
	}

	zw := zlib.NewWriter(w)
	if _, err = zw.Write(t.Pix); err != nil {
		return err
	}
	return zw.Close()
}
