// Package spi implements the GS command bus framing and the host-side
// driver. Every transaction is one 9 byte frame: a command byte holding the
// register index, followed by the 64-bit register value big-endian. Reads set
// the command's MSB and clock the value back in the same frame.
package spi

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/clktmr/picogs/gs/regs"
)

const frameLen = 9

const readBit = 0x80

// Transport is one full-duplex SPI exchange with the chip selected. tx and
// rx are the same length.
type Transport interface {
	Exchange(tx, rx []byte) error
}

var ErrNoDevice = errors.New("spi: no GS device")

// Driver drives a GS over a Transport.
type Driver struct {
	t      Transport
	tx, rx [frameLen]byte
}

func New(t Transport) *Driver { return &Driver{t: t} }

// Probe verifies the ID register and the device's protocol version.
func (d *Driver) Probe() error {
	id, err := d.ReadReg(regs.RegID)
	if err != nil {
		return err
	}
	if id&0xffff != regs.DeviceID {
		return fmt.Errorf("%w: id %#04x", ErrNoDevice, id&0xffff)
	}
	if major := id >> 24 & 0xff; major != regs.Version>>8 {
		return fmt.Errorf("spi: unsupported GS version %d", major)
	}
	return nil
}

func (d *Driver) WriteReg(r regs.Reg, v uint64) error {
	d.tx[0] = byte(r) &^ readBit
	binary.BigEndian.PutUint64(d.tx[1:], v)
	return d.t.Exchange(d.tx[:], d.rx[:])
}

func (d *Driver) ReadReg(r regs.Reg) (uint64, error) {
	d.tx[0] = byte(r) | readBit
	for i := 1; i < frameLen; i++ {
		d.tx[i] = 0
	}
	if err := d.t.Exchange(d.tx[:], d.rx[:]); err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint64(d.rx[1:]), nil
}
