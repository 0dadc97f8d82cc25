package spi

import (
	"encoding/binary"
	"fmt"

	"github.com/clktmr/picogs/gs/gpu"
	"github.com/clktmr/picogs/gs/regs"
)

// Loopback is the device side of the command bus, decoding frames straight
// into a Core. It stands in for the real SPI link in tests and examples.
type Loopback struct {
	GS *gpu.Core
}

func NewLoopback() *Loopback { return &Loopback{GS: gpu.New()} }

func (l *Loopback) Exchange(tx, rx []byte) error {
	if len(tx) != frameLen || len(rx) != frameLen {
		return fmt.Errorf("spi: bad frame length %d", len(tx))
	}
	reg := regs.Reg(tx[0] &^ readBit)
	if tx[0]&readBit != 0 {
		binary.BigEndian.PutUint64(rx[1:], l.GS.ReadReg(reg))
		return nil
	}
	l.GS.WriteReg(reg, binary.BigEndian.Uint64(tx[1:]))
	return nil
}
