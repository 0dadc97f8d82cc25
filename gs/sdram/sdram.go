// Package sdram models the GS local memory, a 16-bit word addressed SDRAM
// shared by framebuffers, depth buffers and textures.
package sdram

import (
	"math/bits"

	"github.com/clktmr/picogs/debug"
	"github.com/clktmr/picogs/gs/regs"
)

const DefaultSize = 8 << 20 // bytes

// Memory is word addressed. The MEM_ADDR/MEM_DATA port additionally keeps a
// dword pointer that increments on every access, which is what the host's
// upload and readback loops rely on.
type Memory struct {
	words []uint16
	ptr   uint32 // dword pointer of the MEM_DATA port
}

// New allocates a memory of the given size in bytes, which must be a power
// of two since addresses wrap at the memory size.
func New(size int) *Memory {
	debug.Assert(bits.OnesCount(uint(size)) == 1, "memory size must be a power of two")
	return &Memory{words: make([]uint16, size/2)}
}

func (m *Memory) Words() int { return len(m.words) }

func (m *Memory) Word(addr int) uint16 {
	return m.words[addr&(len(m.words)-1)]
}

func (m *Memory) SetWord(addr int, v uint16) {
	m.words[addr&(len(m.words)-1)] = v
}

// Burst reads n consecutive words starting at addr, the access pattern of
// the texture cache fill.
func (m *Memory) Burst(addr, n int) []uint16 {
	b := make([]uint16, n)
	for i := range b {
		b[i] = m.Word(addr + i)
	}
	return b
}

// Fill executes a MEM_FILL command.
func (m *Memory) Fill(cmd regs.MemFillCmd) {
	base := int(cmd.Base) << 8
	for i := 0; i < int(cmd.Count); i++ {
		m.SetWord(base+i, cmd.Value)
	}
}

// Dword reads four words as one 64-bit value, low word first.
func (m *Memory) Dword(dwordAddr int) uint64 {
	a := dwordAddr << 2
	return uint64(m.Word(a)) |
		uint64(m.Word(a+1))<<16 |
		uint64(m.Word(a+2))<<32 |
		uint64(m.Word(a+3))<<48
}

func (m *Memory) SetDword(dwordAddr int, v uint64) {
	a := dwordAddr << 2
	m.SetWord(a, uint16(v))
	m.SetWord(a+1, uint16(v>>16))
	m.SetWord(a+2, uint16(v>>32))
	m.SetWord(a+3, uint16(v>>48))
}

// SetPtr implements a MEM_ADDR write, a 22-bit dword address.
func (m *Memory) SetPtr(v uint64) { m.ptr = uint32(v) & 0x3fffff }

// WriteData implements a MEM_DATA write and increments the pointer.
func (m *Memory) WriteData(v uint64) {
	m.SetDword(int(m.ptr), v)
	m.ptr = (m.ptr + 1) & 0x3fffff
}

// ReadData implements a MEM_DATA read and increments the pointer.
func (m *Memory) ReadData() uint64 {
	v := m.Dword(int(m.ptr))
	m.ptr = (m.ptr + 1) & 0x3fffff
	return v
}

// WriteWords copies a word slice into memory, used by tests and asset
// uploads that bypass the register port.
func (m *Memory) WriteWords(addr int, data []uint16) {
	for i, w := range data {
		m.SetWord(addr+i, w)
	}
}

// WriteBytes copies little-endian byte pairs into memory words.
func (m *Memory) WriteBytes(addr int, data []byte) {
	for i := 0; i+1 < len(data); i += 2 {
		m.SetWord(addr+i/2, uint16(data[i])|uint16(data[i+1])<<8)
	}
}
