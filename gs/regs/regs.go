// Package regs models the GS register file. Each register is one 64-bit
// dword, addressed by its dword index on the SPI command bus. The typed
// structs in this package pack to and unpack from the raw register values.
package regs

// Reg is a register's dword index (byte offset / 8).
type Reg uint8

const (
	// vertex submission
	RegColor          Reg = 0x00
	RegUV0UV1         Reg = 0x01
	RegAreaSetup      Reg = 0x05
	RegVertexNoKick   Reg = 0x06
	RegVertexKick012  Reg = 0x07
	RegVertexKick021  Reg = 0x08
	RegVertexKickRect Reg = 0x09

	// texture units
	RegTex0Cfg Reg = 0x10
	RegTex1Cfg Reg = 0x11

	// color combiner
	RegCcMode     Reg = 0x18
	RegConstColor Reg = 0x19

	// render state
	RegRenderMode Reg = 0x30
	RegZRange     Reg = 0x31
	RegStipple    Reg = 0x32

	// framebuffer
	RegFbConfig  Reg = 0x40
	RegFbDisplay Reg = 0x41
	RegFbControl Reg = 0x43
	RegMemFill   Reg = 0x44

	// misc
	RegPerfTimestamp Reg = 0x50
	RegMemAddr       Reg = 0x70
	RegMemData       Reg = 0x71
	RegID            Reg = 0x7f
)

// ID register contents.
const (
	DeviceID = 0x6702
	Version  = 0x0a00 // v10.0
)

func IDValue() uint64 { return Version<<16 | DeviceID }
