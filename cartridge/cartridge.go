// Package cartridge implements the NES cartridge data model: the
// immutable program and character ROM arrays handed over by the ROM
// loader, plus the mapper-0 (NROM) address decoding the PPU and CPU
// bus need to reach them.
// https://www.nesdev.org/wiki/NROM
package cartridge

const (
	PrgBankSize = 0x4000 // 16 KiB
	ChrBankSize = 0x2000 // 8 KiB
	SRAMSize    = 0x2000 // 8 KiB cartridge RAM at 0x6000-0x7FFF
	ChrRAMSize  = 0x2000 // 8 KiB character RAM when no CHR ROM is present
)

// Mirroring identifies how the PPU's two physical nametables are
// mapped across the four logical nametable slots.
type Mirroring uint8

const (
	MirrorHorizontal Mirroring = iota
	MirrorVertical
	MirrorFourScreen
)

// Cartridge is immutable after construction except for its optional
// battery/SRAM and CHR-RAM backing stores, which are read-write.
type Cartridge struct {
	progROM   []uint8
	charROM   []uint8 // empty when the board uses CHR RAM instead
	charRAM   []uint8 // populated only when charROM is empty
	sram      [SRAMSize]uint8
	progSize  int // length of progROM, either 0x4000 or 0x8000
	mirroring Mirroring
}

// New builds a Cartridge from the program/character ROM byte slices
// the ROM loader extracted from an iNES image (16-byte header already
// stripped). prog must be 16 KiB or 32 KiB; chr may be empty, in which
// case 8 KiB of CHR RAM is allocated instead.
func New(prog, chr []byte, mirroring Mirroring) *Cartridge {
	c := &Cartridge{
		progROM:   append([]byte(nil), prog...),
		charROM:   append([]byte(nil), chr...),
		progSize:  len(prog),
		mirroring: mirroring,
	}
	if len(chr) == 0 {
		c.charRAM = make([]uint8, ChrRAMSize)
	}
	return c
}

// Mirroring reports the nametable mirroring mode baked into the iNES
// header's mapper-0 flags.
func (c *Cartridge) Mirroring() Mirroring {
	return c.mirroring
}

// progOffset implements the mapper-0 PRG decoding: a 32 KiB image is
// addressed directly, while a 16 KiB image is mirrored across the
// upper half of the 0x8000-0xFFFF window.
func (c *Cartridge) progOffset(addr uint16) int {
	off := int(addr - 0x8000)
	if c.progSize <= PrgBankSize {
		return off % PrgBankSize
	}
	return off
}

// ReadProg reads a byte from the 0x8000-0xFFFF program ROM window.
func (c *Cartridge) ReadProg(addr uint16) uint8 {
	return c.progROM[c.progOffset(addr)]
}

// WriteProg accepts and ignores writes into ROM space; mapper 0 has no
// bank-select registers to write.
func (c *Cartridge) WriteProg(addr uint16, val uint8) {}

// ReadSRAM reads from the optional 8 KiB cartridge RAM at
// 0x6000-0x7FFF.
func (c *Cartridge) ReadSRAM(addr uint16) uint8 {
	return c.sram[addr-0x6000]
}

// WriteSRAM writes to cartridge RAM.
func (c *Cartridge) WriteSRAM(addr uint16, val uint8) {
	c.sram[addr-0x6000] = val
}

// ReadChr reads a byte from the 8 KiB pattern-table window, whether it
// is backed by CHR ROM or CHR RAM.
func (c *Cartridge) ReadChr(addr uint16) uint8 {
	if len(c.charROM) > 0 {
		return c.charROM[addr]
	}
	return c.charRAM[addr]
}

// WriteChr writes to CHR RAM. Writes to CHR ROM are accepted and
// ignored, matching real NROM boards that have no CHR RAM at all.
func (c *Cartridge) WriteChr(addr uint16, val uint8) {
	if len(c.charROM) > 0 {
		return
	}
	c.charRAM[addr] = val
}
