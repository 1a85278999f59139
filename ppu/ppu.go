// Package ppu implements the NES Picture Processing Unit: its
// register file, VRAM/OAM/palette memory, and the scanline state
// machine that turns cartridge pattern data into frame snapshots.
// https://www.nesdev.org/wiki/PPU
package ppu

import (
	"github.com/bdwalton/gintendo/cartridge"
	"github.com/bdwalton/gintendo/interrupts"
)

const (
	NES_RES_WIDTH  = 256
	NES_RES_HEIGHT = 240
)

const (
	PPUCTRL = iota
	PPUMASK
	PPUSTATUS
	OAMADDR
	OAMDATA
	PPUSCROLL
	PPUADDR
	PPUDATA
)

const (
	vramSize   = 2048
	oamSize    = 256
	paletteSize = 32
	cyclesPerLine = 341
	linesPerFrame = 262
)

// Cartridge is the subset of *cartridge.Cartridge the PPU needs: its
// pattern-table storage and nametable mirroring mode.
type Cartridge interface {
	ReadChr(addr uint16) uint8
	WriteChr(addr uint16, val uint8)
	Mirroring() cartridge.Mirroring
}

// Tile is one decoded 8x8 background tile: two-bit pixel values plus
// the sub-palette it was drawn with.
type Tile struct {
	Pixels    [8][8]uint8
	PaletteID uint8
}

// Sprite is one decoded OAM entry.
type Sprite struct {
	X, Y        uint8
	Pixels      [8][8]uint8
	PaletteID   uint8
	FlipH       bool
	FlipV       bool
	LowPriority bool
}

// Frame is a complete snapshot handed to the renderer once per
// vertical blank.
type Frame struct {
	Background [][]Tile
	Sprites    []Sprite
	Palette    [paletteSize]uint8
}

// PPU is the NES picture processing unit. It owns VRAM, OAM, and the
// palette table outright; it reads (and, for CHR RAM boards, writes)
// pattern data through the Cartridge it was built with.
type PPU struct {
	cart  Cartridge
	lines *interrupts.Lines

	ctrl, mask, status uint8
	oamAddr            uint8
	oam                [oamSize]uint8
	vram               [vramSize]uint8
	palette            [paletteSize]uint8

	vramAddr    uint16
	addrLatch   uint8
	scrollX     uint8
	scrollY     uint8
	scrollLatch uint8
	readBuffer  uint8

	line  int
	cycle int

	bgRows [][]Tile
}

// New builds a PPU wired to cart for pattern/mirroring data and lines
// to signal VBlank NMI. The PPU starts in the pre-render line.
func New(cart Cartridge, lines *interrupts.Lines) *PPU {
	return &PPU{cart: cart, lines: lines, line: -1}
}

// RegRead implements a CPU-side read of one of the eight mirrored PPU
// registers (i in 0..7).
func (p *PPU) RegRead(i uint8) uint8 {
	switch i {
	case PPUSTATUS:
		v := p.status
		p.status &^= 0x80
		p.addrLatch = 0
		p.scrollLatch = 0
		return v
	case OAMDATA:
		return p.oam[p.oamAddr]
	case PPUDATA:
		return p.readData()
	default:
		return 0
	}
}

// RegWrite implements a CPU-side write of one of the eight mirrored
// PPU registers (i in 0..7).
func (p *PPU) RegWrite(i uint8, v uint8) {
	switch i {
	case PPUCTRL:
		p.ctrl = v
	case PPUMASK:
		p.mask = v
	case OAMADDR:
		p.oamAddr = v
	case OAMDATA:
		p.oam[p.oamAddr] = v
		p.oamAddr++
	case PPUSCROLL:
		if p.scrollLatch == 0 {
			p.scrollX = v
			p.scrollLatch = 1
		} else {
			p.scrollY = v
			p.scrollLatch = 0
		}
	case PPUADDR:
		if p.addrLatch == 0 {
			p.vramAddr = uint16(v) << 8
			p.addrLatch = 1
		} else {
			p.vramAddr = (p.vramAddr & 0xFF00) | uint16(v)
			p.addrLatch = 0
		}
	case PPUDATA:
		p.writeData(v)
	}
}

func (p *PPU) vramStep() uint16 {
	if p.ctrl&0x04 != 0 {
		return 32
	}
	return 1
}

func (p *PPU) bgPatternBase() uint16 {
	if p.ctrl&0x10 != 0 {
		return 0x1000
	}
	return 0
}

func (p *PPU) sprPatternBase() uint16 {
	if p.ctrl&0x08 != 0 {
		return 0x1000
	}
	return 0
}

func (p *PPU) nametableBaseOffset() uint16 {
	return uint16(p.ctrl&0x03) * 0x0400
}

func (p *PPU) bgEnabled() bool  { return p.mask&0x08 != 0 }
func (p *PPU) sprEnabled() bool { return p.mask&0x10 != 0 }
func (p *PPU) nmiEnabled() bool { return p.ctrl&0x80 != 0 }

// mirrorNametable maps a logical nametable offset (0x000-0xFFF, four
// 1 KiB tables) down into the PPU's 2 KiB physical VRAM according to
// the cartridge's mirroring mode.
func (p *PPU) mirrorNametable(a uint16) uint16 {
	a %= 0x1000
	table := a / 0x0400
	off := a % 0x0400
	if p.cart.Mirroring() == cartridge.MirrorVertical {
		return (table%2)*0x0400 + off
	}
	return (table/2)*0x0400 + off
}

func (p *PPU) nametableRead(a uint16) uint8 {
	return p.vram[p.mirrorNametable(a)]
}

// aliasPalette folds the four background-mirror palette slots
// (0x10/0x14/0x18/0x1C) onto their backdrop-color counterparts.
func aliasPalette(idx uint16) uint16 {
	switch idx {
	case 0x10, 0x14, 0x18, 0x1C:
		return idx - 0x10
	}
	return idx
}

func (p *PPU) paletteRead(addr uint16) uint8 {
	idx := aliasPalette((addr - 0x3F00) % paletteSize)
	return p.palette[idx]
}

// busRead services a non-palette PPUDATA read/refill: pattern tables
// below 0x2000, nametable VRAM (with 0x3000-0x3EFF mirrored down by
// 0x1000) below 0x3F00.
func (p *PPU) busRead(addr uint16) uint8 {
	switch {
	case addr < 0x2000:
		return p.cart.ReadChr(addr)
	case addr < 0x3F00:
		a := addr
		if a >= 0x3000 {
			a -= 0x1000
		}
		return p.nametableRead(a - 0x2000)
	default:
		return p.paletteRead(addr)
	}
}

func (p *PPU) readData() uint8 {
	addr := p.vramAddr
	var result uint8
	if addr >= 0x3F00 {
		result = p.paletteRead(addr)
		p.readBuffer = p.busRead(addr - 0x1000)
	} else {
		result = p.readBuffer
		p.readBuffer = p.busRead(addr)
	}
	p.vramAddr += p.vramStep()
	return result
}

func (p *PPU) writeData(v uint8) {
	addr := p.vramAddr
	switch {
	case addr < 0x2000:
		p.cart.WriteChr(addr, v)
	case addr < 0x3F00:
		a := addr
		if a >= 0x3000 {
			a -= 0x1000
		}
		p.vram[p.mirrorNametable(a-0x2000)] = v
	default:
		idx := aliasPalette((addr - 0x3F00) % paletteSize)
		p.palette[idx] = v
	}
	p.vramAddr += p.vramStep()
}

// decodeTile reads one 8x8, two-bit-per-pixel pattern table tile
// starting at base+tileIndex*16.
func decodeTile(cart Cartridge, base uint16, tileIndex uint8) [8][8]uint8 {
	var px [8][8]uint8
	addr := base + uint16(tileIndex)*16
	for r := 0; r < 8; r++ {
		low := cart.ReadChr(addr + uint16(r))
		high := cart.ReadChr(addr + uint16(r) + 8)
		for c := 0; c < 8; c++ {
			lo := (low >> (7 - c)) & 1
			hi := (high >> (7 - c)) & 1
			px[r][c] = lo | (hi << 1)
		}
	}
	return px
}

func (p *PPU) buildBackgroundRow(ty int) []Tile {
	nameOffset := p.nametableBaseOffset()
	row := make([]Tile, 32)
	for tx := 0; tx < 32; tx++ {
		tileIndex := p.nametableRead(uint16(ty*32+tx) + nameOffset)
		attr := p.nametableRead(0x3C0 + uint16(ty/4)*8 + uint16(tx/4) + nameOffset)
		block := uint8((tx%4)/2+(ty%4)/2) * 2
		paletteID := (attr >> block) & 3
		row[tx] = Tile{
			Pixels:    decodeTile(p.cart, p.bgPatternBase(), tileIndex),
			PaletteID: paletteID,
		}
	}
	return row
}

func (p *PPU) buildSpritesFromOAM() []Sprite {
	sprites := make([]Sprite, 0, 64)
	for i := 0; i < 64; i++ {
		base := i * 4
		y := p.oam[base]
		tile := p.oam[base+1]
		attr := p.oam[base+2]
		x := p.oam[base+3]
		sprites = append(sprites, Sprite{
			X:           x,
			Y:           y,
			Pixels:      decodeTile(p.cart, p.sprPatternBase(), tile),
			PaletteID:   attr & 0x03,
			FlipH:       attr&0x40 != 0,
			FlipV:       attr&0x80 != 0,
			LowPriority: attr&0x20 != 0,
		})
	}
	return sprites
}

func (p *PPU) paletteSnapshot() [paletteSize]uint8 {
	var pal [paletteSize]uint8
	copy(pal[:], p.palette[:])
	pal[0x10], pal[0x14], pal[0x18], pal[0x1C] = pal[0x00], pal[0x04], pal[0x08], pal[0x0C]
	return pal
}

// Step advances the PPU by 3*cpuCycles PPU cycles (the fixed 3:1
// ratio to CPU cycles), returning a completed Frame the instant the
// scanline counter wraps from 262 back to 0, or nil if no frame
// completed during this step.
func (p *PPU) Step(cpuCycles int) *Frame {
	p.cycle += 3 * cpuCycles
	for p.cycle >= cyclesPerLine {
		p.cycle -= cyclesPerLine
		p.line++

		if p.bgEnabled() && p.sprEnabled() && int(p.oam[0]) == p.line {
			p.status |= 0x40
		}
		if p.line >= 1 && p.line <= 240 && p.line%8 == 0 {
			p.bgRows = append(p.bgRows, p.buildBackgroundRow(p.line/8-1))
		}
		if p.line == 241 {
			p.status |= 0x80
			if p.nmiEnabled() {
				p.lines.AssertNMI()
			}
		}
		if p.line == linesPerFrame {
			p.line = 0
			frame := &Frame{
				Background: p.bgRows,
				Sprites:    p.buildSpritesFromOAM(),
				Palette:    p.paletteSnapshot(),
			}
			p.bgRows = nil
			p.status &^= 0x80
			p.status &^= 0x40
			return frame
		}
	}
	return nil
}
