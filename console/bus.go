// Package console wires the CPU, PPU, cartridge and controllers
// together behind the single flat 16-bit address space the CPU sees,
// and drives the cooperative single-threaded emulation loop.
// https://www.nesdev.org/wiki/CPU_memory_map
package console

import (
	"context"

	"github.com/bdwalton/gintendo/cartridge"
	"github.com/bdwalton/gintendo/interrupts"
	"github.com/bdwalton/gintendo/mos6502"
	"github.com/bdwalton/gintendo/pad"
	"github.com/bdwalton/gintendo/ppu"
)

const (
	ramSize = 0x0800 // 2 KiB work RAM, mirrored 4x up to 0x1FFF

	oamDMARegister  = 0x4014
	pad1Register    = 0x4016
	pad2Register    = 0x4017
	ioWindowStart   = 0x4000
	ioWindowEnd     = 0x401F
	sramWindowStart = 0x6000
	sramWindowEnd   = 0x7FFF
	progWindowStart = 0x8000

	// OAM DMA's exact cost varies by one cycle depending on whether it
	// starts on an odd or even CPU cycle; this spec fixes it at 513
	// and does not model that +1.
	oamDMACycles = 513
)

// Bus is the NES's single memory-mapped address space. It holds no
// rendering or windowing state of its own; it is a pure dispatcher
// over work RAM, the PPU, the cartridge, and the two controller ports.
type Bus struct {
	cpu   *mos6502.CPU
	ppu   *ppu.PPU
	cart  *cartridge.Cartridge
	lines *interrupts.Lines
	pad1  *pad.Pad
	pad2  *pad.Pad

	ram [ramSize]uint8

	extraCycles int
}

// New builds a fully wired Bus around cart, with pad1Buttons and
// pad2Buttons supplying each controller's current button state.
func New(cart *cartridge.Cartridge, pad1Buttons, pad2Buttons pad.ButtonState) *Bus {
	b := &Bus{
		cart:  cart,
		lines: interrupts.New(),
		pad1:  pad.New(pad1Buttons),
		pad2:  pad.New(pad2Buttons),
	}
	b.ppu = ppu.New(cart, b.lines)
	b.cpu = mos6502.New(b, b.lines)
	return b
}

// CPU returns the bus's CPU, for harnesses that need to call Reset,
// SetPC, or DisableInterrupts directly (the nestest golden-log mode).
func (b *Bus) CPU() *mos6502.CPU { return b.cpu }

// Read implements mos6502.Bus.
func (b *Bus) Read(addr uint16) uint8 {
	switch {
	case addr <= 0x1FFF:
		return b.ram[addr%ramSize]
	case addr <= 0x3FFF:
		return b.ppu.RegRead(uint8((addr - 0x2000) % 8))
	case addr == oamDMARegister:
		return 0
	case addr == pad1Register:
		return b.pad1.SerialRead()
	case addr == pad2Register:
		return b.pad2.SerialRead()
	case addr >= ioWindowStart && addr <= ioWindowEnd:
		return 0
	case addr >= sramWindowStart && addr <= sramWindowEnd:
		return b.cart.ReadSRAM(addr)
	case addr >= progWindowStart:
		return b.cart.ReadProg(addr)
	}
	return 0
}

// Write implements mos6502.Bus.
func (b *Bus) Write(addr uint16, val uint8) {
	switch {
	case addr <= 0x1FFF:
		b.ram[addr%ramSize] = val
	case addr <= 0x3FFF:
		b.ppu.RegWrite(uint8((addr-0x2000)%8), val)
	case addr == oamDMARegister:
		b.runOAMDMA(val)
	case addr == pad1Register:
		b.pad1.StrobeWrite(val)
		b.pad2.StrobeWrite(val)
	case addr == pad2Register:
		// APU frame-counter register: accepted and ignored.
	case addr >= ioWindowStart && addr <= ioWindowEnd:
		// Remaining APU registers: accepted and ignored.
	case addr >= sramWindowStart && addr <= sramWindowEnd:
		b.cart.WriteSRAM(addr, val)
	case addr >= progWindowStart:
		b.cart.WriteProg(addr, val)
	}
}

// runOAMDMA copies the 256-byte page (val<<8)..(val<<8)+0xFF into OAM
// through the PPU's OAMDATA register, starting at whatever oam_addr
// currently holds (it is not reset to 0 first).
func (b *Bus) runOAMDMA(val uint8) {
	base := uint16(val) << 8
	for i := 0; i < 256; i++ {
		b.ppu.RegWrite(ppu.OAMDATA, b.Read(base+uint16(i)))
	}
	b.extraCycles += oamDMACycles
}

func (b *Bus) takeExtraCycles() int {
	c := b.extraCycles
	b.extraCycles = 0
	return c
}

// Frame is the type the driver loop hands the presenter each time the
// PPU completes a frame.
type Frame = ppu.Frame

// Run drives the cooperative CPU/PPU loop until ctx is cancelled,
// calling onFrame (if non-nil) once per completed frame.
func (b *Bus) Run(ctx context.Context, onFrame func(*Frame)) {
	for {
		select {
		case <-ctx.Done():
			return
		default:
			cycles := int(b.cpu.Step())
			cycles += b.takeExtraCycles()
			if frame := b.ppu.Step(cycles); frame != nil && onFrame != nil {
				onFrame(frame)
			}
		}
	}
}

// Step runs exactly one CPU instruction and its corresponding PPU
// catch-up, returning any frame that completed. Used by the nestest
// harness, which needs per-instruction control.
func (b *Bus) Step() (cycles uint8, frame *Frame) {
	c := b.cpu.Step()
	total := int(c) + b.takeExtraCycles()
	return c, b.ppu.Step(total)
}
