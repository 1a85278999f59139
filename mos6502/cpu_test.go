package mos6502

import (
	"testing"

	"github.com/bdwalton/gintendo/interrupts"
)

// flatBus is a 64 KiB flat address space used to exercise the CPU in
// isolation from the rest of the console.
type flatBus struct {
	mem [65536]uint8
}

func (b *flatBus) Read(addr uint16) uint8       { return b.mem[addr] }
func (b *flatBus) Write(addr uint16, val uint8) { b.mem[addr] = val }

func newTestCPU() (*CPU, *flatBus) {
	bus := &flatBus{}
	c := New(bus, interrupts.New())
	return c, bus
}

func TestResetVector(t *testing.T) {
	c, bus := newTestCPU()
	bus.mem[resetVector] = 0x00
	bus.mem[resetVector+1] = 0x80
	c.Reset()

	if c.PC != 0x8000 {
		t.Fatalf("PC after reset = %#04x, want 0x8000", c.PC)
	}
	if c.SP != 0xFD {
		t.Fatalf("SP after reset = %#02x, want 0xFD", c.SP)
	}
	if !c.flag(FlagI) {
		t.Fatal("interrupt-disable flag should be set after reset")
	}
}

func TestLDAImmediateSetsFlags(t *testing.T) {
	c, bus := newTestCPU()
	c.Reset()
	c.PC = 0x8000
	bus.mem[0x8000] = 0xA9 // LDA #$00
	bus.mem[0x8001] = 0x00

	c.Step()
	if c.A != 0 {
		t.Fatalf("A = %#02x, want 0", c.A)
	}
	if !c.flag(FlagZ) {
		t.Fatal("zero flag should be set after LDA #$00")
	}
}

func TestSTAAbsolute(t *testing.T) {
	c, bus := newTestCPU()
	c.Reset()
	c.PC = 0x8000
	c.A = 0x42
	bus.mem[0x8000] = 0x8D // STA $0200
	bus.mem[0x8001] = 0x00
	bus.mem[0x8002] = 0x02

	cycles := c.Step()
	if bus.mem[0x0200] != 0x42 {
		t.Fatalf("mem[0x0200] = %#02x, want 0x42", bus.mem[0x0200])
	}
	if cycles != 4 {
		t.Fatalf("cycles = %d, want 4", cycles)
	}
}

func TestADCCarryAndOverflow(t *testing.T) {
	c, _ := newTestCPU()
	c.Reset()
	c.A = 0x7F // +127
	c.adc(0x01)
	if !c.flag(FlagV) {
		t.Fatal("expected signed overflow adding 127+1")
	}
	if c.A != 0x80 {
		t.Fatalf("A = %#02x, want 0x80", c.A)
	}
}

func TestSBCBorrow(t *testing.T) {
	c, _ := newTestCPU()
	c.Reset()
	c.A = 0x05
	c.setFlag(FlagC, true) // no borrow
	c.adc(0x03 ^ 0xFF)
	if c.A != 0x02 {
		t.Fatalf("A = %#02x, want 0x02 (5-3)", c.A)
	}
	if !c.flag(FlagC) {
		t.Fatal("carry should remain set: no borrow occurred")
	}
}

func TestJSRRTSRoundTrip(t *testing.T) {
	c, bus := newTestCPU()
	c.Reset()
	c.PC = 0x8000
	bus.mem[0x8000] = 0x20 // JSR $9000
	bus.mem[0x8001] = 0x00
	bus.mem[0x8002] = 0x90
	bus.mem[0x9000] = 0x60 // RTS

	c.Step() // JSR
	if c.PC != 0x9000 {
		t.Fatalf("PC after JSR = %#04x, want 0x9000", c.PC)
	}
	c.Step() // RTS
	if c.PC != 0x8003 {
		t.Fatalf("PC after RTS = %#04x, want 0x8003", c.PC)
	}
}

func TestStackPushPopIdentity(t *testing.T) {
	c, _ := newTestCPU()
	c.Reset()
	sp := c.SP
	c.push16(0xBEEF)
	if got := c.pop16(); got != 0xBEEF {
		t.Fatalf("pop16() = %#04x, want 0xBEEF", got)
	}
	if c.SP != sp {
		t.Fatalf("SP = %#02x, want %#02x after balanced push/pop", c.SP, sp)
	}
}

func TestBRKPushesReturnAddrPlusTwoAndSetsIFlag(t *testing.T) {
	c, bus := newTestCPU()
	c.Reset()
	c.PC = 0x8000
	bus.mem[0x8000] = 0x00 // BRK
	bus.mem[irqVector] = 0x00
	bus.mem[irqVector+1] = 0x90

	c.Step()
	if c.PC != 0x9000 {
		t.Fatalf("PC after BRK = %#04x, want 0x9000", c.PC)
	}
	if !c.flag(FlagI) {
		t.Fatal("interrupt-disable flag should be set after BRK")
	}
	pushedP := c.bus.Read(STACK_PAGE + uint16(c.SP) + 1)
	if pushedP&FlagB == 0 {
		t.Fatal("pushed status byte should have the break flag set for BRK")
	}
	pushedPC := uint16(c.bus.Read(STACK_PAGE+uint16(c.SP)+2)) | uint16(c.bus.Read(STACK_PAGE+uint16(c.SP)+3))<<8
	if pushedPC != 0x8002 {
		t.Fatalf("pushed return address = %#04x, want 0x8002", pushedPC)
	}
}

func TestAbsoluteIndirectJMPPageWrapBug(t *testing.T) {
	c, bus := newTestCPU()
	c.Reset()
	c.PC = 0x8000
	bus.mem[0x8000] = 0x6C // JMP ($30FF)
	bus.mem[0x8001] = 0xFF
	bus.mem[0x8002] = 0x30
	bus.mem[0x30FF] = 0x00 // low byte of target
	bus.mem[0x3000] = 0x40 // high byte is read from 0x3000, not 0x3100
	bus.mem[0x3100] = 0x99

	c.Step()
	if c.PC != 0x4000 {
		t.Fatalf("PC after bugged indirect JMP = %#04x, want 0x4000", c.PC)
	}
}

func TestZeroPageYUsesYRegister(t *testing.T) {
	c, bus := newTestCPU()
	c.Reset()
	c.PC = 0x8000
	c.Y = 0x05
	bus.mem[0x8000] = 0xB6 // LDX $10,Y
	bus.mem[0x8001] = 0x10
	bus.mem[0x0015] = 0x7E

	c.Step()
	if c.X != 0x7E {
		t.Fatalf("X = %#02x, want 0x7E read via Y-indexed zero page", c.X)
	}
}

func TestBranchTakenAddsCycleAndPageCross(t *testing.T) {
	c, bus := newTestCPU()
	c.Reset()
	c.PC = 0x80FD
	c.setFlag(FlagZ, true)
	bus.mem[0x80FD] = 0xF0 // BEQ +4, lands on next page
	bus.mem[0x80FE] = 0x04

	cycles := c.Step()
	if c.PC != 0x8103 {
		t.Fatalf("PC after taken branch = %#04x, want 0x8103", c.PC)
	}
	if cycles != 4 {
		t.Fatalf("cycles = %d, want 4 (2 base + taken + page cross)", cycles)
	}
}

func TestLAXUnofficialOpcode(t *testing.T) {
	c, bus := newTestCPU()
	c.Reset()
	c.PC = 0x8000
	bus.mem[0x8000] = 0xA7 // LAX $10
	bus.mem[0x8001] = 0x10
	bus.mem[0x0010] = 0x55

	c.Step()
	if c.A != 0x55 || c.X != 0x55 {
		t.Fatalf("A=%#02x X=%#02x, want both 0x55", c.A, c.X)
	}
}

func TestDCPUnofficialOpcode(t *testing.T) {
	c, bus := newTestCPU()
	c.Reset()
	c.PC = 0x8000
	c.A = 0x10
	bus.mem[0x8000] = 0xC7 // DCP $20
	bus.mem[0x8001] = 0x20
	bus.mem[0x0020] = 0x11

	c.Step()
	if bus.mem[0x0020] != 0x10 {
		t.Fatalf("mem[0x20] = %#02x, want 0x10 after decrement", bus.mem[0x0020])
	}
	if !c.flag(FlagZ) {
		t.Fatal("A==decremented value should set zero flag")
	}
}

func TestNMIServicedBetweenInstructions(t *testing.T) {
	c, bus := newTestCPU()
	lines := interrupts.New()
	c.lines = lines
	c.Reset()
	c.PC = 0x8000
	bus.mem[0x8000] = 0xEA // NOP
	bus.mem[nmiVector] = 0x00
	bus.mem[nmiVector+1] = 0xA0

	lines.AssertNMI()
	cycles := c.Step()
	if c.PC != 0xA000 {
		t.Fatalf("PC after serviced NMI = %#04x, want 0xA000", c.PC)
	}
	if cycles != 7 {
		t.Fatalf("NMI service should cost 7 cycles, got %d", cycles)
	}
	if lines.SampleNMI() {
		t.Fatal("NMI line should be deasserted once serviced")
	}
}

func TestIRQServicedAndLineDeasserted(t *testing.T) {
	c, bus := newTestCPU()
	lines := interrupts.New()
	c.lines = lines
	c.Reset()
	c.setFlag(FlagI, false)
	c.PC = 0x8000
	bus.mem[0x8000] = 0xEA // NOP
	bus.mem[irqVector] = 0x00
	bus.mem[irqVector+1] = 0xB0

	lines.AssertIRQ()
	cycles := c.Step()
	if c.PC != 0xB000 {
		t.Fatalf("PC after serviced IRQ = %#04x, want 0xB000", c.PC)
	}
	if cycles != 7 {
		t.Fatalf("IRQ service should cost 7 cycles, got %d", cycles)
	}
	if lines.SampleIRQ() {
		t.Fatal("IRQ line should be deasserted once serviced")
	}
}

func TestDisableInterruptsSuppressesNMI(t *testing.T) {
	c, bus := newTestCPU()
	lines := interrupts.New()
	c.lines = lines
	c.DisableInterrupts = true
	c.Reset()
	c.PC = 0xC000
	bus.mem[0xC000] = 0xEA // NOP

	lines.AssertNMI()
	c.Step()
	if c.PC != 0xC001 {
		t.Fatalf("PC = %#04x, want 0xC001: NMI must be ignored in nestest mode", c.PC)
	}
}

func TestUnsupportedOpcodePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected a panic on an unsupported opcode byte")
		}
	}()
	c, bus := newTestCPU()
	c.Reset()
	c.PC = 0x8000
	bus.mem[0x8000] = 0x02 // KIL/JAM family, deliberately unimplemented
	c.Step()
}
