// Package interrupts implements the shared NMI/IRQ signal lines
// between the PPU and the CPU.
// https://www.nesdev.org/wiki/CPU_interrupts
package interrupts

import "sync"

// Lines holds the two latched interrupt signals shared by the CPU and
// PPU. NMI is edge-triggered: once asserted it stays set until the
// CPU services it and deasserts it; the PPU must raise it again on
// the next VBlank entry to fire a second time. IRQ is level-triggered,
// but the CPU still deasserts it as part of servicing: once Step()
// pushes PC/P and jumps to the IRQ vector, it clears the line itself,
// the same as it does for NMI.
type Lines struct {
	mu  sync.Mutex
	nmi bool
	irq bool
}

// New returns a pair of deasserted interrupt lines.
func New() *Lines {
	return &Lines{}
}

// AssertNMI raises the NMI line. Called by the PPU on VBlank entry.
func (l *Lines) AssertNMI() {
	l.mu.Lock()
	l.nmi = true
	l.mu.Unlock()
}

// DeassertNMI lowers the NMI line. Called by the CPU once it has
// serviced a pending NMI.
func (l *Lines) DeassertNMI() {
	l.mu.Lock()
	l.nmi = false
	l.mu.Unlock()
}

// SampleNMI reports whether NMI is currently asserted.
func (l *Lines) SampleNMI() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.nmi
}

// AssertIRQ raises the IRQ line.
func (l *Lines) AssertIRQ() {
	l.mu.Lock()
	l.irq = true
	l.mu.Unlock()
}

// DeassertIRQ lowers the IRQ line.
func (l *Lines) DeassertIRQ() {
	l.mu.Lock()
	l.irq = false
	l.mu.Unlock()
}

// SampleIRQ reports whether IRQ is currently asserted.
func (l *Lines) SampleIRQ() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.irq
}
