package mos6502

// Addressing modes.
// https://www.nesdev.org/obelisk-6502-guide/addressing.html
const (
	IMPLICIT = iota
	ACCUMULATOR
	IMMEDIATE
	ZERO_PAGE
	ZERO_PAGE_X
	ZERO_PAGE_Y
	RELATIVE
	ABSOLUTE
	ABSOLUTE_X
	ABSOLUTE_Y
	ABSOLUTE_INDIRECT // JMP (ind) only; reproduces the page-wrap bug
	INDIRECT_X        // indexed indirect
	INDIRECT_Y        // indirect indexed
)

var modeNames = map[uint8]string{
	IMPLICIT: "IMPLICIT", ACCUMULATOR: "ACCUMULATOR", IMMEDIATE: "IMMEDIATE",
	ZERO_PAGE: "ZERO_PAGE", ZERO_PAGE_X: "ZERO_PAGE_X", ZERO_PAGE_Y: "ZERO_PAGE_Y",
	RELATIVE: "RELATIVE", ABSOLUTE: "ABSOLUTE", ABSOLUTE_X: "ABSOLUTE_X",
	ABSOLUTE_Y: "ABSOLUTE_Y", ABSOLUTE_INDIRECT: "ABSOLUTE_INDIRECT",
	INDIRECT_X: "INDIRECT_X", INDIRECT_Y: "INDIRECT_Y",
}

const STACK_PAGE = 0x0100

// Instruction mnemonics, official and the documented unofficial
// opcodes nestest exercises: LAX, SAX, DCP, ISB, SLO, RLA, SRE, RRA.
// Multi-byte unofficial NOPs reuse the NOP mnemonic; their addressing
// mode alone determines how many operand bytes they consume.
const (
	ADC = iota
	AND
	ASL
	BCC
	BCS
	BEQ
	BIT
	BMI
	BNE
	BPL
	BRK
	BVC
	BVS
	CLC
	CLD
	CLI
	CLV
	CMP
	CPX
	CPY
	DEC
	DEX
	DEY
	EOR
	INC
	INX
	INY
	JMP
	JSR
	LDA
	LDX
	LDY
	LSR
	NOP
	ORA
	PHA
	PHP
	PLA
	PLP
	ROL
	ROR
	RTI
	RTS
	SBC
	SEC
	SED
	SEI
	STA
	STX
	STY
	TAX
	TAY
	TSX
	TXA
	TXS
	TYA
	LAX
	SAX
	DCP
	ISB
	SLO
	RLA
	SRE
	RRA
)

var mnemonics = map[uint8]string{
	ADC: "ADC", AND: "AND", ASL: "ASL", BCC: "BCC", BCS: "BCS", BEQ: "BEQ",
	BIT: "BIT", BMI: "BMI", BNE: "BNE", BPL: "BPL", BRK: "BRK", BVC: "BVC",
	BVS: "BVS", CLC: "CLC", CLD: "CLD", CLI: "CLI", CLV: "CLV", CMP: "CMP",
	CPX: "CPX", CPY: "CPY", DEC: "DEC", DEX: "DEX", DEY: "DEY", EOR: "EOR",
	INC: "INC", INX: "INX", INY: "INY", JMP: "JMP", JSR: "JSR", LDA: "LDA",
	LDX: "LDX", LDY: "LDY", LSR: "LSR", NOP: "NOP", ORA: "ORA", PHA: "PHA",
	PHP: "PHP", PLA: "PLA", PLP: "PLP", ROL: "ROL", ROR: "ROR", RTI: "RTI",
	RTS: "RTS", SBC: "SBC", SEC: "SEC", SED: "SED", SEI: "SEI", STA: "STA",
	STX: "STX", STY: "STY", TAX: "TAX", TAY: "TAY", TSX: "TSX", TXA: "TXA",
	TXS: "TXS", TYA: "TYA", LAX: "LAX", SAX: "SAX", DCP: "DCP", ISB: "ISB",
	SLO: "SLO", RLA: "RLA", SRE: "SRE", RRA: "RRA",
}

// opcode describes one of the 256 possible opcode bytes: its
// mnemonic, addressing mode, base cycle count and whether an indexed
// read in that mode can take a page-cross penalty.
type opcode struct {
	valid      bool
	mnemonic   uint8
	mode       uint8
	cycles     uint8
	pageCross  bool
}

func (o opcode) String() string {
	return mnemonics[o.mnemonic] + " " + modeNames[o.mode]
}

// opcodeTable is the single 256-entry static dispatch table mandated
// in place of the source's runtime mnemonic string comparisons. Entry
// zero value (valid == false) marks an opcode byte this CPU does not
// implement.
var opcodeTable [256]opcode

func def(b uint8, mnemonic, mode uint8, cycles uint8, pageCross bool) {
	opcodeTable[b] = opcode{true, mnemonic, mode, cycles, pageCross}
}

func init() {
	def(0x69, ADC, IMMEDIATE, 2, false)
	def(0x65, ADC, ZERO_PAGE, 3, false)
	def(0x75, ADC, ZERO_PAGE_X, 4, false)
	def(0x6D, ADC, ABSOLUTE, 4, false)
	def(0x7D, ADC, ABSOLUTE_X, 4, true)
	def(0x79, ADC, ABSOLUTE_Y, 4, true)
	def(0x61, ADC, INDIRECT_X, 6, false)
	def(0x71, ADC, INDIRECT_Y, 5, true)

	def(0x29, AND, IMMEDIATE, 2, false)
	def(0x25, AND, ZERO_PAGE, 3, false)
	def(0x35, AND, ZERO_PAGE_X, 4, false)
	def(0x2D, AND, ABSOLUTE, 4, false)
	def(0x3D, AND, ABSOLUTE_X, 4, true)
	def(0x39, AND, ABSOLUTE_Y, 4, true)
	def(0x21, AND, INDIRECT_X, 6, false)
	def(0x31, AND, INDIRECT_Y, 5, true)

	def(0x0A, ASL, ACCUMULATOR, 2, false)
	def(0x06, ASL, ZERO_PAGE, 5, false)
	def(0x16, ASL, ZERO_PAGE_X, 6, false)
	def(0x0E, ASL, ABSOLUTE, 6, false)
	def(0x1E, ASL, ABSOLUTE_X, 7, false)

	def(0x90, BCC, RELATIVE, 2, false)
	def(0xB0, BCS, RELATIVE, 2, false)
	def(0xF0, BEQ, RELATIVE, 2, false)
	def(0x30, BMI, RELATIVE, 2, false)
	def(0xD0, BNE, RELATIVE, 2, false)
	def(0x10, BPL, RELATIVE, 2, false)
	def(0x50, BVC, RELATIVE, 2, false)
	def(0x70, BVS, RELATIVE, 2, false)

	def(0x24, BIT, ZERO_PAGE, 3, false)
	def(0x2C, BIT, ABSOLUTE, 4, false)

	def(0x00, BRK, IMPLICIT, 7, false)

	def(0x18, CLC, IMPLICIT, 2, false)
	def(0xD8, CLD, IMPLICIT, 2, false)
	def(0x58, CLI, IMPLICIT, 2, false)
	def(0xB8, CLV, IMPLICIT, 2, false)

	def(0xC9, CMP, IMMEDIATE, 2, false)
	def(0xC5, CMP, ZERO_PAGE, 3, false)
	def(0xD5, CMP, ZERO_PAGE_X, 4, false)
	def(0xCD, CMP, ABSOLUTE, 4, false)
	def(0xDD, CMP, ABSOLUTE_X, 4, true)
	def(0xD9, CMP, ABSOLUTE_Y, 4, true)
	def(0xC1, CMP, INDIRECT_X, 6, false)
	def(0xD1, CMP, INDIRECT_Y, 5, true)

	def(0xE0, CPX, IMMEDIATE, 2, false)
	def(0xE4, CPX, ZERO_PAGE, 3, false)
	def(0xEC, CPX, ABSOLUTE, 4, false)
	def(0xC0, CPY, IMMEDIATE, 2, false)
	def(0xC4, CPY, ZERO_PAGE, 3, false)
	def(0xCC, CPY, ABSOLUTE, 4, false)

	def(0xC6, DEC, ZERO_PAGE, 5, false)
	def(0xD6, DEC, ZERO_PAGE_X, 6, false)
	def(0xCE, DEC, ABSOLUTE, 6, false)
	def(0xDE, DEC, ABSOLUTE_X, 7, false)
	def(0xCA, DEX, IMPLICIT, 2, false)
	def(0x88, DEY, IMPLICIT, 2, false)

	def(0x49, EOR, IMMEDIATE, 2, false)
	def(0x45, EOR, ZERO_PAGE, 3, false)
	def(0x55, EOR, ZERO_PAGE_X, 4, false)
	def(0x4D, EOR, ABSOLUTE, 4, false)
	def(0x5D, EOR, ABSOLUTE_X, 4, true)
	def(0x59, EOR, ABSOLUTE_Y, 4, true)
	def(0x41, EOR, INDIRECT_X, 6, false)
	def(0x51, EOR, INDIRECT_Y, 5, true)

	def(0xE6, INC, ZERO_PAGE, 5, false)
	def(0xF6, INC, ZERO_PAGE_X, 6, false)
	def(0xEE, INC, ABSOLUTE, 6, false)
	def(0xFE, INC, ABSOLUTE_X, 7, false)
	def(0xE8, INX, IMPLICIT, 2, false)
	def(0xC8, INY, IMPLICIT, 2, false)

	def(0x4C, JMP, ABSOLUTE, 3, false)
	def(0x6C, JMP, ABSOLUTE_INDIRECT, 5, false)
	def(0x20, JSR, ABSOLUTE, 6, false)

	def(0xA9, LDA, IMMEDIATE, 2, false)
	def(0xA5, LDA, ZERO_PAGE, 3, false)
	def(0xB5, LDA, ZERO_PAGE_X, 4, false)
	def(0xAD, LDA, ABSOLUTE, 4, false)
	def(0xBD, LDA, ABSOLUTE_X, 4, true)
	def(0xB9, LDA, ABSOLUTE_Y, 4, true)
	def(0xA1, LDA, INDIRECT_X, 6, false)
	def(0xB1, LDA, INDIRECT_Y, 5, true)

	def(0xA2, LDX, IMMEDIATE, 2, false)
	def(0xA6, LDX, ZERO_PAGE, 3, false)
	def(0xB6, LDX, ZERO_PAGE_Y, 4, false)
	def(0xAE, LDX, ABSOLUTE, 4, false)
	def(0xBE, LDX, ABSOLUTE_Y, 4, true)

	def(0xA0, LDY, IMMEDIATE, 2, false)
	def(0xA4, LDY, ZERO_PAGE, 3, false)
	def(0xB4, LDY, ZERO_PAGE_X, 4, false)
	def(0xAC, LDY, ABSOLUTE, 4, false)
	def(0xBC, LDY, ABSOLUTE_X, 4, true)

	def(0x4A, LSR, ACCUMULATOR, 2, false)
	def(0x46, LSR, ZERO_PAGE, 5, false)
	def(0x56, LSR, ZERO_PAGE_X, 6, false)
	def(0x4E, LSR, ABSOLUTE, 6, false)
	def(0x5E, LSR, ABSOLUTE_X, 7, false)

	def(0xEA, NOP, IMPLICIT, 2, false)
	def(0x09, ORA, IMMEDIATE, 2, false)
	def(0x05, ORA, ZERO_PAGE, 3, false)
	def(0x15, ORA, ZERO_PAGE_X, 4, false)
	def(0x0D, ORA, ABSOLUTE, 4, false)
	def(0x1D, ORA, ABSOLUTE_X, 4, true)
	def(0x19, ORA, ABSOLUTE_Y, 4, true)
	def(0x01, ORA, INDIRECT_X, 6, false)
	def(0x11, ORA, INDIRECT_Y, 5, true)

	def(0x48, PHA, IMPLICIT, 3, false)
	def(0x08, PHP, IMPLICIT, 3, false)
	def(0x68, PLA, IMPLICIT, 4, false)
	def(0x28, PLP, IMPLICIT, 4, false)

	def(0x2A, ROL, ACCUMULATOR, 2, false)
	def(0x26, ROL, ZERO_PAGE, 5, false)
	def(0x36, ROL, ZERO_PAGE_X, 6, false)
	def(0x2E, ROL, ABSOLUTE, 6, false)
	def(0x3E, ROL, ABSOLUTE_X, 7, false)

	def(0x6A, ROR, ACCUMULATOR, 2, false)
	def(0x66, ROR, ZERO_PAGE, 5, false)
	def(0x76, ROR, ZERO_PAGE_X, 6, false)
	def(0x6E, ROR, ABSOLUTE, 6, false)
	def(0x7E, ROR, ABSOLUTE_X, 7, false)

	def(0x40, RTI, IMPLICIT, 6, false)
	def(0x60, RTS, IMPLICIT, 6, false)

	def(0xE9, SBC, IMMEDIATE, 2, false)
	def(0xEB, SBC, IMMEDIATE, 2, false) // undocumented duplicate of 0xE9
	def(0xE5, SBC, ZERO_PAGE, 3, false)
	def(0xF5, SBC, ZERO_PAGE_X, 4, false)
	def(0xED, SBC, ABSOLUTE, 4, false)
	def(0xFD, SBC, ABSOLUTE_X, 4, true)
	def(0xF9, SBC, ABSOLUTE_Y, 4, true)
	def(0xE1, SBC, INDIRECT_X, 6, false)
	def(0xF1, SBC, INDIRECT_Y, 5, true)

	def(0x38, SEC, IMPLICIT, 2, false)
	def(0xF8, SED, IMPLICIT, 2, false)
	def(0x78, SEI, IMPLICIT, 2, false)

	def(0x85, STA, ZERO_PAGE, 3, false)
	def(0x95, STA, ZERO_PAGE_X, 4, false)
	def(0x8D, STA, ABSOLUTE, 4, false)
	def(0x9D, STA, ABSOLUTE_X, 5, false)
	def(0x99, STA, ABSOLUTE_Y, 5, false)
	def(0x81, STA, INDIRECT_X, 6, false)
	def(0x91, STA, INDIRECT_Y, 6, false)

	def(0x86, STX, ZERO_PAGE, 3, false)
	def(0x96, STX, ZERO_PAGE_Y, 4, false)
	def(0x8E, STX, ABSOLUTE, 4, false)

	def(0x84, STY, ZERO_PAGE, 3, false)
	def(0x94, STY, ZERO_PAGE_X, 4, false)
	def(0x8C, STY, ABSOLUTE, 4, false)

	def(0xAA, TAX, IMPLICIT, 2, false)
	def(0xA8, TAY, IMPLICIT, 2, false)
	def(0xBA, TSX, IMPLICIT, 2, false)
	def(0x8A, TXA, IMPLICIT, 2, false)
	def(0x9A, TXS, IMPLICIT, 2, false)
	def(0x98, TYA, IMPLICIT, 2, false)

	// Unofficial opcodes nestest exercises.
	def(0xA7, LAX, ZERO_PAGE, 3, false)
	def(0xB7, LAX, ZERO_PAGE_Y, 4, false)
	def(0xAF, LAX, ABSOLUTE, 4, false)
	def(0xBF, LAX, ABSOLUTE_Y, 4, true)
	def(0xA3, LAX, INDIRECT_X, 6, false)
	def(0xB3, LAX, INDIRECT_Y, 5, true)

	def(0x87, SAX, ZERO_PAGE, 3, false)
	def(0x97, SAX, ZERO_PAGE_Y, 4, false)
	def(0x8F, SAX, ABSOLUTE, 4, false)
	def(0x83, SAX, INDIRECT_X, 6, false)

	def(0xC7, DCP, ZERO_PAGE, 5, false)
	def(0xD7, DCP, ZERO_PAGE_X, 6, false)
	def(0xCF, DCP, ABSOLUTE, 6, false)
	def(0xDF, DCP, ABSOLUTE_X, 7, false)
	def(0xDB, DCP, ABSOLUTE_Y, 7, false)
	def(0xC3, DCP, INDIRECT_X, 8, false)
	def(0xD3, DCP, INDIRECT_Y, 8, false)

	def(0xE7, ISB, ZERO_PAGE, 5, false)
	def(0xF7, ISB, ZERO_PAGE_X, 6, false)
	def(0xEF, ISB, ABSOLUTE, 6, false)
	def(0xFF, ISB, ABSOLUTE_X, 7, false)
	def(0xFB, ISB, ABSOLUTE_Y, 7, false)
	def(0xE3, ISB, INDIRECT_X, 8, false)
	def(0xF3, ISB, INDIRECT_Y, 8, false)

	def(0x07, SLO, ZERO_PAGE, 5, false)
	def(0x17, SLO, ZERO_PAGE_X, 6, false)
	def(0x0F, SLO, ABSOLUTE, 6, false)
	def(0x1F, SLO, ABSOLUTE_X, 7, false)
	def(0x1B, SLO, ABSOLUTE_Y, 7, false)
	def(0x03, SLO, INDIRECT_X, 8, false)
	def(0x13, SLO, INDIRECT_Y, 8, false)

	def(0x27, RLA, ZERO_PAGE, 5, false)
	def(0x37, RLA, ZERO_PAGE_X, 6, false)
	def(0x2F, RLA, ABSOLUTE, 6, false)
	def(0x3F, RLA, ABSOLUTE_X, 7, false)
	def(0x3B, RLA, ABSOLUTE_Y, 7, false)
	def(0x23, RLA, INDIRECT_X, 8, false)
	def(0x33, RLA, INDIRECT_Y, 8, false)

	def(0x47, SRE, ZERO_PAGE, 5, false)
	def(0x57, SRE, ZERO_PAGE_X, 6, false)
	def(0x4F, SRE, ABSOLUTE, 6, false)
	def(0x5F, SRE, ABSOLUTE_X, 7, false)
	def(0x5B, SRE, ABSOLUTE_Y, 7, false)
	def(0x43, SRE, INDIRECT_X, 8, false)
	def(0x53, SRE, INDIRECT_Y, 8, false)

	def(0x67, RRA, ZERO_PAGE, 5, false)
	def(0x77, RRA, ZERO_PAGE_X, 6, false)
	def(0x6F, RRA, ABSOLUTE, 6, false)
	def(0x7F, RRA, ABSOLUTE_X, 7, false)
	def(0x7B, RRA, ABSOLUTE_Y, 7, false)
	def(0x63, RRA, INDIRECT_X, 8, false)
	def(0x73, RRA, INDIRECT_Y, 8, false)

	// Unofficial NOPs: addressing mode alone determines how many
	// operand bytes are consumed (the source's NOPD/NOPI split).
	for _, b := range []uint8{0x1A, 0x3A, 0x5A, 0x7A, 0xDA, 0xFA} {
		def(b, NOP, IMPLICIT, 2, false)
	}
	for _, b := range []uint8{0x80, 0x82, 0x89, 0xC2, 0xE2} {
		def(b, NOP, IMMEDIATE, 2, false)
	}
	for _, b := range []uint8{0x04, 0x44, 0x64} {
		def(b, NOP, ZERO_PAGE, 3, false)
	}
	for _, b := range []uint8{0x14, 0x34, 0x54, 0x74, 0xD4, 0xF4} {
		def(b, NOP, ZERO_PAGE_X, 4, false)
	}
	def(0x0C, NOP, ABSOLUTE, 4, false)
	for _, b := range []uint8{0x1C, 0x3C, 0x5C, 0x7C, 0xDC, 0xFC} {
		def(b, NOP, ABSOLUTE_X, 4, true)
	}
}
