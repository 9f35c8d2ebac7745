// Package isa holds the 6809/6309 instruction set data: the per-mnemonic
// opcode table across every addressing mode, the CPU register name tables
// (6309 adds W, V, E, F, 0 over the plain 6809 set), and the PSHS/PULS
// register-mask table. It carries no behavior beyond table lookups — the
// addressing-mode selection algorithm that consumes these tables lives in
// internal/encoder.
package isa

import "strings"

// AddrMode names one of the 6809/6309 addressing modes. Values match the
// column order of the opcode table below; AMNone is never a real mode and
// its slot is always 0 (6309-only mnemonics are flagged by Entry.Only6309).
type AddrMode int

const (
	AMNone AddrMode = iota
	AMInherent
	AMRegister
	AMRelative
	AMImmediate
	AMDirect
	AMIndexed
	AMExtended
	numAddrModes
)

// CPU selects the target processor; it gates which mnemonics and register
// names are legal.
type CPU int

const (
	CPU6809 CPU = iota
	CPU6309
)

// Entry is one mnemonic's opcode across every addressing mode it supports.
// Opcodes[mode] is -1 when the mnemonic has no form for that mode. Opcodes
// above 0xff are two-byte page-1/page-2 encodings (0x10xx / 0x11xx).
type Entry struct {
	Mnemonic string
	Only6309 bool
	Opcodes  [numAddrModes]int32
}

// Supports reports whether mode is a legal addressing mode for the entry.
// CPU availability is checked separately by AvailableOn.
func (e *Entry) Supports(mode AddrMode) bool {
	return e.Opcodes[mode] >= 0
}

// Opcode returns the entry's opcode for mode, or -1 if unsupported.
func (e *Entry) Opcode(mode AddrMode) int32 {
	return e.Opcodes[mode]
}

func op(mnemonic string, only6309 bool, inherent, register, relative, immediate, direct, indexed, extended int32) Entry {
	return Entry{
		Mnemonic: mnemonic,
		Only6309: only6309,
		Opcodes: [numAddrModes]int32{
			AMNone:      0,
			AMInherent:  inherent,
			AMRegister:  register,
			AMRelative:  relative,
			AMImmediate: immediate,
			AMDirect:    direct,
			AMIndexed:   indexed,
			AMExtended:  extended,
		},
	}
}

// Table lists every 6809 mnemonic followed by every 6309 extension, in the
// column order Inherent, Register, Relative, Immediate, Direct, Indexed,
// Extended (-1 meaning "no such form").
var Table = []Entry{
	op("NEG", false, -1, -1, -1, -1, 0x00, 0x60, 0x70),
	op("COM", false, -1, -1, -1, -1, 0x03, 0x63, 0x73),
	op("LSR", false, -1, -1, -1, -1, 0x04, 0x64, 0x74),
	op("ROR", false, -1, -1, -1, -1, 0x06, 0x66, 0x76),
	op("ASR", false, -1, -1, -1, -1, 0x07, 0x67, 0x77),
	op("ASL", false, -1, -1, -1, -1, 0x08, 0x68, 0x78),
	op("LSL", false, -1, -1, -1, -1, 0x08, 0x68, 0x78),
	op("ROL", false, -1, -1, -1, -1, 0x09, 0x69, 0x79),
	op("DEC", false, -1, -1, -1, -1, 0x0a, 0x6a, 0x7a),
	op("INC", false, -1, -1, -1, -1, 0x0c, 0x6c, 0x7c),
	op("TST", false, -1, -1, -1, -1, 0x0d, 0x6d, 0x7d),
	op("JMP", false, -1, -1, -1, -1, 0x0e, 0x6e, 0x7e),
	op("CLR", false, -1, -1, -1, -1, 0x0f, 0x6f, 0x7f),
	op("NOP", false, 0x12, -1, -1, -1, -1, -1, -1),
	op("SYNC", false, 0x13, -1, -1, -1, -1, -1, -1),
	op("LBRA", false, -1, -1, 0x16, -1, -1, -1, -1),
	op("LBSR", false, -1, -1, 0x17, -1, -1, -1, -1),
	op("DAA", false, 0x19, -1, -1, -1, -1, -1, -1),
	op("ORCC", false, -1, -1, -1, 0x1a, -1, -1, -1),
	op("ANDCC", false, -1, -1, -1, 0x1c, -1, -1, -1),
	op("SEX", false, 0x1d, -1, -1, -1, -1, -1, -1),
	op("EXG", false, -1, 0x1e, -1, -1, -1, -1, -1),
	op("TFR", false, -1, 0x1f, -1, -1, -1, -1, -1),
	op("BRA", false, -1, -1, 0x20, -1, -1, -1, -1),
	op("BRN", false, -1, -1, 0x21, -1, -1, -1, -1),
	op("BHI", false, -1, -1, 0x22, -1, -1, -1, -1),
	op("BLS", false, -1, -1, 0x23, -1, -1, -1, -1),
	op("BCC", false, -1, -1, 0x24, -1, -1, -1, -1),
	op("BHS", false, -1, -1, 0x24, -1, -1, -1, -1),
	op("BCS", false, -1, -1, 0x25, -1, -1, -1, -1),
	op("BLO", false, -1, -1, 0x25, -1, -1, -1, -1),
	op("BNE", false, -1, -1, 0x26, -1, -1, -1, -1),
	op("BEQ", false, -1, -1, 0x27, -1, -1, -1, -1),
	op("BVC", false, -1, -1, 0x28, -1, -1, -1, -1),
	op("BVS", false, -1, -1, 0x29, -1, -1, -1, -1),
	op("BPL", false, -1, -1, 0x2a, -1, -1, -1, -1),
	op("BMI", false, -1, -1, 0x2b, -1, -1, -1, -1),
	op("BGE", false, -1, -1, 0x2c, -1, -1, -1, -1),
	op("BLT", false, -1, -1, 0x2d, -1, -1, -1, -1),
	op("BGT", false, -1, -1, 0x2e, -1, -1, -1, -1),
	op("BLE", false, -1, -1, 0x2f, -1, -1, -1, -1),
	op("LEAX", false, -1, -1, -1, -1, -1, 0x30, -1),
	op("LEAY", false, -1, -1, -1, -1, -1, 0x31, -1),
	op("LEAS", false, -1, -1, -1, -1, -1, 0x32, -1),
	op("LEAU", false, -1, -1, -1, -1, -1, 0x33, -1),
	op("PSHS", false, -1, 0x34, -1, -1, -1, -1, -1),
	op("PULS", false, -1, 0x35, -1, -1, -1, -1, -1),
	op("PSHU", false, -1, 0x36, -1, -1, -1, -1, -1),
	op("PULU", false, -1, 0x37, -1, -1, -1, -1, -1),
	op("RTS", false, 0x39, -1, -1, -1, -1, -1, -1),
	op("ABX", false, 0x3a, -1, -1, -1, -1, -1, -1),
	op("RTI", false, 0x3b, -1, -1, -1, -1, -1, -1),
	op("CWAI", false, -1, -1, -1, 0x3c, -1, -1, -1),
	op("MUL", false, 0x3d, -1, -1, -1, -1, -1, -1),
	op("RESET", false, 0x3e, -1, -1, -1, -1, -1, -1),
	op("SWI", false, 0x3f, -1, -1, -1, -1, -1, -1),
	op("NEGA", false, 0x40, -1, -1, -1, -1, -1, -1),
	op("COMA", false, 0x43, -1, -1, -1, -1, -1, -1),
	op("LSRA", false, 0x44, -1, -1, -1, -1, -1, -1),
	op("RORA", false, 0x46, -1, -1, -1, -1, -1, -1),
	op("ASRA", false, 0x47, -1, -1, -1, -1, -1, -1),
	op("ASLA", false, 0x48, -1, -1, -1, -1, -1, -1),
	op("LSLA", false, 0x48, -1, -1, -1, -1, -1, -1),
	op("ROLA", false, 0x49, -1, -1, -1, -1, -1, -1),
	op("DECA", false, 0x4a, -1, -1, -1, -1, -1, -1),
	op("INCA", false, 0x4c, -1, -1, -1, -1, -1, -1),
	op("TSTA", false, 0x4d, -1, -1, -1, -1, -1, -1),
	op("CLRA", false, 0x4f, -1, -1, -1, -1, -1, -1),
	op("NEGB", false, 0x50, -1, -1, -1, -1, -1, -1),
	op("COMB", false, 0x53, -1, -1, -1, -1, -1, -1),
	op("LSRB", false, 0x54, -1, -1, -1, -1, -1, -1),
	op("RORB", false, 0x56, -1, -1, -1, -1, -1, -1),
	op("ASRB", false, 0x57, -1, -1, -1, -1, -1, -1),
	op("ASLB", false, 0x58, -1, -1, -1, -1, -1, -1),
	op("LSLB", false, 0x58, -1, -1, -1, -1, -1, -1),
	op("ROLB", false, 0x59, -1, -1, -1, -1, -1, -1),
	op("DECB", false, 0x5a, -1, -1, -1, -1, -1, -1),
	op("INCB", false, 0x5c, -1, -1, -1, -1, -1, -1),
	op("TSTB", false, 0x5d, -1, -1, -1, -1, -1, -1),
	op("CLRB", false, 0x5f, -1, -1, -1, -1, -1, -1),
	op("SUBA", false, -1, -1, -1, 0x80, 0x90, 0xa0, 0xb0),
	op("CMPA", false, -1, -1, -1, 0x81, 0x91, 0xa1, 0xb1),
	op("SBCA", false, -1, -1, -1, 0x82, 0x92, 0xa2, 0xb2),
	op("SUBD", false, -1, -1, -1, 0x83, 0x93, 0xa3, 0xb3),
	op("ANDA", false, -1, -1, -1, 0x84, 0x94, 0xa4, 0xb4),
	op("BITA", false, -1, -1, -1, 0x85, 0x95, 0xa5, 0xb5),
	op("LDA", false, -1, -1, -1, 0x86, 0x96, 0xa6, 0xb6),
	op("EORA", false, -1, -1, -1, 0x88, 0x98, 0xa8, 0xb8),
	op("ADCA", false, -1, -1, -1, 0x89, 0x99, 0xa9, 0xb9),
	op("ORA", false, -1, -1, -1, 0x8a, 0x9a, 0xaa, 0xba),
	op("ADDA", false, -1, -1, -1, 0x8b, 0x9b, 0xab, 0xbb),
	op("CMPX", false, -1, -1, -1, 0x8c, 0x9c, 0xac, 0xbc),
	op("BSR", false, -1, -1, 0x8d, -1, -1, -1, -1),
	op("LDX", false, -1, -1, -1, 0x8e, 0x9e, 0xae, 0xbe),
	op("STA", false, -1, -1, -1, -1, 0x97, 0xa7, 0xb7),
	op("JSR", false, -1, -1, -1, -1, 0x9d, 0xad, 0xbd),
	op("STX", false, -1, -1, -1, -1, 0x9f, 0xaf, 0xbf),
	op("SUBB", false, -1, -1, -1, 0xc0, 0xd0, 0xe0, 0xf0),
	op("CMPB", false, -1, -1, -1, 0xc1, 0xd1, 0xe1, 0xf1),
	op("SBCB", false, -1, -1, -1, 0xc2, 0xd2, 0xe2, 0xf2),
	op("ADDD", false, -1, -1, -1, 0xc3, 0xd3, 0xe3, 0xf3),
	op("ANDB", false, -1, -1, -1, 0xc4, 0xd4, 0xe4, 0xf4),
	op("BITB", false, -1, -1, -1, 0xc5, 0xd5, 0xe5, 0xf5),
	op("LDB", false, -1, -1, -1, 0xc6, 0xd6, 0xe6, 0xf6),
	op("EORB", false, -1, -1, -1, 0xc8, 0xd8, 0xe8, 0xf8),
	op("ADCB", false, -1, -1, -1, 0xc9, 0xd9, 0xe9, 0xf9),
	op("ORB", false, -1, -1, -1, 0xca, 0xda, 0xea, 0xfa),
	op("ADDB", false, -1, -1, -1, 0xcb, 0xdb, 0xeb, 0xfb),
	op("LDD", false, -1, -1, -1, 0xcc, 0xdc, 0xec, 0xfc),
	op("LDU", false, -1, -1, -1, 0xce, 0xde, 0xee, 0xfe),
	op("STB", false, -1, -1, -1, -1, 0xd7, 0xe7, 0xf7),
	op("STD", false, -1, -1, -1, -1, 0xdd, 0xed, 0xfd),
	op("STU", false, -1, -1, -1, -1, 0xdf, 0xef, 0xff),
	op("LBRN", false, -1, -1, 0x1021, -1, -1, -1, -1),
	op("LBHI", false, -1, -1, 0x1022, -1, -1, -1, -1),
	op("LBLS", false, -1, -1, 0x1023, -1, -1, -1, -1),
	op("LBCC", false, -1, -1, 0x1024, -1, -1, -1, -1),
	op("LBHS", false, -1, -1, 0x1024, -1, -1, -1, -1),
	op("LBCS", false, -1, -1, 0x1025, -1, -1, -1, -1),
	op("LBLO", false, -1, -1, 0x1025, -1, -1, -1, -1),
	op("LBNE", false, -1, -1, 0x1026, -1, -1, -1, -1),
	op("LBEQ", false, -1, -1, 0x1027, -1, -1, -1, -1),
	op("LBVC", false, -1, -1, 0x1028, -1, -1, -1, -1),
	op("LBVS", false, -1, -1, 0x1029, -1, -1, -1, -1),
	op("LBPL", false, -1, -1, 0x102a, -1, -1, -1, -1),
	op("LBMI", false, -1, -1, 0x102b, -1, -1, -1, -1),
	op("LBGE", false, -1, -1, 0x102c, -1, -1, -1, -1),
	op("LBLT", false, -1, -1, 0x102d, -1, -1, -1, -1),
	op("LBGT", false, -1, -1, 0x102e, -1, -1, -1, -1),
	op("LBLE", false, -1, -1, 0x102f, -1, -1, -1, -1),
	op("SWI2", false, 0x103f, -1, -1, -1, -1, -1, -1),
	op("CMPD", false, -1, -1, -1, 0x1083, 0x1093, 0x10a3, 0x10b3),
	op("CMPY", false, -1, -1, -1, 0x108c, 0x109c, 0x10ac, 0x10bc),
	op("LDY", false, -1, -1, -1, 0x108e, 0x109e, 0x10ae, 0x10be),
	op("STY", false, -1, -1, -1, -1, 0x109f, 0x10af, 0x10bf),
	op("LDS", false, -1, -1, -1, 0x10ce, 0x10de, 0x10ee, 0x10fe),
	op("STS", false, -1, -1, -1, -1, 0x10df, 0x10ef, 0x10ff),
	op("SWI3", false, 0x113f, -1, -1, -1, -1, -1, -1),
	op("CMPU", false, -1, -1, -1, 0x1183, 0x1193, 0x11a3, 0x11b3),
	op("CMPS", false, -1, -1, -1, 0x118c, 0x119c, 0x11ac, 0x11bc),

	// 6309 extensions
	op("SEXW", true, 0x14, -1, -1, -1, -1, -1, -1),
	op("ADDR", true, -1, 0x1030, -1, -1, -1, -1, -1),
	op("ADCR", true, -1, 0x1031, -1, -1, -1, -1, -1),
	op("SUBR", true, -1, 0x1032, -1, -1, -1, -1, -1),
	op("SBCR", true, -1, 0x1033, -1, -1, -1, -1, -1),
	op("ANDR", true, -1, 0x1034, -1, -1, -1, -1, -1),
	op("ORR", true, -1, 0x1035, -1, -1, -1, -1, -1),
	op("EORR", true, -1, 0x1036, -1, -1, -1, -1, -1),
	op("CMPR", true, -1, 0x1037, -1, -1, -1, -1, -1),
	op("TFM", true, -1, 0x1138, -1, -1, -1, -1, -1),
	op("BITMD", true, -1, -1, -1, 0x113c, -1, -1, -1),
	op("LDMD", true, -1, -1, -1, 0x113d, -1, -1, -1),
	op("PSHSW", true, 0x1038, -1, -1, -1, -1, -1, -1),
	op("PULSW", true, 0x1039, -1, -1, -1, -1, -1, -1),
	op("PSHUW", true, 0x103A, -1, -1, -1, -1, -1, -1),
	op("PULUW", true, 0x103B, -1, -1, -1, -1, -1, -1),
	op("NEGD", true, 0x1040, -1, -1, -1, -1, -1, -1),
	op("COMD", true, 0x1043, -1, -1, -1, -1, -1, -1),
	op("LSRD", true, 0x1044, -1, -1, -1, -1, -1, -1),
	op("RORD", true, 0x1046, -1, -1, -1, -1, -1, -1),
	op("ASRD", true, 0x1047, -1, -1, -1, -1, -1, -1),
	op("ASLD", true, 0x1048, -1, -1, -1, -1, -1, -1),
	op("LSLD", true, 0x1048, -1, -1, -1, -1, -1, -1),
	op("ROLD", true, 0x1049, -1, -1, -1, -1, -1, -1),
	op("DECD", true, 0x104A, -1, -1, -1, -1, -1, -1),
	op("INCD", true, 0x104C, -1, -1, -1, -1, -1, -1),
	op("TSTD", true, 0x104D, -1, -1, -1, -1, -1, -1),
	op("CLRD", true, 0x104F, -1, -1, -1, -1, -1, -1),
	op("COMW", true, 0x1053, -1, -1, -1, -1, -1, -1),
	op("LSRW", true, 0x1054, -1, -1, -1, -1, -1, -1),
	op("RORW", true, 0x1056, -1, -1, -1, -1, -1, -1),
	op("ROLW", true, 0x1059, -1, -1, -1, -1, -1, -1),
	op("DECW", true, 0x105A, -1, -1, -1, -1, -1, -1),
	op("INCW", true, 0x105C, -1, -1, -1, -1, -1, -1),
	op("TSTW", true, 0x105D, -1, -1, -1, -1, -1, -1),
	op("CLRW", true, 0x105F, -1, -1, -1, -1, -1, -1),
	op("COME", true, 0x1143, -1, -1, -1, -1, -1, -1),
	op("DECE", true, 0x114A, -1, -1, -1, -1, -1, -1),
	op("INCE", true, 0x114C, -1, -1, -1, -1, -1, -1),
	op("TSTE", true, 0x114D, -1, -1, -1, -1, -1, -1),
	op("CLRE", true, 0x114F, -1, -1, -1, -1, -1, -1),
	op("COMF", true, 0x1153, -1, -1, -1, -1, -1, -1),
	op("DECF", true, 0x115A, -1, -1, -1, -1, -1, -1),
	op("INCF", true, 0x115C, -1, -1, -1, -1, -1, -1),
	op("TSTF", true, 0x115D, -1, -1, -1, -1, -1, -1),
	op("CLRF", true, 0x115F, -1, -1, -1, -1, -1, -1),
	op("OIM", true, -1, -1, -1, -1, 0x01, 0x61, 0x71),
	op("AIM", true, -1, -1, -1, -1, 0x02, 0x62, 0x72),
	op("EIM", true, -1, -1, -1, -1, 0x05, 0x65, 0x75),
	op("TIM", true, -1, -1, -1, -1, 0x0b, 0x6b, 0x7b),
	op("STW", true, -1, -1, -1, -1, 0x1097, 0x10a7, 0x10b7),
	op("STQ", true, -1, -1, -1, -1, 0x10dd, 0x10ed, 0x10fd),
	op("STE", true, -1, -1, -1, -1, 0x1197, 0x11a7, 0x11b7),
	op("STF", true, -1, -1, -1, -1, 0x11d7, 0x11e7, 0x11f7),
	op("LDQ", true, -1, -1, -1, 0xcd, 0x10dc, 0x10ec, 0x10fc),
	op("SUBW", true, -1, -1, -1, 0x1080, 0x1090, 0x10a0, 0x10b0),
	op("CMPW", true, -1, -1, -1, 0x1081, 0x1091, 0x10a1, 0x10b1),
	op("SBCD", true, -1, -1, -1, 0x1082, 0x1092, 0x10a2, 0x10b2),
	op("ANDD", true, -1, -1, -1, 0x1084, 0x1094, 0x10a4, 0x10b4),
	op("BITD", true, -1, -1, -1, 0x1085, 0x1095, 0x10a5, 0x10b5),
	op("LDW", true, -1, -1, -1, 0x1086, 0x1096, 0x10a6, 0x10b6),
	op("EORD", true, -1, -1, -1, 0x1088, 0x1098, 0x10a8, 0x10b8),
	op("ADCD", true, -1, -1, -1, 0x1089, 0x1099, 0x10a9, 0x10b9),
	op("ORD", true, -1, -1, -1, 0x108a, 0x109a, 0x10aa, 0x10ba),
	op("ADDW", true, -1, -1, -1, 0x108b, 0x109b, 0x10ab, 0x10bb),
	op("SUBE", true, -1, -1, -1, 0x1180, 0x1190, 0x11a0, 0x11b0),
	op("CMPE", true, -1, -1, -1, 0x1181, 0x1191, 0x11a1, 0x11b1),
	op("LDE", true, -1, -1, -1, 0x1186, 0x1196, 0x11a6, 0x11b6),
	op("ADDE", true, -1, -1, -1, 0x118b, 0x119b, 0x11ab, 0x11bb),
	op("DIVD", true, -1, -1, -1, 0x118d, 0x119d, 0x11ad, 0x11bd),
	op("DIVQ", true, -1, -1, -1, 0x118e, 0x119e, 0x11ae, 0x11be),
	op("MULD", true, -1, -1, -1, 0x118f, 0x119f, 0x11af, 0x11bf),
	op("SUBF", true, -1, -1, -1, 0x11c0, 0x11d0, 0x11e0, 0x11f0),
	op("CMPF", true, -1, -1, -1, 0x11c1, 0x11d1, 0x11e1, 0x11f1),
	op("LDF", true, -1, -1, -1, 0x11c6, 0x11d6, 0x11e6, 0x11f6),
	op("ADDF", true, -1, -1, -1, 0x11cb, 0x11db, 0x11eb, 0x11fb),
	op("BAND", true, -1, -1, -1, -1, 0x1130, -1, -1),
	op("BIAND", true, -1, -1, -1, -1, 0x1131, -1, -1),
	op("BOR", true, -1, -1, -1, -1, 0x1132, -1, -1),
	op("BIOR", true, -1, -1, -1, -1, 0x1133, -1, -1),
	op("BEOR", true, -1, -1, -1, -1, 0x1134, -1, -1),
	op("BIEOR", true, -1, -1, -1, -1, 0x1135, -1, -1),
	op("LDBT", true, -1, -1, -1, -1, 0x1136, -1, -1),
	op("STBT", true, -1, -1, -1, -1, 0x1137, -1, -1),
}

var byMnemonic map[string]*Entry

func init() {
	byMnemonic = make(map[string]*Entry, len(Table))
	for i := range Table {
		byMnemonic[Table[i].Mnemonic] = &Table[i]
	}
}

// Lookup returns the opcode table entry for an upper-cased mnemonic, or nil.
func Lookup(mnemonic string) *Entry {
	return byMnemonic[mnemonic]
}

// AvailableOn reports whether e's mnemonic can be assembled for cpu: every
// 6809 mnemonic is available on a 6309 target, but 6309-only mnemonics
// (register-to-register ALU ops, TFM, the extra E/F/W/Q registers, the
// immediate-to-memory bit ops) are rejected on a plain 6809 target.
func (e *Entry) AvailableOn(cpu CPU) bool {
	return cpu == CPU6309 || !e.Only6309
}

// register index 0..15, shared by both CPU register tables; the slot
// content differs because the 6809 lacks W, V, 0, E, F.
const (
	RegD = iota
	RegX
	RegY
	RegU
	RegS
	RegPC
	RegW
	RegV
	RegA
	RegB
	RegCC
	RegDP
	RegReserved // unused postbyte code ('*' in the source table)
	RegZero     // 6309 "0" constant-zero pseudo-register
	RegE
	RegF
)

var registerNames6309 = [16]string{
	"D", "X", "Y", "U", "S", "PC", "W", "V", "A", "B", "CC", "DP", "*", "0", "E", "F",
}

var registerNames6809 = [16]string{
	"D", "X", "Y", "U", "S", "PC", "-", "-", "A", "B", "CC", "DP", "*", "*", "-", "-",
}

// RegisterNames returns the 16-entry TFR/EXG/TFM register name table for
// the given CPU; unavailable 6809 slots read as "-".
func RegisterNames(cpu CPU) [16]string {
	if cpu == CPU6309 {
		return registerNames6309
	}
	return registerNames6809
}

// Width8 reports whether register index r names an 8-bit register (A, B,
// CC, DP, and on 6309 also E, F); TFR/EXG between an 8-bit and a 16-bit
// register is illegal.
func Width8(r int) bool {
	return r >= RegA
}

// ScanRegister matches the longest register name prefixing s (case
// insensitive) against cpu's table, preferring longer names like "DP" over
// the "D" they start with. It consumes one following comma (with optional
// surrounding space) the way the reference scanner does, since TFR/EXG
// operands separate their two register names with one. It returns the
// register index and the unmatched remainder of s, or ok=false if no
// register name matches.
func ScanRegister(cpu CPU, s string) (idx int, rest string, ok bool) {
	names := RegisterNames(cpu)
	upper := strings.ToUpper(s)
	for i := 15; i >= 0; i-- {
		name := names[i]
		if name == "-" || name == "*" {
			continue
		}
		if strings.HasPrefix(upper, name) {
			rest = strings.TrimLeft(s[len(name):], " \t")
			rest = strings.TrimPrefix(rest, ",")
			return i, rest, true
		}
	}
	return 0, s, false
}

// TFMRegister matches a single-letter TFM register (D, X, Y, U, S only) at
// the start of s.
func TFMRegister(cpu CPU, s string) (idx int, rest string, ok bool) {
	if len(s) == 0 {
		return 0, s, false
	}
	names := RegisterNames(cpu)
	c := strings.ToUpper(s[:1])
	for i := 4; i >= 0; i-- {
		if names[i][:1] == c {
			return i, s[1:], true
		}
	}
	return 0, s, false
}

// PushEntry is one row of the PSHS/PULS/PSHU/PULU register-mask table.
type PushEntry struct {
	Reg string
	Bit byte
}

// PushList enumerates the push/pull register mask bits, listed CC..PC. The
// encoder scans it from the end, so "DP" is tried before "D" and is not
// shadowed by it.
var PushList = []PushEntry{
	{"CC", 0x01},
	{"A", 0x02},
	{"B", 0x04},
	{"D", 0x06},
	{"DP", 0x08},
	{"X", 0x10},
	{"Y", 0x20},
	{"S", 0x40},
	{"U", 0x40},
	{"PC", 0x80},
}
