// Package encoder implements 6809/6309 addressing-mode selection and
// instruction encoding: given a resolved opcode-table entry and an operand
// string, it picks the correct addressing mode from the operand's own
// shape (the reference assembler never requires an explicit mode suffix)
// and produces the opcode, optional post byte, and operand bytes.
package encoder

import (
	"fmt"
	"strings"

	"github.com/motoxas/bs09/internal/expr"
	"github.com/motoxas/bs09/internal/isa"
)

// Encoded is one instruction's encoding. Opcode may exceed 0xff for a
// page-1 (0x10xx) or page-2 (0x11xx) form; OpcodeLen reports how many of
// those bytes are real (1 or 2).
type Encoded struct {
	Opcode     int32
	OpcodeLen  int
	PostByte   int // -1 when the instruction carries no post byte
	Value      int32
	OperandLen int // bytes of Value actually emitted (0, 1, 2, or 4 for LDQ immediate)
	Length     int // OpcodeLen + (PostByte>=0) + OperandLen, + 1 when HasImmPrefix
	Undef      bool
	Hint       string // non-empty when the optimizer rewrote the instruction

	// HasImmPrefix and ImmByte carry the immediate byte an OIM/AIM/EIM/TIM
	// instruction emits between its opcode and its memory reference.
	HasImmPrefix bool
	ImmByte      int32
}

// LenLock reports a length previously locked for the instruction at the
// current PC (set during pass 1) so pass 2's optimizer decisions agree with
// what pass 1 already committed to. ok is false before anything has been
// locked (i.e. during pass 1 itself).
type LenLock func() (length int, ok bool)

// Context carries the encoder's per-instruction environment: target CPU,
// current PC/direct-page, which pass is running, whether branch/jump
// optimization is enabled, and the length-lock query pass 2 needs to keep
// its optimizer decisions consistent with pass 1's.
type Context struct {
	CPU      isa.CPU
	PC       int32
	DP       int32
	Phase    int
	Optimize bool
	Locked   LenLock
}

// Encoder turns operand text into bytes for one opcode-table entry.
type Encoder struct {
	ctx Context
	res expr.Resolver
}

// New returns an encoder for the given environment and symbol resolver.
func New(ctx Context, res expr.Resolver) *Encoder {
	return &Encoder{ctx: ctx, res: res}
}

func (e *Encoder) eval(s string) (int32, string, expr.ForcedMode, error) {
	ev := expr.NewEvaluator(s, e.res)
	v, rest, err := ev.Parse()
	return v, rest, ev.Forced, err
}

// Encode selects an addressing mode for entry given operand (the raw
// operand text, with its leading/trailing space already trimmed) and
// returns its encoding.
func (e *Encoder) Encode(entry *isa.Entry, operand string) (Encoded, error) {
	if !entry.AvailableOn(e.ctx.CPU) {
		return Encoded{}, fmt.Errorf("%s is a 6309-only instruction", entry.Mnemonic)
	}

	// Immediate-to-memory forms (OIM/AIM/EIM/TIM): "#imm,operand" carries
	// an immediate byte ahead of an ordinary direct/indexed/extended memory
	// reference; the opcode itself is unchanged, the immediate byte is
	// simply emitted between opcode and address.
	xim := len(entry.Mnemonic) >= 3 && entry.Mnemonic[1] == 'I' && entry.Mnemonic[2] == 'M'
	var ximByte int32
	if xim {
		if !strings.HasPrefix(operand, "#") {
			return Encoded{}, fmt.Errorf("immediate operand must start with '#'")
		}
		comma := strings.IndexByte(operand, ',')
		if comma < 0 {
			return Encoded{}, fmt.Errorf("immediate value must be followed by comma")
		}
		imm, rest, _, err := e.eval(operand[1:comma])
		if err != nil {
			return Encoded{}, err
		}
		if strings.TrimSpace(rest) != "" {
			return Encoded{}, fmt.Errorf("extra text after immediate value")
		}
		ximByte = imm & 0xff
		operand = strings.TrimSpace(operand[comma+1:])
	}

	var enc Encoded
	var err error
	switch {
	case entry.Supports(isa.AMInherent) && operand == "":
		enc, err = e.encodeInherent(entry), nil
	case operand == "":
		return Encoded{}, fmt.Errorf("missing operand")
	case operand[0] == '\'':
		return Encoded{}, fmt.Errorf("operand cannot start with apostrophe")
	case entry.Supports(isa.AMRegister):
		enc, err = e.encodeRegister(entry, operand)
	case entry.Supports(isa.AMRelative):
		enc, err = e.encodeRelative(entry, operand)
	case strings.HasPrefix(operand, "#"):
		enc, err = e.encodeImmediate(entry, operand)
	case strings.HasPrefix(operand, "[") && strings.HasSuffix(operand, "]"):
		enc, err = e.encodeIndirectIndexed(entry, operand)
	case strings.ContainsAny(operand, ",") && strings.ContainsAny(operand, "."):
		return e.encodeBitOp(entry, operand)
	case strings.Contains(operand, ","):
		enc, err = e.encodeIndexed(entry, operand)
	default:
		enc, err = e.encodeDirectOrExtended(entry, operand)
	}
	if err != nil {
		return Encoded{}, err
	}
	if xim {
		enc.HasImmPrefix = true
		enc.ImmByte = ximByte
		enc.Length++
	}
	return enc, nil
}

func (e *Encoder) encodeInherent(entry *isa.Entry) Encoded {
	oc := entry.Opcode(isa.AMInherent)
	ol := opcodeLen(oc)
	return Encoded{Opcode: oc, OpcodeLen: ol, PostByte: -1, Length: ol}
}

// encodeRegister covers PSHS/PULS/PSHU/PULU (a register mask built from the
// push/pull table), TFM (source/dest register pair plus an increment/
// decrement mode), and plain register-to-register TFR/EXG.
func (e *Encoder) encodeRegister(entry *isa.Entry, operand string) (Encoded, error) {
	oc := entry.Opcode(isa.AMRegister)
	ol := opcodeLen(oc)

	if strings.HasPrefix(entry.Mnemonic, "PSH") || strings.HasPrefix(entry.Mnemonic, "PUL") {
		mask, err := scanPushList(operand)
		if err != nil {
			return Encoded{}, err
		}
		return Encoded{Opcode: oc, OpcodeLen: ol, PostByte: mask, Length: ol + 1}, nil
	}

	if strings.HasPrefix(entry.Mnemonic, "TFM") {
		return e.encodeTFM(oc, ol, operand)
	}

	r1, rest, ok := isa.ScanRegister(e.ctx.CPU, operand)
	if !ok {
		return Encoded{}, fmt.Errorf("unknown register name or wrong CPU set")
	}
	rest = strings.TrimSpace(rest)
	r2, _, ok := isa.ScanRegister(e.ctx.CPU, rest)
	if !ok {
		return Encoded{}, fmt.Errorf("unknown register name or wrong CPU set")
	}
	if r1 != isa.RegReserved && r2 != isa.RegReserved && isa.Width8(r1) != isa.Width8(r2) {
		return Encoded{}, fmt.Errorf("mixing registers of different sizes")
	}
	pb := (r1 << 4) | r2
	return Encoded{Opcode: oc, OpcodeLen: ol, PostByte: pb, Length: ol + 1}, nil
}

func (e *Encoder) encodeTFM(oc int32, ol int, operand string) (Encoded, error) {
	r1, rest, ok := isa.TFMRegister(e.ctx.CPU, operand)
	if !ok {
		return Encoded{}, fmt.Errorf("illegal register name for TFM or wrong CPU set")
	}
	var p1, p2 byte
	if len(rest) > 0 && (rest[0] == '+' || rest[0] == '-') {
		p1 = rest[0]
		rest = rest[1:]
	}
	if len(rest) == 0 || rest[0] != ',' {
		return Encoded{}, fmt.Errorf("missing comma")
	}
	rest = rest[1:]
	r2, rest2, ok := isa.TFMRegister(e.ctx.CPU, rest)
	if !ok {
		return Encoded{}, fmt.Errorf("illegal register name for TFM or wrong CPU set")
	}
	if len(rest2) > 0 && (rest2[0] == '+' || rest2[0] == '-') {
		p2 = rest2[0]
	}
	pb := (r1 << 4) | r2

	switch {
	case p1 == '+' && p2 == '+':
		oc = 0x1138
	case p1 == '-' && p2 == '-':
		oc = 0x1139
	case p1 == '+' && p2 == 0:
		oc = 0x113a
	case p1 == 0 && p2 == '+':
		oc = 0x113b
	default:
		return Encoded{}, fmt.Errorf("illegal increment/decrement combination")
	}
	ol = opcodeLen(oc)
	return Encoded{Opcode: oc, OpcodeLen: ol, PostByte: pb, Length: ol + 1}, nil
}

// encodeRelative covers short and long branches, BSR/LBSR, honoring the
// '-'/'+' numeric local-label conventions the caller has already resolved
// into an ordinary value (through the Resolver passed to Encode — local
// label depth handling lives in internal/symtab and internal/engine, one
// layer up, since it needs the pass's full label table).
func (e *Encoder) encodeRelative(entry *isa.Entry, operand string) (Encoded, error) {
	oc := entry.Opcode(isa.AMRelative)
	ol := opcodeLen(oc)
	ql := 1
	if entry.Mnemonic[0] == 'L' {
		ql = 2
	}

	target, rest, _, err := e.eval(operand)
	if err != nil {
		return Encoded{}, err
	}
	if strings.TrimSpace(rest) != "" {
		return Encoded{}, fmt.Errorf("extra text after branch operand")
	}

	undef := target == expr.Undef
	if e.ctx.Phase == 2 && undef {
		return Encoded{}, fmt.Errorf("branch to undefined label")
	}

	locked, haveLock := 0, false
	if e.ctx.Locked != nil {
		locked, haveLock = e.ctx.Locked()
	}
	// Pass 2 only repeats an optimizer rewrite pass 1 already committed to,
	// keyed on the instruction length pass 1 locked for this PC.
	lockedShort := haveLock && locked == 2
	lockedLong := haveLock && locked >= 3

	hint := ""
	if e.ctx.Optimize && !undef {
		displ := target - (e.ctx.PC + int32(ol+ql))
		// Only a too-far-backward displacement triggers auto-widening, and
		// only a short-enough-backward one triggers auto-narrowing: a
		// forward target's final distance isn't known until its label is
		// defined, by which point this instruction's length already locked.
		switch {
		case ql == 1 && displ < -128 && oc >= 0x20 && oc < 0x30 && (e.ctx.Phase == 1 || lockedLong):
			if oc == 0x20 {
				oc, ol = 0x16, 1
			} else {
				oc |= 0x1000
				ol = 2
			}
			ql = 2
			hint = "widened to long branch"
		case ql == 2 && oc > 0x1020 && oc < 0x1030 && displ >= -128 && displ < 0 && (e.ctx.Phase == 1 || lockedShort):
			oc &= 0xff
			ol, ql = 1, 1
			hint = "narrowed to short branch"
		case ql == 2 && oc == 0x16 && displ >= -128 && displ < 0 && (e.ctx.Phase == 1 || lockedShort):
			oc, ol, ql = 0x20, 1, 1
			hint = "narrowed LBRA to BRA"
		}
	}

	il := ol + ql
	var v int32
	var displ int32
	if !undef {
		displ = target - (e.ctx.PC + int32(il))
		if ql == 1 {
			v = displ & 0xff
		} else {
			v = displ & 0xffff
		}
	}

	if e.ctx.Phase == 2 && ql == 1 && (displ < -128 || displ > 127) {
		return Encoded{}, fmt.Errorf("short branch out of range (%d)", displ)
	}

	return Encoded{
		Opcode: oc, OpcodeLen: ol, PostByte: -1,
		Value: v, OperandLen: ql, Length: il,
		Undef: undef, Hint: hint,
	}, nil
}

func (e *Encoder) encodeImmediate(entry *isa.Entry, operand string) (Encoded, error) {
	oc := entry.Opcode(isa.AMImmediate)
	if oc < 0 {
		return Encoded{}, fmt.Errorf("illegal immediate instruction %s %s", entry.Mnemonic, operand)
	}
	v, rest, _, err := e.eval(operand[1:])
	if err != nil {
		return Encoded{}, err
	}
	if strings.TrimSpace(rest) != "" {
		return Encoded{}, fmt.Errorf("extra text after operand")
	}
	ol := opcodeLen(oc)
	ql := registerSize(entry, oc)
	if ql == 4 && oc != 0xcd {
		ql = 2
	}
	undef := v == expr.Undef
	if e.ctx.Phase == 2 {
		if undef {
			return Encoded{}, fmt.Errorf("undefined immediate value")
		}
		if ql == 1 && (v < -128 || v > 255) {
			return Encoded{}, fmt.Errorf("immediate value out of range (%d)", v)
		}
		if ql == 2 && (v < -32768 || v > 0xffff) {
			return Encoded{}, fmt.Errorf("immediate value out of range (%d)", v)
		}
	}
	return Encoded{Opcode: oc, OpcodeLen: ol, PostByte: -1, Value: v, OperandLen: ql, Length: ol + ql, Undef: undef}, nil
}

// registerSize returns the width in bytes of the register an immediate
// instruction loads: 1 for an 8-bit accumulator form, 2 for 16-bit index/
// stack/D-register forms, 4 only for LDQ.
func registerSize(entry *isa.Entry, oc int32) int {
	if oc == 0xcd { // LDQ #imm32
		return 4
	}
	switch entry.Mnemonic {
	case "SUBA", "CMPA", "SBCA", "ANDA", "BITA", "LDA", "EORA", "ADCA", "ORA", "ADDA",
		"SUBB", "CMPB", "SBCB", "ANDB", "BITB", "LDB", "EORB", "ADCB", "ORB", "ADDB",
		"ORCC", "ANDCC", "CWAI", "BITMD", "LDMD", "LDE", "CMPE", "SUBE", "ADDE", "LDF", "CMPF", "SUBF", "ADDF":
		return 1
	}
	return 2
}

func (e *Encoder) encodeIndirectIndexed(entry *isa.Entry, operand string) (Encoded, error) {
	oc := entry.Opcode(isa.AMIndexed)
	if oc < 0 {
		return Encoded{}, fmt.Errorf("illegal instruction %s %s", entry.Mnemonic, operand)
	}
	inner := operand[1 : len(operand)-1]
	ol := opcodeLen(oc)
	if !strings.Contains(inner, ",") {
		v, _, _, err := e.eval(inner)
		if err != nil {
			return Encoded{}, err
		}
		return Encoded{
			Opcode: oc, OpcodeLen: ol, PostByte: 0x9f,
			Value: v, OperandLen: 2, Length: ol + 3,
		}, nil
	}
	pb, v, ql, err := e.setPostByte(inner, ol)
	if err != nil {
		return Encoded{}, err
	}
	return Encoded{
		Opcode: oc, OpcodeLen: ol, PostByte: pb | 0x10,
		Value: v, OperandLen: ql, Length: ol + 1 + ql,
	}, nil
}

// encodeBitOp handles the 6309 BAND/BIAND/BOR/BIOR/BEOR/BIEOR/LDBT/STBT
// register-bit forms: "A.3,$20.5" — bit 3 of accumulator A combined with
// bit 5 of the direct-page byte at $20.
func (e *Encoder) encodeBitOp(entry *isa.Entry, operand string) (Encoded, error) {
	oc := entry.Opcode(isa.AMDirect)
	if oc < 0 {
		return Encoded{}, fmt.Errorf("illegal bit operation %s %s", entry.Mnemonic, operand)
	}
	p := operand
	var pb int
	switch {
	case strings.HasPrefix(strings.ToUpper(p), "CC."):
		pb, p = 0x00, p[3:]
	case strings.HasPrefix(strings.ToUpper(p), "A."):
		pb, p = 0x40, p[2:]
	case strings.HasPrefix(strings.ToUpper(p), "B."):
		pb, p = 0x80, p[2:]
	default:
		return Encoded{}, fmt.Errorf("illegal register in bit operation %s %s", entry.Mnemonic, operand)
	}
	if len(p) == 0 || p[0] < '0' || p[0] > '7' {
		return Encoded{}, fmt.Errorf("illegal bit number")
	}
	pb |= int(p[0] - '0')
	comma := strings.IndexByte(p, ',')
	if comma < 0 {
		return Encoded{}, fmt.Errorf("illegal syntax in bit operand")
	}
	rest := p[comma+1:]
	dot := strings.LastIndexByte(rest, '.')
	if dot < 0 {
		return Encoded{}, fmt.Errorf("illegal syntax in bit operand")
	}
	addrText, bitText := rest[:dot], rest[dot+1:]
	v, _, _, err := e.eval(addrText)
	if err != nil {
		return Encoded{}, err
	}
	if v != expr.Undef && (v < 0 || v > 255) {
		return Encoded{}, fmt.Errorf("illegal address %d", v)
	}
	if len(bitText) == 0 || bitText[0] < '0' || bitText[0] > '7' {
		return Encoded{}, fmt.Errorf("illegal bit number")
	}
	pb |= int(bitText[0]-'0') << 3
	return Encoded{Opcode: oc, OpcodeLen: 2, PostByte: pb, Value: v, OperandLen: 1, Length: 4}, nil
}

func (e *Encoder) encodeIndexed(entry *isa.Entry, operand string) (Encoded, error) {
	oc := entry.Opcode(isa.AMIndexed)
	ol := opcodeLen(oc)
	if oc < 0 {
		return Encoded{}, fmt.Errorf("illegal indexed instruction %s %s", entry.Mnemonic, operand)
	}
	pb, v, ql, err := e.setPostByte(operand, ol)
	if err != nil {
		return Encoded{}, err
	}
	return Encoded{Opcode: oc, OpcodeLen: ol, PostByte: pb, Value: v, OperandLen: ql, Length: ol + 1 + ql}, nil
}

// encodeDirectOrExtended is the fallback path: a plain expression operand
// with no '#', '[', or ',' marking another mode. It assumes extended
// (16-bit address) unless a direct-page form exists and either the operand
// was forced low ('<'), or its value is known and shares the current
// direct page's high byte — matching the reference assembler's "don't
// guess direct page for an unresolved forward reference" caution.
func (e *Encoder) encodeDirectOrExtended(entry *isa.Entry, operand string) (Encoded, error) {
	v, rest, forced, err := e.eval(operand)
	if err != nil {
		return Encoded{}, err
	}
	_ = rest

	oc := entry.Opcode(isa.AMExtended)
	if oc < 0 {
		return Encoded{}, fmt.Errorf("illegal instruction %s %s", entry.Mnemonic, operand)
	}
	ol := opcodeLen(oc)
	ql := 2
	il := ol + 2

	if forced != expr.ForceHigh {
		dc := entry.Opcode(isa.AMDirect)
		if dc >= 0 && (forced == expr.ForceLow || (v != expr.Undef && (v>>8) == e.ctx.DP)) {
			oc = dc
			v &= 0xff
			ql = 1
			il = ol + 1
		}
	}

	hint := ""
	if e.ctx.Optimize && v != expr.Undef {
		rd := v - e.ctx.PC - 3
		if oc == 0xbd && rd >= -128 && rd < 128 {
			hint = "could use BSR instead of JSR"
		}
		if rd >= -128 && rd < 0 && oc == 0x7e {
			oc, ol, ql = 0x20, 1, 1
			il = 2
			v = rd + 1
			hint = "narrowed JMP to BRA"
		}
	}

	return Encoded{
		Opcode: oc, OpcodeLen: ol, PostByte: -1,
		Value: v, OperandLen: ql, Length: il, Undef: v == expr.Undef, Hint: hint,
	}, nil
}

// setPostByte implements the indexed-addressing post-byte algorithm: an
// optional surrounding "[...]" marks indirect mode, then the operand is one
// of the accumulator-offset forms (A,R / B,R / D,R / E,R / F,R / W,R), a
// ",PCR"/",PC" program-counter-relative reference, a zero/auto-increment-
// decrement form (",R+" ",R++" ",-R" ",--R" ",R"), or a constant offset
// (n,R) sized to 5, 8, or 16 bits depending on range and any '<'/'>' force.
// opcodeLen is the caller's already-computed instruction opcode length, used
// to turn the Locked length-lock query (a total instruction length) back
// into "was the PCR displacement locked to its long form".
func (e *Encoder) setPostByte(operand string, opcodeLen int) (postByte int, value int32, operandLen int, err error) {
	p := operand
	ind := 0
	if len(p) >= 2 && p[0] == '[' && p[len(p)-1] == ']' {
		ind = 0x10
		p = p[1 : len(p)-1]
	}

	if len(p) >= 2 && p[1] == ',' {
		var bit int
		switch p[0] {
		case 'a', 'A':
			bit = 0x06
		case 'b', 'B':
			bit = 0x05
		case 'd', 'D':
			bit = 0x0b
		case 'e', 'E':
			bit = 0x07
		case 'f', 'F':
			bit = 0x0a
		case 'w', 'W':
			bit = 0x0e
		}
		if bit != 0 {
			reg, err := postIndexReg(p[2:])
			if err != nil {
				return 0, 0, 0, err
			}
			return 0x80 | reg | ind | bit, 0, 0, nil
		}
	}

	upper := strings.ToUpper(p)
	if strings.HasSuffix(upper, ",PCR") || strings.HasSuffix(upper, ",PC") {
		cut := len(p) - 4
		if strings.HasSuffix(upper, ",PC") {
			cut = len(p) - 3
		}
		off, rest, _, err := e.eval(p[:cut])
		if err != nil {
			return 0, 0, 0, err
		}
		_ = rest
		if off == expr.Undef {
			return 0x8d | ind, 0, 2, nil
		}
		off -= e.ctx.PC + int32(opcodeLen) + 2
		// The instruction's locked total length is opcodeLen + 1 (post byte) +
		// displacement width; a locked length longer than the short form's
		// opcodeLen+2 means pass 1 committed to the 16-bit displacement.
		lockedLong := false
		if e.ctx.Locked != nil {
			if n, ok := e.ctx.Locked(); ok {
				lockedLong = n > opcodeLen+2
			}
		}
		if off >= -128 && off < 128 && (e.ctx.Phase == 1 || !lockedLong) {
			return 0x8c | ind, off & 0xff, 1, nil
		}
		return 0x8d | ind, (off - 1) & 0xffff, 2, nil
	}

	var off int32
	rest := p
	forced := expr.ForceNone
	if len(p) == 0 || p[0] != ',' {
		v, r, f, err := e.eval(p)
		if err != nil {
			return 0, 0, 0, err
		}
		off, rest, forced = v, r, f
	}

	if len(rest) > 0 && rest[0] == ',' && off == 0 {
		i := 1
		dec := 0
		for i < len(rest) && rest[i] == '-' {
			dec++
			i++
		}
		if i >= len(rest) {
			return 0, 0, 0, fmt.Errorf("missing index register")
		}
		reg, isW, err := postIndexW(rest[i])
		if err != nil {
			return 0, 0, 0, err
		}
		i++
		inc := 0
		for i < len(rest) && rest[i] == '+' {
			inc++
			i++
		}
		var amo int
		switch {
		case inc == 1 && dec == 0:
			amo = 0x00
		case inc == 2 && dec == 0:
			amo = 0x01
		case inc == 0 && dec == 1:
			amo = 0x02
		case inc == 0 && dec == 2:
			amo = 0x03
		case inc == 0 && dec == 0:
			amo = 0x04
		default:
			return 0, 0, 0, fmt.Errorf("illegal auto increment/decrement combination")
		}
		if isW {
			switch amo {
			case 0x04:
				reg = 0x8f
			case 0x01:
				reg = 0xcf
			case 0x03:
				reg = 0xef
			default:
				return 0, 0, 0, fmt.Errorf("illegal auto increment/decrement for W register")
			}
			if ind != 0 {
				reg++
			}
			return reg, 0, 0, nil
		}
		return 0x80 | reg | ind | amo, 0, 0, nil
	}

	if len(rest) > 0 && rest[0] == ',' {
		reg, isW, err := postIndexW(rest[1])
		if err != nil {
			return 0, 0, 0, err
		}
		if len(rest) > 2 {
			return 0, 0, 0, fmt.Errorf("extra text after index register")
		}
		if isW {
			if ind != 0 {
				return 0xb0, off, 2, nil
			}
			return 0xaf, off, 2, nil
		}
		if forced != expr.ForceHigh && off >= -16 && off < 16 && ind == 0 {
			return reg | (int(off) & 0x1f), 0, 0, nil
		}
		if forced == expr.ForceLow || (off >= -128 && off < 128) {
			return 0x80 | reg | ind | 0x08, off & 0xff, 1, nil
		}
		return 0x80 | reg | ind | 0x09, off & 0xffff, 2, nil
	}

	return 0, 0, 0, fmt.Errorf("illegal indexed operand %q", operand)
}

// postIndex maps a single index-register suffix letter to its post-byte
// register-select bits: X=0x00, Y=0x20, U=0x40, S=0x60.
func postIndex(c byte) (int, error) {
	switch c {
	case 'x', 'X':
		return 0x00, nil
	case 'y', 'Y':
		return 0x20, nil
	case 'u', 'U':
		return 0x40, nil
	case 's', 'S':
		return 0x60, nil
	}
	return 0, fmt.Errorf("illegal index register %q", c)
}

// postIndexReg requires an index-register suffix and nothing else after it.
func postIndexReg(s string) (int, error) {
	if len(s) != 1 {
		return 0, fmt.Errorf("illegal index register suffix %q", s)
	}
	return postIndex(s[0])
}

// postIndexW recognizes the W-register special forms in addition to the
// ordinary X/Y/U/S suffixes.
func postIndexW(c byte) (reg int, isW bool, err error) {
	if c == 'w' || c == 'W' {
		return 0xf, true, nil
	}
	reg, err = postIndex(c)
	return reg, false, err
}

func opcodeLen(oc int32) int {
	if oc > 255 {
		return 2
	}
	return 1
}

func scanPushList(operand string) (int, error) {
	if strings.EqualFold(strings.TrimSpace(operand), "ALL") {
		return 0xff, nil
	}
	mask := 0
	p := operand
	for len(p) > 0 {
		matched := false
		for i := len(isa.PushList) - 1; i >= 0; i-- {
			entry := isa.PushList[i]
			if hasWordPrefix(p, entry.Reg) {
				mask |= int(entry.Bit)
				p = strings.TrimSpace(p[len(entry.Reg):])
				matched = true
				break
			}
		}
		if !matched {
			return 0, fmt.Errorf("illegal register in push/pull list: %q", p)
		}
		if len(p) > 0 && p[0] != ',' {
			return 0, fmt.Errorf("syntax error in operand")
		}
		if len(p) > 0 {
			p = strings.TrimSpace(p[1:])
		}
	}
	return mask, nil
}

func hasWordPrefix(s, word string) bool {
	if len(s) < len(word) {
		return false
	}
	return strings.EqualFold(s[:len(word)], word)
}
