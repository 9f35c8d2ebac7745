// Package engine drives the two-pass assembly process: it owns the mutable
// state a pass accumulates (program counter, BSS counter, CPU mode, direct
// page, symbol table, conditional/macro/include stacks, the 64K ROM image
// and its two lock tables) and dispatches each source line to either a
// directive handler or the instruction encoder.
package engine

import (
	"fmt"
	"io"
	"strings"

	"github.com/motoxas/bs09/internal/asmerr"
	"github.com/motoxas/bs09/internal/cond"
	"github.com/motoxas/bs09/internal/encoder"
	"github.com/motoxas/bs09/internal/expr"
	"github.com/motoxas/bs09/internal/isa"
	"github.com/motoxas/bs09/internal/listing"
	"github.com/motoxas/bs09/internal/macro"
	"github.com/motoxas/bs09/internal/source"
	"github.com/motoxas/bs09/internal/symtab"
)

// defaultErrorCap mirrors the reference assembler's ERRMAX: assembly stops
// once this many errors have been reported in a single pass.
const defaultErrorCap = 10

// undef is the program counter's value at the start of each pass, before any
// ORG. It equals expr.Undef, so a '*' reference or an instruction placed
// ahead of the first ORG evaluates as undefined.
const undef int32 = 0x00FF0000

// Options configures an assembly run; every field defaults to the reference
// assembler's own default.
type Options struct {
	CPU        isa.CPU
	Optimize   bool
	WithLiNo   bool
	FoldCase   bool
	ErrorCap   int
	ListWriter io.Writer

	// PreprocessWriter, when set, receives every effective source line (in
	// final, macro-expanded form; conditionally skipped lines and macro
	// body definitions excluded) during pass 2, mirroring -p.
	PreprocessWriter io.Writer

	// OptHintWriter, when set, receives one line per peephole-optimizer
	// rewrite applied during pass 2, mirroring -o's basename.opt output.
	OptHintWriter io.Writer

	// MotorolaStyle mirrors -m: an unquoted blank ends the operand field
	// instead of being legal inside it.
	MotorolaStyle bool

	// SkipHex mirrors -x: strip the leading hex-dump columns a previous
	// listing left on each source line before parsing it, so a listing can
	// be fed back in as source.
	SkipHex bool
}

// StoreRequest is one registered STORE directive, executed after pass 2
// completes successfully.
type StoreRequest struct {
	Start  int32
	Length int32
	Path   string
	SRec   bool
	Entry  int32 // -1 if none
}

// Assembler holds every piece of process-wide state for one assembly run.
// It is used from a single goroutine; there is no internal locking.
type Assembler struct {
	opt Options

	syms   *symtab.Table
	macros *macro.Table
	conds  *cond.Stack

	rom    [0x10000]byte
	locked [0x10000]bool  // byte-level write-once lock (LOCK in the reference)
	adl    [0x10000]int16 // per-PC instruction-length lock (ADL in the reference)

	pc        int32
	bss       int32
	cpu       isa.CPU
	dp        int32
	phase     int
	enumValue int32
	listOn    bool
	caseFold  bool
	genEnd    int32
	moduleLab string

	reader      *source.Reader
	macroStack  []*macro.Frame
	recordingTo *macroRecorder

	errCount  int
	forcedEnd bool

	lst     *listing.Writer
	storeQ  []StoreRequest
	diags   []asmerr.Diagnostic
	lastErr error

	liNo int
}

// macroRecorder buffers the body lines of a MACRO/ENDM block being defined.
type macroRecorder struct {
	name   string
	params []string
	style  macro.CallStyle
	lines  []string
}

// New returns an Assembler configured by opt. Call Run with a source file
// path to execute both passes.
func New(opt Options) *Assembler {
	if opt.ErrorCap <= 0 {
		opt.ErrorCap = defaultErrorCap
	}
	a := &Assembler{
		opt:    opt,
		syms:   symtab.NewTable(opt.FoldCase),
		macros: macro.NewTable(),
		conds:  cond.New(),
		cpu:    opt.CPU,
		dp:     0,
	}
	for i := range a.adl {
		a.adl[i] = 0
	}
	return a
}

// Diagnostics returns every error/warning raised during the run.
func (a *Assembler) Diagnostics() []asmerr.Diagnostic { return a.diags }

// StoreRequests returns the STORE directives registered during pass 2.
func (a *Assembler) StoreRequests() []StoreRequest { return a.storeQ }

// ROM returns the assembled memory image and its write-lock map, for callers
// that need to read back assembled bytes directly (STORE execution, `-d`
// dumps).
func (a *Assembler) ROM() (*[0x10000]byte, *[0x10000]bool) { return &a.rom, &a.locked }

// Symbols exposes the symbol table for listing's cross-reference dump.
func (a *Assembler) Symbols() *symtab.Table { return a.syms }

// PresetROM fills the entire memory image with b before assembly starts,
// mirroring the -l command-line option. The fill is unlocked: ordinary
// assembly output still overwrites it freely.
func (a *Assembler) PresetROM(b byte) {
	for i := range a.rom {
		a.rom[i] = b
	}
}

// DefineSymbol pre-defines a locked constant before Run is called, mirroring
// a repeatable -D name=expr command-line option. value is evaluated as an
// ordinary expression against the (currently empty) symbol table, so it may
// only reference earlier -D definitions, not labels from the source file.
func (a *Assembler) DefineSymbol(name, value string) error {
	if value == "" {
		value = "1"
	}
	v, _, err := a.evalFull(value)
	if err != nil {
		return fmt.Errorf("-D %s: %w", name, err)
	}
	return a.syms.Define(name, v, true)
}

// resolverAdapter satisfies expr.Resolver against the assembler's own state.
type resolverAdapter struct{ a *Assembler }

func (r resolverAdapter) Symbol(name string) (int32, bool) { return r.a.syms.Lookup(name) }
func (r resolverAdapter) PC() int32                        { return r.a.pc }
func (r resolverAdapter) SymBytes(name string) (int32, bool) {
	return r.a.syms.SymBytes(name)
}

// Run executes pass 1 then pass 2 against the named top-level source file,
// and finally reports any symbol left undefined. STORE requests are only
// queued (see StoreRequests); Run does not write them.
func (a *Assembler) Run(path string) error {
	if err := a.runPass(1, path); err != nil {
		return err
	}
	if a.errCount > 0 {
		return fmt.Errorf("%d error(s) during pass 1, assembly aborted", a.errCount)
	}
	a.syms.ResetPass()
	if err := a.runPass(2, path); err != nil {
		return err
	}
	a.listUndefined()
	if a.errCount > 0 {
		return fmt.Errorf("%d error(s) during assembly, no output written", a.errCount)
	}
	return nil
}

func (a *Assembler) runPass(phase int, path string) error {
	a.phase = phase
	a.pc = undef
	a.bss = 0
	a.enumValue = -1
	a.forcedEnd = false
	a.errCount = 0
	a.liNo = 0
	a.genEnd = 0
	a.syms.SetScope("")
	a.conds.Reset()
	a.macroStack = nil

	if phase == 2 {
		a.cpu = isa.CPU6309
		a.listOn = true
		w := a.opt.ListWriter
		if w == nil {
			w = io.Discard
		}
		a.lst = listing.New(w, a.opt.WithLiNo)
	} else {
		a.cpu = a.opt.CPU
		a.listOn = false
		a.lst = listing.New(io.Discard, false)
	}

	r, err := source.Open(path)
	if err != nil {
		return err
	}
	a.reader = r
	defer a.reader.Close()

	for {
		line, ok, err := a.nextLine()
		if err != nil {
			return err
		}
		if !ok {
			break
		}
		if len(a.macroStack) == 0 {
			a.liNo++
		}
		if err := a.processLine(line); err != nil {
			a.reportFatal(err)
			return a.lastErr
		}
		if a.pc > a.genEnd {
			a.genEnd = a.pc
		}
		if a.forcedEnd || a.errCount >= a.opt.ErrorCap {
			break
		}
	}
	return nil
}

func (a *Assembler) nextLine() (string, bool, error) {
	for len(a.macroStack) > 0 {
		top := a.macroStack[len(a.macroStack)-1]
		if line, ok := top.Next(); ok {
			return line, true, nil
		}
		a.macroStack = a.macroStack[:len(a.macroStack)-1]
	}
	if a.reader == nil {
		return "", false, nil
	}
	return a.reader.Next()
}

func (a *Assembler) currentFile() string {
	if a.reader == nil {
		return ""
	}
	return a.reader.File()
}

func (a *Assembler) reportFatal(err error) {
	diag := asmerr.New(asmerr.KindInternal, a.currentFile(), a.liNo, 0, "%s", err)
	a.diags = append(a.diags, diag)
	a.errCount++
	a.lastErr = diag
}

func (a *Assembler) reportError(kind asmerr.Kind, format string, args ...any) error {
	diag := asmerr.New(kind, a.currentFile(), a.liNo, 0, format, args...)
	a.diags = append(a.diags, diag)
	a.errCount++
	if a.lst != nil {
		a.lst.EmitRaw(diag.Error())
	}
	return nil
}

func (a *Assembler) listUndefined() {
	for _, sym := range a.syms.All() {
		if !sym.Defined {
			a.reportError(asmerr.KindUndefined, "undefined symbol %q", sym.Name)
		}
	}
}

// processLine is the per-line dispatch: conditional assembly gate, local
// anonymous labels, pseudo-ops, label definitions, then instruction
// encoding. It mirrors the reference assembler's ParseLine control flow,
// restructured as early returns instead of goto-free spaghetti.
func (a *Assembler) processLine(raw string) error {
	original := raw
	if a.opt.SkipHex {
		raw = stripHexEcho(raw)
	}
	cp := source.StripComment(raw)

	// While recording a macro body, every line is buffered verbatim (except
	// the terminating ENDM) rather than dispatched as a live statement:
	// conditional assembly, labels, and directives inside a macro only take
	// effect once the body is expanded at a call site, not while its text
	// is merely being captured.
	if a.recordingTo != nil {
		return a.recordMacroLine(cp, original)
	}

	if handled, err := a.checkConditional(cp); handled {
		return err
	}
	if a.conds.Skipping() {
		a.lst.EmitRaw(fmt.Sprintf("SKIP          %s", original))
		return nil
	}
	if a.phase == 2 && a.opt.PreprocessWriter != nil {
		fmt.Fprintln(a.opt.PreprocessWriter, original)
	}

	trimmed := strings.TrimSpace(cp)
	if trimmed == "" {
		a.lst.Emit(listing.Line{LineNo: a.liNo, Source: original})
		return nil
	}
	if trimmed[0] == ';' || trimmed[0] == '*' {
		a.lst.Emit(listing.Line{LineNo: a.liNo, Source: original})
		return nil
	}

	if cp2, handled, err := a.checkLocalLabel(cp); handled {
		cp = cp2
		if err != nil {
			return nil
		}
	}

	noIndent := len(cp) > 0 && cp[0] != ' ' && cp[0] != '\t'
	trimmedCp := strings.TrimLeft(cp, " \t")
	if trimmedCp == "" {
		a.lst.Emit(listing.Line{LineNo: a.liNo, PC: a.pc, Source: original})
		return nil
	}

	if trimmedCp[0] == '*' {
		return a.dispatchSetPC(trimmedCp[1:], original)
	}
	if trimmedCp[0] == '&' {
		return a.dispatchSetBSS(trimmedCp[1:], original)
	}

	if word, rest, ok := matchKeyword(trimmedCp); ok {
		if h, err := a.dispatchDirective(word, a.truncateOperand(rest), original); h {
			return err
		}
	}

	var label string
	if noIndent && isLabelStart(trimmedCp[0]) {
		label, trimmedCp = scanIdent(trimmedCp)
		trimmedCp = strings.TrimPrefix(trimmedCp, ":")
		trimmedCp = strings.TrimLeft(trimmedCp, " \t")
	}

	// A label followed by MACRO names the macro being defined; it must not
	// fall through to the ordinary address-label path below.
	if label != "" && matchWord(strings.ToUpper(trimmedCp), "MACRO") {
		return a.beginMacro(label, trimmedCp, original)
	}

	if label != "" {
		if handled, err := a.dispatchLabelDefinition(label, trimmedCp, original); handled {
			if err != nil {
				return nil
			}
			trimmedCp = ""
		}
	}

	if trimmedCp == "" {
		a.lst.Emit(listing.Line{LineNo: a.liNo, PC: a.pc, Source: original})
		return nil
	}
	if word, rest, ok := matchKeyword(trimmedCp); ok {
		if h, err := a.dispatchDirective(word, a.truncateOperand(rest), original); h {
			return err
		}
	}
	if matchWord(strings.ToUpper(trimmedCp), "MACRO") {
		return a.beginMacro("", trimmedCp, original)
	}

	mnemonic, operand := splitMnemonic(trimmedCp)
	operand = a.truncateOperand(operand)
	mu := strings.ToUpper(mnemonic)
	if m, ok := a.macros.Lookup(mu); ok {
		return a.expandMacroCall(m, operand)
	}
	entry := isa.Lookup(mu)
	if entry == nil {
		a.reportError(asmerr.KindSyntax, "unknown mnemonic or directive %q", mnemonic)
		return nil
	}
	return a.encodeInstruction(entry, operand, original)
}

func stripHexEcho(line string) string {
	out, _ := source.SkipHexColumns(line, true)
	return out
}

func isLabelStart(c byte) bool {
	return c == '_' || c == '.' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentChar(c byte) bool {
	return isLabelStart(c) || (c >= '0' && c <= '9')
}

func scanIdent(s string) (ident, rest string) {
	i := 1
	for i < len(s) && isIdentChar(s[i]) {
		i++
	}
	return s[:i], s[i:]
}

// matchKeyword reports whether trimmed starts with a whole directive
// keyword (case-insensitive, followed by a non-identifier character or end
// of string), returning that keyword in canonical upper case plus the
// unconsumed remainder.
func matchKeyword(trimmed string) (keyword, rest string, ok bool) {
	upper := strings.ToUpper(trimmed)
	for kw := range directiveTab {
		if strings.HasPrefix(upper, kw) {
			n := len(kw)
			if n == len(trimmed) || !isIdentChar(trimmed[n]) {
				return kw, strings.TrimLeft(trimmed[n:], " \t"), true
			}
		}
	}
	return "", trimmed, false
}

// truncateOperand implements -m: in Motorola source style, an unquoted blank
// ends the operand field; anything after it is ignored rather than parsed.
func (a *Assembler) truncateOperand(s string) string {
	if !a.opt.MotorolaStyle {
		return s
	}
	var inQuote byte
	for i := 0; i < len(s); i++ {
		c := s[i]
		if inQuote != 0 {
			if c == inQuote {
				inQuote = 0
			}
			continue
		}
		switch c {
		case '"', '\'':
			inQuote = c
		case ' ', '\t':
			return s[:i]
		}
	}
	return s
}

func splitMnemonic(s string) (mnemonic, operand string) {
	i := 0
	for i < len(s) && isIdentChar(s[i]) {
		i++
	}
	return s[:i], strings.TrimSpace(s[i:])
}

// eval evaluates an expression against the assembler's current symbol
// table. An undefined symbol yields expr.Undef rather than an error; the
// caller decides whether that is acceptable (encodeInstruction reports it
// as an error in phase 2).
func (a *Assembler) eval(s string) (int32, string, expr.ForcedMode, error) {
	ev := expr.NewEvaluator(s, resolverAdapter{a})
	v, rest, err := ev.Parse()
	if err != nil {
		return 0, rest, ev.Forced, err
	}
	return v, rest, ev.Forced, nil
}

func (a *Assembler) evalFull(s string) (int32, expr.ForcedMode, error) {
	v, rest, forced, err := a.eval(s)
	if err != nil {
		return 0, forced, err
	}
	if strings.TrimSpace(rest) != "" {
		return 0, forced, fmt.Errorf("extra text after expression: %q", rest)
	}
	return v, forced, nil
}

// put stores one byte at address i, honoring the write-once lock: a second
// write to an already-locked address is only legal if it deposits the same
// value pass 1 (or an earlier statement this pass) already committed.
func (a *Assembler) put(i int32, v byte) error {
	if i < 0 || i >= 0x10000 {
		return fmt.Errorf("program counter overflow at %04X", uint16(i))
	}
	if a.locked[i] && a.rom[i] != v {
		return fmt.Errorf("tried to overwrite address %04X", uint16(i))
	}
	a.rom[i] = v
	a.locked[i] = true
	return nil
}

// lockLength records the instruction length observed at pc during pass 1,
// failing if that address already holds a different locked length (the
// same address assembled twice with instructions of different lengths).
func (a *Assembler) lockLength(pc int32, length int) error {
	if pc < 0 || pc >= 0x10000 {
		return nil
	}
	cur := a.adl[pc]
	if cur != 0 && int(cur) != length {
		return fmt.Errorf("phase error at %04X: length was %d, now %d", uint16(pc), cur, length)
	}
	a.adl[pc] = int16(length)
	for i := 1; i < length; i++ {
		a.adl[pc+int32(i)] = -1
	}
	return nil
}

func (a *Assembler) lockedLength(pc int32) (int, bool) {
	if pc < 0 || pc >= 0x10000 {
		return 0, false
	}
	v := a.adl[pc]
	if v <= 0 {
		return 0, false
	}
	return int(v), true
}

// encodeInstruction translates a "-"/"+" local-label chain operand (which
// the expression evaluator cannot parse on its own — it is not an
// identifier) into the resolved address before handing the operand to the
// encoder, then emits the encoded bytes, padding with NOP if pass 1 locked
// a longer instruction at this PC than pass 2 now produces.
func (a *Assembler) encodeInstruction(entry *isa.Entry, operand, original string) error {
	if !entry.AvailableOn(a.cpu) {
		return a.reportError(asmerr.KindOperand, "mnemonic %s not available on selected CPU", entry.Mnemonic)
	}
	operand = a.rewriteLocalLabelOperand(entry, operand)

	ctx := encoder.Context{
		CPU: a.cpu, PC: a.pc, DP: a.dp, Phase: a.phase, Optimize: a.opt.Optimize,
		Locked: func() (int, bool) { return a.lockedLength(a.pc) },
	}
	enc, err := encoder.New(ctx, resolverAdapter{a}).Encode(entry, operand)
	if err != nil {
		return a.reportError(asmerr.KindOperand, "%s", err)
	}
	if a.phase == 2 && enc.Undef {
		return a.reportError(asmerr.KindUndefined, "undefined operand in %s %s", entry.Mnemonic, operand)
	}

	if a.phase == 1 {
		if err := a.lockLength(a.pc, enc.Length); err != nil {
			return a.reportError(asmerr.KindInternal, "%s", err)
		}
		a.pc += int32(enc.Length)
		a.lst.Emit(listing.Line{LineNo: a.liNo, PC: a.pc, Source: original})
		return nil
	}

	bytes := a.renderBytes(enc)
	locked, have := a.lockedLength(a.pc)
	nops := 0
	if have {
		nops = locked - enc.Length
	}
	for i, b := range bytes {
		if err := a.put(a.pc+int32(i), b); err != nil {
			return a.reportError(asmerr.KindRange, "%s", err)
		}
	}
	for i := 0; i < nops; i++ {
		if err := a.put(a.pc+int32(len(bytes)+i), 0x12); err != nil {
			return a.reportError(asmerr.KindRange, "%s", err)
		}
	}
	startPC := a.pc
	a.pc += int32(enc.Length + nops)
	hint := enc.Hint
	if nops > 0 {
		hint = strings.TrimSpace(fmt.Sprintf("%s padded with %d NOP", hint, nops))
	}
	a.lst.Emit(listing.Line{LineNo: a.liNo, PC: startPC, Bytes: append(bytes, repeatByte(0x12, nops)...), Source: original, Hint: hint})
	if enc.Hint != "" && a.opt.OptHintWriter != nil {
		fmt.Fprintf(a.opt.OptHintWriter, "%04X: %s\n", uint16(startPC), enc.Hint)
	}
	return nil
}

func repeatByte(b byte, n int) []byte {
	out := make([]byte, n)
	for i := range out {
		out[i] = b
	}
	return out
}

// renderBytes assembles an Encoded result into its final byte sequence:
// opcode, optional inserted immediate-to-memory byte, optional post-byte,
// then the big-endian operand value.
func (a *Assembler) renderBytes(enc encoder.Encoded) []byte {
	var out []byte
	if enc.OpcodeLen == 2 {
		out = append(out, byte(enc.Opcode>>8), byte(enc.Opcode))
	} else {
		out = append(out, byte(enc.Opcode))
	}
	if enc.HasImmPrefix {
		out = append(out, byte(enc.ImmByte))
	}
	if enc.PostByte >= 0 {
		out = append(out, byte(enc.PostByte))
	}
	switch enc.OperandLen {
	case 1:
		out = append(out, byte(enc.Value))
	case 2:
		out = append(out, byte(enc.Value>>8), byte(enc.Value))
	case 4:
		out = append(out, byte(enc.Value>>24), byte(enc.Value>>16), byte(enc.Value>>8), byte(enc.Value))
	}
	return out
}

// rewriteLocalLabelOperand replaces a bare run of '-'/'+' characters (the
// nearest-anonymous-label convention) with the decimal address it resolves
// to, since the expression evaluator only understands named symbols.
func (a *Assembler) rewriteLocalLabelOperand(entry *isa.Entry, operand string) string {
	if !entry.Supports(isa.AMRelative) {
		return operand
	}
	depth, backward := symtab.DepthOfLocalLabel(strings.TrimSpace(operand))
	if depth == 0 {
		return operand
	}
	var addr int32
	var ok bool
	if backward {
		addr, ok = a.syms.ResolveBackward(depth)
	} else {
		addr, ok = a.syms.ResolveForward(depth, a.pc)
	}
	if !ok {
		return fmt.Sprintf("%d", expr.Undef)
	}
	return fmt.Sprintf("%d", addr)
}
