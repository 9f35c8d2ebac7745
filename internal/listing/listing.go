// Package listing formats the two human-readable reports the assembler
// produces alongside its binary output: the per-line assembly listing (PC,
// encoded bytes, and source text) and the symbol cross-reference dump.
package listing

import (
	"fmt"
	"io"
	"sort"

	"github.com/motoxas/bs09/internal/symtab"
)

// Line is one reported line of the assembly listing. Bytes holds whatever
// was actually encoded for the line (nil for a line that produced no code,
// such as a comment, a label-only line, or a directive with no output).
// Hint carries an optional trailing annotation (a branch-optimizer rewrite,
// an injected NOP count) appended after the source text.
type Line struct {
	LineNo int
	PC     int32
	Bytes  []byte
	Source string
	Hint   string
}

// maxListedBytes caps how many encoded bytes are shown inline; a directive
// emitting more (FCB lists, FCC strings) is truncated with a trailing
// ellipsis, matching the fixed-width hex column of the reference listing.
const maxListedBytes = 8

// Writer accumulates listing lines and writes them out in the reference
// column layout: line number, PC, up to maxListedBytes hex bytes, then the
// original source text.
type Writer struct {
	w          io.Writer
	withLineNo bool
	err        error

	formLen  int // FORMLN page size, 0 disables pagination
	rowCount int
}

// New returns a Writer. withLineNo mirrors the WithLiNo option, which
// prefixes every line with its source line number.
func New(w io.Writer, withLineNo bool) *Writer {
	return &Writer{w: w, withLineNo: withLineNo}
}

// SetFormLen sets the page-break interval implementing the FORMLN directive:
// every n emitted lines, a form-feed marker is inserted. n <= 0 disables
// pagination.
func (wr *Writer) SetFormLen(n int) {
	wr.formLen = n
	wr.rowCount = 0
}

func (wr *Writer) maybeBreakPage() {
	if wr.formLen <= 0 || wr.err != nil {
		return
	}
	wr.rowCount++
	if wr.rowCount >= wr.formLen {
		wr.rowCount = 0
		_, wr.err = fmt.Fprintln(wr.w, "\f")
	}
}

// Emit writes one listing line.
func (wr *Writer) Emit(l Line) {
	if wr.err != nil {
		return
	}
	defer wr.maybeBreakPage()
	var line string
	if wr.withLineNo {
		line += fmt.Sprintf("%5d ", l.LineNo)
	}
	if l.Bytes == nil {
		line += fmt.Sprintf("                  %s", l.Source)
	} else {
		hex := ""
		n := len(l.Bytes)
		truncated := n > maxListedBytes
		if truncated {
			n = maxListedBytes
		}
		for i := 0; i < n; i++ {
			if i > 0 {
				hex += " "
			}
			hex += fmt.Sprintf("%02X", l.Bytes[i])
		}
		if truncated {
			hex += "..."
		}
		line += fmt.Sprintf("%04X  %-24s %s", uint16(l.PC), hex, l.Source)
	}
	if l.Hint != "" {
		line += " ; " + l.Hint
	}
	_, wr.err = fmt.Fprintln(wr.w, line)
}

// EmitRaw writes a line verbatim, for passthrough text that carries no
// address or encoded bytes (conditional-assembly markers, INCLUDE
// open/close notices, macro-expansion echoes).
func (wr *Writer) EmitRaw(text string) {
	if wr.err != nil {
		return
	}
	defer wr.maybeBreakPage()
	_, wr.err = fmt.Fprintln(wr.w, text)
}

// Err returns the first write error encountered, if any.
func (wr *Writer) Err() error { return wr.err }

// byAddress and byRefCount implement the two cross-reference sort orders
// the reference assembler produces: once by ascending address, once by
// descending reference count (ties broken by descending address).
type byAddress []*symtab.Symbol

func (s byAddress) Len() int      { return len(s) }
func (s byAddress) Swap(i, j int) { s[i], s[j] = s[j], s[i] }
func (s byAddress) Less(i, j int) bool {
	return s[i].Value < s[j].Value
}

type byRefCount []*symtab.Symbol

func (s byRefCount) Len() int      { return len(s) }
func (s byRefCount) Swap(i, j int) { s[i], s[j] = s[j], s[i] }
func (s byRefCount) Less(i, j int) bool {
	ni, nj := len(s[i].References), len(s[j].References)
	if ni == nj {
		return s[i].Value > s[j].Value
	}
	return ni > nj
}

// SortByAddress orders syms by ascending symbol value, in place.
func SortByAddress(syms []*symtab.Symbol) { sort.Sort(byAddress(syms)) }

// SortByRefCount orders syms by descending reference count, in place.
func SortByRefCount(syms []*symtab.Symbol) { sort.Sort(byRefCount(syms)) }

// refsPerRow is how many reference line numbers are packed onto one row of
// the cross-reference table before wrapping to a continuation line.
const refsPerRow = 5

// WriteSymbolTable writes syms (already sorted into the desired order by
// SortByAddress or SortByRefCount) as a name/value/reference-list table,
// restricted to symbols whose value falls within [lb, ub]. isDefiningRef,
// when non-nil, marks which referencing line numbers were a defining occurrence
// (printed with a trailing 'D') rather than a plain use.
func WriteSymbolTable(w io.Writer, syms []*symtab.Symbol, lb, ub int32, isDefiningRef func(sym *symtab.Symbol, line int) bool) error {
	for _, sym := range syms {
		if sym.Value < lb || sym.Value > ub {
			continue
		}
		if _, err := fmt.Fprintf(w, "%-30.30s $%04X", sym.Name, uint16(sym.Value)); err != nil {
			return err
		}
		for j, ref := range sym.References {
			if j > 0 && j%refsPerRow == 0 {
				if _, err := fmt.Fprint(w, "\n                                    "); err != nil {
					return err
				}
			}
			if _, err := fmt.Fprintf(w, "%6d", ref); err != nil {
				return err
			}
			if isDefiningRef != nil && isDefiningRef(sym, ref) {
				if _, err := fmt.Fprint(w, "D"); err != nil {
					return err
				}
			}
		}
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
	}
	return nil
}

// WriteUndefined reports every symbol in syms that was referenced but never
// defined, one per line, and returns their count.
func WriteUndefined(w io.Writer, syms []*symtab.Symbol) int {
	n := 0
	for _, sym := range syms {
		if sym.Defined {
			continue
		}
		fmt.Fprintf(w, "* Undefined   : %-25.25s *\n", sym.Name)
		n++
	}
	return n
}
