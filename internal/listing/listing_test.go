package listing

import (
	"bytes"
	"strings"
	"testing"

	"github.com/motoxas/bs09/internal/symtab"
)

func TestEmitWithBytes(t *testing.T) {
	var buf bytes.Buffer
	w := New(&buf, false)
	w.Emit(Line{PC: 0x1000, Bytes: []byte{0x86, 0x42}, Source: "\tLDA #$42"})
	if err := w.Err(); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if !strings.Contains(out, "1000") || !strings.Contains(out, "86 42") || !strings.Contains(out, "LDA #$42") {
		t.Errorf("got %q", out)
	}
}

func TestEmitLabelOnlyLine(t *testing.T) {
	var buf bytes.Buffer
	w := New(&buf, false)
	w.Emit(Line{Source: "LOOP:"})
	if !strings.Contains(buf.String(), "LOOP:") {
		t.Errorf("got %q", buf.String())
	}
}

func TestEmitTruncatesLongByteRuns(t *testing.T) {
	var buf bytes.Buffer
	w := New(&buf, false)
	w.Emit(Line{PC: 0, Bytes: []byte{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, Source: "FCB ..."})
	if !strings.Contains(buf.String(), "...") {
		t.Errorf("expected truncation marker, got %q", buf.String())
	}
}

func TestEmitWithLineNumbers(t *testing.T) {
	var buf bytes.Buffer
	w := New(&buf, true)
	w.Emit(Line{LineNo: 42, Source: "; comment"})
	if !strings.HasPrefix(buf.String(), "   42 ") {
		t.Errorf("got %q", buf.String())
	}
}

func TestEmitHintAppended(t *testing.T) {
	var buf bytes.Buffer
	w := New(&buf, false)
	w.Emit(Line{PC: 0, Bytes: []byte{0x16}, Source: "LBRA FAR", Hint: "widened to long branch"})
	if !strings.Contains(buf.String(), "widened to long branch") {
		t.Errorf("got %q", buf.String())
	}
}

func newSym(name string, value int32, refs ...int) *symtab.Symbol {
	return &symtab.Symbol{Name: name, Value: value, Defined: true, References: refs}
}

func TestSortByAddress(t *testing.T) {
	syms := []*symtab.Symbol{newSym("B", 0x20), newSym("A", 0x10)}
	SortByAddress(syms)
	if syms[0].Name != "A" || syms[1].Name != "B" {
		t.Errorf("got order %v, %v", syms[0].Name, syms[1].Name)
	}
}

func TestSortByRefCount(t *testing.T) {
	syms := []*symtab.Symbol{newSym("FEW", 0x10, 1), newSym("MANY", 0x20, 1, 2, 3)}
	SortByRefCount(syms)
	if syms[0].Name != "MANY" {
		t.Errorf("expected MANY first, got %v", syms[0].Name)
	}
}

func TestSortByRefCountTiesByDescendingAddress(t *testing.T) {
	syms := []*symtab.Symbol{newSym("LOW", 0x10, 1), newSym("HIGH", 0x20, 1)}
	SortByRefCount(syms)
	if syms[0].Name != "HIGH" {
		t.Errorf("expected HIGH first on tie, got %v", syms[0].Name)
	}
}

func TestWriteSymbolTableRespectsRange(t *testing.T) {
	var buf bytes.Buffer
	syms := []*symtab.Symbol{newSym("IN", 0x100, 5), newSym("OUT", 0x5000, 6)}
	if err := WriteSymbolTable(&buf, syms, 0, 0x1000, nil); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if !strings.Contains(out, "IN") || strings.Contains(out, "OUT") {
		t.Errorf("got %q", out)
	}
}

func TestWriteSymbolTableWrapsReferences(t *testing.T) {
	var buf bytes.Buffer
	sym := newSym("MANY", 0x10, 1, 2, 3, 4, 5, 6)
	if err := WriteSymbolTable(&buf, []*symtab.Symbol{sym}, 0, 0xffff, nil); err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected wrap to 2 lines after 5 refs, got %d: %q", len(lines), lines)
	}
}

func TestWriteSymbolTableMarksDefiningRef(t *testing.T) {
	var buf bytes.Buffer
	sym := newSym("X", 0x10, 3)
	isDef := func(s *symtab.Symbol, line int) bool { return line == 3 }
	if err := WriteSymbolTable(&buf, []*symtab.Symbol{sym}, 0, 0xffff, isDef); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "3D") {
		t.Errorf("expected defining-reference marker, got %q", buf.String())
	}
}

func TestWriteUndefinedCountsOnlyUndefined(t *testing.T) {
	var buf bytes.Buffer
	defined := newSym("OK", 0x10)
	undefined := &symtab.Symbol{Name: "MISSING", Defined: false}
	n := WriteUndefined(&buf, []*symtab.Symbol{defined, undefined})
	if n != 1 {
		t.Errorf("expected 1 undefined symbol, got %d", n)
	}
	if !strings.Contains(buf.String(), "MISSING") {
		t.Errorf("got %q", buf.String())
	}
}
