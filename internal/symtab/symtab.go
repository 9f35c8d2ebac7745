// Package symtab implements the assembler's symbol table: global and
// MODULE/SUBROUTINE-scoped labels, locked constants (EQU), reassignable
// variables (SET), and the numeric local-label ('-'/'+' chain) convention
// used for throwaway branch targets.
package symtab

import (
	"fmt"
	"sort"
	"strings"

	"github.com/motoxas/bs09/internal/isa"
)

const maxLocalDepth = 10

// Symbol is one entry: a label, EQU constant, SET variable, or BSS
// allocation. Bytes tracks the size of the last STORE-able data emitted
// under this label, consulted by the '?' expression operator; it is -1 for
// symbols that were never the target of a data directive.
type Symbol struct {
	Name       string
	Value      int32
	Defined    bool
	Locked     bool
	Bytes      int32
	References []int
}

// Table holds every symbol visible to one assembly run.
type Table struct {
	syms     map[string]*Symbol
	scope    string
	foldCase bool

	hasMin [maxLocalDepth + 1]bool
	minlab [maxLocalDepth + 1]int32
	plulab [maxLocalDepth + 1][]int32
}

// NewTable returns an empty table. foldCase mirrors the IgnoreCase assembler
// option: when set, symbol names are case-insensitive.
func NewTable(foldCase bool) *Table {
	return &Table{syms: make(map[string]*Symbol), foldCase: foldCase}
}

// SetFoldCase changes the case-folding behavior mid-assembly, mirroring the
// CASE +/- directive. Symbols already in the table are re-keyed under the
// new rule, so they stay reachable; when folding merges two names that
// differ only in case, one of them replaces the other.
func (t *Table) SetFoldCase(fold bool) {
	if fold == t.foldCase {
		return
	}
	t.foldCase = fold
	rekeyed := make(map[string]*Symbol, len(t.syms))
	for _, sym := range t.syms {
		rekeyed[t.fold(sym.Name)] = sym
	}
	t.syms = rekeyed
}

func (t *Table) fold(name string) string {
	if t.foldCase {
		return strings.ToUpper(name)
	}
	return name
}

// ResetPass clears the backward ('-') numeric local-label bookkeeping
// between pass 1 and pass 2. The forward ('+') lists recorded during pass 1
// are kept, since pass 2 resolves forward references against them, and the
// symbol map is preserved, since pass 2 relies on values pass 1 resolved.
func (t *Table) ResetPass() {
	for i := range t.hasMin {
		t.hasMin[i] = false
		t.minlab[i] = 0
	}
}

// SetScope establishes the enclosing MODULE/SUBROUTINE name that a bare
// '.name' local label qualifies against. Passing "" returns to file scope,
// where a leading-dot label is left unrewritten.
func (t *Table) SetScope(scope string) { t.scope = scope }

// Scope returns the current enclosing scope name.
func (t *Table) Scope() string { return t.scope }

// Qualify expands a '.name' local label into 'scope.name'. Names without a
// leading dot, and dotted names with no enclosing scope, pass through
// unchanged.
func (t *Table) Qualify(name string) string {
	if len(name) == 0 || name[0] != '.' {
		return name
	}
	if t.scope == "" {
		return name
	}
	return t.scope + name
}

// Reserved reports whether name collides with an instruction mnemonic,
// which is never legal as a label or symbol name.
func Reserved(name string) bool {
	return isa.Lookup(strings.ToUpper(name)) != nil
}

func (t *Table) get(key string) *Symbol {
	return t.syms[key]
}

// Define creates or updates a label/constant. locked mirrors '=' / EQU
// (value fixed for the remainder of assembly); redefining a locked symbol
// with a different value is an error, matching a label/EQU clash.
func (t *Table) Define(name string, value int32, locked bool) error {
	name = t.Qualify(name)
	if Reserved(name) {
		return fmt.Errorf("use of reserved mnemonic %q as label or operand", name)
	}
	key := t.fold(name)
	sym, ok := t.syms[key]
	if !ok {
		t.syms[key] = &Symbol{Name: name, Value: value, Defined: true, Locked: locked, Bytes: -1}
		return nil
	}
	if sym.Locked && sym.Defined && sym.Value != value {
		return fmt.Errorf("multiple definition of label %q", name)
	}
	sym.Value = value
	sym.Defined = true
	sym.Locked = locked
	return nil
}

// Assign implements SET: an always-reassignable variable, error only if the
// name already names a locked (EQU/label) symbol.
func (t *Table) Assign(name string, value int32) error {
	name = t.Qualify(name)
	key := t.fold(name)
	sym, ok := t.syms[key]
	if ok && sym.Locked {
		return fmt.Errorf("cannot SET %q: already defined with EQU or as a label", name)
	}
	if !ok {
		t.syms[key] = &Symbol{Name: name, Value: value, Defined: true, Bytes: -1}
		return nil
	}
	sym.Value = value
	sym.Defined = true
	return nil
}

// Lookup implements expr.Resolver.Symbol.
func (t *Table) Lookup(name string) (int32, bool) {
	sym := t.get(t.fold(t.Qualify(name)))
	if sym == nil || !sym.Defined {
		return 0, false
	}
	return sym.Value, true
}

// Get returns the raw symbol entry, e.g. for listing cross-references.
func (t *Table) Get(name string) (*Symbol, bool) {
	sym := t.get(t.fold(t.Qualify(name)))
	if sym == nil {
		return nil, false
	}
	return sym, true
}

// SetBytes records the size of a data directive's output under name, so a
// later '?name' expression can query it.
func (t *Table) SetBytes(name string, n int32) {
	name = t.Qualify(name)
	key := t.fold(name)
	sym, ok := t.syms[key]
	if !ok {
		sym = &Symbol{Name: name, Bytes: -1}
		t.syms[key] = sym
	}
	sym.Bytes = n
}

// SymBytes implements expr.Resolver.SymBytes.
func (t *Table) SymBytes(name string) (int32, bool) {
	sym := t.get(t.fold(t.Qualify(name)))
	if sym == nil || sym.Bytes < 0 {
		return 0, false
	}
	return sym.Bytes, true
}

// AddReference records a referencing line number for the cross-reference
// listing.
func (t *Table) AddReference(name string, line int) {
	name = t.Qualify(name)
	key := t.fold(name)
	sym, ok := t.syms[key]
	if !ok {
		sym = &Symbol{Name: name, Bytes: -1}
		t.syms[key] = sym
	}
	sym.References = append(sym.References, line)
}

// All returns every symbol, sorted by name, for listing output.
func (t *Table) All() []*Symbol {
	out := make([]*Symbol, 0, len(t.syms))
	for _, s := range t.syms {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// depthOf returns the run length of a leading-repeated rune ('-' or '+'),
// or 0 if s isn't entirely composed of that rune.
func depthOf(s string, r byte) int {
	if len(s) == 0 || len(s) > maxLocalDepth {
		return 0
	}
	for i := 0; i < len(s); i++ {
		if s[i] != r {
			return 0
		}
	}
	return len(s)
}

// DepthOfLocalLabel reports the '-'/'+' run length of a numeric local-label
// operand, or 0 if s is not one (an ordinary expression should be evaluated
// instead).
func DepthOfLocalLabel(s string) (depth int, backward bool) {
	if d := depthOf(s, '-'); d > 0 {
		return d, true
	}
	if d := depthOf(s, '+'); d > 0 {
		return d, false
	}
	return 0, false
}

// DefineBackward records the address of a just-assembled '-'-chain label of
// the given depth; later backward references of the same depth resolve to
// the most recent definition.
func (t *Table) DefineBackward(depth int, pc int32) {
	t.minlab[depth] = pc
	t.hasMin[depth] = true
}

// DefineForward records the address of a '+'-chain label of the given depth
// as it is assembled, so earlier forward references can later search it.
func (t *Table) DefineForward(depth int, pc int32) {
	t.plulab[depth] = append(t.plulab[depth], pc)
}

// ResolveBackward returns the most recently defined '-'-chain label address
// of the given depth.
func (t *Table) ResolveBackward(depth int) (int32, bool) {
	if !t.hasMin[depth] {
		return 0, false
	}
	return t.minlab[depth], true
}

// ResolveForward finds the nearest '+'-chain label of the given depth whose
// address is greater than pc — the next upcoming occurrence, searched from
// the forward definitions recorded so far (the engine records them during
// pass 1 only).
func (t *Table) ResolveForward(depth int, pc int32) (int32, bool) {
	list := t.plulab[depth]
	found := int32(0)
	ok := false
	for i := len(list) - 1; i >= 0 && list[i] > pc; i-- {
		found = list[i]
		ok = true
	}
	return found, ok
}
