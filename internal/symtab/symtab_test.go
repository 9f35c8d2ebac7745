package symtab

import "testing"

func TestDefineThenLookup(t *testing.T) {
	tab := NewTable(false)
	if err := tab.Define("START", 0x1000, true); err != nil {
		t.Fatal(err)
	}
	v, ok := tab.Lookup("START")
	if !ok || v != 0x1000 {
		t.Errorf("got %v, %v, want 0x1000, true", v, ok)
	}
}

func TestDefineLockedRedefinitionWithDifferentValueFails(t *testing.T) {
	tab := NewTable(false)
	if err := tab.Define("FOO", 1, true); err != nil {
		t.Fatal(err)
	}
	if err := tab.Define("FOO", 2, true); err == nil {
		t.Fatal("expected an error redefining a locked symbol with a different value")
	}
}

func TestDefineLockedRedefinitionWithSameValueIsLegal(t *testing.T) {
	tab := NewTable(false)
	if err := tab.Define("FOO", 1, true); err != nil {
		t.Fatal(err)
	}
	if err := tab.Define("FOO", 1, true); err != nil {
		t.Errorf("redefining with the same value should be legal, got %v", err)
	}
}

func TestAssignAllowsReassignment(t *testing.T) {
	tab := NewTable(false)
	if err := tab.Assign("FOO", 1); err != nil {
		t.Fatal(err)
	}
	if err := tab.Assign("FOO", 2); err != nil {
		t.Fatal(err)
	}
	v, _ := tab.Lookup("FOO")
	if v != 2 {
		t.Errorf("got %d, want 2", v)
	}
}

func TestAssignRejectsLockedSymbol(t *testing.T) {
	tab := NewTable(false)
	if err := tab.Define("FOO", 1, true); err != nil {
		t.Fatal(err)
	}
	if err := tab.Assign("FOO", 2); err == nil {
		t.Fatal("expected SET to reject a locked symbol")
	}
}

func TestDefineRejectsReservedMnemonic(t *testing.T) {
	tab := NewTable(false)
	if err := tab.Define("LDA", 1, true); err == nil {
		t.Fatal("expected an error defining a label named after a mnemonic")
	}
}

func TestFoldCaseMakesLookupCaseInsensitive(t *testing.T) {
	tab := NewTable(true)
	if err := tab.Define("Foo", 1, true); err != nil {
		t.Fatal(err)
	}
	if _, ok := tab.Lookup("FOO"); !ok {
		t.Error("expected case-insensitive lookup to find Foo")
	}
}

func TestSetFoldCaseChangesBehaviorMidRun(t *testing.T) {
	tab := NewTable(false)
	if err := tab.Define("Foo", 1, true); err != nil {
		t.Fatal(err)
	}
	if _, ok := tab.Lookup("FOO"); ok {
		t.Fatal("lookup should be case-sensitive before SetFoldCase(true)")
	}
	tab.SetFoldCase(true)
	if _, ok := tab.Lookup("FOO"); !ok {
		t.Error("lookup should become case-insensitive after SetFoldCase(true)")
	}
}

func TestLookupUndefinedSymbolFails(t *testing.T) {
	tab := NewTable(false)
	if _, ok := tab.Lookup("NOWHERE"); ok {
		t.Error("expected lookup of an undefined symbol to fail")
	}
}

func TestSymBytesReflectsLastSetBytes(t *testing.T) {
	tab := NewTable(false)
	tab.SetBytes("TABLE", 4)
	n, ok := tab.SymBytes("TABLE")
	if !ok || n != 4 {
		t.Errorf("got %d, %v, want 4, true", n, ok)
	}
}

func TestQualifyLeavesBareDotUnrewrittenOutsideScope(t *testing.T) {
	tab := NewTable(false)
	if got := tab.Qualify(".local"); got != ".local" {
		t.Errorf("got %q, want unchanged %q outside any scope", got, ".local")
	}
}

func TestQualifyPrefixesScopeToDotLabel(t *testing.T) {
	tab := NewTable(false)
	tab.SetScope("MODA")
	if got := tab.Qualify(".local"); got != "MODA.local" {
		t.Errorf("got %q, want %q", got, "MODA.local")
	}
}

func TestQualifyLeavesPlainNameAlone(t *testing.T) {
	tab := NewTable(false)
	tab.SetScope("MODA")
	if got := tab.Qualify("plain"); got != "plain" {
		t.Errorf("got %q, want unchanged %q", got, "plain")
	}
}

func TestBackwardLocalLabelResolvesToMostRecentDefinition(t *testing.T) {
	tab := NewTable(false)
	tab.DefineBackward(1, 0x100)
	tab.DefineBackward(1, 0x200)
	v, ok := tab.ResolveBackward(1)
	if !ok || v != 0x200 {
		t.Errorf("got %v, %v, want 0x200, true", v, ok)
	}
}

func TestForwardLocalLabelResolvesToNextOccurrenceAfterPC(t *testing.T) {
	tab := NewTable(false)
	tab.DefineForward(1, 0x100)
	tab.DefineForward(1, 0x200)
	v, ok := tab.ResolveForward(1, 0x150)
	if !ok || v != 0x200 {
		t.Errorf("got %v, %v, want 0x200, true", v, ok)
	}
}

func TestDepthOfLocalLabelDistinguishesDirection(t *testing.T) {
	if d, back := DepthOfLocalLabel("--"); d != 2 || !back {
		t.Errorf("got %d, %v, want 2, true", d, back)
	}
	if d, back := DepthOfLocalLabel("+++"); d != 3 || back {
		t.Errorf("got %d, %v, want 3, false", d, back)
	}
	if d, _ := DepthOfLocalLabel("label"); d != 0 {
		t.Errorf("got %d, want 0 for an ordinary identifier", d)
	}
}

func TestResetPassClearsLocalLabelBookkeepingButKeepsSymbols(t *testing.T) {
	tab := NewTable(false)
	if err := tab.Define("KEEP", 42, true); err != nil {
		t.Fatal(err)
	}
	tab.DefineBackward(1, 0x100)
	tab.ResetPass()
	if _, ok := tab.ResolveBackward(1); ok {
		t.Error("expected local-label state to be cleared by ResetPass")
	}
	v, ok := tab.Lookup("KEEP")
	if !ok || v != 42 {
		t.Error("expected symbol table to survive ResetPass")
	}
}
