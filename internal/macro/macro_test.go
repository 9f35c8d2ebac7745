package macro

import (
	"reflect"
	"testing"
)

func TestRecordAndExpandSubstitutesParams(t *testing.T) {
	m, err := Record("ADDIM", []string{"REG", "VAL"}, StyleParen, []string{
		"\tLDA #VAL", "\tADDA REG",
	})
	if err != nil {
		t.Fatal(err)
	}
	got := m.Expand([]string{"X", "5"})
	want := []string{"\tLDA #5", "\tADDA X"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Expand = %v, want %v", got, want)
	}
}

func TestRecordDoesNotSubstituteInsideLargerIdentifiers(t *testing.T) {
	m, err := Record("M", []string{"A"}, StyleParen, []string{"\tLDA #AREA"})
	if err != nil {
		t.Fatal(err)
	}
	got := m.Expand([]string{"1"})
	if got[0] != "\tLDA #AREA" {
		t.Errorf("got %q, want unchanged AREA", got[0])
	}
}

func TestDefineDuplicateFailsInPass1ButNotPass2(t *testing.T) {
	tbl := NewTable()
	m, _ := Record("FOO", nil, StyleParen, []string{"\tNOP"})
	if err := tbl.Define(1, m); err != nil {
		t.Fatal(err)
	}
	if err := tbl.Define(1, m); err == nil {
		t.Error("expected duplicate-definition error in pass 1")
	}
	if err := tbl.Define(2, m); err != nil {
		t.Errorf("pass 2 redefinition should be silently accepted, got %v", err)
	}
}

func TestFrameNext(t *testing.T) {
	f := NewFrame("X", []string{"a", "b"})
	var lines []string
	for {
		l, ok := f.Next()
		if !ok {
			break
		}
		lines = append(lines, l)
	}
	if !reflect.DeepEqual(lines, []string{"a", "b"}) {
		t.Errorf("got %v", lines)
	}
}
