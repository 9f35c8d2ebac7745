package cond

import "testing"

func TestSimpleIfElseEndif(t *testing.T) {
	s := New()
	if err := s.If(false); err != nil {
		t.Fatal(err)
	}
	if !s.Skipping() {
		t.Error("expected skipping inside false branch")
	}
	if err := s.Else(); err != nil {
		t.Fatal(err)
	}
	if s.Skipping() {
		t.Error("expected not skipping after else of false branch")
	}
	if err := s.EndIf(); err != nil {
		t.Fatal(err)
	}
	if s.Depth() != 0 {
		t.Errorf("depth = %d, want 0", s.Depth())
	}
}

func TestNestedSkipIsOrOfStack(t *testing.T) {
	s := New()
	_ = s.If(true)
	_ = s.If(false)
	if !s.Skipping() {
		t.Error("inner false frame should force skipping regardless of outer")
	}
}

func TestMaxDepthEnforced(t *testing.T) {
	s := New()
	for i := 0; i < maxDepth; i++ {
		if err := s.If(true); err != nil {
			t.Fatalf("unexpected error at depth %d: %v", i, err)
		}
	}
	if err := s.If(true); err == nil {
		t.Error("expected error exceeding max nesting depth")
	}
}

func TestElseWithoutIfErrors(t *testing.T) {
	s := New()
	if err := s.Else(); err == nil {
		t.Error("expected error for ELSE without IF")
	}
}

func TestEndifWithoutIfErrors(t *testing.T) {
	s := New()
	if err := s.EndIf(); err == nil {
		t.Error("expected error for ENDIF without IF")
	}
}
