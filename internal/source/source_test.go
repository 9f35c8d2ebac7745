package source

import (
	"os"
	"path/filepath"
	"testing"
)

func TestStripCommentStripsTrailingComment(t *testing.T) {
	got := StripComment("\tLDA #1 ; load one")
	want := "\tLDA #1 "
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestStripCommentIgnoresSemicolonInsideQuotes(t *testing.T) {
	got := StripComment(`	FCC "a;b"`)
	want := `	FCC "a;b"`
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestSkipHexColumnsStripsWhenRequested(t *testing.T) {
	line := "00012 1000 AABBCCDD LDA #1"
	out, had := SkipHexColumns(line, true)
	if !had {
		t.Fatal("expected hex-dump columns to be detected")
	}
	if out != "LDA #1" {
		t.Errorf("got %q, want %q", out, "LDA #1")
	}
}

func TestSkipHexColumnsDetectsWithoutStripping(t *testing.T) {
	line := "00012 1000 AABBCCDD LDA #1"
	out, had := SkipHexColumns(line, false)
	if !had {
		t.Fatal("expected hex-dump columns to be detected")
	}
	if out != line {
		t.Errorf("strip=false must not modify the line, got %q", out)
	}
}

func TestSkipHexColumnsLeavesOrdinaryLineAlone(t *testing.T) {
	line := "\tLDA #1"
	out, had := SkipHexColumns(line, true)
	if had {
		t.Error("did not expect hex-dump columns on an ordinary source line")
	}
	if out != line {
		t.Errorf("got %q, want unchanged %q", out, line)
	}
}

func TestReaderNextResumesEnclosingFileAfterInclude(t *testing.T) {
	dir := t.TempDir()
	nested := filepath.Join(dir, "nested.asm")
	if err := os.WriteFile(nested, []byte("NESTED LINE\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	main := filepath.Join(dir, "main.asm")
	if err := os.WriteFile(main, []byte("BEFORE\nAFTER\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	r, err := Open(main)
	if err != nil {
		t.Fatal(err)
	}
	defer r.Close()

	line, ok, err := r.Next()
	if err != nil || !ok || line != "BEFORE" {
		t.Fatalf("got %q, %v, %v", line, ok, err)
	}

	if err := r.Include(nested); err != nil {
		t.Fatal(err)
	}
	if r.File() != nested {
		t.Errorf("File() = %q, want %q", r.File(), nested)
	}

	line, ok, err = r.Next()
	if err != nil || !ok || line != "NESTED LINE" {
		t.Fatalf("got %q, %v, %v", line, ok, err)
	}

	line, ok, err = r.Next()
	if err != nil || !ok || line != "AFTER" {
		t.Fatalf("expected to resume enclosing file, got %q, %v, %v", line, ok, err)
	}
	if r.File() != main {
		t.Errorf("File() = %q, want %q after include exhausted", r.File(), main)
	}

	_, ok, err = r.Next()
	if err != nil || ok {
		t.Fatalf("expected end of input, got ok=%v err=%v", ok, err)
	}
}

func TestReaderIncludeNestingDepthLimit(t *testing.T) {
	dir := t.TempDir()
	main := filepath.Join(dir, "main.asm")
	if err := os.WriteFile(main, []byte("X\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	r, err := Open(main)
	if err != nil {
		t.Fatal(err)
	}
	defer r.Close()

	var lastErr error
	for i := 0; i < maxIncludeDepth+1; i++ {
		lastErr = r.Include(main)
	}
	if lastErr == nil {
		t.Fatal("expected an error once include nesting exceeds the depth limit")
	}
}

func TestOpenMissingFileFails(t *testing.T) {
	if _, err := Open(filepath.Join(t.TempDir(), "does-not-exist.asm")); err == nil {
		t.Fatal("expected an error opening a nonexistent file")
	}
}
