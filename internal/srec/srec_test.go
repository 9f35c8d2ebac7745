package srec

import (
	"bytes"
	"strings"
	"testing"
)

func TestWriteRawWithHeader(t *testing.T) {
	var buf bytes.Buffer
	seg := Segment{Addr: 0x1000, Data: []byte{0xAA, 0xBB}}
	if err := WriteRaw(&buf, seg, true); err != nil {
		t.Fatal(err)
	}
	want := []byte{0x10, 0x00, 0xAA, 0xBB}
	if !bytes.Equal(buf.Bytes(), want) {
		t.Errorf("got % x, want % x", buf.Bytes(), want)
	}
}

func TestWriteRawWithoutHeader(t *testing.T) {
	var buf bytes.Buffer
	seg := Segment{Addr: 0x1000, Data: []byte{0xAA, 0xBB}}
	if err := WriteRaw(&buf, seg, false); err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(buf.Bytes(), []byte{0xAA, 0xBB}) {
		t.Errorf("got % x", buf.Bytes())
	}
}

func TestWriteSRecordShape(t *testing.T) {
	var buf bytes.Buffer
	seg := Segment{Addr: 0x0000, Data: []byte{0x01, 0x02, 0x03}, ExecAddr: -1}
	if err := WriteSRecord(&buf, seg); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	lines := strings.Split(strings.TrimRight(out, "\r\n"), "\r\n")
	if len(lines) != 3 {
		t.Fatalf("expected S0/S1/S5, got %d lines: %q", len(lines), lines)
	}
	if !strings.HasPrefix(lines[0], "S0") {
		t.Errorf("first record should be S0, got %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], "S1") {
		t.Errorf("second record should be S1, got %q", lines[1])
	}
}

func TestWriteSRecordChecksum(t *testing.T) {
	var buf bytes.Buffer
	// S1 record for address 0, one byte 0x00: payload=4, checksum = ~(4+0+0+0)&0xff = 0xFB
	seg := Segment{Addr: 0, Data: []byte{0x00}, ExecAddr: -1}
	if err := WriteSRecord(&buf, seg); err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimRight(buf.String(), "\r\n"), "\r\n")
	s1 := lines[1]
	if !strings.HasSuffix(s1, "FB") {
		t.Errorf("S1 record %q should end with checksum FB", s1)
	}
}

func TestNoExecAddrOmitsS9(t *testing.T) {
	var buf bytes.Buffer
	seg := Segment{Addr: 0, Data: []byte{0x00}, ExecAddr: -1}
	if err := WriteSRecord(&buf, seg); err != nil {
		t.Fatal(err)
	}
	if strings.Contains(buf.String(), "S9") {
		t.Error("did not expect S9 record when ExecAddr is -1")
	}
}
