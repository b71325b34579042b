package sfntio

import (
	"bytes"
	"testing"
)

type sectionSized struct{ *bytes.Reader }

func (s sectionSized) Size() int64 { return s.Reader.Size() }

func TestReadPrimitives(t *testing.T) {
	data := []byte{0x01, 0xFF, 0x12, 0x34, 0x56, 0x78, 0x9A, 'G', 'S', 'U', 'B'}
	r := New("test", sectionSized{bytes.NewReader(data)})

	u8, err := r.ReadUint8()
	if err != nil || u8 != 0x01 {
		t.Fatalf("ReadUint8 = (%d, %v), want (1, nil)", u8, err)
	}
	u16, err := r.ReadUint16()
	if err != nil || u16 != 0xFF12 {
		t.Fatalf("ReadUint16 = (%#x, %v), want (0xff12, nil)", u16, err)
	}
	u32, err := r.ReadUint32()
	if err != nil || u32 != 0x3456789A {
		t.Fatalf("ReadUint32 = (%#x, %v), want (0x3456789a, nil)", u32, err)
	}
	tag, err := r.ReadTag()
	if err != nil || tag != "GSUB" {
		t.Fatalf("ReadTag = (%q, %v), want (GSUB, nil)", tag, err)
	}
}

func TestSeekPosWithinBuffer(t *testing.T) {
	data := bytes.Repeat([]byte{0, 1, 2, 3}, 10)
	r := New("test", sectionSized{bytes.NewReader(data)})

	if _, err := r.ReadBytes(8); err != nil {
		t.Fatal(err)
	}
	if err := r.SeekPos(2); err != nil {
		t.Fatal(err)
	}
	if got, want := r.Pos(), int64(2); got != want {
		t.Fatalf("Pos() = %d, want %d", got, want)
	}
	b, err := r.ReadBytes(2)
	if err != nil {
		t.Fatal(err)
	}
	if b[0] != 2 || b[1] != 3 {
		t.Fatalf("ReadBytes after SeekPos = %v, want [2 3]", b)
	}
}

func TestReadBytesPastEndIsShortRead(t *testing.T) {
	r := New("test", sectionSized{bytes.NewReader([]byte{1, 2})})
	if _, err := r.ReadBytes(4); err == nil {
		t.Fatal("expected a short-read error")
	}
}
