package gsuberr

import (
	"io"
	"testing"
)

func TestIsShortRead(t *testing.T) {
	if !IsShortRead(NewShortRead(io.ErrUnexpectedEOF)) {
		t.Error("IsShortRead(NewShortRead(...)) = false, want true")
	}
	if !IsShortRead(io.EOF) {
		t.Error("IsShortRead(io.EOF) = false, want true")
	}
	if IsShortRead(&CorruptTable{Reason: "x"}) {
		t.Error("IsShortRead(CorruptTable) = true, want false")
	}
}

func TestIsCorrupt(t *testing.T) {
	if !IsCorrupt(&CorruptTable{Reason: "bad"}) {
		t.Error("IsCorrupt(CorruptTable) = false, want true")
	}
	if IsCorrupt(&ShortRead{Err: io.EOF}) {
		t.Error("IsCorrupt(ShortRead) = true, want false")
	}
}

func TestIsUnknownReverseMapping(t *testing.T) {
	if !IsUnknownReverseMapping(&UnknownReverseMapping{GID: 5}) {
		t.Error("IsUnknownReverseMapping = false, want true")
	}
}
