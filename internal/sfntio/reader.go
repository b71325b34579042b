// go-otf/gsub - an OpenType GSUB glyph substitution library
// Copyright (C) 2026  go-otf contributors
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

// Package sfntio provides a buffered, seekable big-endian cursor over
// an OpenType/TrueType table, along the lines of
// seehuhn.de/go/pdf's font/parser.Parser but stripped of that type's
// bytecode interpreter: every caller in this module decodes tables
// with plain Go control flow instead.
package sfntio

import (
	"fmt"
	"io"
	"strconv"

	"github.com/go-otf/gsub/internal/gsuberr"
)

const bufferSize = 1024

// ReadSeekSizer is the minimal interface a table source must provide.
type ReadSeekSizer interface {
	io.ReadSeeker
	Size() int64
}

// Reader is a cursor over a single on-disk table. Positions passed to
// SeekPos and returned by Pos are absolute offsets into the underlying
// stream, matching how GSUB sub-offsets are resolved once flattened to
// file positions by the caller.
type Reader struct {
	r    ReadSeekSizer
	name string

	buf       []byte
	from      int64
	pos, used int
	lastRead  int64
}

// New allocates a Reader positioned at the start of r.
func New(name string, r ReadSeekSizer) *Reader {
	p := &Reader{r: r, name: name}
	_ = p.SeekPos(0)
	return p
}

// Size returns the total size of the underlying stream.
func (p *Reader) Size() int64 { return p.r.Size() }

// Pos returns the current absolute reading position.
func (p *Reader) Pos() int64 { return p.from + int64(p.pos) }

// SeekPos moves the reading position to filePos, an absolute offset.
func (p *Reader) SeekPos(filePos int64) error {
	if filePos >= p.from && filePos <= p.from+int64(p.used) {
		p.pos = int(filePos - p.from)
		return nil
	}
	if _, err := p.r.Seek(filePos, io.SeekStart); err != nil {
		return err
	}
	p.from = filePos
	p.pos = 0
	p.used = 0
	return nil
}

// ReadBytes reads n bytes starting at the current position. The
// returned slice aliases the internal buffer and is only valid until
// the next Reader call. n must be <= 1024.
func (p *Reader) ReadBytes(n int) ([]byte, error) {
	p.lastRead = p.from + int64(p.pos)
	if n > bufferSize {
		panic("sfntio: read size exceeds buffer size")
	}

	for p.pos+n > p.used {
		if len(p.buf) == 0 {
			p.buf = make([]byte, bufferSize)
		}
		k := copy(p.buf, p.buf[p.pos:p.used])
		p.from += int64(p.pos)
		p.pos = 0
		p.used = k

		l, err := p.r.Read(p.buf[p.used:])
		if err == io.EOF {
			if l > 0 {
				err = nil
			} else {
				err = io.ErrUnexpectedEOF
			}
		}
		if err != nil {
			return nil, gsuberr.NewShortRead(err)
		}
		p.used += l
	}

	res := p.buf[p.pos : p.pos+n]
	p.pos += n
	return res, nil
}

// ReadUint8 reads a single byte.
func (p *Reader) ReadUint8() (uint8, error) {
	buf, err := p.ReadBytes(1)
	if err != nil {
		return 0, err
	}
	return buf[0], nil
}

// ReadUint16 reads a big-endian uint16.
func (p *Reader) ReadUint16() (uint16, error) {
	buf, err := p.ReadBytes(2)
	if err != nil {
		return 0, err
	}
	return uint16(buf[0])<<8 | uint16(buf[1]), nil
}

// ReadInt16 reads a big-endian, two's-complement int16.
func (p *Reader) ReadInt16() (int16, error) {
	v, err := p.ReadUint16()
	return int16(v), err
}

// ReadUint32 reads a big-endian uint32.
func (p *Reader) ReadUint32() (uint32, error) {
	buf, err := p.ReadBytes(4)
	if err != nil {
		return 0, err
	}
	return uint32(buf[0])<<24 | uint32(buf[1])<<16 | uint32(buf[2])<<8 | uint32(buf[3]), nil
}

// ReadTag reads a fixed-length 4-byte ASCII tag (script, language,
// feature).
func (p *Reader) ReadTag() (string, error) {
	buf, err := p.ReadBytes(4)
	if err != nil {
		return "", err
	}
	return string(buf), nil
}

// Errorf formats a table-relative diagnostic, annotated with the table
// name and the byte offset of the most recent read (the offset is
// omitted when it is 0).
func (p *Reader) Errorf(format string, a ...interface{}) error {
	name := p.name
	if name == "" {
		name = "GSUB"
	}
	return &gsuberr.CorruptTable{
		Reason: name + fmtOffset(p.lastRead) + ": " + fmt.Sprintf(format, a...),
	}
}

func fmtOffset(pos int64) string {
	if pos == 0 {
		return ""
	}
	return "@" + strconv.FormatInt(pos, 10)
}
