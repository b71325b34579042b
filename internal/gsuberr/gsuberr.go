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

// Package gsuberr defines the error kinds raised while parsing and
// evaluating an OpenType "GSUB" table.
//
// The shape follows seehuhn.de/go/pdf's font.InvalidFontError /
// font.NotSupportedError pair (font/error.go): small structs carrying
// the details of one failure each, plus Is-style helpers (IsShortRead,
// IsCorrupt, IsUnknownReverseMapping) so callers can classify an error
// without a type assertion of their own. UnsupportedLookupType has no
// such helper; use errors.As.
package gsuberr

import (
	"fmt"
	"io"
)

// CorruptTable indicates that the on-disk GSUB table contains a
// structurally invalid value: an unknown subtable format, an unknown
// coverage format, a header offset out of range, or a format 1
// coverage glyph array that is not strictly ascending. Parsing aborts.
// A stream that ends too early is reported as ShortRead instead.
type CorruptTable struct {
	Reason string
}

func (e *CorruptTable) Error() string {
	return fmt.Sprintf("gsub: corrupt table: %s", e.Reason)
}

// ShortRead wraps an error produced when the byte stream ends before a
// required field has been read in full.
type ShortRead struct {
	Err error
}

func (e *ShortRead) Error() string {
	return fmt.Sprintf("gsub: short read: %s", e.Err)
}

func (e *ShortRead) Unwrap() error { return e.Err }

// NewShortRead wraps err as a ShortRead, unless it is already one.
func NewShortRead(err error) error {
	if err == nil {
		return nil
	}
	if _, ok := err.(*ShortRead); ok {
		return err
	}
	return &ShortRead{Err: err}
}

// IsShortRead reports whether err (or its EOF cause) indicates a
// truncated stream.
func IsShortRead(err error) bool {
	var sr *ShortRead
	if asShortRead(err, &sr) {
		return true
	}
	return err == io.ErrUnexpectedEOF || err == io.EOF
}

func asShortRead(err error, target **ShortRead) bool {
	for err != nil {
		if sr, ok := err.(*ShortRead); ok {
			*target = sr
			return true
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return false
		}
		err = u.Unwrap()
	}
	return false
}

// UnsupportedLookupType is a diagnostic, non-fatal condition: the
// lookup's type is something other than 1 (single substitution).
// Parsing continues; the lookup carries no subtables and is therefore
// inert.
type UnsupportedLookupType struct {
	Type uint16
}

func (e *UnsupportedLookupType) Error() string {
	return fmt.Sprintf("gsub: lookup type %d not supported, lookup made inert", e.Type)
}

// UnknownReverseMapping is raised by Table.Unsubstitute when asked
// about a GID that was never produced as the result of a successful
// substitution.
type UnknownReverseMapping struct {
	GID int
}

func (e *UnknownReverseMapping) Error() string {
	return fmt.Sprintf("gsub: %d was never produced by a substitution", e.GID)
}

// IsCorrupt reports whether err is a CorruptTable.
func IsCorrupt(err error) bool {
	_, ok := err.(*CorruptTable)
	return ok
}

// IsUnknownReverseMapping reports whether err is an
// UnknownReverseMapping.
func IsUnknownReverseMapping(err error) bool {
	_, ok := err.(*UnknownReverseMapping)
	return ok
}
