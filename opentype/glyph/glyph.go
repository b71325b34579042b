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

// Package glyph defines the glyph identifier type shared by the
// coverage, gsub and shape packages.
package glyph

// ID is a glyph identifier: a 16-bit index into a font's glyph table.
//
// It is represented as a plain int (rather than uint16) so that the
// sentinel value None can be distinguished from every valid GID.
type ID int

// None is the sentinel returned by a cmap lookup for an unmapped
// codepoint. The evaluator preserves it unchanged (spec: sentinel
// preservation).
const None ID = -1

// Wrap reduces a GID computed by 16-bit delta arithmetic back into the
// valid GID range, mod 65536, as required for format 1 single
// substitution lookups.
func Wrap(g ID) ID {
	return ID(uint16(g))
}
