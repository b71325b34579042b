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

// Package gsub parses and evaluates an OpenType "GSUB" (Glyph
// Substitution) table: the script/language/feature/lookup structure
// that maps a codepoint's script and a caller's enabled feature tags
// to a sequence of single-glyph substitutions.
//
// Grounded on the Apache FontBox GlyphSubstitutionTable this module
// was distilled from, and structured the way
// seehuhn.de/go/pdf's font/sfnt/opentype/gtab package structures an
// OpenType lookup table: a flat Table holding parsed script, feature
// and lookup lists, with the lookup subtable hierarchy expressed as
// tagged variants (see Subtable) rather than a class hierarchy.
package gsub

import (
	"sync"

	"github.com/go-otf/gsub/opentype/coverage"
	"github.com/go-otf/gsub/opentype/glyph"
	"github.com/go-otf/gsub/opentype/script"
)

// ScriptRecord associates an OpenType script tag with its table.
type ScriptRecord struct {
	Tag   string
	Table ScriptTable
}

// ScriptTable lists the language systems available under one script.
type ScriptTable struct {
	Default *LangSysTable // nil if the script defines no default
	LangSys []LangSysRecord
}

// LangSysRecord associates an OpenType language tag with its table.
type LangSysRecord struct {
	Tag   string
	Table LangSysTable
}

// LangSysTable names the features active under one language system.
// RequiredFeature is an index into Table.Features, or NoRequiredFeature.
type LangSysTable struct {
	RequiredFeature int
	FeatureIndices  []int
}

// NoRequiredFeature is the sentinel LangSysTable.RequiredFeature value
// (0xFFFF in the on-disk format) meaning "no required feature".
const NoRequiredFeature = 0xFFFF

// FeatureRecord associates a four-byte feature tag ("liga", "smcp",
// ...) with the lookups it activates.
type FeatureRecord struct {
	Tag   string
	Table FeatureTable
}

// FeatureTable lists the lookups a feature activates, by index into
// Table.Lookups.
type FeatureTable struct {
	LookupListIndices []int
}

// LookupFlag bits, from the "Lookup Flag" field of a lookup table.
// This module does not interpret any of them (mark filtering and
// attachment-type filtering are out of scope), but they are kept on
// LookupTable for callers that build a complete layout engine around
// this one.
type LookupFlag uint16

const (
	RightToLeft         LookupFlag = 0x0001
	IgnoreBaseGlyphs    LookupFlag = 0x0002
	IgnoreLigatures     LookupFlag = 0x0004
	IgnoreMarks         LookupFlag = 0x0008
	UseMarkFilteringSet LookupFlag = 0x0010
)

// LookupTable is one entry of the GSUB lookup list. Type is the raw
// on-disk lookup type (1 = single substitution, the only one this
// module evaluates); Subtables is empty for any other type, which
// makes the lookup inert rather than an error (see Read).
type LookupTable struct {
	Type             uint16
	Flag             LookupFlag
	MarkFilteringSet uint16
	Subtables        []Subtable
}

// Subtable is a decoded single-substitution lookup subtable. It is a
// tagged variant, not an interface: the evaluator never needs dynamic
// dispatch across more than the two shapes single substitution can
// take, so a Format field plus an exhaustive switch replaces what the
// source expresses as an abstract LookupSubTable class with two
// concrete subclasses.
type Subtable struct {
	Format   SubtableFormat
	Coverage *coverage.Table

	Delta       int16      // Format1
	Substitutes []glyph.ID // Format2, parallel to Coverage's index order
}

// SubtableFormat distinguishes the two single-substitution subtable
// layouts.
type SubtableFormat uint16

const (
	SingleSubstDelta SubtableFormat = 1 // output = input + Delta, mod 65536
	SingleSubstList  SubtableFormat = 2 // output = Substitutes[coverageIndex]
)

// Apply substitutes gid if it is covered, or returns it unchanged.
func (s *Subtable) Apply(gid glyph.ID) glyph.ID {
	idx := s.Coverage.Index(gid)
	if idx < 0 {
		return gid
	}
	switch s.Format {
	case SingleSubstDelta:
		return glyph.Wrap(gid + glyph.ID(s.Delta))
	case SingleSubstList:
		if idx >= len(s.Substitutes) {
			return gid
		}
		return s.Substitutes[idx]
	default:
		return gid
	}
}

// Table is a fully parsed GSUB table, ready to answer Substitute and
// Unsubstitute queries.
//
// The forward (Table.cache) and reverse (Table.reverse) caches and
// the script-resolution hint (Table.hint) are mutable state shared
// across calls and are guarded by mu, mirroring the single-writer
// caching contract of the source this module was distilled from: the
// first successful resolution for a glyph ID wins and is memoized, so
// that ambiguous scripts (COMMON, INHERITED) cannot make the mapping
// depend on call order after the first resolution.
type Table struct {
	Scripts  []ScriptRecord
	Features []FeatureRecord
	Lookups  []LookupTable

	// Warnings holds one *gsuberr.UnsupportedLookupType per lookup
	// whose type was not single substitution; those lookups parsed as
	// inert rather than aborting Read. Callers that need to know which
	// lookups were skipped can inspect this slice; most callers can
	// ignore it.
	Warnings []error

	mu      sync.Mutex
	cache   map[glyph.ID]glyph.ID
	reverse map[glyph.ID]glyph.ID
	hint    *script.Resolver
}
