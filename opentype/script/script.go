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

// Package script maps Unicode scripts to candidate OpenType script
// tags, and resolves one of those candidates against the scripts a
// particular GSUB table actually carries.
//
// Grounded on the SCRIPT_TO_TAGS table and getScriptTag method of the
// Apache FontBox GlyphSubstitutionTable this module was distilled
// from: a single Unicode script can correspond to more than one
// OpenType tag when the script has had a table revision (e.g. Bengali
// -> bng2, beng), and candidates are always listed newest first.
package script

import (
	"unicode"

	"golang.org/x/text/unicode/rangetable"
)

// Script is a Unicode script, as reported by a cmap/charset
// classifier for a given codepoint.
type Script int

const (
	Unknown Script = iota
	Common
	Inherited
	Arabic
	Armenian
	Bengali
	Bopomofo
	Cyrillic
	Devanagari
	Georgian
	Greek
	Gujarati
	Gurmukhi
	Han
	Hangul
	Hebrew
	Hiragana
	Kannada
	Katakana
	Khmer
	Lao
	Latin
	Malayalam
	Myanmar
	Oriya
	Sinhala
	Tamil
	Telugu
	Thaana
	Thai
	Tibetan
)

// tagDefault is OpenType's "Default" script tag, used for Common.
const tagDefault = "DFLT"

// tagInherited is a sentinel, not an actual OpenType tag: Inherited
// never maps to a real script and always falls through to the hint.
const tagInherited = "<inherited>"

// tags lists, newest revision first, the OpenType script tags a given
// Unicode script can appear under. Most scripts have exactly one tag;
// a few have had a "version 2" revision and carry both.
var tags = map[Script][]string{
	Common:     {tagDefault},
	Inherited:  {tagInherited},
	Arabic:     {"arab"},
	Armenian:   {"armn"},
	Bengali:    {"bng2", "beng"},
	Bopomofo:   {"bopo"},
	Cyrillic:   {"cyrl"},
	Devanagari: {"dev2", "deva"},
	Georgian:   {"geor"},
	Greek:      {"grek"},
	Gujarati:   {"gjr2", "gujr"},
	Gurmukhi:   {"gur2", "guru"},
	Han:        {"hani"},
	Hangul:     {"hang"},
	Hebrew:     {"hebr"},
	Hiragana:   {"kana"},
	Kannada:    {"knd2", "knda"},
	Katakana:   {"kana"},
	Khmer:      {"khmr"},
	Lao:        {"lao "},
	Latin:      {"latn"},
	Malayalam:  {"mlm2", "mlym"},
	Myanmar:    {"mym2", "mymr"},
	Oriya:      {"ory2", "orya"},
	Sinhala:    {"sinh"},
	Tamil:      {"tml2", "taml"},
	Telugu:     {"tel2", "telu"},
	Thaana:     {"thaa"},
	Thai:       {"thai"},
	Tibetan:    {"tibt"},
}

// Tags returns the OpenType script tag candidates for s, newest
// revision first. An unrecognized script falls back to Common's
// single candidate, "DFLT".
func Tags(s Script) []string {
	if t, ok := tags[s]; ok {
		return t
	}
	return tags[Common]
}

// Resolver picks, for a sequence of lookups against one GSUB table,
// which of a Unicode script's OpenType tag candidates that table
// actually supports. It carries state across calls: once a script
// tag has successfully resolved, ambiguous or unrecognized scripts
// that follow reuse it, rather than re-guessing each time.
//
// This mirrors GSUB's lastUsedSupportedScript field: it exists
// because within one run of text, an unclassifiable codepoint
// (punctuation, combining marks) almost always belongs to whatever
// script surrounds it, and a single GSUB table essentially never mixes
// incompatible script conventions within one document.
type Resolver struct {
	supported map[string]bool
	fallback  string // scriptList[0].scriptTag in the source
	lastUsed  string
}

// NewResolver builds a Resolver over the set of script tags a GSUB
// table declares, in script-list order. supportedInOrder must be
// non-empty.
func NewResolver(supportedInOrder []string) *Resolver {
	r := &Resolver{
		supported: make(map[string]bool, len(supportedInOrder)),
	}
	if len(supportedInOrder) > 0 {
		r.fallback = supportedInOrder[0]
	}
	for _, tag := range supportedInOrder {
		r.supported[tag] = true
	}
	return r
}

// Tag resolves s to one OpenType script tag supported by this
// Resolver's table. If none of s's candidates is supported, the
// newest candidate is returned as is and the hint is left unchanged.
func (r *Resolver) Tag(s Script) string {
	candidates := Tags(s)
	if len(candidates) == 1 {
		tag := candidates[0]
		if tag == tagInherited || (tag == tagDefault && !r.supported[tag]) {
			if r.lastUsed != "" {
				return r.lastUsed
			}
			r.lastUsed = r.fallback
			return r.fallback
		}
	}
	for _, tag := range candidates {
		if r.supported[tag] {
			r.lastUsed = tag
			return tag
		}
	}
	return candidates[0]
}

// byScript associates each Script value we recognize with its
// standard library Unicode range table, for the scripts that have
// one (Common and Inherited are handled separately in Of: a rune of
// the Inherited script is classified as Inherited, and any other rune
// that matches none of these tables is classified as Common).
var byScript = map[Script]*unicode.RangeTable{
	Arabic:     unicode.Arabic,
	Armenian:   unicode.Armenian,
	Bengali:    unicode.Bengali,
	Bopomofo:   unicode.Bopomofo,
	Cyrillic:   unicode.Cyrillic,
	Devanagari: unicode.Devanagari,
	Georgian:   unicode.Georgian,
	Greek:      unicode.Greek,
	Gujarati:   unicode.Gujarati,
	Gurmukhi:   unicode.Gurmukhi,
	Han:        unicode.Han,
	Hangul:     unicode.Hangul,
	Hebrew:     unicode.Hebrew,
	Hiragana:   unicode.Hiragana,
	Kannada:    unicode.Kannada,
	Katakana:   unicode.Katakana,
	Khmer:      unicode.Khmer,
	Lao:        unicode.Lao,
	Latin:      unicode.Latin,
	Malayalam:  unicode.Malayalam,
	Myanmar:    unicode.Myanmar,
	Oriya:      unicode.Oriya,
	Sinhala:    unicode.Sinhala,
	Tamil:      unicode.Tamil,
	Telugu:     unicode.Telugu,
	Thaana:     unicode.Thaana,
	Thai:       unicode.Thai,
	Tibetan:    unicode.Tibetan,
}

// Classifier assigns a Unicode script to a codepoint, playing the
// role of the "script classifier" external collaborator from the
// glyph-substitution evaluator's contract: it never needs to know
// about glyph IDs or OpenType tags, only runes.
type Classifier struct {
	known *unicode.RangeTable
}

// NewClassifier builds a Classifier backed by the standard library's
// per-script Unicode range tables, merged with
// golang.org/x/text/unicode/rangetable so that "does this rune belong
// to any script we track at all" is a single table membership test
// rather than a linear scan over byScript on every call.
func NewClassifier() *Classifier {
	tables := make([]*unicode.RangeTable, 0, len(byScript))
	for _, t := range byScript {
		tables = append(tables, t)
	}
	return &Classifier{known: rangetable.Merge(tables...)}
}

// Of reports the Unicode script of r. Runes of the Inherited script
// (combining marks) are reported as Inherited. Other runes outside
// every tracked script's range table are reported as Common, matching
// java.lang.Character.UnicodeScript's treatment of punctuation,
// digits, and other script-neutral codepoints.
func (c *Classifier) Of(r rune) Script {
	if unicode.Is(unicode.Inherited, r) {
		return Inherited
	}
	if !unicode.Is(c.known, r) {
		return Common
	}
	for s, t := range byScript {
		if unicode.Is(t, r) {
			return s
		}
	}
	return Common
}
