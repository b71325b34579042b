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

package gsub

import (
	"fmt"
	"os"

	"github.com/go-otf/gsub/internal/gsuberr"
	"github.com/go-otf/gsub/internal/sfntio"
	"github.com/go-otf/gsub/opentype/coverage"
	"github.com/go-otf/gsub/opentype/glyph"
	"github.com/go-otf/gsub/opentype/script"
)

// warnf is the only "logging" this package does, matching the
// source's readGsubSubtable texture: an unsupported lookup type is a
// diagnostic, not a parse failure, so it goes to stderr and the
// lookup is parsed as empty (inert) rather than aborting the whole
// table.
func warnf(format string, a ...interface{}) {
	fmt.Fprintf(os.Stderr, "gsub: "+format+"\n", a...)
}

// Read parses a GSUB table from r, whose underlying stream must start
// at the first byte of the table: Read seeks to position 0 of that
// stream, and sfntio.Reader's SeekPos positions are offsets from the
// start of the stream passed to sfntio.New (its name argument only
// labels error messages).
func Read(r *sfntio.Reader) (*Table, error) {
	if err := r.SeekPos(0); err != nil {
		return nil, err
	}
	if _, err := r.ReadUint16(); err != nil { // majorVersion, unused
		return nil, err
	}
	minorVersion, err := r.ReadUint16()
	if err != nil {
		return nil, err
	}
	scriptListOffset, err := r.ReadUint16()
	if err != nil {
		return nil, err
	}
	featureListOffset, err := r.ReadUint16()
	if err != nil {
		return nil, err
	}
	lookupListOffset, err := r.ReadUint16()
	if err != nil {
		return nil, err
	}
	endOfHeader := int64(10)
	var featureVariationsOffset uint32
	if minorVersion == 1 {
		featureVariationsOffset, err = r.ReadUint32()
		if err != nil {
			return nil, err
		}
		endOfHeader += 4
	}

	size := r.Size()
	for _, offset := range []uint32{
		uint32(scriptListOffset), uint32(featureListOffset), uint32(lookupListOffset), featureVariationsOffset,
	} {
		if 0 < offset && int64(offset) < endOfHeader || int64(offset) > size {
			return nil, r.Errorf("header has an invalid offset %d", offset)
		}
	}

	scripts, err := readScriptList(r, int64(scriptListOffset))
	if err != nil {
		return nil, err
	}
	features, err := readFeatureList(r, int64(featureListOffset))
	if err != nil {
		return nil, err
	}
	lookups, warnings, err := readLookupList(r, int64(lookupListOffset))
	if err != nil {
		return nil, err
	}

	t := &Table{
		Scripts:  scripts,
		Features: features,
		Lookups:  lookups,
		Warnings: warnings,
		cache:    make(map[glyph.ID]glyph.ID),
		reverse:  make(map[glyph.ID]glyph.ID),
	}
	tags := make([]string, len(scripts))
	for i, s := range scripts {
		tags[i] = s.Tag
	}
	t.hint = script.NewResolver(tags)
	return t, nil
}

func readScriptList(r *sfntio.Reader, offset int64) ([]ScriptRecord, error) {
	if err := r.SeekPos(offset); err != nil {
		return nil, err
	}
	count, err := r.ReadUint16()
	if err != nil {
		return nil, err
	}
	records := make([]ScriptRecord, count)
	offsets := make([]uint16, count)
	for i := range records {
		tag, err := r.ReadTag()
		if err != nil {
			return nil, err
		}
		off, err := r.ReadUint16()
		if err != nil {
			return nil, err
		}
		records[i].Tag = tag
		offsets[i] = off
	}
	for i := range records {
		tbl, err := readScriptTable(r, offset+int64(offsets[i]))
		if err != nil {
			return nil, err
		}
		records[i].Table = tbl
	}
	return records, nil
}

func readScriptTable(r *sfntio.Reader, offset int64) (ScriptTable, error) {
	if err := r.SeekPos(offset); err != nil {
		return ScriptTable{}, err
	}
	defaultLangSys, err := r.ReadUint16()
	if err != nil {
		return ScriptTable{}, err
	}
	langSysCount, err := r.ReadUint16()
	if err != nil {
		return ScriptTable{}, err
	}
	records := make([]LangSysRecord, langSysCount)
	offsets := make([]uint16, langSysCount)
	for i := range records {
		tag, err := r.ReadTag()
		if err != nil {
			return ScriptTable{}, err
		}
		off, err := r.ReadUint16()
		if err != nil {
			return ScriptTable{}, err
		}
		records[i].Tag = tag
		offsets[i] = off
	}

	var st ScriptTable
	if defaultLangSys != 0 {
		tbl, err := readLangSysTable(r, offset+int64(defaultLangSys))
		if err != nil {
			return ScriptTable{}, err
		}
		st.Default = &tbl
	}
	for i := range records {
		tbl, err := readLangSysTable(r, offset+int64(offsets[i]))
		if err != nil {
			return ScriptTable{}, err
		}
		records[i].Table = tbl
	}
	st.LangSys = records
	return st, nil
}

func readLangSysTable(r *sfntio.Reader, offset int64) (LangSysTable, error) {
	if err := r.SeekPos(offset); err != nil {
		return LangSysTable{}, err
	}
	if _, err := r.ReadUint16(); err != nil { // lookupOrder, unused
		return LangSysTable{}, err
	}
	required, err := r.ReadUint16()
	if err != nil {
		return LangSysTable{}, err
	}
	count, err := r.ReadUint16()
	if err != nil {
		return LangSysTable{}, err
	}
	indices := make([]int, count)
	for i := range indices {
		v, err := r.ReadUint16()
		if err != nil {
			return LangSysTable{}, err
		}
		indices[i] = int(v)
	}
	return LangSysTable{RequiredFeature: int(required), FeatureIndices: indices}, nil
}

func readFeatureList(r *sfntio.Reader, offset int64) ([]FeatureRecord, error) {
	if err := r.SeekPos(offset); err != nil {
		return nil, err
	}
	count, err := r.ReadUint16()
	if err != nil {
		return nil, err
	}
	records := make([]FeatureRecord, count)
	offsets := make([]uint16, count)
	for i := range records {
		tag, err := r.ReadTag()
		if err != nil {
			return nil, err
		}
		off, err := r.ReadUint16()
		if err != nil {
			return nil, err
		}
		records[i].Tag = tag
		offsets[i] = off
	}
	for i := range records {
		tbl, err := readFeatureTable(r, offset+int64(offsets[i]))
		if err != nil {
			return nil, err
		}
		records[i].Table = tbl
	}
	return records, nil
}

func readFeatureTable(r *sfntio.Reader, offset int64) (FeatureTable, error) {
	if err := r.SeekPos(offset); err != nil {
		return FeatureTable{}, err
	}
	if _, err := r.ReadUint16(); err != nil { // featureParams, unused
		return FeatureTable{}, err
	}
	count, err := r.ReadUint16()
	if err != nil {
		return FeatureTable{}, err
	}
	indices := make([]int, count)
	for i := range indices {
		v, err := r.ReadUint16()
		if err != nil {
			return FeatureTable{}, err
		}
		indices[i] = int(v)
	}
	return FeatureTable{LookupListIndices: indices}, nil
}

// readLookupList returns the parsed lookups alongside any
// UnsupportedLookupType warnings recorded while parsing them: one per
// lookup whose type is not single substitution. These are diagnostic,
// not fatal (see readLookupTable).
func readLookupList(r *sfntio.Reader, offset int64) ([]LookupTable, []error, error) {
	if err := r.SeekPos(offset); err != nil {
		return nil, nil, err
	}
	count, err := r.ReadUint16()
	if err != nil {
		return nil, nil, err
	}
	offsets := make([]uint16, count)
	for i := range offsets {
		v, err := r.ReadUint16()
		if err != nil {
			return nil, nil, err
		}
		offsets[i] = v
	}
	lookups := make([]LookupTable, count)
	var warnings []error
	for i := range lookups {
		tbl, unsupported, err := readLookupTable(r, offset+int64(offsets[i]))
		if err != nil {
			return nil, nil, err
		}
		if unsupported != nil {
			warnings = append(warnings, unsupported)
		}
		lookups[i] = tbl
	}
	return lookups, warnings, nil
}

const lookupTypeSingle = 1

// readLookupTable decodes one lookup. A lookup whose type is not
// single substitution is not a parse failure: it is recorded as an
// UnsupportedLookupType warning and parsed as inert (no subtables),
// matching the source's readGsubSubtable, which logs and skips rather
// than aborting the whole table.
func readLookupTable(r *sfntio.Reader, offset int64) (LookupTable, *gsuberr.UnsupportedLookupType, error) {
	if err := r.SeekPos(offset); err != nil {
		return LookupTable{}, nil, err
	}
	lookupType, err := r.ReadUint16()
	if err != nil {
		return LookupTable{}, nil, err
	}
	flag, err := r.ReadUint16()
	if err != nil {
		return LookupTable{}, nil, err
	}
	subTableCount, err := r.ReadUint16()
	if err != nil {
		return LookupTable{}, nil, err
	}
	subOffsets := make([]uint16, subTableCount)
	for i := range subOffsets {
		v, err := r.ReadUint16()
		if err != nil {
			return LookupTable{}, nil, err
		}
		subOffsets[i] = v
	}
	var markFilteringSet uint16
	if LookupFlag(flag)&UseMarkFilteringSet != 0 {
		markFilteringSet, err = r.ReadUint16()
		if err != nil {
			return LookupTable{}, nil, err
		}
	}

	lt := LookupTable{Type: lookupType, Flag: LookupFlag(flag), MarkFilteringSet: markFilteringSet}
	if lookupType != lookupTypeSingle {
		warnf("lookup type %d is not supported and will be ignored", lookupType)
		return lt, &gsuberr.UnsupportedLookupType{Type: lookupType}, nil
	}
	lt.Subtables = make([]Subtable, subTableCount)
	for i := range lt.Subtables {
		sub, err := readSubtable(r, offset+int64(subOffsets[i]))
		if err != nil {
			return LookupTable{}, nil, err
		}
		lt.Subtables[i] = sub
	}
	return lt, nil, nil
}

func readSubtable(r *sfntio.Reader, offset int64) (Subtable, error) {
	if err := r.SeekPos(offset); err != nil {
		return Subtable{}, err
	}
	format, err := r.ReadUint16()
	if err != nil {
		return Subtable{}, err
	}

	switch SubtableFormat(format) {
	case SingleSubstDelta:
		coverageOffset, err := r.ReadUint16()
		if err != nil {
			return Subtable{}, err
		}
		delta, err := r.ReadInt16()
		if err != nil {
			return Subtable{}, err
		}
		cov, err := coverage.Read(r, offset+int64(coverageOffset))
		if err != nil {
			return Subtable{}, err
		}
		return Subtable{Format: SingleSubstDelta, Coverage: cov, Delta: delta}, nil

	case SingleSubstList:
		coverageOffset, err := r.ReadUint16()
		if err != nil {
			return Subtable{}, err
		}
		glyphCount, err := r.ReadUint16()
		if err != nil {
			return Subtable{}, err
		}
		subs := make([]glyph.ID, glyphCount)
		for i := range subs {
			v, err := r.ReadUint16()
			if err != nil {
				return Subtable{}, err
			}
			subs[i] = glyph.ID(v)
		}
		cov, err := coverage.Read(r, offset+int64(coverageOffset))
		if err != nil {
			return Subtable{}, err
		}
		return Subtable{Format: SingleSubstList, Coverage: cov, Substitutes: subs}, nil

	default:
		return Subtable{}, r.Errorf("unknown single-substitution format %d", format)
	}
}
