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
	"context"

	"github.com/go-otf/gsub/internal/gsuberr"
	"github.com/go-otf/gsub/opentype/glyph"
	"github.com/go-otf/gsub/opentype/script"
)

// Substitute resolves the glyph produced by applying this table's
// first type-1 (single substitution) lookup reachable for sc's
// script, filtered by enabledFeatures, to gid.
//
// enabledFeatures is a whitelist of feature tags to consider; nil
// means "no whitelist, consider every feature" — a required feature
// is always considered regardless of the whitelist. gid ==
// glyph.None passes through unchanged. The result for a given gid is
// memoized the first time a lookup covers it; a gid that no selected
// lookup covers is returned unchanged and not memoized. Because
// script classification for
// ambiguous runes (Common, Inherited) depends on surrounding context,
// the same gid could otherwise resolve differently on different
// calls, which would break the one-to-one mapping Unsubstitute
// depends on.
func (t *Table) Substitute(ctx context.Context, gid glyph.ID, sc script.Script, enabledFeatures map[string]bool) glyph.ID {
	if gid == glyph.None {
		return glyph.None
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if cached, ok := t.cache[gid]; ok {
		return cached
	}

	tag := t.hint.Tag(sc)
	langSys := t.langSysTables(tag)
	if len(langSys) == 0 {
		return gid
	}
	features := t.featureRecords(langSys, enabledFeatures)
	if len(features) == 0 {
		return gid
	}
	for _, lookup := range t.lookupTables(features) {
		if lookup.Type != lookupTypeSingle {
			continue
		}
		sgid, matched := applyLookup(lookup, gid)
		if !matched {
			return gid
		}
		t.cache[gid] = sgid
		t.reverse[sgid] = gid
		return sgid
	}
	return gid
}

// Unsubstitute looks up the glyph that Substitute previously mapped
// to sgid. It returns an error wrapping gsuberr.UnknownReverseMapping
// if sgid was never produced by a call to Substitute.
func (t *Table) Unsubstitute(ctx context.Context, sgid glyph.ID) (glyph.ID, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	gid, ok := t.reverse[sgid]
	if !ok {
		return glyph.None, &gsuberr.UnknownReverseMapping{GID: int(sgid)}
	}
	return gid, nil
}

func (t *Table) langSysTables(scriptTag string) []*LangSysTable {
	var result []*LangSysTable
	for _, rec := range t.Scripts {
		if rec.Tag != scriptTag {
			continue
		}
		if rec.Table.Default != nil {
			result = append(result, rec.Table.Default)
		}
		for i := range rec.Table.LangSys {
			result = append(result, &rec.Table.LangSys[i].Table)
		}
	}
	return result
}

func (t *Table) featureRecords(langSys []*LangSysTable, enabled map[string]bool) []*FeatureRecord {
	var result []*FeatureRecord
	for _, ls := range langSys {
		if ls.RequiredFeature != NoRequiredFeature && ls.RequiredFeature >= 0 && ls.RequiredFeature < len(t.Features) {
			result = append(result, &t.Features[ls.RequiredFeature])
		}
		for _, idx := range ls.FeatureIndices {
			if idx < 0 || idx >= len(t.Features) {
				continue
			}
			rec := &t.Features[idx]
			if enabled == nil || enabled[rec.Tag] {
				result = append(result, rec)
			}
		}
	}
	return result
}

func (t *Table) lookupTables(features []*FeatureRecord) []*LookupTable {
	var result []*LookupTable
	for _, f := range features {
		for _, idx := range f.Table.LookupListIndices {
			if idx < 0 || idx >= len(t.Lookups) {
				continue
			}
			result = append(result, &t.Lookups[idx])
		}
	}
	return result
}

// applyLookup reports whether some subtable of lookup covers gid, and
// if so the glyph it substitutes. A coverage miss is reported as
// (gid, false) rather than (gid, true): the caller must not cache an
// identity mapping for a glyph the lookup never actually touched.
func applyLookup(lookup *LookupTable, gid glyph.ID) (glyph.ID, bool) {
	for i := range lookup.Subtables {
		sub := &lookup.Subtables[i]
		if sub.Coverage.Index(gid) >= 0 {
			return sub.Apply(gid), true
		}
	}
	return gid, false
}
