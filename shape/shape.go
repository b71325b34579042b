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

// Package shape provides the two glyph-substituting cmap facades
// built on top of gsub.Table: General, which substitutes per the
// script of each character and a caller-supplied feature whitelist,
// and Vertical, which always substitutes against the Latin script tag
// with every vertical-layout feature enabled.
//
// Grounded on SubstitutingCmapLookup (General) and
// SubstitutingCmapSubtable (Vertical) in the Apache FontBox source
// this module was distilled from.
package shape

import (
	"context"

	"github.com/go-otf/gsub/gsub"
	"github.com/go-otf/gsub/opentype/glyph"
	"github.com/go-otf/gsub/opentype/script"
)

// Cmap is the external character-to-glyph mapping collaborator: the
// font's native cmap subtable, unaware of GSUB. Both facades wrap one
// of these.
type Cmap interface {
	GlyphFor(ctx context.Context, charCode rune) glyph.ID
	CharsFor(ctx context.Context, gid glyph.ID) []rune
}

// ScriptOf classifies a character code by Unicode script. A
// *script.Classifier satisfies this via its Of method.
type ScriptOf interface {
	Of(r rune) script.Script
}

// General is the cmap facade used for ordinary horizontal text
// layout: each character's glyph is substituted according to the
// Unicode script of that character and the caller's whitelist of
// enabled feature tags (nil enables all features).
type General struct {
	Cmap            Cmap
	Classifier      ScriptOf
	Table           *gsub.Table
	EnabledFeatures map[string]bool
}

// GlyphFor returns the (possibly substituted) glyph for charCode.
func (g *General) GlyphFor(ctx context.Context, charCode rune) glyph.ID {
	gid := g.Cmap.GlyphFor(ctx, charCode)
	sc := g.Classifier.Of(charCode)
	return g.Table.Substitute(ctx, gid, sc, g.EnabledFeatures)
}

// CharsFor returns the character codes that map to sgid through this
// facade's substitution, or nil if sgid was never produced by
// GlyphFor.
func (g *General) CharsFor(ctx context.Context, sgid glyph.ID) []rune {
	gid, err := g.Table.Unsubstitute(ctx, sgid)
	if err != nil {
		return nil
	}
	return g.Cmap.CharsFor(ctx, gid)
}

// Vertical is the cmap facade used for vertical text layout. Unlike
// General, it always resolves against the "latn" OpenType script tag
// and never filters features by a whitelist — this matches the
// observed behaviour of the source's SubstitutingCmapSubtable, which
// has no script or feature-whitelist parameter at all.
type Vertical struct {
	Cmap  Cmap
	Table *gsub.Table
}

// GlyphFor returns the (possibly vertically-substituted) glyph for
// charCode.
func (v *Vertical) GlyphFor(ctx context.Context, charCode rune) glyph.ID {
	gid := v.Cmap.GlyphFor(ctx, charCode)
	return v.Table.Substitute(ctx, gid, script.Latin, nil)
}

// CharsFor returns the character codes that map to sgid through this
// facade's substitution, or nil if sgid was never produced by
// GlyphFor.
func (v *Vertical) CharsFor(ctx context.Context, sgid glyph.ID) []rune {
	gid, err := v.Table.Unsubstitute(ctx, sgid)
	if err != nil {
		return nil
	}
	return v.Cmap.CharsFor(ctx, gid)
}
