package script

import "testing"

func TestTagsNewestFirst(t *testing.T) {
	got := Tags(Bengali)
	want := []string{"bng2", "beng"}
	if len(got) != len(want) || got[0] != want[0] || got[1] != want[1] {
		t.Fatalf("Tags(Bengali) = %v, want %v", got, want)
	}
}

func TestTagsUnrecognizedFallsBackToDefault(t *testing.T) {
	got := Tags(Script(9999))
	if len(got) != 1 || got[0] != tagDefault {
		t.Fatalf("Tags(unrecognized) = %v, want [%q]", got, tagDefault)
	}
}

func TestResolverPrefersSupportedRevision(t *testing.T) {
	r := NewResolver([]string{"latn", "beng"})
	if got := r.Tag(Bengali); got != "beng" {
		t.Errorf("Tag(Bengali) = %q, want %q (table only supports the older revision)", got, "beng")
	}
}

func TestResolverUsesNewestWhenBothSupported(t *testing.T) {
	r := NewResolver([]string{"bng2", "beng"})
	if got := r.Tag(Bengali); got != "bng2" {
		t.Errorf("Tag(Bengali) = %q, want %q", got, "bng2")
	}
}

func TestResolverFallsBackToHintForAmbiguousScript(t *testing.T) {
	r := NewResolver([]string{"latn", "grek"})
	if got := r.Tag(Latin); got != "latn" {
		t.Fatalf("Tag(Latin) = %q, want latn", got)
	}
	// Common has no table entry of its own; once a script has resolved,
	// an ambiguous run reuses that hint instead of falling back to the
	// table's first declared script.
	if got := r.Tag(Common); got != "latn" {
		t.Errorf("Tag(Common) after Latin = %q, want %q (hint)", got, "latn")
	}
}

func TestResolverGuessesFirstScriptWithNoHint(t *testing.T) {
	r := NewResolver([]string{"grek", "latn"})
	if got := r.Tag(Common); got != "grek" {
		t.Errorf("Tag(Common) with no prior hint = %q, want first supported script %q", got, "grek")
	}
}

func TestClassifierOf(t *testing.T) {
	c := NewClassifier()
	cases := []struct {
		r    rune
		want Script
	}{
		{'A', Latin},
		{'α', Greek},
		{'あ', Hiragana},
		{'0', Common},
		{' ', Common},
	}
	for _, tc := range cases {
		if got := c.Of(tc.r); got != tc.want {
			t.Errorf("Of(%q) = %v, want %v", tc.r, got, tc.want)
		}
	}
}
