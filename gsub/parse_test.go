package gsub

import (
	"bytes"
	"errors"
	"testing"

	"github.com/go-otf/gsub/internal/gsuberr"
	"github.com/go-otf/gsub/internal/sfntio"
	"github.com/go-otf/gsub/opentype/glyph"
)

type sectionSized struct {
	*bytes.Reader
}

func (s sectionSized) Size() int64 { return s.Reader.Size() }

func newReader(data []byte) *sfntio.Reader {
	return sfntio.New("GSUB", sectionSized{bytes.NewReader(data)})
}

func u16(v uint16) []byte { return []byte{byte(v >> 8), byte(v)} }

// buildMinimalGsub assembles, by hand, the bytes for: one script
// ("latn") with a default language system requiring no feature and
// listing feature 0 ("liga"), which activates lookup 0, a type-1
// single-substitution lookup with one Format-1 subtable: delta +5
// over the single covered glyph 10. This mirrors spec scenario 1.
func buildMinimalGsub() []byte {
	// Layout (all offsets are relative to their own list's start):
	//   header (10 bytes, minorVersion 0)
	//   scriptList
	//   featureList
	//   lookupList
	const headerLen = 10

	var scriptList, featureList, lookupList []byte

	// --- scriptList ---
	{
		// ScriptTable for "latn": defaultLangSys offset 4, langSysCount 0
		scriptTable := append(u16(4), u16(0)...)
		// LangSysTable: lookupOrder 0, requiredFeatureIndex 0xFFFF, featureIndexCount 1, [0]
		langSys := append(u16(0), u16(0xFFFF)...)
		langSys = append(langSys, u16(1)...)
		langSys = append(langSys, u16(0)...)
		scriptTable = append(scriptTable, langSys...)

		scriptRecordsHeader := u16(1) // scriptCount
		// scriptRecord: tag "latn", offset (after the count+records header)
		recordsLen := 2 + 6 // scriptCount(2) + 1 record(4 tag + 2 offset)
		scriptOffset := uint16(recordsLen)
		scriptRecordsHeader = append(scriptRecordsHeader, []byte("latn")...)
		scriptRecordsHeader = append(scriptRecordsHeader, u16(scriptOffset)...)

		scriptList = append(scriptRecordsHeader, scriptTable...)
	}

	// --- featureList ---
	{
		featureTable := append(u16(0), u16(1)...)      // featureParams 0, lookupIndexCount 1
		featureTable = append(featureTable, u16(0)...) // lookup index 0

		header := u16(1) // featureCount
		recordsLen := 2 + 6
		header = append(header, []byte("liga")...)
		header = append(header, u16(uint16(recordsLen))...)

		featureList = append(header, featureTable...)
	}

	// --- lookupList ---
	{
		// Subtable: format 1, coverageOffset 6, deltaGlyphID 5, then coverage
		coverage := append(u16(1), u16(1)...) // format 1, glyphCount 1
		coverage = append(coverage, u16(10)...)

		subtable := append(u16(1), u16(6)...)  // substFormat 1, coverageOffset 6
		subtable = append(subtable, u16(5)...) // deltaGlyphID 5
		subtable = append(subtable, coverage...)

		lookupTable := append(u16(1), u16(0)...)     // lookupType 1, lookupFlag 0
		lookupTable = append(lookupTable, u16(1)...) // subTableCount 1
		lookupTable = append(lookupTable, u16(8)...) // subtable offset (after 8-byte lookup header)
		lookupTable = append(lookupTable, subtable...)

		header := u16(1)                   // lookupCount
		header = append(header, u16(4)...) // lookup offset (after 2+2 header)

		lookupList = append(header, lookupTable...)
	}

	scriptListOffset := uint16(headerLen)
	featureListOffset := uint16(headerLen + len(scriptList))
	lookupListOffset := uint16(headerLen + len(scriptList) + len(featureList))

	var buf []byte
	buf = append(buf, u16(1)...) // majorVersion
	buf = append(buf, u16(0)...) // minorVersion
	buf = append(buf, u16(scriptListOffset)...)
	buf = append(buf, u16(featureListOffset)...)
	buf = append(buf, u16(lookupListOffset)...)
	buf = append(buf, scriptList...)
	buf = append(buf, featureList...)
	buf = append(buf, lookupList...)
	return buf
}

func TestReadMinimalTable(t *testing.T) {
	data := buildMinimalGsub()
	tbl, err := Read(newReader(data))
	if err != nil {
		t.Fatalf("Read: %v", err)
	}

	if len(tbl.Scripts) != 1 || tbl.Scripts[0].Tag != "latn" {
		t.Fatalf("Scripts = %+v", tbl.Scripts)
	}
	if tbl.Scripts[0].Table.Default == nil {
		t.Fatal("expected a default LangSysTable")
	}
	if got := tbl.Scripts[0].Table.Default.RequiredFeature; got != NoRequiredFeature {
		t.Errorf("RequiredFeature = %d, want NoRequiredFeature", got)
	}
	if len(tbl.Features) != 1 || tbl.Features[0].Tag != "liga" {
		t.Fatalf("Features = %+v", tbl.Features)
	}
	if len(tbl.Lookups) != 1 || tbl.Lookups[0].Type != lookupTypeSingle {
		t.Fatalf("Lookups = %+v", tbl.Lookups)
	}
	sub := tbl.Lookups[0].Subtables[0]
	if sub.Format != SingleSubstDelta || sub.Delta != 5 {
		t.Fatalf("Subtable = %+v", sub)
	}
	if idx := sub.Coverage.Index(10); idx != 0 {
		t.Fatalf("Coverage.Index(10) = %d, want 0", idx)
	}
	if got := sub.Apply(10); got != 15 {
		t.Errorf("Apply(10) = %d, want 15", got)
	}
	if got := sub.Apply(glyph.ID(99)); got != 99 {
		t.Errorf("Apply(99) = %d, want 99 (uncovered)", got)
	}
}

// buildGsubWithUnsupportedLookup is buildMinimalGsub with its one
// lookup's type changed to 4 (ligature substitution, out of scope):
// no subtable offsets, so the lookup table ends after its 6-byte
// header.
func buildGsubWithUnsupportedLookup() []byte {
	const headerLen = 10
	var scriptList, featureList, lookupList []byte

	{
		scriptTable := append(u16(4), u16(0)...)
		langSys := append(u16(0), u16(0xFFFF)...)
		langSys = append(langSys, u16(1)...)
		langSys = append(langSys, u16(0)...)
		scriptTable = append(scriptTable, langSys...)

		header := u16(1)
		header = append(header, []byte("latn")...)
		header = append(header, u16(8)...)
		scriptList = append(header, scriptTable...)
	}

	{
		featureTable := append(u16(0), u16(1)...)
		featureTable = append(featureTable, u16(0)...)
		header := u16(1)
		header = append(header, []byte("liga")...)
		header = append(header, u16(8)...)
		featureList = append(header, featureTable...)
	}

	{
		lookupTable := append(u16(4), u16(0)...)     // lookupType 4, lookupFlag 0
		lookupTable = append(lookupTable, u16(0)...) // subTableCount 0

		header := u16(1)
		header = append(header, u16(4)...)
		lookupList = append(header, lookupTable...)
	}

	scriptListOffset := uint16(headerLen)
	featureListOffset := uint16(headerLen + len(scriptList))
	lookupListOffset := uint16(headerLen + len(scriptList) + len(featureList))

	var buf []byte
	buf = append(buf, u16(1)...)
	buf = append(buf, u16(0)...)
	buf = append(buf, u16(scriptListOffset)...)
	buf = append(buf, u16(featureListOffset)...)
	buf = append(buf, u16(lookupListOffset)...)
	buf = append(buf, scriptList...)
	buf = append(buf, featureList...)
	buf = append(buf, lookupList...)
	return buf
}

func TestReadRecordsUnsupportedLookupWarning(t *testing.T) {
	tbl, err := Read(newReader(buildGsubWithUnsupportedLookup()))
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if len(tbl.Lookups) != 1 || tbl.Lookups[0].Type != 4 {
		t.Fatalf("Lookups = %+v", tbl.Lookups)
	}
	if len(tbl.Lookups[0].Subtables) != 0 {
		t.Fatalf("unsupported lookup should be inert, got %d subtables", len(tbl.Lookups[0].Subtables))
	}
	if len(tbl.Warnings) != 1 {
		t.Fatalf("Warnings = %v, want exactly one", tbl.Warnings)
	}
	var unsupported *gsuberr.UnsupportedLookupType
	if !errors.As(tbl.Warnings[0], &unsupported) {
		t.Fatalf("Warnings[0] = %v, want *gsuberr.UnsupportedLookupType", tbl.Warnings[0])
	}
	if unsupported.Type != 4 {
		t.Errorf("UnsupportedLookupType.Type = %d, want 4", unsupported.Type)
	}
}

func FuzzRead(f *testing.F) {
	f.Add(buildMinimalGsub())
	f.Fuzz(func(t *testing.T, data []byte) {
		// Parsing arbitrary bytes must never panic; malformed input is
		// reported as an error.
		Read(newReader(data))
	})
}
