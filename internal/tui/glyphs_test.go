package tui

import "testing"

func TestGlyphs_FromEnv(t *testing.T) {
	t.Setenv("PROMPTBOARD_TUI_GLYPHS", "")
	setGlyphs(glyphSetUnicode)
	applyGlyphPreference()
	if got := glyphs(); got != glyphSetUnicode {
		t.Fatalf("expected unicode glyphs by default; got %v", got)
	}

	t.Setenv("PROMPTBOARD_TUI_GLYPHS", "ascii")
	applyGlyphPreference()
	if got := glyphs(); got != glyphSetASCII {
		t.Fatalf("expected ascii glyphs; got %v", got)
	}
	if glyphTrackKnob() != "o" || glyphBadgeOn() != "x" {
		t.Fatalf("expected ascii glyph variants")
	}

	// Unknown values are ignored (keep current).
	t.Setenv("PROMPTBOARD_TUI_GLYPHS", "bogus")
	applyGlyphPreference()
	if got := glyphs(); got != glyphSetASCII {
		t.Fatalf("expected unknown to be ignored; got %v", got)
	}

	t.Setenv("PROMPTBOARD_TUI_GLYPHS", "unicode")
	applyGlyphPreference()
	if got := glyphs(); got != glyphSetUnicode {
		t.Fatalf("expected unicode glyphs; got %v", got)
	}
}
