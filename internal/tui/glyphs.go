package tui

import (
	"os"
	"strings"
	"sync"
)

// Terminal apps can't change the user's font, so affordances (checkmarks, slider
// tracks, separators) come in a Unicode and an ASCII set.

type glyphSet int

const (
	glyphSetUnicode glyphSet = iota
	glyphSetASCII
)

var (
	glyphsMu      sync.RWMutex
	currentGlyphs = glyphSetUnicode
)

func applyGlyphPreference() {
	switch strings.ToLower(strings.TrimSpace(os.Getenv("PROMPTBOARD_TUI_GLYPHS"))) {
	case "", "unicode", "utf8":
		setGlyphs(glyphSetUnicode)
	case "ascii":
		setGlyphs(glyphSetASCII)
	}
}

func setGlyphs(gs glyphSet) {
	glyphsMu.Lock()
	currentGlyphs = gs
	glyphsMu.Unlock()
}

func glyphs() glyphSet {
	glyphsMu.RLock()
	gs := currentGlyphs
	glyphsMu.RUnlock()
	return gs
}

func glyphBadgeOn() string {
	if glyphs() == glyphSetASCII {
		return "x"
	}
	return "✓"
}

func glyphTrackFill() string {
	if glyphs() == glyphSetASCII {
		return "="
	}
	return "━"
}

func glyphTrackEmpty() string {
	if glyphs() == glyphSetASCII {
		return "-"
	}
	return "─"
}

func glyphTrackKnob() string {
	if glyphs() == glyphSetASCII {
		return "o"
	}
	return "●"
}

func glyphCursor() string {
	if glyphs() == glyphSetASCII {
		return ">"
	}
	return "▸"
}

func glyphHRule() string {
	if glyphs() == glyphSetASCII {
		return "-"
	}
	return "─"
}
