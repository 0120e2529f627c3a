package doctree

import (
	"regexp"
	"strings"
)

// markerKind identifies the family of list marker a line starts with
type markerKind int

const (
	markerNone markerKind = iota
	markerBullet
	markerNumbered
	markerLettered
	markerRoman
)

// strongBullets are glyphs that only ever introduce list items; a line
// starting with one needs fewer confirming neighbors than a numeric or
// ASCII marker, which also appears in headings and ordinary prose.
var strongBullets = map[rune]bool{
	'•': true, '●': true, '◦': true, '◉': true,
	'■': true, '▪': true, '□': true, '▫': true,
	'→': true, '▶': true, '►': true, '▸': true, '➤': true, '➜': true,
	'☐': true, '☑': true, '✓': true,
	'‣': true, '⁃': true,
}

// weakBullets are ASCII characters used both as bullets and as ordinary
// punctuation
var weakBullets = map[rune]bool{
	'-': true, '–': true, '—': true, '*': true,
}

var (
	numberedMarker = regexp.MustCompile(`^\s*(\d{1,3})[.)]\s+`)
	letteredMarker = regexp.MustCompile(`^\s*([a-zA-Z])[.)]\s+`)
	romanMarker    = regexp.MustCompile(`^\s*([ivxlc]{1,7}|[IVXLC]{1,7})[.)]\s+`)
)

// listMarker describes the marker found at the start of a line
type listMarker struct {
	kind   markerKind
	prefix string
	strong bool
}

// detectMarker inspects a line's text for a leading list marker
func detectMarker(text string) (listMarker, bool) {
	trimmed := strings.TrimLeft(text, " \t")
	if trimmed == "" {
		return listMarker{}, false
	}

	runes := []rune(trimmed)
	first := runes[0]
	if strongBullets[first] {
		return listMarker{kind: markerBullet, prefix: string(first), strong: true}, true
	}
	if weakBullets[first] && len(runes) > 1 && runes[1] == ' ' {
		return listMarker{kind: markerBullet, prefix: string(first)}, true
	}

	// Roman before lettered: "i." would otherwise match the letter pattern
	if m := romanMarker.FindStringSubmatch(trimmed); m != nil {
		return listMarker{kind: markerRoman, prefix: m[1]}, true
	}
	if m := numberedMarker.FindStringSubmatch(trimmed); m != nil {
		return listMarker{kind: markerNumbered, prefix: m[1]}, true
	}
	if m := letteredMarker.FindStringSubmatch(trimmed); m != nil {
		return listMarker{kind: markerLettered, prefix: m[1]}, true
	}

	return listMarker{}, false
}

// sameFamily reports whether two markers belong to the same list family
func sameFamily(a, b listMarker) bool {
	return a.kind == b.kind
}

// stripMarker removes the leading list marker from a line's text
func stripMarker(text string, marker listMarker) string {
	trimmed := strings.TrimLeft(text, " \t")
	switch marker.kind {
	case markerBullet:
		return strings.TrimLeft(strings.TrimPrefix(trimmed, marker.prefix), " \t")
	case markerNumbered:
		return numberedMarker.ReplaceAllString(trimmed, "")
	case markerLettered:
		return letteredMarker.ReplaceAllString(trimmed, "")
	case markerRoman:
		return romanMarker.ReplaceAllString(trimmed, "")
	default:
		return trimmed
	}
}

// ordered reports whether the marker family produces a numbered list
func (m listMarker) ordered() bool {
	return m.kind == markerNumbered || m.kind == markerLettered || m.kind == markerRoman
}
