// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package markup

import (
	"math"
	"strings"
	"unicode"
	"unicode/utf8"
)

// bulletMarkers are the line prefixes recognized as bullet items.
var bulletMarkers = []string{"•", "-"}

// Render converts raw reply text into blocks, in source order.
//
// Lines are trimmed individually. Blank lines produce no block and close any
// open list run. Consecutive list lines, ordered or bullet in any mix, form
// one run with one ListItem per line. Every other line is a Paragraph.
func Render(raw string) []Block {
	var blocks []Block
	inList := false

	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			inList = false
			continue
		}

		item, ok := parseListItem(line)
		if !ok {
			inList = false
			blocks = append(blocks, Block{
				Kind:  Paragraph,
				Spans: parseEmphasis(line),
			})
			continue
		}

		item.RunStart = !inList
		inList = true
		blocks = append(blocks, item)
	}

	return blocks
}

// parseListItem recognizes ordered ("12. text") and bullet ("- text",
// "• text") lines. The returned block carries the emphasis-parsed item text.
func parseListItem(line string) (Block, bool) {
	if ordinal, ordered, rest, ok := cutOrderedPrefix(line); ok {
		return Block{
			Kind:    ListItem,
			Spans:   parseEmphasis(rest),
			Ordinal: ordinal,
			Ordered: ordered,
			Number:  line[:strings.IndexByte(line, '.')],
		}, true
	}

	for _, marker := range bulletMarkers {
		if rest, ok := strings.CutPrefix(line, marker); ok {
			return Block{
				Kind:  ListItem,
				Spans: parseEmphasis(strings.TrimLeftFunc(rest, unicode.IsSpace)),
			}, true
		}
	}

	return Block{}, false
}

// cutOrderedPrefix matches one or more decimal digits, a period and at least
// one whitespace character. Digits from any script are accepted so Khmer
// numbering ("១. ") is recognized. ordered is false when the number does not
// fit in an int; the line is still a list item.
func cutOrderedPrefix(line string) (ordinal int, ordered bool, rest string, ok bool) {
	i := 0
	ordered = true
	for i < len(line) {
		r, size := utf8.DecodeRuneInString(line[i:])
		if !unicode.IsDigit(r) {
			break
		}
		d := digitValue(r)
		if ordered && ordinal > (math.MaxInt-d)/10 {
			ordered = false
		}
		if ordered {
			ordinal = ordinal*10 + d
		}
		i += size
	}
	if i == 0 || i >= len(line) || line[i] != '.' {
		return 0, false, "", false
	}
	i++

	after := line[i:]
	trimmed := strings.TrimLeftFunc(after, unicode.IsSpace)
	if len(trimmed) == len(after) {
		return 0, false, "", false
	}
	if !ordered {
		ordinal = 0
	}
	return ordinal, ordered, trimmed, true
}

// digitValue returns the numeric value of a decimal digit rune. Unicode lays
// out every decimal digit set as a contiguous run starting at zero.
func digitValue(r rune) int {
	if r >= '0' && r <= '9' {
		return int(r - '0')
	}
	zero := r
	for unicode.IsDigit(zero - 1) {
		zero--
	}
	return int(r-zero) % 10
}
