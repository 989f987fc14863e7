// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package markup

import "strings"

const (
	strongMarker = "**"
	italicMarker = "*"
)

// parseEmphasis splits text into spans in two passes. The first pass pairs
// "**" markers into strong spans; the second pairs "*" markers into italic
// spans, but only inside text left plain by the first pass. Pairing is
// non-greedy: an opener closes at the first following marker. Unmatched
// markers and pairs enclosing only whitespace stay literal.
func parseEmphasis(text string) []Span {
	var spans []Span
	for _, s := range pairMarkers(text, strongMarker, SpanStrong) {
		if s.Kind != SpanPlain {
			spans = appendSpan(spans, s)
			continue
		}
		for _, inner := range pairMarkers(s.Text, italicMarker, SpanItalic) {
			spans = appendSpan(spans, inner)
		}
	}
	return spans
}

// pairMarkers scans text left to right for marker pairs and returns the
// resulting spans. Text between a pair becomes a span of the given kind.
func pairMarkers(text, marker string, kind SpanKind) []Span {
	var spans []Span
	var plain strings.Builder

	rest := text
	for {
		open := strings.Index(rest, marker)
		if open < 0 {
			break
		}
		afterOpen := rest[open+len(marker):]
		end := strings.Index(afterOpen, marker)
		if end < 0 {
			break
		}

		plain.WriteString(rest[:open])
		if inner := afterOpen[:end]; strings.TrimSpace(inner) == "" {
			// Nothing visible enclosed: keep the pair as literal text.
			plain.WriteString(marker + inner + marker)
			rest = afterOpen[end+len(marker):]
			continue
		}

		if plain.Len() > 0 {
			spans = append(spans, Span{Kind: SpanPlain, Text: plain.String()})
			plain.Reset()
		}
		spans = append(spans, Span{Kind: kind, Text: afterOpen[:end]})
		rest = afterOpen[end+len(marker):]
	}

	plain.WriteString(rest)
	if plain.Len() > 0 {
		spans = append(spans, Span{Kind: SpanPlain, Text: plain.String()})
	}
	return spans
}

// appendSpan appends s, merging adjacent plain spans.
func appendSpan(spans []Span, s Span) []Span {
	if s.Text == "" {
		return spans
	}
	if n := len(spans); n > 0 && s.Kind == SpanPlain && spans[n-1].Kind == SpanPlain {
		spans[n-1].Text += s.Text
		return spans
	}
	return append(spans, s)
}
