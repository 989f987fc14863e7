// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package markup

import "strings"

// =============================================================================
// SPANS
// =============================================================================

// SpanKind identifies the inline style of a span.
type SpanKind int

const (
	SpanPlain SpanKind = iota
	SpanStrong
	SpanItalic
)

// String returns the string representation of the span kind.
func (k SpanKind) String() string {
	switch k {
	case SpanStrong:
		return "strong"
	case SpanItalic:
		return "italic"
	default:
		return "plain"
	}
}

// Span is a run of text with a single inline style.
type Span struct {
	Kind SpanKind
	Text string
}

// =============================================================================
// BLOCKS
// =============================================================================

// BlockKind identifies the kind of a block.
type BlockKind int

const (
	Paragraph BlockKind = iota
	ListItem
)

// String returns the string representation of the block kind.
func (k BlockKind) String() string {
	if k == ListItem {
		return "list_item"
	}
	return "paragraph"
}

// Block is one renderable unit of reply text.
type Block struct {
	Kind  BlockKind
	Spans []Span

	// Ordinal is the number parsed from an ordered item prefix.
	// Only meaningful when Ordered is true.
	Ordinal int
	Ordered bool
	// Number is the digit prefix as written, kept for ordinals too large
	// to parse.
	Number string

	// RunStart marks the first item of a list run.
	RunStart bool
}

// Text returns the block text with all emphasis removed.
func (b Block) Text() string {
	var sb strings.Builder
	for _, s := range b.Spans {
		sb.WriteString(s.Text)
	}
	return sb.String()
}

// HasEmphasis reports whether the block contains a strong or italic span.
func (b Block) HasEmphasis() bool {
	for _, s := range b.Spans {
		if s.Kind != SpanPlain {
			return true
		}
	}
	return false
}

// Runs groups blocks for renderers that need list containers.
// Each paragraph is its own group; each list run is one group.
func Runs(blocks []Block) [][]Block {
	var groups [][]Block
	for i, b := range blocks {
		startsGroup := b.Kind == Paragraph || b.RunStart || i == 0 || blocks[i-1].Kind != ListItem
		if startsGroup {
			groups = append(groups, []Block{b})
			continue
		}
		last := len(groups) - 1
		groups[last] = append(groups[last], b)
	}
	return groups
}
