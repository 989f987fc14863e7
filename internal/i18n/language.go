// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package i18n provides the supported UI languages and the bilingual text
// tables. Display strings are looked up from immutable tables; anything that
// depends on runtime state (such as the theme button) is computed on demand.
package i18n

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
	"golang.org/x/text/unicode/norm"
)

// ErrUnsupportedLanguage indicates a language outside the supported set.
var ErrUnsupportedLanguage = errors.New("unsupported language")

// Language is a supported UI and prompt language.
type Language struct {
	tag language.Tag
}

var (
	English = Language{tag: language.English}
	Khmer   = Language{tag: language.Khmer}
)

// Supported lists the supported languages, default first.
var Supported = []Language{English, Khmer}

var (
	supportedTags = []language.Tag{language.English, language.Khmer}
	matcher       = language.NewMatcher(supportedTags)
)

// Parse resolves a language code, BCP 47 tag or English language name.
// Regional variants such as "en-US" or "km-KH" match their base language.
func Parse(s string) (Language, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	switch s {
	case "english":
		return English, nil
	case "khmer", "cambodian":
		return Khmer, nil
	case "":
		return Language{}, fmt.Errorf("%w: empty", ErrUnsupportedLanguage)
	}

	tag, err := language.Parse(s)
	if err != nil {
		return Language{}, fmt.Errorf("%w: %q", ErrUnsupportedLanguage, s)
	}
	_, idx, conf := matcher.Match(tag)
	if conf == language.No {
		return Language{}, fmt.Errorf("%w: %q", ErrUnsupportedLanguage, s)
	}
	return Supported[idx], nil
}

// Code returns the two-letter language code ("en" or "km"). The zero
// Language has no code; x/text would otherwise guess "en" for it.
func (l Language) Code() string {
	base, conf := l.tag.Base()
	if conf != language.Exact {
		return ""
	}
	return base.String()
}

// String implements fmt.Stringer.
func (l Language) String() string {
	return l.Code()
}

// Tag returns the underlying BCP 47 tag.
func (l Language) Tag() language.Tag {
	return l.tag
}

// IsZero reports whether l is the zero Language.
func (l Language) IsZero() bool {
	return l.tag == language.Und
}

// Toggle returns the other supported language.
func (l Language) Toggle() Language {
	if l == Khmer {
		return English
	}
	return Khmer
}

// SelfName returns the language name written in that language, for example
// "ខ្មែរ" for Khmer.
func (l Language) SelfName() string {
	if name := display.Self.Name(l.tag); name != "" {
		return name
	}
	return l.Code()
}

// MarshalText implements encoding.TextMarshaler.
func (l Language) MarshalText() ([]byte, error) {
	return []byte(l.Code()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (l *Language) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*l = parsed
	return nil
}

// NormalizeInput trims user input and converts it to NFC so that composed
// and decomposed sequences produce identical prompts.
func NormalizeInput(s string) string {
	return norm.NFC.String(strings.TrimSpace(s))
}
