// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"github.com/charmbracelet/bubbles/key"
)

// =============================================================================
// KEY MAP DEFINITION
// =============================================================================

// KeyMap defines the keyboard bindings for the chat view.
type KeyMap struct {
	Submit      key.Binding
	HealthMode  key.Binding
	SymptomMode key.Binding
	ToggleLang  key.Binding
	ToggleTheme key.Binding
	Cancel      key.Binding
	Export      key.Binding
	Help        key.Binding
	PageUp      key.Binding
	PageDown    key.Binding
	Quit        key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("Enter", "send"),
		),
		HealthMode: key.NewBinding(
			key.WithKeys("f2"),
			key.WithHelp("F2", "health query mode"),
		),
		SymptomMode: key.NewBinding(
			key.WithKeys("f3"),
			key.WithHelp("F3", "symptom checker mode"),
		),
		ToggleLang: key.NewBinding(
			key.WithKeys("ctrl+l"),
			key.WithHelp("C-l", "switch language"),
		),
		ToggleTheme: key.NewBinding(
			key.WithKeys("ctrl+t"),
			key.WithHelp("C-t", "switch theme"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("Esc", "cancel request"),
		),
		Export: key.NewBinding(
			key.WithKeys("ctrl+e"),
			key.WithHelp("C-e", "export transcript"),
		),
		Help: key.NewBinding(
			key.WithKeys("f1"),
			key.WithHelp("F1", "toggle help"),
		),
		PageUp: key.NewBinding(
			key.WithKeys("pgup"),
			key.WithHelp("PgUp", "scroll up"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("pgdown"),
			key.WithHelp("PgDn", "scroll down"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("C-c", "quit"),
		),
	}
}

// ShortHelp returns the bindings shown in the footer.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Submit, k.HealthMode, k.SymptomMode, k.ToggleLang, k.Help, k.Quit}
}

// FullHelp returns all bindings, grouped.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Submit, k.Cancel, k.Export},
		{k.HealthMode, k.SymptomMode},
		{k.ToggleLang, k.ToggleTheme},
		{k.PageUp, k.PageDown},
		{k.Help, k.Quit},
	}
}
