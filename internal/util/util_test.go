// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package util

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
)

// =============================================================================
// ATOMIC WRITE TESTS
// =============================================================================

func TestAtomicWriteFile_Basic(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.txt")
	data := []byte("hello, world!")

	if err := AtomicWriteFile(path, data, 0600); err != nil {
		t.Fatalf("AtomicWriteFile failed: %v", err)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file: %v", err)
	}
	if string(content) != string(data) {
		t.Errorf("Content mismatch: got %q, want %q", content, data)
	}
}

func TestAtomicWriteFile_CreatesParentDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "subdir", "deep", "test.txt")

	if err := AtomicWriteFile(path, []byte("test data"), 0600); err != nil {
		t.Fatalf("AtomicWriteFile failed: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("File not created: %v", err)
	}
}

func TestAtomicWriteFile_Overwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.txt")

	if err := AtomicWriteFile(path, []byte("initial"), 0600); err != nil {
		t.Fatalf("First write failed: %v", err)
	}
	if err := AtomicWriteFile(path, []byte("replaced"), 0600); err != nil {
		t.Fatalf("Second write failed: %v", err)
	}

	content, _ := os.ReadFile(path)
	if string(content) != "replaced" {
		t.Errorf("Expected replaced content, got %q", content)
	}
}

func TestAtomicWriteFile_Permissions(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("POSIX permissions not supported on Windows")
	}
	path := filepath.Join(t.TempDir(), "secret.toml")

	if err := AtomicWriteFile(path, []byte("api_key = 'x'"), 0600); err != nil {
		t.Fatalf("AtomicWriteFile failed: %v", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("Stat failed: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0600 {
		t.Errorf("Expected 0600, got %o", perm)
	}
}

func TestAtomicWriteFile_NoTempFilesLeft(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.html")

	for i := 0; i < 3; i++ {
		if err := AtomicWriteFile(path, []byte(strings.Repeat("x", i)), 0600); err != nil {
			t.Fatalf("write %d failed: %v", i, err)
		}
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir failed: %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("Expected only the target file, found %d entries", len(entries))
	}
}

// =============================================================================
// WIDTH TESTS
// =============================================================================

func TestStringWidth(t *testing.T) {
	tests := []struct {
		input string
		want  int
	}{
		{"", 0},
		{"hello", 5},
		{"你好", 4},
		{"👤", 2},
	}
	for _, tt := range tests {
		if got := StringWidth(tt.input); got != tt.want {
			t.Errorf("StringWidth(%q) = %d, want %d", tt.input, got, tt.want)
		}
	}
}

func TestTruncateWidth(t *testing.T) {
	if got := TruncateWidth("short", 10); got != "short" {
		t.Errorf("Expected unchanged, got %q", got)
	}
	if got := TruncateWidth("anything", 0); got != "" {
		t.Errorf("Expected empty for zero width, got %q", got)
	}

	got := TruncateWidth("🤖 Health Assistant", 10)
	if StringWidth(got) > 10 {
		t.Errorf("Result %q exceeds 10 columns", got)
	}
	if !strings.HasSuffix(got, "…") {
		t.Errorf("Expected ellipsis, got %q", got)
	}
}

func TestTruncateWidth_KhmerStaysValidUTF8(t *testing.T) {
	label := "🤖 ជំនួយការសុខភាព"
	for w := 1; w <= StringWidth(label); w++ {
		got := TruncateWidth(label, w)
		if !utf8.ValidString(got) {
			t.Fatalf("TruncateWidth(%d) produced invalid UTF-8: %q", w, got)
		}
		if StringWidth(got) > w {
			t.Fatalf("TruncateWidth(%d) = %q is %d columns", w, got, StringWidth(got))
		}
	}
}

func TestWidthMatchesLipgloss(t *testing.T) {
	for _, s := range []string{"ជំនួយការសុខភាព", "🤖 ជំនួយការសុខភាព", "👤 អ្នក", "你好 world"} {
		if got, want := StringWidth(s), lipgloss.Width(s); got != want {
			t.Errorf("StringWidth(%q) = %d, lipgloss.Width = %d", s, got, want)
		}
	}
}

func TestTruncateWidth_Khmer(t *testing.T) {
	title := "ជំនួយការសុខភាព"
	got := TruncateWidth(title, 10)
	if w := lipgloss.Width(got); w > 10 {
		t.Errorf("TruncateWidth(%q, 10) = %q is %d columns", title, got, w)
	}
	if !strings.HasSuffix(got, "…") {
		t.Errorf("Expected ellipsis, got %q", got)
	}
	if got := PadRight(title, 20); lipgloss.Width(got) != 20 {
		t.Errorf("PadRight width = %d, want 20", lipgloss.Width(got))
	}
}

func TestPadRight(t *testing.T) {
	if got := PadRight("ab", 4); got != "ab  " {
		t.Errorf("PadRight = %q", got)
	}
	if got := PadRight("你好", 3); got != "你好" {
		t.Errorf("Expected wide string unchanged, got %q", got)
	}
}

func TestClamp(t *testing.T) {
	if Clamp(5, 0, 3) != 3 || Clamp(-1, 0, 3) != 0 || Clamp(2, 0, 3) != 2 {
		t.Error("Clamp returned an out-of-range value")
	}
}
