// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package util

import (
	"fmt"
	"os"
	"path/filepath"
)

// privateDirPerm is used for directories created on the way to a file.
// Config and transcripts may hold an API key or health questions.
const privateDirPerm = 0o700

// AtomicWriteFile replaces path with data. Readers see either the previous
// file or the complete new one, never a partial write. Missing parent
// directories are created private to the user.
func AtomicWriteFile(path string, data []byte, perm os.FileMode) error {
	target, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("resolve %s: %w", path, err)
	}
	dir := filepath.Dir(target)
	if err := os.MkdirAll(dir, privateDirPerm); err != nil {
		return fmt.Errorf("create %s: %w", dir, err)
	}

	tmp, err := writeTemp(dir, filepath.Base(target), data, perm)
	if err != nil {
		return err
	}
	if err := os.Rename(tmp, target); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("replace %s: %w", target, err)
	}
	return nil
}

// writeTemp writes data to a synced, closed temp file next to the target and
// returns its name. The temp file is removed on any failure.
func writeTemp(dir, base string, data []byte, perm os.FileMode) (name string, err error) {
	f, err := os.CreateTemp(dir, "."+base+".tmp-")
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	name = f.Name()
	defer func() {
		if err != nil {
			f.Close()
			os.Remove(name)
		}
	}()

	if _, err = f.Write(data); err != nil {
		return "", fmt.Errorf("write temp file: %w", err)
	}
	if err = f.Sync(); err != nil {
		return "", fmt.Errorf("sync temp file: %w", err)
	}
	// Rename fails on Windows while the file is open.
	if err = f.Close(); err != nil {
		return "", fmt.Errorf("close temp file: %w", err)
	}
	if err = os.Chmod(name, perm); err != nil {
		return "", fmt.Errorf("chmod temp file: %w", err)
	}
	return name, nil
}
