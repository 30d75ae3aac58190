// Copyright © 2025 RNano contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: editor/fileio.go
// Summary: File collaborator: buffer load and save against the filesystem.

package editor

import (
	"fmt"
	"os"

	"github.com/TC999/rnano/buffer"
)

// OpenFile loads path into a buffer. A path that does not exist yet
// yields an empty buffer carrying the name (isNew true); a path that
// exists but cannot be read or decoded is an error the caller should
// treat as fatal at startup.
func OpenFile(path string) (buf *buffer.TextBuffer, isNew bool, err error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		b := buffer.New()
		b.Filename = path
		return b, true, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	b, err := buffer.Load(f)
	if err != nil {
		return nil, false, fmt.Errorf("load %s: %w", path, err)
	}
	b.Filename = path
	return b, false, nil
}

// save writes the buffer to name. The modified flag only clears when the
// buffer reports a fully successful write.
func (e *Editor) save(name string) error {
	f, err := os.Create(name)
	if err != nil {
		return fmt.Errorf("create %s: %w", name, err)
	}
	if err := e.buf.Save(f); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", name, err)
	}
	return nil
}
