package sidecar

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/vmunix/nfokit/pkg/xmltree"
)

// BackupDirName is the sibling directory orphaned sidecars are copied into
// before deletion.
const BackupDirName = ".backup"

// Result reports what WriteIfChanged did with a target.
type Result int

const (
	// ResultUnchanged means the file already held equivalent content and
	// was left untouched.
	ResultUnchanged Result = iota
	// ResultWritten means the file was created or rewritten.
	ResultWritten
)

// WriteIfChanged writes content to path unless the file already holds
// equivalent content. Comparison ignores XML comments, so bookkeeping
// annotations never force a rewrite on their own. The write is atomic: a
// temp file in the same directory is renamed over the target.
func WriteIfChanged(path string, content []byte) (Result, error) {
	old, err := os.ReadFile(path)
	if err == nil {
		if xmltree.StripComments(string(old)) == xmltree.StripComments(string(content)) {
			return ResultUnchanged, nil
		}
	} else if !errors.Is(err, fs.ErrNotExist) {
		return ResultUnchanged, fmt.Errorf("read existing sidecar: %w", err)
	}

	if err := writeAtomic(path, content); err != nil {
		return ResultUnchanged, err
	}
	return ResultWritten, nil
}

func writeAtomic(path string, content []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".nfokit-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(content); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("rename temp file: %w", err)
	}
	return nil
}

// Remove deletes an orphaned sidecar. When backup is set, the file is first
// copied into a .backup directory next to it; a failed backup does not stop
// the removal.
func Remove(path string, backup bool) error {
	if backup {
		// Best effort: removal proceeds without the copy.
		_ = backupFile(path)
	}
	if err := os.Remove(path); err != nil {
		return fmt.Errorf("remove sidecar: %w", err)
	}
	return nil
}

func backupFile(path string) error {
	dir := filepath.Join(filepath.Dir(path), BackupDirName)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	src, err := os.Open(path)
	if err != nil {
		return err
	}
	defer func() { _ = src.Close() }()

	dst, err := os.Create(filepath.Join(dir, filepath.Base(path)))
	if err != nil {
		return err
	}
	defer func() { _ = dst.Close() }()

	if _, err := io.Copy(dst, src); err != nil {
		_ = os.Remove(dst.Name())
		return err
	}
	return dst.Sync()
}
