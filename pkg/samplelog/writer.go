package samplelog

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync/atomic"
)

// Writer is an append-only sink with size- and count-bounded rotation.
// Backups carry numeric suffixes, ascending suffix = ascending age:
// <path> (active, newest), <path>.1, ... <path>.N (oldest).
//
// Writer is not goroutine-safe: the sampling loop is its sole owner.
// The rotation counter is atomic only so it can be scraped from the
// metrics goroutine.
type Writer struct {
	path       string
	maxSize    int64
	maxBackups int

	f         *os.File
	size      int64
	rotations atomic.Int64
}

// NewWriter opens (or creates) the active log file in append mode.
// maxSize is the rotation threshold in bytes; maxBackups is the number
// of suffixed backups retained (0 means rotation just truncates).
func NewWriter(path string, maxSize int64, maxBackups int) (*Writer, error) {
	if maxSize <= 0 {
		return nil, errors.New("samplelog: max size must be > 0")
	}
	if maxBackups < 0 {
		return nil, errors.New("samplelog: max backups must be >= 0")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}

	w := &Writer{path: path, maxSize: maxSize, maxBackups: maxBackups}
	if err := w.open(); err != nil {
		return nil, err
	}
	return w, nil
}

func (w *Writer) open() error {
	f, err := os.OpenFile(w.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open log: %w", err)
	}
	fi, err := f.Stat()
	if err != nil {
		f.Close()
		return fmt.Errorf("stat log: %w", err)
	}
	w.f = f
	w.size = fi.Size()
	return nil
}

// Append writes one serialized entry plus newline, then evaluates
// rotation, so the active file may transiently exceed maxSize by up to
// one entry. Any error here breaks the durability contract and must be
// treated as fatal by the caller.
func (w *Writer) Append(entry string) error {
	n, err := fmt.Fprintln(w.f, entry)
	w.size += int64(n)
	if err != nil {
		return fmt.Errorf("append: %w", err)
	}
	if w.size > w.maxSize {
		return w.rotate()
	}
	return nil
}

// rotate shifts the backup chain by one and reopens a fresh active file:
// drop <path>.N, rename i→i+1 for i = N−1..1 (strictly descending so an
// existing target is never clobbered), then rename the active file to
// <path>.1.
func (w *Writer) rotate() error {
	if err := w.f.Close(); err != nil {
		return fmt.Errorf("rotate: close: %w", err)
	}

	if w.maxBackups == 0 {
		if err := os.Remove(w.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("rotate: truncate: %w", err)
		}
	} else {
		if err := os.Remove(w.backupPath(w.maxBackups)); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("rotate: drop oldest: %w", err)
		}
		for i := w.maxBackups - 1; i >= 1; i-- {
			err := os.Rename(w.backupPath(i), w.backupPath(i+1))
			if err != nil && !errors.Is(err, fs.ErrNotExist) {
				return fmt.Errorf("rotate: shift backup %d: %w", i, err)
			}
		}
		if err := os.Rename(w.path, w.backupPath(1)); err != nil {
			return fmt.Errorf("rotate: archive active: %w", err)
		}
	}

	if err := w.open(); err != nil {
		return fmt.Errorf("rotate: %w", err)
	}
	w.rotations.Add(1)
	return nil
}

func (w *Writer) backupPath(i int) string {
	return fmt.Sprintf("%s.%d", w.path, i)
}

// Rotations returns the number of rotations performed since open.
func (w *Writer) Rotations() int64 { return w.rotations.Load() }

// Path returns the active file path.
func (w *Writer) Path() string { return w.path }

// Close closes the active file handle.
func (w *Writer) Close() error {
	if w.f == nil {
		return nil
	}
	return w.f.Close()
}
