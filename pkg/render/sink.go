package render

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/goliatone/go-popogen/pkg/prompt"
)

// Sink persists rendered files. WriteFile is called once per model, then
// Commit after the last one. Discard is called instead of Commit when the
// batch fails.
type Sink interface {
	WriteFile(ctx context.Context, name string, content []byte) error
	Commit(ctx context.Context) error
	Discard() error
}

// DirectoryOption configures a DirectorySink.
type DirectoryOption func(*DirectorySink)

// WithStaging renders the batch into a temporary folder inside the output
// directory and moves the files into place on Commit. If a move fails,
// Commit puts back the files it already replaced before returning.
func WithStaging(enabled bool) DirectoryOption {
	return func(s *DirectorySink) {
		s.staged = enabled
	}
}

// WithWritableCheck probes write access before the first file is written.
func WithWritableCheck(enabled bool) DirectoryOption {
	return func(s *DirectorySink) {
		s.checkWritable = enabled
	}
}

// WithConfirmer asks before replacing an existing file.
func WithConfirmer(c prompt.Confirmer) DirectoryOption {
	return func(s *DirectorySink) {
		s.confirmer = c
	}
}

// WithFileMode sets the permission bits of created files.
func WithFileMode(mode fs.FileMode) DirectoryOption {
	return func(s *DirectorySink) {
		if mode != 0 {
			s.mode = mode
		}
	}
}

// DirectorySink writes `<dir>/<name>` for every rendered file. Existing files
// are overwritten unless a Confirmer declines.
type DirectorySink struct {
	mu sync.Mutex

	dir           string
	mode          fs.FileMode
	staged        bool
	checkWritable bool
	confirmer     prompt.Confirmer

	probed   bool
	stageDir string
	pending  []string

	rename func(oldpath, newpath string) error
}

var _ Sink = (*DirectorySink)(nil)

// NewDirectorySink targets an existing directory.
func NewDirectorySink(dir string, options ...DirectoryOption) (*DirectorySink, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, errors.New("render: output directory is required")
	}
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("render: output directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("render: output directory %q is not a directory", dir)
	}

	s := &DirectorySink{dir: dir, mode: 0o644, rename: os.Rename}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(s)
	}
	return s, nil
}

// Dir returns the target directory.
func (s *DirectorySink) Dir() string {
	return s.dir
}

func (s *DirectorySink) WriteFile(ctx context.Context, name string, content []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := validFileName(name); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.checkWritable && !s.probed {
		if err := probeWritable(s.dir); err != nil {
			return err
		}
		s.probed = true
	}

	target := filepath.Join(s.dir, name)
	if err := s.confirmOverwrite(ctx, target); err != nil {
		return err
	}

	if !s.staged {
		return os.WriteFile(target, content, s.mode)
	}

	if s.stageDir == "" {
		stageDir, err := os.MkdirTemp(s.dir, ".popogen-stage-")
		if err != nil {
			return fmt.Errorf("render: create staging folder: %w", err)
		}
		s.stageDir = stageDir
	}
	if err := os.WriteFile(filepath.Join(s.stageDir, name), content, s.mode); err != nil {
		return err
	}
	for _, existing := range s.pending {
		if existing == name {
			return nil
		}
	}
	s.pending = append(s.pending, name)
	return nil
}

// Commit moves staged files into the output directory. It is a no-op for
// unstaged sinks. Replaced files are parked in the staging folder until
// every move succeeded; on failure they are restored and the files already
// moved are removed.
func (s *DirectorySink) Commit(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stageDir == "" {
		return nil
	}
	backupDir, err := os.MkdirTemp(s.stageDir, ".popogen-prev-")
	if err != nil {
		return fmt.Errorf("render: create backup folder: %w", err)
	}

	var moved []movedFile
	for _, name := range s.pending {
		if err := ctx.Err(); err != nil {
			return s.rollback(moved, err)
		}
		entry, err := s.moveIntoPlace(backupDir, name)
		if entry.placed || entry.backup != "" {
			moved = append(moved, entry)
		}
		if err != nil {
			return s.rollback(moved, err)
		}
	}
	return s.resetStage()
}

type movedFile struct {
	target string
	// backup holds the replaced file; empty when the target did not exist.
	backup string
	placed bool
}

func (s *DirectorySink) moveIntoPlace(backupDir, name string) (movedFile, error) {
	entry := movedFile{target: filepath.Join(s.dir, name)}
	if _, err := os.Lstat(entry.target); err == nil {
		backup := filepath.Join(backupDir, name)
		if err := s.rename(entry.target, backup); err != nil {
			return entry, fmt.Errorf("render: back up %s: %w", name, err)
		}
		entry.backup = backup
	}
	if err := s.rename(filepath.Join(s.stageDir, name), entry.target); err != nil {
		return entry, fmt.Errorf("render: move %s into place: %w", name, err)
	}
	entry.placed = true
	return entry, nil
}

func (s *DirectorySink) rollback(moved []movedFile, cause error) error {
	errs := []error{cause}
	for i := len(moved) - 1; i >= 0; i-- {
		entry := moved[i]
		if entry.placed {
			if err := os.Remove(entry.target); err != nil && !errors.Is(err, fs.ErrNotExist) {
				errs = append(errs, fmt.Errorf("render: roll back %s: %w", entry.target, err))
				continue
			}
		}
		if entry.backup != "" {
			if err := s.rename(entry.backup, entry.target); err != nil {
				errs = append(errs, fmt.Errorf("render: restore %s: %w", entry.target, err))
			}
		}
	}
	return errors.Join(errs...)
}

// Discard drops staged files. Files already written by an unstaged sink
// remain.
func (s *DirectorySink) Discard() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stageDir == "" {
		return nil
	}
	return s.resetStage()
}

func (s *DirectorySink) resetStage() error {
	err := os.RemoveAll(s.stageDir)
	s.stageDir = ""
	s.pending = nil
	return err
}

func (s *DirectorySink) confirmOverwrite(ctx context.Context, target string) error {
	if s.confirmer == nil {
		return nil
	}
	if _, err := os.Stat(target); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return err
	}

	ok, err := s.confirmer.Confirm(ctx, prompt.ConfirmConfig{
		Message: fmt.Sprintf("Overwrite %s?", target),
	})
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: %s", ErrOverwriteDeclined, target)
	}
	return nil
}

func probeWritable(dir string) error {
	probe, err := os.CreateTemp(dir, ".popogen-probe-")
	if err != nil {
		return fmt.Errorf("render: output directory %q is not writable: %w", dir, err)
	}
	name := probe.Name()
	closeErr := probe.Close()
	removeErr := os.Remove(name)
	return errors.Join(closeErr, removeErr)
}

func validFileName(name string) error {
	if strings.TrimSpace(name) == "" {
		return errors.New("render: file name is empty")
	}
	if strings.ContainsAny(name, `/\`) || name == "." || name == ".." {
		return fmt.Errorf("render: invalid file name %q", name)
	}
	return nil
}

// WriterSink streams every file to an io.Writer behind a `# --- name ---`
// banner.
type WriterSink struct {
	mu sync.Mutex
	w  io.Writer
}

var _ Sink = (*WriterSink)(nil)

// NewWriterSink streams output to w.
func NewWriterSink(w io.Writer) *WriterSink {
	return &WriterSink{w: w}
}

func (s *WriterSink) WriteFile(ctx context.Context, name string, content []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s.w == nil {
		return errors.New("render: writer is nil")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := fmt.Fprintf(s.w, "# --- %s ---\n", name); err != nil {
		return err
	}
	if _, err := s.w.Write(content); err != nil {
		return err
	}
	if len(content) > 0 && content[len(content)-1] != '\n' {
		_, err := io.WriteString(s.w, "\n")
		return err
	}
	return nil
}

func (s *WriterSink) Commit(context.Context) error { return nil }

func (s *WriterSink) Discard() error { return nil }

// MemorySink keeps rendered files in memory, in write order.
type MemorySink struct {
	mu        sync.Mutex
	names     []string
	files     map[string][]byte
	committed bool
}

var _ Sink = (*MemorySink)(nil)

func NewMemorySink() *MemorySink {
	return &MemorySink{files: make(map[string][]byte)}
}

func (s *MemorySink) WriteFile(ctx context.Context, name string, content []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.files[name]; !exists {
		s.names = append(s.names, name)
	}
	s.files[name] = append([]byte(nil), content...)
	return nil
}

func (s *MemorySink) Commit(context.Context) error {
	s.mu.Lock()
	s.committed = true
	s.mu.Unlock()
	return nil
}

func (s *MemorySink) Discard() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.names = nil
	s.files = make(map[string][]byte)
	s.committed = false
	return nil
}

// Names lists file names in write order.
func (s *MemorySink) Names() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.names...)
}

// File returns the content written under name.
func (s *MemorySink) File(name string) ([]byte, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	content, ok := s.files[name]
	return content, ok
}

// Committed reports whether the last batch completed.
func (s *MemorySink) Committed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.committed
}
