package render

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/civicviz/reasons311/internal/visual"
)

// Target is where a chart is mounted.
type Target interface {
	Mount(t *visual.Tree) error
	Unmount() error
}

// FileTarget writes the chart to a file and deletes it on Unmount.
type FileTarget struct {
	Path    string
	Format  Format
	Options Options

	mounted bool
}

// NewFileTarget returns a target for path. An empty format is guessed from
// the file extension.
func NewFileTarget(path string, format Format, opts Options) *FileTarget {
	if format == "" {
		format = FormatForPath(path)
	}
	return &FileTarget{Path: path, Format: format, Options: opts}
}

// Mount encodes t into a temporary file beside Path and renames it over
// Path only once encoding succeeds. A failed Mount leaves Path untouched.
func (f *FileTarget) Mount(t *visual.Tree) error {
	dir := filepath.Dir(f.Path)
	if dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating output dir: %w", err)
		}
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(f.Path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("creating %s: %w", f.Path, err)
	}
	tmpPath := tmp.Name()

	if err := Encode(tmp, t, f.Format, f.Options); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("closing %s: %w", f.Path, err)
	}
	if err := os.Chmod(tmpPath, 0o644); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("setting mode on %s: %w", f.Path, err)
	}
	if err := os.Rename(tmpPath, f.Path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("writing %s: %w", f.Path, err)
	}
	f.mounted = true
	return nil
}

// Unmount removes the file written by Mount. It is a no-op if nothing
// was mounted.
func (f *FileTarget) Unmount() error {
	if !f.mounted {
		return nil
	}
	f.mounted = false
	if err := os.Remove(f.Path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("removing %s: %w", f.Path, err)
	}
	return nil
}

// WriterTarget streams the chart to W. Unmount does nothing.
type WriterTarget struct {
	W       io.Writer
	Format  Format
	Options Options
}

// Mount encodes t to W.
func (wt *WriterTarget) Mount(t *visual.Tree) error {
	return Encode(wt.W, t, wt.Format, wt.Options)
}

// Unmount is a no-op; written bytes cannot be recalled.
func (wt *WriterTarget) Unmount() error { return nil }
