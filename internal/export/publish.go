package export

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"
)

// ErrPublishFailed wraps every failure to replace the published dashboard.
var ErrPublishFailed = errors.New("publish dashboard failed")

// WorkbookSource adapts a workbook to io.WriterTo for Publish.
func WorkbookSource(f *excelize.File) io.WriterTo {
	return workbookSource{f: f}
}

type workbookSource struct {
	f *excelize.File
}

func (s workbookSource) WriteTo(w io.Writer) (int64, error) {
	return s.f.WriteTo(w)
}

// Publisher replaces the dashboard at a fixed path. A publish either swaps in
// the complete new file or leaves the previous one untouched.
type Publisher struct {
	path string
}

// NewPublisher creates a Publisher writing to path.
func NewPublisher(path string) *Publisher {
	return &Publisher{path: path}
}

// Path returns the destination file.
func (p *Publisher) Path() string {
	return p.path
}

// Publish writes src to a temporary file next to the destination and renames
// it into place.
func (p *Publisher) Publish(src io.WriterTo) error {
	dir := filepath.Dir(p.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("%w: create dir: %w", ErrPublishFailed, err)
	}

	tmp, err := os.CreateTemp(dir, ".dashboard-*.tmp")
	if err != nil {
		return fmt.Errorf("%w: create temp file: %w", ErrPublishFailed, err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := src.WriteTo(tmp); err != nil {
		tmp.Close()
		return fmt.Errorf("%w: write: %w", ErrPublishFailed, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("%w: sync: %w", ErrPublishFailed, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("%w: close: %w", ErrPublishFailed, err)
	}
	if err := os.Rename(tmpName, p.path); err != nil {
		return fmt.Errorf("%w: replace %s: %w", ErrPublishFailed, p.path, err)
	}
	return nil
}
