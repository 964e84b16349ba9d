package kil

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/natefinch/atomic"
)

// CheckExtension returns an ErrInvalidFormat error unless path has the
// import/export extension.
func CheckExtension(path string) error {
	if !strings.EqualFold(filepath.Ext(path), Extension) {
		return fmt.Errorf("%w: %q is not a %s file", ErrInvalidFormat, path, Extension)
	}
	return nil
}

// readFile reads a whole data file, honoring ctx before and after the read.
func readFile(ctx context.Context, path string) ([]byte, error) {
	if err := CheckExtension(path); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read %q: %w", path, err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return data, nil
}

// LoadFile reads a data file into a new Store.
//
// A missing file is reported with an error wrapping fs.ErrNotExist.
func LoadFile(ctx context.Context, path string) (*Store, error) {
	data, err := readFile(ctx, path)
	if err != nil {
		return nil, err
	}
	s, err := Import(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("cannot load %q: %w", path, err)
	}
	return s, nil
}

// ImportFile appends the line items of a data file to s. See [ImportInto].
func ImportFile(ctx context.Context, path string, s *Store) error {
	data, err := readFile(ctx, path)
	if err != nil {
		return err
	}
	if err := ImportInto(bytes.NewReader(data), s); err != nil {
		return fmt.Errorf("cannot import %q: %w", path, err)
	}
	return nil
}

// SaveFile exports s to a data file.
//
// The document is fully encoded before the file is touched, and written
// through a temporary file renamed over the destination: the destination is
// either fully written or left as it was.
func SaveFile(ctx context.Context, path string, s *Store) error {
	if err := CheckExtension(path); err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := Export(&buf, s); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("cannot create directory for %q: %w", path, err)
		}
	}
	if err := atomic.WriteFile(path, &buf); err != nil {
		return fmt.Errorf("cannot write %q: %w", path, err)
	}
	return nil
}
