package textio

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/textnorm/textnorm"
	"go.uber.org/multierr"
)

const defaultFileMode = 0o644

// ReadText reads the whole file at path and decodes it with cs.
//
// A missing file yields ENotFound, content that cs cannot decode yields
// EDecode, anything else EInternal.
func ReadText(path string, cs *Charset) (string, error) {
	const op = "textio.ReadText"

	b, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return "", &textnorm.Error{
			Code: textnorm.ENotFound,
			Op:   op,
			Msg:  fmt.Sprintf("file %q does not exist", path),
			Err:  err,
		}
	} else if err != nil {
		return "", &textnorm.Error{
			Code: textnorm.EInternal,
			Op:   op,
			Msg:  fmt.Sprintf("failed to read file %q", path),
			Err:  err,
		}
	}

	s, err := cs.Decode(b)
	if err != nil {
		return "", &textnorm.Error{
			Code: textnorm.EDecode,
			Op:   op,
			Msg:  fmt.Sprintf("cannot decode %q as %s", path, cs.Name()),
			Err:  err,
		}
	}
	return s, nil
}

// WriteText encodes s with cs and atomically replaces the file at path.
func WriteText(path, s string, cs *Charset) error {
	b, err := cs.Encode(s)
	if err != nil {
		return &textnorm.Error{
			Code: textnorm.EDecode,
			Op:   "textio.WriteText",
			Msg:  fmt.Sprintf("cannot encode %q as %s", path, cs.Name()),
			Err:  err,
		}
	}
	if err := WriteFileAtomic(path, b); err != nil {
		return &textnorm.Error{
			Code: textnorm.EInternal,
			Op:   "textio.WriteText",
			Err:  err,
		}
	}
	return nil
}

// WriteFileAtomic writes data to a temporary file next to path and renames it
// over path. An existing file keeps its permission bits.
func WriteFileAtomic(path string, data []byte) (retErr error) {
	dir, base := filepath.Split(path)
	if dir == "" {
		dir = "."
	}

	mode := fs.FileMode(defaultFileMode)
	if fi, err := os.Stat(path); err == nil {
		mode = fi.Mode().Perm()
	}

	tmp, err := os.CreateTemp(dir, base+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temporary file for %q: %w", path, err)
	}
	tmpPath := tmp.Name()

	// Nested function so the temp file is closed before the rename.
	err = func() (fRetErr error) {
		defer multierr.AppendInvoke(&fRetErr, multierr.Close(tmp))

		if _, err := tmp.Write(data); err != nil {
			return fmt.Errorf("failed to write temporary file %q: %w", tmpPath, err)
		}
		if err := tmp.Chmod(mode); err != nil {
			return fmt.Errorf("failed to chmod temporary file %q: %w", tmpPath, err)
		}
		return tmp.Sync()
	}()
	if err != nil {
		if err2 := os.Remove(tmpPath); err2 != nil && !errors.Is(err2, fs.ErrNotExist) {
			err = multierr.Append(err, err2)
		}
		return err
	}

	if err := os.Rename(tmpPath, path); err != nil {
		return multierr.Append(
			fmt.Errorf("failed to replace %q: %w", path, err),
			os.Remove(tmpPath),
		)
	}
	return SyncDir(dir)
}

// Remove deletes the file at path and flushes the directory entry.
func Remove(path string) error {
	if err := os.Remove(path); err != nil {
		return err
	}
	return SyncDir(filepath.Dir(path))
}
