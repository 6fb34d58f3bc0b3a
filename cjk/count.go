// Package cjk counts CJK Unified Ideographs in text files.
package cjk

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/textnorm/textnorm"
	"github.com/textnorm/textnorm/textio"
	"go.uber.org/zap"
)

// CJK Unified Ideographs block.
const (
	rangeLo = 0x4E00
	rangeHi = 0x9FFF
)

// Count returns the number of runes of s in U+4E00–U+9FFF.
func Count(s string) int {
	var n int
	for _, r := range s {
		if r >= rangeLo && r <= rangeHi {
			n++
		}
	}
	return n
}

// FileCount is the count for one file. Err is set when the file could not
// be read, in which case Count is zero.
type FileCount struct {
	Name  string
	Path  string
	Count int
	Err   error
}

// Tally is the outcome of counting a directory.
type Tally struct {
	Dir   string
	Files []FileCount
	Total int
}

// Counter counts ideographs across the text files of a directory.
type Counter struct {
	log     *zap.Logger
	charset *textio.Charset
	exts    textnorm.Extensions
}

// NewCounter returns a Counter decoding files with cs and matching text
// files by exts.Text.
func NewCounter(log *zap.Logger, cs *textio.Charset, exts textnorm.Extensions) *Counter {
	if log == nil {
		log = zap.NewNop()
	}
	if cs == nil {
		cs = textio.UTF8
	}
	return &Counter{log: log, charset: cs, exts: exts}
}

// CountFile counts the ideographs in the file at path.
func (c *Counter) CountFile(path string) (int, error) {
	s, err := textio.ReadText(path, c.charset)
	if err != nil {
		return 0, err
	}
	return Count(s), nil
}

// Run counts every text file directly under dir, in name order. A file
// that cannot be read counts as zero and does not stop the run.
func (c *Counter) Run(ctx context.Context, dir string) (*Tally, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, &textnorm.Error{
			Code: textnorm.EInternal,
			Op:   "cjk.Run",
			Msg:  fmt.Sprintf("failed to read directory %q", dir),
			Err:  err,
		}
	}

	tally := &Tally{Dir: dir}
	for _, e := range entries {
		if c.exts.ClassifyEntry(e) != textnorm.KindText {
			continue
		}
		if err := ctx.Err(); err != nil {
			return tally, err
		}

		fc := FileCount{Name: e.Name(), Path: filepath.Join(dir, e.Name())}
		fc.Count, fc.Err = c.CountFile(fc.Path)
		if fc.Err != nil {
			c.log.Warn("Error reading file", zap.String("path", fc.Path), zap.Error(fc.Err))
		} else {
			c.log.Debug("Counted file", zap.String("path", fc.Path), zap.Int("count", fc.Count))
		}
		tally.Files = append(tally.Files, fc)
		tally.Total += fc.Count
	}
	return tally, nil
}
