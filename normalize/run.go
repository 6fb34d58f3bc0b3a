package normalize

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/textnorm/textnorm"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// FileResult records what a directory pass did to one file.
type FileResult struct {
	Path string
	Kind textnorm.Kind

	// Text files.
	CRLFConverted bool
	Trimmed       bool
	Discarded     []string

	// Timed-lyric files.
	Conversion *Conversion

	Err error
}

// Report is the outcome of a directory pass.
type Report struct {
	Dir    string
	Files  []FileResult
	Pruned []string
	// PruneErr holds failures to remove empty files.
	PruneErr error
}

// Err combines every per-file failure of the pass.
func (r *Report) Err() error {
	var err error
	for _, f := range r.Files {
		err = multierr.Append(err, f.Err)
	}
	return multierr.Append(err, r.PruneErr)
}

// Fatal combines the failures that are neither decode failures nor missing
// inputs, i.e. the filesystem errors a caller should not shrug off.
func (r *Report) Fatal() error {
	var err error
	for _, e := range multierr.Errors(r.Err()) {
		switch textnorm.ErrorCode(e) {
		case textnorm.EDecode, textnorm.ENotFound:
		default:
			err = multierr.Append(err, e)
		}
	}
	return err
}

// Run performs one pass over dir, non-recursively:
//
//  1. every timed-lyric file is converted to a text file;
//  2. every text file, including those just written, has its CRLFs
//     converted, trailing whitespace trimmed and colon lines removed;
//  3. zero-byte text files are deleted.
//
// Entries are visited in name order. A failure on one file is recorded in
// the report and the pass moves on; only failing to list dir, or ctx being
// cancelled between files, ends the pass early.
func (n *Normalizer) Run(ctx context.Context, dir string) (*Report, error) {
	start := n.clock.Now()
	log := n.log.With(zap.String("dir", dir))
	log.Info("Normalizing directory")

	report := &Report{Dir: dir}

	lyrics, err := n.list(dir, textnorm.KindTimedLyric)
	if err != nil {
		return report, err
	}
	for _, path := range lyrics {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		res := FileResult{Path: path, Kind: textnorm.KindTimedLyric}
		res.Conversion, res.Err = n.ConvertLyric(path)
		report.Files = append(report.Files, res)
	}

	texts, err := n.list(dir, textnorm.KindText)
	if err != nil {
		return report, err
	}
	for _, path := range texts {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		report.Files = append(report.Files, n.normalizeText(path))
	}

	report.Pruned, report.PruneErr = n.PruneEmpty(dir)
	if report.PruneErr != nil {
		log.Error("Cannot prune empty text files", zap.Error(report.PruneErr))
	}

	log.Info("Normalized directory",
		zap.Int("files", len(report.Files)),
		zap.Int("pruned", len(report.Pruned)),
		zap.Int("failed", len(multierr.Errors(report.Err()))),
		zap.Duration("elapsed", n.clock.Since(start)),
	)
	return report, nil
}

// normalizeText runs the three text operations in order, stopping at the
// first failure.
func (n *Normalizer) normalizeText(path string) FileResult {
	res := FileResult{Path: path, Kind: textnorm.KindText}
	if res.CRLFConverted, res.Err = n.ConvertCRLF(path); res.Err != nil {
		return res
	}
	if res.Trimmed, res.Err = n.TrimTrailing(path); res.Err != nil {
		return res
	}
	res.Discarded, res.Err = n.FilterColonLines(path)
	return res
}

// list returns the paths of the entries of dir with the given kind, sorted
// by name.
func (n *Normalizer) list(dir string, kind textnorm.Kind) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, &textnorm.Error{
			Code: textnorm.EInternal,
			Op:   "normalize.Run",
			Msg:  fmt.Sprintf("failed to read directory %q", dir),
			Err:  err,
		}
	}

	var paths []string
	for _, e := range entries {
		if n.exts.ClassifyEntry(e) == kind {
			paths = append(paths, filepath.Join(dir, e.Name()))
		}
	}
	return paths, nil
}
