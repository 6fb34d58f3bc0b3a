package normalize

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/textnorm/textnorm"
	"github.com/textnorm/textnorm/textio"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// PruneEmpty deletes every zero-byte text file directly under dir and
// returns the removed paths. A file that cannot be removed does not stop
// the others; the failures are returned together.
func (n *Normalizer) PruneEmpty(dir string) (removed []string, err error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %q: %w", dir, err)
	}

	for _, e := range entries {
		if n.exts.ClassifyEntry(e) != textnorm.KindText {
			continue
		}
		fi, ierr := e.Info()
		if ierr != nil {
			n.log.Error("Cannot stat text file", zap.String("path", filepath.Join(dir, e.Name())), zap.Error(ierr))
			err = multierr.Append(err, ierr)
			continue
		}
		if fi.Size() != 0 {
			continue
		}

		path := filepath.Join(dir, e.Name())
		if rerr := textio.Remove(path); rerr != nil {
			n.log.Error("Cannot remove empty text file", zap.String("path", path), zap.Error(rerr))
			err = multierr.Append(err, fmt.Errorf("failed to remove empty file %q: %w", path, rerr))
			continue
		}
		n.log.Info("Removed empty text file", zap.String("path", path))
		removed = append(removed, path)
	}
	return removed, err
}
