package normalize

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"regexp"
	"strings"

	"github.com/textnorm/textnorm"
	"github.com/textnorm/textnorm/textio"
	"go.uber.org/zap"
)

// timestampPattern matches a [MM:SS.mmm] playback marker.
var timestampPattern = regexp.MustCompile(`\[\d{2}:\d{2}\.\d{3}\]`)

// Conversion describes a converted timed-lyric file.
type Conversion struct {
	Source string
	Output string
	Lines  int
}

// LyricOutputPath returns the text file a timed-lyric file converts to.
func (n *Normalizer) LyricOutputPath(path string) string {
	return strings.TrimSuffix(path, n.exts.Lyric) + n.exts.Text
}

// ConvertLyric strips timestamp markers from a timed-lyric file, writes the
// non-empty lines to a sibling text file and deletes the source.
//
// A missing source is reported as ENotFound and a source that cannot be
// decoded as EDecode; in both cases nothing is written or deleted. Colon
// lines are kept; they are the text pass's concern.
func (n *Normalizer) ConvertLyric(path string) (*Conversion, error) {
	const op = "normalize.ConvertLyric"
	log := n.log.With(zap.String("op", "lyric"), zap.String("path", path))

	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		log.Warn("Timed-lyric file does not exist")
		return nil, &textnorm.Error{
			Code: textnorm.ENotFound,
			Op:   op,
			Msg:  fmt.Sprintf("input file %q does not exist", path),
			Err:  err,
		}
	}

	content, err := n.read(log, path)
	if err != nil {
		return nil, err
	}

	lines := stripTimestamps(content)
	output := n.LyricOutputPath(path)
	if _, err := os.Stat(output); err == nil {
		log.Warn("Overwriting existing text file", zap.String("output", output))
	}

	var b strings.Builder
	for _, line := range lines {
		b.WriteString(line)
		b.WriteByte('\n')
	}
	if err := n.write(log, output, b.String()); err != nil {
		return nil, err
	}
	log.Info("Converted timed-lyric file", zap.String("output", output), zap.Int("lines", len(lines)))

	if err := textio.Remove(path); err != nil {
		log.Error("Cannot remove timed-lyric file", zap.Error(err))
		return nil, &textnorm.Error{
			Code: textnorm.EInternal,
			Op:   op,
			Msg:  fmt.Sprintf("failed to remove timed-lyric file %q", path),
			Err:  err,
		}
	}
	log.Info("Removed timed-lyric file")

	return &Conversion{Source: path, Output: output, Lines: len(lines)}, nil
}

// stripTimestamps removes every marker from each line, trims it and drops
// the lines left empty. CRLF and lone CR both end a line.
func stripTimestamps(s string) []string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")

	var out []string
	for _, line := range strings.Split(s, "\n") {
		line = strings.TrimSpace(timestampPattern.ReplaceAllString(line, ""))
		if line != "" {
			out = append(out, line)
		}
	}
	return out
}
