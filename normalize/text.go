package normalize

import (
	"regexp"
	"strings"
	"unicode"

	"go.uber.org/zap"
)

// colonPattern matches an ASCII or fullwidth colon.
var colonPattern = regexp.MustCompile(`[:：]`)

// ConvertCRLF replaces every CRLF in the file with LF. The file is rewritten
// only when something changed.
func (n *Normalizer) ConvertCRLF(path string) (bool, error) {
	log := n.log.With(zap.String("op", "crlf"), zap.String("path", path))

	content, err := n.read(log, path)
	if err != nil {
		return false, err
	}

	converted := strings.ReplaceAll(content, "\r\n", "\n")
	if converted == content {
		log.Info("No CRLF line endings to convert")
		return false, nil
	}
	if err := n.write(log, path, converted); err != nil {
		return false, err
	}
	log.Info("Converted CRLF line endings to LF")
	return true, nil
}

// TrimTrailing strips all trailing whitespace from the end of the file's
// content. The file is rewritten only when something changed.
func (n *Normalizer) TrimTrailing(path string) (bool, error) {
	log := n.log.With(zap.String("op", "trim"), zap.String("path", path))

	content, err := n.read(log, path)
	if err != nil {
		return false, err
	}

	trimmed := trimTrailing(content)
	if trimmed == content {
		log.Info("No trailing whitespace to trim")
		return false, nil
	}
	if err := n.write(log, path, trimmed); err != nil {
		return false, err
	}
	log.Info("Trimmed trailing whitespace", zap.Int("bytes", len(content)-len(trimmed)))
	return true, nil
}

// FilterColonLines removes every line containing ':' or '：' and returns the
// removed lines, whitespace-trimmed, in file order. The file is rewritten
// only when at least one line was removed.
//
// Retained lines keep their line terminators. If the content had no trailing
// whitespace to begin with, none is left behind by dropping the last line.
func (n *Normalizer) FilterColonLines(path string) ([]string, error) {
	log := n.log.With(zap.String("op", "colon"), zap.String("path", path))

	content, err := n.read(log, path)
	if err != nil {
		return nil, err
	}

	kept, discarded := filterColonLines(content)
	if len(discarded) == 0 {
		log.Info("No lines containing a colon")
		return nil, nil
	}
	if trimTrailing(content) == content {
		kept = trimTrailing(kept)
	}
	if err := n.write(log, path, kept); err != nil {
		return nil, err
	}
	log.Info("Removed lines containing a colon", zap.Strings("discarded", discarded))
	return discarded, nil
}

func trimTrailing(s string) string {
	return strings.TrimRightFunc(s, unicode.IsSpace)
}

// splitLines splits s after each '\n'; a final line without a terminator is
// kept as is.
func splitLines(s string) []string {
	lines := strings.SplitAfter(s, "\n")
	if len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

func filterColonLines(s string) (kept string, discarded []string) {
	var b strings.Builder
	for _, line := range splitLines(s) {
		if colonPattern.MatchString(line) {
			discarded = append(discarded, strings.TrimSpace(line))
			continue
		}
		b.WriteString(line)
	}
	return b.String(), discarded
}
