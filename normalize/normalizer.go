// Package normalize rewrites a directory of lyric and text files in place:
// timed-lyric files become plain text, and every text file is brought to LF
// line endings, stripped of trailing whitespace and of colon-bearing lines.
package normalize

import (
	"github.com/benbjohnson/clock"
	"github.com/textnorm/textnorm"
	"github.com/textnorm/textnorm/textio"
	"go.uber.org/zap"
)

// Normalizer applies the per-file operations and the directory pass.
// The zero value is not usable; construct with New.
type Normalizer struct {
	log     *zap.Logger
	charset *textio.Charset
	exts    textnorm.Extensions
	clock   clock.Clock
}

// Option configures a Normalizer.
type Option func(*Normalizer)

// WithCharset sets the charset files are read and written with.
func WithCharset(cs *textio.Charset) Option {
	return func(n *Normalizer) {
		n.charset = cs
	}
}

// WithExtensions overrides the text and timed-lyric file extensions.
func WithExtensions(x textnorm.Extensions) Option {
	return func(n *Normalizer) {
		n.exts = x
	}
}

// WithClock sets the clock used to time directory passes.
func WithClock(c clock.Clock) Option {
	return func(n *Normalizer) {
		n.clock = c
	}
}

// New returns a Normalizer reporting every action to log.
func New(log *zap.Logger, opts ...Option) *Normalizer {
	if log == nil {
		log = zap.NewNop()
	}
	n := &Normalizer{
		log:     log,
		charset: textio.UTF8,
		exts:    textnorm.DefaultExtensions(),
		clock:   clock.New(),
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// read decodes path, logging any failure before handing it back. Callers
// do not log read errors again.
func (n *Normalizer) read(log *zap.Logger, path string) (string, error) {
	s, err := textio.ReadText(path, n.charset)
	switch {
	case err == nil:
		return s, nil
	case textnorm.IsDecode(err):
		log.Warn("Cannot decode file, skipping", zap.String("charset", n.charset.Name()), zap.Error(err))
	case textnorm.IsNotFound(err):
		log.Warn("File does not exist, skipping", zap.Error(err))
	default:
		log.Error("Cannot read file", zap.Error(err))
	}
	return "", err
}

func (n *Normalizer) write(log *zap.Logger, path, s string) error {
	if err := textio.WriteText(path, s, n.charset); err != nil {
		log.Error("Cannot write file", zap.String("target", path), zap.Error(err))
		return err
	}
	return nil
}
