// Package textnorm holds the types shared by the normalizer and the
// character counter: file classification and the coded error type.
package textnorm

import (
	"io/fs"
	"strings"
)

const (
	// DefaultTextExt is the extension of plain text files.
	DefaultTextExt = ".txt"
	// DefaultLyricExt is the extension of timed-lyric files.
	DefaultLyricExt = ".lrc"
)

// Kind classifies a directory entry.
type Kind int

const (
	KindOther Kind = iota
	KindText
	KindTimedLyric
)

func (k Kind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindTimedLyric:
		return "timed-lyric"
	default:
		return "other"
	}
}

// Extensions maps file name suffixes to kinds. Matching is case-sensitive.
type Extensions struct {
	Text  string
	Lyric string
}

// DefaultExtensions returns the .txt / .lrc pair.
func DefaultExtensions() Extensions {
	return Extensions{Text: DefaultTextExt, Lyric: DefaultLyricExt}
}

// Classify returns the kind of a file name.
func (x Extensions) Classify(name string) Kind {
	switch {
	case x.Text != "" && strings.HasSuffix(name, x.Text):
		return KindText
	case x.Lyric != "" && strings.HasSuffix(name, x.Lyric):
		return KindTimedLyric
	default:
		return KindOther
	}
}

// ClassifyEntry is like Classify but reports KindOther for anything that is
// not a regular file, whatever its name.
func (x Extensions) ClassifyEntry(d fs.DirEntry) Kind {
	if !d.Type().IsRegular() {
		return KindOther
	}
	return x.Classify(d.Name())
}
