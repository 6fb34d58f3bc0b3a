package main

import (
	"fmt"
	"io"

	"github.com/textnorm/textnorm"
	"github.com/textnorm/textnorm/kit/cli"
	"github.com/textnorm/textnorm/logger"
	"github.com/textnorm/textnorm/textio"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// commonFlags are the options every sub-command accepts.
type commonFlags struct {
	textExt   string
	lyricExt  string
	encoding  string
	logLevel  zapcore.Level
	logFormat string
}

func (f *commonFlags) opts() []cli.Opt {
	return []cli.Opt{
		{
			DestP:   &f.textExt,
			Flag:    "text-ext",
			Default: textnorm.DefaultTextExt,
			Desc:    "extension of plain text files",
		},
		{
			DestP:   &f.lyricExt,
			Flag:    "lyric-ext",
			Default: textnorm.DefaultLyricExt,
			Desc:    "extension of timed-lyric files",
		},
		{
			DestP:   &f.encoding,
			Flag:    "encoding",
			Default: textio.DefaultCharset,
			Desc:    "IANA charset files are read and written in",
		},
		{
			DestP:   &f.logLevel,
			Flag:    "log-level",
			Default: zapcore.InfoLevel,
			Desc:    "supported log levels are debug, info, warn and error",
		},
		{
			DestP:   &f.logFormat,
			Flag:    "log-format",
			Default: "auto",
			Desc:    "log output format: auto, console, logfmt or json",
		},
	}
}

func (f *commonFlags) extensions() (textnorm.Extensions, error) {
	x := textnorm.Extensions{Text: f.textExt, Lyric: f.lyricExt}
	if x.Text == "" || x.Lyric == "" {
		return x, &textnorm.Error{Code: textnorm.EInvalid, Msg: "--text-ext and --lyric-ext must not be empty"}
	}
	if x.Text == x.Lyric {
		return x, &textnorm.Error{Code: textnorm.EInvalid, Msg: fmt.Sprintf("--text-ext and --lyric-ext are both %q", x.Text)}
	}
	return x, nil
}

func (f *commonFlags) newLogger(w io.Writer) (*zap.Logger, error) {
	conf := &logger.Config{
		Format: f.logFormat,
		Level:  f.logLevel,
	}
	return conf.New(w)
}
