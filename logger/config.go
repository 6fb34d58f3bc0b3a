package logger

import (
	"go.uber.org/zap/zapcore"
)

// Config controls how a command's logger is built.
type Config struct {
	// Format is one of "auto", "console", "logfmt" or "json". "auto" picks
	// console on a terminal and logfmt otherwise.
	Format string        `toml:"format"`
	Level  zapcore.Level `toml:"level"`
}

// NewConfig returns a new instance of Config with defaults.
func NewConfig() Config {
	return Config{
		Format: "auto",
		Level:  zapcore.InfoLevel,
	}
}
