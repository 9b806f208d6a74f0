package config

import (
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	defaultLogLevel   = "info"
	defaultMaxSize    = 100
	defaultMaxBackups = 5
	defaultMaxAge     = 28
)

type LogConfig struct {
	Level string `yaml:"level"`
	// Log file; empty logs to the console.
	Path       string `yaml:"path"`
	MaxSize    int    `yaml:"maxSize"`
	MaxBackups int    `yaml:"maxBackups"`
	MaxAge     int    `yaml:"maxAge"`
	Compress   bool   `yaml:"compress"`
}

func (c LogConfig) WithDefaults() LogConfig {
	cpy := c
	if cpy.Level == "" {
		cpy.Level = defaultLogLevel
	}
	if cpy.MaxSize == 0 {
		cpy.MaxSize = defaultMaxSize
	}
	if cpy.MaxBackups == 0 {
		cpy.MaxBackups = defaultMaxBackups
	}
	if cpy.MaxAge == 0 {
		cpy.MaxAge = defaultMaxAge
	}
	return cpy
}

func (c LogConfig) ParseLevel() (zerolog.Level, error) {
	level, err := zerolog.ParseLevel(c.Level)
	if err != nil {
		return zerolog.NoLevel, fmt.Errorf("invalid log level %q: %w", c.Level, err)
	}
	return level, nil
}

// CreateLogger builds a logger writing to a rotated file when Path is set and to
// the console otherwise. The closer releases the file.
func (c LogConfig) CreateLogger() (zerolog.Logger, io.Closer, error) {
	level, err := c.ParseLevel()
	if err != nil {
		return zerolog.Nop(), nil, err
	}

	var (
		out    io.Writer
		closer io.Closer = io.NopCloser(nil)
	)
	if c.Path != "" {
		rotating := &lumberjack.Logger{
			Filename:   c.Path,
			MaxSize:    c.MaxSize,
			MaxBackups: c.MaxBackups,
			MaxAge:     c.MaxAge,
			Compress:   c.Compress,
		}
		out, closer = rotating, rotating
	} else {
		out = zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: "15:04:05"}
	}

	logger := zerolog.New(out).Level(level).With().Timestamp().Logger()
	return logger, closer, nil
}
