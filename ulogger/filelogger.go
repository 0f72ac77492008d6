package ulogger

import (
	"gopkg.in/natefinch/lumberjack.v2"
)

// NewFileLogger returns a zerolog logger writing JSON lines to a size-rotated file.
func NewFileLogger(service string, options ...Option) *ZLoggerWrapper {
	opts := DefaultOptions()
	for _, o := range options {
		o(opts)
	}

	rotator := &lumberjack.Logger{
		Filename:   opts.filename,
		MaxSize:    opts.maxSizeMB,
		MaxBackups: opts.maxBackups,
	}

	return NewZeroLogger(service,
		WithWriter(rotator),
		WithLevel(opts.logLevel),
		WithSkipFrame(opts.skip),
	)
}
