// Package logging builds zap loggers whose output can be held back while the
// terminal is owned by the TUI.
package logging

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Options configures a logger.
type Options struct {
	// Level is one of debug, info, warn, error. Empty means info.
	Level string
	// File, when set, receives log lines directly instead of the deferred buffer.
	File string
	// Out receives deferred lines on Flush. Nil means os.Stderr.
	Out io.Writer
	// Direct writes lines to Out immediately. Used when no TUI owns the terminal.
	Direct bool
}

// Sink owns the destination of a logger built by New.
type Sink struct {
	mu     sync.Mutex
	buf    bytes.Buffer
	out    io.Writer
	file   *os.File
	writer *bufio.Writer
	direct bool
}

// Write implements zapcore.WriteSyncer.
func (s *Sink) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.writer != nil {
		return s.writer.Write(p)
	}
	if s.direct {
		return s.out.Write(p)
	}
	return s.buf.Write(p)
}

// Sync implements zapcore.WriteSyncer. Deferred lines stay buffered until Flush.
func (s *Sink) Sync() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.writer != nil {
		return s.writer.Flush()
	}
	return nil
}

// Buffered returns the deferred lines that have not been flushed yet.
func (s *Sink) Buffered() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.buf.String()
}

// Flush writes buffered lines to the output, or flushes and closes the log
// file. It is safe to call more than once.
func (s *Sink) Flush() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.writer != nil {
		if err := s.writer.Flush(); err != nil {
			return fmt.Errorf("failed to flush log file: %w", err)
		}
		err := s.file.Close()
		s.writer = nil
		s.file = nil
		if err != nil {
			return fmt.Errorf("failed to close log file: %w", err)
		}
		return nil
	}
	if s.buf.Len() == 0 {
		return nil
	}
	if _, err := s.out.Write(s.buf.Bytes()); err != nil {
		return fmt.Errorf("failed to write logs: %w", err)
	}
	s.buf.Reset()
	return nil
}

// New builds a logger with the given options. Call Sink.Flush once the
// terminal has been restored.
func New(opts Options) (*zap.Logger, *Sink, error) {
	level, err := ParseLevel(opts.Level)
	if err != nil {
		return nil, nil, err
	}
	sink := &Sink{out: opts.Out, direct: opts.Direct}
	if sink.out == nil {
		sink.out = os.Stderr
	}
	if opts.File != "" {
		file, err := os.Create(opts.File)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create log file: %w", err)
		}
		sink.file = file
		sink.writer = bufio.NewWriter(file)
	}
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(encoderConfig()), sink, level)
	return zap.New(core), sink, nil
}

// ParseLevel converts a textual level, defaulting to info.
func ParseLevel(text string) (zapcore.Level, error) {
	if text == "" {
		return zapcore.InfoLevel, nil
	}
	level, err := zapcore.ParseLevel(text)
	if err != nil {
		return zapcore.InfoLevel, fmt.Errorf("invalid log level %q: %w", text, err)
	}
	return level, nil
}

func encoderConfig() zapcore.EncoderConfig {
	cfg := zap.NewDevelopmentEncoderConfig()
	cfg.TimeKey = ""
	cfg.CallerKey = ""
	cfg.NameKey = ""
	cfg.ConsoleSeparator = " "
	return cfg
}
