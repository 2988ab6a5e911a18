package logging

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// TimeFormat is the timestamp layout of console lines.
const TimeFormat = "2006-01-02T15:04:05.000Z0700"

// Appender is an output for log entries. Any zapcore.Core is an Appender.
type Appender interface {
	Write(zapcore.Entry, []zapcore.Field) error
	Sync() error
}

var fieldEncoder = zapcore.EncoderConfig{SkipLineEnding: true}

// formatEntry renders an entry as tab separated time, level, logger name, caller and message,
// followed by the fields as one json object.
func formatEntry(entry zapcore.Entry, fields []zapcore.Field) (string, error) {
	columns := []string{
		entry.Time.Format(TimeFormat),
		strings.ToUpper(entry.Level.String()),
		entry.LoggerName,
	}
	if entry.Caller.Defined {
		dir, file := filepath.Split(entry.Caller.File)
		columns = append(columns, fmt.Sprintf("%s:%d", filepath.Join(filepath.Base(dir), file), entry.Caller.Line))
	}
	columns = append(columns, entry.Message)
	if len(fields) != 0 {
		// the json encoder keeps fields in order; only the fields of an empty entry are encoded
		buf, err := zapcore.NewJSONEncoder(fieldEncoder).EncodeEntry(zapcore.Entry{}, fields)
		if err != nil {
			return strings.Join(columns, "\t"), err
		}
		defer buf.Free()
		columns = append(columns, buf.String())
	}
	return strings.Join(columns, "\t"), nil
}

// ConsoleAppender writes human readable lines to a writer.
type ConsoleAppender struct {
	io.Writer
}

// NewWriterAppender returns an appender that writes lines to writer.
func NewWriterAppender(writer io.Writer) ConsoleAppender {
	return ConsoleAppender{writer}
}

// Write writes one line per entry. The line is written even when the fields cannot be encoded.
func (appender ConsoleAppender) Write(entry zapcore.Entry, fields []zapcore.Field) error {
	line, encodeErr := formatEntry(entry, fields)
	if _, err := fmt.Fprintln(appender.Writer, line); err != nil {
		return err
	}
	return encodeErr
}

// Sync is a no-op.
func (appender ConsoleAppender) Sync() error {
	return nil
}

// FileAppender writes console lines to a size rotated log file.
type FileAppender struct {
	ConsoleAppender
	rotator *lumberjack.Logger
}

// NewFileAppender creates an appender that writes to filename, rotating it after 100 megabytes
// and keeping three old files.
func NewFileAppender(filename string) *FileAppender {
	rotator := &lumberjack.Logger{
		Filename:   filename,
		MaxSize:    100,
		MaxBackups: 3,
	}
	return &FileAppender{ConsoleAppender{rotator}, rotator}
}

// Close closes the current log file.
func (fa *FileAppender) Close() error {
	return fa.rotator.Close()
}
