package logging

import (
	"errors"
	"fmt"
	"os"
	"runtime"
	"slices"
	"time"

	"github.com/samber/lo"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var errMissingValue = errors.New("missing value")

type logger struct {
	name      string
	level     AtomicLevel
	context   []zapcore.Field
	appenders []Appender
}

func (l *logger) Debugw(msg string, keysAndValues ...interface{}) {
	l.write(DEBUG, msg, keysAndValues)
}

func (l *logger) Infow(msg string, keysAndValues ...interface{}) {
	l.write(INFO, msg, keysAndValues)
}

func (l *logger) Warnw(msg string, keysAndValues ...interface{}) {
	l.write(WARN, msg, keysAndValues)
}

func (l *logger) With(keysAndValues ...interface{}) Logger {
	return &logger{
		name:      l.name,
		level:     l.level,
		context:   append(slices.Clip(l.context), toFields(keysAndValues)...),
		appenders: slices.Clip(l.appenders),
	}
}

func (l *logger) SetLevel(level Level) {
	l.level.Set(level)
}

func (l *logger) AddAppender(appender Appender) {
	l.appenders = append(l.appenders, appender)
}

func (l *logger) Sync() error {
	var err error
	for _, appender := range l.appenders {
		err = multierr.Append(err, appender.Sync())
	}
	return err
}

// write must be called directly by the exported logging methods so the caller is found two
// frames up.
func (l *logger) write(level Level, msg string, keysAndValues []interface{}) {
	if level < l.level.Get() {
		return
	}
	entry := zapcore.Entry{
		Level:      level.AsZap(),
		Time:       time.Now().UTC(),
		LoggerName: l.name,
		Message:    msg,
		Caller:     zapcore.NewEntryCaller(runtime.Caller(2)),
	}
	fields := append(slices.Clip(l.context), toFields(keysAndValues)...)

	var err error
	for _, appender := range l.appenders {
		err = multierr.Append(err, appender.Write(entry, fields))
	}
	if err != nil {
		//nolint:errcheck
		fmt.Fprintln(os.Stderr, "cannot write log entry:", err)
	}
}

// toFields pairs alternating keys and values. A trailing key is kept with an error value.
func toFields(keysAndValues []interface{}) []zapcore.Field {
	return lo.Map(lo.Chunk(keysAndValues, 2), func(pair []interface{}, _ int) zapcore.Field {
		key := fmt.Sprint(pair[0])
		if len(pair) < 2 {
			return zap.NamedError(key, errMissingValue)
		}
		return zap.Any(key, pair[1])
	})
}
