package observe

import (
	"io"
	"os"
	"runtime"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger is the application logger: zap with structured fields passed
// as plain maps, plus caller metadata on every entry.
type Logger struct {
	appName string
	l       *zap.Logger
}

func NewZapLogger(appName string, writers ...io.Writer) *Logger {
	return NewZapLoggerWithLevel(appName, zapcore.DebugLevel, writers...)
}

func NewZapLoggerWithLevel(appName string, level zapcore.Level, writers ...io.Writer) *Logger {
	cfg := zap.NewProductionEncoderConfig()
	cfg.TimeKey = "timestamp"
	cfg.EncodeTime = zapcore.ISO8601TimeEncoder

	var syncers []zapcore.WriteSyncer
	if len(writers) == 0 {
		syncers = append(syncers, os.Stdout)
	} else {
		for _, w := range writers {
			syncers = append(syncers, zapcore.AddSync(w))
		}
	}

	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(cfg),
		zapcore.NewMultiWriteSyncer(syncers...),
		level,
	)

	return &Logger{
		appName: appName,
		l:       zap.New(core),
	}
}

// ParseLevel maps a config string onto a zap level, defaulting to info.
func ParseLevel(s string) zapcore.Level {
	level, err := zapcore.ParseLevel(s)
	if err != nil {
		return zapcore.InfoLevel
	}
	return level
}

func (l *Logger) Stop() error {
	return l.l.Sync()
}

func (l *Logger) Debug(msg string, fields ...map[string]any) {
	l.write(zapcore.DebugLevel, msg, nil, fields)
}

func (l *Logger) Info(msg string, fields ...map[string]any) {
	l.write(zapcore.InfoLevel, msg, nil, fields)
}

func (l *Logger) Warning(msg string, fields ...map[string]any) {
	l.write(zapcore.WarnLevel, msg, nil, fields)
}

func (l *Logger) Error(err error, fields ...map[string]any) {
	l.write(zapcore.ErrorLevel, err.Error(), err, fields)
}

func (l *Logger) Fatal(msg string, fields ...map[string]any) {
	l.write(zapcore.FatalLevel, msg, nil, fields)
}

func (l *Logger) write(level zapcore.Level, msg string, err error, fields []map[string]any) {
	file, line, funcName := callerParams()

	zapFields := []zap.Field{
		zap.String("app_name", l.appName),
		zap.String("caller_file", file),
		zap.Int("caller_line", line),
		zap.String("caller_func", funcName),
	}
	if len(fields) > 0 {
		for k, v := range fields[0] {
			zapFields = append(zapFields, zap.Any(k, v))
		}
	}
	if err != nil {
		zapFields = append(zapFields, zap.String("error", err.Error()), zap.Stack("stack"))
	}

	switch level {
	case zapcore.DebugLevel:
		l.l.Debug(msg, zapFields...)
	case zapcore.InfoLevel:
		l.l.Info(msg, zapFields...)
	case zapcore.WarnLevel:
		l.l.Warn(msg, zapFields...)
	case zapcore.ErrorLevel:
		l.l.Error(msg, zapFields...)
	case zapcore.FatalLevel:
		l.l.Fatal(msg, zapFields...)
	}
}

func callerParams() (file string, line int, funcName string) {
	pc, file, line, ok := runtime.Caller(3)
	if !ok {
		return "not_defined", 0, "not_defined"
	}
	return file, line, runtime.FuncForPC(pc).Name()
}
