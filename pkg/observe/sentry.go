package observe

import (
	"encoding/json"
	"log"
	"time"

	"github.com/getsentry/sentry-go"
	"go.uber.org/zap/zapcore"
)

const (
	_sentryMaxErrorDepth  = 9
	_sentryFlushTimeout   = 5 * time.Second
	_sentryRequestTimeout = 5 * time.Second
)

// SentryHook is an io.Writer that forwards error-level log entries to
// Sentry. Wire it as an extra writer of the Logger when a DSN is set.
type SentryHook struct {
	appEnv  string
	appName string
}

func NewSentryHook(appEnv, appName, dsn string, isDebug bool) *SentryHook {
	transport := sentry.NewHTTPTransport()
	transport.Timeout = _sentryRequestTimeout

	if err := sentry.Init(sentry.ClientOptions{
		AttachStacktrace: true,
		Debug:            isDebug,
		Dsn:              dsn,
		Environment:      appEnv,
		MaxErrorDepth:    _sentryMaxErrorDepth,
		ServerName:       appName,
		Transport:        transport,
	}); err != nil {
		log.Println("sentry init error:", err)
	}

	return &SentryHook{appEnv: appEnv, appName: appName}
}

func (h *SentryHook) Write(p []byte) (int, error) {
	var entry struct {
		Level      string `json:"level"`
		Message    string `json:"msg"`
		Error      string `json:"error"`
		CallerFile string `json:"caller_file"`
		CallerLine int    `json:"caller_line"`
		CallerFunc string `json:"caller_func"`
		Stack      string `json:"stack"`
	}

	if err := json.Unmarshal(p, &entry); err != nil {
		return len(p), nil
	}

	level, err := zapcore.ParseLevel(entry.Level)
	if err != nil || entry.Message == "" {
		return len(p), nil
	}

	switch level {
	case zapcore.ErrorLevel, zapcore.FatalLevel, zapcore.PanicLevel:
		event := sentry.NewEvent()
		event.Level = h.mapLevel(level)
		event.Environment = h.appEnv
		event.Message = entry.Message
		event.Extra["AppName"] = h.appName
		event.Extra["Error"] = entry.Error
		event.Extra["CallerFile"] = entry.CallerFile
		event.Extra["CallerLine"] = entry.CallerLine
		event.Extra["CallerFunc"] = entry.CallerFunc
		event.Extra["Stack"] = entry.Stack
		event.Exception = append(event.Exception, sentry.Exception{
			Type:       entry.Message,
			Value:      entry.Error,
			Stacktrace: sentry.NewStacktrace(),
		})
		sentry.CaptureEvent(event)
	}

	return len(p), nil
}

func (*SentryHook) mapLevel(zl zapcore.Level) sentry.Level {
	switch zl {
	case zapcore.WarnLevel:
		return sentry.LevelWarning
	case zapcore.ErrorLevel:
		return sentry.LevelError
	case zapcore.FatalLevel, zapcore.PanicLevel:
		return sentry.LevelFatal
	default:
		return sentry.LevelInfo
	}
}

// Flush drains pending Sentry events, typically on shutdown.
func (h *SentryHook) Flush() {
	sentry.Flush(_sentryFlushTimeout)
}
