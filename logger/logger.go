package logger

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"
)

// Logger emits structured JSON log lines tagged with the service name and
// hostname. Handlers pass a per-request ID so a failed workflow can be
// traced through every line it produced.
type Logger struct {
	service  string
	hostname string
	handler  *slog.Logger
}

func New(service string) *Logger {
	hostname, _ := os.Hostname()

	handler := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))

	return &Logger{
		service:  service,
		hostname: hostname,
		handler:  handler,
	}
}

// GenerateRequestID returns a fresh request ID.
func GenerateRequestID() string {
	return uuid.New().String()
}

func (l *Logger) Info(action, requestID, message string, fields map[string]interface{}) {
	l.log(slog.LevelInfo, action, requestID, message, nil, fields)
}

func (l *Logger) Debug(action, requestID, message string, fields map[string]interface{}) {
	l.log(slog.LevelDebug, action, requestID, message, nil, fields)
}

func (l *Logger) Error(action, requestID, message string, err error, fields map[string]interface{}) {
	l.log(slog.LevelError, action, requestID, message, err, fields)
}

func (l *Logger) log(level slog.Level, action, requestID, message string, err error, fields map[string]interface{}) {
	attrs := []slog.Attr{
		slog.String("timestamp", time.Now().UTC().Format(time.RFC3339)),
		slog.String("service", l.service),
		slog.String("hostname", l.hostname),
		slog.String("action", action),
		slog.String("request_id", requestID),
	}
	if err != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
	}
	for k, v := range fields {
		attrs = append(attrs, slog.Any(k, v))
	}

	l.handler.LogAttrs(context.TODO(), level, message, attrs...)
}
