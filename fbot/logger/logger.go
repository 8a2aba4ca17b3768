package logger

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"runtime"
	"strings"
	"time"
)

const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorPurple = "\033[35m"
	colorWhite  = "\033[37m"
)

type LogType string

const (
	TypeCommand LogType = "CMD"
	TypeDB      LogType = "DB"
	TypeEvent   LogType = "EVT"
	TypeSystem  LogType = "SYS"
)

// Handler is a colorized console slog.Handler shared by the bot and the
// dashboard process. The prefix distinguishes the two in combined logs.
type Handler struct {
	prefix    string
	opts      *slog.HandlerOptions
	startTime time.Time
	attrs     []slog.Attr
	groups    []string
}

func NewHandler(prefix string) *Handler {
	if prefix == "" {
		prefix = "FBOT"
	}
	return &Handler{
		prefix:    prefix,
		opts:      &slog.HandlerOptions{Level: slog.LevelDebug},
		startTime: time.Now(),
		attrs:     make([]slog.Attr, 0),
		groups:    make([]string, 0),
	}
}

func (h *Handler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.opts.Level.Level()
}

func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &Handler{
		prefix:    h.prefix,
		opts:      h.opts,
		startTime: h.startTime,
		attrs:     append(h.attrs, attrs...),
		groups:    h.groups,
	}
}

func (h *Handler) WithGroup(name string) slog.Handler {
	return &Handler{
		prefix:    h.prefix,
		opts:      h.opts,
		startTime: h.startTime,
		attrs:     h.attrs,
		groups:    append(h.groups, name),
	}
}

func (h *Handler) Handle(_ context.Context, r slog.Record) error {
	if shouldSkipLog(&r) {
		return nil
	}

	timestamp := time.Now().Format("15:04:05")

	var levelColor, levelText string
	switch r.Level {
	case slog.LevelDebug:
		levelColor = colorPurple
		levelText = "DEBUG"
	case slog.LevelInfo:
		levelColor = colorGreen
		levelText = "INFO"
	case slog.LevelWarn:
		levelColor = colorYellow
		levelText = "WARN"
	case slog.LevelError:
		levelColor = colorRed
		levelText = "ERROR"
	}

	logType := getLogType(&r)
	status := getAttr(&r, "status")
	guildID := getAttr(&r, "guild_id")

	message := r.Message
	if r.Level == slog.LevelError {
		if details := getAttr(&r, "error"); details != "" {
			message = fmt.Sprintf("%s: %s", message, details)
		}
		if file, line := getSourceLocation(); file != "" {
			message = fmt.Sprintf("%s (%s:%d)", message, file, line)
		}
	}
	if guildID != "" {
		message = fmt.Sprintf("%s [guild %s]", message, guildID)
	}
	if status != "" {
		message = fmt.Sprintf("%s [status: %s]", message, status)
	}

	var attrsStr strings.Builder
	r.Attrs(func(a slog.Attr) bool {
		if !isInternalAttr(a.Key) {
			fmt.Fprintf(&attrsStr, " %s=%v", a.Key, a.Value)
		}
		return true
	})
	for _, a := range h.attrs {
		if !isInternalAttr(a.Key) {
			fmt.Fprintf(&attrsStr, " %s=%v", a.Key, a.Value)
		}
	}

	fmt.Printf("%s[%s] [%s] [%s%s%s] [%s] %s%s%s\n",
		colorWhite,
		h.prefix,
		timestamp,
		levelColor,
		levelText,
		colorWhite,
		logType,
		message,
		attrsStr.String(),
		colorReset,
	)
	return nil
}

// shouldSkipLog filters out disgo gateway/rest chatter that would drown
// the event log at debug level.
func shouldSkipLog(r *slog.Record) bool {
	skippedMessages := []string{
		"new request",
		"new response",
		"locking rest bucket",
		"unlocking rest bucket",
		"sending heartbeat",
		"rate limit response headers",
	}
	for _, skip := range skippedMessages {
		if strings.Contains(strings.ToLower(r.Message), skip) {
			return true
		}
	}
	return false
}

func getLogType(r *slog.Record) LogType {
	logType := TypeSystem
	r.Attrs(func(a slog.Attr) bool {
		if a.Key == "type" {
			switch a.Value.String() {
			case "cmd":
				logType = TypeCommand
			case "db":
				logType = TypeDB
			case "evt":
				logType = TypeEvent
			}
			return false
		}
		return true
	})
	return logType
}

func getAttr(r *slog.Record, key string) string {
	var value string
	r.Attrs(func(a slog.Attr) bool {
		if a.Key == key {
			value = a.Value.String()
			return false
		}
		return true
	})
	return value
}

func getSourceLocation() (string, int) {
	_, file, line, ok := runtime.Caller(4)
	if !ok {
		return "", 0
	}
	return filepath.Base(file), line
}

func isInternalAttr(key string) bool {
	switch key {
	case "type", "status", "guild_id", "error":
		return true
	}
	return false
}
