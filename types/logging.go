package types

import (
	"log/slog"
	"strings"
)

const (
	LevelTrace = slog.Level(slog.LevelDebug - 1)
	LevelDebug = slog.LevelDebug
	LevelInfo  = slog.LevelInfo
	LevelWarn  = slog.LevelWarn
	LevelError = slog.LevelError
)

var logLevelMap = map[string]slog.Level{
	"trace": LevelTrace,
	"debug": LevelDebug,
	"info":  LevelInfo,
	"warn":  LevelWarn,
	"error": LevelError,
}

// ParseLogLevel maps a level name onto its slog.Level. Unknown names
// resolve to LevelInfo.
func ParseLogLevel(level string) (slog.Level, bool) {
	l, ok := logLevelMap[strings.ToLower(level)]
	if !ok {
		return LevelInfo, false
	}
	return l, true
}
