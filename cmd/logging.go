package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/scitags/sysinfo-go/types"
)

func logReplacements(groups []string, a slog.Attr) slog.Attr {
	// Remove time.
	if a.Key == slog.TimeKey && len(groups) == 0 && !logTimeFlag {
		return slog.Attr{}
	}

	// Remove the directory from the source's filename.
	if a.Key == slog.SourceKey {
		source, ok := a.Value.Any().(*slog.Source)
		if ok {
			source.File = filepath.Base(source.File)
		}
	}

	// Give the custom trace level a proper name.
	if a.Key == slog.LevelKey {
		if level, ok := a.Value.Any().(slog.Level); ok && level == types.LevelTrace {
			return slog.String(slog.LevelKey, "TRACE")
		}
	}

	return a
}

func setupLogging(level string) error {
	l, ok := types.ParseLogLevel(level)
	if !ok {
		return fmt.Errorf("unknown log level %q", level)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level:       l,
		AddSource:   l <= slog.LevelDebug,
		ReplaceAttr: logReplacements,
	}))
	slog.SetDefault(logger)

	return nil
}
