// SPDX-License-Identifier: GPL-3.0-or-later

package logger

import (
	"log/slog"
	"os"
	"strings"
)

// EnvLevelName is the environment variable holding the level name, see ParseLevel.
const EnvLevelName = "TABLEPANEL_LOG_LEVEL"

const levelOff = slog.Level(99)

// Level is the process-wide threshold shared by every handler.
var Level = &level{lvl: &slog.LevelVar{}}

type level struct {
	lvl *slog.LevelVar
}

func (l *level) Enabled(level slog.Level) bool {
	return level >= l.lvl.Level()
}

func (l *level) Set(level slog.Level) {
	l.lvl.Set(level)
}

// SetByName sets the level and reports whether the name is known. Unknown names keep the level.
func (l *level) SetByName(name string) bool {
	lvl, ok := ParseLevel(name)
	if ok {
		l.lvl.Set(lvl)
	}
	return ok
}

// ParseLevel accepts "error" ("err"), "warning" ("warn"), "info", "debug" and "off" ("none").
func ParseLevel(name string) (slog.Level, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "err", "error":
		return slog.LevelError, true
	case "warn", "warning":
		return slog.LevelWarn, true
	case "info":
		return slog.LevelInfo, true
	case "debug":
		return slog.LevelDebug, true
	case "off", "none":
		return levelOff, true
	}
	return slog.LevelInfo, false
}

// EnvLevel returns the level name set in the environment, if any.
func EnvLevel() string {
	return os.Getenv(EnvLevelName)
}
