package ink

import (
	"log/slog"

	"InkOverlay/internal/applog"
)

func logger() *slog.Logger { return applog.For("ink") }
