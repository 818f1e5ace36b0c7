package lang

import (
	"log/slog"
	"sync/atomic"
)

// pkgLogger is the destination for engine diagnostics. Discards by default.
var pkgLogger atomic.Pointer[slog.Logger]

// SetLogger routes engine diagnostics to l. A nil logger restores the
// default discard behavior.
func SetLogger(l *slog.Logger) { pkgLogger.Store(l) }

func logger() *slog.Logger {
	if l := pkgLogger.Load(); l != nil {
		return l
	}

	return slog.New(slog.DiscardHandler)
}
