package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger creates a new logger with timestamp formatting.
// Timestamps are formatted as "HH:MM:SS.ms" (e.g., "14:32:01.45").
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// logHooks writes pipeline, cache and server events as debug lines.
type logHooks struct {
	logger *log.Logger
}

func (h *logHooks) OnLoadStart(_ context.Context, source string) {
	h.logger.Debug("loading dataset", "source", source)
}

func (h *logHooks) OnLoadComplete(_ context.Context, source string, nodes int, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("load failed", "source", source, "error", err)
		return
	}
	h.logger.Debug("dataset loaded", "source", source, "nodes", nodes, "duration", d.Round(time.Microsecond))
}

func (h *logHooks) OnLayoutStart(_ context.Context, vizType string, nodes int) {
	h.logger.Debug("computing layout", "type", vizType, "nodes", nodes)
}

func (h *logHooks) OnLayoutComplete(_ context.Context, vizType string, d time.Duration, err error) {
	h.logger.Debug("layout done", "type", vizType, "duration", d.Round(time.Microsecond), "error", err)
}

func (h *logHooks) OnRenderStart(_ context.Context, formats []string) {
	h.logger.Debug("rendering", "formats", formats)
}

func (h *logHooks) OnRenderComplete(_ context.Context, formats []string, d time.Duration, err error) {
	h.logger.Debug("render done", "formats", formats, "duration", d.Round(time.Microsecond), "error", err)
}

func (h *logHooks) OnCacheHit(_ context.Context, kind string) {
	h.logger.Debug("cache hit", "kind", kind)
}

func (h *logHooks) OnCacheMiss(_ context.Context, kind string) {
	h.logger.Debug("cache miss", "kind", kind)
}

func (h *logHooks) OnCacheSet(_ context.Context, kind string, size int) {
	h.logger.Debug("cache set", "kind", kind, "bytes", size)
}

func (h *logHooks) OnRequest(_ context.Context, method, path string, status int, d time.Duration) {
	h.logger.Debug("served", "method", method, "path", path, "status", status, "duration", d)
}

func (h *logHooks) OnReload(_ context.Context, path string, nodes int, err error) {
	if err != nil {
		h.logger.Debug("reload failed", "input", path, "error", err)
		return
	}
	h.logger.Debug("reloaded", "input", path, "nodes", nodes)
}
