package cli

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/heft/pkg/observability"
)

// logHooks forwards walk and cache events to the logger at debug level and
// counts cache traffic for the summary line.
type logHooks struct {
	logger *log.Logger

	hits   atomic.Int64
	misses atomic.Int64
}

func newLogHooks(l *log.Logger) *logHooks {
	return &logHooks{logger: l}
}

// install registers h as the process-wide walk and cache hooks.
func (h *logHooks) install() {
	observability.SetWalkHooks(h)
	observability.SetCacheHooks(h)
}

func (h *logHooks) OnWalkStart(_ context.Context, root string) {
	h.logger.Debug("walk start", "root", root)
}

func (h *logHooks) OnWalkComplete(_ context.Context, root string, files int, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("walk failed", "root", root, "files", files, "err", err)
		return
	}
	h.logger.Debug("walk done", "root", root, "files", files, "duration", d.Round(time.Millisecond))
}

func (h *logHooks) OnMeasure(_ context.Context, path string, size int, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("measure failed", "file", path, "err", err)
		return
	}
	h.logger.Debug("minified", "file", path, "size", size, "duration", d.Round(time.Microsecond))
}

func (h *logHooks) OnResolve(_ context.Context, from, spec, resolved string, err error) {
	if err != nil {
		return
	}
	h.logger.Debug("resolved", "from", from, "import", spec, "file", resolved)
}

func (h *logHooks) OnCacheHit(_ context.Context, keyType string) {
	h.hits.Add(1)
	h.logger.Debug("cache hit", "type", keyType)
}

func (h *logHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.misses.Add(1)
}

func (h *logHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.logger.Debug("cache set", "type", keyType, "bytes", size)
}

var (
	_ observability.WalkHooks  = (*logHooks)(nil)
	_ observability.CacheHooks = (*logHooks)(nil)
)
