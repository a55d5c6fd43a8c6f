package cli

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/heft/pkg/observability"
)

func TestLogHooksInstall(t *testing.T) {
	t.Cleanup(observability.Reset)

	var buf bytes.Buffer
	h := newLogHooks(newLogger(&buf, log.DebugLevel))
	h.install()

	ctx := context.Background()
	observability.Walk().OnWalkStart(ctx, "/proj/a.ts")
	observability.Walk().OnResolve(ctx, "/proj/a.ts", "./b", "/proj/b.ts", nil)
	observability.Walk().OnMeasure(ctx, "/proj/b.ts", 0, 0, errors.New("boom"))
	observability.Cache().OnCacheHit(ctx, "measure")
	observability.Cache().OnCacheHit(ctx, "measure")
	observability.Cache().OnCacheMiss(ctx, "measure")

	if h.hits.Load() != 2 || h.misses.Load() != 1 {
		t.Errorf("hits/misses = %d/%d, want 2/1", h.hits.Load(), h.misses.Load())
	}
	for _, want := range []string{"walk start", "resolved", "measure failed", "cache hit"} {
		if !strings.Contains(buf.String(), want) {
			t.Errorf("log output missing %q:\n%s", want, buf.String())
		}
	}
}

func TestLogHooksQuietAtInfo(t *testing.T) {
	var buf bytes.Buffer
	h := newLogHooks(newLogger(&buf, log.InfoLevel))
	h.OnWalkStart(context.Background(), "/proj/a.ts")
	h.OnCacheSet(context.Background(), "measure", 10)
	if buf.Len() != 0 {
		t.Errorf("debug events logged at info level: %q", buf.String())
	}
}
