package walk

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"

	herrors "github.com/matzehuels/heft/pkg/errors"
	"github.com/matzehuels/heft/pkg/measure"
	"github.com/matzehuels/heft/pkg/observability"
	"github.com/matzehuels/heft/pkg/resolve"
)

// Resolver maps an import specifier written in from to a canonical file.
// [*resolve.Resolver] implements it.
type Resolver interface {
	Resolve(from, specifier string) (string, error)
}

// Options configures a walk.
type Options struct {
	// Workers is the number of concurrent measurements. 1 (the default)
	// measures files one at a time.
	Workers int
	// External lists bare specifiers in the report instead of failing.
	External bool
	// Logger receives progress at debug level. Nil discards it.
	Logger *log.Logger
}

// WithDefaults returns a copy of Options with zero values replaced by defaults.
func (o Options) WithDefaults() Options {
	opts := o
	if opts.Workers <= 0 {
		opts.Workers = 1
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	return opts
}

// Walker walks import graphs. A Walker holds no per-walk state and may run
// several walks at once.
type Walker struct {
	measurer measure.Measurer
	resolver Resolver
	opts     Options
}

// New creates a Walker that measures files with m and resolves imports with r.
func New(m measure.Measurer, r Resolver, opts Options) *Walker {
	return &Walker{measurer: m, resolver: r, opts: opts.WithDefaults()}
}

// Walk measures root and everything it transitively imports.
func (w *Walker) Walk(ctx context.Context, root string) (*Report, error) {
	start := time.Now()
	hooks := observability.Walk()

	if err := herrors.ValidatePath(root); err != nil {
		return nil, err
	}
	id, err := resolve.Canonical(root)
	if err != nil {
		return nil, herrors.Wrap(herrors.ErrCodeIO, err, "open root %s", root).WithPath(root)
	}

	hooks.OnWalkStart(ctx, id)
	w.opts.Logger.Debug("walk started", "root", id, "workers", w.opts.Workers)

	c := newCrawler(w, id)
	if w.opts.Workers > 1 {
		err = c.runConcurrent(ctx)
	} else {
		err = c.runSequential(ctx)
	}
	if err != nil {
		hooks.OnWalkComplete(ctx, id, len(c.visited), time.Since(start), err)
		return nil, err
	}

	report, err := buildReport(id, c.visited, w.measurer)
	hooks.OnWalkComplete(ctx, id, len(c.visited), time.Since(start), err)
	if err != nil {
		return nil, err
	}

	w.opts.Logger.Debug("walk complete",
		"root", id,
		"files", len(report.Files),
		"size", report.TotalSize,
		"duration", time.Since(start).Round(time.Millisecond))
	return report, nil
}

// visit measures path and resolves its imports. It touches no walk state,
// so workers may call it concurrently.
func (w *Walker) visit(ctx context.Context, path string) (*FileRecord, error) {
	start := time.Now()
	hooks := observability.Walk()

	m, err := w.measurer.Measure(ctx, path)
	if err != nil {
		return nil, err
	}

	rec := &FileRecord{
		Path:     path,
		Source:   m.Source,
		Imports:  m.Imports,
		Minified: m.Minified,
		Size:     m.Size,
		Length:   len(m.Source),
		Deps:     []string{},
	}

	deps := make(map[string]bool, len(m.Imports))
	externals := make(map[string]bool)
	for _, spec := range m.Imports {
		if w.opts.External && resolve.IsBare(spec) {
			if !externals[spec] {
				externals[spec] = true
				rec.Externals = append(rec.Externals, spec)
			}
			continue
		}
		dep, err := w.resolver.Resolve(path, spec)
		hooks.OnResolve(ctx, path, spec, dep, err)
		if err != nil {
			return nil, err
		}
		if !deps[dep] {
			deps[dep] = true
			rec.Deps = append(rec.Deps, dep)
		}
	}

	w.opts.Logger.Debug("measured",
		"file", path,
		"imports", len(m.Imports),
		"size", m.Size,
		"duration", time.Since(start).Round(time.Microsecond))
	return rec, nil
}
