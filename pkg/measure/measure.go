package measure

import (
	"context"
	"os"
	"unicode/utf8"

	herrors "github.com/matzehuels/heft/pkg/errors"
)

const (
	DefaultQuality = 11 // brotli quality (maximum ratio)
	DefaultWindow  = 22 // brotli window size, log2
)

// Import kinds as reported by esbuild's metafile.
const (
	KindImportStatement = "import-statement"
	KindDynamicImport   = "dynamic-import"
	KindRequireCall     = "require-call"
	KindRequireResolve  = "require-resolve"
)

// DefaultKinds are the import kinds that count as edges of the module graph.
var DefaultKinds = []string{KindImportStatement, KindDynamicImport, KindRequireCall}

// Measurement is everything the walker needs to know about one file.
type Measurement struct {
	Path     string   // File that was measured
	Source   string   // Raw source text
	Imports  []string // Import specifiers in source order, duplicates preserved
	Minified string   // Minified output
	Size     int      // Brotli-compressed length of Minified, in bytes
}

// Measurer measures one file.
type Measurer interface {
	// Measure reads and measures the file at path. Errors carry
	// ErrCodeIO, ErrCodeParse, or ErrCodeEncoding.
	Measure(ctx context.Context, path string) (*Measurement, error)
}

// SourceMeasurer measures already-read source text. Implementations let
// callers such as [Cached] read a file once.
type SourceMeasurer interface {
	Measurer
	MeasureSource(ctx context.Context, path, source string) (*Measurement, error)
	// Fingerprint identifies the settings that affect results.
	Fingerprint() string
}

// Compressor reports the compressed size of arbitrary bytes with the same
// settings used for per-file sizes.
type Compressor interface {
	CompressedSize(data []byte) (int, error)
}

// Options configures measurement.
type Options struct {
	Quality int      // Brotli quality 0-11, 0 selects the default (11)
	Window  int      // Brotli window 10-24, 0 selects the default (22)
	Kinds   []string // Import kinds to report (default: DefaultKinds)
}

// WithDefaults returns a copy of Options with zero values replaced by defaults.
func (o Options) WithDefaults() Options {
	opts := o
	if opts.Quality <= 0 {
		opts.Quality = DefaultQuality
	}
	if opts.Window <= 0 {
		opts.Window = DefaultWindow
	}
	if len(opts.Kinds) == 0 {
		opts.Kinds = DefaultKinds
	}
	return opts
}

// Validate reports settings brotli cannot use.
func (o Options) Validate() error {
	if o.Quality < 0 || o.Quality > 11 {
		return herrors.New(herrors.ErrCodeInvalidInput, "brotli quality must be between 0 and 11, got %d", o.Quality)
	}
	if o.Window != 0 && (o.Window < 10 || o.Window > 24) {
		return herrors.New(herrors.ErrCodeInvalidInput, "brotli window must be between 10 and 24, got %d", o.Window)
	}
	return nil
}

// ReadSource reads path as UTF-8 text.
func ReadSource(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", herrors.Wrap(herrors.ErrCodeIO, err, "read %s", path).WithPath(path)
	}
	if !utf8.Valid(data) {
		return "", herrors.New(herrors.ErrCodeEncoding, "%s is not valid UTF-8", path).WithPath(path)
	}
	return string(data), nil
}
