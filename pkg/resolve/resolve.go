package resolve

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"

	herrors "github.com/matzehuels/heft/pkg/errors"
)

// DefaultCacheSize is the number of candidate lookups a Resolver remembers.
const DefaultCacheSize = 4096

// DefaultExtensions are tried, in order, when a specifier has no exact match.
var DefaultExtensions = []string{".ts", ".tsx", ".mts", ".cts", ".js", ".jsx", ".mjs", ".cjs"}

// jsToTS maps an emitted JavaScript extension to the TypeScript sources that
// produce it.
var jsToTS = map[string][]string{
	".js":  {".ts", ".tsx"},
	".jsx": {".tsx"},
	".mjs": {".mts"},
	".cjs": {".cts"},
}

// ErrBareSpecifier is the cause of resolution errors for specifiers that name
// a package instead of a file.
var ErrBareSpecifier = errors.New("bare specifier")

// errNotFound is the cause of resolution errors when no candidate exists.
var errNotFound = errors.New("no such file")

// Options configures a Resolver.
type Options struct {
	Extensions []string // Extensions to try (default: DefaultExtensions)
	CacheSize  int      // LRU size for candidate lookups (default: DefaultCacheSize)
}

// WithDefaults returns a copy of Options with zero values replaced by defaults.
func (o Options) WithDefaults() Options {
	opts := o
	if len(opts.Extensions) == 0 {
		opts.Extensions = DefaultExtensions
	}
	if opts.CacheSize <= 0 {
		opts.CacheSize = DefaultCacheSize
	}
	return opts
}

// Resolver resolves import specifiers against the referencing file's directory.
// Candidates are probed on every call; the memo only skips canonicalizing a
// candidate whose identity is still a file. It is safe for concurrent use.
type Resolver struct {
	exts []string
	memo *lru.Cache[string, string]
}

// New creates a Resolver. It fails only on invalid options.
func New(opts Options) (*Resolver, error) {
	opts = opts.WithDefaults()
	for _, ext := range opts.Extensions {
		if err := herrors.ValidateExtension(ext); err != nil {
			return nil, err
		}
	}
	memo, err := lru.New[string, string](opts.CacheSize)
	if err != nil {
		return nil, herrors.Wrap(herrors.ErrCodeInternal, err, "create resolver cache")
	}
	return &Resolver{exts: opts.Extensions, memo: memo}, nil
}

// Resolve returns the canonical identity of specifier as imported from the
// file whose canonical identity is from.
//
// Errors carry [herrors.ErrCodeResolution]; bare specifiers wrap
// [ErrBareSpecifier].
func (r *Resolver) Resolve(from, specifier string) (string, error) {
	if IsBare(specifier) {
		return "", herrors.Wrap(herrors.ErrCodeResolution, ErrBareSpecifier,
			"cannot resolve %q from %s: package imports are not supported", specifier, from).WithPath(from)
	}

	base := specifier
	if !filepath.IsAbs(base) {
		base = filepath.Join(filepath.Dir(from), filepath.FromSlash(specifier))
	}

	for _, candidate := range r.candidates(base) {
		if !isFile(candidate) {
			continue
		}
		if id, ok := r.memo.Get(candidate); ok {
			if isFile(id) {
				return id, nil
			}
			r.memo.Remove(candidate)
		}
		id, err := Canonical(candidate)
		if err != nil {
			return "", herrors.Wrap(herrors.ErrCodeResolution, err,
				"cannot resolve %q from %s", specifier, from).WithPath(from)
		}
		r.memo.Add(candidate, id)
		return id, nil
	}

	return "", herrors.Wrap(herrors.ErrCodeResolution, errNotFound,
		"cannot resolve %q from %s", specifier, from).WithPath(from)
}

func (r *Resolver) candidates(base string) []string {
	out := make([]string, 0, 2*len(r.exts)+3)
	out = append(out, base)
	for _, ext := range r.exts {
		out = append(out, base+ext)
	}
	if alts, ok := jsToTS[filepath.Ext(base)]; ok {
		stem := strings.TrimSuffix(base, filepath.Ext(base))
		for _, ext := range alts {
			out = append(out, stem+ext)
		}
	}
	for _, ext := range r.exts {
		out = append(out, filepath.Join(base, "index"+ext))
	}
	return out
}

// Canonical returns the canonical identity of an existing file: absolute,
// cleaned, with every symlink resolved. The file must be a regular file that
// can be opened for reading.
func Canonical(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return "", err
	}
	info, err := os.Stat(resolved)
	if err != nil {
		return "", err
	}
	if !info.Mode().IsRegular() {
		return "", &os.PathError{Op: "open", Path: resolved, Err: errors.New("not a regular file")}
	}
	f, err := os.Open(resolved)
	if err != nil {
		return "", err
	}
	_ = f.Close()
	return filepath.Clean(resolved), nil
}

// IsRelative reports whether specifier is a relative file specifier.
func IsRelative(specifier string) bool {
	return specifier == "." || specifier == ".." ||
		strings.HasPrefix(specifier, "./") || strings.HasPrefix(specifier, "../")
}

// IsBare reports whether specifier names a package rather than a file.
func IsBare(specifier string) bool {
	return !IsRelative(specifier) && !filepath.IsAbs(specifier)
}

func isFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
