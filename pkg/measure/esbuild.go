package measure

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"slices"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/evanw/esbuild/pkg/api"

	herrors "github.com/matzehuels/heft/pkg/errors"
	"github.com/matzehuels/heft/pkg/observability"
)

// fingerprintVersion changes whenever the measurement pipeline changes in a
// way that invalidates cached results.
const fingerprintVersion = 2

// ESBuild measures files with esbuild and brotli.
// It is stateless and safe for concurrent use.
type ESBuild struct {
	opts Options
}

// NewESBuild creates an esbuild-backed measurer.
func NewESBuild(opts Options) (*ESBuild, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	return &ESBuild{opts: opts.WithDefaults()}, nil
}

// Measure reads path and measures it.
func (m *ESBuild) Measure(ctx context.Context, path string) (*Measurement, error) {
	source, err := ReadSource(path)
	if err != nil {
		return nil, err
	}
	return m.MeasureSource(ctx, path, source)
}

// MeasureSource measures source as if it were the contents of path. The
// extension of path selects the loader.
func (m *ESBuild) MeasureSource(ctx context.Context, path, source string) (*Measurement, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	start := time.Now()

	result := m.build(path, source)
	if len(result.Errors) > 0 {
		err := herrors.New(herrors.ErrCodeParse, "parse %s: %s", path, formatMessages(result.Errors)).WithPath(path)
		observability.Walk().OnMeasure(ctx, path, 0, time.Since(start), err)
		return nil, err
	}
	if len(result.OutputFiles) != 1 {
		return nil, herrors.New(herrors.ErrCodeInternal, "esbuild produced %d outputs for %s", len(result.OutputFiles), path).WithPath(path)
	}

	minified := result.OutputFiles[0].Contents
	if !utf8.Valid(minified) {
		return nil, herrors.New(herrors.ErrCodeEncoding, "minified output of %s is not valid UTF-8", path).WithPath(path)
	}

	// esbuild erases type-only declarations while parsing. Their specifiers
	// come from a second build over a copy with the modifiers removed; the
	// minified output above stays the type-stripped one.
	meta := result.Metafile
	if exposed, ok := exposeTypeImports(source); ok {
		typed := m.build(path, exposed)
		if len(typed.Errors) > 0 {
			err := herrors.New(herrors.ErrCodeParse, "parse %s: %s", path, formatMessages(typed.Errors)).WithPath(path)
			observability.Walk().OnMeasure(ctx, path, 0, time.Since(start), err)
			return nil, err
		}
		meta = typed.Metafile
	}

	imports, err := m.imports(meta)
	if err != nil {
		return nil, herrors.Wrap(herrors.ErrCodeInternal, err, "read metafile for %s", path).WithPath(path)
	}

	size, err := m.CompressedSize(minified)
	if err != nil {
		return nil, herrors.Wrap(herrors.ErrCodeInternal, err, "compress %s", path).WithPath(path)
	}

	observability.Walk().OnMeasure(ctx, path, size, time.Since(start), nil)

	return &Measurement{
		Path:     path,
		Source:   source,
		Imports:  imports,
		Minified: string(minified),
		Size:     size,
	}, nil
}

// CompressedSize returns the brotli-compressed length of data.
func (m *ESBuild) CompressedSize(data []byte) (int, error) {
	return compressedSize(data, m.opts.Quality, m.opts.Window)
}

// Fingerprint identifies the settings that affect measurement results.
func (m *ESBuild) Fingerprint() string {
	return fmt.Sprintf("esbuild/v%d/q%d/w%d/%s", fingerprintVersion, m.opts.Quality, m.opts.Window, strings.Join(m.opts.Kinds, ","))
}

func (m *ESBuild) build(path, contents string) api.BuildResult {
	return api.Build(api.BuildOptions{
		Stdin: &api.StdinOptions{
			Contents:   contents,
			ResolveDir: filepath.Dir(path),
			Sourcefile: path,
			Loader:     loaderFor(path),
		},
		Bundle:            true,
		Write:             false,
		Metafile:          true,
		Format:            api.FormatESModule,
		Platform:          api.PlatformNeutral,
		Target:            api.ESNext,
		MinifyWhitespace:  true,
		MinifyIdentifiers: true,
		MinifySyntax:      true,
		LogLevel:          api.LogLevelSilent,
		Plugins:           []api.Plugin{externalPlugin()},
	})
}

// imports extracts the specifiers of the single input in the metafile.
func (m *ESBuild) imports(raw string) ([]string, error) {
	var meta metafile
	if err := json.Unmarshal([]byte(raw), &meta); err != nil {
		return nil, err
	}
	if len(meta.Inputs) != 1 {
		return nil, fmt.Errorf("expected one input, got %d", len(meta.Inputs))
	}

	imports := []string{}
	for _, in := range meta.Inputs {
		for _, imp := range in.Imports {
			if !slices.Contains(m.opts.Kinds, imp.Kind) {
				continue
			}
			spec := imp.Path
			if imp.Original != "" {
				spec = imp.Original
			}
			imports = append(imports, spec)
		}
	}
	return imports, nil
}

// externalPlugin keeps every import out of the bundle so the output is the
// entry file alone.
func externalPlugin() api.Plugin {
	return api.Plugin{
		Name: "heft-external",
		Setup: func(build api.PluginBuild) {
			build.OnResolve(api.OnResolveOptions{Filter: `.*`},
				func(args api.OnResolveArgs) (api.OnResolveResult, error) {
					return api.OnResolveResult{
						Path:     args.Path,
						External: true,
					}, nil
				})
		},
	}
}

func loaderFor(path string) api.Loader {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".tsx":
		return api.LoaderTSX
	case ".jsx":
		return api.LoaderJSX
	case ".js", ".mjs", ".cjs":
		return api.LoaderJS
	default:
		return api.LoaderTS
	}
}

func formatMessages(msgs []api.Message) string {
	parts := make([]string, 0, len(msgs))
	for _, msg := range msgs {
		if loc := msg.Location; loc != nil {
			parts = append(parts, fmt.Sprintf("%d:%d: %s", loc.Line, loc.Column, msg.Text))
			continue
		}
		parts = append(parts, msg.Text)
	}
	return strings.Join(parts, "; ")
}

// metafile is the subset of esbuild's metafile JSON heft reads.
type metafile struct {
	Inputs map[string]metafileInput `json:"inputs"`
}

type metafileInput struct {
	Bytes   int              `json:"bytes"`
	Imports []metafileImport `json:"imports"`
}

type metafileImport struct {
	Path     string `json:"path"`
	Kind     string `json:"kind"`
	External bool   `json:"external,omitempty"`
	Original string `json:"original,omitempty"`
}

// Ensure ESBuild implements the measurement interfaces.
var (
	_ SourceMeasurer = (*ESBuild)(nil)
	_ Compressor     = (*ESBuild)(nil)
)
