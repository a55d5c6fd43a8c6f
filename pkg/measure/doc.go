// Package measure computes the shippable weight of a single source file.
//
// A measurement is the byte length of a file after type stripping,
// minification, and brotli compression, plus the import specifiers the file
// declares. The walker calls a [Measurer] once per unique file; everything
// inside a measurement is opaque to it.
//
// # Pipeline
//
// [ESBuild] feeds the file to esbuild as a single-entry bundle in which every
// import is marked external:
//
//  1. parse as TypeScript (or TSX/JSX/JS by extension) and strip types
//  2. minify whitespace, identifiers, and syntax (dead code, constant folding)
//  3. read the import specifiers from the metafile, in source order
//  4. brotli-compress the minified output (quality 11, window 22 by default)
//
// Imports that the TypeScript compiler elides (type-only imports and imports
// never used as values) never reach the output, so they carry no weight and
// are not reported.
//
// # Caching
//
// [Cached] wraps a [SourceMeasurer] with a [cache.Cache] keyed by the file's
// content hash and the measurement settings.
//
// [cache.Cache]: github.com/matzehuels/heft/pkg/cache.Cache
package measure
