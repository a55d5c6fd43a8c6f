// Package pkg provides the libraries behind heft, a tool that estimates the
// shippable weight of a TypeScript or JavaScript module.
//
// # Overview
//
// A weight run follows one module's static imports and measures every
// reachable file once:
//
//	entry file
//	     ↓
//	[walk] breadth-first traversal, one record per file
//	     ↓        ↑
//	[resolve]   [measure]
//	specifier   esbuild minify + brotli size
//	 → file     (optionally memoized in [cache])
//	     ↓
//	Report → text, JSON, [importgraph] DOT/SVG
//
// # Packages
//
//   - [resolve]: import specifier + importing file → canonical file path
//   - [measure]: minified text, import list and compressed size of one file
//   - [walk]: graph traversal, aggregation and the JSON report
//   - [importgraph]: the file graph of a report, cycles and rendering
//   - [cache]: file, Redis and no-op stores for memoized measurements
//   - [errors]: coded errors shared by every package
//   - [observability]: hooks for logging and metrics
//   - [buildinfo]: version information
//
// # Quick Start
//
//	r, _ := resolve.New(resolve.Options{})
//	m, _ := measure.NewESBuild(measure.Options{})
//	report, err := walk.New(m, r, walk.Options{Workers: 4}).Walk(ctx, "src/index.ts")
//	if err != nil {
//	    return err
//	}
//	fmt.Println(report.TotalSize, report.TotalLength)
package pkg
