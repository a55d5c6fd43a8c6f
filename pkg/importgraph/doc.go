// Package importgraph holds the file-level import graph of a walk.
//
// Nodes are canonical file paths and edges point from an importing file to
// the file it imports. Unlike a package dependency graph, an import graph
// may contain cycles (two modules importing each other is legal in ES
// modules), so [Graph] does not reject them; [Cycles] reports the back edges
// instead.
//
// # Rendering
//
// [ToDOT] produces Graphviz DOT text and [RenderSVG] lays it out with the
// embedded Graphviz from github.com/goccy/go-graphviz:
//
//	dot := importgraph.ToDOT(report.Graph(), importgraph.Options{Detailed: true})
//	svg, err := importgraph.RenderSVG(ctx, dot)
package importgraph
