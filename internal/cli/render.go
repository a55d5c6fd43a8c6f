package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/matzehuels/heft/pkg/importgraph"
)

const (
	graphDOT = ".dot" // Graphviz source
	graphSVG = ".svg" // laid out with the embedded Graphviz
)

// writeGraph writes g to path in the format named by its extension. Labels
// are shortened relative to the root file's directory.
func writeGraph(ctx context.Context, g *importgraph.Graph, root, path string) error {
	dot := importgraph.ToDOT(g, importgraph.Options{
		Detailed: true,
		Base:     filepath.Dir(root),
	})

	var data []byte
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case graphDOT:
		data = []byte(dot)
	case graphSVG:
		svg, err := importgraph.RenderSVG(ctx, dot)
		if err != nil {
			return fmt.Errorf("render graph: %w", err)
		}
		data = svg
	default:
		return fmt.Errorf("unsupported graph format %q (want %s or %s)", ext, graphDOT, graphSVG)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
