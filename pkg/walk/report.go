package walk

import (
	"slices"
	"strings"

	herrors "github.com/matzehuels/heft/pkg/errors"
	"github.com/matzehuels/heft/pkg/importgraph"
	"github.com/matzehuels/heft/pkg/measure"
)

// FileRecord is the measurement of one file in the graph.
type FileRecord struct {
	Path      string   `json:"path"`                // Canonical file identity
	Source    string   `json:"source"`              // Raw source text
	Imports   []string `json:"imports"`             // Specifiers in source order, duplicates kept
	Minified  string   `json:"minified"`            // Minified output
	Size      int      `json:"size"`                // Compressed size of Minified, in bytes
	Length    int      `json:"length"`              // len(Source)
	Deps      []string `json:"deps"`                // Resolved imports, first-seen order, unique
	Externals []string `json:"externals,omitempty"` // Bare specifiers left unresolved
}

// Report is the result of a walk.
type Report struct {
	Root        string        `json:"root"`
	Files       []*FileRecord `json:"files"` // Breadth-first from Root
	TotalLength int           `json:"total_length"`
	TotalSize   int           `json:"total_size"`
	BundledSize int           `json:"bundled_size,omitempty"` // 0 when the measurer cannot compress
	Externals   []string      `json:"externals,omitempty"`    // Sorted, unique
}

// File returns the record for path.
func (r *Report) File(path string) (*FileRecord, bool) {
	for _, f := range r.Files {
		if f.Path == path {
			return f, true
		}
	}
	return nil, false
}

// Graph returns the import graph of the report. Node IDs are file paths.
func (r *Report) Graph() *importgraph.Graph {
	g := importgraph.New()
	for _, f := range r.Files {
		_ = g.AddNode(importgraph.Node{ID: f.Path, Size: f.Size, Length: f.Length})
	}
	for _, f := range r.Files {
		for _, dep := range f.Deps {
			_ = g.AddEdge(importgraph.Edge{From: f.Path, To: dep})
		}
	}
	return g
}

// buildReport orders visited breadth-first from root and computes totals.
func buildReport(root string, visited map[string]*FileRecord, m measure.Measurer) (*Report, error) {
	r := &Report{Root: root, Files: make([]*FileRecord, 0, len(visited))}

	seen := map[string]bool{root: true}
	queue := []string{root}
	externals := make(map[string]bool)
	for len(queue) > 0 {
		path := queue[0]
		queue = queue[1:]

		rec, ok := visited[path]
		if !ok {
			return nil, herrors.New(herrors.ErrCodeInternal, "%s was queued but never visited", path).WithPath(path)
		}
		r.Files = append(r.Files, rec)
		r.TotalLength += rec.Length
		r.TotalSize += rec.Size
		for _, ext := range rec.Externals {
			externals[ext] = true
		}

		for _, dep := range rec.Deps {
			if !seen[dep] {
				seen[dep] = true
				queue = append(queue, dep)
			}
		}
	}

	for ext := range externals {
		r.Externals = append(r.Externals, ext)
	}
	slices.Sort(r.Externals)

	if comp, ok := m.(measure.Compressor); ok {
		var bundle strings.Builder
		for _, f := range r.Files {
			bundle.WriteString(f.Minified)
		}
		size, err := comp.CompressedSize([]byte(bundle.String()))
		if err != nil {
			return nil, herrors.Wrap(herrors.ErrCodeInternal, err, "compress bundle")
		}
		r.BundledSize = size
	}
	return r, nil
}
