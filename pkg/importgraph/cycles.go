package importgraph

// Cycles returns the back edges found by a depth-first search that starts
// from the sources and then from any node not yet reached, both in insertion
// order. Removing every returned edge leaves the graph acyclic. A self-import
// is reported as an edge from a file to itself.
func Cycles(g *Graph) []Edge {
	const (
		white = iota
		gray
		black
	)

	color := make(map[string]int, g.NodeCount())
	var back []Edge

	var dfs func(id string)
	dfs = func(id string) {
		color[id] = gray
		for _, child := range g.Children(id) {
			switch color[child] {
			case white:
				dfs(child)
			case gray:
				back = append(back, Edge{From: id, To: child})
			}
		}
		color[id] = black
	}

	for _, n := range g.Sources() {
		if color[n.ID] == white {
			dfs(n.ID)
		}
	}
	for _, n := range g.Nodes() {
		if color[n.ID] == white {
			dfs(n.ID)
		}
	}
	return back
}

// HasCycle reports whether g contains a directed cycle.
func HasCycle(g *Graph) bool { return len(Cycles(g)) > 0 }
