package ledger

import (
	"fmt"
	"strings"

	"golang.org/x/exp/slices"
)

// graph is an undirected adjacency list over plain commodities. Each edge
// remembers the vertex that created it (u) so output can be listed from
// that side. Adjacent edges are kept in insertion order.
type graph struct {
	vertices []*Commodity
	adj      map[*Commodity][]*graphEdge
}

type graphEdge struct {
	u, v *Commodity
	data *PriceGraphEdge
}

// other returns the endpoint of e opposite to c.
func (e *graphEdge) other(c *Commodity) *Commodity {
	if e.u == c {
		return e.v
	}
	return e.u
}

func newGraph() *graph {
	return &graph{adj: make(map[*Commodity][]*graphEdge)}
}

func (g *graph) hasVertex(c *Commodity) bool {
	_, ok := g.adj[c]
	return ok
}

func (g *graph) addVertex(c *Commodity) {
	if g.hasVertex(c) {
		return
	}
	g.vertices = append(g.vertices, c)
	g.adj[c] = nil
}

func (g *graph) findEdge(a, b *Commodity) *graphEdge {
	for _, e := range g.adj[a] {
		if e.other(a) == b {
			return e
		}
	}
	return nil
}

func (g *graph) addEdge(u, v *Commodity, data *PriceGraphEdge) *graphEdge {
	g.addVertex(u)
	g.addVertex(v)
	e := &graphEdge{u: u, v: v, data: data}
	g.adj[u] = append(g.adj[u], e)
	g.adj[v] = append(g.adj[v], e)
	return e
}

func (g *graph) removeEdge(e *graphEdge) {
	for _, c := range []*Commodity{e.u, e.v} {
		edges := g.adj[c]
		if i := slices.Index(edges, e); i >= 0 {
			g.adj[c] = slices.Delete(edges, i, i+1)
		}
	}
}

// adjacent returns the edges of c accepted by keep, in insertion order.
func (g *graph) adjacent(c *Commodity, keep func(*graphEdge) bool) []*graphEdge {
	var out []*graphEdge
	for _, e := range g.adj[c] {
		if keep == nil || keep(e) {
			out = append(out, e)
		}
	}
	return out
}

type pathNode struct {
	vertex *Commodity
	parent *pathNode
	edge   *graphEdge
	weight int64
	hops   int
}

func (n *pathNode) visits(c *Commodity) bool {
	for ; n != nil; n = n.parent {
		if n.vertex == c {
			return true
		}
	}
	return false
}

// shortestPath enumerates simple paths from source to target breadth first
// and returns the edges of the one whose heaviest edge is lightest. Ties go
// to the path with fewer edges, then to the path found first. weight is
// consulted once per traversed edge, after keep accepted it.
func (g *graph) shortestPath(source, target *Commodity, keep func(*graphEdge) bool, weight func(*graphEdge) int64) []*graphEdge {
	if !g.hasVertex(source) || !g.hasVertex(target) {
		return nil
	}

	var best *pathNode
	frontier := []*pathNode{{vertex: source}}
	for len(frontier) > 0 {
		var next []*pathNode
		for _, node := range frontier {
			if best != nil && node.hops >= best.hops && node.weight >= best.weight {
				continue
			}
			for _, e := range g.adjacent(node.vertex, keep) {
				v := e.other(node.vertex)
				if node.visits(v) {
					continue
				}
				child := &pathNode{
					vertex: v,
					parent: node,
					edge:   e,
					weight: max(node.weight, weight(e)),
					hops:   node.hops + 1,
				}
				if v == target {
					if best == nil || child.weight < best.weight {
						best = child
					}
					continue
				}
				next = append(next, child)
			}
		}
		frontier = next
	}

	if best == nil {
		return nil
	}
	path := make([]*graphEdge, best.hops)
	for n := best; n.parent != nil; n = n.parent {
		path[n.hops-1] = n.edge
	}
	return path
}

// writeGraphViz renders the graph in dot syntax. Vertices are numbered in
// creation order; each edge is listed once, under the vertex that created
// it, ordered by the other endpoint.
func (g *graph) writeGraphViz(name string, keep func(*graphEdge) bool) string {
	vertices := slices.Clone(g.vertices)
	slices.SortStableFunc(vertices, DefaultComparer)

	index := make(map[*Commodity]int, len(vertices))
	for i, c := range vertices {
		index[c] = i
	}

	var out, edges strings.Builder
	fmt.Fprintf(&out, "graph %s {\n", name)
	for i, c := range vertices {
		var owned []*graphEdge
		for _, e := range g.adjacent(c, keep) {
			if e.u == c {
				owned = append(owned, e)
			}
		}
		slices.SortStableFunc(owned, func(a, b *graphEdge) int {
			return DefaultComparer(a.v, b.v)
		})
		for _, e := range owned {
			fmt.Fprintf(&edges, "%d--%d ;\n", i, index[e.v])
		}
		fmt.Fprintf(&out, "%d[label=\"%s\"];\n", i, c.Symbol())
	}
	out.WriteString(edges.String())
	out.WriteString("}\n")
	return out.String()
}
