package scheme

import (
	"fmt"
	"slices"
)

// Graph owns a set of nodes and a set of edges, both kept in insertion
// order.
//
// Every end of a member edge that is set references a connection of a
// member node. Every mutating method either succeeds completely or
// returns an error and leaves the graph unchanged.
//
// Graph is not safe for concurrent use.
type Graph struct {
	nodes   []*Node
	edges   []*Edge
	nodeSet map[*Node]struct{}
	edgeSet map[*Edge]struct{}
	ids     map[string]*Node
}

// NewGraph returns an empty graph.
func NewGraph() *Graph {
	return &Graph{
		nodeSet: make(map[*Node]struct{}),
		edgeSet: make(map[*Edge]struct{}),
		ids:     make(map[string]*Node),
	}
}

// Nodes returns the member nodes in insertion order.
func (g *Graph) Nodes() []*Node { return slices.Clone(g.nodes) }

// Edges returns the member edges in insertion order.
func (g *Graph) Edges() []*Edge { return slices.Clone(g.edges) }

// NodeCount returns the number of member nodes.
func (g *Graph) NodeCount() int { return len(g.nodes) }

// EdgeCount returns the number of member edges.
func (g *Graph) EdgeCount() int { return len(g.edges) }

// Node returns the member node with the given ID.
func (g *Graph) Node(id string) (*Node, bool) {
	n, ok := g.ids[id]
	return n, ok
}

// HasNode reports whether n is a member.
func (g *Graph) HasNode(n *Node) bool {
	_, ok := g.nodeSet[n]
	return ok
}

// HasEdge reports whether e is a member.
func (g *Graph) HasEdge(e *Edge) bool {
	_, ok := g.edgeSet[e]
	return ok
}

// AddNode makes n a member.
func (g *Graph) AddNode(n *Node) error {
	if n == nil {
		return ErrNilNode
	}
	if g.HasNode(n) {
		return nodeError(n, ErrDuplicateNode)
	}
	if _, clash := g.ids[n.id]; clash {
		return nodeError(n, ErrDuplicateNodeID)
	}
	g.nodes = append(g.nodes, n)
	g.nodeSet[n] = struct{}{}
	g.ids[n.id] = n
	return nil
}

// RemoveNode detaches and drops every edge touching n, then drops n.
func (g *Graph) RemoveNode(n *Node) error {
	_, err := g.removeNode(n)
	return err
}

// removeNode is RemoveNode that also returns the member edges it dropped.
func (g *Graph) removeNode(n *Node) ([]*Edge, error) {
	if n == nil {
		return nil, ErrNilNode
	}
	if !g.HasNode(n) {
		return nil, nodeError(n, ErrUnknownNode)
	}
	var dropped []*Edge
	for _, e := range n.Edges() {
		if g.HasEdge(e) {
			g.dropEdge(e)
			dropped = append(dropped, e)
		}
		e.DetachAll()
	}
	g.nodes = slices.DeleteFunc(g.nodes, func(x *Node) bool { return x == n })
	delete(g.nodeSet, n)
	delete(g.ids, n.id)
	return dropped, nil
}

// AddEdge makes e a member. An edge with free-floating ends is allowed; an
// edge whose set end belongs to a node outside the graph is not.
func (g *Graph) AddEdge(e *Edge) error {
	if e == nil {
		return ErrNilEdge
	}
	if g.HasEdge(e) {
		return fmt.Errorf("edge %s: %w", e, ErrDuplicateEdge)
	}
	if err := g.checkEnds(e); err != nil {
		return err
	}
	g.insertEdge(e)
	return nil
}

// RemoveEdge detaches both ends of e and drops it.
func (g *Graph) RemoveEdge(e *Edge) error {
	if e == nil {
		return ErrNilEdge
	}
	if !g.HasEdge(e) {
		return fmt.Errorf("edge %s: %w", e, ErrUnknownEdge)
	}
	g.dropEdge(e)
	e.DetachAll()
	return nil
}

func (g *Graph) insertEdge(e *Edge) {
	g.edges = append(g.edges, e)
	g.edgeSet[e] = struct{}{}
	e.graph = g
}

func (g *Graph) dropEdge(e *Edge) {
	g.edges = slices.DeleteFunc(g.edges, func(x *Edge) bool { return x == e })
	delete(g.edgeSet, e)
	if e.graph == g {
		e.graph = nil
	}
}

// ConnectNodes creates an edge from src to dst and adds it. Both nodes
// must be members and src must be convertible to dst; otherwise no edge
// is created and no connection changes.
func (g *Graph) ConnectNodes(src *Output, dst *Input) (*Edge, error) {
	if src == nil || dst == nil {
		return nil, ErrNilConnection
	}
	if err := g.checkMember(src); err != nil {
		return nil, err
	}
	if err := g.checkMember(dst); err != nil {
		return nil, err
	}
	if err := checkTypes(src.dataType, dst.dataType); err != nil {
		return nil, err
	}

	e := NewEdge()
	e.setSource(src)
	e.setTarget(dst)
	g.insertEdge(e)
	return e, nil
}

// DisconnectNodes removes the first member edge from src to dst and
// returns it. It returns nil, changing nothing, when there is no such edge.
func (g *Graph) DisconnectNodes(src *Output, dst *Input) *Edge {
	for _, e := range g.edges {
		if e.source == src && e.target == dst && src != nil && dst != nil {
			g.dropEdge(e)
			e.DetachAll()
			return e
		}
	}
	return nil
}

// EdgesBetween returns the member edges from src to dst.
func (g *Graph) EdgesBetween(src *Output, dst *Input) []*Edge {
	var out []*Edge
	for _, e := range g.edges {
		if e.source == src && e.target == dst {
			out = append(out, e)
		}
	}
	return out
}

// Validate checks the membership invariant and edge typing. Several edges
// into one input are allowed.
func (g *Graph) Validate() error {
	for _, e := range g.edges {
		if err := g.checkEnds(e); err != nil {
			return err
		}
		if e.source != nil && !e.source.hasEdge(e) {
			return fmt.Errorf("edge %s: source does not list the edge", e)
		}
		if e.target != nil && !e.target.hasEdge(e) {
			return fmt.Errorf("edge %s: target does not list the edge", e)
		}
		if e.Resolved() {
			if err := checkTypes(e.source.dataType, e.target.dataType); err != nil {
				return fmt.Errorf("edge %s: %w", e, err)
			}
		}
	}
	for _, n := range g.nodes {
		for _, e := range n.Edges() {
			if !g.HasEdge(e) {
				return fmt.Errorf("node %s: attached edge %s: %w", n.id, e, ErrUnknownEdge)
			}
		}
	}
	return nil
}

func (g *Graph) checkEnds(e *Edge) error {
	if e.source != nil {
		if err := g.checkMember(e.source); err != nil {
			return fmt.Errorf("edge %s: %w", e, err)
		}
	}
	if e.target != nil {
		if err := g.checkMember(e.target); err != nil {
			return fmt.Errorf("edge %s: %w", e, err)
		}
	}
	return nil
}

func (g *Graph) checkMember(c Connection) error {
	n := c.Node()
	if n == nil || !g.HasNode(n) {
		return fmt.Errorf("%s: %w", c, ErrForeignConnection)
	}
	return nil
}

// Serialize encodes every node and every resolved edge.
func (g *Graph) Serialize() (Document, error) {
	return encodeDocument(g.nodes, g.edges)
}

// Deserialize replaces the graph's content with the decoded document. The
// new state is built aside and swapped in only when decoding succeeds;
// on error the graph keeps its prior content.
func (g *Graph) Deserialize(doc Document) error {
	nodes, edges, err := decodeDocument(doc)
	if err != nil {
		return err
	}
	g.reset(nodes, edges)
	return nil
}

func (g *Graph) reset(nodes []*Node, edges []*Edge) {
	for _, e := range g.edges {
		if e.graph == g {
			e.graph = nil
		}
	}
	g.nodes = nodes
	g.edges = edges
	g.nodeSet = make(map[*Node]struct{}, len(nodes))
	g.edgeSet = make(map[*Edge]struct{}, len(edges))
	g.ids = make(map[string]*Node, len(nodes))
	for _, n := range nodes {
		g.nodeSet[n] = struct{}{}
		g.ids[n.id] = n
	}
	for _, e := range edges {
		g.edgeSet[e] = struct{}{}
		e.graph = g
	}
}
