package scheme

import (
	"errors"
	"io"
	"slices"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/nfbstudio/pkg/export"
)

var (
	typeRaw      = NewDataType(103, "raw")
	typeEnvelope = NewDataType(104, "envelope", typeRaw)
	typeOther    = NewDataType(999, "other")
)

type testConfig struct {
	kind  string
	Gain  float64 `json:"gain"`
	Label string  `json:"label,omitempty"`
}

func (c *testConfig) Kind() string { return c.kind }

func (c *testConfig) AddExportData(f *export.Fields) { f.Set("fGain", c.Gain) }

func (c *testConfig) Validate() error {
	if c.Gain < 0 {
		return errors.New("negative gain")
	}
	return nil
}

func init() {
	RegisterKind("test_source", func() *Node { return build("test_source", "Source", nil, []*DataType{typeRaw}) })
	RegisterKind("test_relay", func() *Node {
		return build("test_relay", "Relay", []*DataType{typeEnvelope}, []*DataType{typeEnvelope})
	})
	RegisterKind("test_sink", func() *Node { return build("test_sink", "Sink", []*DataType{typeEnvelope}, nil) })
	RegisterKind("test_other", func() *Node { return build("test_other", "Other", nil, []*DataType{typeOther}) })
}

func build(kind, title string, ins, outs []*DataType) *Node {
	n := NewNode(title, &testConfig{kind: kind, Gain: 1})
	for i, t := range ins {
		_ = n.AddInput(NewInput(string(rune('a'+i)), t))
	}
	for i, t := range outs {
		_ = n.AddOutput(NewOutput(string(rune('x'+i)), t))
	}
	return n
}

func mustKind(t *testing.T, kind string) *Node {
	t.Helper()
	n, err := NewNodeOfKind(kind)
	if err != nil {
		t.Fatalf("NewNodeOfKind(%q): %v", kind, err)
	}
	return n
}

func mustAdd(t *testing.T, g *Graph, nodes ...*Node) {
	t.Helper()
	for _, n := range nodes {
		if err := g.AddNode(n); err != nil {
			t.Fatalf("AddNode(%s): %v", n, err)
		}
	}
}

func mustConnect(t *testing.T, g *Graph, src *Output, dst *Input) *Edge {
	t.Helper()
	e, err := g.ConnectNodes(src, dst)
	if err != nil {
		t.Fatalf("ConnectNodes(%s, %s): %v", src, dst, err)
	}
	return e
}

// checkInvariant fails the test if a member edge references a connection
// of a node outside the graph or if a connection and its edge disagree.
func checkInvariant(t *testing.T, g *Graph) {
	t.Helper()
	if err := g.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	for _, e := range g.Edges() {
		if n := e.SourceNode(); e.Source() != nil && !g.HasNode(n) {
			t.Fatalf("edge %s: source node not in graph", e)
		}
		if n := e.TargetNode(); e.Target() != nil && !g.HasNode(n) {
			t.Fatalf("edge %s: target node not in graph", e)
		}
	}
}

// checkMirrored fails the test unless the canvas holds exactly the graph's
// nodes and edges.
func checkMirrored(t *testing.T, s *Scene) {
	t.Helper()
	items := s.Canvas().Items()
	g := s.Graph()
	if len(items) != g.NodeCount()+g.EdgeCount() {
		t.Fatalf("canvas has %d items, graph has %d nodes and %d edges",
			len(items), g.NodeCount(), g.EdgeCount())
	}
	for _, it := range items {
		switch it := it.(type) {
		case *Node:
			if !g.HasNode(it) {
				t.Fatalf("canvas node %s not in graph", it)
			}
		case *Edge:
			if !g.HasEdge(it) {
				t.Fatalf("canvas edge %s not in graph", it)
			}
		}
	}
}

// memClipboard is a minimal in-package clipboard.
type memClipboard struct {
	text string
	set  bool
}

func (c *memClipboard) SetText(text string) error {
	c.text, c.set = text, true
	return nil
}

func (c *memClipboard) Text() (string, bool, error) { return c.text, c.set, nil }

func quietScene(opts ...Option) *Scene {
	return NewScene(append([]Option{WithLogger(log.New(io.Discard))}, opts...)...)
}

func containsEdge(edges []*Edge, e *Edge) bool { return slices.Contains(edges, e) }
