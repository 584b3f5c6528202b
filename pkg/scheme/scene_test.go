package scheme

import (
	"bytes"
	"errors"
	"testing"

	"github.com/charmbracelet/log"

	nfberrors "github.com/matzehuels/nfbstudio/pkg/errors"
)

// chainScene returns a scene holding source -> relay -> sink.
func chainScene(t *testing.T) (*Scene, [3]*Node, [2]*Edge) {
	t.Helper()
	s := quietScene()
	nodes := [3]*Node{mustKind(t, "test_source"), mustKind(t, "test_relay"), mustKind(t, "test_sink")}
	for i, n := range nodes {
		n.SetPosition(Pt(float64(i)*250, 100))
		if err := s.Add(n); err != nil {
			t.Fatalf("Add: %v", err)
		}
	}
	var edges [2]*Edge
	for i := range 2 {
		e, err := s.Connect(nodes[i].Output(0), nodes[i+1].Input(0))
		if err != nil {
			t.Fatalf("Connect: %v", err)
		}
		edges[i] = e
	}
	checkMirrored(t, s)
	return s, nodes, edges
}

func TestSceneMirrorsGraph(t *testing.T) {
	s, nodes, edges := chainScene(t)

	if err := s.Remove(nodes[1]); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	checkMirrored(t, s)
	checkInvariant(t, s.Graph())
	if s.Graph().EdgeCount() != 0 {
		t.Errorf("EdgeCount() = %d, want 0", s.Graph().EdgeCount())
	}

	if err := s.Remove(edges[0]); !errors.Is(err, ErrUnknownEdge) {
		t.Errorf("Remove(removed edge): err = %v", err)
	}
	if err := s.Add(nodes[0]); !errors.Is(err, ErrDuplicateNode) {
		t.Errorf("Add(member): err = %v", err)
	}
	checkMirrored(t, s)
}

func TestSceneRejectedConnect(t *testing.T) {
	s := quietScene()
	other, sink := mustKind(t, "test_other"), mustKind(t, "test_sink")
	_ = s.Add(other)
	_ = s.Add(sink)

	if _, err := s.Connect(other.Output(0), sink.Input(0)); !nfberrors.Is(err, nfberrors.ErrCodeTypeMismatch) {
		t.Fatalf("err = %v, want TYPE_MISMATCH", err)
	}
	checkMirrored(t, s)
	if s.Canvas().(*ItemSet).Len() != 2 {
		t.Error("rejected connect reached the canvas")
	}
}

func TestSceneDisconnect(t *testing.T) {
	s, nodes, edges := chainScene(t)
	if got := s.Disconnect(nodes[0].Output(0), nodes[1].Input(0)); got != edges[0] {
		t.Fatalf("Disconnect = %v, want %v", got, edges[0])
	}
	if got := s.Disconnect(nodes[0].Output(0), nodes[1].Input(0)); got != nil {
		t.Errorf("second Disconnect = %v, want nil", got)
	}
	checkMirrored(t, s)
}

func TestSelectedGraph(t *testing.T) {
	s, nodes, edges := chainScene(t)

	_ = s.Select(nodes[0], true)
	_ = s.Select(nodes[1], true)

	snap := s.SelectedGraph()
	if snap.Len() != 2 {
		t.Fatalf("snapshot has %d nodes, want 2", snap.Len())
	}
	got := snap.Edges()
	if len(got) != 1 || got[0] != edges[0] {
		t.Errorf("snapshot edges = %v, want only the edge between the selected nodes", got)
	}
	if containsEdge(got, edges[1]) {
		t.Error("snapshot contains the edge to the unselected node")
	}
}

func TestSelectEdge(t *testing.T) {
	s, nodes, edges := chainScene(t)

	if err := s.SelectEdge(edges[1], true); err != nil {
		t.Fatalf("SelectEdge: %v", err)
	}
	if !edges[1].IsSelected() || !nodes[1].Output(0).IsSelected() {
		t.Error("edge selected on its own should be selected along with its connections")
	}
	if edges[1].AutoSelected() {
		t.Error("derived selection should not follow a direct edge selection")
	}
	if s.SelectedGraph().Len() != 0 || len(s.SelectedGraph().Edges()) != 0 {
		t.Error("a lone selected edge is not part of the selected graph")
	}

	s.ClearSelection()
	_ = s.Select(nodes[0], true)
	_ = s.SelectEdge(edges[1], true)
	if edges[1].IsSelected() {
		t.Error("edge between unselected nodes selected while a node is selected")
	}

	s.ClearSelection()
	for _, e := range edges {
		if e.IsSelected() {
			t.Error("ClearSelection left an edge selected")
		}
	}
	if len(s.SelectedNodes()) != 0 {
		t.Error("ClearSelection left a node selected")
	}
}

func TestCopyPaste(t *testing.T) {
	s, nodes, _ := chainScene(t)
	_ = s.Select(nodes[0], true)
	_ = s.Select(nodes[1], true)

	cb := &memClipboard{}
	if err := s.CopySelectedGraph(cb); err != nil {
		t.Fatalf("CopySelectedGraph: %v", err)
	}

	before := make(map[*Node]Point)
	for _, n := range s.Graph().Nodes() {
		before[n] = n.Position()
	}

	snap, ok := s.Paste(cb)
	if !ok {
		t.Fatal("Paste reported no payload")
	}
	if snap.Len() != 2 || len(snap.Edges()) != 1 {
		t.Fatalf("pasted %d nodes and %d edges, want 2 and 1", snap.Len(), len(snap.Edges()))
	}

	for n, p := range before {
		if n.Position() != p {
			t.Errorf("original node %s moved", n)
		}
		if n.IsSelected() {
			t.Errorf("original node %s still selected", n)
		}
	}
	for i, n := range snap.Nodes() {
		if n.ID() == nodes[i].ID() {
			t.Errorf("pasted node reused ID %s", n.ID())
		}
		if want := nodes[i].Position().Add(DefaultPasteOffset); n.Position() != want {
			t.Errorf("pasted node at %v, want %v", n.Position(), want)
		}
		if !s.Graph().HasNode(n) {
			t.Error("pasted node not in graph")
		}
	}
	e := snap.Edges()[0]
	if e.SourceNode() != snap.Nodes()[0] || e.TargetNode() != snap.Nodes()[1] {
		t.Error("pasted edge does not join the pasted nodes")
	}

	if s.Graph().NodeCount() != 5 || s.Graph().EdgeCount() != 3 {
		t.Errorf("graph has %d nodes and %d edges, want 5 and 3", s.Graph().NodeCount(), s.Graph().EdgeCount())
	}
	checkMirrored(t, s)
	checkInvariant(t, s.Graph())

	// Pasting again yields another set of fresh nodes.
	again, ok := s.Paste(cb)
	if !ok || again.Nodes()[0].ID() == snap.Nodes()[0].ID() {
		t.Error("second paste reused IDs")
	}
}

func TestPasteOffsetOption(t *testing.T) {
	src := quietScene()
	n := mustKind(t, "test_source")
	n.SetPosition(Pt(10, 10))
	_ = src.Add(n)
	_ = src.Select(n, true)
	cb := &memClipboard{}
	_ = src.CopySelectedGraph(cb)

	dst := quietScene(WithPasteOffset(Pt(0.5, 0.5)))
	snap, ok := dst.Paste(cb)
	if !ok {
		t.Fatal("Paste reported no payload")
	}
	if got := snap.Nodes()[0].Position(); got != Pt(10.5, 10.5) {
		t.Errorf("pasted at %v, want (10.5, 10.5)", got)
	}
}

func TestPasteWithoutPayload(t *testing.T) {
	tests := []struct {
		name string
		cb   Clipboard
	}{
		{"nil clipboard", nil},
		{"empty", &memClipboard{}},
		{"not a scheme", &memClipboard{text: "hello world", set: true}},
		{"dangling edge", &memClipboard{text: `{"nodes":[],"edges":[{"source":{"node":"a","port":0},"target":{"node":"b","port":0}}]}`, set: true}},
		{"null", &memClipboard{text: "null", set: true}},
		{"empty object", &memClipboard{text: "{}", set: true}},
		{"foreign object", &memClipboard{text: `{"name":"not a scheme","version":3}`, set: true}},
		{"no nodes", &memClipboard{text: `{"nodes":[],"edges":[]}`, set: true}},
		{"trailing data", &memClipboard{text: `{"nodes":[],"edges":[]} x`, set: true}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, nodes, _ := chainScene(t)
			_ = s.Select(nodes[0], true)
			if _, ok := s.Paste(tt.cb); ok {
				t.Error("Paste reported success")
			}
			if !nodes[0].IsSelected() {
				t.Error("failed paste cleared the selection")
			}
			if s.Graph().NodeCount() != 3 || s.Graph().EdgeCount() != 2 {
				t.Error("failed paste changed the graph")
			}
			checkMirrored(t, s)
		})
	}
}

func TestDragAndDrop(t *testing.T) {
	s := quietScene()
	src, sink := mustKind(t, "test_source"), mustKind(t, "test_sink")
	_ = s.Add(src)
	_ = s.Add(sink)

	e, err := s.BeginDrag(src.Output(0), Pt(300, 300))
	if err != nil {
		t.Fatalf("BeginDrag: %v", err)
	}
	if !s.Graph().HasEdge(e) || e.Resolved() {
		t.Fatal("dragged edge should be an unresolved member")
	}
	checkMirrored(t, s)

	if err := s.DragTo(e, Pt(320, 310)); err != nil {
		t.Fatalf("DragTo: %v", err)
	}
	if p, _ := e.TargetPos(); p != Pt(320, 310) {
		t.Errorf("TargetPos() = %v", p)
	}
	if doc, _ := s.Serialize(); len(doc.Edges) != 0 {
		t.Error("dragged edge was serialized")
	}

	if err := s.Drop(e, sink.Input(0)); err != nil {
		t.Fatalf("Drop: %v", err)
	}
	if !e.Resolved() || e.Target() != sink.Input(0) {
		t.Error("dropped edge is not connected")
	}
	if err := s.DragTo(e, Pt(0, 0)); !errors.Is(err, ErrNotDragging) {
		t.Errorf("DragTo(resolved): err = %v", err)
	}
	checkMirrored(t, s)
	checkInvariant(t, s.Graph())
}

func TestDropRejected(t *testing.T) {
	tests := []struct {
		name   string
		target func(src, other, sink *Node) Connection
		check  func(error) bool
	}{
		{"type mismatch", func(_, other, sink *Node) Connection { return sink.Input(0) },
			func(err error) bool { return nfberrors.Is(err, nfberrors.ErrCodeTypeMismatch) }},
		{"same direction", func(src, _, _ *Node) Connection { return src.Output(0) },
			func(err error) bool { return errors.Is(err, ErrDirection) }},
		{"outside node", func(_, _, _ *Node) Connection { return build("test_sink", "x", []*DataType{Unknown}, nil).Input(0) },
			func(err error) bool { return errors.Is(err, ErrForeignConnection) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := quietScene()
			src, other, sink := mustKind(t, "test_source"), mustKind(t, "test_other"), mustKind(t, "test_sink")
			for _, n := range []*Node{src, other, sink} {
				_ = s.Add(n)
			}

			e, err := s.BeginDrag(other.Output(0), Pt(1, 1))
			if err != nil {
				t.Fatalf("BeginDrag: %v", err)
			}
			err = s.Drop(e, tt.target(src, other, sink))
			if !tt.check(err) {
				t.Fatalf("Drop: unexpected err %v", err)
			}
			if s.Graph().HasEdge(e) {
				t.Error("rejected drag is still in the graph")
			}
			if len(other.Output(0).Edges()) != 0 || len(sink.Input(0).Edges()) != 0 {
				t.Error("rejected drag left an attached edge")
			}
			checkMirrored(t, s)
		})
	}
}

func TestSceneWithoutLoggerIsSilent(t *testing.T) {
	var buf bytes.Buffer
	prev := log.Default()
	log.SetDefault(log.New(&buf))
	t.Cleanup(func() { log.SetDefault(prev) })

	s := NewScene()
	other, sink := mustKind(t, "test_other"), mustKind(t, "test_sink")
	_ = s.Add(other)
	_ = s.Add(sink)
	e, err := s.BeginDrag(other.Output(0), Pt(1, 1))
	if err != nil {
		t.Fatalf("BeginDrag: %v", err)
	}
	if err := s.Drop(e, sink.Input(0)); err == nil {
		t.Fatal("Drop of mismatched types succeeded")
	}
	if buf.Len() != 0 {
		t.Errorf("scene logged without a logger: %q", buf.String())
	}
}

func TestBeginDragFromInput(t *testing.T) {
	s := quietScene()
	src, sink := mustKind(t, "test_source"), mustKind(t, "test_sink")
	_ = s.Add(src)
	_ = s.Add(sink)

	e, err := s.BeginDrag(sink.Input(0), Pt(0, 0))
	if err != nil {
		t.Fatalf("BeginDrag: %v", err)
	}
	if err := s.Drop(e, src.Output(0)); err != nil {
		t.Fatalf("Drop: %v", err)
	}
	if e.Source() != src.Output(0) || e.Target() != sink.Input(0) {
		t.Error("edge dragged from an input is not connected output to input")
	}
}

func TestSceneDeserialize(t *testing.T) {
	s, _, _ := chainScene(t)
	doc, err := s.Serialize()
	if err != nil {
		t.Fatalf("Serialize: %v", err)
	}

	other := quietScene()
	_ = other.Add(mustKind(t, "test_other"))
	if err := other.Deserialize(doc); err != nil {
		t.Fatalf("Deserialize: %v", err)
	}
	if other.Graph().NodeCount() != 3 || other.Graph().EdgeCount() != 2 {
		t.Errorf("got %d nodes and %d edges", other.Graph().NodeCount(), other.Graph().EdgeCount())
	}
	checkMirrored(t, other)

	broken := doc
	broken.Edges = append(broken.Edges, EdgeData{Source: PortRef{Node: "ghost"}, Target: PortRef{Node: "ghost"}})
	items := other.Canvas().Items()
	if err := other.Deserialize(broken); !nfberrors.Is(err, nfberrors.ErrCodeDeserialization) {
		t.Fatalf("err = %v, want DESERIALIZATION", err)
	}
	if len(other.Canvas().Items()) != len(items) {
		t.Error("failed Deserialize changed the canvas")
	}
	checkMirrored(t, other)
}
