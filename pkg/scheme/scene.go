package scheme

import (
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/nfbstudio/pkg/observability"
)

// Clipboard is the text clipboard a scene copies to and pastes from.
type Clipboard interface {
	SetText(text string) error
	// Text returns the stored text. ok is false when nothing is stored.
	Text() (text string, ok bool, err error)
}

// Scene keeps a [Graph] and a [Canvas] in step. Every mutation goes
// through the scene, which changes the graph first and mirrors the
// change onto the canvas only when the graph accepted it. An item is on
// the canvas if and only if it is a member of the graph.
//
// Scene is not safe for concurrent use.
type Scene struct {
	graph       *Graph
	canvas      Canvas
	logger      *log.Logger
	pasteOffset Point
}

// Option configures a [Scene].
type Option func(*Scene)

// WithCanvas sets the presentation canvas. The default is an [ItemSet].
func WithCanvas(c Canvas) Option { return func(s *Scene) { s.canvas = c } }

// WithLogger sets the logger for mutations and rejected operations. A
// scene without one logs nothing.
func WithLogger(l *log.Logger) Option { return func(s *Scene) { s.logger = l } }

// WithPasteOffset sets how far pasted nodes are moved from their copied
// position.
func WithPasteOffset(p Point) Option { return func(s *Scene) { s.pasteOffset = p } }

// NewScene returns an empty scene.
func NewScene(opts ...Option) *Scene {
	s := &Scene{pasteOffset: DefaultPasteOffset}
	for _, opt := range opts {
		opt(s)
	}
	if s.canvas == nil {
		s.canvas = NewItemSet()
	}
	if s.logger == nil {
		s.logger = log.New(io.Discard)
	}
	s.graph = NewGraph()
	return s
}

// Graph returns the scene's graph. Mutate it only through the scene.
func (s *Scene) Graph() *Graph { return s.graph }

// Canvas returns the presentation canvas.
func (s *Scene) Canvas() Canvas { return s.canvas }

// PasteOffset returns the displacement applied to pasted nodes.
func (s *Scene) PasteOffset() Point { return s.pasteOffset }

// Add adds a node or an edge.
func (s *Scene) Add(it Item) error {
	var err error
	switch it := it.(type) {
	case *Node:
		err = s.graph.AddNode(it)
	case *Edge:
		err = s.graph.AddEdge(it)
	default:
		err = fmt.Errorf("unsupported scene item %T", it)
	}
	if err != nil {
		return s.rejected("add", err)
	}
	s.canvas.AddItem(it)
	s.mutated("add", "item", it)
	return nil
}

// Remove removes a node or an edge. Removing a node also removes every
// edge touching it.
func (s *Scene) Remove(it Item) error {
	switch it := it.(type) {
	case *Node:
		dropped, err := s.graph.removeNode(it)
		if err != nil {
			return s.rejected("remove", err)
		}
		for _, e := range dropped {
			s.canvas.RemoveItem(e)
		}
		s.canvas.RemoveItem(it)
	case *Edge:
		if err := s.graph.RemoveEdge(it); err != nil {
			return s.rejected("remove", err)
		}
		s.canvas.RemoveItem(it)
	default:
		return s.rejected("remove", fmt.Errorf("unsupported scene item %T", it))
	}
	s.mutated("remove", "item", it)
	return nil
}

// Connect joins src to dst with a new edge.
func (s *Scene) Connect(src *Output, dst *Input) (*Edge, error) {
	e, err := s.graph.ConnectNodes(src, dst)
	if err != nil {
		return nil, s.rejected("connect", err)
	}
	s.canvas.AddItem(e)
	s.mutated("connect", "edge", e)
	return e, nil
}

// Disconnect removes the first edge from src to dst and returns it, or
// returns nil when the pair is not connected.
func (s *Scene) Disconnect(src *Output, dst *Input) *Edge {
	e := s.graph.DisconnectNodes(src, dst)
	if e == nil {
		return nil
	}
	s.canvas.RemoveItem(e)
	s.mutated("disconnect", "edge", e)
	return e
}

// BeginDrag starts a new edge at c with its other end free at the given
// point. The edge is a member of the scene until it is dropped or
// cancelled, but it is never serialized in this state.
func (s *Scene) BeginDrag(c Connection, at Point) (*Edge, error) {
	if c == nil {
		return nil, ErrNilConnection
	}
	if err := s.graph.checkMember(c); err != nil {
		return nil, s.rejected("drag", err)
	}
	e := NewEdge()
	switch c := c.(type) {
	case *Output:
		e.setSource(c)
		e.SetTargetPos(at)
	case *Input:
		e.setTarget(c)
		e.SetSourcePos(at)
	}
	if err := s.Add(e); err != nil {
		e.DetachAll()
		return nil, err
	}
	return e, nil
}

// DragTo moves the free end of a dragged edge.
func (s *Scene) DragTo(e *Edge, p Point) error {
	if e == nil {
		return ErrNilEdge
	}
	src, dst := e.floating()
	switch {
	case dst:
		e.SetTargetPos(p)
	case src:
		e.SetSourcePos(p)
	default:
		return ErrNotDragging
	}
	return nil
}

// Drop attaches the free end of a dragged edge to c. If c has the wrong
// direction, belongs to a node outside the scene or cannot be typed
// against the other end, the drag is cancelled and the error returned.
func (s *Scene) Drop(e *Edge, c Connection) error {
	if e == nil {
		return ErrNilEdge
	}
	if !s.graph.HasEdge(e) {
		return fmt.Errorf("edge %s: %w", e, ErrUnknownEdge)
	}
	src, dst := e.floating()
	if !src && !dst {
		return ErrNotDragging
	}

	err := func() error {
		if c == nil {
			return ErrNilConnection
		}
		if err := s.graph.checkMember(c); err != nil {
			return err
		}
		if (dst && c.Direction() != DirInput) || (src && c.Direction() != DirOutput) {
			return ErrDirection
		}
		return c.Attach(e)
	}()
	if err != nil {
		s.logger.Warn("drop rejected", "edge", e, "err", err)
		s.CancelDrag(e)
		return s.rejected("drop", err)
	}
	s.mutated("connect", "edge", e)
	return nil
}

// CancelDrag discards a dragged edge. Cancelling an edge that is no longer
// in the scene does nothing.
func (s *Scene) CancelDrag(e *Edge) {
	if e == nil || !s.graph.HasEdge(e) {
		return
	}
	_ = s.graph.RemoveEdge(e)
	s.canvas.RemoveItem(e)
	s.logger.Debug("drag cancelled", "edge", e)
}

// Select sets a node's selection flag. Attached edges follow.
func (s *Scene) Select(n *Node, v bool) error {
	if n == nil {
		return ErrNilNode
	}
	if !s.graph.HasNode(n) {
		return nodeError(n, ErrUnknownNode)
	}
	n.SetSelected(v)
	return nil
}

// SelectEdge sets an edge's selection flag. While any node is selected an
// edge cannot be selected on its own, so the flag is forced to the
// edge's derived value.
func (s *Scene) SelectEdge(e *Edge, v bool) error {
	if e == nil {
		return ErrNilEdge
	}
	if !s.graph.HasEdge(e) {
		return fmt.Errorf("edge %s: %w", e, ErrUnknownEdge)
	}
	if len(s.SelectedNodes()) > 0 {
		v = e.AutoSelected()
	}
	e.setSelected(v)
	return nil
}

// ClearSelection deselects every node and edge.
func (s *Scene) ClearSelection() {
	for _, n := range s.graph.nodes {
		n.selected = false
	}
	for _, e := range s.graph.edges {
		e.setSelected(false)
	}
}

// SelectedNodes returns the selected nodes in graph order.
func (s *Scene) SelectedNodes() []*Node {
	var out []*Node
	for _, n := range s.graph.nodes {
		if n.selected {
			out = append(out, n)
		}
	}
	return out
}

// SelectedGraph returns the selected nodes and the edges whose derived
// selection is set, which are the edges between two selected nodes.
// An edge that was selected on its own is not included.
func (s *Scene) SelectedGraph() Snapshot {
	var edges []*Edge
	for _, e := range s.graph.edges {
		if e.AutoSelected() {
			edges = append(edges, e)
		}
	}
	return NewSnapshot(s.SelectedNodes(), edges)
}

// CopySelectedGraph stores the encoded selected graph on cb.
func (s *Scene) CopySelectedGraph(cb Clipboard) error {
	snap := s.SelectedGraph()
	text, err := snap.Encode()
	if err != nil {
		return err
	}
	if err := cb.SetText(text); err != nil {
		return fmt.Errorf("clipboard: %w", err)
	}
	s.logger.Debug("copied selection", "nodes", snap.Len(), "edges", len(snap.edges))
	return nil
}

// Paste decodes the clipboard and adds its content to the scene. Each
// pasted node gets a fresh ID and is moved by the paste offset, and the
// current selection is cleared first.
//
// If the clipboard is empty or does not hold a scheme, Paste does nothing
// and reports false.
func (s *Scene) Paste(cb Clipboard) (Snapshot, bool) {
	snap, err := s.readClipboard(cb)
	if err != nil {
		s.logger.Debug("nothing to paste", "reason", err)
		observability.Scheme().OnPaste(0, 0, false)
		return Snapshot{}, false
	}

	for _, n := range snap.nodes {
		n.renewID()
		n.SetPosition(n.position.Add(s.pasteOffset))
	}
	s.ClearSelection()

	if err := s.addAll(snap); err != nil {
		s.logger.Warn("paste failed", "err", err)
		observability.Scheme().OnPaste(0, 0, false)
		return Snapshot{}, false
	}
	s.logger.Debug("pasted", "nodes", len(snap.nodes), "edges", len(snap.edges))
	observability.Scheme().OnPaste(len(snap.nodes), len(snap.edges), true)
	return snap, true
}

func (s *Scene) readClipboard(cb Clipboard) (Snapshot, error) {
	if cb == nil {
		return Snapshot{}, errors.New("no clipboard")
	}
	text, ok, err := cb.Text()
	switch {
	case err != nil:
		return Snapshot{}, err
	case !ok || text == "":
		return Snapshot{}, errors.New("clipboard is empty")
	}
	return DecodeSnapshot(text)
}

// addAll adds the nodes then the edges of snap, removing whatever it
// added if any of them is refused.
func (s *Scene) addAll(snap Snapshot) error {
	var added []Item
	rollback := func() {
		for i := len(added) - 1; i >= 0; i-- {
			switch it := added[i].(type) {
			case *Node:
				_, _ = s.graph.removeNode(it)
			case *Edge:
				s.graph.dropEdge(it)
			}
			s.canvas.RemoveItem(added[i])
		}
	}
	for _, n := range snap.nodes {
		if err := s.graph.AddNode(n); err != nil {
			rollback()
			return err
		}
		s.canvas.AddItem(n)
		added = append(added, n)
	}
	for _, e := range snap.edges {
		if err := s.graph.AddEdge(e); err != nil {
			rollback()
			return err
		}
		s.canvas.AddItem(e)
		added = append(added, e)
	}
	return nil
}

// Serialize encodes the scene's graph.
func (s *Scene) Serialize() (Document, error) {
	return s.graph.Serialize()
}

// Deserialize replaces the scene's content with doc. On error neither the
// graph nor the canvas changes.
func (s *Scene) Deserialize(doc Document) error {
	oldNodes, oldEdges := s.graph.Nodes(), s.graph.Edges()
	if err := s.graph.Deserialize(doc); err != nil {
		return s.rejected("deserialize", err)
	}
	for _, e := range oldEdges {
		s.canvas.RemoveItem(e)
	}
	for _, n := range oldNodes {
		s.canvas.RemoveItem(n)
	}
	for _, n := range s.graph.nodes {
		s.canvas.AddItem(n)
	}
	for _, e := range s.graph.edges {
		s.canvas.AddItem(e)
	}
	s.mutated("deserialize", "nodes", s.graph.NodeCount())
	return nil
}

func (s *Scene) mutated(op string, keyvals ...any) {
	s.logger.Debug(op, append(keyvals, "nodes", s.graph.NodeCount(), "edges", s.graph.EdgeCount())...)
	observability.Scheme().OnMutation(op, s.graph.NodeCount(), s.graph.EdgeCount())
}

func (s *Scene) rejected(op string, err error) error {
	observability.Scheme().OnRejected(op, err)
	return err
}
