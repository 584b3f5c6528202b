package scheme

import "fmt"

// Edge is a directed link from an [Output] (the source) to an [Input] (the
// target). An edge references its connections but never owns them.
//
// Either end may instead be a free-floating point, which is the state of
// an edge while the user drags it. Such an edge may sit in a [Graph] but
// is never serialized or exported until both ends resolve to connections.
//
// When both ends are connections, the source type is convertible to the
// target type. Every setter checks this before changing anything.
type Edge struct {
	source *Output
	target *Input

	sourcePos, targetPos Point
	hasSourcePos         bool
	hasTargetPos         bool

	selected bool

	// graph is the graph the edge belongs to, or nil.
	graph *Graph
}

// NewEdge returns an edge with no ends.
func NewEdge() *Edge {
	return &Edge{}
}

// Source returns the source output, or nil.
func (e *Edge) Source() *Output { return e.source }

// Target returns the target input, or nil.
func (e *Edge) Target() *Input { return e.target }

// SourceNode returns the node owning the source output, or nil.
func (e *Edge) SourceNode() *Node {
	if e.source == nil {
		return nil
	}
	return e.source.node
}

// TargetNode returns the node owning the target input, or nil.
func (e *Edge) TargetNode() *Node {
	if e.target == nil {
		return nil
	}
	return e.target.node
}

// DataType returns the source type, else the target type, else nil.
func (e *Edge) DataType() *DataType {
	switch {
	case e.source != nil:
		return e.source.dataType
	case e.target != nil:
		return e.target.dataType
	}
	return nil
}

// Resolved reports whether both ends are connections.
func (e *Edge) Resolved() bool {
	return e.source != nil && e.target != nil
}

// SetSource moves the source end to out. A nil out unsets the source and
// clears its position. If out cannot feed the current target, a
// TYPE_MISMATCH error is returned and nothing changes. A member edge
// cannot be moved onto a node outside its graph.
func (e *Edge) SetSource(out *Output) error {
	if out != nil && e.graph != nil {
		if err := e.graph.checkMember(out); err != nil {
			return fmt.Errorf("edge %s: %w", e, err)
		}
	}
	if out != nil && e.target != nil {
		if err := checkTypes(out.dataType, e.target.dataType); err != nil {
			return err
		}
	}
	e.setSource(out)
	return nil
}

// SetTarget moves the target end to in. A nil in unsets the target and
// clears its position. If the current source cannot feed in, a
// TYPE_MISMATCH error is returned and nothing changes. A member edge
// cannot be moved onto a node outside its graph.
func (e *Edge) SetTarget(in *Input) error {
	if in != nil && e.graph != nil {
		if err := e.graph.checkMember(in); err != nil {
			return fmt.Errorf("edge %s: %w", e, err)
		}
	}
	if in != nil && e.source != nil {
		if err := checkTypes(e.source.dataType, in.dataType); err != nil {
			return err
		}
	}
	e.setTarget(in)
	return nil
}

func (e *Edge) setSource(out *Output) {
	if e.source != nil && e.source != out {
		e.source.removeEdge(e)
		e.source.autoSelect()
	}
	if out != nil && !out.hasEdge(e) {
		out.addEdge(e)
	}
	e.source = out
	e.hasSourcePos = false
	e.Adjust()
}

func (e *Edge) setTarget(in *Input) {
	if e.target != nil && e.target != in {
		e.target.removeEdge(e)
		e.target.autoSelect()
	}
	if in != nil && !in.hasEdge(e) {
		in.addEdge(e)
	}
	e.target = in
	e.hasTargetPos = false
	e.Adjust()
}

func (e *Edge) unsetSource() { e.setSource(nil) }
func (e *Edge) unsetTarget() { e.setTarget(nil) }

// SetSourcePos makes the source end free-floating at p, detaching it from
// its source connection.
func (e *Edge) SetSourcePos(p Point) {
	e.setSource(nil)
	e.sourcePos, e.hasSourcePos = p, true
}

// SetTargetPos makes the target end free-floating at p, detaching it from
// its target connection.
func (e *Edge) SetTargetPos(p Point) {
	e.setTarget(nil)
	e.targetPos, e.hasTargetPos = p, true
}

// SourcePos returns the source end in scene coordinates. It is false when
// the source is neither a connection nor a free point.
func (e *Edge) SourcePos() (Point, bool) { return e.sourcePos, e.hasSourcePos }

// TargetPos returns the target end in scene coordinates. It is false when
// the target is neither a connection nor a free point.
func (e *Edge) TargetPos() (Point, bool) { return e.targetPos, e.hasTargetPos }

// Adjust recomputes the cached end positions from the stem tips of the
// attached connections. Nodes call it when they move.
func (e *Edge) Adjust() {
	if e.source != nil {
		e.sourcePos, e.hasSourcePos = e.source.StemTip(), true
	}
	if e.target != nil {
		e.targetPos, e.hasTargetPos = e.target.StemTip(), true
	}
}

// DetachAll unsets both ends.
func (e *Edge) DetachAll() {
	e.setSource(nil)
	e.setTarget(nil)
}

// IsSelected reports the edge's selection flag.
func (e *Edge) IsSelected() bool { return e.selected }

func (e *Edge) setSelected(v bool) {
	e.selected = v
	if e.source != nil && e.source.selected != v {
		e.source.autoSelect()
	}
	if e.target != nil && e.target.selected != v {
		e.target.autoSelect()
	}
}

// AutoSelected reports the derived selection: both endpoint nodes exist
// and are selected.
func (e *Edge) AutoSelected() bool {
	src, dst := e.SourceNode(), e.TargetNode()
	return src != nil && dst != nil && src.selected && dst.selected
}

// AutoSelect sets the selection flag to [Edge.AutoSelected].
func (e *Edge) AutoSelect() {
	e.setSelected(e.AutoSelected())
}

// floating reports which ends are free points. An edge being dragged has
// exactly one.
func (e *Edge) floating() (source, target bool) {
	return e.source == nil && e.hasSourcePos, e.target == nil && e.hasTargetPos
}

func (e *Edge) String() string {
	end := func(c Connection, p Point, ok bool) string {
		switch {
		case c != nil:
			return fmt.Sprint(c)
		case ok:
			return fmt.Sprintf("(%g,%g)", p.X, p.Y)
		}
		return "-"
	}
	var src, dst Connection
	if e.source != nil {
		src = e.source
	}
	if e.target != nil {
		dst = e.target
	}
	return end(src, e.sourcePos, e.hasSourcePos) + " -> " + end(dst, e.targetPos, e.hasTargetPos)
}
