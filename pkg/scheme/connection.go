package scheme

import "slices"

// Direction tells inputs and outputs apart.
type Direction int

const (
	// DirInput marks a connection that receives data (an edge target).
	DirInput Direction = iota
	// DirOutput marks a connection that produces data (an edge source).
	DirOutput
)

func (d Direction) String() string {
	if d == DirOutput {
		return "output"
	}
	return "input"
}

// Connection is a typed port on a node. The two implementations are
// [*Input] and [*Output]; the interface is sealed.
type Connection interface {
	Name() string
	DataType() *DataType
	// Node returns the owning node, or nil before the connection is added
	// to one.
	Node() *Node
	// Index returns the position of the connection among its node's inputs
	// or outputs, or -1 when it is not owned.
	Index() int
	Direction() Direction
	// Edges returns the attached edges in attachment order.
	Edges() []*Edge
	// Attach sets this connection as the matching end of e. The type check
	// happens before anything changes. Attaching an edge that is already
	// attached here is a no-op.
	Attach(e *Edge) error
	// Detach unsets the matching end of e if it is attached here.
	Detach(e *Edge)
	// StemTip returns the scene coordinates where edges attach.
	StemTip() Point
	// IsSelected reports the selection derived from attached edges.
	IsSelected() bool

	base() *port
}

// port holds the state shared by inputs and outputs.
type port struct {
	name     string
	dataType *DataType
	node     *Node
	edges    []*Edge
	selected bool
}

func (p *port) Name() string        { return p.name }
func (p *port) DataType() *DataType { return p.dataType }
func (p *port) Node() *Node         { return p.node }
func (p *port) Edges() []*Edge      { return slices.Clone(p.edges) }
func (p *port) IsSelected() bool    { return p.selected }
func (p *port) base() *port         { return p }

func (p *port) hasEdge(e *Edge) bool { return slices.Contains(p.edges, e) }
func (p *port) addEdge(e *Edge)      { p.edges = append(p.edges, e) }

func (p *port) removeEdge(e *Edge) {
	p.edges = slices.DeleteFunc(p.edges, func(x *Edge) bool { return x == e })
}

// autoSelect re-derives the selection flag: a connection is selected while
// any of its edges is.
func (p *port) autoSelect() {
	p.selected = slices.ContainsFunc(p.edges, (*Edge).IsSelected)
}

// Input is a connection that receives data.
type Input struct{ port }

// NewInput returns an unowned input.
func NewInput(name string, t *DataType) *Input {
	return &Input{port{name: name, dataType: t}}
}

func (in *Input) Direction() Direction { return DirInput }

func (in *Input) Index() int {
	if in.node == nil {
		return -1
	}
	return slices.Index(in.node.inputs, in)
}

func (in *Input) Attach(e *Edge) error {
	if e == nil {
		return ErrNilEdge
	}
	return e.SetTarget(in)
}

func (in *Input) Detach(e *Edge) {
	if e != nil && e.target == in {
		e.unsetTarget()
	}
}

// StemTip is on the left side of the node, one row per input below the
// title bar.
func (in *Input) StemTip() Point {
	if in.node == nil {
		return Point{}
	}
	row := float64(in.Index())
	return in.node.position.Add(Pt(-StemLength, TitleHeight+(row+0.5)*RowHeight))
}

func (in *Input) String() string { return connectionString(in) }

// Output is a connection that produces data.
type Output struct{ port }

// NewOutput returns an unowned output.
func NewOutput(name string, t *DataType) *Output {
	return &Output{port{name: name, dataType: t}}
}

func (out *Output) Direction() Direction { return DirOutput }

func (out *Output) Index() int {
	if out.node == nil {
		return -1
	}
	return slices.Index(out.node.outputs, out)
}

func (out *Output) Attach(e *Edge) error {
	if e == nil {
		return ErrNilEdge
	}
	return e.SetSource(out)
}

func (out *Output) Detach(e *Edge) {
	if e != nil && e.source == out {
		e.unsetSource()
	}
}

// StemTip is on the right side of the node. Output rows follow the input
// rows.
func (out *Output) StemTip() Point {
	if out.node == nil {
		return Point{}
	}
	row := float64(len(out.node.inputs) + out.Index())
	return out.node.position.Add(Pt(NodeWidth+StemLength, TitleHeight+(row+0.5)*RowHeight))
}

func (out *Output) String() string { return connectionString(out) }

func connectionString(c Connection) string {
	if c.Node() == nil {
		return c.Direction().String() + " " + c.Name()
	}
	return c.Node().ID() + ":" + c.Direction().String() + ":" + c.Name()
}
