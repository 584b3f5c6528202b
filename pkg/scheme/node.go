package scheme

import (
	"slices"

	"github.com/google/uuid"

	nfberrors "github.com/matzehuels/nfbstudio/pkg/errors"
)

// Node is one signal-processing stage. It owns an ordered list of inputs,
// an ordered list of outputs and a kind-specific [Config].
//
// Nodes are identified by reference. The string ID is a serialization
// handle only; titles need not be unique.
type Node struct {
	id       string
	title    string
	position Point
	inputs   []*Input
	outputs  []*Output
	selected bool
	config   Config
}

// NewNode returns a node with a fresh ID. It does not validate title; use
// [Node.SetTitle] for user input.
func NewNode(title string, cfg Config) *Node {
	return &Node{
		id:     uuid.NewString(),
		title:  title,
		config: cfg,
	}
}

// ID returns the serialization handle.
func (n *Node) ID() string { return n.id }

func (n *Node) renewID() { n.id = uuid.NewString() }

// Title returns the display label.
func (n *Node) Title() string { return n.title }

// SetTitle changes the display label. Titles are single-line; a title with
// a line break is rejected with a VALIDATION error.
func (n *Node) SetTitle(title string) error {
	if err := nfberrors.ValidateLine(title); err != nil {
		return err
	}
	n.title = title
	return nil
}

// Position returns the top-left corner of the node box.
func (n *Node) Position() Point { return n.position }

// SetPosition moves the node and re-adjusts every attached edge.
func (n *Node) SetPosition(p Point) {
	n.position = p
	n.adjustEdges()
}

// Config returns the kind-specific configuration.
func (n *Node) Config() Config { return n.config }

// Kind returns the registered kind name, or "" for a node without config.
func (n *Node) Kind() string {
	if n.config == nil {
		return ""
	}
	return n.config.Kind()
}

// Inputs returns the inputs in order.
func (n *Node) Inputs() []*Input { return slices.Clone(n.inputs) }

// Outputs returns the outputs in order.
func (n *Node) Outputs() []*Output { return slices.Clone(n.outputs) }

// Input returns the i-th input, or nil when out of range.
func (n *Node) Input(i int) *Input {
	if i < 0 || i >= len(n.inputs) {
		return nil
	}
	return n.inputs[i]
}

// Output returns the i-th output, or nil when out of range.
func (n *Node) Output(i int) *Output {
	if i < 0 || i >= len(n.outputs) {
		return nil
	}
	return n.outputs[i]
}

// Connections returns the inputs followed by the outputs.
func (n *Node) Connections() []Connection {
	cs := make([]Connection, 0, len(n.inputs)+len(n.outputs))
	for _, in := range n.inputs {
		cs = append(cs, in)
	}
	for _, out := range n.outputs {
		cs = append(cs, out)
	}
	return cs
}

// AddInput appends in and makes n its owner.
func (n *Node) AddInput(in *Input) error {
	if in == nil {
		return ErrNilConnection
	}
	if in.node != nil {
		return ErrConnectionOwned
	}
	in.node = n
	n.inputs = append(n.inputs, in)
	// Output rows sit below the input rows, so they all move down.
	n.adjustEdges()
	return nil
}

// AddOutput appends out and makes n its owner.
func (n *Node) AddOutput(out *Output) error {
	if out == nil {
		return ErrNilConnection
	}
	if out.node != nil {
		return ErrConnectionOwned
	}
	out.node = n
	n.outputs = append(n.outputs, out)
	return nil
}

// RemoveInput detaches every edge from in, then removes it. The detached
// edges stay wherever they are with an unset target.
func (n *Node) RemoveInput(in *Input) error {
	if in == nil {
		return ErrNilConnection
	}
	if in.node != n {
		return ErrForeignConnection
	}
	for _, e := range in.Edges() {
		in.Detach(e)
	}
	n.inputs = slices.DeleteFunc(n.inputs, func(x *Input) bool { return x == in })
	in.node = nil
	n.adjustEdges()
	return nil
}

// RemoveOutput detaches every edge from out, then removes it.
func (n *Node) RemoveOutput(out *Output) error {
	if out == nil {
		return ErrNilConnection
	}
	if out.node != n {
		return ErrForeignConnection
	}
	for _, e := range out.Edges() {
		out.Detach(e)
	}
	n.outputs = slices.DeleteFunc(n.outputs, func(x *Output) bool { return x == out })
	out.node = nil
	n.adjustEdges()
	return nil
}

// Edges returns every edge attached to any of the node's connections,
// without duplicates.
func (n *Node) Edges() []*Edge {
	var edges []*Edge
	for _, c := range n.Connections() {
		for _, e := range c.base().edges {
			if !slices.Contains(edges, e) {
				edges = append(edges, e)
			}
		}
	}
	return edges
}

// IsSelected reports the node's selection flag.
func (n *Node) IsSelected() bool { return n.selected }

// SetSelected changes the selection flag and re-derives the selection of
// every attached edge.
func (n *Node) SetSelected(v bool) {
	n.selected = v
	for _, e := range n.Edges() {
		e.AutoSelect()
	}
}

func (n *Node) adjustEdges() {
	for _, e := range n.Edges() {
		e.Adjust()
	}
}

func (n *Node) String() string {
	if n.title == "" {
		return n.Kind() + " " + n.id
	}
	return n.title + " (" + n.id + ")"
}
