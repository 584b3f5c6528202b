package scheme

import (
	"errors"
	"fmt"

	nfberrors "github.com/matzehuels/nfbstudio/pkg/errors"
)

var (
	// ErrNilNode is returned when a nil node is passed to a graph operation.
	ErrNilNode = errors.New("node must not be nil")

	// ErrNilEdge is returned when a nil edge is passed to a graph operation.
	ErrNilEdge = errors.New("edge must not be nil")

	// ErrNilConnection is returned by connect operations given a nil port.
	ErrNilConnection = errors.New("connection must not be nil")

	// ErrDuplicateNode is returned by [Graph.AddNode] when the node is
	// already a member of the graph.
	ErrDuplicateNode = errors.New("node already in graph")

	// ErrDuplicateNodeID is returned by [Graph.AddNode] when another member
	// carries the same ID. IDs are serialization handles and must be unique
	// within one graph.
	ErrDuplicateNodeID = errors.New("duplicate node ID")

	// ErrDuplicateEdge is returned by [Graph.AddEdge] when the edge is
	// already a member of the graph.
	ErrDuplicateEdge = errors.New("edge already in graph")

	// ErrUnknownNode is returned when a node is not a member of the graph.
	ErrUnknownNode = errors.New("unknown node")

	// ErrUnknownEdge is returned when an edge is not a member of the graph.
	ErrUnknownEdge = errors.New("unknown edge")

	// ErrForeignConnection is returned when an edge end references a
	// connection whose node is not a member of the graph.
	ErrForeignConnection = errors.New("connection belongs to a node outside the graph")

	// ErrConnectionOwned is returned by [Node.AddInput] and [Node.AddOutput]
	// when the connection already belongs to a node.
	ErrConnectionOwned = errors.New("connection already belongs to a node")

	// ErrDirection is returned when a drag is dropped on a connection of
	// the same direction as the one it started from.
	ErrDirection = errors.New("edge must join an output to an input")

	// ErrNotDragging is returned by drag operations on an edge that has no
	// free-floating end.
	ErrNotDragging = errors.New("edge is not being dragged")
)

// typeMismatch builds the error returned when two connections cannot be
// joined.
func typeMismatch(from, to *DataType) error {
	return nfberrors.New(nfberrors.ErrCodeTypeMismatch,
		"data types of connections (%q and %q) are not compatible", from, to)
}

// deserializationError builds the error returned for unusable documents.
func deserializationError(cause error, format string, args ...any) error {
	if cause == nil {
		return nfberrors.New(nfberrors.ErrCodeDeserialization, format, args...)
	}
	return nfberrors.Wrap(nfberrors.ErrCodeDeserialization, cause, format, args...)
}

func nodeError(n *Node, err error) error {
	return fmt.Errorf("node %s: %w", n.ID(), err)
}
