package scheme

import "slices"

// Snapshot is an extracted subgraph used for copy and paste. It is not
// attached to any graph and its node and edge lists never change after
// construction.
type Snapshot struct {
	nodes []*Node
	edges []*Edge
}

// NewSnapshot returns a snapshot of the given nodes and edges.
func NewSnapshot(nodes []*Node, edges []*Edge) Snapshot {
	return Snapshot{nodes: slices.Clone(nodes), edges: slices.Clone(edges)}
}

// Nodes returns the snapshot's nodes.
func (s Snapshot) Nodes() []*Node { return slices.Clone(s.nodes) }

// Edges returns the snapshot's edges.
func (s Snapshot) Edges() []*Edge { return slices.Clone(s.edges) }

// Len returns the number of nodes.
func (s Snapshot) Len() int { return len(s.nodes) }

// IsEmpty reports whether the snapshot has no nodes.
func (s Snapshot) IsEmpty() bool { return len(s.nodes) == 0 }

// Document serializes the nodes and the resolved edges between them.
func (s Snapshot) Document() (Document, error) {
	return encodeDocument(s.nodes, s.edges)
}

// Encode returns the clipboard text of the snapshot.
func (s Snapshot) Encode() (string, error) {
	doc, err := s.Document()
	if err != nil {
		return "", err
	}
	data, err := MarshalDocument(doc)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// DecodeSnapshot rebuilds a snapshot from clipboard text. The nodes and
// edges are new objects; connectivity is restored by document ID and
// connection index.
//
// Text that is not a document with at least one node is a
// DESERIALIZATION error.
func DecodeSnapshot(text string) (Snapshot, error) {
	doc, err := UnmarshalDocument([]byte(text))
	if err != nil {
		return Snapshot{}, err
	}
	if !hasNodesField([]byte(text)) {
		return Snapshot{}, deserializationError(nil, "clipboard text is not a scheme")
	}
	if len(doc.Nodes) == 0 {
		return Snapshot{}, deserializationError(nil, "snapshot has no nodes")
	}
	return SnapshotFromDocument(doc)
}

// SnapshotFromDocument builds a snapshot of fresh nodes and edges from doc.
func SnapshotFromDocument(doc Document) (Snapshot, error) {
	nodes, edges, err := decodeDocument(doc)
	if err != nil {
		return Snapshot{}, err
	}
	return Snapshot{nodes: nodes, edges: edges}, nil
}
