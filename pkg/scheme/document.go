package scheme

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
)

// Document is the serialized form of a graph or snapshot. It is the
// on-disk scheme format and the clipboard payload:
//
//	{
//	  "nodes": [{"id": "…", "kind": "bandpass_filter", "title": "Bandpass",
//	             "position": {"x": 0, "y": 0}, "config": {…}}],
//	  "edges": [{"source": {"node": "…", "port": 0},
//	             "target": {"node": "…", "port": 0}}]
//	}
//
// Edges reference nodes by document ID and connections by index. Unknown
// fields are ignored when decoding.
type Document struct {
	Nodes []NodeData `json:"nodes"`
	Edges []EdgeData `json:"edges"`
}

// NodeData is one serialized node.
type NodeData struct {
	ID       string          `json:"id"`
	Kind     string          `json:"kind"`
	Title    string          `json:"title"`
	Position Point           `json:"position"`
	Config   json.RawMessage `json:"config,omitempty"`
}

// EdgeData is one serialized edge, from an output to an input.
type EdgeData struct {
	Source PortRef `json:"source"`
	Target PortRef `json:"target"`
}

// PortRef names a connection by node ID and index among the node's
// outputs (for a source) or inputs (for a target).
type PortRef struct {
	Node string `json:"node"`
	Port int    `json:"port"`
}

// encodeDocument serializes nodes and the resolved edges whose both nodes
// are among them.
func encodeDocument(nodes []*Node, edges []*Edge) (Document, error) {
	doc := Document{
		Nodes: make([]NodeData, 0, len(nodes)),
		Edges: make([]EdgeData, 0, len(edges)),
	}
	in := make(map[*Node]bool, len(nodes))
	for _, n := range nodes {
		nd := NodeData{ID: n.id, Kind: n.Kind(), Title: n.title, Position: n.position}
		if n.config != nil {
			raw, err := json.Marshal(n.config)
			if err != nil {
				return Document{}, fmt.Errorf("node %s: encode config: %w", n.id, err)
			}
			nd.Config = raw
		}
		doc.Nodes = append(doc.Nodes, nd)
		in[n] = true
	}
	for _, e := range edges {
		if !e.Resolved() || !in[e.source.node] || !in[e.target.node] {
			continue
		}
		doc.Edges = append(doc.Edges, EdgeData{
			Source: PortRef{Node: e.source.node.id, Port: e.source.Index()},
			Target: PortRef{Node: e.target.node.id, Port: e.target.Index()},
		})
	}
	return doc, nil
}

// decodeDocument builds fresh nodes and edges from doc. Nothing outside
// the returned values is touched, so a failed decode has no effect.
func decodeDocument(doc Document) ([]*Node, []*Edge, error) {
	nodes := make([]*Node, 0, len(doc.Nodes))
	byID := make(map[string]*Node, len(doc.Nodes))

	for i, nd := range doc.Nodes {
		if nd.ID == "" {
			return nil, nil, deserializationError(nil, "node %d: missing id", i)
		}
		if _, dup := byID[nd.ID]; dup {
			return nil, nil, deserializationError(nil, "node %s: duplicate id", nd.ID)
		}
		n, err := NewNodeOfKind(nd.Kind)
		if err != nil {
			return nil, nil, deserializationError(err, "node %s", nd.ID)
		}
		n.id = nd.ID
		if err := n.SetTitle(nd.Title); err != nil {
			return nil, nil, deserializationError(err, "node %s: title", nd.ID)
		}
		n.position = nd.Position
		if len(nd.Config) > 0 && !bytes.Equal(nd.Config, []byte("null")) {
			if err := json.Unmarshal(nd.Config, n.config); err != nil {
				return nil, nil, deserializationError(err, "node %s: config", nd.ID)
			}
		}
		nodes = append(nodes, n)
		byID[nd.ID] = n
	}

	edges := make([]*Edge, 0, len(doc.Edges))
	for i, ed := range doc.Edges {
		src, dst := byID[ed.Source.Node], byID[ed.Target.Node]
		if src == nil || dst == nil {
			return nil, nil, deserializationError(nil,
				"edge %d: references missing node (%q -> %q)", i, ed.Source.Node, ed.Target.Node)
		}
		out, in := src.Output(ed.Source.Port), dst.Input(ed.Target.Port)
		if out == nil || in == nil {
			return nil, nil, deserializationError(nil,
				"edge %d: references missing connection (%s:%d -> %s:%d)",
				i, ed.Source.Node, ed.Source.Port, ed.Target.Node, ed.Target.Port)
		}
		if err := checkTypes(out.dataType, in.dataType); err != nil {
			return nil, nil, deserializationError(err, "edge %d", i)
		}
		e := NewEdge()
		e.setSource(out)
		e.setTarget(in)
		edges = append(edges, e)
	}
	return nodes, edges, nil
}

// MarshalDocument encodes doc as compact JSON.
func MarshalDocument(doc Document) ([]byte, error) {
	data, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("encode: %w", err)
	}
	return data, nil
}

// UnmarshalDocument decodes JSON into a document. Malformed input is a
// DESERIALIZATION error.
func UnmarshalDocument(data []byte) (Document, error) {
	return ReadDocument(bytes.NewReader(data))
}

// WriteDocument writes doc to w as indented JSON.
func WriteDocument(w io.Writer, doc Document) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ReadDocument decodes one JSON document from r. It does not close r.
// Anything after the document other than whitespace is an error.
func ReadDocument(r io.Reader) (Document, error) {
	var doc Document
	dec := json.NewDecoder(r)
	if err := dec.Decode(&doc); err != nil {
		return Document{}, deserializationError(err, "decode")
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		return Document{}, deserializationError(nil, "unexpected data after document")
	}
	return doc, nil
}

// hasNodesField reports whether data is a JSON object with a non-null
// "nodes" member.
func hasNodesField(data []byte) bool {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil || fields == nil {
		return false
	}
	raw, ok := fields["nodes"]
	return ok && !bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}
