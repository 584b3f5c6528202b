// Package scheme is the graph-editing engine behind nfbstudio.
//
// A scheme is a dataflow graph of signal-processing stages. Each [Node]
// owns typed [Input] and [Output] connections; an [Edge] links one output
// to one input when the output's [DataType] is convertible to the input's.
// The [Graph] owns nodes and edges and guarantees that every edge end
// belongs to a member node.
//
// # Editing
//
// Interactive editing goes through a [Scene], which applies each mutation
// to the graph and then mirrors it onto a [Canvas]. The scene also owns
// selection, drag-to-connect and clipboard transfer:
//
//	s := scheme.NewScene(scheme.WithLogger(logger))
//	_ = s.Add(source)
//	_ = s.Add(filter)
//	if _, err := s.Connect(source.Output(0), filter.Input(0)); err != nil {
//	    // TYPE_MISMATCH: nothing was created
//	}
//
// # Node kinds
//
// Nodes carry a kind-specific [Config]. Kinds form a closed registry filled
// by [RegisterKind], normally from an init function (see package nodes).
// Decoding a document builds nodes through the registry.
//
// # Documents
//
// [Graph.Serialize] and [Snapshot.Encode] produce a [Document], the JSON
// form used both for project files and for the clipboard. Decoding is
// atomic: a document with a dangling edge reference is rejected with a
// DESERIALIZATION error and the graph keeps its prior content.
package scheme
