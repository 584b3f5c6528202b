package experiment

import (
	"github.com/matzehuels/nfbstudio/pkg/export"
	"github.com/matzehuels/nfbstudio/pkg/nodes"
	"github.com/matzehuels/nfbstudio/pkg/scheme"
)

// Signal is one derived signal: the export node that names it and the
// flattened export data of the chain feeding it.
type Signal struct {
	Node   *scheme.Node
	Fields *export.Fields
}

// Name returns the signal's exported name.
func (s Signal) Name() string {
	name, _ := s.Fields.Text("sSignalName")
	return name
}

// Signals derives one signal per derived-signal export node of g, in graph
// order. Each signal merges the export data of every node upstream of the
// export node, upstream first, so a stage closer to the export overrides a
// value contributed earlier in the chain. Only resolved edges that belong
// to g are followed; a node reachable along several paths contributes once.
func Signals(g *scheme.Graph) []Signal {
	var signals []Signal
	for _, n := range g.Nodes() {
		if n.Kind() != nodes.KindDerivedSignal {
			continue
		}
		f := export.NewFields()
		visited := make(map[*scheme.Node]bool)
		collect(g, n, visited, f)
		signals = append(signals, Signal{Node: n, Fields: f})
	}
	return signals
}

// collect visits n's upstream nodes in post-order, merging each node's
// export data into f.
func collect(g *scheme.Graph, n *scheme.Node, visited map[*scheme.Node]bool, f *export.Fields) {
	if visited[n] {
		return
	}
	visited[n] = true

	for _, in := range n.Inputs() {
		for _, e := range in.Edges() {
			if !e.Resolved() || !g.HasEdge(e) {
				continue
			}
			collect(g, e.SourceNode(), visited, f)
		}
	}
	if cfg := n.Config(); cfg != nil {
		cfg.AddExportData(f)
	}
}

func signalFields(signals []Signal) []*export.Fields {
	out := make([]*export.Fields, len(signals))
	for i, s := range signals {
		out[i] = s.Fields
	}
	return out
}
