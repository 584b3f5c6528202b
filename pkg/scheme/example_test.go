package scheme_test

import (
	"fmt"

	"github.com/matzehuels/nfbstudio/pkg/scheme"
)

func ExampleConvertible() {
	raw := scheme.NewDataType(103, "raw")
	envelope := scheme.NewDataType(104, "envelope", raw)
	signal := scheme.NewDataType(107, "signal", envelope)

	fmt.Println(scheme.Convertible(raw, signal))
	fmt.Println(scheme.Convertible(signal, raw))
	fmt.Println(scheme.Convertible(scheme.Unknown, raw))
	// Output:
	// true
	// false
	// true
}

func ExampleGraph_ConnectNodes() {
	envelope := scheme.NewDataType(104, "envelope")
	other := scheme.NewDataType(999, "other")

	detector := scheme.NewNode("Envelope", nil)
	_ = detector.AddOutput(scheme.NewOutput("envelope", envelope))
	export := scheme.NewNode("Signal", nil)
	_ = export.AddInput(scheme.NewInput("signal", envelope))
	stray := scheme.NewNode("Stray", nil)
	_ = stray.AddOutput(scheme.NewOutput("out", other))

	g := scheme.NewGraph()
	for _, n := range []*scheme.Node{detector, export, stray} {
		_ = g.AddNode(n)
	}

	if _, err := g.ConnectNodes(detector.Output(0), export.Input(0)); err == nil {
		fmt.Println("connected envelope")
	}
	if _, err := g.ConnectNodes(stray.Output(0), export.Input(0)); err != nil {
		fmt.Println("rejected other")
	}
	fmt.Println(g.EdgeCount(), "edge")
	// Output:
	// connected envelope
	// rejected other
	// 1 edge
}
