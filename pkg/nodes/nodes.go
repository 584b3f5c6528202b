package nodes

import (
	"fmt"

	"github.com/matzehuels/nfbstudio/pkg/scheme"
)

// Defaults applied by the builders.
const (
	DefaultStreamName    = "NVX136_Data"
	DefaultChannels      = 32
	DefaultAveragePeriod = 60.0
	DefaultSignalName    = "Signal"
)

// DefaultChain is the signal chain a new project starts with.
var DefaultChain = []string{
	KindLSLInput, KindSpatialFilter, KindBandpass, KindEnvelope, KindStandardize, KindDerivedSignal,
}

// ChainSpacing is the horizontal distance between nodes placed by
// [BuildChain].
const ChainSpacing = scheme.NodeWidth + 70

func init() {
	scheme.RegisterKind(KindLSLInput, newLSLInput)
	scheme.RegisterKind(KindSpatialFilter, newSpatialFilter)
	scheme.RegisterKind(KindBandpass, newBandpass)
	scheme.RegisterKind(KindEnvelope, newEnvelope)
	scheme.RegisterKind(KindStandardize, newStandardize)
	scheme.RegisterKind(KindDerivedSignal, newDerivedSignal)
}

func newLSLInput() *scheme.Node {
	n := scheme.NewNode("LSL Input", &LSLInput{StreamName: DefaultStreamName, Channels: DefaultChannels})
	must(n.AddOutput(scheme.NewOutput("Output", TypeRaw)))
	return n
}

func newSpatialFilter() *scheme.Node {
	n := scheme.NewNode("Spatial Filter", &SpatialFilter{})
	must(n.AddInput(scheme.NewInput("Input", TypeRaw)))
	must(n.AddOutput(scheme.NewOutput("Output", TypeSpatial)))
	return n
}

func newBandpass() *scheme.Node {
	lower, upper := MinFrequency, MaxFrequency
	n := scheme.NewNode("Bandpass Filter", &Bandpass{LowerBound: &lower, UpperBound: &upper})
	must(n.AddInput(scheme.NewInput("Input", scheme.Unknown)))
	must(n.AddOutput(scheme.NewOutput("Output", scheme.Unknown)))
	return n
}

func newEnvelope() *scheme.Node {
	n := scheme.NewNode("Envelope Detector", &Envelope{Method: MethodRectification})
	must(n.AddInput(scheme.NewInput("Input", TypeEnvelopeInput)))
	must(n.AddOutput(scheme.NewOutput("Output", TypeEnvelope)))
	return n
}

func newStandardize() *scheme.Node {
	n := scheme.NewNode("Standardize", &Standardize{AveragePeriod: DefaultAveragePeriod, Enabled: true})
	must(n.AddInput(scheme.NewInput("Input", TypeStandardizeInput)))
	must(n.AddOutput(scheme.NewOutput("Output", TypeStandardized)))
	return n
}

func newDerivedSignal() *scheme.Node {
	n := scheme.NewNode("Derived Signal Export", &DerivedSignal{SignalName: DefaultSignalName})
	must(n.AddInput(scheme.NewInput("Input", TypeSignalInput)))
	return n
}

// New returns a node of the given kind with default configuration.
func New(kind string) (*scheme.Node, error) {
	return scheme.NewNodeOfKind(kind)
}

// Kinds returns every registered kind, sorted.
func Kinds() []string {
	return scheme.Kinds()
}

// BuildChain adds one node per kind to s, left to right from origin, and
// connects each node's first output to the next node's first input.
func BuildChain(s *scheme.Scene, origin scheme.Point, kinds ...string) ([]*scheme.Node, error) {
	chain := make([]*scheme.Node, 0, len(kinds))
	for i, kind := range kinds {
		n, err := New(kind)
		if err != nil {
			return nil, err
		}
		n.SetPosition(origin.Add(scheme.Pt(float64(i)*ChainSpacing, 0)))
		if err := s.Add(n); err != nil {
			return nil, err
		}
		if i > 0 {
			prev := chain[i-1]
			if _, err := s.Connect(prev.Output(0), n.Input(0)); err != nil {
				return nil, fmt.Errorf("connect %s to %s: %w", prev.Kind(), kind, err)
			}
		}
		chain = append(chain, n)
	}
	return chain, nil
}

func must(err error) {
	if err != nil {
		panic(err)
	}
}
