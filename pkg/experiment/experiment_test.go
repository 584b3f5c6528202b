package experiment

import (
	"bytes"
	"context"
	"io"
	"testing"

	"github.com/charmbracelet/log"

	nfberrors "github.com/matzehuels/nfbstudio/pkg/errors"
	"github.com/matzehuels/nfbstudio/pkg/nodes"
	"github.com/matzehuels/nfbstudio/pkg/scheme"
)

func defaultScene(t *testing.T) (*scheme.Scene, []*scheme.Node) {
	t.Helper()
	s := scheme.NewScene(scheme.WithLogger(log.New(io.Discard)))
	chain, err := nodes.BuildChain(s, scheme.Pt(0, 0), nodes.DefaultChain...)
	if err != nil {
		t.Fatalf("BuildChain: %v", err)
	}
	return s, chain
}

func baselineExperiment() *Experiment {
	e := New()
	e.Blocks = []*Block{NewBlock("Baseline")}
	e.Sequence = []string{"Baseline"}
	return e
}

func TestExportDefaultChain(t *testing.T) {
	s, _ := defaultScene(t)

	var buf bytes.Buffer
	if err := Export(context.Background(), &buf, baselineExperiment(), s.Graph(), "\t"); err != nil {
		t.Fatalf("Export: %v", err)
	}

	want := `<?xml version="1.0" encoding="UTF-8"?>
<NeurofeedbackSignalSpecs>
	<sExperimentName>Experiment</sExperimentName>
	<sStreamName>NVX136_Data</sStreamName>
	<sPrefilterBand>None None</sPrefilterBand>
	<bDC>0</bDC>
	<sInletType>lsl</sInletType>
	<sRawDataFilePath></sRawDataFilePath>
	<sFTHostnamePort></sFTHostnamePort>
	<bPlotRaw>0</bPlotRaw>
	<bPlotSignals>0</bPlotSignals>
	<bPlotSourceSpace>0</bPlotSourceSpace>
	<bShowSubjectWindow>0</bShowSubjectWindow>
	<fRewardPeriodS>0.25</fRewardPeriodS>
	<sReference></sReference>
	<sReferenceSub></sReferenceSub>
	<bUseExpyriment>0</bUseExpyriment>
	<bShowPhotoRectangle>0</bShowPhotoRectangle>
	<sVizNotchFilters>0</sVizNotchFilters>
	<vSignals>
		<DerivedSignal>
			<SpatialFilterMatrix></SpatialFilterMatrix>
			<fBandpassLowHz>0</fBandpassLowHz>
			<fBandpassHighHz>250</fBandpassHighHz>
			<fSmoothingFactor>0</fSmoothingFactor>
			<method>Rectification</method>
			<fAverage>60</fAverage>
			<bStandardize>1</bStandardize>
			<sSignalName>Signal</sSignalName>
		</DerivedSignal>
	</vSignals>
	<vProtocols>
		<FeedbackProtocol>
			<sProtocolName>Baseline</sProtocolName>
			<fDuration>10</fDuration>
			<fRandomOverTime>0</fRandomOverTime>
			<bUpdateStatistics>0</bUpdateStatistics>
			<sStatisticsType>meanstd</sStatisticsType>
			<iDropOutliers>0</iDropOutliers>
			<sFb_type>Baseline</sFb_type>
			<fbSource>All</fbSource>
			<sMockSignalFilePath></sMockSignalFilePath>
			<bVoiceover>0</bVoiceover>
			<sMsg></sMsg>
			<bBeep>0</bBeep>
			<bAutoBCIFit>0</bAutoBCIFit>
		</FeedbackProtocol>
	</vProtocols>
	<vPGroups></vPGroups>
	<vPSequence>
		<s>Baseline</s>
	</vPSequence>
</NeurofeedbackSignalSpecs>
`
	if got := buf.String(); got != want {
		t.Errorf("Export mismatch\ngot:\n%s\nwant:\n%s", got, want)
	}
}

func TestExportInvalidWritesNothing(t *testing.T) {
	s, _ := defaultScene(t)
	e := baselineExperiment()
	e.Sequence = append(e.Sequence, "Missing")

	var buf bytes.Buffer
	err := Export(context.Background(), &buf, e, s.Graph(), "\t")
	if !nfberrors.Is(err, nfberrors.ErrCodeValidation) {
		t.Fatalf("Export() = %v, want VALIDATION error", err)
	}
	if buf.Len() != 0 {
		t.Errorf("wrote %d bytes on failure", buf.Len())
	}
}

func TestExportCanceled(t *testing.T) {
	s, _ := defaultScene(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := Export(ctx, io.Discard, baselineExperiment(), s.Graph(), ""); err != context.Canceled {
		t.Errorf("Export() = %v, want context.Canceled", err)
	}
}

func TestSignalsDownstreamOverrides(t *testing.T) {
	s, chain := defaultScene(t)
	env := chain[3]

	// A second bandpass feeding the same envelope input.
	second, _ := nodes.New(nodes.KindBandpass)
	low, high := 8.0, 12.0
	second.Config().(*nodes.Bandpass).LowerBound = &low
	second.Config().(*nodes.Bandpass).UpperBound = &high
	if err := s.Add(second); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Connect(chain[1].Output(0), second.Input(0)); err != nil {
		t.Fatalf("connect spatial filter: %v", err)
	}
	if _, err := s.Connect(second.Output(0), env.Input(0)); err != nil {
		t.Fatalf("connect envelope: %v", err)
	}

	signals := Signals(s.Graph())
	if len(signals) != 1 {
		t.Fatalf("got %d signals, want 1", len(signals))
	}
	f := signals[0].Fields
	if got, _ := f.Text("fBandpassLowHz"); got != "8" {
		t.Errorf("fBandpassLowHz = %q, want the later stage's 8", got)
	}
	if f.Len() != 8 {
		t.Errorf("keys %v, want 8 keys", f.Keys())
	}
	if signals[0].Name() != nodes.DefaultSignalName {
		t.Errorf("Name() = %q", signals[0].Name())
	}
}

func TestSignalsDisconnected(t *testing.T) {
	s, chain := defaultScene(t)
	last := chain[len(chain)-1]
	if e := s.Disconnect(chain[len(chain)-2].Output(0), last.Input(0)); e == nil {
		t.Fatal("Disconnect returned nil")
	}

	signals := Signals(s.Graph())
	if len(signals) != 1 {
		t.Fatalf("got %d signals, want 1", len(signals))
	}
	if keys := signals[0].Fields.Keys(); len(keys) != 1 || keys[0] != "sSignalName" {
		t.Errorf("keys = %v, want only sSignalName", keys)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(e *Experiment, g *scheme.Graph)
	}{
		{"empty name", func(e *Experiment, _ *scheme.Graph) { e.Name = "" }},
		{"unknown inlet", func(e *Experiment, _ *scheme.Graph) { e.Inlet = "serial" }},
		{"inverted prefilter", func(e *Experiment, _ *scheme.Graph) {
			low, high := 40.0, 1.0
			e.PrefilterBand.Low, e.PrefilterBand.High = &low, &high
		}},
		{"duplicate block", func(e *Experiment, _ *scheme.Graph) {
			e.Blocks = append(e.Blocks, NewBlock("Baseline"))
		}},
		{"negative duration", func(e *Experiment, _ *scheme.Graph) { e.Blocks[0].Duration = -1 }},
		{"unknown feedback type", func(e *Experiment, _ *scheme.Graph) { e.Blocks[0].FeedbackType = "Sound" }},
		{"group refers to unknown block", func(e *Experiment, _ *scheme.Graph) {
			e.Groups = []*Group{NewGroup("G").Add("FB", 2)}
		}},
		{"group shadows block", func(e *Experiment, _ *scheme.Graph) {
			e.Groups = []*Group{NewGroup("Baseline")}
		}},
		{"zero repeats", func(e *Experiment, _ *scheme.Graph) {
			e.Groups = []*Group{NewGroup("G").Add("Baseline", 0)}
		}},
		{"unknown sequence item", func(e *Experiment, _ *scheme.Graph) { e.Sequence = []string{"FB"} }},
		{"invalid node config", func(_ *Experiment, g *scheme.Graph) {
			for _, n := range g.Nodes() {
				if c, ok := n.Config().(*nodes.Envelope); ok {
					c.Method = "Wavelet"
				}
			}
		}},
		{"duplicate signal", func(_ *Experiment, g *scheme.Graph) {
			n, _ := nodes.New(nodes.KindDerivedSignal)
			_ = g.AddNode(n)
		}},
		{"no signals", func(_ *Experiment, g *scheme.Graph) {
			for _, n := range g.Nodes() {
				if n.Kind() == nodes.KindDerivedSignal {
					_ = g.RemoveNode(n)
				}
			}
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, _ := defaultScene(t)
			e := baselineExperiment()
			tt.modify(e, s.Graph())
			if err := e.Validate(s.Graph()); !nfberrors.Is(err, nfberrors.ErrCodeValidation) {
				t.Errorf("Validate() = %v, want VALIDATION error", err)
			}
		})
	}
}

func TestValidateGroupsAndSequence(t *testing.T) {
	s, _ := defaultScene(t)
	e := baselineExperiment()
	fb := NewBlock("FB")
	fb.FeedbackType = FeedbackBar
	e.Blocks = append(e.Blocks, fb)
	e.Groups = []*Group{NewGroup("Training").Add("Baseline", 1).Add("FB", 3)}
	e.Sequence = []string{"Baseline", "Training", "FB"}

	if err := e.Validate(s.Graph()); err != nil {
		t.Fatalf("Validate: %v", err)
	}

	f := e.Groups[0].fields()
	for key, want := range map[string]string{
		"sName":       "Training",
		"sList":       "Baseline FB",
		"sNumberList": "1 3",
		"bShuffle":    "0",
	} {
		if got, _ := f.Text(key); got != want {
			t.Errorf("%s = %q, want %q", key, got, want)
		}
	}
}

func TestInletType(t *testing.T) {
	tests := []struct {
		in   string
		want string
		ok   bool
	}{
		{"LSL stream", InletLSL, true},
		{"Field trip buffer", InletFieldTrip, true},
		{"lsl_generator", InletLSLGenerator, true},
		{"serial", "", false},
	}
	for _, tt := range tests {
		got, ok := InletType(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Errorf("InletType(%q) = %q, %v; want %q, %v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
	if InletLabel(InletLSLFromFile) != "LSL file stream" {
		t.Errorf("InletLabel(%q) = %q", InletLSLFromFile, InletLabel(InletLSLFromFile))
	}
}
