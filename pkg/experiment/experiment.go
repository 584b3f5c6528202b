package experiment

import (
	"slices"

	"github.com/matzehuels/nfbstudio/pkg/export"
)

// Inlet types, as exported. The keys of [InletNames] are the labels shown
// to users.
const (
	InletLSL          = "lsl"
	InletLSLFromFile  = "lsl_from_file"
	InletLSLGenerator = "lsl_generator"
	InletFieldTrip    = "ftbuffer"
)

// InletNames maps display labels to exported inlet types.
var InletNames = map[string]string{
	"LSL stream":        InletLSL,
	"LSL file stream":   InletLSLFromFile,
	"LSL generator":     InletLSLGenerator,
	"Field trip buffer": InletFieldTrip,
}

// InletType resolves a display label or an exported value to the exported
// inlet type.
func InletType(s string) (string, bool) {
	if v, ok := InletNames[s]; ok {
		return v, true
	}
	for _, v := range InletNames {
		if v == s {
			return s, true
		}
	}
	return "", false
}

// InletLabel returns the display label of an exported inlet type.
func InletLabel(inlet string) string {
	for label, v := range InletNames {
		if v == inlet {
			return label
		}
	}
	return inlet
}

// RewardPeriod is the fixed reward period in seconds.
const RewardPeriod = 0.25

// Experiment is the top-level description of an NFB session: where data
// comes from, what the subject sees and the order of protocol blocks.
type Experiment struct {
	Name               string      `json:"name"`
	LSLStreamName      string      `json:"lsl_stream_name"`
	Inlet              string      `json:"inlet"`
	RawDataPath        string      `json:"raw_data_path"`
	HostnamePort       string      `json:"hostname_port"`
	DC                 bool        `json:"dc"`
	PrefilterBand      export.Band `json:"prefilter_band"`
	PlotRaw            bool        `json:"plot_raw"`
	PlotSignals        bool        `json:"plot_signals"`
	ShowSubjectWindow  bool        `json:"show_subject_window"`
	DiscardChannels    string      `json:"discard_channels"`
	ReferenceSub       string      `json:"reference_sub"`
	ShowPhotoRectangle bool        `json:"show_photo_rectangle"`
	ShowNotchFilters   bool        `json:"show_notch_filters"`

	Blocks   []*Block `json:"blocks"`
	Groups   []*Group `json:"groups"`
	Sequence []string `json:"sequence"`
}

// New returns an experiment with default settings and no blocks.
func New() *Experiment {
	return &Experiment{
		Name:          "Experiment",
		LSLStreamName: "NVX136_Data",
		Inlet:         InletLSL,
	}
}

// Block returns the block with the given name.
func (e *Experiment) Block(name string) (*Block, bool) {
	i := slices.IndexFunc(e.Blocks, func(b *Block) bool { return b.Name == name })
	if i < 0 {
		return nil, false
	}
	return e.Blocks[i], true
}

// Group returns the group with the given name.
func (e *Experiment) Group(name string) (*Group, bool) {
	i := slices.IndexFunc(e.Groups, func(g *Group) bool { return g.Name == name })
	if i < 0 {
		return nil, false
	}
	return e.Groups[i], true
}

// fields returns the experiment-level keys in runtime order. Signals,
// protocols and groups are supplied by the caller.
func (e *Experiment) fields(signals []*export.Fields) *export.Fields {
	protocols := make([]*export.Fields, len(e.Blocks))
	for i, b := range e.Blocks {
		protocols[i] = b.fields()
	}
	groups := make([]*export.Fields, len(e.Groups))
	for i, g := range e.Groups {
		groups[i] = g.fields()
	}

	return export.NewFields().
		Set("sExperimentName", e.Name).
		Set("sStreamName", e.LSLStreamName).
		Set("sPrefilterBand", e.PrefilterBand).
		Set("bDC", e.DC).
		Set("sInletType", e.Inlet).
		Set("sRawDataFilePath", e.RawDataPath).
		Set("sFTHostnamePort", e.HostnamePort).
		Set("bPlotRaw", e.PlotRaw).
		Set("bPlotSignals", e.PlotSignals).
		Set("bPlotSourceSpace", 0).
		Set("bShowSubjectWindow", e.ShowSubjectWindow).
		Set("fRewardPeriodS", RewardPeriod).
		Set("sReference", e.DiscardChannels).
		Set("sReferenceSub", e.ReferenceSub).
		Set("bUseExpyriment", 0).
		Set("bShowPhotoRectangle", e.ShowPhotoRectangle).
		Set("sVizNotchFilters", e.ShowNotchFilters).
		Set("vSignals", export.NewFields().Set("DerivedSignal", signals)).
		Set("vProtocols", export.NewFields().Set("FeedbackProtocol", protocols)).
		Set("vPGroups", export.NewFields().Set("PGroup", groups)).
		Set("vPSequence", export.NewFields().Set("s", append([]string(nil), e.Sequence...)))
}
