package nodes

import (
	"slices"

	nfberrors "github.com/matzehuels/nfbstudio/pkg/errors"
	"github.com/matzehuels/nfbstudio/pkg/export"
)

// Kind names, as stored in documents.
const (
	KindLSLInput      = "lsl_input"
	KindSpatialFilter = "spatial_filter"
	KindBandpass      = "bandpass_filter"
	KindEnvelope      = "envelope_detector"
	KindStandardize   = "standardize"
	KindDerivedSignal = "derived_signal_export"
)

// =============================================================================
// LSL input
// =============================================================================

// LSLInput is a source node reading a Lab Streaming Layer stream. Its
// stream name is an experiment-level setting, so it exports nothing.
type LSLInput struct {
	StreamName string `json:"stream_name"`
	Channels   int    `json:"channels"`
}

func (*LSLInput) Kind() string                { return KindLSLInput }
func (*LSLInput) AddExportData(*export.Fields) {}

func (c *LSLInput) Validate() error {
	if c.Channels < 0 {
		return nfberrors.New(nfberrors.ErrCodeValidation, "channel count cannot be negative: %d", c.Channels)
	}
	return nfberrors.ValidateLine(c.StreamName)
}

// =============================================================================
// Spatial filter
// =============================================================================

// SpatialFilter reduces the raw channels to one through a weight matrix
// stored in a file.
type SpatialFilter struct {
	MatrixPath string `json:"matrix_path"`
}

func (*SpatialFilter) Kind() string { return KindSpatialFilter }

func (c *SpatialFilter) AddExportData(signal *export.Fields) {
	signal.Set("SpatialFilterMatrix", c.MatrixPath)
}

func (c *SpatialFilter) Validate() error { return nfberrors.ValidateLine(c.MatrixPath) }

// =============================================================================
// Bandpass filter
// =============================================================================

// Bandpass bounds in Hz.
const (
	MinFrequency = 0.0
	MaxFrequency = 250.0
)

// Bandpass is a frequency filter. Either bound may be disabled (nil), which
// leaves that side of the band open.
type Bandpass struct {
	LowerBound *float64 `json:"lower_bound"`
	UpperBound *float64 `json:"upper_bound"`
}

func (*Bandpass) Kind() string { return KindBandpass }

func (c *Bandpass) AddExportData(signal *export.Fields) {
	signal.Set("fBandpassLowHz", c.LowerBound)
	signal.Set("fBandpassHighHz", c.UpperBound)
}

func (c *Bandpass) Validate() error {
	for _, b := range []*float64{c.LowerBound, c.UpperBound} {
		if b != nil && (*b < MinFrequency || *b > MaxFrequency) {
			return nfberrors.New(nfberrors.ErrCodeValidation,
				"bandpass bound %g Hz outside [%g, %g]", *b, MinFrequency, MaxFrequency)
		}
	}
	if c.LowerBound != nil && c.UpperBound != nil && *c.LowerBound > *c.UpperBound {
		return nfberrors.New(nfberrors.ErrCodeValidation,
			"bandpass lower bound %g Hz above upper bound %g Hz", *c.LowerBound, *c.UpperBound)
	}
	return nil
}

// =============================================================================
// Envelope detector
// =============================================================================

// Envelope detection methods understood by the runtime.
const (
	MethodRectification = "Rectification"
	MethodFourier       = "Fourier Transform"
	MethodHilbert       = "Hilbert Transform"
	MethodCFIR          = "cFIR"
)

// Methods lists the envelope detection methods.
var Methods = []string{MethodRectification, MethodFourier, MethodHilbert, MethodCFIR}

// Envelope extracts the amplitude envelope of a filtered signal.
type Envelope struct {
	SmoothingFactor float64 `json:"smoothing_factor"`
	Method          string  `json:"method"`
}

func (*Envelope) Kind() string { return KindEnvelope }

func (c *Envelope) AddExportData(signal *export.Fields) {
	signal.Set("fSmoothingFactor", c.SmoothingFactor)
	signal.Set("method", c.Method)
}

func (c *Envelope) Validate() error {
	if c.SmoothingFactor < 0 || c.SmoothingFactor > 1 {
		return nfberrors.New(nfberrors.ErrCodeValidation,
			"smoothing factor %g outside [0, 1]", c.SmoothingFactor)
	}
	if !slices.Contains(Methods, c.Method) {
		return nfberrors.New(nfberrors.ErrCodeValidation, "unknown envelope method %q", c.Method)
	}
	return nil
}

// =============================================================================
// Standardize
// =============================================================================

// Standardize z-scores an envelope against a running average.
type Standardize struct {
	AveragePeriod float64 `json:"average_period"`
	Enabled       bool    `json:"enabled"`
}

func (*Standardize) Kind() string { return KindStandardize }

func (c *Standardize) AddExportData(signal *export.Fields) {
	signal.Set("fAverage", c.AveragePeriod)
	signal.Set("bStandardize", c.Enabled)
}

func (c *Standardize) Validate() error {
	if c.AveragePeriod < 0 {
		return nfberrors.New(nfberrors.ErrCodeValidation,
			"averaging period cannot be negative: %g", c.AveragePeriod)
	}
	return nil
}

// =============================================================================
// Derived signal export
// =============================================================================

// DerivedSignal terminates a chain and names the signal the runtime will
// compute from it.
type DerivedSignal struct {
	SignalName string `json:"signal_name"`
}

func (*DerivedSignal) Kind() string { return KindDerivedSignal }

func (c *DerivedSignal) AddExportData(signal *export.Fields) {
	signal.Set("sSignalName", c.SignalName)
}

func (c *DerivedSignal) Validate() error { return nfberrors.ValidateName(c.SignalName) }
