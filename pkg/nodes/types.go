package nodes

import "github.com/matzehuels/nfbstudio/pkg/scheme"

// Signal data types. Tags are stable and identify the type; compatibility
// follows the declared conversions.
var (
	// TypeRaw is the multichannel stream produced by an LSL input.
	TypeRaw = scheme.NewDataType(101, "raw")
	// TypeSpatial is a spatially filtered single-channel signal.
	TypeSpatial = scheme.NewDataType(102, "spatial")
	// TypeEnvelopeInput is what an envelope detector accepts.
	TypeEnvelopeInput = scheme.NewDataType(103, "envelope input", TypeSpatial)
	// TypeEnvelope is a detected envelope.
	TypeEnvelope = scheme.NewDataType(104, "envelope")
	// TypeStandardizeInput is what a standardize stage accepts.
	TypeStandardizeInput = scheme.NewDataType(105, "standardize input", TypeEnvelope)
	// TypeStandardized is a z-scored envelope.
	TypeStandardized = scheme.NewDataType(106, "standardized")
	// TypeSignalInput is what a derived signal export accepts.
	TypeSignalInput = scheme.NewDataType(107, "signal input", TypeEnvelope, TypeStandardized)
)
