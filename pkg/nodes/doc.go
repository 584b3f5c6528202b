// Package nodes defines the signal-processing node kinds of an NFB scheme.
//
// Importing the package registers every kind with package scheme, which
// makes them available to document decoding. The kinds form a typical
// chain:
//
//	lsl_input -> spatial_filter -> bandpass_filter -> envelope_detector
//	          -> standardize -> derived_signal_export
//
// Each kind's [scheme.Config] holds its settings with the defaults the
// runtime expects and contributes its fields to the exported signal.
// The bandpass filter is typed [scheme.Unknown] on both sides and can be
// placed anywhere in a chain.
package nodes
