// Package export encodes flattened experiment data for the NFB runtime.
//
// The runtime consumes a nested key-value XML document and parses it
// strictly: element order matters, booleans are the text "0" or "1", and
// frequency bands are two numbers joined by a space. [Fields] models one
// level of that document and [WriteXML] serializes a tree of them.
//
//	f := export.NewFields().
//	    Set("sSignalName", "Alpha").
//	    Set("bDisableSpectrumEvaluation", false).
//	    Set("sPrefilterBand", export.NewBand(1, 40))
//	data, _ := export.MarshalXML("DerivedSignal", f, export.DefaultIndent)
//
// produces
//
//	<DerivedSignal>
//		<sSignalName>Alpha</sSignalName>
//		<bDisableSpectrumEvaluation>0</bDisableSpectrumEvaluation>
//		<sPrefilterBand>1 40</sPrefilterBand>
//	</DerivedSignal>
package export
