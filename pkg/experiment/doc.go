// Package experiment describes a neurofeedback experiment and exports it,
// together with its signal scheme, as the XML document the NFB runtime
// loads.
//
// An [Experiment] holds session settings, protocol [Block]s, [Group]s of
// blocks and the sequence in which they run. The signals come from the
// scheme: every derived-signal export node defines one signal whose
// parameters are the merged export data of the chain feeding it (see
// [Signals]).
//
//	e := experiment.New()
//	e.Blocks = append(e.Blocks, experiment.NewBlock("Baseline"))
//	e.Sequence = []string{"Baseline"}
//	if err := experiment.Export(ctx, w, e, scene.Graph(), export.DefaultIndent); err != nil {
//	    return err
//	}
//
// Export validates first and writes nothing when validation fails.
package experiment
