package experiment

import (
	"bytes"
	"context"
	"io"
	"time"

	nfberrors "github.com/matzehuels/nfbstudio/pkg/errors"
	"github.com/matzehuels/nfbstudio/pkg/export"
	"github.com/matzehuels/nfbstudio/pkg/observability"
	"github.com/matzehuels/nfbstudio/pkg/scheme"
)

// RootElement is the root element of an exported experiment.
const RootElement = "NeurofeedbackSignalSpecs"

// Fields flattens e and the signals of g into the runtime's key layout.
func (e *Experiment) Fields(g *scheme.Graph) *export.Fields {
	return e.fields(signalFields(Signals(g)))
}

// Export validates e against g and writes the runtime XML document to w.
// Nothing is written when validation fails. An empty indent writes the
// document on one line.
func Export(ctx context.Context, w io.Writer, e *Experiment, g *scheme.Graph, indent string) (err error) {
	start := time.Now()
	hooks := observability.Export()
	hooks.OnExportStart(ctx, "xml")

	signals := 0
	defer func() {
		hooks.OnExportComplete(ctx, "xml", signals, time.Since(start), err)
	}()

	if err := ctx.Err(); err != nil {
		return err
	}
	if err := e.Validate(g); err != nil {
		return err
	}

	derived := Signals(g)
	signals = len(derived)

	var buf bytes.Buffer
	if err := export.WriteXML(&buf, RootElement, e.fields(signalFields(derived)), indent); err != nil {
		return nfberrors.Wrap(nfberrors.ErrCodeInternal, err, "export experiment %q", e.Name)
	}
	_, err = buf.WriteTo(w)
	return err
}
