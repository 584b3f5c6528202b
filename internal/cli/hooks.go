package cli

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/nfbstudio/pkg/observability"
)

// logHooks reports library events through the CLI logger at debug level.
type logHooks struct {
	logger *log.Logger
}

// InstallHooks routes scheme, clipboard and export events to the CLI's
// logger. It is called once by main.
func (c *CLI) InstallHooks() {
	h := &logHooks{logger: c.Logger}
	observability.SetSchemeHooks(h)
	observability.SetClipboardHooks(h)
	observability.SetExportHooks(h)
}

func (h *logHooks) OnMutation(op string, nodes, edges int) {
	h.logger.Debug("scheme changed", "op", op, "nodes", nodes, "edges", edges)
}

func (h *logHooks) OnRejected(op string, err error) {
	h.logger.Debug("scheme edit rejected", "op", op, "err", err)
}

func (h *logHooks) OnPaste(nodes, edges int, ok bool) {
	h.logger.Debug("paste", "nodes", nodes, "edges", edges, "ok", ok)
}

func (h *logHooks) OnClipboardRead(backend string, hit bool) {
	h.logger.Debug("clipboard read", "backend", backend, "hit", hit)
}

func (h *logHooks) OnClipboardWrite(backend string, size int) {
	h.logger.Debug("clipboard write", "backend", backend, "bytes", size)
}

func (h *logHooks) OnExportStart(ctx context.Context, format string) {
	h.logger.Debug("export started", "format", format)
}

func (h *logHooks) OnExportComplete(ctx context.Context, format string, signals int, dur time.Duration, err error) {
	if err != nil {
		h.logger.Debug("export failed", "format", format, "err", err)
		return
	}
	h.logger.Debug("export complete", "format", format, "signals", signals, "took", dur.Round(time.Microsecond))
}

func (h *logHooks) OnRenderStart(ctx context.Context, format string, nodeCount int) {
	h.logger.Debug("render started", "format", format, "nodes", nodeCount)
}

func (h *logHooks) OnRenderComplete(ctx context.Context, format string, size int, dur time.Duration, err error) {
	if err != nil {
		h.logger.Debug("render failed", "format", format, "err", err)
		return
	}
	h.logger.Debug("render complete", "format", format, "bytes", size, "took", dur.Round(time.Microsecond))
}

var (
	_ observability.SchemeHooks    = (*logHooks)(nil)
	_ observability.ClipboardHooks = (*logHooks)(nil)
	_ observability.ExportHooks    = (*logHooks)(nil)
)
