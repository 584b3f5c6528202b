// Package observability provides hooks for metrics, tracing, and logging.
//
// This package enables optional instrumentation without adding hard dependencies
// on specific observability backends. Consumers register hooks at startup to
// receive events about scheme editing, clipboard transfer, and export.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// Hooks are registered by main, not by libraries, so the editing engine never
// imports a backend.
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetSchemeHooks(&mySchemeHooks{})
//	    observability.SetExportHooks(&myExportHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Export().OnExportStart(ctx, "xml")
//	// ... flatten and encode ...
//	observability.Export().OnExportComplete(ctx, "xml", signals, duration, err)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Scheme Hooks
// =============================================================================

// SchemeHooks receives events from scene editing. Editing is synchronous
// and has no context.
type SchemeHooks interface {
	// OnMutation records a committed scene mutation such as "add", "remove",
	// "connect" or "disconnect", with the graph size after it.
	OnMutation(op string, nodes, edges int)

	// OnRejected records a mutation that was refused and left the scene
	// unchanged.
	OnRejected(op string, err error)

	// OnPaste records a paste. ok is false when the clipboard held no
	// usable payload.
	OnPaste(nodes, edges int, ok bool)
}

// =============================================================================
// Clipboard Hooks
// =============================================================================

// ClipboardHooks receives events from clipboard backends.
type ClipboardHooks interface {
	// OnClipboardRead records a read; hit is false when nothing was stored.
	OnClipboardRead(backend string, hit bool)

	// OnClipboardWrite records a write of size bytes.
	OnClipboardWrite(backend string, size int)
}

// =============================================================================
// Export Hooks
// =============================================================================

// ExportHooks receives events from experiment export and scheme rendering.
type ExportHooks interface {
	// Export events
	OnExportStart(ctx context.Context, format string)
	OnExportComplete(ctx context.Context, format string, signals int, duration time.Duration, err error)

	// Render events
	OnRenderStart(ctx context.Context, format string, nodeCount int)
	OnRenderComplete(ctx context.Context, format string, size int, duration time.Duration, err error)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopSchemeHooks is a no-op implementation of SchemeHooks.
type NoopSchemeHooks struct{}

func (NoopSchemeHooks) OnMutation(string, int, int) {}
func (NoopSchemeHooks) OnRejected(string, error)    {}
func (NoopSchemeHooks) OnPaste(int, int, bool)      {}

// NoopClipboardHooks is a no-op implementation of ClipboardHooks.
type NoopClipboardHooks struct{}

func (NoopClipboardHooks) OnClipboardRead(string, bool) {}
func (NoopClipboardHooks) OnClipboardWrite(string, int) {}

// NoopExportHooks is a no-op implementation of ExportHooks.
type NoopExportHooks struct{}

func (NoopExportHooks) OnExportStart(context.Context, string) {}
func (NoopExportHooks) OnExportComplete(context.Context, string, int, time.Duration, error) {
}
func (NoopExportHooks) OnRenderStart(context.Context, string, int)                         {}
func (NoopExportHooks) OnRenderComplete(context.Context, string, int, time.Duration, error) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	schemeHooks    SchemeHooks    = NoopSchemeHooks{}
	clipboardHooks ClipboardHooks = NoopClipboardHooks{}
	exportHooks    ExportHooks    = NoopExportHooks{}
	hooksMu        sync.RWMutex
)

// SetSchemeHooks registers custom scheme hooks.
// This should be called once at application startup before any editing.
func SetSchemeHooks(h SchemeHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		schemeHooks = h
	}
}

// SetClipboardHooks registers custom clipboard hooks.
func SetClipboardHooks(h ClipboardHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		clipboardHooks = h
	}
}

// SetExportHooks registers custom export hooks.
// This should be called once at application startup before any export.
func SetExportHooks(h ExportHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		exportHooks = h
	}
}

// Scheme returns the registered scheme hooks.
func Scheme() SchemeHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return schemeHooks
}

// Clipboard returns the registered clipboard hooks.
func Clipboard() ClipboardHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return clipboardHooks
}

// Export returns the registered export hooks.
func Export() ExportHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return exportHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	schemeHooks = NoopSchemeHooks{}
	clipboardHooks = NoopClipboardHooks{}
	exportHooks = NoopExportHooks{}
}
