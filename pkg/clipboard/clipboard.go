// Package clipboard provides text clipboards for copying scheme fragments.
//
// A headless tool has no system clipboard, so copy and paste go through a
// [Clipboard] backend chosen by the caller:
//
//   - [Memory] keeps the text in process, for tests and interactive sessions
//   - [File] persists it as a JSON entry so that a copy in one CLI
//     invocation can be pasted by the next
//   - [Null] never stores anything
//
// Every backend satisfies the clipboard interface of package scheme.
package clipboard

import (
	"crypto/sha256"
	"encoding/hex"
	"sync"
	"time"

	"github.com/matzehuels/nfbstudio/pkg/observability"
	"github.com/matzehuels/nfbstudio/pkg/scheme"
)

// Clipboard stores one text payload.
type Clipboard interface {
	// SetText replaces the stored text.
	SetText(text string) error
	// Text returns the stored text. ok is false when nothing is stored.
	Text() (text string, ok bool, err error)
	// Clear removes the stored text.
	Clear() error
}

// Entry describes the stored payload.
type Entry struct {
	Text     string    `json:"text"`
	SHA256   string    `json:"sha256"`
	CopiedAt time.Time `json:"copied_at"`
}

func newEntry(text string) Entry {
	return Entry{Text: text, SHA256: Hash([]byte(text)), CopiedAt: time.Now().UTC()}
}

// Hash computes a SHA-256 hash of the input data.
// Returns the full 64-character hex string.
func Hash(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}

// =============================================================================
// Memory
// =============================================================================

// Memory is an in-process clipboard. It is safe for concurrent use.
type Memory struct {
	mu    sync.Mutex
	entry *Entry
}

// NewMemory returns an empty in-process clipboard.
func NewMemory() *Memory {
	return &Memory{}
}

func (m *Memory) SetText(text string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	e := newEntry(text)
	m.entry = &e
	observability.Clipboard().OnClipboardWrite("memory", len(text))
	return nil
}

func (m *Memory) Text() (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	observability.Clipboard().OnClipboardRead("memory", m.entry != nil)
	if m.entry == nil {
		return "", false, nil
	}
	return m.entry.Text, true, nil
}

func (m *Memory) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entry = nil
	return nil
}

// =============================================================================
// Null
// =============================================================================

// Null is a clipboard that never stores anything.
type Null struct{}

// NewNull returns a null clipboard.
func NewNull() *Null {
	return &Null{}
}

// SetText does nothing.
func (*Null) SetText(string) error { return nil }

// Text always reports that nothing is stored.
func (*Null) Text() (string, bool, error) { return "", false, nil }

// Clear does nothing.
func (*Null) Clear() error { return nil }

var (
	_ Clipboard        = (*Memory)(nil)
	_ Clipboard        = (*Null)(nil)
	_ Clipboard        = (*File)(nil)
	_ scheme.Clipboard = Clipboard(nil)
)
