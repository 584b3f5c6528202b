package clipboard

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/matzehuels/nfbstudio/pkg/observability"
)

// FileName is the name of the entry file inside the clipboard directory.
const FileName = "clipboard.json"

// File is a clipboard persisted as a single JSON entry file, so that
// separate processes share it.
type File struct {
	path string
}

// NewFile creates a file clipboard in dir. The directory is created if it
// doesn't exist.
func NewFile(dir string) (*File, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}
	return &File{path: filepath.Join(dir, FileName)}, nil
}

// Path returns the entry file's path.
func (c *File) Path() string { return c.path }

// SetText stores text. The entry is written to a temporary file and
// renamed into place, so a reader never sees a partial entry.
func (c *File) SetText(text string) error {
	data, err := json.MarshalIndent(newEntry(text), "", "  ")
	if err != nil {
		return err
	}
	tmp, err := os.CreateTemp(filepath.Dir(c.path), ".clipboard-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Rename(tmp.Name(), c.path); err != nil {
		return err
	}
	observability.Clipboard().OnClipboardWrite("file", len(text))
	return nil
}

// Text returns the stored text.
func (c *File) Text() (string, bool, error) {
	e, ok, err := c.Entry()
	if err != nil || !ok {
		return "", false, err
	}
	return e.Text, true, nil
}

// Entry returns the stored entry with its metadata. A corrupt entry, or
// one whose checksum does not match its text, is removed and treated as
// absent.
func (c *File) Entry() (Entry, bool, error) {
	data, err := os.ReadFile(c.path)
	if os.IsNotExist(err) {
		observability.Clipboard().OnClipboardRead("file", false)
		return Entry{}, false, nil
	}
	if err != nil {
		return Entry{}, false, err
	}

	var e Entry
	if err := json.Unmarshal(data, &e); err != nil || e.SHA256 != Hash([]byte(e.Text)) {
		// Invalid entry - treat as empty
		_ = os.Remove(c.path)
		observability.Clipboard().OnClipboardRead("file", false)
		return Entry{}, false, nil
	}

	observability.Clipboard().OnClipboardRead("file", true)
	return e, true, nil
}

// Clear removes the entry file.
func (c *File) Clear() error {
	err := os.Remove(c.path)
	if os.IsNotExist(err) {
		return nil
	}
	return err
}
