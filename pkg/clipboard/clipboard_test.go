package clipboard

import (
	"os"
	"path/filepath"
	"testing"
)

func TestNull(t *testing.T) {
	c := NewNull()

	if err := c.SetText("value"); err != nil {
		t.Errorf("SetText error: %v", err)
	}

	// Still empty after SetText
	text, ok, err := c.Text()
	if err != nil {
		t.Fatalf("Text error: %v", err)
	}
	if ok || text != "" {
		t.Error("Null should not store text")
	}

	if err := c.Clear(); err != nil {
		t.Errorf("Clear error: %v", err)
	}
}

func TestBackends(t *testing.T) {
	file, err := NewFile(filepath.Join(t.TempDir(), "nested"))
	if err != nil {
		t.Fatalf("NewFile: %v", err)
	}

	backends := []struct {
		name string
		c    Clipboard
	}{
		{"memory", NewMemory()},
		{"file", file},
	}

	for _, b := range backends {
		t.Run(b.name, func(t *testing.T) {
			if _, ok, err := b.c.Text(); ok || err != nil {
				t.Fatalf("new clipboard: ok=%v err=%v", ok, err)
			}

			for _, text := range []string{`{"nodes":[],"edges":[]}`, "second"} {
				if err := b.c.SetText(text); err != nil {
					t.Fatalf("SetText: %v", err)
				}
				got, ok, err := b.c.Text()
				if err != nil || !ok || got != text {
					t.Errorf("Text() = %q, %v, %v; want %q", got, ok, err, text)
				}
			}

			if err := b.c.Clear(); err != nil {
				t.Fatalf("Clear: %v", err)
			}
			if _, ok, _ := b.c.Text(); ok {
				t.Error("Text() reports content after Clear")
			}
			if err := b.c.Clear(); err != nil {
				t.Errorf("second Clear: %v", err)
			}
		})
	}
}

func TestFileSharedBetweenInstances(t *testing.T) {
	dir := t.TempDir()
	a, _ := NewFile(dir)
	b, _ := NewFile(dir)

	if err := a.SetText("payload"); err != nil {
		t.Fatalf("SetText: %v", err)
	}
	e, ok, err := b.Entry()
	if err != nil || !ok {
		t.Fatalf("Entry() ok=%v err=%v", ok, err)
	}
	if e.Text != "payload" || e.SHA256 != Hash([]byte("payload")) || e.CopiedAt.IsZero() {
		t.Errorf("unexpected entry %+v", e)
	}
}

func TestFileCorruptEntry(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"not json", "{broken"},
		{"checksum mismatch", `{"text":"x","sha256":"00","copied_at":"2024-01-01T00:00:00Z"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := NewFile(t.TempDir())
			if err := os.WriteFile(c.Path(), []byte(tt.data), 0644); err != nil {
				t.Fatal(err)
			}
			if _, ok, err := c.Text(); ok || err != nil {
				t.Errorf("Text() ok=%v err=%v, want empty", ok, err)
			}
			if _, err := os.Stat(c.Path()); !os.IsNotExist(err) {
				t.Error("corrupt entry was not removed")
			}
		})
	}
}

func TestHash(t *testing.T) {
	// Test determinism
	h1 := Hash([]byte("hello"))
	h2 := Hash([]byte("hello"))
	if h1 != h2 {
		t.Error("Hash should be deterministic")
	}

	// Test different inputs produce different hashes
	if h1 == Hash([]byte("world")) {
		t.Error("Different inputs should produce different hashes")
	}

	// Test hash length (SHA-256 produces 64 hex chars)
	if len(h1) != 64 {
		t.Errorf("Hash length should be 64, got %d", len(h1))
	}
}
