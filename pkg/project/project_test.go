package project

import (
	"bytes"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	nfberrors "github.com/matzehuels/nfbstudio/pkg/errors"
	"github.com/matzehuels/nfbstudio/pkg/nodes"
	"github.com/matzehuels/nfbstudio/pkg/scheme"
)

var quiet = scheme.WithLogger(log.New(io.Discard))

func TestNew(t *testing.T) {
	p, err := New(quiet)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if got := p.Graph().NodeCount(); got != len(nodes.DefaultChain) {
		t.Errorf("NodeCount() = %d, want %d", got, len(nodes.DefaultChain))
	}
	if err := p.Validate(); err != nil {
		t.Errorf("new project does not validate: %v", err)
	}
}

func TestRoundTrip(t *testing.T) {
	p, _ := New(quiet)
	p.Experiment.Name = "Alpha training"
	p.Experiment.DC = true
	for _, n := range p.Graph().Nodes() {
		if c, ok := n.Config().(*nodes.DerivedSignal); ok {
			c.SignalName = "Alpha"
		}
	}

	path := filepath.Join(t.TempDir(), "alpha.json")
	if err := WriteFile(path, p); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	got, err := ReadFile(path, quiet)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}

	if got.Experiment.Name != "Alpha training" || !got.Experiment.DC {
		t.Errorf("experiment not restored: %+v", got.Experiment)
	}
	if got.Graph().NodeCount() != p.Graph().NodeCount() || got.Graph().EdgeCount() != p.Graph().EdgeCount() {
		t.Errorf("graph size %d/%d, want %d/%d",
			got.Graph().NodeCount(), got.Graph().EdgeCount(), p.Graph().NodeCount(), p.Graph().EdgeCount())
	}
	for _, n := range p.Graph().Nodes() {
		m, ok := got.Graph().Node(n.ID())
		if !ok {
			t.Fatalf("node %s missing", n.ID())
		}
		if m.Kind() != n.Kind() || m.Position() != n.Position() {
			t.Errorf("node %s restored as %s at %v", n, m.Kind(), m.Position())
		}
	}

	var a, b bytes.Buffer
	if err := Write(&a, p); err != nil {
		t.Fatal(err)
	}
	if err := Write(&b, got); err != nil {
		t.Fatal(err)
	}
	if a.String() != b.String() {
		t.Error("second write differs from the first")
	}
}

func TestReadDefaults(t *testing.T) {
	p, err := Read(strings.NewReader(`{"scheme": {"nodes": [], "edges": []}}`), quiet)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if p.Experiment.Name != "Experiment" || p.Experiment.LSLStreamName != "NVX136_Data" {
		t.Errorf("defaults not applied: %+v", p.Experiment)
	}
	if p.Graph().NodeCount() != 0 {
		t.Errorf("NodeCount() = %d", p.Graph().NodeCount())
	}
}

func TestReadErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
		code nfberrors.Code
	}{
		{"malformed", `{"version":`, nfberrors.ErrCodeDeserialization},
		{"newer version", `{"version": 99}`, nfberrors.ErrCodeUnsupported},
		{"unknown kind", `{"scheme": {"nodes": [{"id": "a", "kind": "oscillator", "title": "x"}]}}`,
			nfberrors.ErrCodeDeserialization},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Read(strings.NewReader(tt.data), quiet)
			if !nfberrors.Is(err, tt.code) {
				t.Errorf("Read() = %v, want %s", err, tt.code)
			}
		})
	}
}

func TestFilePaths(t *testing.T) {
	p, _ := New(quiet)
	dir := t.TempDir()

	if err := WriteFile(filepath.Join(dir, "project.xml"), p); !nfberrors.Is(err, nfberrors.ErrCodeInvalidPath) {
		t.Errorf("WriteFile(.xml) = %v, want INVALID_PATH", err)
	}
	if _, err := ReadFile(filepath.Join(dir, "missing.json")); !nfberrors.Is(err, nfberrors.ErrCodeFileNotFound) {
		t.Errorf("ReadFile(missing) = %v, want FILE_NOT_FOUND", err)
	}
}

func TestWriteFileKeepsOldContentOnFailure(t *testing.T) {
	path := filepath.Join(t.TempDir(), "project.json")
	p, _ := New(quiet)
	if err := WriteFile(path, p); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	before, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	for _, n := range p.Graph().Nodes() {
		if c, ok := n.Config().(*nodes.Envelope); ok {
			c.SmoothingFactor = math.NaN()
		}
	}
	if err := WriteFile(path, p); err == nil {
		t.Fatal("WriteFile of an unencodable project succeeded")
	}

	after, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("project file is gone: %v", err)
	}
	if !bytes.Equal(before, after) {
		t.Error("failed WriteFile changed the project file")
	}
	entries, _ := os.ReadDir(filepath.Dir(path))
	if len(entries) != 1 {
		t.Errorf("directory has %d entries, want only the project", len(entries))
	}
}
