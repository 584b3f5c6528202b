package project

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	nfberrors "github.com/matzehuels/nfbstudio/pkg/errors"
	"github.com/matzehuels/nfbstudio/pkg/experiment"
	"github.com/matzehuels/nfbstudio/pkg/scheme"
)

type file struct {
	Version    int                    `json:"version"`
	Experiment *experiment.Experiment `json:"experiment"`
	Scheme     scheme.Document        `json:"scheme"`
}

// Write encodes p as indented JSON and writes it to w.
func Write(w io.Writer, p *Project) error {
	doc, err := p.Scene.Serialize()
	if err != nil {
		return err
	}
	out := file{Version: Version, Experiment: p.Experiment, Scheme: doc}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// Read decodes a project from r. opts configure the returned project's
// scene. Experiment settings missing from the file keep their defaults; a
// file without a version is read as version 1. Read does not close r.
func Read(r io.Reader, opts ...scheme.Option) (*Project, error) {
	in := file{Experiment: experiment.New()}
	if err := json.NewDecoder(r).Decode(&in); err != nil {
		return nil, nfberrors.Wrap(nfberrors.ErrCodeDeserialization, err, "decode project")
	}
	if in.Version > Version {
		return nil, nfberrors.New(nfberrors.ErrCodeUnsupported,
			"project version %d is newer than supported version %d", in.Version, Version)
	}
	if in.Experiment == nil {
		in.Experiment = experiment.New()
	}

	s := scheme.NewScene(opts...)
	if err := s.Deserialize(in.Scheme); err != nil {
		return nil, err
	}
	return &Project{Experiment: in.Experiment, Scene: s}, nil
}

// WriteFile writes p to the project file at path. The project is encoded
// in full before the file is touched, and the new content is renamed into
// place, so a failed write leaves the previous file intact.
func WriteFile(path string, p *Project) error {
	if err := nfberrors.ValidateProjectPath(path); err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := Write(&buf, p); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".project-*")
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(buf.Bytes()); err != nil {
		tmp.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := tmp.Chmod(0644); err != nil {
		tmp.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// ReadFile reads the project file at path.
func ReadFile(path string, opts ...scheme.Option) (*Project, error) {
	if err := nfberrors.ValidateProjectPath(path); err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, nfberrors.Wrap(nfberrors.ErrCodeFileNotFound, err, "project %s", path)
	}
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	p, err := Read(f, opts...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return p, nil
}
