package project

import (
	"github.com/matzehuels/nfbstudio/pkg/experiment"
	"github.com/matzehuels/nfbstudio/pkg/nodes"
	"github.com/matzehuels/nfbstudio/pkg/scheme"
)

// Version is the project file format version written by [Write].
const Version = 1

// DefaultBlock is the block a new project starts with.
const DefaultBlock = "Baseline"

// Project is an experiment together with the scene holding its signal
// scheme.
type Project struct {
	Experiment *experiment.Experiment
	Scene      *scheme.Scene
}

// New returns a project with default experiment settings, one baseline
// block in the sequence and the default signal chain. opts configure the
// scene.
func New(opts ...scheme.Option) (*Project, error) {
	s := scheme.NewScene(opts...)
	if _, err := nodes.BuildChain(s, scheme.Point{}, nodes.DefaultChain...); err != nil {
		return nil, err
	}

	e := experiment.New()
	e.Blocks = []*experiment.Block{experiment.NewBlock(DefaultBlock)}
	e.Sequence = []string{DefaultBlock}

	return &Project{Experiment: e, Scene: s}, nil
}

// Graph returns the project's signal scheme.
func (p *Project) Graph() *scheme.Graph { return p.Scene.Graph() }

// Validate checks that the project can be exported.
func (p *Project) Validate() error {
	return p.Experiment.Validate(p.Graph())
}
