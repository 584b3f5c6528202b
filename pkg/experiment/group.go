package experiment

import (
	"strconv"
	"strings"

	nfberrors "github.com/matzehuels/nfbstudio/pkg/errors"
	"github.com/matzehuels/nfbstudio/pkg/export"
)

// Group is a named list of blocks, each repeated a number of times, that
// the sequence can refer to as a unit.
type Group struct {
	Name    string   `json:"name"`
	Blocks  []string `json:"blocks"`
	Repeats []int    `json:"repeats"`
	Shuffle bool     `json:"shuffle"`
	SplitBy string   `json:"split_by"`
}

// NewGroup returns an empty group.
func NewGroup(name string) *Group {
	return &Group{Name: name}
}

// Add appends a block to the group, repeated n times.
func (g *Group) Add(block string, n int) *Group {
	g.Blocks = append(g.Blocks, block)
	g.Repeats = append(g.Repeats, n)
	return g
}

// Validate checks the group's own settings. Block references are checked
// by [Experiment.Validate].
func (g *Group) Validate() error {
	if err := nfberrors.ValidateName(g.Name); err != nil {
		return err
	}
	if len(g.Repeats) != len(g.Blocks) {
		return nfberrors.New(nfberrors.ErrCodeValidation,
			"group %q: %d blocks but %d repeat counts", g.Name, len(g.Blocks), len(g.Repeats))
	}
	for i, n := range g.Repeats {
		if n < 1 {
			return nfberrors.New(nfberrors.ErrCodeValidation,
				"group %q: block %q repeated %d times", g.Name, g.Blocks[i], n)
		}
	}
	return nfberrors.ValidateLine(g.SplitBy)
}

func (g *Group) fields() *export.Fields {
	counts := make([]string, len(g.Repeats))
	for i, n := range g.Repeats {
		counts[i] = strconv.Itoa(n)
	}
	return export.NewFields().
		Set("sName", g.Name).
		Set("sList", strings.Join(g.Blocks, " ")).
		Set("sNumberList", strings.Join(counts, " ")).
		Set("bShuffle", g.Shuffle).
		Set("sSplitBy", g.SplitBy)
}
