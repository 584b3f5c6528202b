package experiment

import (
	"strings"

	nfberrors "github.com/matzehuels/nfbstudio/pkg/errors"
	"github.com/matzehuels/nfbstudio/pkg/scheme"
)

// Validate checks that e together with the signal scheme g can be exported:
// every setting is well-formed, names are unique, groups and the sequence
// only refer to existing blocks or groups, every node configuration is
// valid and at least one signal is defined.
func (e *Experiment) Validate(g *scheme.Graph) error {
	if err := e.validateSettings(); err != nil {
		return err
	}
	if err := e.validateProtocols(); err != nil {
		return err
	}
	if g == nil {
		return nfberrors.New(nfberrors.ErrCodeValidation, "experiment has no signal scheme")
	}
	if err := g.Validate(); err != nil {
		return nfberrors.Wrap(nfberrors.ErrCodeValidation, err, "signal scheme")
	}
	for _, n := range g.Nodes() {
		if cfg := n.Config(); cfg != nil {
			if err := cfg.Validate(); err != nil {
				return nfberrors.Wrap(nfberrors.ErrCodeValidation, err, "node %q (%s)", n.Title(), n.ID())
			}
		}
	}
	return validateSignals(Signals(g))
}

func (e *Experiment) validateSettings() error {
	if err := nfberrors.ValidateName(e.Name); err != nil {
		return nfberrors.Wrap(nfberrors.ErrCodeValidation, err, "experiment name")
	}
	if _, ok := InletType(e.Inlet); !ok {
		return nfberrors.New(nfberrors.ErrCodeValidation, "unknown inlet type %q", e.Inlet)
	}
	for _, s := range []string{e.LSLStreamName, e.RawDataPath, e.HostnamePort, e.DiscardChannels, e.ReferenceSub} {
		if err := nfberrors.ValidateLine(s); err != nil {
			return err
		}
	}
	if b := e.PrefilterBand; b.Low != nil && b.High != nil && *b.Low > *b.High {
		return nfberrors.New(nfberrors.ErrCodeValidation, "prefilter band is inverted: %s", b)
	}
	return nil
}

func (e *Experiment) validateProtocols() error {
	names := make(map[string]string)

	for _, b := range e.Blocks {
		if err := b.Validate(); err != nil {
			return err
		}
		if _, dup := names[b.Name]; dup {
			return nfberrors.New(nfberrors.ErrCodeValidation, "duplicate block name %q", b.Name)
		}
		names[b.Name] = "block"
	}
	for _, g := range e.Groups {
		if err := g.Validate(); err != nil {
			return err
		}
		if kind, dup := names[g.Name]; dup {
			return nfberrors.New(nfberrors.ErrCodeValidation, "group name %q already used by a %s", g.Name, kind)
		}
		names[g.Name] = "group"
		for _, ref := range g.Blocks {
			if names[ref] != "block" {
				return nfberrors.New(nfberrors.ErrCodeValidation, "group %q: unknown block %q", g.Name, ref)
			}
			// Group members are exported as a space-separated list.
			if strings.ContainsAny(ref, " \t") {
				return nfberrors.New(nfberrors.ErrCodeValidation,
					"group %q: block name %q contains whitespace", g.Name, ref)
			}
		}
	}
	for i, ref := range e.Sequence {
		if _, ok := names[ref]; !ok {
			return nfberrors.New(nfberrors.ErrCodeValidation, "sequence item %d: unknown block or group %q", i, ref)
		}
	}
	return nil
}

func validateSignals(signals []Signal) error {
	if len(signals) == 0 {
		return nfberrors.New(nfberrors.ErrCodeValidation, "scheme defines no derived signals")
	}
	seen := make(map[string]bool, len(signals))
	for _, s := range signals {
		name := s.Name()
		if seen[name] {
			return nfberrors.New(nfberrors.ErrCodeValidation, "duplicate signal name %q", name)
		}
		seen[name] = true
	}
	return nil
}
