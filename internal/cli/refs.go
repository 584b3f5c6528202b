package cli

import (
	"strconv"
	"strings"

	nfberrors "github.com/matzehuels/nfbstudio/pkg/errors"
	"github.com/matzehuels/nfbstudio/pkg/scheme"
)

// findNode resolves a node reference: a full ID, a unique ID prefix or a
// unique title.
func findNode(g *scheme.Graph, ref string) (*scheme.Node, error) {
	if ref == "" {
		return nil, nfberrors.New(nfberrors.ErrCodeInvalidInput, "empty node reference")
	}
	if n, ok := g.Node(ref); ok {
		return n, nil
	}

	var byPrefix, byTitle []*scheme.Node
	for _, n := range g.Nodes() {
		if strings.HasPrefix(n.ID(), ref) {
			byPrefix = append(byPrefix, n)
		}
		if n.Title() == ref {
			byTitle = append(byTitle, n)
		}
	}
	for _, matches := range [][]*scheme.Node{byPrefix, byTitle} {
		switch len(matches) {
		case 0:
			continue
		case 1:
			return matches[0], nil
		default:
			return nil, nfberrors.New(nfberrors.ErrCodeInvalidInput,
				"node reference %q is ambiguous (%d matches)", ref, len(matches))
		}
	}
	return nil, nfberrors.New(nfberrors.ErrCodeNotFound, "no node matches %q", ref)
}

// splitPortRef splits "node:port" into its parts. The port is empty when
// the reference names only a node.
func splitPortRef(ref string) (node, port string) {
	i := strings.LastIndex(ref, ":")
	if i < 0 {
		return ref, ""
	}
	return ref[:i], ref[i+1:]
}

// portIndex resolves a port given by index or name among names. An empty
// port selects the first one.
func portIndex(port string, names []string) (int, bool) {
	if len(names) == 0 {
		return 0, false
	}
	if port == "" {
		return 0, true
	}
	if i, err := strconv.Atoi(port); err == nil {
		return i, i >= 0 && i < len(names)
	}
	for i, name := range names {
		if strings.EqualFold(name, port) {
			return i, true
		}
	}
	return 0, false
}

// findOutput resolves "node[:port]" to an output connection.
func findOutput(g *scheme.Graph, ref string) (*scheme.Output, error) {
	nodeRef, port := splitPortRef(ref)
	n, err := findNode(g, nodeRef)
	if err != nil {
		return nil, err
	}
	outs := n.Outputs()
	names := make([]string, len(outs))
	for i, out := range outs {
		names[i] = out.Name()
	}
	i, ok := portIndex(port, names)
	if !ok {
		return nil, nfberrors.New(nfberrors.ErrCodeNotFound, "node %q has no output %q", n.Title(), port)
	}
	return outs[i], nil
}

// findInput resolves "node[:port]" to an input connection.
func findInput(g *scheme.Graph, ref string) (*scheme.Input, error) {
	nodeRef, port := splitPortRef(ref)
	n, err := findNode(g, nodeRef)
	if err != nil {
		return nil, err
	}
	ins := n.Inputs()
	names := make([]string, len(ins))
	for i, in := range ins {
		names[i] = in.Name()
	}
	i, ok := portIndex(port, names)
	if !ok {
		return nil, nfberrors.New(nfberrors.ErrCodeNotFound, "node %q has no input %q", n.Title(), port)
	}
	return ins[i], nil
}

// parsePoint parses "x,y".
func parsePoint(s string) (scheme.Point, error) {
	xs, ys, ok := strings.Cut(s, ",")
	if !ok {
		return scheme.Point{}, nfberrors.New(nfberrors.ErrCodeInvalidInput, "position must be x,y: %q", s)
	}
	x, err := strconv.ParseFloat(strings.TrimSpace(xs), 64)
	if err != nil {
		return scheme.Point{}, nfberrors.Wrap(nfberrors.ErrCodeInvalidInput, err, "position x")
	}
	y, err := strconv.ParseFloat(strings.TrimSpace(ys), 64)
	if err != nil {
		return scheme.Point{}, nfberrors.Wrap(nfberrors.ErrCodeInvalidInput, err, "position y")
	}
	return scheme.Pt(x, y), nil
}
