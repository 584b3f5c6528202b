package scheme

import (
	"fmt"
	"slices"

	"github.com/matzehuels/nfbstudio/pkg/export"

	nfberrors "github.com/matzehuels/nfbstudio/pkg/errors"
)

// Config is the kind-specific state of a node.
//
// Implementations are pointers to plain structs. They are persisted with
// encoding/json, so exported fields carry json tags, and a document is
// decoded into the default value produced by the kind's builder.
type Config interface {
	// Kind returns the registered kind name.
	Kind() string
	// AddExportData contributes this stage's fields to the signal being
	// flattened for export.
	AddExportData(signal *export.Fields)
	// Validate reports configuration values the runtime would reject.
	Validate() error
}

// Builder returns a new node of one kind with its connections and
// default configuration.
type Builder func() *Node

var kinds = map[string]Builder{}

// RegisterKind adds a node kind. It is meant to be called from init and
// panics on an empty name, a nil builder or a duplicate registration.
func RegisterKind(kind string, build Builder) {
	switch {
	case kind == "":
		panic("scheme: RegisterKind with empty kind")
	case build == nil:
		panic("scheme: RegisterKind with nil builder for " + kind)
	}
	if _, dup := kinds[kind]; dup {
		panic("scheme: RegisterKind called twice for " + kind)
	}
	kinds[kind] = build
}

// Kinds returns the registered kind names, sorted.
func Kinds() []string {
	names := make([]string, 0, len(kinds))
	for k := range kinds {
		names = append(names, k)
	}
	slices.Sort(names)
	return names
}

// NewNodeOfKind builds a node of a registered kind. An unregistered kind
// is a NOT_FOUND error.
func NewNodeOfKind(kind string) (*Node, error) {
	build, ok := kinds[kind]
	if !ok {
		return nil, nfberrors.New(nfberrors.ErrCodeNotFound, "unknown node kind %q", kind)
	}
	n := build()
	if n == nil || n.Kind() != kind {
		return nil, nfberrors.New(nfberrors.ErrCodeInternal,
			"builder for %q produced %s", kind, describeKind(n))
	}
	return n, nil
}

func describeKind(n *Node) string {
	if n == nil {
		return "no node"
	}
	return fmt.Sprintf("a node of kind %q", n.Kind())
}
