package scheme

import (
	"fmt"
	"slices"

	nfberrors "github.com/matzehuels/nfbstudio/pkg/errors"
)

// DataType describes what kind of signal flows through a connection.
//
// A type is identified by its numeric tag: two values built with the same
// tag are the same type. Each type declares the set of source types it
// accepts conversion from.
type DataType struct {
	id     int
	name   string
	accept []*DataType
}

// Unknown is the wildcard type. It is convertible to and from every type
// and is used by generic passthrough nodes.
var Unknown = &DataType{id: 0, name: "unknown"}

// NewDataType declares a type with the given tag and name that accepts
// conversion from each of convertibleFrom.
func NewDataType(id int, name string, convertibleFrom ...*DataType) *DataType {
	t := &DataType{id: id, name: name}
	t.Accept(convertibleFrom...)
	return t
}

// ID returns the numeric tag.
func (t *DataType) ID() int { return t.id }

// Name returns the display name.
func (t *DataType) Name() string { return t.name }

func (t *DataType) String() string {
	if t == nil {
		return "<none>"
	}
	if t.name == "" {
		return fmt.Sprintf("type %d", t.id)
	}
	return fmt.Sprintf("%s (%d)", t.name, t.id)
}

// Accept adds source types this type converts from. Nil entries and
// duplicates are ignored.
func (t *DataType) Accept(from ...*DataType) {
	for _, f := range from {
		if f != nil && !slices.Contains(t.accept, f) {
			t.accept = append(t.accept, f)
		}
	}
}

// Is reports whether t and u carry the same tag.
func (t *DataType) Is(u *DataType) bool {
	return t != nil && u != nil && t.id == u.id
}

// ConvertibleFrom returns the directly declared source types.
func (t *DataType) ConvertibleFrom() []*DataType { return slices.Clone(t.accept) }

// Convertible reports whether data of type from may flow into a connection
// of type to. It holds when the types are the same, when either is
// [Unknown], or when to accepts from through a chain of declarations.
//
// A cycle in the declarations makes the answer false; use
// [CheckConvertible] to observe the cycle as an error.
func Convertible(from, to *DataType) bool {
	ok, err := CheckConvertible(from, to)
	return err == nil && ok
}

// CheckConvertible is [Convertible] with cycle reporting. The closure over
// accepted-from declarations is computed at query time with a
// white/gray/black depth-first search, so a cycle reachable from to is
// detected and returned as an INVALID_CONFIG error.
func CheckConvertible(from, to *DataType) (bool, error) {
	if from == nil || to == nil {
		return false, nil
	}
	if from.Is(to) || from.Is(Unknown) || to.Is(Unknown) {
		return true, nil
	}

	const (
		white = iota
		gray
		black
	)

	color := make(map[*DataType]int)
	found := false

	var visit func(t *DataType) error
	visit = func(t *DataType) error {
		color[t] = gray
		for _, src := range t.accept {
			switch color[src] {
			case gray:
				return nfberrors.New(nfberrors.ErrCodeInvalidConfig,
					"data type %s has a conversion cycle through %s", to, src)
			case white:
				if src.Is(from) {
					found = true
				}
				if err := visit(src); err != nil {
					return err
				}
			}
		}
		color[t] = black
		return nil
	}

	if err := visit(to); err != nil {
		return false, err
	}
	return found, nil
}

// checkTypes returns nil when from may feed to, the cycle error when the
// declarations are broken, and a TYPE_MISMATCH error otherwise.
func checkTypes(from, to *DataType) error {
	ok, err := CheckConvertible(from, to)
	if err != nil {
		return err
	}
	if !ok {
		return typeMismatch(from, to)
	}
	return nil
}
