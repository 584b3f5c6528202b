package scheme

import "slices"

// Item is anything a [Canvas] displays: a *Node or an *Edge.
type Item interface {
	sceneItem()
}

func (*Node) sceneItem() {}
func (*Edge) sceneItem() {}

// Canvas is the presentation side of a [Scene]. The scene calls AddItem
// after an item joined the graph and RemoveItem after it left, so a
// canvas never has to consult the graph.
type Canvas interface {
	AddItem(it Item)
	RemoveItem(it Item)
	Items() []Item
}

// ItemSet is an in-memory [Canvas] that records items in insertion order.
type ItemSet struct {
	items []Item
	index map[Item]struct{}
}

// NewItemSet returns an empty canvas.
func NewItemSet() *ItemSet {
	return &ItemSet{index: make(map[Item]struct{})}
}

func (s *ItemSet) AddItem(it Item) {
	if s.Contains(it) {
		return
	}
	if s.index == nil {
		s.index = make(map[Item]struct{})
	}
	s.items = append(s.items, it)
	s.index[it] = struct{}{}
}

func (s *ItemSet) RemoveItem(it Item) {
	if !s.Contains(it) {
		return
	}
	s.items = slices.DeleteFunc(s.items, func(x Item) bool { return x == it })
	delete(s.index, it)
}

func (s *ItemSet) Items() []Item { return slices.Clone(s.items) }

// Contains reports whether it is on the canvas.
func (s *ItemSet) Contains(it Item) bool {
	_, ok := s.index[it]
	return ok
}

// Len returns the number of items.
func (s *ItemSet) Len() int { return len(s.items) }
