// Package selection tracks which single person, if any, the user is
// inspecting.
//
// A [Selection] is either Unselected (the zero value) or Selected(id).
// UI input arrives as a display name or the [None] sentinel and is resolved
// against a frozen network with [Resolve]. A name that does not resolve is an
// error; it never falls back to Unselected.
package selection

import (
	"sync"

	"github.com/dsai-cliques/cliques/pkg/errors"
	"github.com/dsai-cliques/cliques/pkg/network"
)

// None is the selection control entry meaning "nobody selected".
const None = "(none)"

// Selection is the current choice: no one, or exactly one person ID.
type Selection struct {
	id string
}

// Unselected is the initial selection.
var Unselected = Selection{}

// Selected returns a selection of the person with the given ID.
func Selected(id string) Selection { return Selection{id: id} }

// ID returns the selected person ID and whether anyone is selected.
func (s Selection) ID() (string, bool) { return s.id, s.id != "" }

// IsSelected reports whether a person is selected.
func (s Selection) IsSelected() bool { return s.id != "" }

// String returns the ID, or None when unselected.
func (s Selection) String() string {
	if s.id == "" {
		return None
	}
	return s.id
}

// Resolve turns selection control input into a Selection.
// Empty input and [None] mean Unselected. Any other input is looked up with
// [network.Network.NameToID], so unknown names are NOT_FOUND and shared
// names are AMBIGUOUS_NAME.
func Resolve(net *network.Network, input string) (Selection, error) {
	if err := errors.ValidateSelectionInput(input); err != nil {
		return Unselected, err
	}
	if input == "" || input == None {
		return Unselected, nil
	}
	id, err := net.NameToID(input)
	if err != nil {
		return Unselected, err
	}
	return Selected(id), nil
}

// Options returns the entries of the selection control: None followed by every
// display name sorted ascending.
func Options(net *network.Network) []string {
	return append([]string{None}, net.Names()...)
}

// Listener is notified after the selection changes.
type Listener func(old, new Selection)

// State holds the current selection and notifies listeners on change.
// It is meant to have a single writer; the mutex only guards against readers
// on other goroutines observing a torn update.
type State struct {
	mu        sync.RWMutex
	current   Selection
	listeners []Listener
}

// NewState returns a State starting Unselected.
func NewState() *State {
	return &State{}
}

// Current returns the current selection.
func (s *State) Current() Selection {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Subscribe registers fn to be called after every change.
func (s *State) Subscribe(fn Listener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, fn)
}

// Set resolves input against net and transitions to the result. On error the
// current selection is left unchanged and no listener is called. Listeners
// are only called when the selection actually changes.
func (s *State) Set(net *network.Network, input string) (Selection, error) {
	next, err := Resolve(net, input)
	if err != nil {
		return s.Current(), err
	}
	s.Apply(next)
	return next, nil
}

// Apply transitions to sel without resolving a name.
func (s *State) Apply(sel Selection) {
	s.mu.Lock()
	old := s.current
	s.current = sel
	listeners := append([]Listener(nil), s.listeners...)
	s.mu.Unlock()

	if old == sel {
		return
	}
	for _, fn := range listeners {
		fn(old, sel)
	}
}
