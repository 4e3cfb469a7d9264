package network

import (
	"slices"

	"github.com/dsai-cliques/cliques/pkg/errors"
)

// NameToID resolves a display name to a person ID.
//
// Display names are assumed unique. If they are not, NameToID returns an
// AMBIGUOUS_NAME error listing the candidates rather than choosing one.
// An unknown name is a NOT_FOUND error. The network must be frozen.
func (n *Network) NameToID(name string) (string, error) {
	if !n.frozen {
		return "", errors.New(errors.ErrCodeInternal, "name lookup before freeze")
	}
	ids := n.nameToID[name]
	switch len(ids) {
	case 0:
		return "", errors.New(errors.ErrCodeNotFound, "no person named %q", name)
	case 1:
		return ids[0], nil
	default:
		return "", errors.New(errors.ErrCodeAmbiguousName, "name %q is shared by %d people (%v)", name, len(ids), ids)
	}
}

// IDToName returns the display name of a person.
func (n *Network) IDToName(id string) (string, error) {
	if !n.frozen {
		return "", errors.New(errors.ErrCodeInternal, "name lookup before freeze")
	}
	name, ok := n.idToName[id]
	if !ok {
		return "", notFound(id)
	}
	return name, nil
}

// Names returns every distinct display name sorted ascending.
func (n *Network) Names() []string {
	names := make([]string, 0, len(n.people))
	seen := make(map[string]bool, len(n.people))
	for _, id := range n.order {
		name := n.people[id].Name
		if !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}
	slices.Sort(names)
	return names
}

// DuplicateNames returns the display names shared by more than one person,
// sorted ascending. It is empty for well-formed datasets.
func (n *Network) DuplicateNames() []string {
	counts := make(map[string]int, len(n.people))
	for _, id := range n.order {
		counts[n.people[id].Name]++
	}
	var dups []string
	for name, c := range counts {
		if c > 1 {
			dups = append(dups, name)
		}
	}
	slices.Sort(dups)
	return dups
}
