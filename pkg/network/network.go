package network

import (
	"fmt"
	"iter"
	"slices"

	"github.com/dsai-cliques/cliques/pkg/dataset"
	"github.com/dsai-cliques/cliques/pkg/errors"
)

// Network is an undirected multigraph keyed by person ID.
//
// The zero value is not usable; use [New] or [FromDataset].
type Network struct {
	people map[string]dataset.Person
	order  []string // person IDs in first-insertion order
	rels   []dataset.Relationship
	adj    map[string][]int // person ID -> indices into rels, insertion order

	frozen   bool
	idToName map[string]string
	nameToID map[string][]string
}

// New creates an empty, unfrozen network.
func New() *Network {
	return &Network{
		people: make(map[string]dataset.Person),
		adj:    make(map[string][]int),
	}
}

// FromDataset builds and freezes a network from a decoded dataset.
// People are added before relationships, so a relationship may reference any
// person in the dataset regardless of position. The first relationship with
// an unknown endpoint aborts the build with a REFERENTIAL error.
func FromDataset(ds *dataset.Dataset) (*Network, error) {
	n := New()
	for i, p := range ds.People {
		if err := n.AddPerson(p); err != nil {
			return nil, fmt.Errorf("people[%d]: %w", i, err)
		}
	}
	for i, r := range ds.Relationships {
		if err := n.AddRelationship(r); err != nil {
			return nil, fmt.Errorf("relationships[%d]: %w", i, err)
		}
	}
	n.Freeze()
	return n, nil
}

// AddPerson inserts a person keyed by ID. An existing ID is overwritten.
func (n *Network) AddPerson(p dataset.Person) error {
	if n.frozen {
		return errFrozen()
	}
	if err := errors.ValidatePersonID(p.ID); err != nil {
		return err
	}
	if _, ok := n.people[p.ID]; !ok {
		n.order = append(n.order, p.ID)
	}
	n.people[p.ID] = p
	return nil
}

// AddRelationship inserts an undirected edge between r.Source and r.Target.
// Returns a REFERENTIAL error, and inserts nothing, if either endpoint is not
// a known person. Duplicate relationships are kept as parallel edges.
func (n *Network) AddRelationship(r dataset.Relationship) error {
	if n.frozen {
		return errFrozen()
	}
	for _, id := range []string{r.Source, r.Target} {
		if _, ok := n.people[id]; !ok {
			return errors.New(errors.ErrCodeReferential,
				"relationship %s-%s references unknown person %q", r.Source, r.Target, id)
		}
	}
	idx := len(n.rels)
	n.rels = append(n.rels, r)
	n.adj[r.Source] = append(n.adj[r.Source], idx)
	if r.Target != r.Source {
		n.adj[r.Target] = append(n.adj[r.Target], idx)
	}
	return nil
}

// Freeze builds the name lookup tables and makes the network read-only.
// Calling Freeze more than once has no effect.
func (n *Network) Freeze() {
	if n.frozen {
		return
	}
	n.idToName = make(map[string]string, len(n.people))
	n.nameToID = make(map[string][]string, len(n.people))
	for _, id := range n.order {
		name := n.people[id].Name
		n.idToName[id] = name
		n.nameToID[name] = append(n.nameToID[name], id)
	}
	n.frozen = true
}

// Frozen reports whether Freeze has been called.
func (n *Network) Frozen() bool { return n.frozen }

// NeighborsOf returns the IDs adjacent to id in the insertion order of their
// first connecting edge. Parallel relationships yield the neighbor once. The
// sequence is empty for isolated people; an unknown id is a NOT_FOUND error.
func (n *Network) NeighborsOf(id string) (iter.Seq[string], error) {
	if _, ok := n.people[id]; !ok {
		return nil, notFound(id)
	}
	edges := n.adj[id]
	return func(yield func(string) bool) {
		seen := make(map[string]bool, len(edges))
		for _, idx := range edges {
			r := n.rels[idx]
			other := r.Target
			if other == id {
				other = r.Source
			}
			if seen[other] {
				continue
			}
			seen[other] = true
			if !yield(other) {
				return
			}
		}
	}, nil
}

// AttributesOf returns the person record for id.
func (n *Network) AttributesOf(id string) (dataset.Person, error) {
	p, ok := n.people[id]
	if !ok {
		return dataset.Person{}, notFound(id)
	}
	return p, nil
}

// EdgeAttributes returns the relationship between a and b, in either
// direction. When several connect the pair, the last inserted wins.
func (n *Network) EdgeAttributes(a, b string) (dataset.Relationship, error) {
	adj := n.adj[a]
	for i := len(adj) - 1; i >= 0; i-- {
		r := n.rels[adj[i]]
		if (r.Source == a && r.Target == b) || (r.Source == b && r.Target == a) {
			return r, nil
		}
	}
	return dataset.Relationship{}, errors.New(errors.ErrCodeNotFound, "no relationship between %q and %q", a, b)
}

// HasPerson reports whether id is a known person.
func (n *Network) HasPerson(id string) bool {
	_, ok := n.people[id]
	return ok
}

// People returns every person in first-insertion order.
func (n *Network) People() []dataset.Person {
	out := make([]dataset.Person, len(n.order))
	for i, id := range n.order {
		out[i] = n.people[id]
	}
	return out
}

// Relationships returns every relationship in insertion order.
func (n *Network) Relationships() []dataset.Relationship {
	return slices.Clone(n.rels)
}

// PersonCount returns the number of distinct people.
func (n *Network) PersonCount() int { return len(n.order) }

// RelationshipCount returns the number of relationships, duplicates included.
func (n *Network) RelationshipCount() int { return len(n.rels) }

// Dataset exports the network as a dataset: one person per ID with its final
// attributes, relationships in insertion order.
func (n *Network) Dataset() *dataset.Dataset {
	return &dataset.Dataset{People: n.People(), Relationships: n.Relationships()}
}

func notFound(id string) error {
	return errors.New(errors.ErrCodeNotFound, "unknown person id %q", id)
}

func errFrozen() error {
	return errors.New(errors.ErrCodeInternal, "network is frozen")
}
