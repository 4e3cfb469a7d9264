// Package network holds the in-memory undirected graph of people and their
// relationships.
//
// # Building
//
// A [Network] is built once per render session, either incrementally with
// [Network.AddPerson] and [Network.AddRelationship] followed by
// [Network.Freeze], or in one step with [FromDataset]:
//
//	net, err := network.FromDataset(ds)
//	if errors.Is(err, errors.ErrCodeReferential) {
//	    // a relationship names an unknown person: abort
//	}
//
// Relationships must reference people that were already added; an unknown
// endpoint is a REFERENTIAL error and nothing is inserted. Adding a person
// twice overwrites the earlier attributes (last write wins) while keeping its
// original position in node order.
//
// # Queries
//
//   - [Network.NeighborsOf]: lazy sequence of adjacent IDs in edge order
//   - [Network.AttributesOf]: the person record for an ID
//   - [Network.EdgeAttributes]: the relationship joining two IDs
//   - [Network.NameToID], [Network.IDToName]: display name lookups
//
// Unknown IDs and names yield NOT_FOUND errors. Display names are expected to
// be unique; when two people share a name, [Network.NameToID] refuses to pick
// one and returns an AMBIGUOUS_NAME error instead.
//
// # Concurrency
//
// A frozen Network is read-only and safe for concurrent readers. Building is
// not safe for concurrent use.
package network
