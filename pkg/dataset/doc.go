// Package dataset loads the people and relationships that make up a network.
//
// A dataset is a single structured record with two lists:
//
//	{
//	  "people": [{"id": "a", "name": "Ann", "origin": "Oslo"}],
//	  "relationships": [{"source": "a", "target": "b", "type": "mentor", "weight": 2}]
//	}
//
// JSON and YAML encodings are supported ([ReadFile] picks the decoder from
// the file extension). Records are validated structurally (required fields,
// well-formed IDs) but referential integrity is left to the network package,
// which rejects relationships whose endpoints are unknown.
//
// # Defaults
//
//   - Person.Origin and Person.Language default to the empty string.
//   - Relationship.Type defaults to the empty string.
//   - Relationship.Weight defaults to 1 when the field is absent.
//
// # Sources
//
// A [Source] produces a dataset on demand. [FileSource] reads a local file,
// [MongoSource] reads the "people" and "relationships" collections of a
// MongoDB database. [Watch] reports changes to a dataset file so a server can
// rebuild its network.
package dataset
