// Package scene translates a network into the node and edge lists consumed by
// the browser's force-directed renderer (vis-network).
//
// The adapter owns two things only: the data translation and the emphasis
// rule. Layout is left entirely to the renderer's physics engine.
//
// # Translation
//
//   - Every person becomes a [Node] with its ID, its name as label, and its
//     origin as tooltip metadata.
//   - Every relationship becomes an [Edge] with its type as label and tooltip
//     and its weight as the vis-network "value" (edge thickness).
//
// # Emphasis
//
// When a person is selected, exactly that node is drawn at
// [Options.EmphasisSize]; every other node uses [Options.NodeSize].
//
// # Determinism
//
// [Build] lists nodes in person insertion order and edges in relationship
// insertion order, so identical inputs produce identical scenes. Any random
// layout seed belongs to the renderer.
package scene
