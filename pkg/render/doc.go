// Package render groups the static renderers for network scenes.
//
// The interactive view is drawn by vis-network in the browser from the
// [scene.Scene] that the render pass produces. The subpackages here turn the
// same scene into files:
//
//   - [nodelink]: Graphviz DOT, SVG and PNG node-link diagrams
//
// [scene.Scene]: https://pkg.go.dev/github.com/dsai-cliques/cliques/pkg/scene#Scene
// [nodelink]: https://pkg.go.dev/github.com/dsai-cliques/cliques/pkg/render/nodelink
package render
