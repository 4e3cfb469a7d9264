// Package pkg provides the core libraries for the cliques network viewer.
//
// # Overview
//
// Cliques draws a small social network (people and their pairwise
// relationships) as an interactive force-directed graph, next to a sidebar
// where one person can be selected and inspected. The pkg directory is
// organized into three areas:
//
//  1. Domain model ([dataset], [network], [selection])
//  2. Views ([panel], [scene], [render/nodelink])
//  3. Orchestration and infrastructure ([pipeline], [cache], [observability])
//
// # Architecture
//
// The data flow for one interaction:
//
//	Dataset file / MongoDB
//	         ↓
//	    [dataset] package (decode + validate records)
//	         ↓
//	    [network] package (undirected graph, name lookups)
//	         ↓
//	    [selection] package (resolve the chosen name)
//	         ↓
//	    [pipeline] package (render pass: panel + scene)
//	         ↓
//	    browser (vis-network), terminal, JSON, DOT, SVG or PNG
//
// # Quick Start
//
// Load a dataset and render the view for one person:
//
//	import (
//	    "github.com/dsai-cliques/cliques/pkg/dataset"
//	    "github.com/dsai-cliques/cliques/pkg/network"
//	    "github.com/dsai-cliques/cliques/pkg/pipeline"
//	    "github.com/dsai-cliques/cliques/pkg/selection"
//	)
//
//	ds, _ := dataset.FileSource{Path: "network.json"}.Load(ctx)
//	net, _ := network.FromDataset(ds)
//	sel, _ := selection.Resolve(net, "Ann")
//	res, _ := pipeline.RenderPass(net, sel, scene.DefaultOptions())
//	fmt.Println(res.Panel.Markdown())
//
// # Main Packages
//
// [errors] - Coded errors (NOT_FOUND, REFERENTIAL, AMBIGUOUS_NAME, ...) shared
// by the CLI and the HTTP UI.
//
// [pipeline] - The render pass and the [pipeline.Session] that keeps the last
// good result when a lookup fails. [pipeline.Runner] adds caching and hooks.
//
// [cache] - File, memory, Redis and null cache backends behind one interface.
//
// [observability] - Hook interfaces with no-op defaults and a Prometheus
// implementation.
//
// [buildinfo] - Version information set at link time.
//
// [dataset]: https://pkg.go.dev/github.com/dsai-cliques/cliques/pkg/dataset
// [network]: https://pkg.go.dev/github.com/dsai-cliques/cliques/pkg/network
// [selection]: https://pkg.go.dev/github.com/dsai-cliques/cliques/pkg/selection
// [panel]: https://pkg.go.dev/github.com/dsai-cliques/cliques/pkg/panel
// [scene]: https://pkg.go.dev/github.com/dsai-cliques/cliques/pkg/scene
// [render/nodelink]: https://pkg.go.dev/github.com/dsai-cliques/cliques/pkg/render/nodelink
// [pipeline]: https://pkg.go.dev/github.com/dsai-cliques/cliques/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/dsai-cliques/cliques/pkg/cache
// [observability]: https://pkg.go.dev/github.com/dsai-cliques/cliques/pkg/observability
// [errors]: https://pkg.go.dev/github.com/dsai-cliques/cliques/pkg/errors
// [buildinfo]: https://pkg.go.dev/github.com/dsai-cliques/cliques/pkg/buildinfo
package pkg
