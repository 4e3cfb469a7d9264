// Package nodelink exports a scene as a static node-link diagram.
//
// # Overview
//
// The browser view is interactive, but a scene can also be written out as
// Graphviz DOT or rendered to SVG or PNG in-process, for sharing or for
// embedding in documents. The export draws the same nodes, edges and emphasis
// as the interactive view.
//
// # Usage
//
//	dot := nodelink.ToDOT(sc)
//	svg, err := nodelink.RenderSVG(ctx, dot)
//	png, err := nodelink.RenderPNG(ctx, dot)
//
// # DOT Format
//
// The generated DOT is an undirected graph laid out with the spring model
// (neato), the closest static analogue to the browser's force-directed
// physics. The emphasized node is drawn larger and bold; edges carry their
// relationship type as label and their weight as pen width.
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// and PNG rendering; no Graphviz installation is needed.
package nodelink
