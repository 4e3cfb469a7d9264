// Package pipeline runs the render pass that keeps the detail panel and the
// graph scene in sync with the current selection.
//
// A render pass is a pure function of a frozen network, a selection and scene
// options:
//
//	res, err := pipeline.RenderPass(net, sel, scene.DefaultOptions())
//
// Both outputs come from the same selection, so the panel and the emphasized
// node always agree.
//
// [Runner] wraps the pass with a result cache, logging and observability
// hooks. [Session] owns one selection and the last good result, for
// interactive front ends where a failed lookup must leave the view as it was.
package pipeline

import (
	"fmt"

	"github.com/dsai-cliques/cliques/pkg/cache"
	"github.com/dsai-cliques/cliques/pkg/network"
	"github.com/dsai-cliques/cliques/pkg/panel"
	"github.com/dsai-cliques/cliques/pkg/scene"
	"github.com/dsai-cliques/cliques/pkg/selection"
)

// Result is the output of one render pass.
type Result struct {
	// ID identifies the pass in logs and API responses. RenderPass leaves it
	// empty; Runner and Session assign a fresh UUID per pass.
	ID string `json:"id" msgpack:"-"`
	// SelectedID is the selected person ID, empty when unselected.
	SelectedID string `json:"selected_id,omitempty" msgpack:"selected_id"`
	// Selection is the selection control entry: a display name or "(none)".
	Selection string      `json:"selection" msgpack:"selection"`
	Panel     panel.Panel `json:"panel" msgpack:"panel"`
	Scene     scene.Scene `json:"scene" msgpack:"scene"`
}

// RenderPass produces the panel and scene for sel. It does not mutate net and
// returns identical results for identical inputs.
func RenderPass(net *network.Network, sel selection.Selection, opts scene.Options) (Result, error) {
	p, err := panel.Render(net, sel)
	if err != nil {
		return Result{}, fmt.Errorf("panel: %w", err)
	}

	res := Result{
		Selection: selection.None,
		Panel:     p,
		Scene:     scene.Build(net, sel, opts),
	}
	if id, ok := sel.ID(); ok {
		res.SelectedID = id
		res.Selection = p.Name
	}
	return res, nil
}

// NetworkHash identifies the contents of net for cache keys. Two networks
// built from equal datasets hash the same.
func NetworkHash(net *network.Network) (string, error) {
	data, err := net.Dataset().JSON()
	if err != nil {
		return "", fmt.Errorf("hash network: %w", err)
	}
	return cache.Hash(data), nil
}

func renderKeyOpts(opts scene.Options) cache.RenderKeyOpts {
	return cache.RenderKeyOpts{
		NodeSize:     opts.NodeSize,
		EmphasisSize: opts.EmphasisSize,
		Background:   opts.Background,
		FontColor:    opts.FontColor,
	}
}
