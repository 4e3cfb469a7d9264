package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/dsai-cliques/cliques/pkg/cache"
	"github.com/dsai-cliques/cliques/pkg/errors"
	"github.com/dsai-cliques/cliques/pkg/network"
	"github.com/dsai-cliques/cliques/pkg/observability"
	"github.com/dsai-cliques/cliques/pkg/panel"
	"github.com/dsai-cliques/cliques/pkg/render/nodelink"
	"github.com/dsai-cliques/cliques/pkg/scene"
	"github.com/dsai-cliques/cliques/pkg/selection"
)

// Snapshot is a frozen network together with its content hash.
type Snapshot struct {
	Network *network.Network
	Hash    string
}

// NewSnapshot hashes net once so repeated passes can reuse the cache key.
func NewSnapshot(net *network.Network) (Snapshot, error) {
	hash, err := NetworkHash(net)
	if err != nil {
		return Snapshot{}, err
	}
	return Snapshot{Network: net, Hash: hash}, nil
}

// Runner encapsulates render passes with caching.
// Both the CLI and the HTTP server use it.
//
// The Runner is stateless except for the cache and logger. Multiple
// goroutines can safely use the same Runner with different snapshots.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Select resolves input against the snapshot and runs a render pass.
// A lookup failure (NOT_FOUND, AMBIGUOUS_NAME) or invalid input returns a
// result whose panel carries the user message and whose scene is empty,
// together with the error.
func (r *Runner) Select(ctx context.Context, snap Snapshot, input string, opts scene.Options) (Result, error) {
	sel, err := selection.Resolve(snap.Network, input)
	if err != nil {
		observability.Render().OnSelectionError(ctx, string(errors.GetCode(err)))
		r.Logger.Debug("selection failed", "input", input, "error", err)
		return Result{ID: uuid.NewString(), Selection: input, Panel: panel.ErrorPanel(err)}, err
	}
	return r.Render(ctx, snap, sel, opts)
}

// Render runs a render pass with caching.
func (r *Runner) Render(ctx context.Context, snap Snapshot, sel selection.Selection, opts scene.Options) (Result, error) {
	res, _, err := r.RenderWithCacheInfo(ctx, snap, sel, opts)
	return res, err
}

// RenderWithCacheInfo runs a render pass and reports whether the result came
// from the cache.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, snap Snapshot, sel selection.Selection, opts scene.Options) (Result, bool, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, false, err
	}
	opts = opts.WithDefaults()
	selectedID, _ := sel.ID()
	start := time.Now()

	key := r.Keyer.RenderKey(snap.Hash, selectedID, renderKeyOpts(opts))
	if snap.Hash != "" {
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			var cached Result
			if err := cache.Decode(data, &cached); err == nil {
				observability.Cache().OnCacheHit(ctx, "render")
				cached.ID = uuid.NewString()
				r.Logger.Debug("render pass from cache", "id", cached.ID, "selection", cached.Selection)
				observability.Render().OnRenderPass(ctx, sel.IsSelected(), time.Since(start), nil)
				return cached, true, nil
			}
			// Undecodable entries fall through to recompute.
		}
		observability.Cache().OnCacheMiss(ctx, "render")
	}

	res, err := RenderPass(snap.Network, sel, opts)
	duration := time.Since(start)
	observability.Render().OnRenderPass(ctx, sel.IsSelected(), duration, err)
	if err != nil {
		return Result{}, false, err
	}
	res.ID = uuid.NewString()

	r.Logger.Debug("render pass",
		"id", res.ID,
		"selection", res.Selection,
		"nodes", len(res.Scene.Nodes),
		"edges", len(res.Scene.Edges),
		"duration", duration)

	if snap.Hash != "" {
		if data, err := cache.Encode(res); err == nil {
			if err := r.Cache.Set(ctx, key, data, cache.TTLRender); err == nil {
				observability.Cache().OnCacheSet(ctx, "render", len(data))
			} else {
				r.Logger.Warn("cache write failed", "error", err)
			}
		}
	}
	return res, false, nil
}

// Export lays out sc with Graphviz and returns it as "svg" or "png",
// caching by scene content and format.
func (r *Runner) Export(ctx context.Context, sc scene.Scene, format string) ([]byte, error) {
	var renderFn func(context.Context, string) ([]byte, error)
	switch format {
	case "svg":
		renderFn = nodelink.RenderSVG
	case "png":
		renderFn = nodelink.RenderPNG
	default:
		return nil, errors.New(errors.ErrCodeUnsupported, "unsupported export format %q", format)
	}

	dot := nodelink.ToDOT(sc)
	key := r.Keyer.ExportKey(cache.Hash([]byte(dot)), format)

	if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
		observability.Cache().OnCacheHit(ctx, "export")
		return data, nil
	}
	observability.Cache().OnCacheMiss(ctx, "export")

	start := time.Now()
	data, err := renderFn(ctx, dot)
	if err != nil {
		return nil, fmt.Errorf("render %s: %w", format, err)
	}
	r.Logger.Info("rendered export",
		"format", format,
		"nodes", len(sc.Nodes),
		"bytes", len(data),
		"duration", time.Since(start))

	if err := r.Cache.Set(ctx, key, data, cache.TTLExport); err == nil {
		observability.Cache().OnCacheSet(ctx, "export", len(data))
	}
	return data, nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}
