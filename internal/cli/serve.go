package cli

import (
	"context"
	"errors"
	"fmt"
	"net"

	"github.com/spf13/cobra"

	"github.com/dsai-cliques/cliques/internal/server"
	"github.com/dsai-cliques/cliques/pkg/cache"
	"github.com/dsai-cliques/cliques/pkg/dataset"
	"github.com/dsai-cliques/cliques/pkg/observability"
	"github.com/dsai-cliques/cliques/pkg/pipeline"
)

// redisKeyPrefix scopes render results in a shared Redis.
const redisKeyPrefix = appName + ":"

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	cfg := defaultConfig()
	var noCache bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the interactive network viewer",
		Long: `Serve the interactive network viewer over HTTP.

The page shows the whole network as a force-directed graph. Choosing a person
in the sidebar enlarges their node and lists their origin, native language
and direct connections.`,
		Example: `  cliques serve -d network.json
  cliques serve -d network.yaml --listen :9000 --watch
  cliques serve --mongo-uri mongodb://localhost:27017 --mongo-database cliques`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.resolveConfig(cmd, &cfg); err != nil {
				return err
			}
			return c.runServe(cmd.Context(), cfg, noCache)
		},
	}

	addDatasetFlags(cmd, &cfg)
	addSceneFlags(cmd, &cfg)
	cmd.Flags().StringVar(&cfg.Listen, "listen", cfg.Listen, "address to listen on")
	cmd.Flags().StringVar(&cfg.Title, "title", "", "sidebar title")
	cmd.Flags().BoolVarP(&cfg.Watch, "watch", "w", false, "reload the dataset file when it changes")
	cmd.Flags().StringVar(&cfg.RedisURL, "redis-url", "", "cache render results in Redis (redis://host:port/db)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable render result caching")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, cfg Config, noCache bool) error {
	logger := loggerFromContext(ctx)

	metrics := observability.NewPrometheus()
	observability.SetRenderHooks(metrics)
	observability.SetCacheHooks(metrics)
	observability.SetHTTPHooks(metrics)

	src := source(cfg)
	snap, err := loadSnapshot(ctx, src)
	if err != nil {
		return err
	}

	runner, err := c.newServeRunner(ctx, cfg, noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	srv := server.New(snap, server.Config{
		Title:   cfg.Title,
		Scene:   cfg.SceneOptions(),
		Runner:  runner,
		Metrics: metrics.Handler(),
		Logger:  logger,
	})

	if cfg.Watch {
		fs, ok := src.(dataset.FileSource)
		if !ok {
			return fmt.Errorf("--watch needs a dataset file, not %s", src)
		}
		go c.watchDataset(ctx, fs.Path, srv)
	}

	return srv.ListenAndServe(ctx, cfg.Listen, func(addr net.Addr) {
		printSuccess("Serving %s", StyleLink.Render("http://"+displayAddr(addr)))
		printDetail("Press Ctrl+C to stop")
	})
}

// newServeRunner picks the render cache: Redis when configured, otherwise
// process memory.
func (c *CLI) newServeRunner(ctx context.Context, cfg Config, noCache bool) (*pipeline.Runner, error) {
	logger := loggerFromContext(ctx)
	switch {
	case noCache:
		return pipeline.NewRunner(cache.NewNullCache(), nil, logger), nil
	case cfg.RedisURL != "":
		rc, err := cache.NewRedisCache(ctx, cfg.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("connect redis: %w", err)
		}
		logger.Info("caching render results in redis")
		return pipeline.NewRunner(rc, cache.NewScopedKeyer(nil, redisKeyPrefix), logger), nil
	default:
		return pipeline.NewRunner(cache.NewMemoryCache(0), nil, logger), nil
	}
}

// watchDataset rebuilds the network whenever the dataset file changes.
// A dataset that fails to build is logged and the current network kept.
func (c *CLI) watchDataset(ctx context.Context, path string, srv *server.Server) {
	logger := loggerFromContext(ctx)
	err := dataset.Watch(ctx, path, logger, func(ds *dataset.Dataset) {
		snap, err := buildSnapshot(ctx, ds)
		people, rels := ds.Counts()
		observability.Render().OnLoad(ctx, "file:"+path, people, rels, 0, err)
		if err != nil {
			logger.Warn("reload failed; keeping current network", "path", path, "error", err)
			return
		}
		srv.Swap(snap)
	})
	if err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("watch stopped", "path", path, "error", err)
	}
}

// displayAddr turns a wildcard listen address into one a browser can open.
func displayAddr(addr net.Addr) string {
	tcp, ok := addr.(*net.TCPAddr)
	if !ok || !tcp.IP.IsUnspecified() {
		return addr.String()
	}
	return fmt.Sprintf("localhost:%d", tcp.Port)
}
