package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/dsai-cliques/cliques/pkg/dataset"
	"github.com/dsai-cliques/cliques/pkg/network"
	"github.com/dsai-cliques/cliques/pkg/observability"
	"github.com/dsai-cliques/cliques/pkg/pipeline"
)

// source picks the dataset source for cfg: MongoDB when a URI is set,
// otherwise the dataset file.
func source(cfg Config) dataset.Source {
	if cfg.MongoURI != "" {
		return dataset.NewMongoSource(cfg.MongoURI, cfg.MongoDatabase)
	}
	return dataset.FileSource{Path: cfg.Dataset}
}

// loadSnapshot loads the dataset and builds a frozen network from it.
// Referential errors abort the load.
func loadSnapshot(ctx context.Context, src dataset.Source) (pipeline.Snapshot, error) {
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)
	start := time.Now()

	ds, err := src.Load(ctx)
	if err != nil {
		observability.Render().OnLoad(ctx, src.String(), 0, 0, time.Since(start), err)
		return pipeline.Snapshot{}, fmt.Errorf("load %s: %w", src, err)
	}
	snap, err := buildSnapshot(ctx, ds)
	people, rels := ds.Counts()
	observability.Render().OnLoad(ctx, src.String(), people, rels, time.Since(start), err)
	if err != nil {
		return pipeline.Snapshot{}, fmt.Errorf("build network from %s: %w", src, err)
	}

	prog.done(fmt.Sprintf("Loaded %d people, %d relationships from %s", people, rels, src))
	return snap, nil
}

func buildSnapshot(ctx context.Context, ds *dataset.Dataset) (pipeline.Snapshot, error) {
	net, err := network.FromDataset(ds)
	if err != nil {
		return pipeline.Snapshot{}, err
	}
	if dups := net.DuplicateNames(); len(dups) > 0 {
		loggerFromContext(ctx).Warn("people share display names; selecting them is ambiguous",
			"names", strings.Join(dups, ", "))
	}
	return pipeline.NewSnapshot(net)
}
