package dataset

import (
	"context"
	"fmt"
)

// Source produces a dataset on demand.
type Source interface {
	// Load returns a freshly decoded dataset.
	Load(ctx context.Context) (*Dataset, error)
	// String describes the source for logs.
	String() string
}

// FileSource loads a dataset from a local JSON or YAML file.
type FileSource struct {
	Path string
}

// Load reads and decodes the file.
func (s FileSource) Load(ctx context.Context) (*Dataset, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return ReadFile(s.Path)
}

func (s FileSource) String() string { return "file:" + s.Path }

// StaticSource serves a dataset that is already in memory.
type StaticSource struct {
	Dataset *Dataset
}

// Load returns the wrapped dataset.
func (s StaticSource) Load(context.Context) (*Dataset, error) {
	if s.Dataset == nil {
		return nil, fmt.Errorf("static source: no dataset")
	}
	return s.Dataset, nil
}

func (s StaticSource) String() string { return "static" }

var (
	_ Source = FileSource{}
	_ Source = StaticSource{}
	_ Source = (*MongoSource)(nil)
)
