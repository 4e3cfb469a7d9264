package cli

import (
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	"github.com/dsai-cliques/cliques/pkg/errors"
	"github.com/dsai-cliques/cliques/pkg/scene"
)

// Config holds settings shared by the commands. Values come from the config
// file and are overridden by flags given explicitly on the command line.
type Config struct {
	Dataset       string `toml:"dataset"`
	Listen        string `toml:"listen"`
	Title         string `toml:"title"`
	NodeSize      int    `toml:"node_size"`
	EmphasisSize  int    `toml:"emphasis_size"`
	Background    string `toml:"background"`
	FontColor     string `toml:"font_color"`
	RedisURL      string `toml:"redis_url"`
	MongoURI      string `toml:"mongo_uri"`
	MongoDatabase string `toml:"mongo_database"`
	Watch         bool   `toml:"watch"`
}

// defaultConfig returns the built-in settings.
func defaultConfig() Config {
	d := scene.DefaultOptions()
	return Config{
		Dataset:      defaultDataset,
		Listen:       defaultListen,
		NodeSize:     d.NodeSize,
		EmphasisSize: d.EmphasisSize,
		Background:   d.Background,
		FontColor:    d.FontColor,
	}
}

// loadConfigFile decodes the TOML file at path. A missing file yields the
// zero Config unless required is set. Unknown keys are rejected.
func loadConfigFile(path string, required bool) (Config, error) {
	var cfg Config
	if _, err := os.Stat(path); os.IsNotExist(err) {
		if required {
			return cfg, errors.Wrap(errors.ErrCodeFileNotFound, err, "config %s not found", path)
		}
		return cfg, nil
	}

	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return cfg, errors.Wrap(errors.ErrCodeInvalidInput, err, "parse config %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return cfg, errors.New(errors.ErrCodeInvalidInput, "config %s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	return cfg, nil
}

// overlay copies every non-zero value of file into c, except for settings
// whose flag was set explicitly.
func (c *Config) overlay(file Config, changed func(name string) bool) {
	setString := func(flag string, dst *string, v string) {
		if v != "" && !changed(flag) {
			*dst = v
		}
	}
	setInt := func(flag string, dst *int, v int) {
		if v != 0 && !changed(flag) {
			*dst = v
		}
	}

	setString("dataset", &c.Dataset, file.Dataset)
	setString("listen", &c.Listen, file.Listen)
	setString("title", &c.Title, file.Title)
	setInt("node-size", &c.NodeSize, file.NodeSize)
	setInt("emphasis-size", &c.EmphasisSize, file.EmphasisSize)
	setString("background", &c.Background, file.Background)
	setString("font-color", &c.FontColor, file.FontColor)
	setString("redis-url", &c.RedisURL, file.RedisURL)
	setString("mongo-uri", &c.MongoURI, file.MongoURI)
	setString("mongo-database", &c.MongoDatabase, file.MongoDatabase)
	if file.Watch && !changed("watch") {
		c.Watch = true
	}
}

// SceneOptions returns the scene settings of c.
func (c Config) SceneOptions() scene.Options {
	return scene.Options{
		NodeSize:     c.NodeSize,
		EmphasisSize: c.EmphasisSize,
		Background:   c.Background,
		FontColor:    c.FontColor,
	}.WithDefaults()
}

// resolveConfig merges the config file into the flag values bound to cfg.
func (c *CLI) resolveConfig(cmd *cobra.Command, cfg *Config) error {
	path, required := c.configPath, c.configPath != ""
	if !required {
		p, err := defaultConfigPath()
		if err != nil {
			return nil
		}
		path = p
	}
	file, err := loadConfigFile(path, required)
	if err != nil {
		return err
	}
	cfg.overlay(file, cmd.Flags().Changed)
	return nil
}

// =============================================================================
// Flag Registration
// =============================================================================

func addDatasetFlags(cmd *cobra.Command, cfg *Config) {
	cmd.Flags().StringVarP(&cfg.Dataset, "dataset", "d", cfg.Dataset, "dataset file (.json, .yaml, .yml)")
	cmd.Flags().StringVar(&cfg.MongoURI, "mongo-uri", "", "load the dataset from MongoDB instead of a file")
	cmd.Flags().StringVar(&cfg.MongoDatabase, "mongo-database", "", "MongoDB database holding people and relationships")
}

func addSceneFlags(cmd *cobra.Command, cfg *Config) {
	cmd.Flags().IntVar(&cfg.NodeSize, "node-size", cfg.NodeSize, "node size")
	cmd.Flags().IntVar(&cfg.EmphasisSize, "emphasis-size", cfg.EmphasisSize, "size of the selected node")
	cmd.Flags().StringVar(&cfg.Background, "background", cfg.Background, "background colour")
	cmd.Flags().StringVar(&cfg.FontColor, "font-color", cfg.FontColor, "label colour")
}
