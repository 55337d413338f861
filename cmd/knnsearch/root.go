package main

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"knn_search/pkg/config"
	"knn_search/pkg/geo"
	"knn_search/pkg/graph"
)

// globalFlags are shared by every subcommand. Zero values leave the config
// file (or its defaults) untouched.
type globalFlags struct {
	configPath string
	logLevel   string
	pretty     bool

	width       int
	height      int
	points      int
	neighbours  int
	seed        uint64
	maxAttempts int
}

func newRootCmd() *cobra.Command {
	flags := &globalFlags{}

	cmd := &cobra.Command{
		Use:   "knnsearch",
		Short: "Random knn graphs and best-first search",
		Long: `knnsearch - build random k-nearest-neighbour graphs in a bounded integer
space and search them with greedy best-first or A*.

Examples:
  # Build the default graph and dump it for plotting
  knnsearch build --geojson graph.geojson

  # Search toward point 220 from the point farthest from it
  knnsearch search --strategy astar --dest-index 220

  # Serve the search API
  knnsearch serve --addr :8090`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := cmd.PersistentFlags()
	pf.StringVarP(&flags.configPath, "config", "c", "", "YAML config file")
	pf.StringVar(&flags.logLevel, "log-level", "", "log level (debug, info, warn, error)")
	pf.BoolVar(&flags.pretty, "pretty", false, "human-friendly console logs")
	pf.IntVar(&flags.width, "width", 0, "space width")
	pf.IntVar(&flags.height, "height", 0, "space height")
	pf.IntVarP(&flags.points, "points", "n", 0, "number of points")
	pf.IntVarP(&flags.neighbours, "neighbours", "k", 0, "neighbours per point")
	pf.Uint64Var(&flags.seed, "seed", 0, "random seed (0 uses the clock)")
	pf.IntVar(&flags.maxAttempts, "max-attempts", 0, "random draws per point before giving up")

	cmd.AddCommand(
		newBuildCmd(flags),
		newSearchCmd(flags),
		newServeCmd(flags),
	)
	return cmd
}

// load reads the config file and applies the flags the user set.
func (f *globalFlags) load(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(f.configPath)
	if err != nil {
		return nil, err
	}

	changed := cmd.Flags().Changed
	if changed("log-level") {
		cfg.Log.Level = f.logLevel
	}
	if changed("pretty") {
		cfg.Log.Pretty = f.pretty
	}
	if changed("width") {
		cfg.Space.Width = f.width
	}
	if changed("height") {
		cfg.Space.Height = f.height
	}
	if changed("points") {
		cfg.Graph.Points = f.points
	}
	if changed("neighbours") {
		cfg.Graph.Neighbours = f.neighbours
	}
	if changed("seed") {
		cfg.Graph.Seed = f.seed
	}
	if changed("max-attempts") {
		cfg.Graph.MaxAttempts = f.maxAttempts
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newLogger(cfg config.LogConfig, w io.Writer) zerolog.Logger {
	level, err := cfg.ZerologLevel()
	if err != nil {
		level = zerolog.InfoLevel
	}
	if cfg.Pretty {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen}
	}
	return zerolog.New(w).Level(level).With().Timestamp().Logger()
}

// buildGraph generates the configured graph. A zero seed is replaced by a
// clock seed, returned so the run can be reproduced.
func buildGraph(cfg *config.Config, logger zerolog.Logger) (*graph.Graph, graph.BuildStats, uint64, error) {
	seed := cfg.Graph.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}

	space, err := geo.NewBoundedSpace(cfg.Space.Width, cfg.Space.Height)
	if err != nil {
		return nil, graph.BuildStats{}, 0, err
	}

	b := graph.NewBuilder(
		graph.WithSeed(seed),
		graph.WithMaxAttempts(cfg.Graph.MaxAttempts),
		graph.WithLogger(logger),
	)
	g, err := b.Build(space, cfg.Graph.Points, cfg.Graph.Neighbours)
	if err != nil {
		return nil, graph.BuildStats{}, 0, err
	}
	return g, b.Stats(), seed, nil
}

func stderrLogger(cfg *config.Config) zerolog.Logger {
	return newLogger(cfg.Log, os.Stderr)
}
