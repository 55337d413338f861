package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"knn_search/pkg/export"
	"knn_search/pkg/search"
)

func newSearchCmd(flags *globalFlags) *cobra.Command {
	var (
		strategyName string
		destIndex    int
		startIndex   int
		geojsonPath  string
	)

	cmd := &cobra.Command{
		Use:   "search",
		Short: "Search from the farthest point toward a target point",
		Long: `Build a graph and search it. The destination is the point at --dest-index
(in generation order); the start is the point farthest from it unless
--start-index is given.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.load(cmd)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("strategy") {
				cfg.Search.Strategy = strategyName
			}
			strategy, err := search.ParseStrategy(cfg.Search.Strategy)
			if err != nil {
				return err
			}
			logger := stderrLogger(cfg)

			g, _, seed, err := buildGraph(cfg, logger)
			if err != nil {
				return err
			}
			if destIndex < 0 || destIndex >= g.NumPoints() {
				return fmt.Errorf("dest-index %d out of range [0, %d)", destIndex, g.NumPoints())
			}
			dest := g.Point(destIndex)

			start := dest
			if startIndex >= 0 {
				if startIndex >= g.NumPoints() {
					return fmt.Errorf("start-index %d out of range [0, %d)", startIndex, g.NumPoints())
				}
				start = g.Point(startIndex)
			} else if _, start, err = g.FarthestPoint(dest); err != nil {
				return err
			}

			eng := search.NewEngine(strategy, dest,
				search.WithMaxExpansions(cfg.Search.MaxExpansions),
				search.WithLogger(logger),
			)
			found, err := eng.Search(cmd.Context(), start, g)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "seed:        %d\n", seed)
			fmt.Fprintf(out, "strategy:    %s\n", strategy.Name())
			fmt.Fprintf(out, "start:       %s\n", start)
			fmt.Fprintf(out, "destination: %s\n", dest)
			fmt.Fprintf(out, "found:       %t\n", found)
			fmt.Fprintf(out, "expanded:    %d\n", eng.Expanded())
			fmt.Fprintf(out, "travelled:   %.3f\n", eng.Travelled())

			if geojsonPath != "" {
				return writeGeoJSON(geojsonPath, export.WithTrace(g, export.Trace{
					Strategy:    strategy.Name(),
					Start:       start,
					Destination: dest,
					Found:       found,
					Visited:     eng.Visited(),
				}))
			}
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVarP(&strategyName, "strategy", "s", "", "best_first or astar (default from config)")
	f.IntVar(&destIndex, "dest-index", 220, "index of the destination point")
	f.IntVar(&startIndex, "start-index", -1, "index of the start point (-1: farthest from the destination)")
	f.StringVar(&geojsonPath, "geojson", "", "write the graph and search trace as GeoJSON to this file")
	return cmd
}
