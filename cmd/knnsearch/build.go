package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"knn_search/pkg/export"
	"knn_search/pkg/graph"
)

func newBuildCmd(flags *globalFlags) *cobra.Command {
	var geojsonPath string

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Build a graph and print its statistics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.load(cmd)
			if err != nil {
				return err
			}
			logger := stderrLogger(cfg)

			g, stats, seed, err := buildGraph(cfg, logger)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "space:            %dx%d\n", cfg.Space.Width, cfg.Space.Height)
			fmt.Fprintf(out, "seed:             %d\n", seed)
			fmt.Fprintf(out, "points:           %d\n", stats.Points)
			fmt.Fprintf(out, "edges:            %d\n", stats.Edges)
			fmt.Fprintf(out, "collisions:       %d\n", stats.Collisions)
			fmt.Fprintf(out, "duplicate edges:  %d\n", stats.DuplicateEdges)
			fmt.Fprintf(out, "short neighbours: %d\n", stats.ShortNeighbours)
			fmt.Fprintf(out, "largest component: %d\n", len(graph.LargestComponent(g)))
			fmt.Fprintf(out, "elapsed:          %s\n", stats.Elapsed)

			if geojsonPath != "" {
				if err := writeGeoJSON(geojsonPath, export.Graph(g)); err != nil {
					return err
				}
				logger.Info().Str("path", geojsonPath).Msg("graph written")
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&geojsonPath, "geojson", "", "write the graph as GeoJSON to this file")
	return cmd
}

func writeGeoJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal geojson: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write geojson: %w", err)
	}
	return nil
}
