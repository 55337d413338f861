package main

import (
	"github.com/spf13/cobra"

	"knn_search/pkg/api"
	"knn_search/pkg/search"
)

func newServeCmd(flags *globalFlags) *cobra.Command {
	var (
		addr       string
		corsOrigin string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Build a graph and serve the search API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.load(cmd)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("addr") {
				cfg.Server.Addr = addr
			}
			if cmd.Flags().Changed("cors-origin") {
				cfg.Server.CORSOrigin = corsOrigin
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

			svc := search.NewService(g, strategy, cfg.Search.MaxExpansions, logger)
			handlers := api.NewHandlers(svc, g, api.NewStats(g, cfg.Graph.Neighbours, seed))

			srvCfg := api.DefaultConfig(cfg.Server.Addr)
			srvCfg.ReadTimeout = cfg.Server.ReadTimeout
			srvCfg.WriteTimeout = cfg.Server.WriteTimeout
			srvCfg.CORSOrigin = cfg.Server.CORSOrigin
			if cfg.Server.MaxConcurrent > 0 {
				srvCfg.MaxConcurrent = cfg.Server.MaxConcurrent
			}
			srvCfg.Logger = logger

			return api.ListenAndServe(cmd.Context(), api.NewServer(srvCfg, handlers), logger)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config)")
	cmd.Flags().StringVar(&corsOrigin, "cors-origin", "", "Access-Control-Allow-Origin value")
	return cmd
}
