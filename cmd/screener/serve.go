package main

import (
	"fmt"

	"github.com/jonathan/resume-screener/internal/observability"
	"github.com/jonathan/resume-screener/internal/server"
	"github.com/spf13/cobra"
)

func newServeDevCmd() *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve-dev",
		Short: "Run the in-memory development backend",
		Long:  "Start an in-memory backend exposing the same endpoints as the real service. Data is lost on exit and scores come from a keyword-overlap placeholder.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger, err := observability.NewLogger(true)
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			srv, err := server.New(server.Config{Addr: addr, Logger: logger})
			if err != nil {
				return fmt.Errorf("failed to create server: %w", err)
			}
			return srv.Start(cmd.Context())
		},
	}
	cmd.Flags().StringVar(&addr, "addr", ":8080", "Address to listen on")
	return cmd
}
