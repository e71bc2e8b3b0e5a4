package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/job-board/internal/config"
	"github.com/jonathan/job-board/internal/server"
)

var servePort string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server that exposes the job board REST endpoints.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&servePort, "port", "", "Port to listen on (overrides PORT)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	cfg, err := config.NewAppConfig()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if servePort != "" {
		cfg.Port = servePort
	}

	srv, err := server.New(cfg)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	return srv.Start()
}
