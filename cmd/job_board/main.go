// Package main provides the entry point for the Job Board HTTP API server.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "job_board",
	Short: "Job Board HTTP API Server",
	Long:  "Job Board serves a REST API for job postings, applications with skill matching, and LLM-backed resume parsing.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
