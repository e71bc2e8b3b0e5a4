package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/job-board/internal/jobimport"
	"github.com/jonathan/job-board/internal/llm"
	"github.com/jonathan/job-board/internal/observability"
)

var importJobCmd = &cobra.Command{
	Use:   "import-job",
	Short: "Preview a job posting import from a URL",
	Long:  "Fetch a job posting page, extract its fields with the LLM, and print the draft that POST /jobs/import would create. Nothing is written to the database.",
	RunE:  runImportJob,
}

var (
	importJobURL     string
	importJobOutput  string
	importJobBrowser bool
	importJobAPIKey  string
)

func init() {
	importJobCmd.Flags().StringVarP(&importJobURL, "url", "u", "", "Job posting URL (required)")
	importJobCmd.Flags().StringVarP(&importJobOutput, "out", "o", "", "Path to output JSON file (default: print summary only)")
	importJobCmd.Flags().BoolVar(&importJobBrowser, "browser", false, "Allow a headless browser fallback for script-rendered pages")
	importJobCmd.Flags().StringVar(&importJobAPIKey, "api-key", "", "Gemini API key (overrides GEMINI_API_KEY env var)")
	_ = importJobCmd.MarkFlagRequired("url")

	rootCmd.AddCommand(importJobCmd)
}

func runImportJob(_ *cobra.Command, _ []string) error {
	apiKey := importJobAPIKey
	if apiKey == "" {
		apiKey = os.Getenv("GEMINI_API_KEY")
	}
	if apiKey == "" {
		return fmt.Errorf("API key is required (set GEMINI_API_KEY environment variable or use --api-key flag)")
	}

	ctx := context.Background()
	client, err := llm.NewGeminiClient(ctx, apiKey)
	if err != nil {
		return fmt.Errorf("failed to create LLM client: %w", err)
	}
	defer func() { _ = client.Close() }()

	importer := jobimport.NewImporter(client, importJobBrowser)
	draft, err := importer.Import(ctx, importJobURL)
	if err != nil {
		return fmt.Errorf("failed to import job posting: %w", err)
	}

	printer := observability.NewPrinter(os.Stdout)
	printer.PrintJobDraft(draft)

	if importJobOutput != "" {
		jsonBytes, err := json.MarshalIndent(draft, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal JSON: %w", err)
		}
		if err := os.WriteFile(importJobOutput, jsonBytes, 0o644); err != nil {
			return fmt.Errorf("failed to write output file: %w", err)
		}
		fmt.Fprintf(os.Stdout, "Output: %s\n", importJobOutput)
	}

	return nil
}
