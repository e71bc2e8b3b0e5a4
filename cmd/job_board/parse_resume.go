package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jonathan/job-board/internal/observability"
	"github.com/jonathan/job-board/internal/parsing"
	"github.com/jonathan/job-board/internal/schema"
)

var parseResumeCmd = &cobra.Command{
	Use:   "parse-resume",
	Short: "Parse one resume file into structured JSON",
	Long:  "Parse a PDF or DOCX resume into the structured extraction shape without touching the database. Useful for inspecting what the pipeline would store.",
	RunE:  runParseResume,
}

var (
	parseResumeInput  string
	parseResumeOutput string
	parseResumeRich   bool
	parseResumeAPIKey string
)

func init() {
	parseResumeCmd.Flags().StringVarP(&parseResumeInput, "in", "i", "", "Path to resume file (required)")
	parseResumeCmd.Flags().StringVarP(&parseResumeOutput, "out", "o", "", "Path to output JSON file (default: print summary only)")
	parseResumeCmd.Flags().BoolVar(&parseResumeRich, "rich", false, "Use the rich extraction shape instead of the simple one")
	parseResumeCmd.Flags().StringVar(&parseResumeAPIKey, "api-key", "", "Gemini API key (overrides GEMINI_API_KEY env var)")
	_ = parseResumeCmd.MarkFlagRequired("in")

	rootCmd.AddCommand(parseResumeCmd)
}

func runParseResume(_ *cobra.Command, _ []string) error {
	apiKey := parseResumeAPIKey
	if apiKey == "" {
		apiKey = os.Getenv("GEMINI_API_KEY")
	}
	if apiKey == "" {
		return fmt.Errorf("API key is required (set GEMINI_API_KEY environment variable or use --api-key flag)")
	}

	fileType := strings.TrimPrefix(strings.ToLower(filepath.Ext(parseResumeInput)), ".")

	ctx := context.Background()
	parser, err := parsing.NewParser(ctx, apiKey)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}
	defer func() { _ = parser.Close() }()

	variant := schema.VariantSimple
	if parseResumeRich {
		variant = schema.VariantRich
	}

	parsed, err := parser.ParseResume(ctx, parseResumeInput, fileType, variant)
	if err != nil {
		return fmt.Errorf("failed to parse resume: %w", err)
	}

	printer := observability.NewPrinter(os.Stdout)
	printer.PrintParsedResume(parsed)

	if parseResumeOutput != "" {
		jsonBytes, err := json.MarshalIndent(parsed.Payload(), "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal JSON: %w", err)
		}
		if err := os.WriteFile(parseResumeOutput, jsonBytes, 0o644); err != nil {
			return fmt.Errorf("failed to write output file: %w", err)
		}
		fmt.Fprintf(os.Stdout, "Output: %s\n", parseResumeOutput)
	}

	return nil
}
