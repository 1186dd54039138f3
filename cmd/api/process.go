package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"alfredoptarigan/resume-screener/internal/config"
	"alfredoptarigan/resume-screener/internal/models"
	"alfredoptarigan/resume-screener/internal/services"
)

var (
	processJobDescription string
	processJobTitle       string
	processAnalyze        bool
)

var processCmd = &cobra.Command{
	Use:   "process <file>...",
	Short: "Run the resume pipeline on local files and print the results as JSON",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runProcess,
}

func init() {
	processCmd.Flags().StringVar(&processJobDescription, "job-description", "", "Rank the processed candidates against this job description")
	processCmd.Flags().StringVar(&processJobTitle, "job-title", "", "Optional job title used with --job-description")
	processCmd.Flags().BoolVar(&processAnalyze, "analyze", false, "Also print pool statistics for the processed candidates")
	rootCmd.AddCommand(processCmd)
}

func runProcess(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	app, err := newApplication(ctx, config.Load(), false)
	if err != nil {
		return err
	}

	files := make([]models.UploadedFile, 0, len(args))
	for _, path := range args {
		file, err := loadLocalFile(path)
		if err != nil {
			return err
		}
		files = append(files, file)
	}

	results, err := app.pipeline.ProcessFiles(ctx, files)
	if err := printJSON(cmd, "results", results); err != nil {
		return err
	}
	if err != nil {
		return err
	}

	if processJobDescription != "" {
		match, err := app.matcher.Match(ctx, services.MatchInput{
			JobDescription: processJobDescription,
			JobTitle:       processJobTitle,
			Candidates:     results,
		})
		if err != nil {
			return err
		}
		if err := printJSON(cmd, "match", match); err != nil {
			return err
		}
	}

	if processAnalyze {
		var resumes []models.ParsedResumeData
		for _, r := range results {
			if r.IsCompleted() {
				resumes = append(resumes, *r.Data)
			}
		}
		analysis, err := app.aggregator.Analyze(ctx, resumes)
		if err != nil {
			return err
		}
		if err := printJSON(cmd, "analysis", analysis); err != nil {
			return err
		}
	}

	return nil
}

// loadLocalFile leaves MimeType empty; the extractor derives it from the extension.
func loadLocalFile(path string) (models.UploadedFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return models.UploadedFile{}, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return models.UploadedFile{
		Name: filepath.Base(path),
		Size: int64(len(data)),
		Data: data,
	}, nil
}

func printJSON(cmd *cobra.Command, key string, value any) error {
	out, err := json.MarshalIndent(map[string]any{key: value}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(out))
	return nil
}
