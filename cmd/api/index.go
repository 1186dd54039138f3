package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"alfredoptarigan/resume-screener/internal/config"
	"alfredoptarigan/resume-screener/internal/services"
)

var indexCmd = &cobra.Command{
	Use:   "index <dir>",
	Short: "Process every resume in a directory and add it to the candidate index",
	Args:  cobra.ExactArgs(1),
	RunE:  runIndex,
}

func init() {
	rootCmd.AddCommand(indexCmd)
}

func runIndex(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	app, err := newApplication(ctx, config.Load(), true)
	if err != nil {
		return err
	}
	if app.index == nil {
		return fmt.Errorf("candidate index is disabled; set QDRANT_URL and GEMINI_API_KEY")
	}

	entries, err := os.ReadDir(args[0])
	if err != nil {
		return fmt.Errorf("failed to read directory: %w", err)
	}

	indexed, failed := 0, 0
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if _, _, ok := services.LookupFileType(entry.Name()); !ok {
			continue
		}

		file, err := loadLocalFile(filepath.Join(args[0], entry.Name()))
		if err != nil {
			return err
		}

		result := app.pipeline.ProcessFile(ctx, file)
		if !result.IsCompleted() {
			log.Printf("❌ %s: %s", entry.Name(), result.Error)
			failed++
			continue
		}

		if app.resumeRepo != nil {
			if err := app.resumeRepo.Save(&result); err != nil {
				log.Printf("⚠️ Failed to persist %s: %v", entry.Name(), err)
			}
		}
		if err := app.index.IndexCandidate(ctx, result); err != nil {
			log.Printf("❌ Failed to index %s: %v", entry.Name(), err)
			failed++
			continue
		}

		log.Printf("✅ Indexed %s as %s", entry.Name(), result.ID)
		indexed++
	}

	log.Printf("🎉 Indexing complete: %d indexed, %d failed", indexed, failed)
	return nil
}
