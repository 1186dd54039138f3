package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "resume-screener",
	Short: "AI resume screening API",
	Long:  "Resume Screener extracts structured candidate data from uploaded resumes and ranks candidates against job descriptions.",
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
