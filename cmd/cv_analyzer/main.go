// Package main provides the cv_analyzer command line tool.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "cv_analyzer",
	Short: "CV gap analysis against a target role",
	Long:  "cv_analyzer reads a CV, extracts its skills, compares them with current market requirements for a target role and writes a markdown gap report.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
