// Package main provides the entry point for the docsplit documentation
// preprocessor CLI.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "docsplit",
	Short: "Dual-language documentation splitter",
	Long:  "docsplit splits documentation sources containing :::python / :::js fences into per-language page trees, rewriting internal links so each track stays self-consistent.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
