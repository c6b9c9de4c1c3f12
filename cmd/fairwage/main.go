// Package main provides the fairwage command line and HTTP server.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "fairwage",
	Short: "Career economic impact model",
	Long: "fairwage estimates what a worker would have earned had pay kept pace with productivity in their sector, " +
		"and how current pay compares with the regional market median.",
	SilenceUsage: true,
}

var (
	outputFormat string
	logFormat    string
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "output", "o", formatJSON, "Output format: json or yaml")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "text", "Log format: text or json")
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
