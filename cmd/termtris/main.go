// Package main is the entry point for the termtris terminal game
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "termtris",
	Short: "Falling-block puzzle game for the terminal",
	Long: `termtris drops pieces into a well; fill rows to clear them, score points,
and survive as gravity speeds up every ten lines.`,
	SilenceUsage: true,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(scoresCmd)
}
