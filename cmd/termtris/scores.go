package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/termtris/internal/repositories/scores"
)

var (
	scoresRedisAddr string
	scoresLimit     int
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show the leaderboard",
	Long:  `Show the best finished games recorded in Redis.`,
	RunE:  runScores,
}

func init() {
	scoresCmd.Flags().StringVar(&scoresRedisAddr, "redis-addr", "localhost:6379", "Redis address of the leaderboard")
	scoresCmd.Flags().IntVar(&scoresLimit, "limit", scores.DefaultListLimit, "number of entries to show")
}

func runScores(cmd *cobra.Command, args []string) error {
	repo, closeRepo, err := openRedisScores(cmd.Context(), scoresRedisAddr)
	if err != nil {
		return fmt.Errorf("failed to connect to leaderboard at %s: %w", scoresRedisAddr, err)
	}
	defer closeRepo()

	out, err := repo.ListTop(cmd.Context(), &scores.ListTopInput{Limit: scoresLimit})
	if err != nil {
		return err
	}

	return printScores(cmd.OutOrStdout(), out.Entries)
}

func printScores(w io.Writer, entries []scores.Entry) error {
	if len(entries) == 0 {
		_, err := fmt.Fprintln(w, "no games recorded yet")
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "RANK\tPLAYER\tSCORE\tLINES\tLEVEL\tFINISHED")
	for i, e := range entries {
		fmt.Fprintf(tw, "%d\t%s\t%d\t%d\t%d\t%s\n",
			i+1, e.Player, e.Score, e.Lines, e.Level, e.FinishedAt.Local().Format("2006-01-02 15:04"))
	}
	return tw.Flush()
}
