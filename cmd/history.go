package cmd

import (
	"context"
	"fmt"
	"io"
	"slices"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/zhubert/chatter/internal/chat"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Print the stored conversation",
	RunE:  runHistory,
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "Number of most recent messages to print (0 for all)")
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	q, err := openQueue(cfg)
	if err != nil {
		return err
	}
	defer q.Close()

	records, err := q.Fetch(context.Background())
	if err != nil {
		return err
	}
	userID, _ := cfg.GetIdentity()
	printHistory(cmd.OutOrStdout(), records, userID, historyLimit)
	return nil
}

// printHistory writes the newest limit records oldest first, one per line.
func printHistory(w io.Writer, records []chat.Record, userID string, limit int) {
	if len(records) == 0 {
		fmt.Fprintln(w, "No messages.")
		return
	}
	if limit > 0 && len(records) > limit {
		records = records[:limit]
	}
	records = slices.Clone(records)
	slices.Reverse(records)

	for _, r := range records {
		fmt.Fprintln(w, historyLine(r, userID))
	}
}

func historyLine(r chat.Record, userID string) string {
	sender := r.SenderName
	switch {
	case r.IsFrom(userID):
		sender = "You"
	case sender == "":
		sender = r.SenderID
	}

	line := fmt.Sprintf("%s  %-12s %s", r.Timestamp.Local().Format("2006-01-02 15:04"), chat.Truncate(sender, 12), r.Body)
	if r.HasImage() {
		line += fmt.Sprintf(" [image: %s]", r.ImageRef)
	}
	return fmt.Sprintf("%s  (%s, %s)", line, humanize.Time(r.Timestamp), r.ID)
}
