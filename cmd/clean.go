package cmd

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/zhubert/chatter/internal/logger"
)

var skipConfirm bool

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Remove the message history, pasted images and log files",
	Long: `Deletes every stored message, removes pasted image attachments and
clears chatter's log files. Your name, title and theme are kept.

It will prompt for confirmation before proceeding unless the --yes flag is used.`,
	RunE: runClean,
}

func init() {
	cleanCmd.Flags().BoolVarP(&skipConfirm, "yes", "y", false, "Skip confirmation prompt")
	rootCmd.AddCommand(cleanCmd)
}

func runClean(cmd *cobra.Command, args []string) error {
	return runCleanWithReader(os.Stdin, cmd.OutOrStdout())
}

// runCleanWithReader allows injecting a reader for testing
func runCleanWithReader(input io.Reader, out io.Writer) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	q, err := openQueue(cfg)
	if err != nil {
		return err
	}
	defer q.Close()

	ctx := context.Background()
	records, err := q.Fetch(ctx)
	if err != nil {
		return fmt.Errorf("error reading history: %w", err)
	}

	attachmentDir := cfg.AttachmentDir()
	attachments, _ := filepath.Glob(filepath.Join(attachmentDir, "*.png"))
	logs, _ := filepath.Glob(filepath.Join(filepath.Dir(logger.DefaultLogPath), "chatter-*.log"))

	if len(records) == 0 && len(attachments) == 0 && len(logs) == 0 {
		fmt.Fprintln(out, "Nothing to clean.")
		return nil
	}

	fmt.Fprintln(out, "This will clean:")
	if len(records) > 0 {
		fmt.Fprintf(out, "  - %d message(s)\n", len(records))
	}
	if len(attachments) > 0 {
		fmt.Fprintf(out, "  - %d pasted image(s) in %s\n", len(attachments), attachmentDir)
	}
	fmt.Fprintln(out, "  - All chatter log files")

	if !skipConfirm {
		if !confirm(input, out, "Continue?") {
			fmt.Fprintln(out, "Aborted.")
			return nil
		}
	}

	// Deletes run in order on the queue worker.
	pending := make([]<-chan error, 0, len(records))
	for _, r := range records {
		pending = append(pending, q.DeleteAsync(ctx, r.ID))
	}
	deleted := 0
	for _, res := range pending {
		if err := <-res; err != nil {
			fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
			continue
		}
		deleted++
	}

	removed := 0
	for _, p := range attachments {
		if err := os.Remove(p); err == nil {
			removed++
		} else if !os.IsNotExist(err) {
			fmt.Fprintf(os.Stderr, "Warning: error removing %s: %v\n", p, err)
		}
	}

	logsCleared, err := logger.ClearLogs()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: error clearing logs: %v\n", err)
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, "Cleaned:")
	if deleted > 0 {
		fmt.Fprintf(out, "  - %d message(s) deleted\n", deleted)
	}
	if removed > 0 {
		fmt.Fprintf(out, "  - %d pasted image(s) removed\n", removed)
	}
	if logsCleared > 0 {
		fmt.Fprintf(out, "  - %d log file(s) removed\n", logsCleared)
	}
	return nil
}

// confirm prompts the user for y/n confirmation
func confirm(input io.Reader, out io.Writer, prompt string) bool {
	reader := bufio.NewReader(input)
	fmt.Fprintf(out, "%s [y/N]: ", prompt)
	response, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	response = strings.ToLower(strings.TrimSpace(response))
	return response == "y" || response == "yes"
}
