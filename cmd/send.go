package cmd

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/zhubert/chatter/internal/chat"
	"github.com/zhubert/chatter/internal/config"
	"github.com/zhubert/chatter/internal/store"
)

var sendImages []string

var sendCmd = &cobra.Command{
	Use:   "send [text...]",
	Short: "Append a message to the conversation",
	Example: `  chatter send "on my way"
  chatter send --image ~/Pictures/map.png "meet here"`,
	RunE: runSend,
}

func init() {
	sendCmd.Flags().StringArrayVarP(&sendImages, "image", "i", nil, "Attach an image path or URL (repeatable)")
	rootCmd.AddCommand(sendCmd)
}

func runSend(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	q, err := openQueue(cfg)
	if err != nil {
		return err
	}
	defer q.Close()

	records, err := sendMessage(context.Background(), cfg, q, strings.Join(args, " "), sendImages, time.Now())
	if err != nil {
		return err
	}
	for _, r := range records {
		fmt.Fprintln(cmd.OutOrStdout(), r.ID)
	}
	return nil
}

// sendMessage composes and stores a message the same way the composer does.
func sendMessage(ctx context.Context, cfg *config.Config, s store.Store, body string, images []string, now time.Time) ([]chat.Record, error) {
	userID, name := cfg.GetIdentity()
	conv := chat.NewConversation(userID, chat.NewSizer(0, 0.2, 0.7, 1), chat.Palette{})

	records, err := conv.Compose(name, body, images, now)
	if err != nil {
		return nil, err
	}
	for _, r := range records {
		if err := s.Save(ctx, r); err != nil {
			return nil, err
		}
	}
	return records, nil
}
