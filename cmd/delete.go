package cmd

import (
	"context"
	"fmt"

	huh "charm.land/huh/v2"
	"github.com/spf13/cobra"

	"github.com/zhubert/chatter/internal/ui"
)

var deleteCmd = &cobra.Command{
	Use:   "delete <message-id>",
	Short: "Delete one message from the history",
	Long:  "Deletes a message by id. Ids are shown by 'chatter history'.",
	Args:  cobra.ExactArgs(1),
	RunE:  runDelete,
}

func init() {
	deleteCmd.Flags().BoolVarP(&skipConfirm, "yes", "y", false, "Skip confirmation prompt")
	rootCmd.AddCommand(deleteCmd)
}

func runDelete(cmd *cobra.Command, args []string) error {
	id := args[0]

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	q, err := openQueue(cfg)
	if err != nil {
		return err
	}
	defer q.Close()

	if !skipConfirm {
		ok := false
		form := huh.NewForm(
			huh.NewGroup(
				huh.NewConfirm().
					Title(fmt.Sprintf("Delete message %s?", id)).
					Affirmative("Delete").
					Negative("Cancel").
					Value(&ok),
			),
		).WithTheme(ui.FormTheme())
		if err := form.Run(); err != nil {
			return err
		}
		if !ok {
			fmt.Fprintln(cmd.OutOrStdout(), "Aborted.")
			return nil
		}
	}

	if err := q.Delete(context.Background(), id); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", id)
	return nil
}
