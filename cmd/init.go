package cmd

import (
	"fmt"

	huh "charm.land/huh/v2"
	"github.com/spf13/cobra"

	"github.com/zhubert/chatter/internal/config"
	"github.com/zhubert/chatter/internal/ui"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Set your display name, the conversation title and theme",
	RunE:  runInit,
}

func init() {
	rootCmd.AddCommand(initCmd)
}

// initAnswers are the values collected by the init form
type initAnswers struct {
	Name     string
	Title    string
	Subtitle string
	Theme    string
}

func runInit(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	_, name := cfg.GetIdentity()
	title, subtitle := cfg.GetConversation()
	answers := initAnswers{Name: name, Title: title, Subtitle: subtitle, Theme: cfg.GetTheme()}
	if answers.Theme == "" {
		answers.Theme = string(ui.DefaultTheme)
	}

	themes := make([]huh.Option[string], 0, len(ui.ThemeNames()))
	for _, n := range ui.ThemeNames() {
		themes = append(themes, huh.NewOption(ui.GetTheme(n).Name, string(n)))
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Your name").
				Description("Shown on the messages you send").
				Validate(validateName).
				Value(&answers.Name),
			huh.NewInput().
				Title("Conversation title").
				Value(&answers.Title),
			huh.NewInput().
				Title("Subtitle").
				Placeholder("e.g. 12 members").
				Value(&answers.Subtitle),
			huh.NewSelect[string]().
				Title("Theme").
				Options(themes...).
				Value(&answers.Theme),
		),
	).WithTheme(ui.FormTheme())

	if err := form.Run(); err != nil {
		return err
	}

	applyInitAnswers(cfg, answers)
	if err := cfg.Save(); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Saved %s\n", cfg.Path())
	return nil
}

func validateName(s string) error {
	if len([]rune(s)) == 0 {
		return fmt.Errorf("name is required")
	}
	if len([]rune(s)) > 40 {
		return fmt.Errorf("name must be at most 40 characters")
	}
	return nil
}

// applyInitAnswers copies the form values onto cfg. The user id is kept.
func applyInitAnswers(cfg *config.Config, a initAnswers) {
	cfg.SetIdentity("", a.Name)
	cfg.SetConversation(a.Title, a.Subtitle)
	cfg.SetTheme(a.Theme)
}
