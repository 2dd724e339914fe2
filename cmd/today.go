package cmd

import (
	"github.com/spf13/cobra"

	"github.com/mwhitford/daybook/internal/parser"
)

// todayCmd represents the today command.
var todayCmd = &cobra.Command{
	Use:     "today [date]",
	Aliases: []string{"t", "show"},
	Short:   "Show a day's tracked entries",
	Long: `Display everything logged for a day: medication doses, meals, water,
movement, body measurements and mood. Defaults to today.

Examples:
  daybook today
  daybook today yesterday
  daybook show 2026-08-14`,
	Args: cobra.MaximumNArgs(1),
	RunE: runToday,
}

func init() {
	rootCmd.AddCommand(todayCmd)
}

func runToday(cmd *cobra.Command, args []string) error {
	input := ""
	if len(args) > 0 {
		input = args[0]
	}

	res := parser.ParseDate(input)
	if res.Error != nil {
		return res.Error.(*parser.InputError).ToUserError()
	}

	rec, err := ctx.DayRepo.Get(res.Key)
	if err != nil {
		return err
	}

	if ctx.IsJSON() {
		return ctx.JSONFormatter().PrintDay(res.Key, rec)
	}

	settings, err := ctx.SettingsRepo.Get()
	if err != nil {
		return err
	}
	ctx.CLIFormatter().PrintDay(res.Key, rec, settings)
	return nil
}
