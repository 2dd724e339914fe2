package cmd

import (
	"github.com/spf13/cobra"

	"github.com/mwhitford/daybook/internal/errors"
	"github.com/mwhitford/daybook/internal/parser"
)

var flagResetForce bool

// resetCmd represents the reset command.
var resetCmd = &cobra.Command{
	Use:   "reset <date>",
	Short: "Erase everything logged for a day",
	Long: `Remove a day's record from this device. A later sync can bring the
day back from your account if it exists there.

Examples:
  daybook reset today --force
  daybook reset 2026-08-14 --force`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		res := parser.ParseDate(args[0])
		if res.Error != nil {
			return res.Error.(*parser.InputError).ToUserError()
		}

		if !flagResetForce {
			return errors.NewUserError("reset erases the whole day",
				"Re-run with --force to confirm")
		}

		if err := ctx.DayRepo.Reset(res.Key); err != nil {
			return err
		}
		ctx.Engine.MarkModified(res.Key)

		if ctx.IsJSON() {
			rec, err := ctx.DayRepo.Get(res.Key)
			if err != nil {
				return err
			}
			return ctx.JSONFormatter().PrintDay(res.Key, rec)
		}
		ctx.CLIFormatter().Success("Cleared " + res.Key)
		return nil
	},
}

func init() {
	resetCmd.Flags().BoolVar(&flagResetForce, "force", false,
		"Confirm erasing the day")
	rootCmd.AddCommand(resetCmd)
}
