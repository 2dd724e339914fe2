package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/mwhitford/daybook/internal/output"
	"github.com/mwhitford/daybook/internal/storage"
)

// statusCmd represents the status command.
var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show database and sync status",
	Long: `Show where data lives, how many days are logged, and the account
and sync state of this device.`,
	Args: cobra.NoArgs,
	RunE: runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	keys, err := ctx.DayRepo.Keys()
	if err != nil {
		return err
	}
	state, err := ctx.StateRepo.Get()
	if err != nil {
		return err
	}
	lastSync, err := ctx.StateRepo.LastSync()
	if err != nil {
		return err
	}

	account, signedIn := ctx.Identity.AccountID()

	if ctx.IsJSON() {
		return ctx.Formatter.PrintJSON(output.NewStatusResponse(
			ctx.DB.Path(), len(keys), account, state.DeviceID, lastSync))
	}

	c := ctx.CLIFormatter()
	c.Title("Daybook status")
	c.Println()
	c.Printf("%s   %s\n", c.Label("Data  "), ctx.DB.Path())
	c.Printf("%s   %s\n", c.Label("Days  "), c.Value(fmt.Sprintf("%d logged", len(keys))))
	c.Printf("%s   %s\n", c.Label("Device"), state.DeviceID)

	if signedIn {
		c.Printf("%s   %s\n", c.Label("Sync  "), c.Value(account))
		if lastSync > 0 {
			c.Printf("%s   last sync %s\n", c.Label("      "),
				output.FormatAgo(time.UnixMilli(lastSync)))
		} else {
			c.Printf("%s   never synced\n", c.Label("      "))
		}
	} else {
		c.Println()
		c.PrintNotSignedIn()
	}

	if warn := storage.CheckDiskSpaceWarning(ctx.DB.Path()); warn != "" {
		c.Println()
		c.Warning(warn)
	}

	return nil
}
