package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mwhitford/daybook/internal/sync"
)

// Bootstrap decision flags.
var (
	flagSyncUpload   bool
	flagSyncDownload bool
	flagSyncMerge    bool
	flagSyncDismiss  bool
)

// syncCmd represents the sync command.
var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Sync local days with your account",
	Long: `Push local changes to your account and pull newer entries back,
covering the rolling sync window. The first sync on a device may need a
one-time decision about existing data; the flags answer it.

Examples:
  daybook sync
  daybook sync --upload
  daybook sync --merge`,
	Args: cobra.NoArgs,
	RunE: runSync,
}

func init() {
	syncCmd.Flags().BoolVar(&flagSyncUpload, "upload", false,
		"Copy this device's data to your account")
	syncCmd.Flags().BoolVar(&flagSyncDownload, "download", false,
		"Copy your account's data to this device")
	syncCmd.Flags().BoolVar(&flagSyncMerge, "merge", false,
		"Combine both sides, newest entry wins")
	syncCmd.Flags().BoolVar(&flagSyncDismiss, "dismiss", false,
		"Keep this device local-only")
	syncCmd.MarkFlagsMutuallyExclusive("upload", "download", "merge", "dismiss")

	rootCmd.AddCommand(syncCmd)
}

func runSync(cmd *cobra.Command, args []string) error {
	if !ctx.SignedIn() {
		if ctx.IsJSON() {
			return ctx.JSONFormatter().PrintError("error",
				"no account configured", "Set DAYBOOK_ACCOUNT, DAYBOOK_TOKEN and DAYBOOK_REMOTE_URL")
		}
		ctx.CLIFormatter().PrintNotSignedIn()
		return nil
	}

	switch {
	case flagSyncDismiss:
		if err := ctx.Bootstrap.Dismiss(); err != nil {
			return err
		}
		if ctx.IsJSON() {
			return ctx.JSONFormatter().PrintBootstrap(string(sync.StateDone))
		}
		ctx.CLIFormatter().Success("Staying local-only. Run 'daybook sync' anytime to reconsider.")
		return nil

	case flagSyncUpload:
		n, err := ctx.Bootstrap.Upload(cmd.Context())
		if err != nil {
			return err
		}
		if ctx.IsJSON() {
			return ctx.JSONFormatter().PrintSync(n, 0, nil)
		}
		ctx.CLIFormatter().Success(fmt.Sprintf("Uploaded %d day(s) to your account", n))
		return nil

	case flagSyncDownload:
		n, err := ctx.Bootstrap.Download(cmd.Context())
		if err != nil {
			return err
		}
		if ctx.IsJSON() {
			return ctx.JSONFormatter().PrintSync(0, n, nil)
		}
		ctx.CLIFormatter().Success(fmt.Sprintf("Downloaded %d day(s) to this device", n))
		return nil

	case flagSyncMerge:
		res, err := ctx.Bootstrap.Merge(cmd.Context())
		if err != nil {
			return err
		}
		return printSyncResult(res)
	}

	// A pending first-sync decision blocks the regular cycle.
	state, err := ctx.Bootstrap.Check(cmd.Context())
	if err != nil {
		return err
	}
	switch state {
	case sync.StateUpload, sync.StateDownload, sync.StateMerge:
		if ctx.IsJSON() {
			return ctx.JSONFormatter().PrintBootstrap(string(state))
		}
		ctx.CLIFormatter().PrintBootstrapPrompt(string(state))
		return nil
	}

	res, err := ctx.Engine.Sync(cmd.Context())
	if err != nil {
		return err
	}
	return printSyncResult(res)
}

func printSyncResult(res sync.Result) error {
	if ctx.IsJSON() {
		return ctx.JSONFormatter().PrintSync(res.Pushed, res.Pulled, res.Errors)
	}
	ctx.CLIFormatter().PrintSyncResult(res.Pushed, res.Pulled, res.Errors)
	return nil
}
