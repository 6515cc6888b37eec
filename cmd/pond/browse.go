package main

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/pond/internal/tui/browser"
)

// runBrowser is replaced in tests.
var runBrowser = browser.Run

func newBrowseCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Browse, copy and delete keys interactively",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !isTerminal(cmd.InOrStdin()) {
				return newCommandError("browse", "starting the browser", errors.New("not a terminal"), "Use 'pond list' in non-interactive environments.")
			}
			if err := runBrowser(app.store(), app.pasteboard()); err != nil {
				return newCommandError("browse", "running the browser", err, "Retry with --verbose for more detail.")
			}
			return nil
		},
	}

	return cmd
}
