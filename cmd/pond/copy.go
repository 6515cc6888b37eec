package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/pond/internal/pond"
)

func newCopyCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "copy <key>",
		Short: "Copy a stored value to the system pasteboard",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			key := args[0]
			value, ok := app.store().Lookup(key)
			if !ok {
				return newCommandError("copy", fmt.Sprintf("reading %q", key), errKeyNotFound, "Run 'pond list' to see stored keys.")
			}

			text, ok := pond.As[string](value)
			if !ok {
				return newCommandError("copy", fmt.Sprintf("reading %q", key), coercionError(value, typeString), "Only text, number and bool values can be copied.")
			}

			app.pasteboard().Copy(text)
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "✓ Copied '%s' to the pasteboard\n", key)
			return nil
		},
	}

	return cmd
}
