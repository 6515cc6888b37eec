package main

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

func newRemoveCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "rm <key>",
		Aliases: []string{"remove"},
		Short:   "Remove a key",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store := app.store()
			if !store.Contains(args[0]) {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Key '%s' was not set.\n", args[0])
				return nil
			}
			store.Remove(args[0])
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "✓ Removed '%s'\n", args[0])
			return nil
		},
	}

	return cmd
}

func newHasCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "has <key>",
		Short: "Report whether a key is set; exits 1 when it is not",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.store().Contains(args[0]) {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "true")
				return nil
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "false")
			return errKeyAbsent
		},
	}

	return cmd
}

type clearOptions struct {
	yes bool
}

func newClearCmd(app *AppContext) *cobra.Command {
	opts := &clearOptions{}

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Remove every key from the selected store",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runClear(cmd, app, opts)
		},
	}

	cmd.Flags().BoolVarP(&opts.yes, "yes", "y", false, "Clear without confirmation")

	return cmd
}

func runClear(cmd *cobra.Command, app *AppContext, opts *clearOptions) error {
	store := app.store()
	count := len(store.Keys())

	if !opts.yes {
		confirmed, err := confirmClear(cmd, store.ID(), count)
		if err != nil {
			return err
		}
		if !confirmed {
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Cancelled.")
			return nil
		}
	}

	store.RemoveAll()
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "✓ Cleared %d keys from %s store\n", count, store.ID())
	return nil
}

func confirmClear(cmd *cobra.Command, storeID string, count int) (bool, error) {
	if !isTerminal(cmd.InOrStdin()) {
		return false, newCommandError("clear", "prompting for confirmation", errors.New("not a terminal"), "Use --yes when running in non-interactive environments.")
	}

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Remove all %d keys from the %s store? [y/N]: ", count, storeID)

	scanner := bufio.NewScanner(cmd.InOrStdin())
	if !scanner.Scan() {
		return false, scanner.Err()
	}

	answer := strings.TrimSpace(strings.ToLower(scanner.Text()))
	return answer == "y" || answer == "yes", nil
}

func isTerminal(stream any) bool {
	if file, ok := stream.(*os.File); ok {
		return termIsTerminal(int(file.Fd()))
	}
	return false
}

var termIsTerminal = func(fd int) bool {
	return term.IsTerminal(fd)
}
