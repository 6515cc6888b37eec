package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var errKeyNotFound = errors.New("key not found")

type getOptions struct {
	valueType string
	raw       bool
}

func newGetCmd(app *AppContext) *cobra.Command {
	opts := &getOptions{}

	cmd := &cobra.Command{
		Use:   "get <key>",
		Short: "Print the value stored under a key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGet(cmd, app, args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.valueType, "type", "t", typeAuto, "Read the value as string, int, float, bool, bytes or json")
	cmd.Flags().BoolVar(&opts.raw, "raw", false, "Write byte values verbatim instead of describing them")

	return cmd
}

func runGet(cmd *cobra.Command, app *AppContext, key string, opts *getOptions) error {
	if err := checkValueType(opts.valueType); err != nil {
		return newCommandError("get", "parsing --type", err, "Run 'pond get --help' for the supported types.")
	}

	value, ok := app.store().Lookup(key)
	if !ok {
		return newCommandError("get", fmt.Sprintf("reading %q", key), errKeyNotFound, "Run 'pond list' to see stored keys.")
	}

	if err := renderValue(cmd.OutOrStdout(), value, opts.valueType, opts.raw); err != nil {
		return newCommandError("get", fmt.Sprintf("reading %q", key), err, "Try --type auto to print the value as stored.")
	}
	return nil
}
