package main

import (
	"bytes"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/pond/internal/pond"
	"github.com/alexisbeaulieu97/pond/pkg/diff"
)

type setOptions struct {
	valueType string
	showDiff  bool
}

func newSetCmd(app *AppContext) *cobra.Command {
	opts := &setOptions{}

	cmd := &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Store a value under a key",
		Long: `Store a value under a key.

With --type bytes the value names a file to read, or "-" for stdin.
With --type json the value is a JSON (or YAML) literal; null removes the key.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSet(cmd, app, args[0], args[1], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.valueType, "type", "t", typeString, "Store the value as string, int, float, bool, bytes or json")
	cmd.Flags().BoolVar(&opts.showDiff, "diff", false, "Show how the stored value changed")

	return cmd
}

func runSet(cmd *cobra.Command, app *AppContext, key, arg string, opts *setOptions) error {
	if err := checkValueType(opts.valueType); err != nil {
		return newCommandError("set", "parsing --type", err, "Run 'pond set --help' for the supported types.")
	}

	input, err := parseInput(arg, opts.valueType, cmd.InOrStdin())
	if err != nil {
		return newCommandError("set", fmt.Sprintf("parsing value for %q", key), err, fmt.Sprintf("Provide a valid %s value.", opts.valueType))
	}

	value, err := pond.FromAny(input)
	if err != nil {
		return newCommandError("set", fmt.Sprintf("converting value for %q", key), err, "Use strings, numbers, booleans, lists and maps with string keys; quote dates and times.")
	}

	store := app.store()
	before, hadBefore := store.Lookup(key)

	switch v := input.(type) {
	case string:
		pond.Set(store, key, v)
	case int64:
		pond.Set(store, key, v)
	case float64:
		pond.Set(store, key, v)
	case bool:
		pond.Set(store, key, v)
	case []byte:
		pond.Set(store, key, v)
	default:
		app.Policy.SetAny(store, key, v)
	}

	app.Logger.WithFields(map[string]any{"key": key, "type": opts.valueType}).Debug("value stored")
	if value.IsNone() {
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "✓ Removed '%s' from %s store\n", key, store.ID())
	} else {
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "✓ Stored '%s' in %s store\n", key, store.ID())
	}

	if opts.showDiff {
		after, hasAfter := store.Lookup(key)
		beforeLabel := key
		if !hadBefore {
			beforeLabel = key + " (absent)"
		}
		afterLabel := key
		if !hasAfter {
			afterLabel = key + " (absent)"
		}
		_, _ = fmt.Fprint(cmd.OutOrStdout(), diff.Unified(renderForDiff(before, hadBefore), renderForDiff(after, hasAfter), beforeLabel, afterLabel))
	}
	return nil
}

func renderForDiff(v pond.Value, ok bool) []byte {
	if !ok {
		return nil
	}
	var buf bytes.Buffer
	_ = renderValue(&buf, v, typeAuto, false)
	return buf.Bytes()
}
