package main

import (
	"encoding/json"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/pond/internal/pond"
)

const previewWidth = 40

var headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))

type listOptions struct {
	match      string
	jsonOutput bool
}

func newListCmd(app *AppContext) *cobra.Command {
	opts := &listOptions{}

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List stored keys",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(cmd, app, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.match, "match", "m", "", "Only list keys matching a glob, e.g. 'app.*' or 'user/**'")
	cmd.Flags().BoolVar(&opts.jsonOutput, "json", false, "Output in JSON format")

	return cmd
}

type listEntry struct {
	Key   string
	Value pond.Value
}

func runList(cmd *cobra.Command, app *AppContext, opts *listOptions) error {
	if opts.match != "" && !doublestar.ValidatePattern(opts.match) {
		return newCommandError("list", "parsing --match", doublestar.ErrBadPattern, "Check the glob syntax, e.g. 'settings.*'.")
	}

	store := app.store()
	var entries []listEntry
	for _, key := range store.Keys() {
		if opts.match != "" {
			if ok, _ := doublestar.Match(opts.match, key); !ok {
				continue
			}
		}
		value, ok := store.Lookup(key)
		if !ok {
			continue
		}
		entries = append(entries, listEntry{Key: key, Value: value})
	}

	if opts.jsonOutput {
		return renderListJSON(cmd, store.ID(), entries)
	}

	if len(entries) == 0 {
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "No keys in %s store.\n", store.ID())
		return nil
	}

	return renderListTable(cmd, entries)
}

func renderListTable(cmd *cobra.Command, entries []listEntry) error {
	header := "KEY\tKIND\tVALUE"
	if isTerminal(cmd.OutOrStdout()) {
		header = headerStyle.Render("KEY") + "\t" + headerStyle.Render("KIND") + "\t" + headerStyle.Render("VALUE")
	}

	writer := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(writer, header)

	for _, e := range entries {
		fmt.Fprintf(writer, "%s\t%s\t%s\n", e.Key, e.Value.Kind(), preview(e.Value))
	}

	return writer.Flush()
}

func preview(v pond.Value) string {
	var s string
	switch v.Kind() {
	case pond.KindBytes:
		data, _ := pond.As[[]byte](v)
		s = fmt.Sprintf("<%d bytes, %s>", len(data), mimeOf(data))
	default:
		s = v.String()
	}

	s = strings.ReplaceAll(s, "\n", " ")
	if runes := []rune(s); len(runes) > previewWidth {
		s = string(runes[:previewWidth-1]) + "…"
	}
	return s
}

type listJSONEntry struct {
	Key   string `json:"key"`
	Kind  string `json:"kind"`
	Value any    `json:"value"`
}

type listJSONPayload struct {
	Version string          `json:"version"`
	Store   string          `json:"store"`
	Count   int             `json:"count"`
	Entries []listJSONEntry `json:"entries"`
}

func renderListJSON(cmd *cobra.Command, storeID string, entries []listEntry) error {
	payload := listJSONPayload{
		Version: "1.0",
		Store:   storeID,
		Count:   len(entries),
		Entries: make([]listJSONEntry, len(entries)),
	}

	for i, e := range entries {
		payload.Entries[i] = listJSONEntry{
			Key:   e.Key,
			Kind:  e.Value.Kind().String(),
			Value: e.Value.Interface(),
		}
	}

	encoder := json.NewEncoder(cmd.OutOrStdout())
	encoder.SetIndent("", "  ")
	return encoder.Encode(payload)
}
