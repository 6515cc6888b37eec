package main

import (
	"github.com/spf13/cobra"
)

// skipInit lists commands that run without configuration or a store.
var skipInit = map[string]bool{
	"pond":       true,
	"version":    true,
	"help":       true,
	"completion": true,
}

type rootFlags struct {
	configPath string
	backend    string
	verbose    bool
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}
	app := &AppContext{}

	cmd := &cobra.Command{
		Use:           "pond",
		Short:         "pond reads and writes typed values in local key/value stores",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if skipInit[cmd.Name()] {
				return nil
			}
			return app.init(flags)
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return app.Close()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cmd.PersistentFlags().StringVar(&flags.configPath, "config", "", "Path to the config file (default ~/.pond/config.yaml)")
	cmd.PersistentFlags().StringVarP(&flags.backend, "backend", "b", "", "Backend to use: memory, noop, preferences, secure or blob")
	cmd.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "Enable verbose logging")

	cmd.AddCommand(newGetCmd(app))
	cmd.AddCommand(newSetCmd(app))
	cmd.AddCommand(newRemoveCmd(app))
	cmd.AddCommand(newHasCmd(app))
	cmd.AddCommand(newListCmd(app))
	cmd.AddCommand(newClearCmd(app))
	cmd.AddCommand(newCopyCmd(app))
	cmd.AddCommand(newBrowseCmd(app))
	cmd.AddCommand(newVersionCmd())

	return cmd
}
