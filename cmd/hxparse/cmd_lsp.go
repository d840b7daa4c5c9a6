package main

import (
	"github.com/spf13/cobra"

	"github.com/dhamidi/hxparse/haxe/codebase"
)

func newLSPCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "lsp",
		Short: "Start the Language Server Protocol server on stdio",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			server := codebase.NewLSPServer(version, opts.config)
			return server.RunStdio()
		},
	}
}
