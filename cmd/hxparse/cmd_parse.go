package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dhamidi/hxparse/format"
	"github.com/dhamidi/hxparse/haxe/parser"
)

func newParseCmd() *cobra.Command {
	var outputFormat string
	var includePositions bool
	var offset int
	var typeArgs bool

	cmd := &cobra.Command{
		Use:   "parse [file]",
		Short: "Parse one Haxe expression and dump the tree",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name, data, err := readInput(cmd, args)
			if err != nil {
				return err
			}

			encoder, err := format.NewEncoder(outputFormat, cmd.OutOrStdout(), includePositions)
			if err != nil {
				return err
			}

			opts := []parser.Option{parser.WithFile(name), parser.WithOffset(offset)}
			if typeArgs {
				opts = append(opts, parser.InTypeArguments())
			}
			res := parser.ParseExpression(data, opts...)

			if err := encoder.Encode(res); err != nil {
				return fmt.Errorf("encode: %w", err)
			}
			if n := len(res.Diagnostics); n > 0 {
				return fmt.Errorf("%s: %d syntax error(s)", name, n)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "format", "f", "tree", "output format (json, tree, sexpr, source)")
	cmd.Flags().BoolVar(&includePositions, "positions", false, "include node positions in tree output")
	cmd.Flags().IntVar(&offset, "offset", 0, "byte offset to start parsing at")
	cmd.Flags().BoolVar(&typeArgs, "type-args", false, "parse as if inside a type-argument list")

	return cmd
}
