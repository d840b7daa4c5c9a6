package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/dhamidi/hxparse/haxe/parser"
)

func newTokensCmd() *cobra.Command {
	var includeTrivia bool

	cmd := &cobra.Command{
		Use:   "tokens [file]",
		Short: "Print the tokens of a Haxe source",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name, data, err := readInput(cmd, args)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 1, ' ', 0)
			lexer := parser.NewLexer(data, name)
			for {
				tok := lexer.NextToken()
				if tok.Kind.IsTrivia() && !includeTrivia {
					continue
				}
				fmt.Fprintf(w, "%s\t%s\t%q\n", tok.Span.Start, tok.Kind, tok.Literal)
				if tok.Kind == parser.TokenEOF {
					break
				}
			}
			return w.Flush()
		},
	}

	cmd.Flags().BoolVar(&includeTrivia, "trivia", false, "include whitespace and comments")

	return cmd
}
