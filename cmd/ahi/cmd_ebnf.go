package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"reflect"

	"github.com/spf13/cobra"
	"golang.org/x/exp/ebnf"

	"github.com/dhamidi/hxparse/haxe/grammar"
	"github.com/dhamidi/hxparse/haxe/parser"
)

func newEbnfCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "ebnf",
		Short:         "EBNF grammar tools",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.AddCommand(newEbnfCheckCmd())
	cmd.AddCommand(newEbnfPrintCmd())
	cmd.AddCommand(newEbnfLexCmd())

	return cmd
}

func newEbnfCheckCmd() *cobra.Command {
	var startProduction string

	cmd := &cobra.Command{
		Use:           "check [file]",
		Short:         "Parse and verify an EBNF grammar file (default: the built-in expression grammar)",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			var g ebnf.Grammar
			var err error
			if len(args) == 0 {
				if startProduction == "" {
					startProduction = grammar.Start
				}
				g, err = grammar.Parse()
			} else {
				g, err = parseFile(args[0])
			}
			if err != nil {
				printErrors(out, err)
				return err
			}

			if startProduction != "" {
				if err := ebnf.Verify(g, startProduction); err != nil {
					printErrors(out, err)
					return err
				}
			}

			if len(args) == 0 {
				if err := checkTerminals(g); err != nil {
					printErrors(out, err)
					return err
				}
				if err := errors.Join(grammar.CrossCheck(g, []byte(lexerSample))...); err != nil {
					printErrors(out, err)
					return err
				}
			}

			fmt.Fprintf(out, "%d productions ok\n", len(g))
			return nil
		},
	}

	cmd.Flags().StringVar(&startProduction, "start", "", "start production for verification (if empty, only checks syntax of a file)")

	return cmd
}

func newEbnfPrintCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "print",
		Short: "Print the built-in expression grammar",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := cmd.OutOrStdout().Write(grammar.Source())
			return err
		},
	}
}

// lexerSample covers every literal form the lexer knows.
const lexerSample = `a _b c9 0 42 0x1F 1.5 2e10 3.25E-2 1...2 "s" "a'b\"c" 'q' 'it\'s'`

func newEbnfLexCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "lex <file>",
		Short: "Compare the lexer against the lexical productions of the built-in grammar",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read file: %w", err)
			}
			g, err := grammar.Parse()
			if err != nil {
				return err
			}
			errs := grammar.CrossCheck(g, src)
			for _, e := range errs {
				fmt.Fprintln(cmd.OutOrStdout(), e)
			}
			if len(errs) > 0 {
				return fmt.Errorf("%d mismatches", len(errs))
			}
			fmt.Fprintln(cmd.OutOrStdout(), "lexer agrees with grammar")
			return nil
		},
	}
}

func parseFile(filename string) (ebnf.Grammar, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer f.Close()
	return ebnf.Parse(filename, f)
}

// checkTerminals makes sure the lexer produces a single token for every
// terminal the grammar uses.
func checkTerminals(g ebnf.Grammar) error {
	var errs []error
	for _, term := range grammar.Terminals(g) {
		tokens := parser.Tokenize([]byte(term), "")
		if len(tokens) != 2 || tokens[0].Literal != term || tokens[0].Kind == parser.TokenInvalid {
			errs = append(errs, fmt.Errorf("terminal %q does not lex as a single token", term))
		}
	}
	return errors.Join(errs...)
}

func printErrors(w io.Writer, err error) {
	for {
		v := reflect.ValueOf(err)
		if v.Kind() == reflect.Slice {
			for i := 0; i < v.Len(); i++ {
				fmt.Fprintln(w, v.Index(i).Interface())
			}
			return
		}
		if joined, ok := err.(interface{ Unwrap() []error }); ok {
			for _, e := range joined.Unwrap() {
				fmt.Fprintln(w, e)
			}
			return
		}
		next := errors.Unwrap(err)
		if next == nil {
			fmt.Fprintln(w, err)
			return
		}
		err = next
	}
}
