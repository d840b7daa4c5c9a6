package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

// readInput returns the contents of the named file, or of standard input
// when no file or "-" is given.
func readInput(cmd *cobra.Command, args []string) (name string, data []byte, err error) {
	if len(args) == 0 || args[0] == "-" {
		data, err = io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", nil, fmt.Errorf("read stdin: %w", err)
		}
		return "<stdin>", data, nil
	}
	data, err = os.ReadFile(args[0])
	if err != nil {
		return "", nil, fmt.Errorf("read input: %w", err)
	}
	return args[0], data, nil
}
