package main

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"

	"github.com/dhamidi/hxparse/config"
)

const version = "0.1.0"

type globalOptions struct {
	configPath string
	verbosity  int
	logFile    string

	config *config.Config
}

// load reads the configuration and sets up logging. Command-line flags win
// over the configuration file.
func (o *globalOptions) load() error {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return err
	}
	o.config = cfg

	verbosity := cfg.Log.Verbosity
	if o.verbosity > 0 {
		verbosity = o.verbosity
	}
	var logPath *string
	if o.logFile != "" {
		logPath = &o.logFile
	} else if cfg.Log.File != "" {
		logPath = &cfg.Log.File
	}
	commonlog.Configure(verbosity, logPath)
	return nil
}

func newRootCmd() *cobra.Command {
	opts := &globalOptions{}

	rootCmd := &cobra.Command{
		Use:           "hxparse",
		Short:         "Error-tolerant Haxe expression parser",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.load()
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", "", "configuration file (default ./"+config.Filename+" when present)")
	flags.CountVarP(&opts.verbosity, "verbose", "v", "log verbosity (repeat for more)")
	flags.StringVar(&opts.logFile, "log", "", "write logs to this file instead of stderr")

	rootCmd.AddCommand(newParseCmd())
	rootCmd.AddCommand(newTokensCmd())
	rootCmd.AddCommand(newCheckCmd(opts))
	rootCmd.AddCommand(newLSPCmd(opts))

	return rootCmd
}

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		rootCmd.PrintErrln("hxparse:", err)
		os.Exit(1)
	}
}
