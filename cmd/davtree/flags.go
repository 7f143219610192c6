package main

import (
	"flag"
	"fmt"
	"io"

	"github.com/desertwitch/davtree/internal/configuration"
	"github.com/dustin/go-humanize"
)

// cliFlags holds the parsed command-line flags and the remaining arguments.
type cliFlags struct {
	configFile    string
	logFile       string
	root          string
	minFree       string
	verifyHash    bool
	preserveOwner bool
	debug         bool

	set  map[string]bool
	args []string
}

func parseFlags(args []string, output io.Writer) (*cliFlags, error) {
	f := &cliFlags{
		set: make(map[string]bool),
	}

	fs := flag.NewFlagSet("davtree", flag.ContinueOnError)
	fs.SetOutput(output)
	fs.Usage = func() {
		fmt.Fprintln(output, "usage: davtree [flags] resolve <path>")
		fmt.Fprintln(output, "       davtree [flags] copy <src> <dst>")
		fmt.Fprintln(output, "       davtree [flags] move <src> <dst>")
		fs.PrintDefaults()
	}

	fs.StringVar(&f.configFile, "config", "", "read settings from a dotenv-style file")
	fs.StringVar(&f.logFile, "logfile", "", "additionally write JSON logs to file")
	fs.StringVar(&f.root, "root", "", "root directory of the tree")
	fs.StringVar(&f.minFree, "min-free", "", "space to keep free on the root's filesystem (e.g. 10GiB)")
	fs.BoolVar(&f.verifyHash, "verify-hash", true, "verify copied file contents")
	fs.BoolVar(&f.preserveOwner, "preserve-owner", false, "copy file ownership (default: when running as root)")
	fs.BoolVar(&f.debug, "debug", false, "enable debug logging")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("(flags) %w: %w", ErrUsage, err)
	}

	fs.Visit(func(fl *flag.Flag) {
		f.set[fl.Name] = true
	})
	f.args = fs.Args()

	return f, nil
}

// configure returns the [configuration.AppConfiguration] resulting from the
// defaults, the configuration file (if any) and the explicitly set flags, in
// that order of precedence.
func (f *cliFlags) configure(provider *configuration.ConfigProviderImpl) (*configuration.AppConfiguration, error) {
	config := configuration.NewAppConfiguration()

	if f.configFile != "" {
		if err := provider.Apply(config, f.configFile); err != nil {
			return nil, fmt.Errorf("(flags) %w", err)
		}
	}

	if f.set["root"] {
		config.Root = f.root
	}

	if f.set["min-free"] {
		size, err := humanize.ParseBytes(f.minFree)
		if err != nil {
			return nil, fmt.Errorf("(flags) %w: min-free: %w", ErrUsage, err)
		}
		config.MinFree = size
	}

	if f.set["verify-hash"] {
		config.VerifyHash = f.verifyHash
	}

	if f.set["preserve-owner"] {
		config.PreserveOwner = f.preserveOwner
	}

	if config.Root == "" {
		return nil, fmt.Errorf("(flags) %w", ErrNoRoot)
	}

	return config, nil
}
