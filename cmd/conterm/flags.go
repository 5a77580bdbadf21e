// ABOUTME: CLI flag parsing using stdlib flag package
// ABOUTME: Supports --settings, --theme, --width, --history, --verbose, --log, --version

package main

import "flag"

type cliArgs struct {
	settings string
	theme    string
	width    int
	history  string
	verbose  bool
	logFile  string
	demo     bool
	version  bool
}

func parseFlags() cliArgs {
	var args cliArgs

	flag.StringVar(&args.settings, "settings", "", "Path to YAML settings file")
	flag.StringVar(&args.theme, "theme", "", "Path to JSON theme file")
	flag.IntVar(&args.width, "width", 0, "Cap output width (0 = full terminal width)")
	flag.StringVar(&args.history, "history", "", "Path to a prompt history file to load and save")
	flag.BoolVar(&args.verbose, "verbose", false, "Enable debug logging")
	flag.StringVar(&args.logFile, "log", "", "Write logs to this file instead of stderr")
	flag.BoolVar(&args.demo, "demo", false, "Run the interactive prompt demo instead of paging")
	flag.BoolVar(&args.version, "version", false, "Show version and exit")

	flag.Parse()
	return args
}

// remaining returns the non-flag command-line arguments.
func (a cliArgs) remaining() []string {
	return flag.Args()
}
