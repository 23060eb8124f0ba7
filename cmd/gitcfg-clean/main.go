// Command gitcfg-clean walks a working tree and removes (or, by default,
// reports) untracked and ignored files, mirroring "git clean"'s toggles.
package main

import (
	"fmt"
	"os"
	"os/signal"
	"sync/atomic"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/jcorbin/gitcfg/clean"
	"github.com/jcorbin/gitcfg/internal/socutil"
)

var log = logrus.New()

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

type rootFlags struct {
	root               string
	configFile         string
	execute            bool
	debug              bool
	ignored            bool
	precious           bool
	directories        bool
	repositories       bool
	skipHidden         string
	findUntrackedRepos string
	format             string
	pathspec           string
}

func newRootCommand() *cobra.Command {
	var f rootFlags

	cmd := &cobra.Command{
		Use:   "gitcfg-clean [path] [pathspec...]",
		Short: "Remove untracked and ignored files from a working tree",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			root := "."
			var pathspec []string
			if len(args) > 0 {
				root = args[0]
				pathspec = args[1:]
			}
			return run(root, pathspec, f)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&f.configFile, "config", "", "load additional defaults from a YAML config file")
	flags.BoolVar(&f.execute, "execute", false, "actually remove matched entries (default is a dry run)")
	flags.BoolVarP(&f.debug, "debug", "v", false, "log every skipped entry in addition to matches")
	flags.BoolVarP(&f.ignored, "ignored", "x", false, "also match files matched by an ignore pattern")
	flags.BoolVarP(&f.precious, "precious", "p", false, "also match ignored files marked precious (requires --ignored)")
	flags.BoolVarP(&f.directories, "directories", "d", false, "match a wholly untracked directory as one unit")
	flags.BoolVarP(&f.repositories, "repositories", "r", false, "also match nested repository directories")
	flags.StringVar(&f.skipHidden, "skip-hidden-repositories", "none", "one of none, nonbare, all: how deletion of ignored/precious directories looks for repositories hidden inside them")
	flags.StringVar(&f.findUntrackedRepos, "find-untracked-repositories", "nonbare", "one of nonbare, all: whether untracked bare checkouts are classified as repositories")
	flags.StringVar(&f.format, "format", "human", "report format: human or json")
	flags.StringVar(&f.pathspec, "pathspec", "", `pathspec as one shell-quoted string (e.g. --pathspec '"a dir" b.txt'), merged with any trailing positional pathspec`)

	return cmd
}

func run(root string, pathspec []string, f rootFlags) error {
	if f.debug {
		log.SetLevel(logrus.DebugLevel)
	}

	opts := clean.Options{
		Execute:      f.execute,
		Debug:        f.debug,
		Ignored:      f.ignored,
		Precious:     f.precious,
		Directories:  f.directories,
		Repositories: f.repositories,
	}
	switch f.skipHidden {
	case "nonbare":
		opts.SkipHiddenRepositories = clean.SkipHiddenNonBare
	case "all":
		opts.SkipHiddenRepositories = clean.SkipHiddenAll
	default:
		opts.SkipHiddenRepositories = clean.SkipHiddenNone
	}
	if f.findUntrackedRepos == "all" {
		opts.FindUntrackedRepositories = clean.FindAllRepositories
	}

	if f.configFile != "" {
		merged, err := clean.LoadOptionsFile(f.configFile, opts)
		if err != nil {
			return fmt.Errorf("gitcfg-clean: loading %s: %w", f.configFile, err)
		}
		opts = merged
	}

	if f.pathspec != "" {
		pathspec = append(append([]string(nil), clean.ParsePathspec(f.pathspec)...), pathspec...)
	}

	log.WithFields(logrus.Fields{
		"root":     root,
		"pathspec": string(socutil.QuotedArgs(pathspec)),
	}).Debug("starting clean")

	var interrupted atomic.Bool
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt)
	defer signal.Stop(sigCh)
	go func() {
		if _, ok := <-sigCh; ok {
			log.Warn("interrupt received, finishing as a dry run")
			interrupted.Store(true)
		}
	}()

	classifier := clean.New(opts)
	classifier.Interrupt = interrupted.Load

	report, err := classifier.Clean(root, pathspec)
	if err != nil {
		return err
	}
	log.WithFields(logrus.Fields{
		"removed":      len(report.Removed),
		"would_remove": len(report.WouldRemove),
	}).Debug("clean finished")

	format := clean.FormatHuman
	if f.format == "json" {
		format = clean.FormatJSON
	}
	return report.WriteTo(os.Stdout, format, f.execute)
}
