// Command gitcfg-dump renders a git-config file as Markdown or HTML,
// optionally writing it atomically to a file instead of stdout.
package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/repr"
	"github.com/google/renameio"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/jcorbin/gitcfg/config"
	"github.com/jcorbin/gitcfg/internal/configdoc"
	"github.com/jcorbin/gitcfg/internal/socutil"
)

var log = logrus.New()

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

type rootOptions struct {
	file    string
	out     string
	format  string
	debug   bool
}

func newRootCommand() *cobra.Command {
	var opts rootOptions

	cmd := &cobra.Command{
		Use:   "gitcfg-dump",
		Short: "Render a git-config file as a Markdown or HTML report",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.file, "file", "", "config file to read (default: search for .git/config)")
	flags.StringVar(&opts.out, "out", "", "write the report here instead of stdout")
	flags.StringVar(&opts.format, "format", "markdown", "output format: markdown or html")
	flags.BoolVar(&opts.debug, "debug", false, "log resolution steps and repr-dump the section index")

	return cmd
}

func run(opts rootOptions) error {
	if opts.debug {
		log.SetLevel(logrus.DebugLevel)
	}

	path := opts.file
	if path == "" {
		_, found, err := socutil.FindWDFile(".git/config")
		if err != nil {
			return err
		}
		if found == "" {
			return fmt.Errorf("gitcfg-dump: no .git/config found from the current directory")
		}
		path = found
	}
	log.WithField("path", path).Debug("reading config file")

	src, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	doc, err := config.Parse(src)
	if err != nil {
		return fmt.Errorf("gitcfg-dump: parsing %s: %w", path, err)
	}
	log.WithField("sections", len(doc.Sections())).Debug("parsed config file")

	if opts.debug {
		repr.Println(doc.Sections())
	}

	var rendered []byte
	switch opts.format {
	case "markdown", "md", "":
		rendered = configdoc.Markdown(doc)
	case "html":
		rendered = configdoc.HTML(doc)
	default:
		return fmt.Errorf("gitcfg-dump: unsupported --format %q", opts.format)
	}

	if opts.out == "" {
		_, err := os.Stdout.Write(rendered)
		return err
	}
	return renameio.WriteFile(opts.out, rendered, 0o644)
}
