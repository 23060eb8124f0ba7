// Package clean implements a reference classifier for deciding which
// untracked and ignored files a working tree clean should remove: it
// walks a tree via dirwalk.Walker, applies the toggles in Options to each
// candidate entry, and either deletes it or records it as a dry-run
// candidate in the returned Report.
package clean

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/jcorbin/gitcfg/dirwalk"
)

// FindRepository controls which nested directories the walker classifies
// as repositories: an ordinary, non-bare checkout only, or additionally
// bare checkouts that have no ".git" of their own. It is the {nonbare,
// all} enum Options.FindUntrackedRepositories takes.
type FindRepository int

const (
	FindNonBareRepositories FindRepository = iota
	FindAllRepositories
)

func (f FindRepository) String() string {
	if f == FindAllRepositories {
		return "all"
	}
	return "nonbare"
}

// SkipHiddenMode controls how deletion of ignored/precious directories is
// allowed to interact with a repository hidden inside one: the {none,
// nonbare, all} enum Options.SkipHiddenRepositories takes. Once
// Options.Directories and (Options.Ignored or Options.Precious) are both
// set, None leaves ignored directories opaque to repository detection (a
// repository hidden there is neither found nor warned about), while
// NonBare/All look for ordinary or ordinary-and-bare nested repositories
// there instead of treating the directory as a single unit. When those
// toggles are not both set, the mode does not select the detection
// behavior: every ignored directory is flagged as possibly hiding a
// repository so the end-of-run summary can warn about it.
type SkipHiddenMode int

const (
	SkipHiddenNone SkipHiddenMode = iota
	SkipHiddenNonBare
	SkipHiddenAll
)

func (m SkipHiddenMode) String() string {
	switch m {
	case SkipHiddenNonBare:
		return "nonbare"
	case SkipHiddenAll:
		return "all"
	default:
		return "none"
	}
}

// Format selects how Report.WriteTo renders a completed run.
type Format int

const (
	FormatHuman Format = iota
	FormatJSON
)

// ErrUnsupportedFormat is returned by Report.WriteTo for an unrecognized Format.
type ErrUnsupportedFormat struct{ Format Format }

func (e *ErrUnsupportedFormat) Error() string {
	return fmt.Sprintf("clean: unsupported format %d", e.Format)
}

// Options toggles what a Classifier run treats as deletable and whether
// it actually deletes anything.
type Options struct {
	// Execute actually removes matched entries; otherwise the run is a
	// dry run and matches are only recorded in the Report.
	Execute bool
	// Debug additionally records every skipped entry (directories walked
	// past, ignored material left alone, nested repositories left alone)
	// in the Report, not only what was or would be removed.
	Debug bool
	// Ignored additionally matches entries matched by an ignore pattern.
	Ignored bool
	// Precious additionally matches ignored entries marked precious; it
	// has no effect unless Ignored is also set.
	Precious bool
	// Directories matches a wholly-untracked directory as one unit rather
	// than recursing into it to match its individual files.
	Directories bool
	// Repositories additionally matches nested repository directories.
	Repositories bool
	// SkipHiddenRepositories controls nested-repository detection inside
	// ignored/precious directories once Directories and (Ignored or
	// Precious) are both set; see SkipHiddenMode.
	SkipHiddenRepositories SkipHiddenMode
	// FindUntrackedRepositories controls which untracked nested
	// directories are classified as repositories at all.
	FindUntrackedRepositories FindRepository
	// IgnorePatterns and PreciousPatterns are passed through to the
	// underlying dirwalk.Walker when one is built by New; a caller
	// supplying its own dirwalk.Walker may ignore these.
	IgnorePatterns   []string
	PreciousPatterns []string
}

// forDeletionMode derives the dirwalk.ForDeletionMode a walk should use
// from the toggles in opts, matching the upstream walker's own
// derivation: nested-repository detection inside ignored/precious
// directories only kicks in once both whole-directory matching and
// descent into ignored/precious material are opted into; otherwise an
// ignored directory is left opaque, but flagged as possibly hiding a
// repository so the end-of-run summary can warn about it.
func (opts Options) forDeletionMode() dirwalk.ForDeletionMode {
	if opts.Directories && (opts.Ignored || opts.Precious) {
		switch opts.SkipHiddenRepositories {
		case SkipHiddenNonBare:
			return dirwalk.ForDeletionFindNonBareInIgnored
		case SkipHiddenAll:
			return dirwalk.ForDeletionFindAnyInIgnored
		default:
			return dirwalk.ForDeletionOpaque
		}
	}
	return dirwalk.ForDeletionMayHideRepositories
}

// Entry is one matched candidate, retained in a Report for both human and
// machine-readable rendering.
type Entry struct {
	Path  string
	IsDir bool
	Class dirwalk.Classification
}

// Report is the outcome of one Classifier run.
type Report struct {
	Removed     []Entry // entries actually deleted (Options.Execute)
	WouldRemove []Entry // entries that matched but were not deleted
	Skipped     []Entry // entries left alone for Debug inspection
	Interrupted bool    // true if an interrupt downgraded the run to dry-run partway through

	SawIgnored    bool
	SawPrecious   bool
	SawRepository bool

	// SkippedDirectories, SkippedRepositories, SkippedIgnored, and
	// SkippedPrecious count entries left alone because the corresponding
	// Options toggle was off, regardless of Options.Debug; the
	// human-readable summary turns these into "show with -d/-r/-x/-p"
	// hints.
	SkippedDirectories  int
	SkippedRepositories int
	SkippedIgnored      int
	SkippedPrecious     int

	// PrunedByPathspec counts entries a non-empty pathspec excluded.
	PrunedByPathspec int
	HasPathspec      bool

	// SawIgnoredMayHideRepository records whether the walk surfaced an
	// ignored/precious directory that was not checked for a nested
	// repository, whether or not that directory was then matched.
	// SawUntrackedMayHideRepository records whether an untracked
	// directory was matched as a whole while untracked bare repositories
	// were not being looked for. The end-of-run summary turns each into a
	// warning that a repository might be hiding there.
	SawIgnoredMayHideRepository   bool
	SawUntrackedMayHideRepository bool
}

// Classifier walks a working tree and decides what ordinary clean should
// remove from it.
type Classifier struct {
	Options Options
	Walker  dirwalk.Walker
	// Interrupt, if set, is polled before every deletion; once it returns
	// true the rest of the run is downgraded to a dry run (matches are
	// still recorded, in WouldRemove, but nothing further is deleted),
	// the same "stop touching the tree but finish the accounting" shape
	// the upstream interruptible-delegate wrapper gives a ctrl-C'd clean.
	Interrupt func() bool
}

// New returns a Classifier with a dirwalk.FilesystemWalker built from
// opts's ignore/precious patterns and repository-detection toggles.
func New(opts Options) *Classifier {
	return &Classifier{
		Options: opts,
		Walker: dirwalk.NewFilesystemWalker(dirwalk.Options{
			IgnorePatterns:         opts.IgnorePatterns,
			PreciousPatterns:       opts.PreciousPatterns,
			SkipHiddenRepositories: opts.SkipHiddenRepositories != SkipHiddenNone,
			FindBareRepositories:   opts.FindUntrackedRepositories == FindAllRepositories,
			ForDeletionMode:        opts.forDeletionMode(),
		}),
	}
}

// Clean walks root and classifies every entry dirwalk surfaces, deleting
// matches when Options.Execute is set. pathspec, when non-empty,
// restricts the walk to entries it includes; everything it excludes is
// pruned and counted in the returned Report rather than matched.
func (c *Classifier) Clean(root string, pathspec []string) (*Report, error) {
	report := &Report{HasPathspec: len(pathspec) > 0}
	d := &delegate{classifier: c, root: root, report: report}
	if err := c.Walker.Walk(root, pathspec, d); err != nil {
		return report, err
	}
	return report, nil
}

type delegate struct {
	classifier *Classifier
	root       string
	report     *Report
}

func (d *delegate) Visit(entry dirwalk.Entry) (descend bool) {
	opts := d.classifier.Options

	if entry.PathspecExcluded {
		d.report.PrunedByPathspec++
		d.skip(entry)
		return false
	}

	if entry.MayHideRepository {
		d.report.SawIgnoredMayHideRepository = true
	}

	switch entry.Class {
	case dirwalk.Ignored:
		d.report.SawIgnored = true
		if !opts.Ignored {
			d.report.SkippedIgnored++
			d.skip(entry)
			return false
		}

	case dirwalk.PreciousIgnored:
		d.report.SawPrecious = true
		if !opts.Ignored || !opts.Precious {
			d.report.SkippedPrecious++
			d.skip(entry)
			return false
		}

	case dirwalk.Repository:
		d.report.SawRepository = true
		if !opts.Repositories {
			d.report.SkippedRepositories++
			d.skip(entry)
			return false
		}

	case dirwalk.Untracked:
		if entry.IsDir && !opts.Directories {
			// The directory would be matched as a whole with -d; instead
			// recurse to find its individual untracked files.
			d.report.SkippedDirectories++
			d.skip(entry)
			return true
		}
		if entry.IsDir && opts.FindUntrackedRepositories != FindAllRepositories {
			d.report.SawUntrackedMayHideRepository = true
		}
	}

	d.match(entry)
	return false
}

func (d *delegate) skip(entry dirwalk.Entry) {
	if d.classifier.Options.Debug {
		d.report.Skipped = append(d.report.Skipped, Entry{Path: entry.Path, IsDir: entry.IsDir, Class: entry.Class})
	}
}

func (d *delegate) match(entry dirwalk.Entry) {
	ce := Entry{Path: entry.Path, IsDir: entry.IsDir, Class: entry.Class}

	interrupted := d.report.Interrupted
	if !interrupted && d.classifier.Interrupt != nil && d.classifier.Interrupt() {
		interrupted = true
		d.report.Interrupted = true
	}

	if d.classifier.Options.Execute && !interrupted {
		if err := remove(filepath.Join(d.root, filepath.FromSlash(entry.Path)), entry.IsDir); err == nil {
			d.report.Removed = append(d.report.Removed, ce)
			return
		}
	}
	d.report.WouldRemove = append(d.report.WouldRemove, ce)
}

func remove(path string, isDir bool) error {
	if isDir {
		return os.RemoveAll(path)
	}
	return os.Remove(path)
}
