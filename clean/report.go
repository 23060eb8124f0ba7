package clean

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/jcorbin/gitcfg/dirwalk"
	"github.com/jcorbin/gitcfg/internal/socutil"
)

// glyph returns the short status marker printed alongside a human-rendered
// entry: a precious/expendable marker for ignored material, matching the
// upstream clean tool's own output, and the empty string otherwise (the
// directory/repository suffix comes from kindSuffix).
func glyph(e Entry) string {
	switch e.Class {
	case dirwalk.PreciousIgnored:
		return "💲"
	case dirwalk.Ignored:
		return "🗑️"
	default:
		return ""
	}
}

func kindSuffix(e Entry) string {
	switch {
	case e.Class == dirwalk.Repository:
		return " repository"
	case e.IsDir:
		return "/"
	default:
		return ""
	}
}

// WriteTo renders report to w in the given Format.
func (report *Report) WriteTo(w io.Writer, format Format, execute bool) error {
	switch format {
	case FormatHuman:
		return report.writeHuman(w, execute)
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	default:
		return &ErrUnsupportedFormat{Format: format}
	}
}

func (report *Report) writeHuman(w io.Writer, execute bool) error {
	ew := &socutil.ErrWriter{Writer: w}

	verb := "WOULD remove"
	entries := report.WouldRemove
	if execute {
		verb = "Removing"
		entries = report.Removed
	}
	for _, e := range entries {
		marker := glyph(e)
		if marker != "" {
			marker = " (" + marker + ")"
		}
		fmt.Fprintf(ew, "%s %s%s%s\n", verb, e.Path, kindSuffix(e), marker)
	}
	for _, e := range report.Skipped {
		fmt.Fprintf(ew, "Skipping %s%s (%s)\n", e.Path, kindSuffix(e), e.Class)
	}
	if report.Interrupted {
		fmt.Fprintln(ew, "clean: interrupted, remaining matches were not removed")
	}
	if ew.Err != nil {
		return ew.Err
	}

	if execute {
		return nil
	}
	return report.writeSummary(ew, len(entries))
}

// writeSummary emits, at most, one line of skipped-count hints and a
// warning about repositories that might be hiding inside ignored or
// untracked directories the walk did not look inside of, mirroring the
// upstream clean tool's end-of-pass accounting.
func (report *Report) writeSummary(ew *socutil.ErrWriter, matched int) error {
	var hints []string
	if report.SkippedDirectories > 0 {
		hints = append(hints, fmt.Sprintf("skipped %d director%s - show with -d", report.SkippedDirectories, plural(report.SkippedDirectories, "y", "ies")))
	}
	if report.SkippedRepositories > 0 {
		hints = append(hints, fmt.Sprintf("skipped %d repositor%s - show with -r", report.SkippedRepositories, plural(report.SkippedRepositories, "y", "ies")))
	}
	if report.SkippedIgnored > 0 {
		hints = append(hints, fmt.Sprintf("skipped %d expendable entr%s - show with -x", report.SkippedIgnored, plural(report.SkippedIgnored, "y", "ies")))
	}
	if report.SkippedPrecious > 0 {
		hints = append(hints, fmt.Sprintf("skipped %d precious entr%s - show with -p", report.SkippedPrecious, plural(report.SkippedPrecious, "y", "ies")))
	}
	if report.PrunedByPathspec > 0 && report.HasPathspec {
		hints = append(hints, fmt.Sprintf("try adjusting your pathspec to reveal %d pruned entries", report.PrunedByPathspec))
	}

	if matched == 0 {
		if len(hints) == 0 {
			fmt.Fprintln(ew, "clean: nothing to clean")
		} else {
			fmt.Fprintf(ew, "clean: nothing to clean (%s)\n", joinHints(hints))
		}
		return ew.Err
	}

	if report.SawIgnoredMayHideRepository {
		fmt.Fprintln(ew, "clean: WARNING: would remove repositories hidden inside ignored directories - use --skip-hidden-repositories to skip")
	}
	if report.SawUntrackedMayHideRepository {
		fmt.Fprintln(ew, "clean: WARNING: would remove repositories hidden inside untracked directories - use --find-untracked-repositories to find")
	}
	if len(hints) > 0 {
		fmt.Fprintf(ew, "clean: %s\n", joinHints(hints))
	}
	return ew.Err
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}

func joinHints(hints []string) string {
	out := hints[0]
	for _, h := range hints[1:] {
		out += "; " + h
	}
	return out
}
