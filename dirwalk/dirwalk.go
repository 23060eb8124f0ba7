// Package dirwalk implements a reference directory walker satisfying the
// walker contract clean.Classifier is built against: something that walks
// a working tree, classifies each entry it finds as untracked, ignored, a
// nested repository, or precious, and lets its caller decide whether to
// recurse into a directory entry.
//
// clean.Classifier never imports a concrete Walker; it only depends on the
// Walker/Delegate interfaces below, so a caller backed by a real ignore
// engine (gix-dir's upstream equivalent) can stand in for FilesystemWalker
// without clean needing to change.
package dirwalk

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Classification tags why an entry was surfaced to a Delegate at all:
// untracked or ignored material, or a nested repository. FilesystemWalker
// has no index of tracked paths, so it also surfaces files the repository
// tracks, classified Untracked unless an ignore pattern matches them.
type Classification int

const (
	// Untracked is a file or directory that is neither tracked nor
	// matched by any ignore pattern.
	Untracked Classification = iota
	// Ignored is a file or directory matched by an ignore pattern.
	Ignored
	// PreciousIgnored is Ignored material additionally marked precious
	// (via a "precious" gitattributes-style marker), meaning it should
	// survive an ordinary clean and only be removed when the caller has
	// opted into deleting both ignored and precious files.
	PreciousIgnored
	// Repository is a directory that is itself the root of a nested
	// repository (contains its own ".git").
	Repository
)

func (c Classification) String() string {
	switch c {
	case Untracked:
		return "untracked"
	case Ignored:
		return "ignored"
	case PreciousIgnored:
		return "precious"
	case Repository:
		return "repository"
	default:
		return "unknown"
	}
}

// ForDeletionMode controls whether and how a Walker looks for nested
// repositories hidden inside an ignored or precious directory that would
// otherwise be surfaced as a single, opaque, collapsed entry. It mirrors
// the upstream walker's for-deletion modes, which only matter once a
// caller has both opted into descending into ignored/precious material
// (clean.Options.Ignored || clean.Options.Precious) and into matching
// whole directories (clean.Options.Directories).
type ForDeletionMode int

const (
	// ForDeletionOpaque does not look inside ignored/precious directories
	// for nested repositories at all: a repository hidden there is
	// neither found nor reported.
	ForDeletionOpaque ForDeletionMode = iota
	// ForDeletionFindNonBareInIgnored looks for ordinary (non-bare)
	// nested repositories inside ignored/precious directories.
	ForDeletionFindNonBareInIgnored
	// ForDeletionFindAnyInIgnored looks for both ordinary and bare nested
	// repositories inside ignored/precious directories.
	ForDeletionFindAnyInIgnored
	// ForDeletionMayHideRepositories does not look inside ignored/precious
	// directories for nested repositories, but marks each one surfaced so
	// a caller can warn that it might be hiding one.
	ForDeletionMayHideRepositories
)

// Entry is one candidate for deletion surfaced by a Walker.
type Entry struct {
	// Path is relative to the walk root, using '/' separators regardless
	// of host OS, matching how pathspecs and ignore patterns are written.
	Path  string
	IsDir bool
	Class Classification
	// PathspecExcluded is true when a non-empty pathspec passed to Walk
	// does not include this entry; a Delegate should prune it rather than
	// matching it, per the walk contract's pruning step.
	PathspecExcluded bool
	// MayHideRepository is true for an Ignored or PreciousIgnored
	// directory that was not checked for a nested repository because the
	// active ForDeletionMode is ForDeletionMayHideRepositories: it might
	// be hiding one the walk never looked for.
	MayHideRepository bool
}

// Delegate receives entries as a Walker discovers them.
type Delegate interface {
	// Visit is called once per candidate entry. When entry.IsDir is true,
	// the returned descend value tells the Walker whether to recurse into
	// it; a Walker must not recurse into a directory Visit declines.
	Visit(entry Entry) (descend bool)
}

// Walker walks root, a directory on disk, surfacing untracked/ignored
// material to delegate. pathspec, when non-empty, restricts which paths
// are considered included; entries it excludes are still surfaced (with
// Entry.PathspecExcluded set) so a Delegate can count them as pruned
// rather than the Walker silently dropping them.
type Walker interface {
	Walk(root string, pathspec []string, delegate Delegate) error
}

// Options configures FilesystemWalker.
type Options struct {
	// IgnorePatterns are .gitignore-style glob patterns, evaluated
	// relative to the walk root in the order given; a later pattern
	// prefixed with '!' re-includes a path an earlier pattern excluded.
	IgnorePatterns []string
	// PreciousPatterns are additionally evaluated against already-ignored
	// paths to mark them PreciousIgnored instead of plain Ignored.
	PreciousPatterns []string
	// SkipHiddenRepositories, when true, does not descend into a nested
	// repository directory whose name begins with '.'.
	SkipHiddenRepositories bool
	// FindBareRepositories additionally classifies an Untracked directory
	// containing HEAD, objects, and refs (but no .git) as Repository,
	// matching a bare repository checkout rather than only an ordinary
	// one.
	FindBareRepositories bool
	// ForDeletionMode controls nested-repository detection inside
	// Ignored/PreciousIgnored directories; see its doc comment.
	ForDeletionMode ForDeletionMode
}

// FilesystemWalker is a minimal, real Walker over the local filesystem. It
// is a reference implementation, not a full reimplementation of git's
// ignore-matching engine: patterns are matched with path/filepath.Match
// against the path as a whole and against its final component, which
// covers ordinary glob patterns but not the full .gitignore pattern
// language (character classes combined with "**" double-star segments,
// patterns anchored with a leading '/', etc. are not special-cased). It
// keeps no index of tracked paths: every entry no ignore pattern matches
// is surfaced as Untracked, tracked or not.
type FilesystemWalker struct {
	Options
}

// NewFilesystemWalker returns a FilesystemWalker configured with opts.
func NewFilesystemWalker(opts Options) *FilesystemWalker {
	return &FilesystemWalker{Options: opts}
}

func (w *FilesystemWalker) Walk(root string, pathspec []string, delegate Delegate) error {
	return w.walkDir(root, "", Untracked, pathspec, delegate)
}

// walkDir walks one directory level. inherited is Untracked, Ignored, or
// PreciousIgnored: a directory's ignored-ness (unlike a real .gitignore
// engine's pattern inheritance, which this reference walker does not
// implement) is otherwise per-entry, so a file under an ignored directory
// would never itself be classified ignored without this — and then the
// for-deletion modes below would have nothing to do, since they only ever
// apply to entries already classified Ignored/PreciousIgnored.
func (w *FilesystemWalker) walkDir(root, relDir string, inherited Classification, pathspec []string, delegate Delegate) error {
	absDir := filepath.Join(root, filepath.FromSlash(relDir))
	entries, err := os.ReadDir(absDir)
	if err != nil {
		return err
	}

	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = e.Name()
	}
	sort.Strings(names)

	byName := make(map[string]os.DirEntry, len(entries))
	for _, e := range entries {
		byName[e.Name()] = e
	}

	for _, name := range names {
		dirEntry := byName[name]
		relPath := name
		if relDir != "" {
			relPath = relDir + "/" + name
		}
		absPath := filepath.Join(absDir, name)
		isDir := dirEntry.IsDir()

		class := inherited
		if class == Untracked && w.matches(w.IgnorePatterns, relPath, isDir) {
			class = Ignored
		}
		if class == Ignored && w.matches(w.PreciousPatterns, relPath, isDir) {
			class = PreciousIgnored
		}

		isRepo := false
		mayHide := false
		if isDir {
			switch {
			case class == Untracked:
				isRepo = isRepositoryDir(absPath)
				if !isRepo && w.FindBareRepositories {
					isRepo = isBareRepositoryDir(absPath)
				}
			case w.ForDeletionMode == ForDeletionFindNonBareInIgnored:
				isRepo = isRepositoryDir(absPath)
			case w.ForDeletionMode == ForDeletionFindAnyInIgnored:
				isRepo = isRepositoryDir(absPath) || isBareRepositoryDir(absPath)
			case w.ForDeletionMode == ForDeletionMayHideRepositories:
				mayHide = true
			}
		}
		if isRepo {
			class = Repository
		}

		entry := Entry{
			Path:              relPath,
			IsDir:             isDir,
			Class:             class,
			PathspecExcluded:  !pathspecIncludes(pathspec, relPath, isDir),
			MayHideRepository: mayHide && class != Repository,
		}
		descend := delegate.Visit(entry)

		if isDir && descend {
			if class == Repository && w.SkipHiddenRepositories && len(name) > 0 && name[0] == '.' {
				continue
			}
			childInherited := class
			if childInherited == Repository {
				childInherited = inherited
			}
			if err := w.walkDir(root, relPath, childInherited, pathspec, delegate); err != nil {
				return err
			}
		}
	}
	return nil
}

func isRepositoryDir(dir string) bool {
	info, err := os.Stat(filepath.Join(dir, ".git"))
	return err == nil && (info.IsDir() || info.Mode().IsRegular())
}

// isBareRepositoryDir reports whether dir looks like a bare repository
// checkout: no ".git" of its own, but the HEAD/objects/refs triad a bare
// repository stores at its root.
func isBareRepositoryDir(dir string) bool {
	for _, name := range []string{"HEAD", "objects", "refs"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			return false
		}
	}
	return true
}

// matches reports whether path (or, for a directory, path with a trailing
// slash) matches any pattern in patterns, honoring '!' negation in the
// order patterns are given.
func (w *FilesystemWalker) matches(patterns []string, path string, isDir bool) bool {
	matched := false
	for _, pat := range patterns {
		negate := false
		if len(pat) > 0 && pat[0] == '!' {
			negate = true
			pat = pat[1:]
		}
		if matchPattern(pat, path, isDir) {
			matched = !negate
		}
	}
	return matched
}

func matchPattern(pattern, path string, isDir bool) bool {
	if ok, _ := filepath.Match(pattern, path); ok {
		return true
	}
	if isDir {
		if ok, _ := filepath.Match(pattern, path+"/"); ok {
			return true
		}
	}
	// Match against the base name too, so a bare pattern like "*.log"
	// matches at any depth, not only at the walk root.
	base := path
	if idx := lastSlash(path); idx >= 0 {
		base = path[idx+1:]
	}
	ok, _ := filepath.Match(pattern, base)
	return ok
}

// pathspecIncludes reports whether path is included by patterns: an empty
// pathspec includes everything; otherwise path is included if some
// pattern matches it directly, if path is an ancestor directory of a
// pattern (it must be descended into to find that pattern's match), or if
// a pattern names an ancestor directory of path.
func pathspecIncludes(patterns []string, path string, isDir bool) bool {
	if len(patterns) == 0 {
		return true
	}
	for _, pat := range patterns {
		if matchPattern(pat, path, isDir) {
			return true
		}
		if isDir && (pat == path || strings.HasPrefix(pat, path+"/")) {
			return true
		}
		if strings.HasPrefix(path, pat+"/") {
			return true
		}
	}
	return false
}

func lastSlash(s string) int {
	for i := len(s) - 1; i >= 0; i-- {
		if s[i] == '/' {
			return i
		}
	}
	return -1
}
