package dirwalk

import "sort"

// MemEntry is one pre-classified entry in a MemWalker's fixed tree,
// letting tests drive clean.Classifier without touching a real
// filesystem.
type MemEntry struct {
	Path     string
	IsDir    bool
	Class    Classification
	Children []MemEntry
}

// MemWalker is an in-memory Walker over a fixed entry tree, grounded the
// same way the rest of this module's test doubles are: a small in-memory
// stand-in for the real, I/O-backed thing.
type MemWalker struct {
	Entries []MemEntry
}

func (w *MemWalker) Walk(root string, pathspec []string, delegate Delegate) error {
	return walkMem(w.Entries, pathspec, delegate)
}

func walkMem(entries []MemEntry, pathspec []string, delegate Delegate) error {
	sorted := make([]MemEntry, len(entries))
	copy(sorted, entries)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Path < sorted[j].Path })

	for _, me := range sorted {
		entry := Entry{
			Path:             me.Path,
			IsDir:            me.IsDir,
			Class:            me.Class,
			PathspecExcluded: !pathspecIncludes(pathspec, me.Path, me.IsDir),
		}
		descend := delegate.Visit(entry)
		if me.IsDir && descend {
			if err := walkMem(me.Children, pathspec, delegate); err != nil {
				return err
			}
		}
	}
	return nil
}
