package clean_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jcorbin/gitcfg/clean"
	"github.com/jcorbin/gitcfg/dirwalk"
)

func paths(entries []clean.Entry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Path
	}
	return out
}

func TestClassifier_dryRunMatchesUntrackedFiles(t *testing.T) {
	walker := &dirwalk.MemWalker{Entries: []dirwalk.MemEntry{
		{Path: "a.txt", Class: dirwalk.Untracked},
		{Path: "b.log", Class: dirwalk.Ignored},
	}}

	c := &clean.Classifier{Options: clean.Options{}, Walker: walker}
	report, err := c.Clean("/does/not/matter", nil)
	require.NoError(t, err)

	assert.Equal(t, []string{"a.txt"}, paths(report.WouldRemove))
	assert.Empty(t, report.Removed)
	assert.True(t, report.SawIgnored)
}

func TestClassifier_ignoredRequiresOptIn(t *testing.T) {
	walker := &dirwalk.MemWalker{Entries: []dirwalk.MemEntry{
		{Path: "b.log", Class: dirwalk.Ignored},
	}}

	c := &clean.Classifier{Options: clean.Options{Ignored: true}, Walker: walker}
	report, err := c.Clean("/does/not/matter", nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"b.log"}, paths(report.WouldRemove))
}

func TestClassifier_preciousRequiresIgnoredAndPrecious(t *testing.T) {
	walker := &dirwalk.MemWalker{Entries: []dirwalk.MemEntry{
		{Path: "keep.bin", Class: dirwalk.PreciousIgnored},
	}}

	withIgnoredOnly := &clean.Classifier{Options: clean.Options{Ignored: true}, Walker: walker}
	report, err := withIgnoredOnly.Clean("/x", nil)
	require.NoError(t, err)
	assert.Empty(t, report.WouldRemove)
	assert.True(t, report.SawPrecious)

	withBoth := &clean.Classifier{Options: clean.Options{Ignored: true, Precious: true}, Walker: walker}
	report, err = withBoth.Clean("/x", nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"keep.bin"}, paths(report.WouldRemove))
}

func TestClassifier_untrackedDirectoryRecursesByDefault(t *testing.T) {
	walker := &dirwalk.MemWalker{Entries: []dirwalk.MemEntry{
		{Path: "build", IsDir: true, Class: dirwalk.Untracked, Children: []dirwalk.MemEntry{
			{Path: "build/out.o", Class: dirwalk.Untracked},
		}},
	}}

	c := &clean.Classifier{Options: clean.Options{}, Walker: walker}
	report, err := c.Clean("/x", nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"build/out.o"}, paths(report.WouldRemove))
}

func TestClassifier_directoriesOptionMatchesWholeDirectory(t *testing.T) {
	walker := &dirwalk.MemWalker{Entries: []dirwalk.MemEntry{
		{Path: "build", IsDir: true, Class: dirwalk.Untracked, Children: []dirwalk.MemEntry{
			{Path: "build/out.o", Class: dirwalk.Untracked},
		}},
	}}

	c := &clean.Classifier{Options: clean.Options{Directories: true}, Walker: walker}
	report, err := c.Clean("/x", nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"build"}, paths(report.WouldRemove))
}

func TestClassifier_repositoriesRequireOptIn(t *testing.T) {
	walker := &dirwalk.MemWalker{Entries: []dirwalk.MemEntry{
		{Path: "vendor/lib", IsDir: true, Class: dirwalk.Repository},
	}}

	c := &clean.Classifier{Options: clean.Options{}, Walker: walker}
	report, err := c.Clean("/x", nil)
	require.NoError(t, err)
	assert.Empty(t, report.WouldRemove)
	assert.True(t, report.SawRepository)

	c = &clean.Classifier{Options: clean.Options{Repositories: true}, Walker: walker}
	report, err = c.Clean("/x", nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"vendor/lib"}, paths(report.WouldRemove))
}

func TestClassifier_interruptDowngradesToDryRun(t *testing.T) {
	walker := &dirwalk.MemWalker{Entries: []dirwalk.MemEntry{
		{Path: "a.txt", Class: dirwalk.Untracked},
	}}

	calls := 0
	c := &clean.Classifier{
		Options: clean.Options{Execute: true},
		Walker:  walker,
		Interrupt: func() bool {
			calls++
			return true
		},
	}
	// No real filesystem backing these paths; Execute would fail to
	// remove them anyway, but Interrupted must still be recorded.
	report, err := c.Clean(t.TempDir(), nil)
	require.NoError(t, err)
	assert.True(t, report.Interrupted)
	assert.Equal(t, 1, calls)
}

func TestClassifier_pathspecPrunesExcludedEntries(t *testing.T) {
	walker := &dirwalk.MemWalker{Entries: []dirwalk.MemEntry{
		{Path: "a.txt", Class: dirwalk.Untracked},
		{Path: "b.txt", Class: dirwalk.Untracked},
	}}

	c := &clean.Classifier{Options: clean.Options{}, Walker: walker}
	report, err := c.Clean("/x", []string{"a.txt"})
	require.NoError(t, err)
	assert.Equal(t, []string{"a.txt"}, paths(report.WouldRemove))
	assert.Equal(t, 1, report.PrunedByPathspec)
	assert.True(t, report.HasPathspec)
}

func TestClassifier_untrackedDirectoryWarnsAboutHiddenRepositories(t *testing.T) {
	walker := &dirwalk.MemWalker{Entries: []dirwalk.MemEntry{
		{Path: "d", IsDir: true, Class: dirwalk.Untracked},
	}}

	c := &clean.Classifier{Options: clean.Options{Directories: true}, Walker: walker}
	report, err := c.Clean("/x", nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"d"}, paths(report.WouldRemove))
	assert.True(t, report.SawUntrackedMayHideRepository)
}

func TestClassifier_directoriesSkipCountedWithoutDirectoriesOption(t *testing.T) {
	walker := &dirwalk.MemWalker{Entries: []dirwalk.MemEntry{
		{Path: "build", IsDir: true, Class: dirwalk.Untracked, Children: []dirwalk.MemEntry{
			{Path: "build/out.o", Class: dirwalk.Untracked},
		}},
	}}

	c := &clean.Classifier{Options: clean.Options{}, Walker: walker}
	report, err := c.Clean("/x", nil)
	require.NoError(t, err)
	assert.Equal(t, 1, report.SkippedDirectories)
}
