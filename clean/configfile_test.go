package clean_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jcorbin/gitcfg/clean"
)

func TestParsePathspec(t *testing.T) {
	for _, tc := range []struct {
		name string
		raw  string
		want []string
	}{
		{"empty", "", nil},
		{"plain", "a.txt b.txt", []string{"a.txt", "b.txt"}},
		{"quoted", `"a dir" b.txt`, []string{"a dir", "b.txt"}},
	} {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, clean.ParsePathspec(tc.raw))
		})
	}
}

func TestLoadOptionsFile_mergesOverBase(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "clean.yaml")
	require.NoError(t, os.WriteFile(path, []byte("ignored: true\nskip_hidden_repositories: all\nignore_patterns:\n  - \"*.log\"\n"), 0o644))

	base := clean.Options{Directories: true}
	opts, err := clean.LoadOptionsFile(path, base)
	require.NoError(t, err)

	assert.True(t, opts.Ignored)
	assert.True(t, opts.Directories) // untouched by the file
	assert.Equal(t, clean.SkipHiddenAll, opts.SkipHiddenRepositories)
	assert.Equal(t, []string{"*.log"}, opts.IgnorePatterns)
}
