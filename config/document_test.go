package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jcorbin/gitcfg/config"
)

func mustParse(t *testing.T, src string) *config.Document {
	t.Helper()
	doc, err := config.Parse([]byte(src))
	require.NoError(t, err)
	return doc
}

func TestParse_empty(t *testing.T) {
	doc := mustParse(t, "")
	assert.Equal(t, "", doc.String())
}

func TestParse_singleSection(t *testing.T) {
	doc := mustParse(t, "[core]\na=b\nc=d\n")
	assert.Equal(t, "[core]\na=b\nc=d\n", doc.String())

	v, err := doc.GetRawValue("core", nil, "a")
	require.NoError(t, err)
	assert.Equal(t, "b", string(v))

	v, err = doc.GetRawValue("core", nil, "c")
	require.NoError(t, err)
	assert.Equal(t, "d", string(v))

	// Section and key names are matched by exact byte equality: an
	// ASCII-case variant of either is simply a different name, not an
	// alias for the one actually present.
	_, err = doc.GetRawValue("CORE", nil, "c")
	assert.ErrorIs(t, err, &config.Error{Kind: config.SectionDoesNotExist})

	_, err = doc.GetRawValue("core", nil, "C")
	assert.ErrorIs(t, err, &config.Error{Kind: config.KeyDoesNotExist})
}

func TestParse_singleSubsection(t *testing.T) {
	doc := mustParse(t, "[branch \"main\"]\nremote=origin\n")
	assert.Equal(t, "[branch \"main\"]\nremote=origin\n", doc.String())

	sub := "main"
	v, err := doc.GetRawValue("branch", &sub, "remote")
	require.NoError(t, err)
	assert.Equal(t, "origin", string(v))

	_, err = doc.GetRawValue("branch", nil, "remote")
	assert.ErrorIs(t, err, &config.Error{Kind: config.SubSectionDoesNotExist})

	other := "develop"
	_, err = doc.GetRawValue("branch", &other, "remote")
	assert.ErrorIs(t, err, &config.Error{Kind: config.SubSectionDoesNotExist})
}

func TestParse_multipleSections(t *testing.T) {
	src := "[core]\na=b\n[other]\nc=d\n"
	doc := mustParse(t, src)
	assert.Equal(t, src, doc.String())

	v, err := doc.GetRawValue("core", nil, "a")
	require.NoError(t, err)
	assert.Equal(t, "b", string(v))

	v, err = doc.GetRawValue("other", nil, "c")
	require.NoError(t, err)
	assert.Equal(t, "d", string(v))
}

func TestParse_multipleDuplicateSections(t *testing.T) {
	// The same bare section name appears twice; get_raw_value resolves a
	// duplicated key across both occurrences, last assignment wins.
	src := "[core]\na=b\n[core]\na=c\na=d\n"
	doc := mustParse(t, src)
	assert.Equal(t, src, doc.String())

	v, err := doc.GetRawValue("core", nil, "a")
	require.NoError(t, err)
	assert.Equal(t, "d", string(v))
}

func TestGetRawValue_keyMissing(t *testing.T) {
	doc := mustParse(t, "[core]\na=b\n")
	_, err := doc.GetRawValue("core", nil, "nope")
	assert.ErrorIs(t, err, &config.Error{Kind: config.KeyDoesNotExist})
}

func TestGetRawValue_sectionMissing(t *testing.T) {
	doc := mustParse(t, "[core]\na=b\n")
	_, err := doc.GetRawValue("nope", nil, "a")
	assert.ErrorIs(t, err, &config.Error{Kind: config.SectionDoesNotExist})
}

func TestGetRawMultiValue(t *testing.T) {
	doc := mustParse(t, "[core]\na=b\na=c\na=d\n")

	values, err := doc.GetRawMultiValue("core", nil, "a")
	require.NoError(t, err)
	require.Len(t, values, 3)
	assert.Equal(t, []string{"b", "c", "d"}, toStrings(values))
}

func TestGetRawMultiValue_acrossDuplicateSections(t *testing.T) {
	doc := mustParse(t, "[core]\na=b\n[core]\na=c\n")

	values, err := doc.GetRawMultiValue("core", nil, "a")
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "c"}, toStrings(values))
}

func TestParse_keyBeforeSection(t *testing.T) {
	_, err := config.Parse([]byte("a=b\n"))
	require.Error(t, err)
	var perr *config.ParseError
	assert.ErrorAs(t, err, &perr)
}

func TestParse_roundTripsComments(t *testing.T) {
	src := "; leading comment\n[core]\n\ta = b ; trailing comment\n"
	doc := mustParse(t, src)
	assert.Equal(t, src, doc.String())
}

func toStrings(values [][]byte) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = string(v)
	}
	return out
}
