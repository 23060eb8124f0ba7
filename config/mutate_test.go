package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jcorbin/gitcfg/config"
)

func TestSetRawValue_preservesSurroundingBytes(t *testing.T) {
	doc := mustParse(t, "[core]\n\ta=b\n")

	require.NoError(t, doc.SetRawValue("core", nil, "a", []byte("new")))

	v, err := doc.GetRawValue("core", nil, "a")
	require.NoError(t, err)
	assert.Equal(t, "new", string(v))

	assert.Equal(t, "[core]\n\ta=new\n", doc.String())
}

func TestSetRawValue_lastAssignmentWins(t *testing.T) {
	doc := mustParse(t, "[core]\na=b\na=c\n")

	require.NoError(t, doc.SetRawValue("core", nil, "a", []byte("z")))

	values, err := doc.GetRawMultiValue("core", nil, "a")
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "z"}, toStrings(values))
}

func TestSetRawValue_keyMissing(t *testing.T) {
	doc := mustParse(t, "[core]\na=b\n")
	err := doc.SetRawValue("core", nil, "nope", []byte("x"))
	assert.ErrorIs(t, err, &config.Error{Kind: config.KeyDoesNotExist})
}

func TestSetRawMultiValue(t *testing.T) {
	doc := mustParse(t, "[core]\na=b\na=c\na=d\n")

	require.NoError(t, doc.SetRawMultiValue("core", nil, "a", [][]byte{
		[]byte("1"), []byte("2"), []byte("3"),
	}))

	values, err := doc.GetRawMultiValue("core", nil, "a")
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "2", "3"}, toStrings(values))
}

func TestSetRawMultiValue_fewerValuesLeavesTrailingAssignmentsUnchanged(t *testing.T) {
	doc := mustParse(t, "[core]\na=b\na=c\n")

	require.NoError(t, doc.SetRawMultiValue("core", nil, "a", [][]byte{[]byte("x")}))

	values, err := doc.GetRawMultiValue("core", nil, "a")
	require.NoError(t, err)
	assert.Equal(t, []string{"x", "c"}, toStrings(values))
}

func TestSetRawMultiValue_moreValuesDiscardsExtras(t *testing.T) {
	doc := mustParse(t, "[core]\na=b\na=c\n")

	require.NoError(t, doc.SetRawMultiValue("core", nil, "a", [][]byte{
		[]byte("x"), []byte("y"), []byte("z"),
	}))

	values, err := doc.GetRawMultiValue("core", nil, "a")
	require.NoError(t, err)
	assert.Equal(t, []string{"x", "y"}, toStrings(values))
}
