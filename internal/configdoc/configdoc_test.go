package configdoc_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jcorbin/gitcfg/config"
	"github.com/jcorbin/gitcfg/internal/configdoc"
)

func TestMarkdown_listsSectionsAndKeys(t *testing.T) {
	doc, err := config.Parse([]byte("[core]\nautocrlf=true\n[branch \"main\"]\nremote=origin\n"))
	require.NoError(t, err)

	md := string(configdoc.Markdown(doc))
	assert.Contains(t, md, "## core")
	assert.Contains(t, md, "`autocrlf` = \"true\"")
	assert.Contains(t, md, "## branch \"main\"")
	assert.Contains(t, md, "`remote` = \"origin\"")
}

func TestMarkdown_joinsMultipleValues(t *testing.T) {
	doc, err := config.Parse([]byte("[core]\na=b\na=c\n"))
	require.NoError(t, err)

	md := string(configdoc.Markdown(doc))
	assert.Contains(t, md, "(all: b, c)")
}

func TestHTML_rendersWithoutPanicking(t *testing.T) {
	doc, err := config.Parse([]byte("[core]\na=b\n"))
	require.NoError(t, err)
	html := string(configdoc.HTML(doc))
	assert.Contains(t, html, "<h2")
}
