package scan_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jcorbin/gitcfg/scan"
)

func scanAll(t *testing.T, src string) []scan.Event {
	t.Helper()
	lx := scan.NewLexer([]byte(src))
	var events []scan.Event
	for lx.Scan() {
		events = append(events, lx.Event())
	}
	require.NoError(t, lx.Err())
	return events
}

func kinds(events []scan.Event) []scan.Kind {
	out := make([]scan.Kind, len(events))
	for i, ev := range events {
		out[i] = ev.Kind
	}
	return out
}

func TestLexer_reconstructsSourceExactly(t *testing.T) {
	for _, src := range []string{
		"",
		"[core]\n",
		"[core]\na=b\nc=d",
		"[branch \"feature/x\"]\n\tremote = origin\n",
		"; comment\n[core]\n\ta=b ; trailing\n",
		"[core]\n\tlong = one \\\n\ttwo\n",
		"[core]\n\tflag\n",
	} {
		var got []byte
		for _, ev := range scanAll(t, src) {
			if ev.Kind == scan.SectionHeader {
				got = append(got, ev.Header.Raw...)
			} else {
				got = append(got, ev.Bytes...)
			}
		}
		assert.Equal(t, src, string(got), "source: %q", src)
	}
}

func TestLexer_sectionHeaderWithSubsection(t *testing.T) {
	events := scanAll(t, "[branch \"main\"]\n")
	require.NotEmpty(t, events)
	hdr := events[0].Header
	assert.Equal(t, "branch", string(hdr.Name))
	assert.True(t, hdr.HasSubsection)
	assert.Equal(t, "main", string(hdr.Subsection))
	assert.Equal(t, "[branch \"main\"]", string(hdr.Raw))
}

func TestLexer_keyValue(t *testing.T) {
	events := scanAll(t, "[core]\na=b\n")
	require.Len(t, events, 6)
	assert.Equal(t, []scan.Kind{
		scan.SectionHeader,
		scan.Newline,
		scan.Key,
		scan.KeyValueSeparator,
		scan.Value,
		scan.Newline,
	}, kinds(events))
	assert.Equal(t, "a", string(events[2].Bytes))
	assert.Equal(t, "b", string(events[4].Bytes))
}

func TestLexer_booleanStyleKey(t *testing.T) {
	events := scanAll(t, "[core]\n\tflag\n")
	var sawSeparator bool
	for _, ev := range events {
		if ev.Kind == scan.KeyValueSeparator {
			sawSeparator = true
		}
	}
	assert.False(t, sawSeparator)
}

func TestLexer_valueContinuation(t *testing.T) {
	events := scanAll(t, "[core]\n\tlong = one \\\n\ttwo\n")
	var fragKinds []scan.Kind
	for _, ev := range events {
		switch ev.Kind {
		case scan.ValueNotDone, scan.ValueDone:
			fragKinds = append(fragKinds, ev.Kind)
		}
	}
	assert.Equal(t, []scan.Kind{scan.ValueNotDone, scan.ValueDone}, fragKinds)
}

func TestLexer_keyBeforeSectionIsStillLexable(t *testing.T) {
	// The lexer itself has no notion of "before any section"; rejecting
	// that is the document builder's job, not the lexer's.
	events := scanAll(t, "a=b\n")
	assert.Equal(t, []scan.Kind{scan.Key, scan.KeyValueSeparator, scan.Value, scan.Newline}, kinds(events))
}

func TestLexer_unterminatedSectionHeaderIsSyntaxError(t *testing.T) {
	lx := scan.NewLexer([]byte("[core\na=b\n"))
	for lx.Scan() {
	}
	var serr *scan.SyntaxError
	require.ErrorAs(t, lx.Err(), &serr)
}
