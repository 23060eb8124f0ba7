// Package config implements an in-memory model of a git-config file: a
// Document that can be built from an Event stream (see the scan package),
// queried for raw string values, mutated in place, and rendered back out
// byte-for-byte identical to its source wherever it was not touched.
package config

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/google/renameio"

	"github.com/jcorbin/gitcfg/internal/scanio"
	"github.com/jcorbin/gitcfg/scan"
)

// SectionID uniquely and stably identifies one occurrence of a section
// header within a Document. IDs are assigned in increasing order as
// sections are encountered; the zero value never refers to a real section.
type SectionID uint64

// section is one "[name]" or "[name \"sub\"]" occurrence: its header and
// the body events (keys, values, comments, whitespace...) that follow it
// up to the next section header or end of input.
type section struct {
	id     SectionID
	header scan.Header
	events []scan.Event
}

// lookupEntry indexes every section occurrence sharing one exact-byte
// section name, split into the bare (no-subsection) occurrences and the
// occurrences under each distinct (also exact-byte) subsection name. This
// plays the role the original upstream parser's two-level lookup tree
// does, flattened into plain Go maps of slices since nothing here needs
// the borrowed/owned distinction that motivated the original's node enum.
// Section and subsection names are matched by exact byte equality, never
// case-folded: the format's own equality rule, not an ASCII-casing
// convention some callers might expect from it.
type lookupEntry struct {
	bare []SectionID
	sub  map[string][]SectionID
}

// Document is an in-memory, mutable model of one git-config file.
//
// A Document holds exactly one []scan.Event per section occurrence, plus
// the "front matter" events (comments, blank lines) that came before the
// first section header. Rendering a Document concatenates those events'
// bytes back together in original order, so anything a caller has not
// explicitly mutated through SetRawValue/SetRawMultiValue reproduces its
// source bytes exactly, comments, whitespace, and all.
type Document struct {
	arena scanio.ByteArena

	frontMatter []scan.Event

	sections map[SectionID]*section
	order    []SectionID // all sections, in the order their headers appeared
	lookup   map[string]*lookupEntry
	nextID   SectionID
}

// NewDocument returns an empty Document, as if built from zero bytes.
func NewDocument() *Document {
	return &Document{
		sections: make(map[SectionID]*section),
		lookup:   make(map[string]*lookupEntry),
	}
}

// Parse lexes src with scan.NewLexer and builds a Document from the
// resulting event stream. The returned Document retains src: callers must
// not mutate src afterward.
func Parse(src []byte) (*Document, error) {
	return FromLexer(scan.NewLexer(src))
}

// FromLexer drains an ErrScanner of scan.Events (typically a *scan.Lexer)
// and builds a Document from them.
func FromLexer(lx interface {
	Scan() bool
	Event() scan.Event
	Err() error
}) (*Document, error) {
	doc := NewDocument()
	var cur *section
	offset := 0

	for lx.Scan() {
		ev := lx.Event()

		switch ev.Kind {
		case scan.SectionHeader:
			cur = doc.pushSection(ev.Header)

		case scan.Key, scan.KeyValueSeparator, scan.Value, scan.ValueNotDone, scan.ValueDone:
			if cur == nil {
				return nil, &ParseError{Offset: offset, Msg: fmt.Sprintf("%v event before any section header", ev.Kind)}
			}
			cur.events = append(cur.events, ev)

		default:
			if cur == nil {
				doc.frontMatter = append(doc.frontMatter, ev)
			} else {
				cur.events = append(cur.events, ev)
			}
		}

		offset += ev.Len()
	}
	if err := lx.Err(); err != nil {
		return nil, err
	}
	return doc, nil
}

// pushSection registers a new section occurrence and indexes it for
// lookup by name and, if present, subsection name.
func (doc *Document) pushSection(hdr scan.Header) *section {
	doc.nextID++
	id := doc.nextID

	sec := &section{id: id, header: hdr}
	doc.sections[id] = sec
	doc.order = append(doc.order, id)

	key := string(hdr.Name)
	entry := doc.lookup[key]
	if entry == nil {
		entry = &lookupEntry{sub: make(map[string][]SectionID)}
		doc.lookup[key] = entry
	}
	if hdr.HasSubsection {
		sub := string(hdr.Subsection)
		entry.sub[sub] = append(entry.sub[sub], id)
	} else {
		entry.bare = append(entry.bare, id)
	}
	return sec
}

// SectionInfo describes one section occurrence for callers that want to
// enumerate a Document's structure (internal/configdoc, cmd/gitcfg-dump's
// --debug repr dump) without reaching into its internal storage.
type SectionInfo struct {
	Name          string
	Subsection    string
	HasSubsection bool
	Keys          []string // unique key names, in first-seen order
}

// Sections returns every section occurrence in the order their headers
// appeared in the source.
func (doc *Document) Sections() []SectionInfo {
	infos := make([]SectionInfo, 0, len(doc.order))
	for _, id := range doc.order {
		sec := doc.sections[id]
		infos = append(infos, SectionInfo{
			Name:          string(sec.header.Name),
			Subsection:    string(sec.header.Subsection),
			HasSubsection: sec.header.HasSubsection,
			Keys:          sectionKeyNames(sec),
		})
	}
	return infos
}

func sectionKeyNames(sec *section) []string {
	seen := make(map[string]bool)
	var names []string
	for _, ev := range sec.events {
		if ev.Kind != scan.Key {
			continue
		}
		key := string(ev.Bytes)
		if seen[key] {
			continue
		}
		seen[key] = true
		names = append(names, key)
	}
	return names
}

// SectionIDsByName returns every section id whose name matches exactly,
// optionally filtered by subsection. Pass hasSub=false to match only bare
// "[name]" occurrences; pass hasSub=true with sub="" to match occurrences
// of the explicit, empty subsection "[name \"\"]".
func (doc *Document) SectionIDsByName(name string, hasSub bool, sub string) []SectionID {
	entry := doc.lookup[name]
	if entry == nil {
		return nil
	}
	if !hasSub {
		return entry.bare
	}
	return entry.sub[sub]
}

// WriteTo renders the Document to w, reproducing its source bytes exactly
// for any section and value that has not been mutated since parsing.
func (doc *Document) WriteTo(w io.Writer) (int64, error) {
	var n int64
	write := func(b []byte) error {
		if len(b) == 0 {
			return nil
		}
		m, err := w.Write(b)
		n += int64(m)
		return err
	}

	for _, ev := range doc.frontMatter {
		if err := write(eventBytes(ev)); err != nil {
			return n, err
		}
	}
	for _, id := range doc.order {
		sec := doc.sections[id]
		if err := write(sec.header.Raw); err != nil {
			return n, err
		}
		for _, ev := range sec.events {
			if err := write(eventBytes(ev)); err != nil {
				return n, err
			}
		}
	}
	return n, nil
}

func eventBytes(ev scan.Event) []byte {
	if ev.Kind == scan.SectionHeader {
		return ev.Header.Raw
	}
	return ev.Bytes
}

// WriteFile renders the Document and writes it to path atomically: the
// rendered bytes land in a temporary file in path's directory first and
// are renamed into place, so a reader of path never observes a partial
// write and a crash mid-write never leaves path truncated or corrupt.
func (doc *Document) WriteFile(path string, perm os.FileMode) error {
	var buf strings.Builder
	if _, err := doc.WriteTo(&buf); err != nil {
		return err
	}
	return renameio.WriteFile(path, []byte(buf.String()), perm)
}

// String renders the Document the same way WriteTo does.
func (doc *Document) String() string {
	var sb strings.Builder
	_, _ = doc.WriteTo(&sb)
	return sb.String()
}

// Format implements fmt.Formatter so that "%v"/"%s" render the document's
// source text and "%+v" additionally appends a count of section
// occurrences and distinct section names, which is useful when debugging
// lookup behavior.
func (doc *Document) Format(f fmt.State, verb rune) {
	_, _ = io.WriteString(f, doc.String())
	if verb == 'v' && f.Flag('+') {
		fmt.Fprintf(f, "\n-- %d section(s), %d name(s) --\n", len(doc.sections), len(doc.lookup))
	}
}
