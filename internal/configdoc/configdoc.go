// Package configdoc renders a config.Document as a human-readable Markdown
// (or HTML) report: one heading per section occurrence, with its keys and
// their resolved values listed underneath, and a table of contents built
// from the same heading anchors blackfriday itself derives.
package configdoc

import (
	"bytes"
	"fmt"
	"sort"

	"github.com/russross/blackfriday"
	"github.com/shurcooL/sanitized_anchor_name"

	"github.com/jcorbin/gitcfg/config"
	"github.com/jcorbin/gitcfg/internal/scanio"
)

// valuesScanner adapts a [][]byte to scanio.Scanner so multiple raw values
// can be joined with scanio.CopyScannerWith rather than a hand-rolled loop.
type valuesScanner struct {
	values [][]byte
	i      int
}

func (s *valuesScanner) Scan() bool {
	if s.i >= len(s.values) {
		return false
	}
	s.i++
	return true
}

func (s *valuesScanner) Bytes() []byte { return s.values[s.i-1] }

// sectionRef names one section occurrence for rendering.
type sectionRef struct {
	config.SectionInfo
}

func (s sectionRef) subsection() *string {
	if !s.HasSubsection {
		return nil
	}
	v := s.Subsection
	return &v
}

func (s sectionRef) heading() string {
	if s.HasSubsection {
		return fmt.Sprintf("%s \"%s\"", s.Name, s.Subsection)
	}
	return s.Name
}

// Markdown renders doc as a Markdown document: a table of contents
// followed by one heading and key/value list per section occurrence, in
// the order their headers appeared in the source.
func Markdown(doc *config.Document) []byte {
	var buf bytes.Buffer

	sections := make([]sectionRef, 0)
	for _, info := range doc.Sections() {
		sections = append(sections, sectionRef{info})
	}

	buf.WriteString("# git-config\n\n")
	for _, s := range sections {
		anchor := sanitized_anchor_name.Create(s.heading())
		fmt.Fprintf(&buf, "- [%s](#%s)\n", s.heading(), anchor)
	}
	buf.WriteString("\n")

	for _, s := range sections {
		fmt.Fprintf(&buf, "## %s\n\n", s.heading())
		keys := append([]string(nil), s.Keys...)
		sort.Strings(keys)
		for _, key := range keys {
			values, err := doc.GetRawMultiValue(s.Name, s.subsection(), key)
			if err != nil {
				continue
			}
			for _, v := range values {
				fmt.Fprintf(&buf, "- `%s` = %q\n", key, v)
			}
			if len(values) > 1 {
				var joined bytes.Buffer
				scanio.CopyScannerWith(&joined, &valuesScanner{values: values}, []byte(", "))
				fmt.Fprintf(&buf, "  (all: %s)\n", joined.String())
			}
		}
		buf.WriteString("\n")
	}

	return buf.Bytes()
}

// HTML renders the same report as Markdown does, then runs it through
// blackfriday to produce HTML.
func HTML(doc *config.Document) []byte {
	return blackfriday.Run(Markdown(doc))
}
