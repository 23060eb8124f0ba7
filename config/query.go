package config

import (
	"bytes"

	"github.com/jcorbin/gitcfg/scan"
)

// valueRef locates one key=value assignment's terminal value event within
// a Document, so that SetRawValue/SetRawMultiValue can mutate it in place
// without re-walking every section from scratch.
type valueRef struct {
	section SectionID
	index   int // index into that section's events slice
}

func (doc *Document) resolveSectionIDs(name string, subsection *string) ([]SectionID, error) {
	entry := doc.lookup[name]
	if entry == nil {
		return nil, doc.notFoundErr(SectionDoesNotExist, name, subsection, "")
	}
	if subsection == nil {
		if len(entry.bare) == 0 {
			return nil, doc.notFoundErr(SubSectionDoesNotExist, name, subsection, "")
		}
		return entry.bare, nil
	}
	ids := entry.sub[*subsection]
	if len(ids) == 0 {
		return nil, doc.notFoundErr(SubSectionDoesNotExist, name, subsection, "")
	}
	return ids, nil
}

func (doc *Document) notFoundErr(kind ErrorKind, name string, subsection *string, key string) *Error {
	e := &Error{Kind: kind, Name: name, Key: key}
	if subsection != nil {
		e.HasSub = true
		e.Subsection = *subsection
	}
	return e
}

// findValueRefs locates every terminal value event (Value or ValueDone)
// assigned to key across every section occurrence matching name and
// subsection, in source order. A key assigned more than once within a
// single section contributes one ref per assignment: later assignments do
// not erase earlier ones here, that reduction is GetRawValue's job.
func (doc *Document) findValueRefs(name string, subsection *string, key string) ([]valueRef, error) {
	ids, err := doc.resolveSectionIDs(name, subsection)
	if err != nil {
		return nil, err
	}

	var refs []valueRef
	for _, id := range ids {
		sec := doc.sections[id]
		pending := false
		for i, ev := range sec.events {
			switch ev.Kind {
			case scan.Key:
				pending = bytes.Equal(ev.Bytes, []byte(key))
			case scan.Value, scan.ValueDone:
				if pending {
					refs = append(refs, valueRef{section: id, index: i})
					pending = false
				}
			}
		}
	}
	if len(refs) == 0 {
		return nil, doc.notFoundErr(KeyDoesNotExist, name, subsection, key)
	}
	return refs, nil
}

func (doc *Document) valueAt(ref valueRef) []byte {
	return doc.sections[ref.section].events[ref.index].Bytes
}

// GetRawValue returns the raw bytes of key within the section identified
// by name and subsection (pass subsection=nil for a bare "[name]"
// section). When the key was assigned more than once, the last assignment
// wins, matching how the upstream format resolves multivars down to a
// single effective value.
func (doc *Document) GetRawValue(name string, subsection *string, key string) ([]byte, error) {
	refs, err := doc.findValueRefs(name, subsection, key)
	if err != nil {
		return nil, err
	}
	return doc.valueAt(refs[len(refs)-1]), nil
}

// GetRawMultiValue returns the raw bytes of every assignment to key within
// the section identified by name and subsection, in source order.
func (doc *Document) GetRawMultiValue(name string, subsection *string, key string) ([][]byte, error) {
	refs, err := doc.findValueRefs(name, subsection, key)
	if err != nil {
		return nil, err
	}
	values := make([][]byte, len(refs))
	for i, ref := range refs {
		values[i] = doc.valueAt(ref)
	}
	return values, nil
}

// RawValueRef is a mutable handle on the value a later GetRawValue call
// with the same name/subsection/key would return: the last assignment to
// key within the matching section(s), at the moment the ref was obtained.
// Holding a ref and calling Set on it avoids re-walking the document's
// sections to relocate the assignment a plain SetRawValue call would have
// to repeat that walk for.
type RawValueRef struct {
	doc *Document
	ref valueRef
}

// RawValueRef resolves a mutable handle on key within the section
// identified by name and subsection, or an *Error if it cannot be found.
func (doc *Document) RawValueRef(name string, subsection *string, key string) (RawValueRef, error) {
	refs, err := doc.findValueRefs(name, subsection, key)
	if err != nil {
		return RawValueRef{}, err
	}
	return RawValueRef{doc: doc, ref: refs[len(refs)-1]}, nil
}

// Get returns the referenced value's current bytes.
func (r RawValueRef) Get() []byte { return r.doc.valueAt(r.ref) }

// Set overwrites the referenced value in place.
func (r RawValueRef) Set(value []byte) { r.doc.setValueAt(r.ref, value) }

// RawMultiValueRef is a mutable handle on every assignment to one key
// within a section, in source order, as RawValueRef is for the single
// last-wins value.
type RawMultiValueRef struct {
	doc  *Document
	refs []valueRef
}

// RawMultiValueRef resolves a mutable handle on every assignment to key
// within the section identified by name and subsection, or an *Error if
// none can be found.
func (doc *Document) RawMultiValueRef(name string, subsection *string, key string) (RawMultiValueRef, error) {
	refs, err := doc.findValueRefs(name, subsection, key)
	if err != nil {
		return RawMultiValueRef{}, err
	}
	return RawMultiValueRef{doc: doc, refs: refs}, nil
}

// Len returns the number of assignments the ref covers.
func (r RawMultiValueRef) Len() int { return len(r.refs) }

// Get returns the referenced values' current bytes, in source order.
func (r RawMultiValueRef) Get() [][]byte {
	values := make([][]byte, len(r.refs))
	for i, ref := range r.refs {
		values[i] = r.doc.valueAt(ref)
	}
	return values
}

// Set overwrites the referenced assignments positionally with values:
// values[i] replaces the i'th existing assignment. If values has fewer
// entries than the ref covers, the remaining existing assignments are
// left unchanged; if it has more, the extras are discarded. Set never
// adds or removes assignments from the document, so it never fails.
func (r RawMultiValueRef) Set(values [][]byte) {
	n := len(r.refs)
	if len(values) < n {
		n = len(values)
	}
	for i := 0; i < n; i++ {
		r.doc.setValueAt(r.refs[i], values[i])
	}
}
