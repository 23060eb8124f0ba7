package config

import "github.com/jcorbin/gitcfg/scan"

// SetRawValue overwrites the last assignment to key within the section
// identified by name and subsection with value, leaving every other event
// in the document (including any earlier assignments to the same
// multivar key) untouched. It returns an *Error wrapping
// SectionDoesNotExist, SubSectionDoesNotExist, or KeyDoesNotExist if the
// key has never been assigned there.
func (doc *Document) SetRawValue(name string, subsection *string, key string, value []byte) error {
	ref, err := doc.RawValueRef(name, subsection, key)
	if err != nil {
		return err
	}
	ref.Set(value)
	return nil
}

// SetRawMultiValue overwrites the assignments to key within the section
// identified by name and subsection with values, pairing them off
// positionally: values[i] replaces the i'th existing assignment. A
// shorter values leaves the trailing existing assignments as they were; a
// longer values has its extra entries discarded. SetRawMultiValue never
// adds or removes assignments and so never fails on a count mismatch; it
// only returns an *Error wrapping SectionDoesNotExist,
// SubSectionDoesNotExist, or KeyDoesNotExist if the key has never been
// assigned there at all.
func (doc *Document) SetRawMultiValue(name string, subsection *string, key string, values [][]byte) error {
	ref, err := doc.RawMultiValueRef(name, subsection, key)
	if err != nil {
		return err
	}
	ref.Set(values)
	return nil
}

// setValueAt writes value into the arena and retargets the referenced
// event's bytes at the resulting token, so that rendering the document
// reproduces value exactly in place of whatever was there before.
func (doc *Document) setValueAt(ref valueRef, value []byte) {
	_, _ = doc.arena.Write(value)
	token := doc.arena.Take()

	sec := doc.sections[ref.section]
	ev := &sec.events[ref.index]
	ev.Bytes = token.Bytes()
	ev.Kind = scan.Value
}
