// Package scan implements a reference lexer for the git-config text format:
// it turns raw config bytes into the Event stream that config.Document is
// built from (see the "Upstream parser contract" this module's spec
// describes). config.Document depends only on the Event type below, never
// on *Lexer, so a different tokenizer can stand in without touching the
// document model.
package scan

// Kind tags the variant carried by an Event.
type Kind int

// Event kinds, matching the tagged union the document model is built from.
const (
	// SectionHeader is logical: the document builder strips it out of a
	// section's own event list and stores it separately, keyed by section id.
	SectionHeader Kind = iota
	Key
	KeyValueSeparator
	// Value is a completed value.
	Value
	// ValueNotDone is a partial value fragment; a run of zero or more
	// ValueNotDone events is always terminated by a ValueDone event.
	ValueNotDone
	// ValueDone is the terminal fragment of a (possibly continued) value.
	ValueDone
	Comment
	Newline
	Whitespace
)

func (k Kind) String() string {
	switch k {
	case SectionHeader:
		return "SectionHeader"
	case Key:
		return "Key"
	case KeyValueSeparator:
		return "KeyValueSeparator"
	case Value:
		return "Value"
	case ValueNotDone:
		return "ValueNotDone"
	case ValueDone:
		return "ValueDone"
	case Comment:
		return "Comment"
	case Newline:
		return "Newline"
	case Whitespace:
		return "Whitespace"
	default:
		return "Kind(?)"
	}
}

// Header is the parsed (name, optional subsection) pair carried by a
// SectionHeader event, along with the exact source bytes it was parsed
// from. Render uses Raw verbatim rather than re-deriving "[name]" /
// "[name \"sub\"]" formatting, so that quoting and spacing choices the
// original author made survive a round trip untouched.
type Header struct {
	Name          []byte
	Subsection    []byte
	HasSubsection bool
	Raw           []byte
}

// Event is one lexical token of git-config source text.
//
// Bytes holds the event's payload: the raw text of a comment, newline, or
// run of whitespace; the name of a key; the content of a value fragment;
// or the '=' byte of a KeyValueSeparator. Header is populated only
// when Kind == SectionHeader.
type Event struct {
	Kind   Kind
	Bytes  []byte
	Header Header
}

// IsTrivia reports whether the event carries no section/key/value
// structure: comments, newlines, and whitespace runs.
func (e Event) IsTrivia() bool {
	switch e.Kind {
	case Comment, Newline, Whitespace:
		return true
	default:
		return false
	}
}

// Len returns the number of source bytes the event's own payload spans
// (for SectionHeader this is len(Raw), not len(Name)+len(Subsection)).
func (e Event) Len() int {
	if e.Kind == SectionHeader {
		return len(e.Header.Raw)
	}
	return len(e.Bytes)
}
