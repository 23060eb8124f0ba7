package config

import "fmt"

// ErrorKind classifies a query or mutation failure against a Document.
type ErrorKind int

const (
	// SectionDoesNotExist means no section with the given name, with or
	// without a subsection, has ever been observed in the document.
	SectionDoesNotExist ErrorKind = iota
	// SubSectionDoesNotExist means the section name exists, but not with
	// the requested subsection (or, when no subsection was requested, not
	// as a bare "[name]" section).
	SubSectionDoesNotExist
	// KeyDoesNotExist means the section (and subsection) exist, but no
	// value was ever assigned to the requested key within them.
	KeyDoesNotExist
)

func (k ErrorKind) String() string {
	switch k {
	case SectionDoesNotExist:
		return "section does not exist"
	case SubSectionDoesNotExist:
		return "subsection does not exist"
	case KeyDoesNotExist:
		return "key does not exist"
	default:
		return "unknown error"
	}
}

// Error reports a failed lookup or mutation against a Document. Callers
// distinguish cases with errors.Is against the sentinel Kind values below,
// or with errors.As to recover the section/key the error was about.
type Error struct {
	Kind       ErrorKind
	Name       string
	Subsection string
	HasSub     bool
	Key        string
}

func (e *Error) Error() string {
	switch {
	case e.HasSub && e.Key != "":
		return fmt.Sprintf("config: %s: [%s %q] %s", e.Kind, e.Name, e.Subsection, e.Key)
	case e.HasSub:
		return fmt.Sprintf("config: %s: [%s %q]", e.Kind, e.Name, e.Subsection)
	case e.Key != "":
		return fmt.Sprintf("config: %s: [%s] %s", e.Kind, e.Name, e.Key)
	default:
		return fmt.Sprintf("config: %s: [%s]", e.Kind, e.Name)
	}
}

// Is reports whether target is the same error Kind, ignoring which
// section/key the two errors are about. This lets callers write
// errors.Is(err, &config.Error{Kind: config.KeyDoesNotExist}).
func (e *Error) Is(target error) bool {
	other, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == other.Kind
}

// ParseError reports a structural problem the document builder found in
// an otherwise lexically valid event stream, e.g. a Key event that
// appears before any SectionHeader has been seen.
type ParseError struct {
	Offset int
	Msg    string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("config: parse: %s (offset %d)", e.Msg, e.Offset)
}
