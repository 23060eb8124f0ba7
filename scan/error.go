package scan

import "fmt"

// SyntaxError reports a lexical problem with the source bytes: a line that
// isn't a comment, a section header, a blank line, or a key[=value] line,
// or a quoted subsection name missing its closing quote.
type SyntaxError struct {
	Offset int // byte offset the error was detected at
	Line   int // 1-based source line the error was detected on
	Msg    string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("scan: %s (line %d, offset %d)", e.Msg, e.Line, e.Offset)
}
