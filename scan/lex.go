package scan

import "fmt"

// Lexer turns git-config source bytes into a stream of Events. It satisfies
// internal/scanio.ErrScanner: call Scan() in a loop, read the current token
// via Event (or Bytes, for callers that only want the raw payload), and
// check Err() once Scan returns false.
//
// Concatenating every scanned event's payload bytes (Header.Raw for a
// SectionHeader, Bytes otherwise) in scan order always reconstructs the
// original source exactly: trailing whitespace, comments, and line endings
// are never dropped, only ever split out into their own trivia events.
//
// Lexer is section-agnostic: it never looks at what section, if any, is
// currently open. A key/value line lexes the same way whether or not a
// SectionHeader event has been seen yet; it is the document builder's job
// to reject a Key event that precedes any section header.
type Lexer struct {
	src []byte
	pos int
	cur Event
	err error

	// pendingValue is set once a KeyValueSeparator has been emitted and
	// cleared once the value it introduces has been fully scanned.
	pendingValue bool
	// continued records whether the value currently being scanned has
	// already produced a ValueNotDone fragment, so its closing fragment is
	// reported as ValueDone rather than as a plain, unsplit Value.
	continued bool
}

// NewLexer returns a Lexer reading from src. src is retained, not copied:
// borrowed Event.Bytes slices alias it directly.
func NewLexer(src []byte) *Lexer {
	return &Lexer{src: src}
}

// Event returns the most recently scanned event.
func (lx *Lexer) Event() Event { return lx.cur }

// Bytes returns the payload bytes of the most recently scanned event, or
// the raw header bytes for a SectionHeader event.
func (lx *Lexer) Bytes() []byte {
	if lx.cur.Kind == SectionHeader {
		return lx.cur.Header.Raw
	}
	return lx.cur.Bytes
}

// Err returns the first syntax error encountered, if any.
func (lx *Lexer) Err() error { return lx.err }

// Scan advances to the next Event, returning false at end of input or on
// the first syntax error.
func (lx *Lexer) Scan() bool {
	if lx.err != nil {
		return false
	}

	if lx.pendingValue {
		switch {
		case lx.pos >= len(lx.src) || isLineEnd(lx.src[lx.pos]) || isCommentStart(lx.src[lx.pos]):
			lx.pendingValue = false
			kind := Value
			if lx.continued {
				kind = ValueDone
			}
			lx.cur = Event{Kind: kind}
		case lx.src[lx.pos] == ' ' || lx.src[lx.pos] == '\t':
			// Leading whitespace between '=' (or a continuation newline)
			// and the value proper is its own Whitespace event, same as
			// trailing whitespace; pendingValue stays set.
			lx.cur = lx.lexWhitespace()
		default:
			lx.pendingValue = false
			lx.cur = lx.lexValueFragment()
		}
		return true
	}

	if lx.pos >= len(lx.src) {
		return false
	}

	start := lx.pos
	b := lx.src[lx.pos]

	switch {
	case isLineEnd(b):
		lx.cur = lx.lexNewline()
		return true

	case b == ' ' || b == '\t':
		lx.cur = lx.lexWhitespace()
		return true

	case isCommentStart(b):
		lx.cur = lx.lexComment()
		return true

	case b == '[':
		ev, ok := lx.lexSectionHeader()
		if !ok {
			return false
		}
		lx.cur = ev
		return true

	case b == '=':
		lx.pos++
		lx.continued = false
		lx.pendingValue = true
		lx.cur = Event{Kind: KeyValueSeparator, Bytes: lx.src[start:lx.pos]}
		return true

	case isKeyStart(b):
		lx.cur = lx.lexKey()
		return true

	default:
		lx.fail(start, "unexpected character %q", b)
		return false
	}
}

func isLineEnd(b byte) bool     { return b == '\n' || b == '\r' }
func isCommentStart(b byte) bool { return b == ';' || b == '#' }

func (lx *Lexer) fail(offset int, format string, args ...interface{}) {
	lx.err = &SyntaxError{
		Offset: offset,
		Line:   1 + countNewlines(lx.src[:offset]),
		Msg:    fmt.Sprintf(format, args...),
	}
}

func countNewlines(b []byte) int {
	n := 0
	for _, c := range b {
		if c == '\n' {
			n++
		}
	}
	return n
}

func (lx *Lexer) lexNewline() Event {
	start := lx.pos
	if lx.src[lx.pos] == '\r' && lx.pos+1 < len(lx.src) && lx.src[lx.pos+1] == '\n' {
		lx.pos += 2
	} else {
		lx.pos++
	}
	return Event{Kind: Newline, Bytes: lx.src[start:lx.pos]}
}

func (lx *Lexer) lexWhitespace() Event {
	start := lx.pos
	for lx.pos < len(lx.src) && (lx.src[lx.pos] == ' ' || lx.src[lx.pos] == '\t') {
		lx.pos++
	}
	return Event{Kind: Whitespace, Bytes: lx.src[start:lx.pos]}
}

func (lx *Lexer) lexComment() Event {
	start := lx.pos
	for lx.pos < len(lx.src) && !isLineEnd(lx.src[lx.pos]) {
		lx.pos++
	}
	return Event{Kind: Comment, Bytes: lx.src[start:lx.pos]}
}

func isKeyStart(b byte) bool {
	return b == '_' || ('a' <= b && b <= 'z') || ('A' <= b && b <= 'Z')
}

func isKeyChar(b byte) bool {
	return isKeyStart(b) || b == '-' || ('0' <= b && b <= '9')
}

func isNameChar(b byte) bool {
	return isKeyChar(b) || b == '.'
}

func (lx *Lexer) lexKey() Event {
	start := lx.pos
	for lx.pos < len(lx.src) && isKeyChar(lx.src[lx.pos]) {
		lx.pos++
	}
	return Event{Kind: Key, Bytes: lx.src[start:lx.pos]}
}

// lexSectionHeader lexes a "[name]" or "[name \"subsection\"]" header,
// retaining the exact source bytes from '[' through ']' as Header.Raw.
func (lx *Lexer) lexSectionHeader() (Event, bool) {
	start := lx.pos
	lx.pos++ // consume '['

	nameStart := lx.pos
	for lx.pos < len(lx.src) && isNameChar(lx.src[lx.pos]) {
		lx.pos++
	}
	if lx.pos == nameStart {
		lx.fail(start, "empty section name")
		return Event{}, false
	}
	name := lx.src[nameStart:lx.pos]

	var subsection []byte
	hasSubsection := false

	for lx.pos < len(lx.src) && (lx.src[lx.pos] == ' ' || lx.src[lx.pos] == '\t') {
		lx.pos++
	}
	if lx.pos < len(lx.src) && lx.src[lx.pos] == '"' {
		hasSubsection = true
		lx.pos++ // consume opening quote
		subStart := lx.pos
		closed := false
		for lx.pos < len(lx.src) {
			c := lx.src[lx.pos]
			if c == '\\' && lx.pos+1 < len(lx.src) {
				lx.pos += 2
				continue
			}
			if c == '"' {
				closed = true
				break
			}
			if c == '\n' {
				break
			}
			lx.pos++
		}
		if !closed {
			lx.fail(start, "unterminated quoted subsection name")
			return Event{}, false
		}
		subsection = lx.src[subStart:lx.pos]
		lx.pos++ // consume closing quote
	}

	for lx.pos < len(lx.src) && lx.src[lx.pos] != ']' && lx.src[lx.pos] != '\n' {
		lx.pos++
	}
	if lx.pos >= len(lx.src) || lx.src[lx.pos] != ']' {
		lx.fail(start, "unterminated section header")
		return Event{}, false
	}
	lx.pos++ // consume ']'

	return Event{
		Kind: SectionHeader,
		Header: Header{
			Name:          name,
			Subsection:    subsection,
			HasSubsection: hasSubsection,
			Raw:           lx.src[start:lx.pos],
		},
	}, true
}

// lexValueFragment lexes one physical-line fragment of a value: either up
// to (not including) a trailing whitespace run before its terminator, in
// which case the next Scan call lexes that whitespace like any other, or
// up to and including a backslash-newline continuation, in which case the
// fragment is reported as ValueNotDone and pendingValue is set again so
// the next Scan call resumes lexing the same value on the following line.
func (lx *Lexer) lexValueFragment() Event {
	start := lx.pos
	inQuotes := false
	lastSignificant := lx.pos

	for lx.pos < len(lx.src) {
		c := lx.src[lx.pos]

		if c == '\\' && !inQuotes && lx.pos+1 < len(lx.src) && isLineEnd(lx.src[lx.pos+1]) {
			lx.pos++ // consume backslash
			lx.pos += lx.consumeLineEnd()
			lx.continued = true
			lx.pendingValue = true
			return Event{Kind: ValueNotDone, Bytes: lx.src[start:lx.pos]}
		}

		if c == '\\' && lx.pos+1 < len(lx.src) {
			lx.pos += 2
			lastSignificant = lx.pos
			continue
		}

		if c == '"' {
			inQuotes = !inQuotes
			lx.pos++
			lastSignificant = lx.pos
			continue
		}

		if !inQuotes {
			if isLineEnd(c) || isCommentStart(c) {
				break
			}
			if c == ' ' || c == '\t' {
				lx.pos++
				continue
			}
		}

		lx.pos++
		lastSignificant = lx.pos
	}

	lx.pos = lastSignificant
	kind := Value
	if lx.continued {
		kind = ValueDone
	}
	return Event{Kind: kind, Bytes: lx.src[start:lastSignificant]}
}

func (lx *Lexer) consumeLineEnd() int {
	if lx.pos < len(lx.src) && lx.src[lx.pos] == '\r' && lx.pos+1 < len(lx.src) && lx.src[lx.pos+1] == '\n' {
		return 2
	}
	return 1
}
