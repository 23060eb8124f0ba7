package scanio

// ByteArena implements an io.Writer that stores bytes in an internal buffer,
// allowing token handles to be taken against them.
//
// Bytes parsed out of a config source are read directly as slices of the
// caller's own input buffer (a Go slice already aliases its backing array,
// so that much is zero-copy without any arena at all). ByteArena exists for
// the other case: bytes that did not come from the original input, namely
// new value bytes written by Document.SetRawValue / SetRawMultiValue.
// Routing those through one arena per document avoids pinning a caller's
// argument slice for the document's lifetime and avoids a fresh allocation
// per mutated value.
type ByteArena struct {
	buf []byte // internal buffer
	cur int    // write cursor
}

// Write stores p bytes into the internal buffer, returning len(p) and nil error.
func (arena *ByteArena) Write(p []byte) (int, error) {
	arena.buf = append(arena.buf, p...)
	return len(p), nil
}

// WriteString stores s bytes into the internal buffer, returning len(s) and nil error.
func (arena *ByteArena) WriteString(s string) (int, error) {
	arena.buf = append(arena.buf, s...)
	return len(s), nil
}

// Take returns a token referencing any bytes written into the arena since the
// last taken token.
func (arena *ByteArena) Take() (token ByteArenaToken) {
	token.arena = arena
	token.start = arena.cur
	token.end = len(arena.buf)
	arena.cur = token.end
	return token
}

// ByteArenaToken is a handle to a range of bytes written into a ByteArena.
type ByteArenaToken struct {
	byteRange
	arena *ByteArena
}

// Bytes returns a reference to the token bytes within the internal arena buffer.
//
// NOTE this is a slice into the arena's internal buffer, so the caller MUST
// not retain the returned slice across further arena writes without copying
// out of it first.
func (token ByteArenaToken) Bytes() []byte {
	if token.arena != nil {
		if buf := token.arena.buf; token.start <= len(buf) && token.end <= len(buf) {
			return buf[token.start:token.end]
		}
	}
	return nil
}

// Empty returns true if the token references 0 bytes.
func (token ByteArenaToken) Empty() bool {
	return token.end == token.start
}

type byteRange struct{ start, end int }
