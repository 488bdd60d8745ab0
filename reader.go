package xml5

import "bytes"

// ScanKind enumerates the outcomes of Reader.ScanUntil.
type ScanKind int

const (
	// ScanEOF means the cursor was already at the end of input; nothing was
	// scanned.
	ScanEOF ScanKind = iota
	// ScanAtNeedle means the cursor sits on a needle byte without having
	// advanced.
	ScanAtNeedle
	// ScanBetween means a (possibly empty-of-needle) run of bytes was
	// consumed; the cursor now sits on a needle byte or at EOF.
	ScanBetween
)

// ScanResult is the outcome of a fast-scan.
type ScanResult struct {
	Kind   ScanKind
	Needle byte // valid when Kind == ScanAtNeedle
	Start  int  // valid when Kind == ScanBetween
	End    int  // valid when Kind == ScanBetween
}

// Reader is the byte-source capability the state machine drives. Two
// implementations exist: SliceReader, a true zero-copy reader over an
// in-memory slice, and BufferedReader, whose spans are backed by an owned
// scratch buffer mirroring bytes read from a stream.
type Reader interface {
	// Peek returns the byte at the cursor without advancing. ok is false at
	// clean EOF.
	Peek() (b byte, ok bool, err error)

	// Consume advances the cursor by n bytes.
	Consume(n int)

	// ScanUntil scans forward from the cursor to the first occurrence of any
	// byte in needles.
	ScanUntil(needles []byte) (ScanResult, error)

	// TryMatch reports whether the bytes at the cursor equal keyword,
	// consuming them on success and leaving the cursor untouched on failure.
	TryMatch(keyword []byte, caseSensitive bool) (bool, error)

	// Slice returns a stable view of backing bytes in [start,end).
	Slice(start, end int) []byte

	// Pos returns the current cursor position in backing-byte coordinates.
	Pos() int

	// AppendCurrent copies the byte under the cursor into the backing
	// store without consuming it, returning its index. A no-op for
	// SliceReader, whose backing slice already contains every byte;
	// BufferedReader's scratch buffer mirrors the byte as soon as it has
	// been examined, so this only needs to guarantee that examination
	// has happened before handing back the index.
	AppendCurrent() (int, error)
}

func isNeedle(b byte, needles []byte) bool {
	return bytes.IndexByte(needles, b) >= 0
}

func asciiEqualFold(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if lowerASCII(a[i]) != lowerASCII(b[i]) {
			return false
		}
	}
	return true
}

func lowerASCII(b byte) byte {
	if b >= 'A' && b <= 'Z' {
		return b + ('a' - 'A')
	}
	return b
}

func isXMLWhitespace(b byte) bool {
	switch b {
	case '\t', '\n', '\r', ' ':
		return true
	}
	return false
}

// SliceReader is a zero-copy Reader over an in-memory byte slice: every
// Span materialized from it borrows directly into buf.
type SliceReader struct {
	buf []byte
	pos int
}

// NewSliceReader returns a Reader that indexes directly into buf without
// copying it.
func NewSliceReader(buf []byte) *SliceReader {
	return &SliceReader{buf: buf}
}

func (r *SliceReader) Peek() (byte, bool, error) {
	if r.pos >= len(r.buf) {
		return 0, false, nil
	}
	return r.buf[r.pos], true, nil
}

func (r *SliceReader) Consume(n int) {
	r.pos += n
	if r.pos > len(r.buf) {
		r.pos = len(r.buf)
	}
}

func (r *SliceReader) Pos() int { return r.pos }

func (r *SliceReader) AppendCurrent() (int, error) { return r.pos, nil }

func (r *SliceReader) Slice(start, end int) []byte {
	return r.buf[start:end]
}

func (r *SliceReader) ScanUntil(needles []byte) (ScanResult, error) {
	if r.pos >= len(r.buf) {
		return ScanResult{Kind: ScanEOF}, nil
	}
	if isNeedle(r.buf[r.pos], needles) {
		return ScanResult{Kind: ScanAtNeedle, Needle: r.buf[r.pos]}, nil
	}
	start := r.pos
	rest := r.buf[start:]
	idx := bytes.IndexAny(rest, string(needles))
	if idx == -1 {
		r.pos = len(r.buf)
	} else {
		r.pos = start + idx
	}
	return ScanResult{Kind: ScanBetween, Start: start, End: r.pos}, nil
}

func (r *SliceReader) TryMatch(keyword []byte, caseSensitive bool) (bool, error) {
	if r.pos+len(keyword) > len(r.buf) {
		return false, nil
	}
	cand := r.buf[r.pos : r.pos+len(keyword)]
	var ok bool
	if caseSensitive {
		ok = bytes.Equal(cand, keyword)
	} else {
		ok = asciiEqualFold(cand, keyword)
	}
	if !ok {
		return false, nil
	}
	r.pos += len(keyword)
	return true, nil
}
