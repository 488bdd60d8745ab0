package xml5

import "unsafe"

// spanPart is one element of a mixSpan: either a range into the reader's
// backing bytes, or an owned fragment synthesized during recovery or
// character-reference resolution.
type spanPart struct {
	owned      []byte
	start, end int
}

// mixSpan accumulates the pieces of an in-flight token field (a tag name,
// an attribute value, a comment body, ...). Contiguous range appends merge
// into a single element so the common case stays on the zero-copy path;
// anything else (an owned fragment, a non-contiguous range) grows the list.
type mixSpan struct {
	parts []spanPart
}

func (s *mixSpan) reset() {
	s.parts = s.parts[:0]
}

func (s *mixSpan) empty() bool {
	return len(s.parts) == 0
}

// appendRange extends the span with backing-byte range [start,end), merging
// into the previous element when it is exactly contiguous.
func (s *mixSpan) appendRange(start, end int) {
	if start == end {
		return
	}
	if n := len(s.parts); n > 0 {
		last := &s.parts[n-1]
		if last.owned == nil && last.end == start {
			last.end = end
			return
		}
	}
	s.parts = append(s.parts, spanPart{start: start, end: end})
}

// appendOwned appends a synthesized fragment (a recovered literal, a
// resolved character reference).
func (s *mixSpan) appendOwned(b []byte) {
	if len(b) == 0 {
		return
	}
	s.parts = append(s.parts, spanPart{owned: append([]byte(nil), b...)})
}

// appendOwnedByte appends a single synthesized byte, merging with a
// previous owned fragment when possible. Used for fields that are
// transformed byte-by-byte (doctype name lowercasing).
func (s *mixSpan) appendOwnedByte(b byte) {
	if n := len(s.parts); n > 0 && s.parts[n-1].owned != nil {
		s.parts[n-1].owned = append(s.parts[n-1].owned, b)
		return
	}
	s.parts = append(s.parts, spanPart{owned: []byte{b}})
}

// Span is a materialized token field: either a borrow of the reader's
// stable backing bytes (Owned false) or owned bytes (Owned true, produced
// when a field was built from more than one part or from a single
// synthesized fragment).
type Span struct {
	Bytes []byte
	Owned bool
}

// String views Span's bytes as a string without copying, on the
// assumption that the reader's backing bytes outlive the Span (true for
// SliceReader, and for BufferedReader's scratch buffer, which only grows
// by append: a reallocation copies it but never overwrites bytes already
// handed out). Roughly the cast strings.Builder
// itself uses; see https://github.com/golang/go/issues/25484.
func (s Span) String() string {
	b := s.Bytes
	return *(*string)(unsafe.Pointer(&b))
}

// materialize collapses the accumulated parts into a Span: a single range
// part borrows directly from the reader; anything else is concatenated
// into one freshly allocated buffer.
func (s *mixSpan) materialize(r Reader) Span {
	switch len(s.parts) {
	case 0:
		return Span{}
	case 1:
		p := s.parts[0]
		if p.owned != nil {
			return Span{Bytes: p.owned, Owned: true}
		}
		return Span{Bytes: r.Slice(p.start, p.end)}
	default:
		total := 0
		for _, p := range s.parts {
			if p.owned != nil {
				total += len(p.owned)
			} else {
				total += p.end - p.start
			}
		}
		out := make([]byte, 0, total)
		for _, p := range s.parts {
			if p.owned != nil {
				out = append(out, p.owned...)
			} else {
				out = append(out, r.Slice(p.start, p.end)...)
			}
		}
		return Span{Bytes: out, Owned: true}
	}
}
