package xml5

import (
	"bufio"
	"io"
)

// BufferedReader adapts an io.Reader into a Reader by mirroring every
// examined byte into an owned scratch buffer. Span indices into that
// buffer stay valid for the tokenizer's whole lifetime, at the cost of
// holding the entire examined prefix of the stream in memory — the
// tradeoff spec.md's "buffered-reader invariants" accepts in exchange for
// not requiring the whole input up front.
type BufferedReader struct {
	src     *bufio.Reader
	scratch []byte
	pos     int
}

// NewBufferedReader wraps r, growing its own scratch buffer as bytes are
// examined.
func NewBufferedReader(r io.Reader) *BufferedReader {
	return &BufferedReader{src: bufio.NewReader(r)}
}

// ensure grows the scratch buffer until at least n bytes are available
// past the cursor, or the underlying reader is exhausted.
func (r *BufferedReader) ensure(n int) error {
	for len(r.scratch)-r.pos < n {
		b, err := r.src.ReadByte()
		if err != nil {
			if err == io.EOF {
				return nil
			}
			return err
		}
		r.scratch = append(r.scratch, b)
	}
	return nil
}

func (r *BufferedReader) available() int { return len(r.scratch) - r.pos }

func (r *BufferedReader) Peek() (byte, bool, error) {
	if err := r.ensure(1); err != nil {
		return 0, false, err
	}
	if r.available() < 1 {
		return 0, false, nil
	}
	return r.scratch[r.pos], true, nil
}

func (r *BufferedReader) Consume(n int) {
	r.pos += n
	if r.pos > len(r.scratch) {
		r.pos = len(r.scratch)
	}
}

func (r *BufferedReader) Pos() int { return r.pos }

// AppendCurrent ensures the byte under the cursor has been mirrored into
// scratch (growing the read-ahead window by one byte if needed) and
// returns its index without consuming it.
func (r *BufferedReader) AppendCurrent() (int, error) {
	if err := r.ensure(1); err != nil {
		return r.pos, err
	}
	return r.pos, nil
}

func (r *BufferedReader) Slice(start, end int) []byte {
	return r.scratch[start:end]
}

func (r *BufferedReader) ScanUntil(needles []byte) (ScanResult, error) {
	if err := r.ensure(1); err != nil {
		return ScanResult{}, err
	}
	if r.available() == 0 {
		return ScanResult{Kind: ScanEOF}, nil
	}
	if isNeedle(r.scratch[r.pos], needles) {
		return ScanResult{Kind: ScanAtNeedle, Needle: r.scratch[r.pos]}, nil
	}
	start := r.pos
	for {
		if r.available() == 0 {
			if err := r.ensure(1); err != nil {
				return ScanResult{}, err
			}
			if r.available() == 0 {
				return ScanResult{Kind: ScanBetween, Start: start, End: r.pos}, nil
			}
		}
		if isNeedle(r.scratch[r.pos], needles) {
			return ScanResult{Kind: ScanBetween, Start: start, End: r.pos}, nil
		}
		r.pos++
	}
}

func (r *BufferedReader) TryMatch(keyword []byte, caseSensitive bool) (bool, error) {
	if err := r.ensure(len(keyword)); err != nil {
		return false, err
	}
	if r.available() < len(keyword) {
		return false, nil
	}
	cand := r.scratch[r.pos : r.pos+len(keyword)]
	var ok bool
	if caseSensitive {
		ok = string(cand) == string(keyword)
	} else {
		ok = asciiEqualFold(cand, keyword)
	}
	if !ok {
		return false, nil
	}
	r.pos += len(keyword)
	return true, nil
}
