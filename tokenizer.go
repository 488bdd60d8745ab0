package xml5

// Tokenizer pulls one Token at a time from a Reader. It is the package's
// only public entry point: construct one with New or NewFromSlice, then
// call Next in a loop until it reports false.
type Tokenizer struct {
	reader  Reader
	emitter *emitter
	m       *machine
	bom     *Bom
}

// New wraps an arbitrary Reader (typically a BufferedReader over an
// io.Reader) in a Tokenizer using DefaultResolver for character
// references. The byte-order mark, if any, is sniffed off the front of
// the stream and reported as the first token; a mark indicating UTF-16
// is reported but the stream itself is not transcoded, since transcoding
// a Reader would require buffering it whole — see NewFromSlice for
// input that's already fully in memory. When no mark is present, no Bom
// token is emitted at all; the first call to Next drives the state
// machine directly.
func New(r Reader) *Tokenizer {
	return NewWithResolver(r, DefaultResolver)
}

// NewWithResolver is New with an explicit character-reference Resolver,
// for callers that want the fuller HTMLResolver table or one of their
// own instead of the five predefined XML entities.
func NewWithResolver(r Reader, resolver Resolver) *Tokenizer {
	t := &Tokenizer{reader: r, emitter: newEmitter(r), m: newMachine(resolver)}
	if enc, _ := sniffReaderBOM(r); enc != EncodingNone {
		t.bom = &Bom{Encoding: enc}
	}
	return t
}

// NewFromSlice wraps buf in a zero-copy SliceReader. Unlike New, a UTF-16
// mark here is fully honored: the remainder of buf is transcoded to
// UTF-8 up front via golang.org/x/text before the SliceReader is built,
// since the whole input is already available to transcode.
func NewFromSlice(buf []byte) *Tokenizer {
	enc, n := sniffBOM(buf)
	data := buf[n:]
	if enc == EncodingUTF16LE || enc == EncodingUTF16BE {
		if out, err := transcodeUTF16(data, enc); err == nil {
			data = out
		}
	}
	t := New(NewSliceReader(data))
	if enc != EncodingNone {
		t.bom = &Bom{Encoding: enc}
	}
	return t
}

// sniffReaderBOM consumes a byte-order mark from the front of r, if
// present, reporting which one.
func sniffReaderBOM(r Reader) (BomEncoding, error) {
	if ok, err := r.TryMatch([]byte{0xEF, 0xBB, 0xBF}, true); err != nil {
		return EncodingNone, err
	} else if ok {
		return EncodingUTF8, nil
	}
	if ok, err := r.TryMatch([]byte{0xFF, 0xFE}, true); err != nil {
		return EncodingNone, err
	} else if ok {
		return EncodingUTF16LE, nil
	}
	if ok, err := r.TryMatch([]byte{0xFE, 0xFF}, true); err != nil {
		return EncodingNone, err
	} else if ok {
		return EncodingUTF16BE, nil
	}
	return EncodingNone, nil
}

// Next returns the next token in the stream. It returns false once the
// terminal EofToken has already been returned by a previous call; every
// call up to and including that one returns true.
func (t *Tokenizer) Next() (Token, bool) {
	if t.bom != nil {
		b := *t.bom
		t.bom = nil
		return b, true
	}
	for {
		if tok, ok := t.emitter.Pop(); ok {
			return tok, true
		}
		if t.emitter.EOFEmitted() {
			return nil, false
		}
		// step's error return is already reflected as queued Error/Eof
		// tokens; nothing further to do with it here.
		_ = t.m.step(t.reader, t.emitter)
	}
}
