package xml5

// state enumerates every state of the tokenizer's finite state machine.
type state int

const (
	stData state = iota
	stCharRefInData
	stTagOpen
	stEndTagOpen
	stEndTagName
	stEndTagNameAfter
	stTagName
	stEmptyTag
	stTagAttrNameBefore
	stTagAttrName
	stTagAttrNameAfter
	stTagAttrValueBefore
	stTagAttrValue
	stBogusComment
	stCdata
	stCdataBracket
	stCdataEnd
	stComment
	stCommentStart
	stCommentStartDash
	stCommentLessThan
	stCommentLessThanBang
	stCommentLessThanBangDash
	stCommentLessThanBangDashDash
	stCommentEnd
	stCommentEndDash
	stCommentEndBang
	stDoctype
	stBeforeDoctypeName
	stDoctypeName
	stAfterDoctypeName
	stAfterDoctypeKeyword
	stBeforeDoctypeIdentifier
	stDoctypeIdentifierQuoted
	stAfterDoctypeIdentifier
	stBetweenDoctypePublicAndSystemIdentifiers
	stBogusDoctype
	stPi
	stPiTarget
	stPiTargetAfter
	stPiData
	stPiAfter
	stMarkupDecl
	stXMLDecl
	stXMLDeclAttrName
	stXMLDeclAttrNameAfter
	stXMLDeclAttrValueBefore
	stXMLDeclAttrValueQuoted
	stXMLDeclAfter
)

// quoteKind distinguishes the quoting style of an attribute or
// declaration value, or the absence of quoting entirely.
type quoteKind int

const (
	quoteNone quoteKind = iota
	quoteSingle
	quoteDouble
)

func (q quoteKind) byte() byte {
	if q == quoteSingle {
		return '\''
	}
	return '"'
}

// charRefCtx records which in-flight field CharRefInData should resolve
// into and which state to resume once the reference has been handled.
type charRefCtx int

const (
	ctxText charRefCtx = iota
	ctxAttrDouble
	ctxAttrSingle
	ctxAttrUnquoted
)

var (
	needleData              = []byte{'<', '&'}
	needleTagName            = []byte{'\t', '\n', '\r', ' ', '>', '/'}
	needleAttrName           = []byte{'\t', '\n', '\r', ' ', '=', '>', '/'}
	needleAttrValueDouble    = []byte{'"', '&'}
	needleAttrValueSingle    = []byte{'\'', '&'}
	needleAttrValueUnquoted  = []byte{'\t', '\n', '\r', ' ', '>', '&'}
	needleEndTagName         = []byte{'\t', '\n', '\r', ' ', '/', '>'}
	needlePiTarget           = []byte{'\t', '\n', '\r', ' ', '?'}
	needlePiData             = []byte{'?'}
	needleBogusComment       = []byte{'>'}
	needleBogusDoctype       = []byte{'>'}
	needleCdataBody          = []byte{']'}
	needleQuoteDouble = []byte{'"'}
	needleQuoteSingle = []byte{'\''}
)

// machine is the finite state machine driving an Emitter from a Reader,
// one step at a time. Tokenizer.Next loops over step until the emitter's
// output FIFO has a token to hand back.
type machine struct {
	state state

	quote       quoteKind     // TagAttrValue / XmlDeclAttrValue parameter
	doctypeKind DoctypeIDKind // AfterDoctypeKeyword / *DoctypeIdentifier* parameter
	bracketDeep int           // AfterDoctypeName internal-subset nesting depth
	charRefCtx  charRefCtx

	resolver Resolver
}

func newMachine(resolver Resolver) *machine {
	if resolver == nil {
		resolver = DefaultResolver
	}
	return &machine{state: stData, resolver: resolver}
}

// step advances the machine by exactly one decision: peek, branch, and
// either hand the reader a single-byte reconsume/consume instruction or
// let a fast-scan consume a whole run directly. A non-nil error means an
// unrecoverable I/O failure; step itself always converts that into an
// Error token followed by Eof before returning it, so the only thing a
// caller should do with a non-nil error is stop calling step.
func (m *machine) step(r Reader, e Emitter) error {
	switch m.state {

	case stData:
		b, ok, err := r.Peek()
		if err != nil {
			return m.ioFail(e, err)
		}
		if !ok {
			e.FlushText()
			e.EmitEOF()
			return nil
		}
		_ = b
		res, err := r.ScanUntil(needleData)
		if err != nil {
			return m.ioFail(e, err)
		}
		switch res.Kind {
		case ScanEOF:
			e.FlushText()
			e.EmitEOF()
		case ScanBetween:
			e.AppendText(res.Start, res.End)
		case ScanAtNeedle:
			switch res.Needle {
			case '&':
				m.charRefCtx = ctxText
				m.state = stCharRefInData
			case '<':
				r.Consume(1)
				m.state = stTagOpen
			}
		}

	case stCharRefInData:
		r.Consume(1) // the '&'
		literal, resolved := resolveCharRef(r, m.resolver)
		var appendBytes []byte
		if resolved != nil {
			appendBytes = resolved
		} else {
			appendBytes = literal
		}
		switch m.charRefCtx {
		case ctxText:
			e.AppendTextBytes(appendBytes)
			m.state = stData
		case ctxAttrDouble:
			e.AppendAttrValueBytes(appendBytes)
			m.quote = quoteDouble
			m.state = stTagAttrValue
		case ctxAttrSingle:
			e.AppendAttrValueBytes(appendBytes)
			m.quote = quoteSingle
			m.state = stTagAttrValue
		case ctxAttrUnquoted:
			e.AppendAttrValueBytes(appendBytes)
			m.quote = quoteNone
			m.state = stTagAttrValue
		}

	case stTagOpen:
		b, ok, err := r.Peek()
		if err != nil {
			return m.ioFail(e, err)
		}
		switch {
		case ok && b == '/':
			r.Consume(1)
			m.state = stEndTagOpen
		case ok && b == '?':
			r.Consume(1)
			m.state = stPi
		case ok && b == '!':
			r.Consume(1)
			m.state = stMarkupDecl
		case !ok || isXMLWhitespace(b) || b == ':' || b == '<' || b == '>':
			e.EmitError(unexpectedSymbolOrEOF(ok, b))
			e.AppendTextByte('<')
			m.state = stData
		default:
			e.CreateStartTag()
			m.state = stTagName
		}

	case stEndTagOpen:
		b, ok, err := r.Peek()
		if err != nil {
			return m.ioFail(e, err)
		}
		switch {
		case ok && b == '>':
			r.Consume(1)
			e.EmitShortEndTag()
			m.state = stData
		case !ok || isXMLWhitespace(b) || b == ':' || b == '<':
			e.EmitError(unexpectedSymbolOrEOF(ok, b))
			e.AppendTextBytes([]byte("</"))
			m.state = stData
		default:
			e.CreateEndTag()
			m.state = stEndTagName
		}

	case stEndTagName:
		res, err := r.ScanUntil(needleEndTagName)
		if err != nil {
			return m.ioFail(e, err)
		}
		switch res.Kind {
		case ScanEOF:
			e.EmitError(Error{Kind: ErrEofInTag})
			e.EmitEndTag()
			m.state = stData
		case ScanBetween:
			e.AppendTag(res.Start, res.End)
		case ScanAtNeedle:
			switch res.Needle {
			case '\t', '\n', '\r', ' ':
				r.Consume(1)
				m.state = stEndTagNameAfter
			case '/':
				r.Consume(1)
				e.EmitError(Error{Kind: ErrUnexpectedSymbol, Symbol: '/'})
				m.state = stEndTagNameAfter
			case '>':
				r.Consume(1)
				e.EmitEndTag()
				m.state = stData
			}
		}

	case stEndTagNameAfter:
		b, ok, err := r.Peek()
		if err != nil {
			return m.ioFail(e, err)
		}
		switch {
		case ok && b == '>':
			r.Consume(1)
			e.EmitEndTag()
			m.state = stData
		case ok && isXMLWhitespace(b):
			r.Consume(1)
		case !ok:
			e.EmitError(Error{Kind: ErrEofInTag})
			e.EmitEndTag()
			m.state = stData
		default:
			if _, err := r.ScanUntil([]byte{'\t', '\n', '\r', ' ', '>'}); err != nil {
				return m.ioFail(e, err)
			}
			e.EmitError(Error{Kind: ErrUnexpectedSymbol, Symbol: rune(b)})
		}

	case stTagName:
		res, err := r.ScanUntil(needleTagName)
		if err != nil {
			return m.ioFail(e, err)
		}
		switch res.Kind {
		case ScanEOF:
			e.EmitError(Error{Kind: ErrEofInTag})
			e.EmitTag()
			m.state = stData
		case ScanBetween:
			e.AppendTag(res.Start, res.End)
		case ScanAtNeedle:
			switch res.Needle {
			case '\t', '\n', '\r', ' ':
				r.Consume(1)
				m.state = stTagAttrNameBefore
			case '>':
				r.Consume(1)
				e.EmitTag()
				m.state = stData
			case '/':
				r.Consume(1)
				e.SetSelfClosing()
				m.state = stEmptyTag
			}
		}

	case stEmptyTag:
		b, ok, err := r.Peek()
		if err != nil {
			return m.ioFail(e, err)
		}
		switch {
		case ok && b == '>':
			r.Consume(1)
			e.EmitTag()
			m.state = stData
		case !ok:
			e.EmitError(Error{Kind: ErrEofInTag})
			e.EmitTag()
			m.state = stData
		default:
			e.EmitError(Error{Kind: ErrUnexpectedSymbol, Symbol: rune(b)})
			m.state = stTagAttrNameBefore
		}

	case stTagAttrNameBefore:
		b, ok, err := r.Peek()
		if err != nil {
			return m.ioFail(e, err)
		}
		switch {
		case ok && isXMLWhitespace(b):
			r.Consume(1)
		case ok && b == '>':
			r.Consume(1)
			e.EmitTag()
			m.state = stData
		case ok && b == '/':
			r.Consume(1)
			e.SetSelfClosing()
			m.state = stEmptyTag
		case !ok:
			e.EmitError(Error{Kind: ErrEofInTag})
			e.EmitTag()
			m.state = stData
		case b == ':':
			e.EmitError(Error{Kind: ErrColonBeforeAttrName})
			e.CreateAttr()
			e.AppendAttrNameByte(b)
			r.Consume(1)
			m.state = stTagAttrName
		default:
			e.CreateAttr()
			e.AppendAttrNameByte(b)
			r.Consume(1)
			m.state = stTagAttrName
		}

	case stTagAttrName:
		res, err := r.ScanUntil(needleAttrName)
		if err != nil {
			return m.ioFail(e, err)
		}
		switch res.Kind {
		case ScanEOF:
			e.EmitError(Error{Kind: ErrEofInTag})
			e.EmitTag()
			m.state = stData
		case ScanBetween:
			e.AppendAttrName(res.Start, res.End)
		case ScanAtNeedle:
			switch res.Needle {
			case '\t', '\n', '\r', ' ':
				r.Consume(1)
				m.state = stTagAttrNameAfter
			case '=':
				r.Consume(1)
				m.state = stTagAttrValueBefore
			case '>':
				r.Consume(1)
				e.EmitTag()
				m.state = stData
			case '/':
				r.Consume(1)
				e.SetSelfClosing()
				m.state = stEmptyTag
			}
		}

	case stTagAttrNameAfter:
		b, ok, err := r.Peek()
		if err != nil {
			return m.ioFail(e, err)
		}
		switch {
		case ok && isXMLWhitespace(b):
			r.Consume(1)
		case ok && b == '=':
			r.Consume(1)
			m.state = stTagAttrValueBefore
		case ok && b == '>':
			r.Consume(1)
			e.EmitTag()
			m.state = stData
		case ok && b == '/':
			r.Consume(1)
			e.SetSelfClosing()
			m.state = stEmptyTag
		case !ok:
			e.EmitError(Error{Kind: ErrEofInTag})
			e.EmitTag()
			m.state = stData
		default:
			m.state = stTagAttrNameBefore
		}

	case stTagAttrValueBefore:
		b, ok, err := r.Peek()
		if err != nil {
			return m.ioFail(e, err)
		}
		switch {
		case ok && isXMLWhitespace(b):
			r.Consume(1)
		case ok && b == '"':
			r.Consume(1)
			m.quote = quoteDouble
			m.state = stTagAttrValue
		case ok && b == '\'':
			r.Consume(1)
			m.quote = quoteSingle
			m.state = stTagAttrValue
		case ok && b == '&':
			m.charRefCtx = ctxAttrUnquoted
			m.state = stCharRefInData
		case ok && b == '>':
			r.Consume(1)
			e.EmitTag()
			m.state = stData
		case !ok:
			e.EmitError(Error{Kind: ErrEofInTag})
			e.EmitTag()
			m.state = stData
		default:
			m.quote = quoteNone
			m.state = stTagAttrValue
		}

	case stTagAttrValue:
		var needle []byte
		switch m.quote {
		case quoteDouble:
			needle = needleAttrValueDouble
		case quoteSingle:
			needle = needleAttrValueSingle
		default:
			needle = needleAttrValueUnquoted
		}
		res, err := r.ScanUntil(needle)
		if err != nil {
			return m.ioFail(e, err)
		}
		switch res.Kind {
		case ScanEOF:
			e.EmitError(Error{Kind: ErrEofInTag})
			e.EmitTag()
			m.state = stData
		case ScanBetween:
			e.AppendAttrValue(res.Start, res.End)
		case ScanAtNeedle:
			switch {
			case res.Needle == '&':
				switch m.quote {
				case quoteDouble:
					m.charRefCtx = ctxAttrDouble
				case quoteSingle:
					m.charRefCtx = ctxAttrSingle
				default:
					m.charRefCtx = ctxAttrUnquoted
				}
				m.state = stCharRefInData
			case m.quote == quoteDouble && res.Needle == '"':
				r.Consume(1)
				m.state = stTagAttrNameBefore
			case m.quote == quoteSingle && res.Needle == '\'':
				r.Consume(1)
				m.state = stTagAttrNameBefore
			case m.quote == quoteNone && isXMLWhitespace(res.Needle):
				r.Consume(1)
				m.state = stTagAttrNameBefore
			case m.quote == quoteNone && res.Needle == '>':
				r.Consume(1)
				e.EmitTag()
				m.state = stData
			}
		}

	case stMarkupDecl:
		if matched, err := r.TryMatch([]byte("--"), true); err != nil {
			return m.ioFail(e, err)
		} else if matched {
			e.CreateComment()
			m.state = stCommentStart
			break
		}
		if matched, err := r.TryMatch([]byte("DOCTYPE"), false); err != nil {
			return m.ioFail(e, err)
		} else if matched {
			e.CreateDoctype()
			m.state = stDoctype
			break
		}
		if matched, err := r.TryMatch([]byte("[CDATA["), true); err != nil {
			return m.ioFail(e, err)
		} else if matched {
			e.CreateCData()
			m.state = stCdata
			break
		}
		e.EmitError(Error{Kind: ErrIncorrectlyOpenedComment})
		e.CreateComment()
		m.state = stBogusComment

	case stBogusComment:
		res, err := r.ScanUntil(needleBogusComment)
		if err != nil {
			return m.ioFail(e, err)
		}
		switch res.Kind {
		case ScanEOF:
			e.EmitError(Error{Kind: ErrEofInComment})
			e.EmitComment()
			m.state = stData
		case ScanBetween:
			e.AppendComment(res.Start, res.End)
		case ScanAtNeedle:
			r.Consume(1)
			e.EmitComment()
			m.state = stData
		}

	// --- comment states ---

	case stCommentStart:
		b, ok, err := r.Peek()
		if err != nil {
			return m.ioFail(e, err)
		}
		switch {
		case ok && b == '-':
			r.Consume(1)
			m.state = stCommentStartDash
		case ok && b == '>':
			r.Consume(1)
			e.EmitError(Error{Kind: ErrAbruptClosingEmptyComment})
			e.EmitComment()
			m.state = stData
		case !ok:
			e.EmitError(Error{Kind: ErrEofInComment})
			e.EmitComment()
			m.state = stData
		default:
			m.state = stComment
		}

	case stCommentStartDash:
		b, ok, err := r.Peek()
		if err != nil {
			return m.ioFail(e, err)
		}
		switch {
		case ok && b == '-':
			r.Consume(1)
			m.state = stCommentEnd
		case ok && b == '>':
			r.Consume(1)
			e.EmitError(Error{Kind: ErrAbruptClosingEmptyComment})
			e.EmitComment()
			m.state = stData
		case !ok:
			e.EmitError(Error{Kind: ErrEofInComment})
			e.EmitComment()
			m.state = stData
		default:
			e.AppendCommentByte('-')
			m.state = stComment
		}

	case stComment:
		res, err := r.ScanUntil([]byte{'<', '-'})
		if err != nil {
			return m.ioFail(e, err)
		}
		switch res.Kind {
		case ScanEOF:
			e.EmitError(Error{Kind: ErrEofInComment})
			e.EmitComment()
			m.state = stData
		case ScanBetween:
			e.AppendComment(res.Start, res.End)
		case ScanAtNeedle:
			switch res.Needle {
			case '<':
				r.Consume(1)
				e.AppendCommentByte('<')
				m.state = stCommentLessThan
			case '-':
				r.Consume(1)
				m.state = stCommentEndDash
			}
		}

	case stCommentLessThan:
		b, ok, err := r.Peek()
		if err != nil {
			return m.ioFail(e, err)
		}
		switch {
		case ok && b == '!':
			r.Consume(1)
			e.AppendCommentByte('!')
			m.state = stCommentLessThanBang
		case ok && b == '<':
			r.Consume(1)
			e.AppendCommentByte('<')
		default:
			m.state = stComment
		}

	case stCommentLessThanBang:
		b, ok, err := r.Peek()
		if err != nil {
			return m.ioFail(e, err)
		}
		if ok && b == '-' {
			r.Consume(1)
			m.state = stCommentLessThanBangDash
		} else {
			m.state = stComment
		}

	case stCommentLessThanBangDash:
		b, ok, err := r.Peek()
		if err != nil {
			return m.ioFail(e, err)
		}
		if ok && b == '-' {
			r.Consume(1)
			m.state = stCommentLessThanBangDashDash
		} else {
			m.state = stCommentEndDash
		}

	case stCommentLessThanBangDashDash:
		b, ok, err := r.Peek()
		if err != nil {
			return m.ioFail(e, err)
		}
		if !ok || b == '>' {
			m.state = stCommentEnd
		} else {
			e.EmitError(Error{Kind: ErrGreaterThanInComment})
			m.state = stCommentEnd
		}

	case stCommentEndDash:
		b, ok, err := r.Peek()
		if err != nil {
			return m.ioFail(e, err)
		}
		switch {
		case ok && b == '-':
			r.Consume(1)
			m.state = stCommentEnd
		case !ok:
			e.EmitError(Error{Kind: ErrEofInComment})
			e.EmitComment()
			m.state = stData
		default:
			e.AppendCommentByte('-')
			m.state = stComment
		}

	case stCommentEnd:
		b, ok, err := r.Peek()
		if err != nil {
			return m.ioFail(e, err)
		}
		switch {
		case ok && b == '>':
			r.Consume(1)
			e.EmitComment()
			m.state = stData
		case ok && b == '!':
			r.Consume(1)
			m.state = stCommentEndBang
		case ok && b == '-':
			r.Consume(1)
			e.AppendCommentByte('-')
		case !ok:
			e.EmitError(Error{Kind: ErrEofInComment})
			e.EmitComment()
			m.state = stData
		default:
			e.AppendCommentBytes([]byte("--"))
			m.state = stComment
		}

	case stCommentEndBang:
		b, ok, err := r.Peek()
		if err != nil {
			return m.ioFail(e, err)
		}
		switch {
		case ok && b == '-':
			r.Consume(1)
			e.AppendCommentBytes([]byte("--!"))
			m.state = stCommentEndDash
		case ok && b == '>':
			r.Consume(1)
			e.EmitError(Error{Kind: ErrAbruptClosingEmptyComment})
			e.EmitComment()
			m.state = stData
		case !ok:
			e.EmitError(Error{Kind: ErrEofInComment})
			e.EmitComment()
			m.state = stData
		default:
			e.AppendCommentBytes([]byte("--!"))
			m.state = stComment
		}

	// --- cdata states ---

	case stCdata:
		res, err := r.ScanUntil(needleCdataBody)
		if err != nil {
			return m.ioFail(e, err)
		}
		switch res.Kind {
		case ScanEOF:
			e.EmitError(Error{Kind: ErrEofInCdata})
			e.EmitCDataAsText()
			e.FlushText()
			e.EmitEOF()
		case ScanBetween:
			e.AppendCData(res.Start, res.End)
		case ScanAtNeedle:
			m.state = stCdataBracket
		}

	case stCdataBracket:
		r.Consume(1) // the ']'
		b, ok, err := r.Peek()
		if err != nil {
			return m.ioFail(e, err)
		}
		if ok && b == ']' {
			r.Consume(1)
			m.state = stCdataEnd
		} else {
			e.AppendCDataByte(']')
			m.state = stCdata
		}

	case stCdataEnd:
		b, ok, err := r.Peek()
		if err != nil {
			return m.ioFail(e, err)
		}
		switch {
		case ok && b == '>':
			r.Consume(1)
			e.EmitCData()
			m.state = stData
		case ok && b == ']':
			r.Consume(1)
			e.AppendCDataByte(']')
		case !ok:
			e.AppendCDataBytes([]byte("]]"))
			e.EmitError(Error{Kind: ErrEofInCdata})
			e.EmitCDataAsText()
			e.FlushText()
			e.EmitEOF()
		default:
			e.AppendCDataBytes([]byte("]]"))
			m.state = stCdata
		}

	// --- doctype states ---

	case stDoctype:
		b, ok, err := r.Peek()
		if err != nil {
			return m.ioFail(e, err)
		}
		switch {
		case ok && isXMLWhitespace(b):
			r.Consume(1)
			m.state = stBeforeDoctypeName
		default:
			e.EmitError(Error{Kind: ErrMissingWhitespaceDoctype})
			m.state = stBeforeDoctypeName
		}

	case stBeforeDoctypeName:
		b, ok, err := r.Peek()
		if err != nil {
			return m.ioFail(e, err)
		}
		switch {
		case ok && isXMLWhitespace(b):
			r.Consume(1)
		case ok && b == '>':
			r.Consume(1)
			e.EmitError(Error{Kind: ErrMissingDoctypeName})
			e.EmitDoctype()
			m.state = stData
		case !ok:
			e.EmitError(Error{Kind: ErrEofInDoctype})
			e.EmitDoctype()
			m.state = stData
		default:
			e.AppendDoctypeNameByte(b)
			r.Consume(1)
			m.state = stDoctypeName
		}

	case stDoctypeName:
		b, ok, err := r.Peek()
		if err != nil {
			return m.ioFail(e, err)
		}
		switch {
		case ok && isXMLWhitespace(b):
			r.Consume(1)
			m.bracketDeep = 0
			m.state = stAfterDoctypeName
		case ok && b == '>':
			r.Consume(1)
			e.EmitDoctype()
			m.state = stData
		case !ok:
			e.EmitError(Error{Kind: ErrEofInDoctype})
			e.EmitDoctype()
			m.state = stData
		default:
			e.AppendDoctypeNameByte(b)
			r.Consume(1)
		}

	case stAfterDoctypeName:
		b, ok, err := r.Peek()
		if err != nil {
			return m.ioFail(e, err)
		}
		switch {
		case !ok:
			e.EmitError(Error{Kind: ErrEofInDoctype})
			e.EmitDoctype()
			m.state = stData
		case isXMLWhitespace(b):
			r.Consume(1)
		case b == '[':
			r.Consume(1)
			m.bracketDeep++
		case b == ']' && m.bracketDeep > 0:
			r.Consume(1)
			m.bracketDeep--
		case b == '>' && m.bracketDeep == 0:
			r.Consume(1)
			e.EmitDoctype()
			m.state = stData
		case m.bracketDeep > 0:
			r.Consume(1)
		default:
			if matched, err := r.TryMatch([]byte("PUBLIC"), false); err != nil {
				return m.ioFail(e, err)
			} else if matched {
				m.doctypeKind = DoctypeIDPublic
				m.state = stAfterDoctypeKeyword
				break
			}
			if matched, err := r.TryMatch([]byte("SYSTEM"), false); err != nil {
				return m.ioFail(e, err)
			} else if matched {
				m.doctypeKind = DoctypeIDSystem
				m.state = stAfterDoctypeKeyword
				break
			}
			e.EmitError(Error{Kind: ErrInvalidCharactersInAfterDoctypeName})
			m.state = stBogusDoctype
		}

	case stAfterDoctypeKeyword:
		b, ok, err := r.Peek()
		if err != nil {
			return m.ioFail(e, err)
		}
		switch {
		case ok && isXMLWhitespace(b):
			r.Consume(1)
			m.state = stBeforeDoctypeIdentifier
		case ok && b == '>':
			r.Consume(1)
			e.EmitError(Error{Kind: ErrMissingWhitespaceAfterDoctypeKeyword})
			e.EmitDoctype()
			m.state = stData
		case !ok:
			e.EmitError(Error{Kind: ErrEofInDoctype})
			e.EmitDoctype()
			m.state = stData
		default:
			e.EmitError(Error{Kind: ErrMissingWhitespaceAfterDoctypeKeyword})
			m.state = stBeforeDoctypeIdentifier
		}

	case stBeforeDoctypeIdentifier:
		b, ok, err := r.Peek()
		if err != nil {
			return m.ioFail(e, err)
		}
		switch {
		case ok && isXMLWhitespace(b):
			r.Consume(1)
		case ok && (b == '"' || b == '\''):
			r.Consume(1)
			e.SetDoctypeIDKind(m.doctypeKind)
			if b == '"' {
				m.quote = quoteDouble
			} else {
				m.quote = quoteSingle
			}
			m.state = stDoctypeIdentifierQuoted
		case ok && b == '>':
			r.Consume(1)
			e.EmitError(Error{Kind: ErrMissingDoctypeIdentifier})
			e.EmitDoctype()
			m.state = stData
		case !ok:
			e.EmitError(Error{Kind: ErrEofInDoctype})
			e.EmitDoctype()
			m.state = stData
		default:
			e.EmitError(Error{Kind: ErrMissingQuoteBeforeIdentifier})
			m.state = stBogusDoctype
		}

	case stDoctypeIdentifierQuoted:
		needle := needleQuoteDouble
		if m.quote == quoteSingle {
			needle = needleQuoteSingle
		}
		res, err := r.ScanUntil(needle)
		if err != nil {
			return m.ioFail(e, err)
		}
		switch res.Kind {
		case ScanEOF:
			e.EmitError(Error{Kind: ErrEofInDoctype})
			e.EmitDoctype()
			m.state = stData
		case ScanBetween:
			e.AppendDoctypeID(res.Start, res.End)
		case ScanAtNeedle:
			r.Consume(1)
			m.state = stAfterDoctypeIdentifier
		}

	case stAfterDoctypeIdentifier:
		b, ok, err := r.Peek()
		if err != nil {
			return m.ioFail(e, err)
		}
		if !ok {
			e.EmitError(Error{Kind: ErrEofInDoctype})
			e.EmitDoctype()
			m.state = stData
			break
		}
		if m.doctypeKind == DoctypeIDPublic {
			switch {
			case isXMLWhitespace(b):
				r.Consume(1)
				m.state = stBetweenDoctypePublicAndSystemIdentifiers
			case b == '>':
				r.Consume(1)
				e.EmitDoctype()
				m.state = stData
			case b == '"' || b == '\'':
				e.EmitError(Error{Kind: ErrMissingWhitespaceBetweenDoctypePublicAndSystem})
				m.doctypeKind = DoctypeIDSystem
				m.state = stBeforeDoctypeIdentifier
			default:
				e.EmitError(Error{Kind: ErrAbruptEndDoctypeIdentifier})
				m.state = stBogusDoctype
			}
		} else {
			switch {
			case isXMLWhitespace(b):
				r.Consume(1)
			case b == '>':
				r.Consume(1)
				e.EmitDoctype()
				m.state = stData
			default:
				e.EmitError(Error{Kind: ErrAbruptEndDoctypeIdentifier})
				m.state = stBogusDoctype
			}
		}

	case stBetweenDoctypePublicAndSystemIdentifiers:
		b, ok, err := r.Peek()
		if err != nil {
			return m.ioFail(e, err)
		}
		switch {
		case ok && isXMLWhitespace(b):
			r.Consume(1)
		case ok && (b == '"' || b == '\''):
			r.Consume(1)
			m.doctypeKind = DoctypeIDSystem
			e.SetDoctypeIDKind(DoctypeIDSystem)
			if b == '"' {
				m.quote = quoteDouble
			} else {
				m.quote = quoteSingle
			}
			m.state = stDoctypeIdentifierQuoted
		case ok && b == '>':
			r.Consume(1)
			e.EmitDoctype()
			m.state = stData
		case !ok:
			e.EmitError(Error{Kind: ErrEofInDoctype})
			e.EmitDoctype()
			m.state = stData
		default:
			e.EmitError(Error{Kind: ErrMissingQuoteBeforeIdentifier})
			m.state = stBogusDoctype
		}

	case stBogusDoctype:
		res, err := r.ScanUntil(needleBogusDoctype)
		if err != nil {
			return m.ioFail(e, err)
		}
		switch res.Kind {
		case ScanEOF:
			e.EmitError(Error{Kind: ErrEofInDoctype})
			e.EmitDoctype()
			m.state = stData
		case ScanBetween:
			// DTD/internal-subset content is discarded.
		case ScanAtNeedle:
			r.Consume(1)
			e.EmitDoctype()
			m.state = stData
		}

	// --- processing instruction / xml declaration states ---

	case stPi:
		if matched, err := r.TryMatch([]byte("xml"), true); err != nil {
			return m.ioFail(e, err)
		} else if matched {
			b, ok, err := r.Peek()
			if err != nil {
				return m.ioFail(e, err)
			}
			if ok && isXMLWhitespace(b) {
				r.Consume(1)
				e.CreateDecl()
				m.state = stXMLDecl
			} else {
				e.CreatePI()
				e.AppendPITargetBytes([]byte("xml"))
				m.state = stPiTarget
			}
			break
		}
		b, ok, err := r.Peek()
		if err != nil {
			return m.ioFail(e, err)
		}
		switch {
		case !ok || isXMLWhitespace(b):
			e.EmitError(unexpectedSymbolOrEOF(ok, b))
			e.CreateComment()
			m.state = stBogusComment
		default:
			e.CreatePI()
			m.state = stPiTarget
		}

	case stPiTarget:
		res, err := r.ScanUntil(needlePiTarget)
		if err != nil {
			return m.ioFail(e, err)
		}
		switch res.Kind {
		case ScanEOF:
			e.EmitError(Error{Kind: ErrUnexpectedEof})
			e.EmitPI()
			m.state = stData
		case ScanBetween:
			e.AppendPITarget(res.Start, res.End)
		case ScanAtNeedle:
			switch res.Needle {
			case '\t', '\n', '\r', ' ':
				r.Consume(1)
				m.state = stPiTargetAfter
			case '?':
				r.Consume(1)
				m.state = stPiAfter
			}
		}

	case stPiTargetAfter:
		b, ok, err := r.Peek()
		if err != nil {
			return m.ioFail(e, err)
		}
		switch {
		case ok && isXMLWhitespace(b):
			r.Consume(1)
		case !ok:
			e.EmitError(Error{Kind: ErrUnexpectedEof})
			e.EmitPI()
			m.state = stData
		default:
			m.state = stPiData
		}

	case stPiData:
		res, err := r.ScanUntil(needlePiData)
		if err != nil {
			return m.ioFail(e, err)
		}
		switch res.Kind {
		case ScanEOF:
			e.EmitError(Error{Kind: ErrUnexpectedEof})
			e.EmitPI()
			m.state = stData
		case ScanBetween:
			e.AppendPIData(res.Start, res.End)
		case ScanAtNeedle:
			matched, err := r.TryMatch([]byte("?>"), true)
			if err != nil {
				return m.ioFail(e, err)
			}
			if matched {
				e.EmitPI()
				m.state = stData
			} else {
				r.Consume(1)
				e.AppendPIDataByte('?')
			}
		}

	case stPiAfter:
		b, ok, err := r.Peek()
		if err != nil {
			return m.ioFail(e, err)
		}
		switch {
		case ok && b == '>':
			r.Consume(1)
			e.EmitPI()
			m.state = stData
		case !ok:
			e.EmitError(Error{Kind: ErrUnexpectedEof})
			e.EmitPI()
			m.state = stData
		default:
			e.AppendPIDataByte('?')
			m.state = stPiData
		}

	case stXMLDecl:
		b, ok, err := r.Peek()
		if err != nil {
			return m.ioFail(e, err)
		}
		switch {
		case ok && isXMLWhitespace(b):
			r.Consume(1)
			e.AppendDeclRawByte(b)
		case ok && b == '?':
			matched, err := r.TryMatch([]byte("?>"), true)
			if err != nil {
				return m.ioFail(e, err)
			}
			if matched {
				e.EmitDecl()
				m.state = stData
			} else {
				r.Consume(1)
				e.EmitError(Error{Kind: ErrAbruptClosingXMLDeclaration})
				e.AppendDeclRawByte('?')
			}
		case !ok:
			e.EmitError(Error{Kind: ErrEofInXMLDeclaration})
			e.EmitDecl()
			m.state = stData
		default:
			m.state = stXMLDeclAttrName
		}

	case stXMLDeclAttrName:
		if matched, err := r.TryMatch([]byte("version"), true); err != nil {
			return m.ioFail(e, err)
		} else if matched {
			e.SetDeclAttr(DeclVersion)
			e.AppendDeclRawBytes([]byte("version"))
			m.state = stXMLDeclAttrNameAfter
			break
		}
		if matched, err := r.TryMatch([]byte("encoding"), true); err != nil {
			return m.ioFail(e, err)
		} else if matched {
			e.SetDeclAttr(DeclEncoding)
			e.AppendDeclRawBytes([]byte("encoding"))
			m.state = stXMLDeclAttrNameAfter
			break
		}
		if matched, err := r.TryMatch([]byte("standalone"), true); err != nil {
			return m.ioFail(e, err)
		} else if matched {
			e.SetDeclAttr(DeclStandalone)
			e.AppendDeclRawBytes([]byte("standalone"))
			m.state = stXMLDeclAttrNameAfter
			break
		}
		e.EmitError(Error{Kind: ErrInvalidXMLDeclaration})
		e.DemoteDeclToPI()
		m.state = stPiData

	case stXMLDeclAttrNameAfter:
		b, ok, err := r.Peek()
		if err != nil {
			return m.ioFail(e, err)
		}
		switch {
		case ok && isXMLWhitespace(b):
			r.Consume(1)
			e.AppendDeclRawByte(b)
		case ok && b == '=':
			r.Consume(1)
			e.AppendDeclRawByte('=')
			m.state = stXMLDeclAttrValueBefore
		case !ok:
			e.EmitError(Error{Kind: ErrEofInXMLDeclaration})
			e.EmitDecl()
			m.state = stData
		default:
			e.EmitError(Error{Kind: ErrInvalidXMLDeclaration})
			m.state = stXMLDecl
		}

	case stXMLDeclAttrValueBefore:
		b, ok, err := r.Peek()
		if err != nil {
			return m.ioFail(e, err)
		}
		switch {
		case ok && isXMLWhitespace(b):
			r.Consume(1)
			e.AppendDeclRawByte(b)
		case ok && (b == '"' || b == '\''):
			r.Consume(1)
			e.AppendDeclRawByte(b)
			if b == '"' {
				m.quote = quoteDouble
			} else {
				m.quote = quoteSingle
			}
			m.state = stXMLDeclAttrValueQuoted
		case !ok:
			e.EmitError(Error{Kind: ErrEofInXMLDeclaration})
			e.EmitDecl()
			m.state = stData
		default:
			e.EmitError(Error{Kind: ErrInvalidXMLDeclaration})
			m.state = stXMLDecl
		}

	case stXMLDeclAttrValueQuoted:
		needle := needleQuoteDouble
		if m.quote == quoteSingle {
			needle = needleQuoteSingle
		}
		res, err := r.ScanUntil(needle)
		if err != nil {
			return m.ioFail(e, err)
		}
		switch res.Kind {
		case ScanEOF:
			e.EmitError(Error{Kind: ErrEofInXMLDeclaration})
			e.EmitDecl()
			m.state = stData
		case ScanBetween:
			e.AppendDeclValue(res.Start, res.End)
		case ScanAtNeedle:
			r.Consume(1)
			e.AppendDeclRawByte(m.quote.byte())
			m.state = stXMLDeclAfter
		}

	case stXMLDeclAfter:
		_, ok, err := r.Peek()
		if err != nil {
			return m.ioFail(e, err)
		}
		if !ok {
			e.EmitError(Error{Kind: ErrEofInXMLDeclaration})
			e.EmitDecl()
			m.state = stData
			break
		}
		m.state = stXMLDecl
	}

	return nil
}

func (m *machine) ioFail(e Emitter, err error) error {
	e.EmitError(Error{Kind: ErrIO, Message: err.Error()})
	e.EmitEOF()
	return err
}

func unexpectedSymbolOrEOF(ok bool, b byte) Error {
	if !ok {
		return Error{Kind: ErrUnexpectedSymbolOrEof}
	}
	return Error{Kind: ErrUnexpectedSymbolOrEof, Byte: b, HasByte: true}
}
