package xml5

import "bytes"

// Token is implemented by every variant the tokenizer can emit.
type Token interface {
	token()
}

// Bom reports a byte-order mark sniffed at the start of input. It is
// emitted as the very first token of the stream only when a mark was
// actually present; a Tokenizer over input with no recognized mark never
// emits one.
type Bom struct {
	Encoding BomEncoding
}

func (Bom) token() {}

// Text is a run of character data outside any markup construct.
type Text struct{ Data Span }

func (Text) token() {}

// CData is the payload of a <![CDATA[ ... ]]> section.
type CData struct{ Data Span }

func (CData) token() {}

// Comment is the payload of a <!-- ... --> construct (and of a bogus
// comment recovered from malformed markup declarations).
type Comment struct{ Data Span }

func (Comment) token() {}

// Attr is one name/value pair captured on a start tag, in document order.
type Attr struct {
	Name  Span
	Value Span
}

// StartTag is an opening tag, e.g. <a href="x"> or the self-closing
// <br/>. SelfClosing distinguishes the latter; EmptyTag is not modeled as
// a separate token type since the two share identical payload shape.
type StartTag struct {
	Name        Span
	Attr        []Attr
	SelfClosing bool
}

func (StartTag) token() {}

// AttrValue looks up an attribute by exact byte match of its name.
func (t StartTag) AttrValue(name []byte) (Span, bool) {
	for _, a := range t.Attr {
		if bytes.Equal(a.Name.Bytes, name) {
			return a.Value, true
		}
	}
	return Span{}, false
}

// EndTag is a closing tag. An empty Name denotes a short end tag (</>).
type EndTag struct{ Name Span }

func (EndTag) token() {}

// PI is a processing instruction, <?target data?>.
type PI struct {
	Target Span
	Data   Span
}

func (PI) token() {}

// DeclAttrKind enumerates the XML declaration attributes the tokenizer
// recognizes by name.
type DeclAttrKind int

const (
	DeclVersion DeclAttrKind = iota
	DeclEncoding
	DeclStandalone
)

// DeclAttr is one recognized XML-declaration attribute.
type DeclAttr struct {
	Kind  DeclAttrKind
	Value Span
}

// Decl is an XML declaration, <?xml version="1.0" ...?>. Raw is the
// declaration text after "xml" and the whitespace byte that follows it, up
// to but not including "?>"; Attrs holds the
// subset of recognized attributes captured along the way.
type Decl struct {
	Raw   Span
	Attrs []DeclAttr
}

func (Decl) token() {}

// AttrValue looks up a recognized declaration attribute by kind.
func (d Decl) AttrValue(kind DeclAttrKind) (Span, bool) {
	for _, a := range d.Attrs {
		if a.Kind == kind {
			return a.Value, true
		}
	}
	return Span{}, false
}

// DocType is a <!DOCTYPE ...> construct. Public/System are only valid
// when HasPublic/HasSystem are true.
type DocType struct {
	Name      Span
	Public    Span
	HasPublic bool
	System    Span
	HasSystem bool
}

func (DocType) token() {}

// ErrorToken carries a recoverable lexical error or, with Kind ErrIO, a
// read failure. A lexical error never terminates the stream: a best-effort
// token for the construct being parsed follows (or precedes, per spec.md's
// ordering guarantee) in the normal sequence. An ErrIO error is followed
// only by EofToken.
type ErrorToken struct{ Err Error }

func (ErrorToken) token() {}

// EofToken is emitted exactly once, as the last token of the stream.
type EofToken struct{}

func (EofToken) token() {}
