package xml5

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

// drain collects every remaining token except a leading Bom, which a
// Tokenizer reports only when the input starts with a byte-order mark;
// TestTokenizerBOMDetection exercises that token directly.
func drain(t *Tokenizer) []Token {
	var out []Token
	for {
		tok, ok := t.Next()
		if !ok {
			return out
		}
		if _, isBom := tok.(Bom); isBom {
			continue
		}
		out = append(out, tok)
	}
}

func TestTokenizerPlainText(t *testing.T) {
	toks := drain(NewFromSlice([]byte("hello")))
	assert.Equal(t, []Token{Text{Data: Span{Bytes: []byte("hello")}}, EofToken{}}, toks)
}

func TestTokenizerSelfClosingTag(t *testing.T) {
	toks := drain(NewFromSlice([]byte("<a/>")))
	assert.Len(t, toks, 2)
	tag := toks[0].(StartTag)
	assert.Equal(t, "a", tag.Name.String())
	assert.True(t, tag.SelfClosing)
	assert.Empty(t, tag.Attr)
	assert.Equal(t, EofToken{}, toks[1])
}

func TestTokenizerStartAndEndTagWithAttr(t *testing.T) {
	toks := drain(NewFromSlice([]byte(`<a href="b">text</a>`)))
	assert.Len(t, toks, 4)

	start := toks[0].(StartTag)
	assert.Equal(t, "a", start.Name.String())
	val, ok := start.AttrValue([]byte("href"))
	assert.True(t, ok)
	assert.Equal(t, "b", val.String())

	text := toks[1].(Text)
	assert.Equal(t, "text", text.Data.String())

	end := toks[2].(EndTag)
	assert.Equal(t, "a", end.Name.String())

	assert.Equal(t, EofToken{}, toks[3])
}

func TestTokenizerShortEndTag(t *testing.T) {
	toks := drain(NewFromSlice([]byte(`a</>`)))
	assert.Len(t, toks, 3)
	assert.Equal(t, "a", toks[0].(Text).Data.String())
	end := toks[1].(EndTag)
	assert.Equal(t, "", end.Name.String())
}

func TestTokenizerComment(t *testing.T) {
	toks := drain(NewFromSlice([]byte("<!--hi-->")))
	assert.Len(t, toks, 2)
	assert.Equal(t, "hi", toks[0].(Comment).Data.String())
}

func TestTokenizerCData(t *testing.T) {
	toks := drain(NewFromSlice([]byte("<![CDATA[xy]]>")))
	assert.Len(t, toks, 2)
	assert.Equal(t, "xy", toks[0].(CData).Data.String())
}

func TestTokenizerCDataTruncatedByEOFBecomesText(t *testing.T) {
	toks := drain(NewFromSlice([]byte("<![CDATA[xy")))
	assert.Len(t, toks, 3)
	_, isErr := toks[0].(ErrorToken)
	assert.True(t, isErr)
	text := toks[1].(Text)
	assert.Equal(t, "xy", text.Data.String())
}

func TestTokenizerDoctypeNameOnly(t *testing.T) {
	toks := drain(NewFromSlice([]byte("<!DOCTYPE html>")))
	assert.Len(t, toks, 2)
	dt := toks[0].(DocType)
	assert.Equal(t, "html", dt.Name.String())
	assert.False(t, dt.HasPublic)
	assert.False(t, dt.HasSystem)
}

func TestTokenizerDoctypeNameLowercased(t *testing.T) {
	toks := drain(NewFromSlice([]byte("<!DOCTYPE HTML>")))
	dt := toks[0].(DocType)
	assert.Equal(t, "html", dt.Name.String())
}

func TestTokenizerProcessingInstruction(t *testing.T) {
	toks := drain(NewFromSlice([]byte("<?target data?>")))
	assert.Len(t, toks, 2)
	pi := toks[0].(PI)
	assert.Equal(t, "target", pi.Target.String())
	assert.Equal(t, "data", pi.Data.String())
}

func TestTokenizerXMLDeclaration(t *testing.T) {
	toks := drain(NewFromSlice([]byte(`<?xml version="1.0" encoding="utf-8"?>`)))
	assert.Len(t, toks, 2)
	decl := toks[0].(Decl)
	v, ok := decl.AttrValue(DeclVersion)
	assert.True(t, ok)
	assert.Equal(t, "1.0", v.String())
	enc, ok := decl.AttrValue(DeclEncoding)
	assert.True(t, ok)
	assert.Equal(t, "utf-8", enc.String())
}

func TestTokenizerCharRefInText(t *testing.T) {
	toks := drain(NewFromSlice([]byte("a&amp;b")))
	assert.Len(t, toks, 2)
	assert.Equal(t, "a&b", toks[0].(Text).Data.String())
}

func TestTokenizerNumericCharRef(t *testing.T) {
	toks := drain(NewFromSlice([]byte("&#65;&#x42;")))
	assert.Equal(t, "AB", toks[0].(Text).Data.String())
}

func TestTokenizerUnresolvedCharRefPassesThroughLiteral(t *testing.T) {
	toks := drain(NewFromSlice([]byte("&bogus;")))
	assert.Equal(t, "&bogus;", toks[0].(Text).Data.String())
}

func TestTokenizerDuplicateAttributeReportsErrorAndKeepsFirst(t *testing.T) {
	toks := drain(NewFromSlice([]byte(`<a x="1" x="2">`)))
	assert.Len(t, toks, 3)
	_, isErr := toks[0].(ErrorToken)
	assert.True(t, isErr)
	tag := toks[1].(StartTag)
	assert.Len(t, tag.Attr, 1)
	v, _ := tag.AttrValue([]byte("x"))
	assert.Equal(t, "1", v.String())
}

func TestTokenizerEofInsideTagStillEmitsBestEffortTag(t *testing.T) {
	toks := drain(NewFromSlice([]byte("<a")))
	assert.Len(t, toks, 3)
	_, isErr := toks[0].(ErrorToken)
	assert.True(t, isErr)
	tag := toks[1].(StartTag)
	assert.Equal(t, "a", tag.Name.String())
	assert.Equal(t, EofToken{}, toks[2])
}

func TestTokenizerEofAfterEofReturnsFalse(t *testing.T) {
	// Empty input has no byte-order mark, so the very first token is the
	// terminal Eof itself (spec.md §8: "Empty input → one Eof").
	tok := NewFromSlice([]byte(""))
	tokVal, ok := tok.Next()
	assert.True(t, ok, "EofToken")
	assert.Equal(t, EofToken{}, tokVal)
	_, ok = tok.Next()
	assert.False(t, ok)
	_, ok = tok.Next()
	assert.False(t, ok, "Next keeps returning false once terminal EOF has been delivered")
}

func TestTokenizerBufferedReaderMatchesSliceReader(t *testing.T) {
	input := []byte(`<root a="1"><!--c--><child/>text<![CDATA[raw]]></root>`)
	sliceToks := drain(NewFromSlice(input))
	bufToks := drain(New(NewBufferedReader(bytes.NewReader(input))))
	assert.Equal(t, len(sliceToks), len(bufToks))
	for i := range sliceToks {
		assert.Equal(t, spanStringOf(sliceToks[i]), spanStringOf(bufToks[i]))
	}
}

// spanStringOf extracts a comparable string rendering of a token's kind
// and text payload, so the two readers' streams are compared by content
// alone.
func spanStringOf(tok Token) string {
	switch v := tok.(type) {
	case Text:
		return "Text:" + v.Data.String()
	case StartTag:
		return "Start:" + v.Name.String()
	case EndTag:
		return "End:" + v.Name.String()
	case Comment:
		return "Comment:" + v.Data.String()
	case CData:
		return "CData:" + v.Data.String()
	case EofToken:
		return "EOF"
	default:
		return "Other"
	}
}

func TestTokenizerBOMDetection(t *testing.T) {
	cases := []struct {
		name string
		data []byte
		want BomEncoding
	}{
		{"utf8", append([]byte{0xEF, 0xBB, 0xBF}, []byte("x")...), EncodingUTF8},
		{"utf16le", append([]byte{0xFF, 0xFE}, []byte{'x', 0}...), EncodingUTF16LE},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			tok := NewFromSlice(tc.data)
			bom, ok := tok.Next()
			assert.True(t, ok)
			assert.Equal(t, tc.want, bom.(Bom).Encoding)
		})
	}
}

func TestTokenizerNoBOMEmitsNoBomToken(t *testing.T) {
	tok := NewFromSlice([]byte("x"))
	first, ok := tok.Next()
	assert.True(t, ok)
	_, isBom := first.(Bom)
	assert.False(t, isBom, "no mark present: the first token must be content, not Bom")
	assert.Equal(t, "x", first.(Text).Data.String())
}
