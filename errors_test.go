package xml5

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorKindString(t *testing.T) {
	cases := []struct {
		kind ErrorKind
		want string
	}{
		{ErrUnexpectedSymbol, "unexpected symbol"},
		{ErrEofInComment, "eof in comment"},
		{ErrDuplicateAttribute, "duplicate attribute"},
		{ErrorKind(9999), "unknown error"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, tc.kind.String())
	}
}

func TestErrorErrorMessages(t *testing.T) {
	cases := []struct {
		name string
		err  Error
		want string
	}{
		{"symbol", Error{Kind: ErrUnexpectedSymbol, Symbol: 'x'}, "unexpected symbol: 'x'"},
		{"byte present", Error{Kind: ErrUnexpectedSymbolOrEof, Byte: 'y', HasByte: true}, "unexpected symbol or eof: 'y'"},
		{"byte absent", Error{Kind: ErrUnexpectedSymbolOrEof}, "unexpected symbol or eof: eof"},
		{"io", Error{Kind: ErrIO, Message: "broken pipe"}, "i/o error: broken pipe"},
		{"plain", Error{Kind: ErrEofInTag}, "eof in tag"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.err.Error())
		})
	}
}
