package xml5

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSliceReaderScanUntil(t *testing.T) {
	cases := []struct {
		name     string
		input    string
		needles  []byte
		wantKind ScanKind
	}{
		{"eof on empty", "", []byte{'<'}, ScanEOF},
		{"at needle immediately", "<tag>", []byte{'<'}, ScanAtNeedle},
		{"runs to needle", "text<tag>", []byte{'<'}, ScanBetween},
		{"runs to real eof", "text only", []byte{'<'}, ScanBetween},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := NewSliceReader([]byte(tc.input))
			res, err := r.ScanUntil(tc.needles)
			assert.NoError(t, err)
			assert.Equal(t, tc.wantKind, res.Kind)
		})
	}
}

func TestSliceReaderScanUntilThenEOF(t *testing.T) {
	r := NewSliceReader([]byte("abc"))
	res, err := r.ScanUntil([]byte{'<'})
	assert.NoError(t, err)
	assert.Equal(t, ScanBetween, res.Kind)
	assert.Equal(t, 0, res.Start)
	assert.Equal(t, 3, res.End)

	res, err = r.ScanUntil([]byte{'<'})
	assert.NoError(t, err)
	assert.Equal(t, ScanEOF, res.Kind, "a second scan past true end of input reports ScanEOF")
}

func TestSliceReaderTryMatch(t *testing.T) {
	r := NewSliceReader([]byte("DOCTYPE html"))
	ok, err := r.TryMatch([]byte("doctype"), false)
	assert.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 7, r.Pos())

	ok, err = r.TryMatch([]byte("xxx"), false)
	assert.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, 7, r.Pos(), "a failed match must not advance the cursor")
}

func TestSliceReaderTryMatchCaseSensitive(t *testing.T) {
	r := NewSliceReader([]byte("XML"))
	ok, _ := r.TryMatch([]byte("xml"), true)
	assert.False(t, ok)
	ok, _ = r.TryMatch([]byte("XML"), true)
	assert.True(t, ok)
}

func TestSliceReaderPeekConsume(t *testing.T) {
	r := NewSliceReader([]byte("ab"))
	b, ok, err := r.Peek()
	assert.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, byte('a'), b)
	r.Consume(1)
	b, ok, err = r.Peek()
	assert.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, byte('b'), b)
	r.Consume(1)
	_, ok, err = r.Peek()
	assert.NoError(t, err)
	assert.False(t, ok)
}

func TestSliceReaderAppendCurrent(t *testing.T) {
	r := NewSliceReader([]byte("ab"))
	idx, err := r.AppendCurrent()
	assert.NoError(t, err)
	assert.Equal(t, 0, idx, "a no-op for SliceReader: the byte is already in buf")
	b, ok, err := r.Peek()
	assert.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, byte('a'), b, "AppendCurrent must not consume the byte")
}

func TestIsXMLWhitespace(t *testing.T) {
	for _, b := range []byte{'\t', '\n', '\r', ' '} {
		assert.True(t, isXMLWhitespace(b))
	}
	assert.False(t, isXMLWhitespace('a'))
}
