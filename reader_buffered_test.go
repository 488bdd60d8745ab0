package xml5

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBufferedReaderMirrorsSliceReaderBehavior(t *testing.T) {
	input := "<root attr=\"v\">text</root>"
	sr := NewSliceReader([]byte(input))
	br := NewBufferedReader(strings.NewReader(input))

	for i := 0; i < len(input); i++ {
		sb, sok, serr := sr.Peek()
		bb, bok, berr := br.Peek()
		assert.NoError(t, serr)
		assert.NoError(t, berr)
		assert.Equal(t, sok, bok)
		assert.Equal(t, sb, bb)
		sr.Consume(1)
		br.Consume(1)
	}
}

func TestBufferedReaderScanUntil(t *testing.T) {
	br := NewBufferedReader(strings.NewReader("hello<world"))
	res, err := br.ScanUntil([]byte{'<'})
	assert.NoError(t, err)
	assert.Equal(t, ScanBetween, res.Kind)
	assert.Equal(t, "hello", string(br.Slice(res.Start, res.End)))

	res, err = br.ScanUntil([]byte{'<'})
	assert.NoError(t, err)
	assert.Equal(t, ScanAtNeedle, res.Kind)
	assert.Equal(t, byte('<'), res.Needle)
}

func TestBufferedReaderScanUntilRunsToEOF(t *testing.T) {
	br := NewBufferedReader(strings.NewReader("no needle here"))
	res, err := br.ScanUntil([]byte{'<'})
	assert.NoError(t, err)
	assert.Equal(t, ScanBetween, res.Kind)
	assert.Equal(t, "no needle here", string(br.Slice(res.Start, res.End)))

	res, err = br.ScanUntil([]byte{'<'})
	assert.NoError(t, err)
	assert.Equal(t, ScanEOF, res.Kind)
}

func TestBufferedReaderTryMatch(t *testing.T) {
	br := NewBufferedReader(strings.NewReader("[CDATA[payload"))
	ok, err := br.TryMatch([]byte("[CDATA["), true)
	assert.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 7, br.Pos())
}

func TestBufferedReaderAppendCurrent(t *testing.T) {
	br := NewBufferedReader(strings.NewReader("ab"))
	idx, err := br.AppendCurrent()
	assert.NoError(t, err)
	assert.Equal(t, 0, idx)
	b, ok, err := br.Peek()
	assert.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, byte('a'), b, "AppendCurrent must not consume the byte")
	assert.Equal(t, "a", string(br.Slice(0, 1)), "the byte must already be mirrored into scratch")
}

func TestBufferedReaderTryMatchPastEOF(t *testing.T) {
	br := NewBufferedReader(strings.NewReader("ab"))
	ok, err := br.TryMatch([]byte("abcd"), true)
	assert.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, 0, br.Pos())
}
