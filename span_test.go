package xml5

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMixSpanAppendRangeMerges(t *testing.T) {
	var s mixSpan
	s.appendRange(0, 3)
	s.appendRange(3, 6)
	assert.Len(t, s.parts, 1, "contiguous ranges should merge into one part")
	assert.Equal(t, 0, s.parts[0].start)
	assert.Equal(t, 6, s.parts[0].end)
}

func TestMixSpanAppendRangeNonContiguous(t *testing.T) {
	var s mixSpan
	s.appendRange(0, 3)
	s.appendRange(5, 8)
	assert.Len(t, s.parts, 2)
}

func TestMixSpanAppendOwnedByteMerges(t *testing.T) {
	var s mixSpan
	s.appendOwnedByte('a')
	s.appendOwnedByte('b')
	s.appendOwnedByte('c')
	assert.Len(t, s.parts, 1)
	assert.Equal(t, []byte("abc"), s.parts[0].owned)
}

func TestMixSpanEmptyRangeNoop(t *testing.T) {
	var s mixSpan
	s.appendRange(4, 4)
	assert.True(t, s.empty())
}

func TestMaterializeSinglePartBorrows(t *testing.T) {
	buf := []byte("hello world")
	r := NewSliceReader(buf)
	var s mixSpan
	s.appendRange(0, 5)
	span := s.materialize(r)
	assert.False(t, span.Owned)
	assert.Equal(t, "hello", span.String())
}

func TestMaterializeMultiPartConcatenates(t *testing.T) {
	buf := []byte("hello world")
	r := NewSliceReader(buf)
	var s mixSpan
	s.appendRange(0, 5)
	s.appendOwned([]byte(" - "))
	s.appendRange(6, 11)
	span := s.materialize(r)
	assert.True(t, span.Owned)
	assert.Equal(t, "hello - world", span.String())
}

func TestMaterializeEmpty(t *testing.T) {
	var s mixSpan
	span := s.materialize(NewSliceReader(nil))
	assert.Equal(t, Span{}, span)
}

func TestSpanStringNoCopyView(t *testing.T) {
	source := []byte("lorem ipsum dolor sit amet")
	span := Span{Bytes: source[6:17]}
	assert.Equal(t, "ipsum dolor", span.String())
}
