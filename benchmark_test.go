package xml5

import (
	"bytes"
	"encoding/xml"
	"io"
	"strings"
	"testing"
)

// benchmarkData is a synthetic document standing in for a real-world
// corpus fixture: repeated nested elements, attributes, a comment and a
// CDATA section, large enough to exercise the fast-scan paths.
func benchmarkData() []byte {
	var b strings.Builder
	b.WriteString("<?xml version=\"1.0\" encoding=\"utf-8\"?>\n<root>\n")
	for i := 0; i < 2000; i++ {
		b.WriteString("<entry id=\"e")
		b.WriteString(strings.Repeat("x", 1))
		b.WriteString("\" kind=\"sample\"><name>Widget &amp; Gadget</name>")
		b.WriteString("<!-- a comment --><data><![CDATA[raw <stuff> here]]></data></entry>\n")
	}
	b.WriteString("</root>\n")
	return []byte(b.String())
}

func BenchmarkStdlibReader(b *testing.B) {
	data := benchmarkData()
	b.ReportAllocs()
	b.ResetTimer()
	for n := 0; n < b.N; n++ {
		d := xml.NewDecoder(bytes.NewReader(data))
		for {
			_, err := d.RawToken()
			if err == io.EOF {
				break
			} else if err != nil {
				b.Fatalf("unexpected error: %v", err)
			}
		}
	}
}

func BenchmarkTokenizerSliceReader(b *testing.B) {
	data := benchmarkData()
	b.ReportAllocs()
	b.ResetTimer()
	for n := 0; n < b.N; n++ {
		tok := NewFromSlice(data)
		for {
			t, ok := tok.Next()
			if !ok {
				break
			}
			if _, isEOF := t.(EofToken); isEOF {
				break
			}
		}
	}
}

func BenchmarkTokenizerBufferedReader(b *testing.B) {
	data := benchmarkData()
	b.ReportAllocs()
	b.ResetTimer()
	for n := 0; n < b.N; n++ {
		tok := New(NewBufferedReader(bytes.NewReader(data)))
		for {
			t, ok := tok.Next()
			if !ok {
				break
			}
			if _, isEOF := t.(EofToken); isEOF {
				break
			}
		}
	}
}
