package xml5

import (
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// BomEncoding identifies the byte-order mark (if any) sniffed at the
// start of input.
type BomEncoding int

const (
	// EncodingNone means no recognized mark was present; input is assumed
	// to already be UTF-8.
	EncodingNone BomEncoding = iota
	EncodingUTF8
	EncodingUTF16LE
	EncodingUTF16BE
)

func (e BomEncoding) String() string {
	switch e {
	case EncodingUTF8:
		return "utf-8"
	case EncodingUTF16LE:
		return "utf-16le"
	case EncodingUTF16BE:
		return "utf-16be"
	default:
		return "none"
	}
}

// sniffBOM inspects (without permanently consuming more than the mark
// itself) the first bytes of buf and reports which encoding mark, if
// any, is present and how many bytes it occupies.
func sniffBOM(buf []byte) (BomEncoding, int) {
	switch {
	case len(buf) >= 3 && buf[0] == 0xEF && buf[1] == 0xBB && buf[2] == 0xBF:
		return EncodingUTF8, 3
	case len(buf) >= 2 && buf[0] == 0xFF && buf[1] == 0xFE:
		return EncodingUTF16LE, 2
	case len(buf) >= 2 && buf[0] == 0xFE && buf[1] == 0xFF:
		return EncodingUTF16BE, 2
	default:
		return EncodingNone, 0
	}
}

// transcodeUTF16 decodes a complete UTF-16 buffer (minus its BOM) to
// UTF-8, using golang.org/x/text's transform machinery the way a
// streaming decoder pipeline normally would.
func transcodeUTF16(buf []byte, enc BomEncoding) ([]byte, error) {
	var e unicode.Endianness
	if enc == EncodingUTF16BE {
		e = unicode.BigEndian
	} else {
		e = unicode.LittleEndian
	}
	dec := unicode.UTF16(e, unicode.IgnoreBOM).NewDecoder()
	out, _, err := transform.Bytes(dec, buf)
	if err != nil {
		return nil, err
	}
	return out, nil
}
