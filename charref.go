package xml5

import (
	"encoding/xml"
	"strconv"
	"sync"
	"unicode/utf8"
)

// Resolver resolves a character reference's raw name bytes (the text
// between '&' and ';', not including either) into its replacement bytes.
// CharRefInData is specified only down to this interface: the lookup
// table backing it is an external collaborator, adapted here from the
// teacher's entity decoder (decode.go) into a pluggable shape rather than
// hardcoded into the state machine.
type Resolver interface {
	Resolve(name []byte) ([]byte, bool)
}

const maxCharRefLen = 32

type defaultResolver struct{}

// DefaultResolver resolves the five predefined XML entities and numeric
// character references (&#10; / &#x3B1;). It is the Tokenizer's default
// Resolver; callers needing a fuller table (HTML-style named entities)
// can supply HTMLResolver or their own.
var DefaultResolver Resolver = defaultResolver{}

func (defaultResolver) Resolve(name []byte) ([]byte, bool) {
	if len(name) > 1 && name[0] == '#' {
		return resolveNumericRef(name[1:])
	}
	switch string(name) {
	case "lt":
		return []byte("<"), true
	case "gt":
		return []byte(">"), true
	case "amp":
		return []byte("&"), true
	case "apos":
		return []byte("'"), true
	case "quot":
		return []byte(`"`), true
	default:
		return nil, false
	}
}

func resolveNumericRef(b []byte) ([]byte, bool) {
	base := 10
	if len(b) > 0 && (b[0] == 'x' || b[0] == 'X') {
		base = 16
		b = b[1:]
	}
	if len(b) == 0 {
		return nil, false
	}
	n, err := strconv.ParseUint(string(b), base, 32)
	if err != nil || !utf8.ValidRune(rune(n)) {
		return nil, false
	}
	buf := make([]byte, utf8.UTFMax)
	sz := utf8.EncodeRune(buf, rune(n))
	return buf[:sz], true
}

var (
	htmlResolverOnce sync.Once
	htmlResolverMap  map[string][]byte
)

type htmlResolver struct{}

// HTMLResolver extends DefaultResolver's five predefined entities and
// numeric references with the full HTML named-entity table from
// encoding/xml.HTMLEntity, adapted from the teacher's decode.go.
var HTMLResolver Resolver = htmlResolver{}

func (htmlResolver) Resolve(name []byte) ([]byte, bool) {
	if b, ok := DefaultResolver.Resolve(name); ok {
		return b, ok
	}
	htmlResolverOnce.Do(func() {
		htmlResolverMap = make(map[string][]byte, len(xml.HTMLEntity))
		for k, v := range xml.HTMLEntity {
			buf := make([]byte, utf8.UTFMax)
			n := utf8.EncodeRune(buf, v)
			htmlResolverMap[k] = buf[:n]
		}
	})
	b, ok := htmlResolverMap[string(name)]
	return b, ok
}

// resolveCharRef scans a character reference's name from r (the cursor
// must already be past the leading '&') and resolves it via resolver. On
// success it returns the replacement bytes; on failure (no resolver, an
// unresolved name, a missing terminating ';', or a name too long to be a
// sane reference) it returns the literal bytes scanned, including the
// leading '&', to be appended back into the surrounding content unchanged
// — consistent with this tokenizer never aborting on malformed input.
func resolveCharRef(r Reader, resolver Resolver) (literal []byte, resolved []byte) {
	var name []byte
	for i := 0; i < maxCharRefLen; i++ {
		b, ok, err := r.Peek()
		if err != nil || !ok {
			break
		}
		if b == ';' {
			r.Consume(1)
			if resolver != nil {
				if res, found := resolver.Resolve(name); found {
					return nil, res
				}
			}
			lit := make([]byte, 0, len(name)+2)
			lit = append(lit, '&')
			lit = append(lit, name...)
			lit = append(lit, ';')
			return lit, nil
		}
		if !isCharRefNameByte(b) {
			break
		}
		name = append(name, b)
		r.Consume(1)
	}
	lit := make([]byte, 0, len(name)+1)
	lit = append(lit, '&')
	lit = append(lit, name...)
	return lit, nil
}

func isCharRefNameByte(b byte) bool {
	switch {
	case b == '#':
		return true
	case b >= '0' && b <= '9':
		return true
	case b >= 'a' && b <= 'z':
		return true
	case b >= 'A' && b <= 'Z':
		return true
	}
	return false
}
