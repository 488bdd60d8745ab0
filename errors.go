package xml5

import "fmt"

// ErrorKind is the closed set of recoverable lexical errors the tokenizer
// can report. It never grows at runtime: every state transition that can
// fail picks one of these.
type ErrorKind int

const (
	ErrUnexpectedSymbol ErrorKind = iota
	ErrUnexpectedSymbolOrEof
	ErrUnexpectedEof
	ErrIncorrectlyOpenedComment
	ErrAbruptClosingEmptyComment
	ErrAbruptClosingXMLDeclaration
	ErrAbruptEndDoctypeIdentifier
	ErrColonBeforeAttrName
	ErrEofInCdata
	ErrEofInComment
	ErrEofInDoctype
	ErrEofInTag
	ErrEofInXMLDeclaration
	ErrGreaterThanInComment
	ErrInvalidCharactersInAfterDoctypeName
	ErrInvalidXMLDeclaration
	ErrMissingWhitespaceDoctype
	ErrMissingWhitespaceAfterDoctypeKeyword
	ErrMissingWhitespaceBetweenDoctypePublicAndSystem
	ErrMissingQuoteBeforeIdentifier
	ErrMissingDoctypeName
	ErrMissingDoctypeIdentifier
	ErrDuplicateAttribute
	ErrIO
	ErrNonDecodable
	ErrNotFound
)

var errorKindNames = [...]string{
	ErrUnexpectedSymbol:                               "unexpected symbol",
	ErrUnexpectedSymbolOrEof:                           "unexpected symbol or eof",
	ErrUnexpectedEof:                                   "unexpected eof",
	ErrIncorrectlyOpenedComment:                        "incorrectly opened comment",
	ErrAbruptClosingEmptyComment:                       "abrupt closing of empty comment",
	ErrAbruptClosingXMLDeclaration:                     "abrupt closing of xml declaration",
	ErrAbruptEndDoctypeIdentifier:                      "abrupt end of doctype identifier",
	ErrColonBeforeAttrName:                             "colon before attribute name",
	ErrEofInCdata:                                      "eof in cdata",
	ErrEofInComment:                                    "eof in comment",
	ErrEofInDoctype:                                    "eof in doctype",
	ErrEofInTag:                                        "eof in tag",
	ErrEofInXMLDeclaration:                             "eof in xml declaration",
	ErrGreaterThanInComment:                            "greater-than sign in comment",
	ErrInvalidCharactersInAfterDoctypeName:              "invalid characters after doctype name",
	ErrInvalidXMLDeclaration:                           "invalid xml declaration",
	ErrMissingWhitespaceDoctype:                        "missing whitespace in doctype",
	ErrMissingWhitespaceAfterDoctypeKeyword:            "missing whitespace after doctype keyword",
	ErrMissingWhitespaceBetweenDoctypePublicAndSystem:  "missing whitespace between public and system identifiers",
	ErrMissingQuoteBeforeIdentifier:                    "missing quote before identifier",
	ErrMissingDoctypeName:                              "missing doctype name",
	ErrMissingDoctypeIdentifier:                        "missing doctype identifier",
	ErrDuplicateAttribute:                              "duplicate attribute",
	ErrIO:                                              "i/o error",
	ErrNonDecodable:                                     "non-decodable input",
	ErrNotFound:                                        "not found",
}

func (k ErrorKind) String() string {
	if int(k) >= 0 && int(k) < len(errorKindNames) && errorKindNames[k] != "" {
		return errorKindNames[k]
	}
	return "unknown error"
}

// Error is a single recoverable lexical error, carrying whatever payload
// its Kind defines. Not every field is meaningful for every Kind.
type Error struct {
	Kind ErrorKind

	// Symbol is set for ErrUnexpectedSymbol.
	Symbol rune

	// Byte/HasByte model Option<byte> for ErrUnexpectedSymbolOrEof: HasByte
	// false means the symbol was EOF rather than a byte.
	Byte    byte
	HasByte bool

	// Message carries the underlying error text for ErrIO.
	Message string

	// Detail carries optional context for ErrNonDecodable.
	Detail string
}

func (e Error) Error() string {
	switch e.Kind {
	case ErrUnexpectedSymbol:
		return fmt.Sprintf("%s: %q", e.Kind, e.Symbol)
	case ErrUnexpectedSymbolOrEof:
		if e.HasByte {
			return fmt.Sprintf("%s: %q", e.Kind, e.Byte)
		}
		return fmt.Sprintf("%s: eof", e.Kind)
	case ErrIO:
		return fmt.Sprintf("%s: %s", e.Kind, e.Message)
	case ErrNonDecodable:
		if e.Detail != "" {
			return fmt.Sprintf("%s: %s", e.Kind, e.Detail)
		}
		return e.Kind.String()
	default:
		return e.Kind.String()
	}
}
