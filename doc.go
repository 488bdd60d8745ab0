// Package xml5 implements a pull-based, streaming XML5 tokenizer: a finite
// state machine that turns a byte stream of XML-ish markup into a sequence
// of typed syntactic tokens (start tag, end tag, text, comment, CDATA,
// processing instruction, XML declaration, doctype, error, end-of-file).
//
// It follows the permissive XML5 lexical discipline: malformed input yields
// recoverable error tokens interleaved with best-effort tokens, the stream
// is never aborted. DOM construction, namespace resolution, full entity
// expansion and encoding transcoding beyond BOM sniffing are all left to
// external collaborators; this package is the tokenizer core only.
package xml5
