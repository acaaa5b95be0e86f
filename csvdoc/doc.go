// Package csvdoc implements a streaming CSV codec over the sparse
// table model in package grid.
//
// The decoder is a character-level state machine with an explicit
// lookahead/pushback buffer, which lets it match multi-character row
// terminators speculatively and return over-read characters to the
// stream on a mismatch. Memory use is proportional to the largest
// single cell plus that small buffer, never to the input size. The
// encoder inverts every decoding decision exactly: same delimiter,
// same quote-doubling escape grammar, same newline translation.
//
// The codec is deliberately permissive: malformed escaping is never an
// error. An unterminated escaped region simply consumes the rest of
// the stream, and rows may have inconsistent field counts. I/O errors
// from the underlying stream are the only errors either direction can
// return.
package csvdoc
