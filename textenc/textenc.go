// Package textenc handles the character-encoding boundary between
// byte streams and the text the CSV codec operates on.
//
// Encodings are selected by name ("utf-8", "latin-1", "windows-1251",
// and every other label the WHATWG index knows) and applied with
// golang.org/x/text transformers. Byte-order-mark sniffing is a
// caller-selectable flag on the read side: when enabled, a UTF-8 or
// UTF-16 BOM at the start of the stream overrides the named encoding.
package textenc

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// ErrUnknownEncoding is returned when an encoding name cannot be
// resolved.
var ErrUnknownEncoding = errors.New("unknown encoding")

// Resolve maps an encoding name to its encoding. The empty string,
// "utf-8" and "utf8" resolve to UTF-8; everything else is looked up in
// the WHATWG encoding index.
func Resolve(name string) (encoding.Encoding, error) {
	key := normalize(name)
	if isUTF8(key) {
		return unicode.UTF8, nil
	}
	enc, err := htmlindex.Get(key)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownEncoding, name)
	}
	return enc, nil
}

// NewReader wraps r so reads yield UTF-8 text decoded from the named
// encoding. With detectBOM set, a leading byte-order mark wins over
// the name. UTF-8 input without BOM detection is passed through
// untouched.
func NewReader(r io.Reader, name string, detectBOM bool) (io.Reader, error) {
	enc, err := Resolve(name)
	if err != nil {
		return nil, err
	}
	return wrapReader(r, enc, detectBOM), nil
}

func wrapReader(r io.Reader, enc encoding.Encoding, detectBOM bool) io.Reader {
	if enc == unicode.UTF8 && !detectBOM {
		return r
	}
	var t transform.Transformer = enc.NewDecoder()
	if detectBOM {
		t = unicode.BOMOverride(t)
	}
	return transform.NewReader(r, t)
}

// NewWriter wraps w so UTF-8 text written to it is emitted in the
// named encoding. Close flushes the transformer; it does not close the
// underlying writer.
func NewWriter(w io.Writer, name string) (io.WriteCloser, error) {
	enc, err := Resolve(name)
	if err != nil {
		return nil, err
	}
	return wrapWriter(w, enc), nil
}

func wrapWriter(w io.Writer, enc encoding.Encoding) io.WriteCloser {
	if enc == unicode.UTF8 {
		return nopCloser{w}
	}
	return transform.NewWriter(w, enc.NewEncoder())
}

type nopCloser struct {
	io.Writer
}

func (nopCloser) Close() error { return nil }

func normalize(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

func isUTF8(key string) bool {
	return key == "" || key == "utf-8" || key == "utf8"
}
