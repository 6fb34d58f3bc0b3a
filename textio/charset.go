// Package textio reads and writes whole text files for the batch
// operations: charset decoding with strict validation, and atomic rewrites.
package textio

import (
	"bytes"
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// DefaultCharset is the IANA name used when none is configured.
const DefaultCharset = "UTF-8"

// Charset converts file bytes to text and back. Files are always written in
// the charset they were read with.
type Charset struct {
	name string
	enc  encoding.Encoding // nil means strict UTF-8
}

// UTF8 is the strict UTF-8 charset: invalid byte sequences are a decode
// failure instead of being replaced with U+FFFD.
var UTF8 = &Charset{name: DefaultCharset}

// LookupCharset resolves an IANA charset name, see
// https://www.iana.org/assignments/character-sets/character-sets.xhtml.
func LookupCharset(name string) (*Charset, error) {
	if name == "" || strings.EqualFold(name, DefaultCharset) || strings.EqualFold(name, "utf8") {
		return UTF8, nil
	}
	enc, err := ianaindex.IANA.Encoding(name)
	if err != nil {
		return nil, fmt.Errorf("%v, see https://www.iana.org/assignments/character-sets/character-sets.xhtml", err)
	}
	if enc == nil {
		return nil, fmt.Errorf("unsupported encoding: %s", name)
	}
	if enc == unicode.UTF8 {
		return UTF8, nil
	}
	canonical, err := ianaindex.IANA.Name(enc)
	if err != nil {
		canonical = name
	}
	return &Charset{name: canonical, enc: enc}, nil
}

// Name returns the charset's IANA name.
func (c *Charset) Name() string {
	return c.name
}

// Decode converts raw file content to a string.
func (c *Charset) Decode(b []byte) (string, error) {
	if c.enc == nil {
		if _, _, err := transform.Bytes(encoding.UTF8Validator, b); err != nil {
			return "", err
		}
		return string(b), nil
	}
	out, err := c.enc.NewDecoder().Bytes(b)
	if err != nil {
		return "", err
	}
	// x/text decoders substitute U+FFFD for invalid input. A replacement
	// character is only genuine if it encodes back to the same bytes.
	if bytes.ContainsRune(out, utf8.RuneError) {
		if back, err := c.enc.NewEncoder().Bytes(out); err != nil || !bytes.Equal(back, b) {
			return "", fmt.Errorf("invalid %s byte sequence", c.name)
		}
	}
	return string(out), nil
}

// Encode converts text back to the charset's byte form.
func (c *Charset) Encode(s string) ([]byte, error) {
	if c.enc == nil {
		return []byte(s), nil
	}
	return c.enc.NewEncoder().Bytes([]byte(s))
}
