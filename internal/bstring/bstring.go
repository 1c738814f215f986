// Package bstring implements immutable, byte-wise string values.
//
// ByteString backs identifiers, string literals, and file paths
// throughout Osyris. Unlike a Go string, which is conventionally (but
// not actually) assumed to hold valid UTF-8, a ByteString makes no
// assumption about its contents: equality, hashing, and ordering are
// always byte-wise, and UTF-8 decoding is only ever attempted when
// rendering a ByteString for a human to read.
package bstring

import (
	"bytes"
	"os"
	"unicode/utf8"
)

// ByteString is an immutable, owned vector of bytes.
//
// The zero value is the empty string. Once constructed, a ByteString's
// contents never change; callers that need a derived string build a
// new ByteString rather than mutating one in place.
type ByteString struct {
	b []byte
}

// New wraps a byte slice as a ByteString. The slice is copied so later
// mutation of the caller's backing array cannot change the result.
func New(b []byte) ByteString {
	cp := make([]byte, len(b))
	copy(cp, b)
	return ByteString{b: cp}
}

// FromString wraps a Go string as a ByteString.
func FromString(s string) ByteString {
	return ByteString{b: []byte(s)}
}

// FromOSPath wraps a host path as a ByteString, preserving bytes that
// are not valid UTF-8 on platforms where that's possible.
func FromOSPath(p string) ByteString {
	return FromString(p)
}

// Bytes returns the underlying bytes. Callers must not modify the
// returned slice.
func (b ByteString) Bytes() []byte { return b.b }

// Len returns the number of bytes.
func (b ByteString) Len() int { return len(b.b) }

// Equal reports whether two ByteStrings hold identical bytes.
func (b ByteString) Equal(o ByteString) bool { return bytes.Equal(b.b, o.b) }

// Compare orders two ByteStrings byte-wise, as bytes.Compare does.
func (b ByteString) Compare(o ByteString) int { return bytes.Compare(b.b, o.b) }

// StartsWith reports whether b begins with the given bytes.
func (b ByteString) StartsWith(prefix []byte) bool { return bytes.HasPrefix(b.b, prefix) }

// String renders the ByteString for display. Valid UTF-8 is decoded
// as-is; otherwise the bytes are decoded lossily (invalid sequences
// become U+FFFD), matching the reference implementation's preference
// for UTF-8 with a lossy fallback.
func (b ByteString) String() string {
	if utf8.Valid(b.b) {
		return string(b.b)
	}
	return lossyUTF8(string(b.b))
}

// lossyUTF8 replaces invalid UTF-8 sequences with U+FFFD, one
// replacement character per invalid byte, mirroring the byte-for-byte
// behavior of Rust's String::from_utf8_lossy.
func lossyUTF8(s string) string {
	var out []byte
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		if r == utf8.RuneError && size == 1 {
			out = append(out, "�"...)
			i++
			continue
		}
		out = append(out, s[i:i+size]...)
		i += size
	}
	return string(out)
}

// ToPath converts the ByteString to a host filesystem path.
func (b ByteString) ToPath() string { return b.String() }

// Key returns a Go string holding exactly the same bytes, suitable as
// a map key. Unlike String, which decodes UTF-8 for display, Key never
// loses or substitutes bytes: Go strings (unlike this package's
// ByteString) are already arbitrary byte sequences, so the conversion
// is exact and hashable.
func (b ByteString) Key() string { return string(b.b) }

// IsEmpty reports whether the ByteString has zero length.
func (b ByteString) IsEmpty() bool { return len(b.b) == 0 }

// Concat returns the concatenation of the given ByteStrings.
func Concat(parts ...ByteString) ByteString {
	n := 0
	for _, p := range parts {
		n += len(p.b)
	}
	out := make([]byte, 0, n)
	for _, p := range parts {
		out = append(out, p.b...)
	}
	return ByteString{b: out}
}

// ReadFile reads a host file into a ByteString.
func ReadFile(path string) (ByteString, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return ByteString{}, err
	}
	return ByteString{b: data}, nil
}
