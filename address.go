package phorcys

import "strings"

// methodProhibitedChars lists the characters a method part may not contain.
// Slash is included because it is the part separator, not part content.
const methodProhibitedChars = " #*,/?[]{}"

// Address is a validated, immutable OSC address: a non-empty, 7-bit ASCII
// string beginning with '/', split by '/' into one or more non-empty method
// parts, none of which contain a reserved character. Once constructed, an
// Address is guaranteed to be a legal wire form; downstream code need not
// re-validate it.
type Address struct {
	raw string
}

// NewAddress validates s and wraps it into an Address.
func NewAddress(s string) (Address, error) {
	if !validAddressString(s) {
		return Address{}, ErrInvalidAddress
	}
	return Address{raw: s}, nil
}

func validAddressString(s string) bool {
	if s == "" || s[0] != '/' || !isASCII(s) {
		return false
	}
	for _, part := range strings.Split(s[1:], "/") {
		if !validMethodPart(part) {
			return false
		}
	}
	return true
}

func validMethodPart(part string) bool {
	return part != "" && strings.IndexAny(part, methodProhibitedChars) < 0
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] > 0x7f {
			return false
		}
	}
	return true
}

// AppendPart appends a single method part, prepending a separating '/'. The
// part must be non-empty, ASCII, and free of reserved characters; it must
// not itself contain '/'.
func (a *Address) AppendPart(part string) error {
	if !validMethodPart(part) || !isASCII(part) {
		return ErrInvalidAddress
	}
	a.raw = a.raw + "/" + part
	return nil
}

// String returns the address's wire-form string.
func (a Address) String() string {
	return a.raw
}

// AsString is an alias of String, for callers that prefer an explicit
// accessor name over the Stringer interface.
func (a Address) AsString() string {
	return a.raw
}

// IntoString consumes the address conceptually and returns its inner
// string; Address is a value type, so this is equivalent to String, kept
// for parity with the builder-consumption vocabulary used elsewhere in this
// package.
func (a Address) IntoString() string {
	return a.raw
}
