package phorcys

import "fmt"

// Sentinel errors returned by the codec. They form a closed set: every
// failure a Message, Bundle, or Packet decode can produce is one of these,
// or the typed UnknownTypeError below.
var (
	// ErrInvalidAddress is returned when an address is empty, missing its
	// leading '/', contains a non-ASCII byte, or contains a reserved
	// character or empty method part.
	ErrInvalidAddress = fmt.Errorf("phorcys: invalid address")

	// ErrUnalignedData is returned when a byte slice handed to a decoder
	// does not have a length that is a multiple of 4.
	ErrUnalignedData = fmt.Errorf("phorcys: data not 4-byte aligned")

	// ErrNotTerminated is returned when an expected NUL terminator for an
	// address, type tag string, or OSC string is missing.
	ErrNotTerminated = fmt.Errorf("phorcys: string not NUL-terminated")

	// ErrInvalidTag is returned when the type tag section is empty, is not
	// ASCII, or does not begin with ','.
	ErrInvalidTag = fmt.Errorf("phorcys: invalid type tag string")

	// ErrIllegalStructure is returned when the type tag stream is
	// malformed: an unmatched ']', a stray ']' with no opening '[', or the
	// tag stream ending mid-array.
	ErrIllegalStructure = fmt.Errorf("phorcys: illegal type tag structure")

	// ErrNotEnoughData is returned when a claimed-size payload (a fixed
	// width argument, a string, or a blob) exceeds the remaining bytes.
	ErrNotEnoughData = fmt.Errorf("phorcys: not enough data for claimed size")

	// ErrInvalidBundle is returned when a bundle's header is missing or
	// short, or when its nesting depth exceeds MaxBundleDepth.
	ErrInvalidBundle = fmt.Errorf("phorcys: invalid bundle")

	// ErrBlobTooLarge is returned on encode when a Blob's length would not
	// fit in a signed 32-bit length field.
	ErrBlobTooLarge = fmt.Errorf("phorcys: blob length overflows int32")

	// ErrNonASCIICharacter is returned on encode when a Character value is
	// outside the 7-bit ASCII range.
	ErrNonASCIICharacter = fmt.Errorf("phorcys: character value is not 7-bit ASCII")
)

// UnknownTypeError is returned when a type tag byte does not match any of
// the recognized OSC 1.0/1.1 type tags.
type UnknownTypeError struct {
	Tag byte
}

func (e UnknownTypeError) Error() string {
	return fmt.Sprintf("phorcys: unknown type tag %q", rune(e.Tag))
}
