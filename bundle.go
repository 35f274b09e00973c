package phorcys

import (
	"bytes"
	"encoding/binary"
	"fmt"
)

// bundleHeader is the fixed 8-byte OSC-string "#bundle\0" that opens every
// bundle on the wire.
var bundleHeader = []byte("#bundle\x00")

// MaxBundleDepth bounds how many levels of nested bundles Deserialize will
// descend into before giving up with ErrInvalidBundle. It exists solely to
// keep a pathological or adversarial input from exhausting the stack;
// legitimate OSC traffic nests only a level or two deep.
const MaxBundleDepth = 32

// Bundle is a time-tagged, ordered sequence of Packets (themselves Messages
// or further Bundles). Bundles may nest to MaxBundleDepth.
type Bundle struct {
	timeTag  TimeTag
	elements []Packet
}

// TimeTag returns the bundle's time tag.
func (b Bundle) TimeTag() TimeTag { return b.timeTag }

// Elements returns the bundle's contained packets.
func (b Bundle) Elements() []Packet { return b.elements }

// Serialize encodes b as "#bundle\0" + time tag + (length-prefixed element)*,
// appending to buf. It returns an error, unwound from whichever element
// failed to encode, if any contained Message's payload is ill-formed (see
// Message.Serialize).
func (b Bundle) Serialize(buf []byte) ([]byte, error) {
	buf = append(buf, bundleHeader...)
	buf = binary.BigEndian.AppendUint64(buf, uint64(b.timeTag))
	for _, elem := range b.elements {
		lengthPos := len(buf)
		buf = binary.BigEndian.AppendUint32(buf, 0) // placeholder
		start := len(buf)
		var err error
		buf, err = elem.Serialize(buf)
		if err != nil {
			return nil, err
		}
		binary.BigEndian.PutUint32(buf[lengthPos:start], uint32(len(buf)-start))
	}
	return buf, nil
}

// DeserializeBundle decodes a single bundle from buf.
func DeserializeBundle(buf []byte) (Bundle, error) {
	return deserializeBundleDepth(buf, 0)
}

func deserializeBundleDepth(buf []byte, depth int) (Bundle, error) {
	if depth >= MaxBundleDepth {
		return Bundle{}, ErrInvalidBundle
	}
	if len(buf) < 16 || !bytes.Equal(buf[:8], bundleHeader) {
		return Bundle{}, ErrInvalidBundle
	}
	timeTag := TimeTag(binary.BigEndian.Uint64(buf[8:16]))

	var elements []Packet
	rest := buf[16:]
	for len(rest) > 0 {
		if len(rest) < 4 {
			return Bundle{}, ErrNotEnoughData
		}
		length := int(binary.BigEndian.Uint32(rest[:4]))
		rest = rest[4:]
		if length < 0 || len(rest) < length {
			return Bundle{}, ErrNotEnoughData
		}
		elem, err := deserializePacketDepth(rest[:length], depth+1)
		if err != nil {
			return Bundle{}, err
		}
		elements = append(elements, elem)
		rest = rest[length:]
	}

	return Bundle{timeTag: timeTag, elements: elements}, nil
}

func (b Bundle) String() string {
	return fmt.Sprintf("Bundle{%d, %d elements}", b.timeTag, len(b.elements))
}

// BundleBuilder constructs a Bundle. Calling Build consumes the builder.
type BundleBuilder struct {
	timeTag  TimeTag
	elements []Packet
}

// NewBundleBuilder returns a builder with the given time tag and no elements.
func NewBundleBuilder(t TimeTag) BundleBuilder {
	return BundleBuilder{timeTag: t}
}

// PushElement appends a packet and returns the builder for chaining.
func (b BundleBuilder) PushElement(p Packet) BundleBuilder {
	b.elements = append(b.elements, p)
	return b
}

// Build consumes the builder and returns the immutable Bundle.
func (b BundleBuilder) Build() Bundle {
	return Bundle{timeTag: b.timeTag, elements: b.elements}
}
