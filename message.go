package phorcys

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math"
)

// Message is an OSC message: an Address plus an ordered sequence of
// arguments. A Message owns its Address and Values and is immutable once
// built.
type Message struct {
	address   Address
	arguments []Value
}

// Address returns the message's address.
func (m Message) Address() Address { return m.address }

// Arguments returns the message's argument list.
func (m Message) Arguments() []Value { return m.arguments }

// Serialize encodes m as:
//
//	<address>\0<padding>,<types>\0<padding><payload>
//
// appending to buf. It returns ErrNonASCIICharacter or ErrBlobTooLarge if an
// argument's payload cannot be written, together with a nil slice.
func (m Message) Serialize(buf []byte) ([]byte, error) {
	buf = appendPaddedString(buf, m.address.String())

	tags := make([]byte, 0, len(m.arguments)+2)
	tags = append(tags, ',')
	for _, arg := range m.arguments {
		arg.PushTypeTag(&tags)
	}
	buf = appendPaddedString(buf, string(tags))

	for _, arg := range m.arguments {
		if err := arg.WritePayload(&buf); err != nil {
			return nil, err
		}
	}
	return buf, nil
}

// DeserializeMessage decodes a single OSC message from buf.
func DeserializeMessage(buf []byte) (Message, error) {
	if len(buf)%4 != 0 {
		return Message{}, ErrUnalignedData
	}

	address, rest, err := readAddressSection(buf)
	if err != nil {
		return Message{}, err
	}

	tagBytes, payload, err := readTypeTagSection(rest)
	if err != nil {
		return Message{}, err
	}

	arguments := make([]Value, 0, len(tagBytes))
	tagCursor := tagBytes
	payloadCursor := payload
	for len(tagCursor) > 0 {
		var v Value
		v, tagCursor, payloadCursor, err = decodeValue(tagCursor, payloadCursor)
		if err != nil {
			return Message{}, err
		}
		arguments = append(arguments, v)
	}

	return Message{address: address, arguments: arguments}, nil
}

// readAddressSection locates the address's NUL terminator, validates the
// address, and returns the remaining bytes starting at the next 4-aligned
// offset.
func readAddressSection(buf []byte) (Address, []byte, error) {
	nul := bytes.IndexByte(buf, 0)
	switch {
	case nul < 0:
		return Address{}, nil, ErrNotTerminated
	case nul == 0:
		return Address{}, nil, ErrInvalidAddress
	}
	address, err := NewAddress(string(buf[:nul]))
	if err != nil {
		return Address{}, nil, err
	}
	aligned := alignedLength(nul + 1)
	if aligned > len(buf) {
		return Address{}, nil, ErrNotEnoughData
	}
	return address, buf[aligned:], nil
}

// readTypeTagSection locates the type tag string's NUL terminator and
// validates it begins with ',' and is ASCII, returning the tag letters
// (without the leading comma) and the remaining payload bytes.
func readTypeTagSection(buf []byte) ([]byte, []byte, error) {
	nul := bytes.IndexByte(buf, 0)
	switch {
	case nul < 0:
		return nil, nil, ErrNotTerminated
	case nul == 0:
		return nil, nil, ErrInvalidTag
	}
	tag := buf[:nul]
	if tag[0] != ',' || !isASCII(string(tag)) {
		return nil, nil, ErrInvalidTag
	}
	aligned := alignedLength(nul + 1)
	if aligned > len(buf) {
		return nil, nil, ErrNotEnoughData
	}
	return tag[1:], buf[aligned:], nil
}

// decodeValue decodes one Value from the head of tagStream/payload,
// recursing for Array. It is the single exhaustive decoder the closed
// Value union is decoded through.
func decodeValue(tagStream, payload []byte) (Value, []byte, []byte, error) {
	if len(tagStream) == 0 {
		return Value{}, nil, nil, ErrIllegalStructure
	}

	switch tagStream[0] {
	case 'N':
		return NewNil(), tagStream[1:], payload, nil
	case 'I':
		return NewInfinitum(), tagStream[1:], payload, nil
	case 'T':
		return NewBoolean(true), tagStream[1:], payload, nil
	case 'F':
		return NewBoolean(false), tagStream[1:], payload, nil
	case 'c':
		b, rest, err := takeFixed(payload, 4)
		if err != nil {
			return Value{}, nil, nil, err
		}
		return NewCharacter(byte(binary.BigEndian.Uint32(b))), tagStream[1:], rest, nil
	case 'i':
		b, rest, err := takeFixed(payload, 4)
		if err != nil {
			return Value{}, nil, nil, err
		}
		return NewInt32(int32(binary.BigEndian.Uint32(b))), tagStream[1:], rest, nil
	case 'h':
		b, rest, err := takeFixed(payload, 8)
		if err != nil {
			return Value{}, nil, nil, err
		}
		return NewInt64(int64(binary.BigEndian.Uint64(b))), tagStream[1:], rest, nil
	case 'f':
		b, rest, err := takeFixed(payload, 4)
		if err != nil {
			return Value{}, nil, nil, err
		}
		return NewFloat32(math.Float32frombits(binary.BigEndian.Uint32(b))), tagStream[1:], rest, nil
	case 'd':
		b, rest, err := takeFixed(payload, 8)
		if err != nil {
			return Value{}, nil, nil, err
		}
		return NewFloat64(math.Float64frombits(binary.BigEndian.Uint64(b))), tagStream[1:], rest, nil
	case 'r':
		b, rest, err := takeFixed(payload, 4)
		if err != nil {
			return Value{}, nil, nil, err
		}
		return NewColor([4]byte(b)), tagStream[1:], rest, nil
	case 'm':
		b, rest, err := takeFixed(payload, 4)
		if err != nil {
			return Value{}, nil, nil, err
		}
		return NewMidiMessage([4]byte(b)), tagStream[1:], rest, nil
	case 't':
		b, rest, err := takeFixed(payload, 8)
		if err != nil {
			return Value{}, nil, nil, err
		}
		return NewTimeTag(TimeTag(binary.BigEndian.Uint64(b))), tagStream[1:], rest, nil
	case 's':
		s, rest, err := takePaddedString(payload)
		if err != nil {
			return Value{}, nil, nil, err
		}
		return NewString(s), tagStream[1:], rest, nil
	case 'S':
		s, rest, err := takePaddedString(payload)
		if err != nil {
			return Value{}, nil, nil, err
		}
		return NewAlternative(s), tagStream[1:], rest, nil
	case 'b':
		blob, rest, err := takeBlob(payload)
		if err != nil {
			return Value{}, nil, nil, err
		}
		return NewBlob(blob), tagStream[1:], rest, nil
	case '[':
		var children []Value
		innerTag := tagStream[1:]
		innerPayload := payload
		for {
			if len(innerTag) == 0 {
				return Value{}, nil, nil, ErrIllegalStructure
			}
			if innerTag[0] == ']' {
				return NewArray(children), innerTag[1:], innerPayload, nil
			}
			var child Value
			var err error
			child, innerTag, innerPayload, err = decodeValue(innerTag, innerPayload)
			if err != nil {
				return Value{}, nil, nil, err
			}
			children = append(children, child)
		}
	case ']':
		return Value{}, nil, nil, ErrIllegalStructure
	default:
		return Value{}, nil, nil, UnknownTypeError{Tag: tagStream[0]}
	}
}

func takeFixed(payload []byte, n int) ([]byte, []byte, error) {
	if len(payload) < n {
		return nil, nil, ErrNotEnoughData
	}
	return payload[:n], payload[n:], nil
}

func takePaddedString(payload []byte) (string, []byte, error) {
	nul := bytes.IndexByte(payload, 0)
	if nul < 0 {
		return "", nil, ErrNotTerminated
	}
	s := string(payload[:nul])
	aligned := alignedLength(nul + 1)
	if aligned > len(payload) {
		return "", nil, ErrNotEnoughData
	}
	return s, payload[aligned:], nil
}

func takeBlob(payload []byte) ([]byte, []byte, error) {
	lenBytes, rest, err := takeFixed(payload, 4)
	if err != nil {
		return nil, nil, err
	}
	length := int(int32(binary.BigEndian.Uint32(lenBytes)))
	if length < 0 {
		return nil, nil, ErrNotEnoughData
	}
	aligned := alignedLength(length)
	if len(rest) < aligned {
		return nil, nil, ErrNotEnoughData
	}
	return rest[:length], rest[aligned:], nil
}

// MessageBuilder constructs a Message. Intermediate mutable state is
// confined to the builder; calling Build consumes it and returns an
// immutable Message.
type MessageBuilder struct {
	address   Address
	arguments []Value
}

// NewMessageBuilder validates addr and returns a builder for it.
func NewMessageBuilder(addr string) (MessageBuilder, error) {
	a, err := NewAddress(addr)
	if err != nil {
		return MessageBuilder{}, err
	}
	return MessageBuilder{address: a}, nil
}

// PushArgument appends an argument and returns the builder for chaining.
func (b MessageBuilder) PushArgument(v Value) MessageBuilder {
	b.arguments = append(b.arguments, v)
	return b
}

// SetArguments replaces the builder's argument list wholesale.
func (b MessageBuilder) SetArguments(values []Value) MessageBuilder {
	b.arguments = append([]Value(nil), values...)
	return b
}

// Build consumes the builder and returns the immutable Message.
func (b MessageBuilder) Build() Message {
	return Message{address: b.address, arguments: b.arguments}
}

func (m Message) String() string {
	return fmt.Sprintf("Message{%s, %d args}", m.address.String(), len(m.arguments))
}

