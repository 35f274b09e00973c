package phorcys

import (
	"encoding/binary"
	"math"
)

// TimeTag is an OSC time tag: an opaque 64-bit NTP-format timestamp. The
// codec does not interpret it beyond the special value 1, "immediately".
type TimeTag uint64

// TimeTagImmediately is the reserved TimeTag value meaning "dispatch this
// bundle immediately".
const TimeTagImmediately TimeTag = 1

// Kind discriminates the arm of a Value that is populated. It is a closed
// set matching the OSC 1.0/1.1 type tags one-for-one, except Boolean, which
// covers both 'T' and 'F' tags through a single payload field.
type Kind int

const (
	KindNil Kind = iota
	KindInfinitum
	KindBoolean
	KindCharacter
	KindInt32
	KindInt64
	KindFloat32
	KindFloat64
	KindColor
	KindMidiMessage
	KindTimeTag
	KindString
	KindAlternative
	KindBlob
	KindArray
)

// Value is an OSC argument: a closed tagged union over every OSC 1.0/1.1
// data type, including the recursive Array variant. Values are immutable
// once constructed.
type Value struct {
	kind Kind

	b    bool
	ch   byte
	i32  int32
	i64  int64
	f32  float32
	f64  float64
	quad [4]byte // Color or MidiMessage
	tt   TimeTag
	str  string   // String or Alternative
	blob []byte
	arr  []Value
}

// Kind reports which arm of the union is populated.
func (v Value) Kind() Kind { return v.kind }

// Constructors. Each returns a fully-formed, immutable Value.

func NewNil() Value       { return Value{kind: KindNil} }
func NewInfinitum() Value { return Value{kind: KindInfinitum} }
func NewBoolean(b bool) Value {
	return Value{kind: KindBoolean, b: b}
}

// NewCharacter wraps a 7-bit ASCII character. It does not validate; encode
// time is where ASCII range is enforced (see WritePayload), matching the
// spec's requirement that Character be rejected "on encode".
func NewCharacter(c byte) Value { return Value{kind: KindCharacter, ch: c} }
func NewInt32(i int32) Value    { return Value{kind: KindInt32, i32: i} }
func NewInt64(i int64) Value    { return Value{kind: KindInt64, i64: i} }
func NewFloat32(f float32) Value {
	return Value{kind: KindFloat32, f32: f}
}
func NewFloat64(f float64) Value {
	return Value{kind: KindFloat64, f64: f}
}
func NewColor(rgba [4]byte) Value {
	return Value{kind: KindColor, quad: rgba}
}
func NewMidiMessage(bytes4 [4]byte) Value {
	return Value{kind: KindMidiMessage, quad: bytes4}
}
func NewTimeTag(t TimeTag) Value {
	return Value{kind: KindTimeTag, tt: t}
}
func NewString(s string) Value {
	return Value{kind: KindString, str: s}
}
func NewAlternative(s string) Value {
	return Value{kind: KindAlternative, str: s}
}
func NewBlob(b []byte) Value {
	cp := make([]byte, len(b))
	copy(cp, b)
	return Value{kind: KindBlob, blob: cp}
}
func NewArray(values []Value) Value {
	cp := make([]Value, len(values))
	copy(cp, values)
	return Value{kind: KindArray, arr: cp}
}

// Accessors. Each reports whether the Value is of the matching Kind.

func (v Value) Boolean() (bool, bool)    { return v.b, v.kind == KindBoolean }
func (v Value) Character() (byte, bool)  { return v.ch, v.kind == KindCharacter }
func (v Value) Int32() (int32, bool)     { return v.i32, v.kind == KindInt32 }
func (v Value) Int64() (int64, bool)     { return v.i64, v.kind == KindInt64 }
func (v Value) Float32() (float32, bool) { return v.f32, v.kind == KindFloat32 }
func (v Value) Float64() (float64, bool) { return v.f64, v.kind == KindFloat64 }
func (v Value) Color() ([4]byte, bool)   { return v.quad, v.kind == KindColor }
func (v Value) MidiMessage() ([4]byte, bool) {
	return v.quad, v.kind == KindMidiMessage
}
func (v Value) TimeTagValue() (TimeTag, bool)  { return v.tt, v.kind == KindTimeTag }
func (v Value) StringValue() (string, bool)    { return v.str, v.kind == KindString }
func (v Value) Alternative() (string, bool)    { return v.str, v.kind == KindAlternative }
func (v Value) Blob() ([]byte, bool)           { return v.blob, v.kind == KindBlob }
func (v Value) Array() ([]Value, bool)         { return v.arr, v.kind == KindArray }

// PushTypeTag appends this value's type tag letter(s) to tagString. For
// Array, it appends '[', recurses over the children, then appends ']'.
func (v Value) PushTypeTag(tagString *[]byte) {
	switch v.kind {
	case KindNil:
		*tagString = append(*tagString, 'N')
	case KindInfinitum:
		*tagString = append(*tagString, 'I')
	case KindBoolean:
		if v.b {
			*tagString = append(*tagString, 'T')
		} else {
			*tagString = append(*tagString, 'F')
		}
	case KindCharacter:
		*tagString = append(*tagString, 'c')
	case KindInt32:
		*tagString = append(*tagString, 'i')
	case KindInt64:
		*tagString = append(*tagString, 'h')
	case KindFloat32:
		*tagString = append(*tagString, 'f')
	case KindFloat64:
		*tagString = append(*tagString, 'd')
	case KindColor:
		*tagString = append(*tagString, 'r')
	case KindMidiMessage:
		*tagString = append(*tagString, 'm')
	case KindTimeTag:
		*tagString = append(*tagString, 't')
	case KindString:
		*tagString = append(*tagString, 's')
	case KindAlternative:
		*tagString = append(*tagString, 'S')
	case KindBlob:
		*tagString = append(*tagString, 'b')
	case KindArray:
		*tagString = append(*tagString, '[')
		for _, child := range v.arr {
			child.PushTypeTag(tagString)
		}
		*tagString = append(*tagString, ']')
	}
}

// WritePayload writes this value's big-endian binary payload to buf,
// padding strings and blobs to a 4-byte boundary. Tag-only variants (Nil,
// Infinitum, Boolean, and the Array brackets) write nothing.
func (v Value) WritePayload(buf *[]byte) error {
	switch v.kind {
	case KindNil, KindInfinitum, KindBoolean:
		// No payload bytes.
	case KindCharacter:
		if v.ch > 0x7f {
			return ErrNonASCIICharacter
		}
		*buf = binary.BigEndian.AppendUint32(*buf, uint32(v.ch))
	case KindInt32:
		*buf = binary.BigEndian.AppendUint32(*buf, uint32(v.i32))
	case KindInt64:
		*buf = binary.BigEndian.AppendUint64(*buf, uint64(v.i64))
	case KindFloat32:
		*buf = binary.BigEndian.AppendUint32(*buf, math.Float32bits(v.f32))
	case KindFloat64:
		*buf = binary.BigEndian.AppendUint64(*buf, math.Float64bits(v.f64))
	case KindColor, KindMidiMessage:
		*buf = append(*buf, v.quad[:]...)
	case KindTimeTag:
		*buf = binary.BigEndian.AppendUint64(*buf, uint64(v.tt))
	case KindString, KindAlternative:
		*buf = appendPaddedString(*buf, v.str)
	case KindBlob:
		if len(v.blob) >= 1<<31 {
			return ErrBlobTooLarge
		}
		*buf = binary.BigEndian.AppendUint32(*buf, uint32(int32(len(v.blob))))
		*buf = append(*buf, v.blob...)
		*buf = padTo4(*buf)
	case KindArray:
		for _, child := range v.arr {
			if err := child.WritePayload(buf); err != nil {
				return err
			}
		}
	}
	return nil
}
