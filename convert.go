package phorcys

import "golang.org/x/exp/constraints"

// Int32From converts any Go integer type into an Int32 Value, narrowing as
// OSC's wire format requires. Convenience wrapper around NewInt32 for
// callers threading through generic numeric types (e.g. a MIDI byte or a
// parsed config integer) without an explicit int32 conversion at each call
// site.
func Int32From[T constraints.Integer](i T) Value {
	return NewInt32(int32(i))
}

// Int64From converts any Go integer type into an Int64 Value.
func Int64From[T constraints.Integer](i T) Value {
	return NewInt64(int64(i))
}

// Float32From converts any Go float type into a Float32 Value.
func Float32From[T constraints.Float](f T) Value {
	return NewFloat32(float32(f))
}
