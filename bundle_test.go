package phorcys

import (
	"bytes"
	"errors"
	"testing"
)

func buildSimpleMessage(t *testing.T, addr string) Message {
	t.Helper()
	b, err := NewMessageBuilder(addr)
	if err != nil {
		t.Fatalf("NewMessageBuilder(%q): unexpected error: %v", addr, err)
	}
	return b.PushArgument(NewInt32(7)).Build()
}

func TestBundleRoundTrip(t *testing.T) {
	inner := buildSimpleMessage(t, "/a")
	bundle := NewBundleBuilder(TimeTagImmediately).
		PushElement(NewMessagePacket(inner)).
		PushElement(NewMessagePacket(buildSimpleMessage(t, "/b"))).
		Build()

	encoded, err := bundle.Serialize(nil)
	if err != nil {
		t.Fatalf("Serialize: unexpected error: %v", err)
	}
	if !bytes.Equal(encoded[:8], bundleHeader) {
		t.Fatalf("Serialize() header = % x, want #bundle\\0", encoded[:8])
	}

	decoded, err := DeserializeBundle(encoded)
	if err != nil {
		t.Fatalf("DeserializeBundle: unexpected error: %v", err)
	}
	if decoded.TimeTag() != TimeTagImmediately {
		t.Errorf("TimeTag() = %d, want %d", decoded.TimeTag(), TimeTagImmediately)
	}
	if len(decoded.Elements()) != 2 {
		t.Fatalf("Elements() len = %d, want 2", len(decoded.Elements()))
	}
	if decoded.Elements()[0].Message == nil || decoded.Elements()[0].Message.Address().String() != "/a" {
		t.Errorf("Elements()[0] address mismatch")
	}
	if decoded.Elements()[1].Message == nil || decoded.Elements()[1].Message.Address().String() != "/b" {
		t.Errorf("Elements()[1] address mismatch")
	}
}

func TestBundleNested(t *testing.T) {
	innerBundle := NewBundleBuilder(TimeTag(2)).
		PushElement(NewMessagePacket(buildSimpleMessage(t, "/deep"))).
		Build()
	outer := NewBundleBuilder(TimeTag(1)).
		PushElement(NewBundlePacket(innerBundle)).
		Build()

	encoded, err := outer.Serialize(nil)
	if err != nil {
		t.Fatalf("Serialize: unexpected error: %v", err)
	}
	decoded, err := DeserializeBundle(encoded)
	if err != nil {
		t.Fatalf("DeserializeBundle: unexpected error: %v", err)
	}
	if len(decoded.Elements()) != 1 || decoded.Elements()[0].Bundle == nil {
		t.Fatalf("expected one nested bundle element")
	}
	nested := decoded.Elements()[0].Bundle
	if nested.TimeTag() != TimeTag(2) {
		t.Errorf("nested TimeTag() = %d, want 2", nested.TimeTag())
	}
	if len(nested.Elements()) != 1 || nested.Elements()[0].Message.Address().String() != "/deep" {
		t.Errorf("nested element mismatch")
	}
}

func TestBundleSerializePropagatesElementError(t *testing.T) {
	builder, err := NewMessageBuilder("/bad")
	if err != nil {
		t.Fatalf("NewMessageBuilder: unexpected error: %v", err)
	}
	badMsg := builder.PushArgument(NewCharacter(0x80)).Build()
	bundle := NewBundleBuilder(TimeTagImmediately).
		PushElement(NewMessagePacket(badMsg)).
		Build()

	if _, err := bundle.Serialize(nil); !errors.Is(err, ErrNonASCIICharacter) {
		t.Errorf("Serialize: err = %v, want ErrNonASCIICharacter", err)
	}
}

func TestBundleRejectsBadHeader(t *testing.T) {
	buf := make([]byte, 16)
	copy(buf, []byte("notabundle\x00\x00\x00\x00\x00\x00"))
	_, err := DeserializeBundle(buf)
	if !errors.Is(err, ErrInvalidBundle) {
		t.Errorf("DeserializeBundle: err = %v, want ErrInvalidBundle", err)
	}
}

func TestBundleRejectsExcessiveNestingDepth(t *testing.T) {
	inner := NewBundleBuilder(TimeTagImmediately).
		PushElement(NewMessagePacket(buildSimpleMessage(t, "/x"))).
		Build()
	for i := 0; i < MaxBundleDepth; i++ {
		inner = NewBundleBuilder(TimeTagImmediately).
			PushElement(NewBundlePacket(inner)).
			Build()
	}

	encoded, err := inner.Serialize(nil)
	if err != nil {
		t.Fatalf("Serialize: unexpected error: %v", err)
	}
	_, err = DeserializeBundle(encoded)
	if !errors.Is(err, ErrInvalidBundle) {
		t.Errorf("DeserializeBundle: err = %v, want ErrInvalidBundle (depth exceeded)", err)
	}
}
