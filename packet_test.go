package phorcys

import (
	"errors"
	"testing"
)

func TestPacketRoundTripMessage(t *testing.T) {
	msg := buildSimpleMessage(t, "/packet/message")
	packet := NewMessagePacket(msg)

	encoded, err := packet.Serialize(nil)
	if err != nil {
		t.Fatalf("Serialize: unexpected error: %v", err)
	}
	decoded, err := DeserializePacket(encoded)
	if err != nil {
		t.Fatalf("DeserializePacket: unexpected error: %v", err)
	}
	if decoded.Message == nil {
		t.Fatal("decoded.Message is nil")
	}
	if decoded.Bundle != nil {
		t.Error("decoded.Bundle is non-nil for a message packet")
	}
	if decoded.Message.Address().String() != "/packet/message" {
		t.Errorf("Address() = %q, want %q", decoded.Message.Address().String(), "/packet/message")
	}
}

func TestPacketRoundTripBundle(t *testing.T) {
	bundle := NewBundleBuilder(TimeTagImmediately).
		PushElement(NewMessagePacket(buildSimpleMessage(t, "/packet/bundled"))).
		Build()
	packet := NewBundlePacket(bundle)

	encoded, err := packet.Serialize(nil)
	if err != nil {
		t.Fatalf("Serialize: unexpected error: %v", err)
	}
	decoded, err := DeserializePacket(encoded)
	if err != nil {
		t.Fatalf("DeserializePacket: unexpected error: %v", err)
	}
	if decoded.Bundle == nil {
		t.Fatal("decoded.Bundle is nil")
	}
	if decoded.Message != nil {
		t.Error("decoded.Message is non-nil for a bundle packet")
	}
}

func TestPacketSerializePropagatesMessageError(t *testing.T) {
	builder, err := NewMessageBuilder("/bad")
	if err != nil {
		t.Fatalf("NewMessageBuilder: unexpected error: %v", err)
	}
	msg := builder.PushArgument(NewCharacter(0x80)).Build()
	packet := NewMessagePacket(msg)

	if _, err := packet.Serialize(nil); !errors.Is(err, ErrNonASCIICharacter) {
		t.Errorf("Serialize: err = %v, want ErrNonASCIICharacter", err)
	}
}

func TestPacketDeserializeRejectsUnrecognizedLeadingByte(t *testing.T) {
	_, err := DeserializePacket([]byte("garbage\x00"))
	if !errors.Is(err, ErrInvalidAddress) {
		t.Errorf("DeserializePacket: err = %v, want ErrInvalidAddress", err)
	}
}

func TestPacketDeserializeRejectsEmpty(t *testing.T) {
	_, err := DeserializePacket(nil)
	if !errors.Is(err, ErrNotEnoughData) {
		t.Errorf("DeserializePacket: err = %v, want ErrNotEnoughData", err)
	}
}
