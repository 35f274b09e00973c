package phorcys

// Packet is a whole OSC packet: exactly one of Message or Bundle. It is the
// type that crosses the wire boundary directly — a UDP datagram carries
// exactly one serialized Packet.
type Packet struct {
	Message *Message
	Bundle  *Bundle
}

// NewMessagePacket wraps m as a Packet.
func NewMessagePacket(m Message) Packet {
	return Packet{Message: &m}
}

// NewBundlePacket wraps b as a Packet.
func NewBundlePacket(b Bundle) Packet {
	return Packet{Bundle: &b}
}

// Serialize dispatches to the contained Message's or Bundle's Serialize.
func (p Packet) Serialize(buf []byte) ([]byte, error) {
	switch {
	case p.Message != nil:
		return p.Message.Serialize(buf)
	case p.Bundle != nil:
		return p.Bundle.Serialize(buf)
	default:
		return buf, nil
	}
}

// DeserializePacket decodes buf as a Message (leading '/') or a Bundle
// (leading '#'), dispatching on the first byte.
func DeserializePacket(buf []byte) (Packet, error) {
	return deserializePacketDepth(buf, 0)
}

func deserializePacketDepth(buf []byte, depth int) (Packet, error) {
	if len(buf) == 0 {
		return Packet{}, ErrNotEnoughData
	}
	switch buf[0] {
	case '/':
		m, err := DeserializeMessage(buf)
		if err != nil {
			return Packet{}, err
		}
		return NewMessagePacket(m), nil
	case '#':
		b, err := deserializeBundleDepth(buf, depth)
		if err != nil {
			return Packet{}, err
		}
		return NewBundlePacket(b), nil
	default:
		return Packet{}, ErrInvalidAddress
	}
}
