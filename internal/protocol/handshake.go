package protocol

import "io"

const CurrentProtocolVersion = 772

// Handshake intents: which state the connection heads to next.
const (
	IntentStatus int32 = 1
	IntentLogin  int32 = 2
)

// Handshake opens every connection; it carries the protocol version and the
// intended next state.
type Handshake struct {
	ProtocolVersion int32
	ServerAddress   string
	ServerPort      uint16
	Intent          int32
}

func (p *Handshake) Size() int {
	return VarintSize(p.ProtocolVersion) + StringSize(p.ServerAddress) + 2 + VarintSize(p.Intent)
}

func (p *Handshake) Encode(w io.Writer) error {
	if err := WriteVarint(w, p.ProtocolVersion); err != nil {
		return err
	}
	if err := WriteString(w, p.ServerAddress); err != nil {
		return err
	}
	if err := WriteUnsignedShort(w, p.ServerPort); err != nil {
		return err
	}
	return WriteVarint(w, p.Intent)
}
