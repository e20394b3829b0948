package protocol

import "io"

// StatusRequest asks for the server list JSON.
type StatusRequest struct{}

func (p *StatusRequest) Size() int                { return 0 }
func (p *StatusRequest) Encode(w io.Writer) error { return nil }

type StatusResponse struct {
	Response string
}

func ParseStatusResponse(s *Stream) (*StatusResponse, error) {
	response, err := ReadString(s)
	if err != nil {
		return nil, err
	}
	return &StatusResponse{Response: response}, nil
}

// Ping doubles as the pong reply; the server echoes the timestamp unchanged.
type Ping struct {
	Timestamp int64
}

func (p *Ping) Size() int { return 8 }

func (p *Ping) Encode(w io.Writer) error {
	return WriteInt64(w, p.Timestamp)
}

func ParsePing(s *Stream) (*Ping, error) {
	ts, err := ReadInt64(s)
	if err != nil {
		return nil, err
	}
	return &Ping{Timestamp: ts}, nil
}
