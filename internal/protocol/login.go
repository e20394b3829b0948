package protocol

import (
	"io"

	"github.com/google/uuid"
)

// LoginStart begins the Login state. The username must be at most 16
// characters; the server does not verify the uuid in offline mode.
type LoginStart struct {
	Username string
	UUID     uuid.UUID
}

func (p *LoginStart) Size() int {
	return StringSize(p.Username) + 16
}

func (p *LoginStart) Encode(w io.Writer) error {
	if err := WriteString(w, p.Username); err != nil {
		return err
	}
	return WriteUUID(w, p.UUID)
}

// LoginAcknowledged confirms LoginSuccess and moves the connection to the
// Configuration state.
type LoginAcknowledged struct{}

func (p *LoginAcknowledged) Size() int                { return 0 }
func (p *LoginAcknowledged) Encode(w io.Writer) error { return nil }

type LoginSuccess struct {
	UUID       uuid.UUID
	Username   string
	Properties []PlayerProperty
}

type PlayerProperty struct {
	Name      string
	Value     string
	Signature *string
}

func ParseLoginSuccess(s *Stream) (*LoginSuccess, error) {
	id, err := ReadUUID(s)
	if err != nil {
		return nil, err
	}
	username, err := ReadString(s)
	if err != nil {
		return nil, err
	}
	properties, err := ReadPrefixedSlice(s, parsePlayerProperty)
	if err != nil {
		return nil, err
	}
	return &LoginSuccess{UUID: id, Username: username, Properties: properties}, nil
}

func parsePlayerProperty(s *Stream) (PlayerProperty, error) {
	name, err := ReadString(s)
	if err != nil {
		return PlayerProperty{}, err
	}
	value, err := ReadString(s)
	if err != nil {
		return PlayerProperty{}, err
	}
	signature, err := ReadOption(s, func(s *Stream) (string, error) { return ReadString(s) })
	if err != nil {
		return PlayerProperty{}, err
	}
	return PlayerProperty{Name: name, Value: value, Signature: signature}, nil
}

type SetCompression struct {
	Threshold int32
}

func ParseSetCompression(s *Stream) (*SetCompression, error) {
	threshold, err := ReadVarint(s)
	if err != nil {
		return nil, err
	}
	return &SetCompression{Threshold: threshold}, nil
}
