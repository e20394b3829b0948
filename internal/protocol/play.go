package protocol

import (
	"io"

	"github.com/google/uuid"
)

// Angle is a rotation packed into one byte, 1/256th of a full turn.
type Angle byte

func (a Angle) Degrees() float32 {
	return float32(a) * (360.0 / 256.0)
}

func ReadAngle(r io.Reader) (Angle, error) {
	b, err := ReadByte(r)
	return Angle(b), err
}

// PlayLogin is the server's Play-state login packet (not to be confused with
// the Login connection state).
type PlayLogin struct {
	EntityID            int32
	IsHardcore          bool
	DimensionNames      []string
	MaxPlayers          int32
	ViewDistance        int32
	SimulationDistance  int32
	ReducedDebugInfo    bool
	EnableRespawnScreen bool
	LimitedCrafting     bool
	DimensionType       int32
	DimensionName       string
	HashedSeed          int64
	GameMode            byte
	PreviousGameMode    int8
	IsDebug             bool
	IsFlat              bool
	DeathLocation       *DeathLocation
	PortalCooldown      int32
	SeaLevel            int32
	EnforceSecureChat   bool
}

type DeathLocation struct {
	DimensionName string
	Location      int64 // packed block position
}

func ParsePlayLogin(s *Stream) (*PlayLogin, error) {
	p := &PlayLogin{}
	var err error
	if p.EntityID, err = ReadInt32(s); err != nil {
		return nil, err
	}
	if p.IsHardcore, err = ReadBool(s); err != nil {
		return nil, err
	}
	if p.DimensionNames, err = ReadPrefixedSlice(s, func(s *Stream) (string, error) { return ReadString(s) }); err != nil {
		return nil, err
	}
	if p.MaxPlayers, err = ReadVarint(s); err != nil {
		return nil, err
	}
	if p.ViewDistance, err = ReadVarint(s); err != nil {
		return nil, err
	}
	if p.SimulationDistance, err = ReadVarint(s); err != nil {
		return nil, err
	}
	if p.ReducedDebugInfo, err = ReadBool(s); err != nil {
		return nil, err
	}
	if p.EnableRespawnScreen, err = ReadBool(s); err != nil {
		return nil, err
	}
	if p.LimitedCrafting, err = ReadBool(s); err != nil {
		return nil, err
	}
	if p.DimensionType, err = ReadVarint(s); err != nil {
		return nil, err
	}
	if p.DimensionName, err = ReadString(s); err != nil {
		return nil, err
	}
	if p.HashedSeed, err = ReadInt64(s); err != nil {
		return nil, err
	}
	if p.GameMode, err = ReadByte(s); err != nil {
		return nil, err
	}
	prev, err := ReadByte(s)
	if err != nil {
		return nil, err
	}
	p.PreviousGameMode = int8(prev)
	if p.IsDebug, err = ReadBool(s); err != nil {
		return nil, err
	}
	if p.IsFlat, err = ReadBool(s); err != nil {
		return nil, err
	}
	death, err := ReadOption(s, func(s *Stream) (DeathLocation, error) {
		name, err := ReadString(s)
		if err != nil {
			return DeathLocation{}, err
		}
		loc, err := ReadInt64(s)
		if err != nil {
			return DeathLocation{}, err
		}
		return DeathLocation{DimensionName: name, Location: loc}, nil
	})
	if err != nil {
		return nil, err
	}
	p.DeathLocation = death
	if p.PortalCooldown, err = ReadVarint(s); err != nil {
		return nil, err
	}
	if p.SeaLevel, err = ReadVarint(s); err != nil {
		return nil, err
	}
	if p.EnforceSecureChat, err = ReadBool(s); err != nil {
		return nil, err
	}
	return p, nil
}

type ChangeDifficulty struct {
	Difficulty byte
	IsLocked   bool
}

func ParseChangeDifficulty(s *Stream) (*ChangeDifficulty, error) {
	difficulty, err := ReadByte(s)
	if err != nil {
		return nil, err
	}
	locked, err := ReadBool(s)
	if err != nil {
		return nil, err
	}
	return &ChangeDifficulty{Difficulty: difficulty, IsLocked: locked}, nil
}

type PlayerAbilities struct {
	Flags       byte
	FlyingSpeed float32
	FOVModifier float32
}

func ParsePlayerAbilities(s *Stream) (*PlayerAbilities, error) {
	flags, err := ReadByte(s)
	if err != nil {
		return nil, err
	}
	speed, err := ReadFloat(s)
	if err != nil {
		return nil, err
	}
	fov, err := ReadFloat(s)
	if err != nil {
		return nil, err
	}
	return &PlayerAbilities{Flags: flags, FlyingSpeed: speed, FOVModifier: fov}, nil
}

type SetHeldItem struct {
	Slot int32
}

func ParseSetHeldItem(s *Stream) (*SetHeldItem, error) {
	slot, err := ReadVarint(s)
	if err != nil {
		return nil, err
	}
	return &SetHeldItem{Slot: slot}, nil
}

type EntityEvent struct {
	EntityID int32
	Status   int8
}

func ParseEntityEvent(s *Stream) (*EntityEvent, error) {
	id, err := ReadInt32(s)
	if err != nil {
		return nil, err
	}
	status, err := ReadByte(s)
	if err != nil {
		return nil, err
	}
	return &EntityEvent{EntityID: id, Status: int8(status)}, nil
}

// Teleport flags: a set bit makes the matching field a delta relative to the
// player's current value instead of an absolute.
const (
	TeleportRelX int32 = 1 << iota
	TeleportRelY
	TeleportRelZ
	TeleportRelYaw
	TeleportRelPitch
	TeleportRelVX
	TeleportRelVY
	TeleportRelVZ
	TeleportRotateBefore
)

type SynchronizePlayerPosition struct {
	TeleportID int32
	X, Y, Z    float64
	VX, VY, VZ float64
	Yaw, Pitch float32
	Flags      int32
}

func ParseSynchronizePlayerPosition(s *Stream) (*SynchronizePlayerPosition, error) {
	p := &SynchronizePlayerPosition{}
	var err error
	if p.TeleportID, err = ReadVarint(s); err != nil {
		return nil, err
	}
	if p.X, err = ReadDouble(s); err != nil {
		return nil, err
	}
	if p.Y, err = ReadDouble(s); err != nil {
		return nil, err
	}
	if p.Z, err = ReadDouble(s); err != nil {
		return nil, err
	}
	if p.VX, err = ReadDouble(s); err != nil {
		return nil, err
	}
	if p.VY, err = ReadDouble(s); err != nil {
		return nil, err
	}
	if p.VZ, err = ReadDouble(s); err != nil {
		return nil, err
	}
	if p.Yaw, err = ReadFloat(s); err != nil {
		return nil, err
	}
	if p.Pitch, err = ReadFloat(s); err != nil {
		return nil, err
	}
	if p.Flags, err = ReadInt32(s); err != nil {
		return nil, err
	}
	return p, nil
}

type ConfirmTeleportation struct {
	TeleportID int32
}

func (p *ConfirmTeleportation) Size() int {
	return VarintSize(p.TeleportID)
}

func (p *ConfirmTeleportation) Encode(w io.Writer) error {
	return WriteVarint(w, p.TeleportID)
}

// KeepAlive must be echoed back with the same id within 15 seconds.
type KeepAlive struct {
	ID int64
}

func (p *KeepAlive) Size() int { return 8 }

func (p *KeepAlive) Encode(w io.Writer) error {
	return WriteInt64(w, p.ID)
}

func ParseKeepAlive(s *Stream) (*KeepAlive, error) {
	id, err := ReadInt64(s)
	if err != nil {
		return nil, err
	}
	return &KeepAlive{ID: id}, nil
}

type AddEntity struct {
	EntityID   int32
	UUID       uuid.UUID
	Type       int32
	X, Y, Z    float64
	Pitch      Angle
	Yaw        Angle
	HeadYaw    Angle
	Data       int32
	VX, VY, VZ int16
}

func ParseAddEntity(s *Stream) (*AddEntity, error) {
	p := &AddEntity{}
	var err error
	if p.EntityID, err = ReadVarint(s); err != nil {
		return nil, err
	}
	if p.UUID, err = ReadUUID(s); err != nil {
		return nil, err
	}
	if p.Type, err = ReadVarint(s); err != nil {
		return nil, err
	}
	if p.X, err = ReadDouble(s); err != nil {
		return nil, err
	}
	if p.Y, err = ReadDouble(s); err != nil {
		return nil, err
	}
	if p.Z, err = ReadDouble(s); err != nil {
		return nil, err
	}
	if p.Pitch, err = ReadAngle(s); err != nil {
		return nil, err
	}
	if p.Yaw, err = ReadAngle(s); err != nil {
		return nil, err
	}
	if p.HeadYaw, err = ReadAngle(s); err != nil {
		return nil, err
	}
	if p.Data, err = ReadVarint(s); err != nil {
		return nil, err
	}
	if p.VX, err = ReadInt16(s); err != nil {
		return nil, err
	}
	if p.VY, err = ReadInt16(s); err != nil {
		return nil, err
	}
	if p.VZ, err = ReadInt16(s); err != nil {
		return nil, err
	}
	return p, nil
}

// UpdateEntityPosition moves an entity by a fixed-point delta of 1/4096 block
// per unit.
type UpdateEntityPosition struct {
	EntityID   int32
	DX, DY, DZ int16
	OnGround   bool
}

func ParseUpdateEntityPosition(s *Stream) (*UpdateEntityPosition, error) {
	p := &UpdateEntityPosition{}
	var err error
	if p.EntityID, err = ReadVarint(s); err != nil {
		return nil, err
	}
	if p.DX, err = ReadInt16(s); err != nil {
		return nil, err
	}
	if p.DY, err = ReadInt16(s); err != nil {
		return nil, err
	}
	if p.DZ, err = ReadInt16(s); err != nil {
		return nil, err
	}
	if p.OnGround, err = ReadBool(s); err != nil {
		return nil, err
	}
	return p, nil
}

type UpdateEntityPositionRotation struct {
	EntityID   int32
	DX, DY, DZ int16
	Yaw        Angle
	Pitch      Angle
	OnGround   bool
}

func ParseUpdateEntityPositionRotation(s *Stream) (*UpdateEntityPositionRotation, error) {
	p := &UpdateEntityPositionRotation{}
	var err error
	if p.EntityID, err = ReadVarint(s); err != nil {
		return nil, err
	}
	if p.DX, err = ReadInt16(s); err != nil {
		return nil, err
	}
	if p.DY, err = ReadInt16(s); err != nil {
		return nil, err
	}
	if p.DZ, err = ReadInt16(s); err != nil {
		return nil, err
	}
	if p.Yaw, err = ReadAngle(s); err != nil {
		return nil, err
	}
	if p.Pitch, err = ReadAngle(s); err != nil {
		return nil, err
	}
	if p.OnGround, err = ReadBool(s); err != nil {
		return nil, err
	}
	return p, nil
}

type TeleportEntity struct {
	EntityID   int32
	X, Y, Z    float64
	VX, VY, VZ float64
	Yaw, Pitch float32
	OnGround   bool
}

func ParseTeleportEntity(s *Stream) (*TeleportEntity, error) {
	p := &TeleportEntity{}
	var err error
	if p.EntityID, err = ReadVarint(s); err != nil {
		return nil, err
	}
	if p.X, err = ReadDouble(s); err != nil {
		return nil, err
	}
	if p.Y, err = ReadDouble(s); err != nil {
		return nil, err
	}
	if p.Z, err = ReadDouble(s); err != nil {
		return nil, err
	}
	if p.VX, err = ReadDouble(s); err != nil {
		return nil, err
	}
	if p.VY, err = ReadDouble(s); err != nil {
		return nil, err
	}
	if p.VZ, err = ReadDouble(s); err != nil {
		return nil, err
	}
	if p.Yaw, err = ReadFloat(s); err != nil {
		return nil, err
	}
	if p.Pitch, err = ReadFloat(s); err != nil {
		return nil, err
	}
	if p.OnGround, err = ReadBool(s); err != nil {
		return nil, err
	}
	return p, nil
}

type SetEntityVelocity struct {
	EntityID   int32
	VX, VY, VZ int16
}

func ParseSetEntityVelocity(s *Stream) (*SetEntityVelocity, error) {
	p := &SetEntityVelocity{}
	var err error
	if p.EntityID, err = ReadVarint(s); err != nil {
		return nil, err
	}
	if p.VX, err = ReadInt16(s); err != nil {
		return nil, err
	}
	if p.VY, err = ReadInt16(s); err != nil {
		return nil, err
	}
	if p.VZ, err = ReadInt16(s); err != nil {
		return nil, err
	}
	return p, nil
}

// Player position flags.
const (
	PlayerOnGround    byte = 1
	PlayerPushingWall byte = 2
)

type SetPlayerPosition struct {
	X, Y, Z float64
	Flags   byte
}

func (p *SetPlayerPosition) Size() int { return 8 + 8 + 8 + 1 }

func (p *SetPlayerPosition) Encode(w io.Writer) error {
	if err := WriteDouble(w, p.X); err != nil {
		return err
	}
	if err := WriteDouble(w, p.Y); err != nil {
		return err
	}
	if err := WriteDouble(w, p.Z); err != nil {
		return err
	}
	return WriteByte(w, p.Flags)
}

type SetPlayerRotation struct {
	Yaw, Pitch float32
	Flags      byte
}

func (p *SetPlayerRotation) Size() int { return 4 + 4 + 1 }

func (p *SetPlayerRotation) Encode(w io.Writer) error {
	if err := WriteFloat(w, p.Yaw); err != nil {
		return err
	}
	if err := WriteFloat(w, p.Pitch); err != nil {
		return err
	}
	return WriteByte(w, p.Flags)
}
