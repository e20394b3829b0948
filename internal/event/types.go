package event

import "github.com/google/uuid"

const (
	EventWorldJoined  = "world.joined"
	EventEntityAppear = "entity.appear"
	EventChunkLoaded  = "chunk.loaded"
	EventTeleported   = "player.teleported"
)

type WorldJoinedEvent struct {
	EntityID  int32
	Dimension string
	GameMode  byte
}

type EntityAppearEvent struct {
	EntityID int32
	UUID     uuid.UUID
	Type     int32
	X, Y, Z  float64
}

type ChunkLoadedEvent struct {
	X, Z int32
}

type TeleportedEvent struct {
	TeleportID int32
	X, Y, Z    float64
}
