package game

import (
	"sync"

	"github.com/google/uuid"

	"github.com/Staco78/MinecraftBot/internal/protocol"
)

// Entity is one live entity. Identity fields are fixed at spawn; the motion
// state is guarded by the entity's own lock, which is always taken after the
// Game lock, never before.
type Entity struct {
	ID   EntityID
	UUID uuid.UUID
	Type int32

	mu       sync.Mutex
	position Vec3
	rotation Rotation
	velocity Vec3
}

// EntitySnapshot is a consistent copy of an entity's motion state.
type EntitySnapshot struct {
	Position Vec3
	Rotation Rotation
	Velocity Vec3
}

func (e *Entity) Snapshot() EntitySnapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	return EntitySnapshot{Position: e.position, Rotation: e.rotation, Velocity: e.velocity}
}

func (e *Entity) Position() Vec3 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.position
}

func (e *Entity) MoveTo(pos Vec3) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.position = pos
}

func (e *Entity) MoveBy(delta Vec3) Vec3 {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.position = e.position.Add(delta)
	return e.position
}

func (e *Entity) Rotation() Rotation {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.rotation
}

func (e *Entity) SetRotation(r Rotation) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.rotation = r
}

func (e *Entity) SetVelocity(v Vec3) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.velocity = v
}

// Synchronize applies an absolute state update where teleport-flagged
// components are deltas relative to the current value instead.
func (e *Entity) Synchronize(pos, vel Vec3, rot Rotation, flags int32) {
	e.mu.Lock()
	defer e.mu.Unlock()
	apply := func(cur, val float64, flag int32) float64 {
		if flags&flag != 0 {
			return cur + val
		}
		return val
	}
	applyf := func(cur, val float32, flag int32) float32 {
		if flags&flag != 0 {
			return cur + val
		}
		return val
	}
	e.position.X = apply(e.position.X, pos.X, protocol.TeleportRelX)
	e.position.Y = apply(e.position.Y, pos.Y, protocol.TeleportRelY)
	e.position.Z = apply(e.position.Z, pos.Z, protocol.TeleportRelZ)
	e.rotation.Yaw = applyf(e.rotation.Yaw, rot.Yaw, protocol.TeleportRelYaw)
	e.rotation.Pitch = applyf(e.rotation.Pitch, rot.Pitch, protocol.TeleportRelPitch)
	e.velocity.X = apply(e.velocity.X, vel.X, protocol.TeleportRelVX)
	e.velocity.Y = apply(e.velocity.Y, vel.Y, protocol.TeleportRelVY)
	e.velocity.Z = apply(e.velocity.Z, vel.Z, protocol.TeleportRelVZ)
}
