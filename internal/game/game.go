package game

import (
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/Staco78/MinecraftBot/internal/protocol"
)

// EntityID is the opaque numeric identifier the server assigns each entity.
type EntityID int32

// UnknownEntityError reports an operation referencing an entity id that was
// never spawned. It is part of the recoverable error taxonomy.
type UnknownEntityError struct {
	ID EntityID
}

func (e *UnknownEntityError) Error() string {
	return fmt.Sprintf("unknown entity %d", e.ID)
}

func (e *UnknownEntityError) Unwrap() error {
	return protocol.ErrDomain
}

// Player is the local player's identity plus its entity. Before the Play
// state's login packet arrives the entity is a placeholder without an id.
type Player struct {
	Name   string
	UUID   uuid.UUID
	Entity *Entity
}

// Game is the single shared root of world state. The reader goroutine and the
// ticker both mutate it; the outer RWMutex guards the structure, per-entity
// locks guard motion state (outer lock always first).
type Game struct {
	mu       sync.RWMutex
	player   Player
	entities map[EntityID]*Entity
	world    *World
}

func NewGame() *Game {
	return &Game{
		entities: make(map[EntityID]*Entity),
		world:    NewWorld(),
	}
}

func (g *Game) World() *World {
	return g.world
}

// SetPlayerIdentity records the identity confirmed by the login success
// packet and creates the placeholder player entity.
func (g *Game) SetPlayerIdentity(name string, id uuid.UUID) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.player.Name = name
	g.player.UUID = id
	g.player.Entity = &Entity{UUID: id}
}

func (g *Game) PlayerName() string {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.player.Name
}

func (g *Game) PlayerEntity() *Entity {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.player.Entity
}

// BindPlayerEntity registers the placeholder player entity under the id the
// Play-state login packet assigned it.
func (g *Game) BindPlayerEntity(id EntityID) *Entity {
	g.mu.Lock()
	defer g.mu.Unlock()
	e := g.player.Entity
	if e == nil {
		e = &Entity{UUID: g.player.UUID}
		g.player.Entity = e
	}
	e.ID = id
	g.addLocked(id, e)
	return e
}

// AddEntity inserts a spawned entity. Inserting an id twice is a programming
// error and panics.
func (g *Game) AddEntity(e *Entity) *Entity {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.addLocked(e.ID, e)
	return e
}

func (g *Game) addLocked(id EntityID, e *Entity) {
	if _, exists := g.entities[id]; exists {
		panic(fmt.Sprintf("game: entity %d already exists", id))
	}
	g.entities[id] = e
}

// Entity resolves an entity id, returning an UnknownEntityError when no such
// entity was spawned.
func (g *Game) Entity(id EntityID) (*Entity, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	e, ok := g.entities[id]
	if !ok {
		return nil, &UnknownEntityError{ID: id}
	}
	return e, nil
}

func (g *Game) EntityCount() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.entities)
}
