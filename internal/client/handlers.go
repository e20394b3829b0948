package client

import (
	"fmt"
	"log/slog"

	"github.com/Staco78/MinecraftBot/internal/event"
	"github.com/Staco78/MinecraftBot/internal/game"
	"github.com/Staco78/MinecraftBot/internal/metrics"
	"github.com/Staco78/MinecraftBot/internal/protocol"
)

// handlerTables builds the per-state dispatch tables. Handlers run on the
// reader goroutine, so they may write to the socket directly through send.
func (c *Client) handlerTables() map[protocol.State]protocol.HandlerTable {
	return map[protocol.State]protocol.HandlerTable{
		protocol.Login: {
			protocol.S2CSetCompression: c.onSetCompression,
			protocol.S2CLoginSuccess:   c.onLoginSuccess,
		},
		protocol.Configuration: {
			protocol.S2CConfigPluginMessage: c.onPluginMessage,
			protocol.S2CFeatureFlags:        c.onFeatureFlags,
			protocol.S2CKnownPacks:          c.onKnownPacks,
			protocol.S2CRegistryData:        c.onRegistryData,
			protocol.S2CUpdateTags:          c.onUpdateTags,
			protocol.S2CFinishConfiguration: c.onFinishConfiguration,
		},
		protocol.Play: {
			protocol.S2CPlayLogin:                    c.onPlayLogin,
			protocol.S2CPlayKeepAlive:                c.onKeepAlive,
			protocol.S2CSynchronizePlayerPosition:    c.onSynchronizePlayerPosition,
			protocol.S2CAddEntity:                    c.onAddEntity,
			protocol.S2CUpdateEntityPosition:         c.onUpdateEntityPosition,
			protocol.S2CUpdateEntityPositionRotation: c.onUpdateEntityPositionRotation,
			protocol.S2CTeleportEntity:               c.onTeleportEntity,
			protocol.S2CSetEntityVelocity:            c.onSetEntityVelocity,
			protocol.S2CChunkData:                    c.onChunkData,
			protocol.S2CChangeDifficulty:             c.onChangeDifficulty,
			protocol.S2CPlayerAbilities:              c.onPlayerAbilities,
			protocol.S2CSetHeldItem:                  c.onSetHeldItem,
			protocol.S2CEntityEvent:                  c.onEntityEvent,
			protocol.S2CPlayersInfoUpdate:            c.onIgnored,
			protocol.S2CUpdateRecipes:                c.onIgnored,
			protocol.S2CWaypoint:                     c.onIgnored,
		},
	}
}

func (c *Client) onSetCompression(s *protocol.Stream) (protocol.State, error) {
	p, err := protocol.ParseSetCompression(s)
	if err != nil {
		return protocol.StateUnchanged, err
	}
	slog.Info("Compression enabled", "threshold", p.Threshold)
	c.receiver.SetThreshold(int(p.Threshold))
	return protocol.StateUnchanged, nil
}

func (c *Client) onLoginSuccess(s *protocol.Stream) (protocol.State, error) {
	p, err := protocol.ParseLoginSuccess(s)
	if err != nil {
		return protocol.StateUnchanged, err
	}
	slog.Info("Login succeeded", "username", p.Username, "uuid", p.UUID)
	c.game.SetPlayerIdentity(p.Username, p.UUID)
	if err := c.send(protocol.C2SLoginAcknowledged, &protocol.LoginAcknowledged{}); err != nil {
		return protocol.StateUnchanged, err
	}
	return protocol.Configuration, nil
}

func (c *Client) onPluginMessage(s *protocol.Stream) (protocol.State, error) {
	p, err := protocol.ParsePluginMessage(s)
	if err != nil {
		return protocol.StateUnchanged, err
	}
	slog.Debug("Plugin message", "channel", p.Channel, "bytes", len(p.Data))
	return protocol.StateUnchanged, nil
}

func (c *Client) onFeatureFlags(s *protocol.Stream) (protocol.State, error) {
	p, err := protocol.ParseFeatureFlags(s)
	if err != nil {
		return protocol.StateUnchanged, err
	}
	slog.Debug("Feature flags", "flags", p.Flags)
	return protocol.StateUnchanged, nil
}

// onKnownPacks echoes the server's pack list back, accepting everything.
func (c *Client) onKnownPacks(s *protocol.Stream) (protocol.State, error) {
	p, err := protocol.ParseKnownPacks(s)
	if err != nil {
		return protocol.StateUnchanged, err
	}
	return protocol.StateUnchanged, c.send(protocol.C2SKnownPacks, p)
}

func (c *Client) onRegistryData(s *protocol.Stream) (protocol.State, error) {
	p, err := protocol.ParseRegistryData(s)
	if err != nil {
		return protocol.StateUnchanged, err
	}
	slog.Debug("Registry data", "registry", p.RegistryID, "entries", len(p.Entries))
	return protocol.StateUnchanged, nil
}

func (c *Client) onUpdateTags(s *protocol.Stream) (protocol.State, error) {
	p, err := protocol.ParseUpdateTags(s)
	if err != nil {
		return protocol.StateUnchanged, err
	}
	slog.Debug("Tags updated", "registries", len(p.Registries))
	return protocol.StateUnchanged, nil
}

func (c *Client) onFinishConfiguration(s *protocol.Stream) (protocol.State, error) {
	if err := c.send(protocol.C2SFinishConfiguration, &protocol.FinishConfiguration{}); err != nil {
		return protocol.StateUnchanged, err
	}
	slog.Info("Configuration finished")
	return protocol.Play, nil
}

func (c *Client) onPlayLogin(s *protocol.Stream) (protocol.State, error) {
	p, err := protocol.ParsePlayLogin(s)
	if err != nil {
		return protocol.StateUnchanged, err
	}
	c.game.BindPlayerEntity(game.EntityID(p.EntityID))
	metrics.EntitiesTracked.Set(float64(c.game.EntityCount()))
	slog.Info("Joined world",
		"entityId", p.EntityID,
		"dimension", p.DimensionName,
		"gameMode", p.GameMode,
		"viewDistance", p.ViewDistance)
	c.tickerOnce.Do(func() { go c.ticker.Run() })
	c.bus.Publish(event.EventWorldJoined, &event.WorldJoinedEvent{
		EntityID:  p.EntityID,
		Dimension: p.DimensionName,
		GameMode:  p.GameMode,
	})
	return protocol.StateUnchanged, nil
}

func (c *Client) onKeepAlive(s *protocol.Stream) (protocol.State, error) {
	p, err := protocol.ParseKeepAlive(s)
	if err != nil {
		return protocol.StateUnchanged, err
	}
	return protocol.StateUnchanged, c.send(protocol.C2SPlayKeepAlive, p)
}

func (c *Client) onSynchronizePlayerPosition(s *protocol.Stream) (protocol.State, error) {
	p, err := protocol.ParseSynchronizePlayerPosition(s)
	if err != nil {
		return protocol.StateUnchanged, err
	}
	entity := c.game.PlayerEntity()
	if entity == nil {
		return protocol.StateUnchanged, fmt.Errorf("%w: position synchronized before login", protocol.ErrDomain)
	}
	entity.Synchronize(
		game.Vec3{X: p.X, Y: p.Y, Z: p.Z},
		game.Vec3{X: p.VX, Y: p.VY, Z: p.VZ},
		game.Rotation{Yaw: p.Yaw, Pitch: p.Pitch},
		p.Flags,
	)
	slog.Debug("Position synchronized", "teleportId", p.TeleportID)
	c.bus.Publish(event.EventTeleported, &event.TeleportedEvent{
		TeleportID: p.TeleportID,
		X:          p.X, Y: p.Y, Z: p.Z,
	})
	return protocol.StateUnchanged, c.send(protocol.C2SConfirmTeleportation, &protocol.ConfirmTeleportation{TeleportID: p.TeleportID})
}

func (c *Client) onAddEntity(s *protocol.Stream) (protocol.State, error) {
	p, err := protocol.ParseAddEntity(s)
	if err != nil {
		return protocol.StateUnchanged, err
	}
	e := &game.Entity{ID: game.EntityID(p.EntityID), UUID: p.UUID, Type: p.Type}
	e.MoveTo(game.Vec3{X: p.X, Y: p.Y, Z: p.Z})
	e.SetRotation(game.Rotation{Yaw: p.Yaw.Degrees(), Pitch: p.Pitch.Degrees()})
	e.SetVelocity(game.VelocityFromWire(p.VX, p.VY, p.VZ))
	c.game.AddEntity(e)
	metrics.EntitiesTracked.Set(float64(c.game.EntityCount()))
	c.bus.Publish(event.EventEntityAppear, &event.EntityAppearEvent{
		EntityID: p.EntityID,
		UUID:     p.UUID,
		Type:     p.Type,
		X:        p.X, Y: p.Y, Z: p.Z,
	})
	return protocol.StateUnchanged, nil
}

func (c *Client) onUpdateEntityPosition(s *protocol.Stream) (protocol.State, error) {
	p, err := protocol.ParseUpdateEntityPosition(s)
	if err != nil {
		return protocol.StateUnchanged, err
	}
	e, err := c.game.Entity(game.EntityID(p.EntityID))
	if err != nil {
		return protocol.StateUnchanged, err
	}
	e.MoveBy(game.PositionDelta(p.DX, p.DY, p.DZ))
	return protocol.StateUnchanged, nil
}

func (c *Client) onUpdateEntityPositionRotation(s *protocol.Stream) (protocol.State, error) {
	p, err := protocol.ParseUpdateEntityPositionRotation(s)
	if err != nil {
		return protocol.StateUnchanged, err
	}
	e, err := c.game.Entity(game.EntityID(p.EntityID))
	if err != nil {
		return protocol.StateUnchanged, err
	}
	e.MoveBy(game.PositionDelta(p.DX, p.DY, p.DZ))
	e.SetRotation(game.Rotation{Yaw: p.Yaw.Degrees(), Pitch: p.Pitch.Degrees()})
	return protocol.StateUnchanged, nil
}

func (c *Client) onTeleportEntity(s *protocol.Stream) (protocol.State, error) {
	p, err := protocol.ParseTeleportEntity(s)
	if err != nil {
		return protocol.StateUnchanged, err
	}
	e, err := c.game.Entity(game.EntityID(p.EntityID))
	if err != nil {
		return protocol.StateUnchanged, err
	}
	e.MoveTo(game.Vec3{X: p.X, Y: p.Y, Z: p.Z})
	e.SetVelocity(game.Vec3{X: p.VX, Y: p.VY, Z: p.VZ})
	e.SetRotation(game.Rotation{Yaw: p.Yaw, Pitch: p.Pitch})
	return protocol.StateUnchanged, nil
}

func (c *Client) onSetEntityVelocity(s *protocol.Stream) (protocol.State, error) {
	p, err := protocol.ParseSetEntityVelocity(s)
	if err != nil {
		return protocol.StateUnchanged, err
	}
	e, err := c.game.Entity(game.EntityID(p.EntityID))
	if err != nil {
		return protocol.StateUnchanged, err
	}
	e.SetVelocity(game.VelocityFromWire(p.VX, p.VY, p.VZ))
	return protocol.StateUnchanged, nil
}

func (c *Client) onChunkData(s *protocol.Stream) (protocol.State, error) {
	chunk, err := game.ReadChunk(s)
	if err != nil {
		return protocol.StateUnchanged, err
	}
	c.game.World().SetChunk(chunk)
	metrics.ChunksLoaded.Set(float64(c.game.World().ChunkCount()))
	c.bus.Publish(event.EventChunkLoaded, &event.ChunkLoadedEvent{X: chunk.X, Z: chunk.Z})
	slog.Debug("Chunk loaded", "x", chunk.X, "z", chunk.Z)
	return protocol.StateUnchanged, nil
}

func (c *Client) onChangeDifficulty(s *protocol.Stream) (protocol.State, error) {
	p, err := protocol.ParseChangeDifficulty(s)
	if err != nil {
		return protocol.StateUnchanged, err
	}
	slog.Debug("Difficulty changed", "difficulty", p.Difficulty, "locked", p.IsLocked)
	return protocol.StateUnchanged, nil
}

func (c *Client) onPlayerAbilities(s *protocol.Stream) (protocol.State, error) {
	p, err := protocol.ParsePlayerAbilities(s)
	if err != nil {
		return protocol.StateUnchanged, err
	}
	slog.Debug("Abilities updated", "flags", p.Flags, "flyingSpeed", p.FlyingSpeed)
	return protocol.StateUnchanged, nil
}

func (c *Client) onSetHeldItem(s *protocol.Stream) (protocol.State, error) {
	p, err := protocol.ParseSetHeldItem(s)
	if err != nil {
		return protocol.StateUnchanged, err
	}
	slog.Debug("Held slot changed", "slot", p.Slot)
	return protocol.StateUnchanged, nil
}

func (c *Client) onEntityEvent(s *protocol.Stream) (protocol.State, error) {
	p, err := protocol.ParseEntityEvent(s)
	if err != nil {
		return protocol.StateUnchanged, err
	}
	slog.Debug("Entity event", "entityId", p.EntityID, "status", p.Status)
	return protocol.StateUnchanged, nil
}

// onIgnored consumes packets the client accepts but has no use for, so they
// don't surface as unknown ids.
func (c *Client) onIgnored(s *protocol.Stream) (protocol.State, error) {
	if err := s.Drain(); err != nil {
		return protocol.StateUnchanged, err
	}
	return protocol.StateUnchanged, nil
}
