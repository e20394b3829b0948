package game

import (
	"bytes"
	"math"
	"testing"

	"github.com/Staco78/MinecraftBot/internal/protocol"
)

func decodePositionFrame(t *testing.T, frame []byte) (x, y, z float64, flags byte) {
	t.Helper()
	id, s, err := protocol.ReadFrame(bytes.NewReader(frame), -1)
	if err != nil {
		t.Fatal(err)
	}
	if id != protocol.C2SSetPlayerPosition {
		t.Fatalf("frame id = 0x%02x, want 0x%02x", id, protocol.C2SSetPlayerPosition)
	}
	if x, err = protocol.ReadDouble(s); err != nil {
		t.Fatal(err)
	}
	if y, err = protocol.ReadDouble(s); err != nil {
		t.Fatal(err)
	}
	if z, err = protocol.ReadDouble(s); err != nil {
		t.Fatal(err)
	}
	b, err := protocol.ReadByte(s)
	if err != nil {
		t.Fatal(err)
	}
	return x, y, z, b
}

func TestTickMovesAlongYaw(t *testing.T) {
	g := NewGame()
	g.SetPlayerIdentity("Steve", protocol.GenerateOfflineUUID("Steve"))
	e := g.BindPlayerEntity(1)
	e.MoveTo(Vec3{X: 10, Y: 64, Z: 10})

	out := NewOutbox()
	ticker := NewTicker(g, out, func() int { return -1 })

	// Yaw 0 faces positive Z.
	if err := ticker.tick(); err != nil {
		t.Fatal(err)
	}
	frame, ok := out.Pop()
	if !ok {
		t.Fatal("no frame queued")
	}
	x, y, z, flags := decodePositionFrame(t, frame)
	if x != 10 || y != 64 {
		t.Errorf("position = (%f, %f), want (10, 64)", x, y)
	}
	if math.Abs(z-10.1) > 1e-9 {
		t.Errorf("z = %f, want 10.1", z)
	}
	if flags != protocol.PlayerOnGround {
		t.Errorf("flags = %d, want on-ground", flags)
	}
	if pos := e.Position(); math.Abs(pos.Z-10.1) > 1e-9 {
		t.Errorf("entity z = %f, want 10.1", pos.Z)
	}

	// Yaw 90 faces negative X.
	e.SetRotation(Rotation{Yaw: 90})
	if err := ticker.tick(); err != nil {
		t.Fatal(err)
	}
	frame, ok = out.Pop()
	if !ok {
		t.Fatal("no frame queued")
	}
	x, _, _, _ = decodePositionFrame(t, frame)
	if math.Abs(x-9.9) > 1e-6 {
		t.Errorf("x after yaw 90 tick = %f, want 9.9", x)
	}
}

func TestTickBeforeLoginIsNoop(t *testing.T) {
	g := NewGame()
	out := NewOutbox()
	ticker := NewTicker(g, out, func() int { return -1 })

	if err := ticker.tick(); err != nil {
		t.Fatal(err)
	}
	if out.Len() != 0 {
		t.Error("no frame should be queued before the player entity exists")
	}
}

// The tick loop must never wait on the outbox: with nothing draining it, any
// number of ticks just grows the queue.
func TestTickNeverBlocksOnOutbox(t *testing.T) {
	g := NewGame()
	g.SetPlayerIdentity("Steve", protocol.GenerateOfflineUUID("Steve"))
	g.BindPlayerEntity(1)

	out := NewOutbox()
	ticker := NewTicker(g, out, func() int { return -1 })

	const ticks = 100
	for i := 0; i < ticks; i++ {
		if err := ticker.tick(); err != nil {
			t.Fatal(err)
		}
	}
	if out.Len() != ticks {
		t.Fatalf("queued frames = %d, want %d", out.Len(), ticks)
	}
}

func TestTickerStop(t *testing.T) {
	g := NewGame()
	out := NewOutbox()
	ticker := NewTicker(g, out, func() int { return -1 })

	go ticker.Run()
	ticker.Stop()
	<-ticker.Done()
}
