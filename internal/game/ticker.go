package game

import (
	"log/slog"
	"math"
	"sync/atomic"
	"time"

	"github.com/Staco78/MinecraftBot/internal/protocol"
)

// TickInterval is the fixed simulation step, 20 ticks per second.
const TickInterval = 50 * time.Millisecond

const walkSpeed = 0.1 // blocks per tick

// Ticker advances the local player on a fixed clock and hands the resulting
// movement packets, already framed, to an outbox. It never touches the
// connection itself; the reader goroutine owns all socket writes and drains
// the outbox between frames. The outbox is unbounded, so queueing a frame
// never stalls the clock.
type Ticker struct {
	game      *Game
	out       *Outbox
	threshold func() int
	stop      atomic.Bool
	done      chan struct{}
}

// NewTicker builds a ticker feeding out. threshold reports the connection's
// current compression threshold at frame-encoding time.
func NewTicker(game *Game, out *Outbox, threshold func() int) *Ticker {
	return &Ticker{
		game:      game,
		out:       out,
		threshold: threshold,
		done:      make(chan struct{}),
	}
}

// Run loops until Stop is called. It is meant to be launched on its own
// goroutine once the Play state is reached.
func (t *Ticker) Run() {
	defer close(t.done)
	ticker := time.NewTicker(TickInterval)
	defer ticker.Stop()

	for range ticker.C {
		if t.stop.Load() {
			return
		}
		if err := t.tick(); err != nil {
			slog.Error("Tick failed", "error", err)
			return
		}
	}
}

// Stop makes Run return after the current tick. It is safe to call more than
// once and from any goroutine.
func (t *Ticker) Stop() {
	t.stop.Store(true)
}

// Done is closed once Run has returned.
func (t *Ticker) Done() <-chan struct{} {
	return t.done
}

// tick walks the player forward along its current yaw and queues the
// resulting position packet.
func (t *Ticker) tick() error {
	entity := t.game.PlayerEntity()
	if entity == nil {
		return nil
	}

	snap := entity.Snapshot()
	yaw := float64(snap.Rotation.Yaw) * math.Pi / 180
	step := Vec3{X: -math.Sin(yaw) * walkSpeed, Z: math.Cos(yaw) * walkSpeed}
	entity.MoveBy(step)
	pos := snap.Position.Add(step)

	frame, err := protocol.EncodePacket(protocol.C2SSetPlayerPosition, &protocol.SetPlayerPosition{
		X:     pos.X,
		Y:     pos.Y,
		Z:     pos.Z,
		Flags: protocol.PlayerOnGround,
	}, t.threshold())
	if err != nil {
		return err
	}
	t.out.Push(frame)
	return nil
}
