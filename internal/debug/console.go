// Package debug provides an interactive raw-mode terminal console for
// inspecting and steering the bot while it runs.
package debug

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"

	"golang.org/x/term"

	"github.com/Staco78/MinecraftBot/internal/game"
)

const yawStep = float32(5.0)

type Console struct {
	game *game.Game

	mu          sync.Mutex
	commandMode bool
	commandBuf  []rune
}

func NewConsole(g *game.Game) *Console {
	return &Console{game: g}
}

// Start puts the terminal in raw mode and reads single-key commands until
// ctx is cancelled or q is pressed.
func (c *Console) Start(ctx context.Context) error {
	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return fmt.Errorf("set terminal raw mode: %w", err)
	}
	defer func() {
		_ = term.Restore(fd, oldState)
		fmt.Print("\r\n")
	}()

	fmt.Print("[debug] console started (i state, a/d yaw, : commands, q quit)\r\n")

	reader := bufio.NewReader(os.Stdin)
	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		b, err := reader.ReadByte()
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("read console input: %w", err)
		}
		if quit := c.handleKey(b); quit {
			return nil
		}
	}
}

func (c *Console) handleKey(b byte) bool {
	if c.isCommandMode() {
		c.handleCommandByte(b)
		return false
	}

	switch b {
	case 'q', 'Q', 3: // Ctrl-C
		return true
	case ':':
		c.enterCommandMode()
	case 'i', 'I':
		c.printState()
	case 'a', 'A':
		c.adjustYaw(-yawStep)
	case 'd', 'D':
		c.adjustYaw(yawStep)
	}
	return false
}

func (c *Console) enterCommandMode() {
	c.mu.Lock()
	c.commandMode = true
	c.commandBuf = c.commandBuf[:0]
	c.mu.Unlock()
	fmt.Print("\r\n:")
}

func (c *Console) isCommandMode() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.commandMode
}

func (c *Console) handleCommandByte(b byte) {
	switch b {
	case 13, 10: // Enter
		c.mu.Lock()
		cmd := strings.TrimSpace(string(c.commandBuf))
		c.commandMode = false
		c.commandBuf = c.commandBuf[:0]
		c.mu.Unlock()

		fmt.Print("\r\n")
		if cmd != "" {
			c.executeCommand(cmd)
		}
	case 27: // ESC cancels
		c.mu.Lock()
		c.commandMode = false
		c.commandBuf = c.commandBuf[:0]
		c.mu.Unlock()
		fmt.Print("\r\n[debug] command cancelled\r\n")
	case 8, 127: // Backspace
		c.mu.Lock()
		if len(c.commandBuf) > 0 {
			c.commandBuf = c.commandBuf[:len(c.commandBuf)-1]
		}
		buf := string(c.commandBuf)
		c.mu.Unlock()
		fmt.Printf("\r:%s \r:%s", buf, buf)
	default:
		if b < 32 || b > 126 {
			return
		}
		c.mu.Lock()
		c.commandBuf = append(c.commandBuf, rune(b))
		buf := string(c.commandBuf)
		c.mu.Unlock()
		fmt.Printf("\r:%s", buf)
	}
}

func (c *Console) executeCommand(cmd string) {
	parts := strings.Fields(cmd)
	if len(parts) == 0 {
		return
	}

	switch parts[0] {
	case "help":
		c.printHelp()
	case "state":
		c.printState()
	case "block":
		if len(parts) != 4 {
			fmt.Print("[debug] usage: :block <x> <y> <z>\r\n")
			return
		}
		x, err1 := strconv.Atoi(parts[1])
		y, err2 := strconv.Atoi(parts[2])
		z, err3 := strconv.Atoi(parts[3])
		if err1 != nil || err2 != nil || err3 != nil {
			fmt.Print("[debug] invalid block args\r\n")
			return
		}
		id, err := c.game.World().BlockAt(x, y, z)
		if err != nil {
			fmt.Printf("[debug] block (%d,%d,%d): %v\r\n", x, y, z, err)
			return
		}
		fmt.Printf("[debug] block (%d,%d,%d): state_id=%d\r\n", x, y, z, id)
	case "entity":
		if len(parts) != 2 {
			fmt.Print("[debug] usage: :entity <id>\r\n")
			return
		}
		id64, err := strconv.ParseInt(parts[1], 10, 32)
		if err != nil {
			fmt.Print("[debug] invalid entity id\r\n")
			return
		}
		e, err := c.game.Entity(game.EntityID(id64))
		if err != nil {
			fmt.Printf("[debug] %v\r\n", err)
			return
		}
		snap := e.Snapshot()
		fmt.Printf("[debug] entity %d type=%d pos=(%.3f,%.3f,%.3f) vel=(%.3f,%.3f,%.3f)\r\n",
			e.ID, e.Type,
			snap.Position.X, snap.Position.Y, snap.Position.Z,
			snap.Velocity.X, snap.Velocity.Y, snap.Velocity.Z)
	default:
		fmt.Printf("[debug] unknown command: %s\r\n", parts[0])
	}
}

func (c *Console) printState() {
	e := c.game.PlayerEntity()
	if e == nil {
		fmt.Print("[debug] not in world yet\r\n")
		return
	}
	snap := e.Snapshot()
	fmt.Printf("[debug] %s pos=(%.3f,%.3f,%.3f) yaw=%.1f pitch=%.1f entities=%d chunks=%d\r\n",
		c.game.PlayerName(),
		snap.Position.X, snap.Position.Y, snap.Position.Z,
		snap.Rotation.Yaw, snap.Rotation.Pitch,
		c.game.EntityCount(), c.game.World().ChunkCount())
}

func (c *Console) adjustYaw(delta float32) {
	e := c.game.PlayerEntity()
	if e == nil {
		return
	}
	rot := e.Rotation()
	rot.Yaw = normalizeYaw(rot.Yaw + delta)
	e.SetRotation(rot)
	fmt.Printf("\r[debug] yaw=%.1f   ", rot.Yaw)
}

func (c *Console) printHelp() {
	fmt.Print("[debug] keys:\r\n")
	fmt.Print("  i: print player state\r\n")
	fmt.Print("  a/d: yaw -/+5\r\n")
	fmt.Print("  q: quit console\r\n")
	fmt.Print("[debug] commands:\r\n")
	fmt.Print("  :block <x> <y> <z>\r\n")
	fmt.Print("  :entity <id>\r\n")
	fmt.Print("  :state\r\n")
	fmt.Print("  :help\r\n")
}

func normalizeYaw(yaw float32) float32 {
	for yaw <= -180 {
		yaw += 360
	}
	for yaw > 180 {
		yaw -= 360
	}
	return yaw
}
