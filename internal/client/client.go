// Package client dials a server, drives the connection through login and
// configuration, and runs the Play state: one reader goroutine owning the
// socket, one ticker goroutine feeding it pre-encoded frames.
package client

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"strconv"
	"sync"

	"github.com/Staco78/MinecraftBot/internal/event"
	"github.com/Staco78/MinecraftBot/internal/game"
	"github.com/Staco78/MinecraftBot/internal/metrics"
	"github.com/Staco78/MinecraftBot/internal/protocol"
)

type Client struct {
	serverAddr string
	username   string

	game     *game.Game
	bus      *event.Bus
	receiver *protocol.Receiver
	conn     net.Conn

	// outbox carries whole frames from the ticker to the reader goroutine,
	// which is the only writer on the socket.
	outbox     *game.Outbox
	ticker     *game.Ticker
	tickerOnce sync.Once
}

func New(serverAddr, username string) *Client {
	c := &Client{
		serverAddr: serverAddr,
		username:   username,
		game:       game.NewGame(),
		bus:        event.NewBus(),
		outbox:     game.NewOutbox(),
	}
	c.receiver = protocol.NewReceiver(c.handlerTables())
	c.ticker = game.NewTicker(c.game, c.outbox, func() int { return c.receiver.Threshold() })
	return c
}

func (c *Client) Game() *game.Game {
	return c.game
}

// Bus exposes the world event stream for subscribers.
func (c *Client) Bus() *event.Bus {
	return c.bus
}

// Run connects and processes packets until the connection dies or ctx is
// cancelled. Recoverable decode failures are logged and skipped; anything
// else ends the session.
func (c *Client) Run(ctx context.Context) error {
	d := net.Dialer{}
	conn, err := d.DialContext(ctx, "tcp", c.serverAddr)
	if err != nil {
		return err
	}
	slog.Info("Connected to server", "address", c.serverAddr)
	return c.session(ctx, conn)
}

// session drives an established connection: handshake, login, then the read
// loop. It owns every write on conn.
func (c *Client) session(ctx context.Context, conn net.Conn) error {
	c.conn = conn
	defer conn.Close()
	defer c.ticker.Stop()

	// Closing the socket is the only way to unblock a pending read.
	stop := context.AfterFunc(ctx, func() { conn.Close() })
	defer stop()

	if err := c.login(); err != nil {
		return fmt.Errorf("login failed: %w", err)
	}

	for {
		err := c.receiver.Receive(conn)
		switch {
		case err == nil:
			metrics.PacketsReceived.WithLabelValues(c.receiver.State().String()).Inc()

		case isUnknownPacket(err):
			metrics.UnknownPackets.Inc()
			slog.Debug("Skipped packet without handler", "error", err)

		case protocol.Recoverable(err):
			metrics.MalformedPackets.Inc()
			slog.Warn("Skipped undecodable packet", "error", err)

		default:
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return fmt.Errorf("connection lost: %w", err)
		}

		if err := c.flushOutbox(); err != nil {
			return err
		}
	}
}

func isUnknownPacket(err error) bool {
	var unknown *protocol.UnknownPacketError
	return errors.As(err, &unknown)
}

// login performs the handshake and starts the login exchange; the rest of
// the login flow is handler-driven.
func (c *Client) login() error {
	host, portStr, err := net.SplitHostPort(c.serverAddr)
	if err != nil {
		return fmt.Errorf("invalid server address: %w", err)
	}
	port, err := strconv.ParseUint(portStr, 10, 16)
	if err != nil {
		return fmt.Errorf("invalid server port: %w", err)
	}

	slog.Info("Starting handshake", "protocol", protocol.CurrentProtocolVersion)
	if err := c.send(protocol.C2SHandshake, &protocol.Handshake{
		ProtocolVersion: protocol.CurrentProtocolVersion,
		ServerAddress:   host,
		ServerPort:      uint16(port),
		Intent:          protocol.IntentLogin,
	}); err != nil {
		return err
	}
	c.receiver.ChangeState(protocol.Login)

	uuid := protocol.GenerateOfflineUUID(c.username)
	slog.Info("Starting login", "username", c.username, "uuid", uuid)
	return c.send(protocol.C2SLoginStart, &protocol.LoginStart{Username: c.username, UUID: uuid})
}

// send encodes and writes one packet. Only the goroutine running Run may
// call it.
func (c *Client) send(id int32, body protocol.Body) error {
	return protocol.WritePacket(c.conn, id, body, c.receiver.Threshold())
}

// flushOutbox writes every frame the ticker queued, without blocking.
func (c *Client) flushOutbox() error {
	for {
		frame, ok := c.outbox.Pop()
		if !ok {
			return nil
		}
		if _, err := c.conn.Write(frame); err != nil {
			return fmt.Errorf("writing queued frame: %w", err)
		}
		metrics.FramesQueued.Inc()
	}
}
