package client

import (
	"context"
	"fmt"
	"net"
	"strconv"
	"time"

	"github.com/Staco78/MinecraftBot/internal/protocol"
)

// Status performs a server list ping: handshake with the status intent, one
// request/response pair for the JSON listing, one ping/pong pair for the
// round-trip time.
func Status(ctx context.Context, serverAddr string) (string, time.Duration, error) {
	host, portStr, err := net.SplitHostPort(serverAddr)
	if err != nil {
		return "", 0, fmt.Errorf("invalid server address: %w", err)
	}
	port, err := strconv.ParseUint(portStr, 10, 16)
	if err != nil {
		return "", 0, fmt.Errorf("invalid server port: %w", err)
	}

	d := net.Dialer{}
	conn, err := d.DialContext(ctx, "tcp", serverAddr)
	if err != nil {
		return "", 0, err
	}
	defer conn.Close()
	stop := context.AfterFunc(ctx, func() { conn.Close() })
	defer stop()

	return statusExchange(conn, host, uint16(port))
}

func statusExchange(conn net.Conn, host string, port uint16) (string, time.Duration, error) {
	// The status exchange never enables compression.
	const threshold = -1

	if err := protocol.WritePacket(conn, protocol.C2SHandshake, &protocol.Handshake{
		ProtocolVersion: protocol.CurrentProtocolVersion,
		ServerAddress:   host,
		ServerPort:      port,
		Intent:          protocol.IntentStatus,
	}, threshold); err != nil {
		return "", 0, err
	}

	if err := protocol.WritePacket(conn, protocol.C2SStatusRequest, &protocol.StatusRequest{}, threshold); err != nil {
		return "", 0, err
	}
	id, s, err := protocol.ReadFrame(conn, threshold)
	if err != nil {
		return "", 0, err
	}
	if id != protocol.S2CStatusResponse {
		return "", 0, fmt.Errorf("%w: expected status response, got id 0x%02x", protocol.ErrInvalidPacket, id)
	}
	resp, err := protocol.ParseStatusResponse(s)
	if err != nil {
		return "", 0, err
	}

	start := time.Now()
	if err := protocol.WritePacket(conn, protocol.C2SStatusPing, &protocol.Ping{Timestamp: start.UnixMilli()}, threshold); err != nil {
		return "", 0, err
	}
	id, s, err = protocol.ReadFrame(conn, threshold)
	if err != nil {
		return "", 0, err
	}
	if id != protocol.S2CStatusPong {
		return "", 0, fmt.Errorf("%w: expected pong, got id 0x%02x", protocol.ErrInvalidPacket, id)
	}
	pong, err := protocol.ParsePing(s)
	if err != nil {
		return "", 0, err
	}
	if pong.Timestamp != start.UnixMilli() {
		return "", 0, fmt.Errorf("%w: pong timestamp mismatch", protocol.ErrInvalidPacket)
	}

	return resp.Response, time.Since(start), nil
}
