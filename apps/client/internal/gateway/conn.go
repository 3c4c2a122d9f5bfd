package gateway

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrClosed is returned once the peer has closed the stream or the
// connection was closed locally.
var ErrClosed = errors.New("connection closed")

const (
	TransportTCP       = "tcp"
	TransportWebSocket = "ws"
)

// Conn is a reliable, ordered line transport. Send writes one full record;
// Receive blocks until a complete line is available and returns it without
// its delimiter. Close may be called from any goroutine, more than once.
type Conn interface {
	Send(line string) error
	Receive() (string, error)
	Close() error
}

type Options struct {
	DialTimeout time.Duration
	// ReceiveTimeout bounds each Receive; 0 waits forever.
	ReceiveTimeout time.Duration
	// WSPath is the request path for the websocket transport.
	WSPath string
}

// Dial connects to addr ("host:port") with the named transport.
func Dial(ctx context.Context, transport, addr string, opts Options) (Conn, error) {
	switch strings.ToLower(strings.TrimSpace(transport)) {
	case "", TransportTCP:
		return DialTCP(ctx, addr, opts)
	case TransportWebSocket, "websocket":
		return DialWebSocket(ctx, addr, opts)
	default:
		return nil, fmt.Errorf("unknown transport %q (supported: %s, %s)", transport, TransportTCP, TransportWebSocket)
	}
}

// trimRecord drops the line delimiter and a trailing carriage return.
func trimRecord(line string) string {
	line = strings.TrimSuffix(line, "\n")
	return strings.TrimSuffix(line, "\r")
}
