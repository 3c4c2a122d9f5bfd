package gateway

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const wsReadLimit = 65536

// wsConn carries the line protocol over websocket text frames. A frame may
// hold one or several newline-separated records.
type wsConn struct {
	conn           *websocket.Conn
	receiveTimeout time.Duration
	pending        []string

	writeMu   sync.Mutex
	closeOnce sync.Once
	closeErr  error
}

// DialWebSocket connects to ws://addr<WSPath>.
func DialWebSocket(ctx context.Context, addr string, opts Options) (Conn, error) {
	path := opts.WSPath
	if path == "" {
		path = "/ws"
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	u := url.URL{Scheme: "ws", Host: addr, Path: path}

	dialer := websocket.Dialer{
		HandshakeTimeout: opts.DialTimeout,
		ReadBufferSize:   4096,
		WriteBufferSize:  4096,
	}
	c, _, err := dialer.DialContext(ctx, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("dial websocket %s: %w", u.String(), err)
	}
	return NewWebSocketConn(c, opts), nil
}

// NewWebSocketConn wraps an established websocket connection.
func NewWebSocketConn(c *websocket.Conn, opts Options) Conn {
	c.SetReadLimit(wsReadLimit)
	return &wsConn{conn: c, receiveTimeout: opts.ReceiveTimeout}
}

func (w *wsConn) Send(line string) error {
	w.writeMu.Lock()
	defer w.writeMu.Unlock()
	if err := w.conn.WriteMessage(websocket.TextMessage, []byte(line+"\n")); err != nil {
		return w.wrap("send", err)
	}
	return nil
}

func (w *wsConn) Receive() (string, error) {
	for len(w.pending) == 0 {
		if w.receiveTimeout > 0 {
			if err := w.conn.SetReadDeadline(time.Now().Add(w.receiveTimeout)); err != nil {
				return "", w.wrap("receive", err)
			}
		}
		messageType, data, err := w.conn.ReadMessage()
		if err != nil {
			return "", w.wrap("receive", err)
		}
		if messageType != websocket.TextMessage && messageType != websocket.BinaryMessage {
			continue
		}
		records := strings.Split(string(data), "\n")
		if len(records) > 1 && records[len(records)-1] == "" {
			records = records[:len(records)-1]
		}
		for _, r := range records {
			w.pending = append(w.pending, trimRecord(r))
		}
	}
	line := w.pending[0]
	w.pending = w.pending[1:]
	return line, nil
}

func (w *wsConn) Close() error {
	w.closeOnce.Do(func() {
		w.writeMu.Lock()
		_ = w.conn.WriteControl(
			websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, "bye"),
			time.Now().Add(time.Second),
		)
		w.writeMu.Unlock()
		w.closeErr = w.conn.Close()
	})
	return w.closeErr
}

func (w *wsConn) wrap(op string, err error) error {
	var closeErr *websocket.CloseError
	if errors.As(err, &closeErr) || errors.Is(err, net.ErrClosed) || errors.Is(err, websocket.ErrCloseSent) {
		return fmt.Errorf("%s: %w", op, ErrClosed)
	}
	return fmt.Errorf("%s: %w", op, err)
}
