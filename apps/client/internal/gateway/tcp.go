package gateway

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"sync"
	"time"
)

type tcpConn struct {
	conn           net.Conn
	reader         *bufio.Reader
	receiveTimeout time.Duration

	closeOnce sync.Once
	closeErr  error
}

// DialTCP opens a plain TCP line transport.
func DialTCP(ctx context.Context, addr string, opts Options) (Conn, error) {
	d := net.Dialer{Timeout: opts.DialTimeout}
	c, err := d.DialContext(ctx, "tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("dial tcp %s: %w", addr, err)
	}
	return NewTCPConn(c, opts), nil
}

// NewTCPConn wraps an established stream connection.
func NewTCPConn(c net.Conn, opts Options) Conn {
	return &tcpConn{
		conn:           c,
		reader:         bufio.NewReaderSize(c, 4096),
		receiveTimeout: opts.ReceiveTimeout,
	}
}

func (t *tcpConn) Send(line string) error {
	if _, err := io.WriteString(t.conn, line+"\n"); err != nil {
		return t.wrap("send", err)
	}
	return nil
}

func (t *tcpConn) Receive() (string, error) {
	if t.receiveTimeout > 0 {
		if err := t.conn.SetReadDeadline(time.Now().Add(t.receiveTimeout)); err != nil {
			return "", t.wrap("receive", err)
		}
	}
	line, err := t.reader.ReadString('\n')
	if err != nil {
		// A final record without delimiter still counts as a closed stream.
		return "", t.wrap("receive", err)
	}
	return trimRecord(line), nil
}

func (t *tcpConn) Close() error {
	t.closeOnce.Do(func() {
		t.closeErr = t.conn.Close()
	})
	return t.closeErr
}

func (t *tcpConn) wrap(op string, err error) error {
	if errors.Is(err, io.EOF) || errors.Is(err, net.ErrClosed) || errors.Is(err, io.ErrClosedPipe) {
		return fmt.Errorf("%s: %w", op, ErrClosed)
	}
	return fmt.Errorf("%s: %w", op, err)
}
