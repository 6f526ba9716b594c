package control

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"syscall"
	"time"
)

// ErrNotRunning is returned when no desktop is listening on the socket.
var ErrNotRunning = errors.New("aios is not running")

const (
	dialTimeout     = 2 * time.Second
	maxResponseSize = 4 * 1024 * 1024

	// defaultRoundTrip bounds calls made with a context that has no deadline
	defaultRoundTrip = 30 * time.Second
)

// Client sends requests to a running desktop.
type Client struct {
	socketPath string
}

// NewClient returns a client for socketPath.
func NewClient(socketPath string) *Client {
	return &Client{socketPath: socketPath}
}

// Do sends one request and decodes the response data into out, which may be
// nil. The context bounds the whole round trip.
func (c *Client) Do(ctx context.Context, action string, params map[string]any, out any) error {
	dialer := net.Dialer{Timeout: dialTimeout}
	conn, err := dialer.DialContext(ctx, "unix", c.socketPath)
	if err != nil {
		if errors.Is(err, syscall.ENOENT) || errors.Is(err, syscall.ECONNREFUSED) {
			return fmt.Errorf("%w (no socket at %s)", ErrNotRunning, c.socketPath)
		}
		return fmt.Errorf("connecting to %s: %w", c.socketPath, err)
	}
	defer conn.Close()

	if _, ok := ctx.Deadline(); !ok {
		_ = conn.SetDeadline(time.Now().Add(defaultRoundTrip))
	}
	stop := context.AfterFunc(ctx, func() { conn.Close() })
	defer stop()

	if err := newEncoder(conn).Encode(Request{Action: action, Params: params}); err != nil {
		return fmt.Errorf("writing request: %w", ctxErr(ctx, err))
	}
	if uc, ok := conn.(*net.UnixConn); ok {
		_ = uc.CloseWrite()
	}

	var resp Response
	if err := newDecoder(io.LimitReader(conn, maxResponseSize)).Decode(&resp); err != nil {
		return fmt.Errorf("reading response: %w", ctxErr(ctx, err))
	}
	if !resp.OK {
		return &RemoteError{Action: action, Message: resp.Error}
	}
	if out != nil && len(resp.Data) > 0 {
		if err := unmarshal(resp.Data, out); err != nil {
			return fmt.Errorf("decoding %s response: %w", action, err)
		}
	}
	return nil
}

// ctxErr prefers the context's error when the connection was torn down
// because the context ended.
func ctxErr(ctx context.Context, err error) error {
	if ctx.Err() != nil {
		return ctx.Err()
	}
	return err
}
