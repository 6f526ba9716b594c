package control

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"os"
	"path/filepath"
	"sync"
	"time"

	"charm.land/log/v2"
)

const (
	readTimeout    = 10 * time.Second
	writeTimeout   = 5 * time.Second
	maxRequestSize = 64 * 1024
)

// Handler answers one request. The returned value becomes the response data.
type Handler func(ctx context.Context, req Request) (any, error)

// Server accepts control connections on a unix socket.
type Server struct {
	socketPath string
	handler    Handler
	logger     *log.Logger

	active sync.WaitGroup
}

// NewServer returns a server for socketPath. Nothing is opened until Serve.
func NewServer(socketPath string, handler Handler, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	return &Server{socketPath: socketPath, handler: handler, logger: logger}
}

// SocketPath returns the path the server listens on.
func (s *Server) SocketPath() string { return s.socketPath }

// Listen binds the socket, replacing a stale one left by a crashed shell. It
// refuses to take over a socket another desktop is answering on.
func (s *Server) Listen() (net.Listener, error) {
	if err := os.MkdirAll(filepath.Dir(s.socketPath), 0700); err != nil {
		return nil, fmt.Errorf("creating socket directory: %w", err)
	}
	if conn, err := net.DialTimeout("unix", s.socketPath, 200*time.Millisecond); err == nil {
		conn.Close()
		return nil, fmt.Errorf("another desktop is listening on %s", s.socketPath)
	}
	if err := os.Remove(s.socketPath); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("removing stale socket %s: %w", s.socketPath, err)
	}
	l, err := net.Listen("unix", s.socketPath)
	if err != nil {
		return nil, fmt.Errorf("listening on %s: %w", s.socketPath, err)
	}
	return l, nil
}

// Serve listens and handles connections until ctx is cancelled, then waits
// for in-flight requests and removes the socket.
func (s *Server) Serve(ctx context.Context) error {
	l, err := s.Listen()
	if err != nil {
		return err
	}
	return s.ServeListener(ctx, l)
}

// ServeListener is Serve on an already bound listener.
func (s *Server) ServeListener(ctx context.Context, l net.Listener) error {
	defer func() {
		l.Close()
		os.Remove(s.socketPath)
	}()

	go func() {
		<-ctx.Done()
		l.Close()
	}()

	s.logger.Debug("control socket listening", "path", s.socketPath)

	for {
		conn, err := l.Accept()
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, net.ErrClosed) {
				break
			}
			s.logger.Error("accept failed", "err", err)
			continue
		}
		s.active.Add(1)
		go func() {
			defer s.active.Done()
			s.handleConnection(ctx, conn)
		}()
	}

	s.active.Wait()
	return nil
}

func (s *Server) handleConnection(ctx context.Context, conn net.Conn) {
	defer conn.Close()
	_ = conn.SetReadDeadline(time.Now().Add(readTimeout))

	var req Request
	if err := newDecoder(io.LimitReader(conn, maxRequestSize)).Decode(&req); err != nil {
		if errors.Is(err, io.EOF) {
			return
		}
		s.write(conn, Response{Error: fmt.Sprintf("invalid request: %v", err)})
		return
	}
	if req.Action == "" {
		s.write(conn, Response{Error: "missing required field: action"})
		return
	}

	result, err := s.handler(ctx, req)
	if err != nil {
		s.logger.Debug("control request failed", "action", req.Action, "err", err)
		s.write(conn, Response{Error: err.Error()})
		return
	}

	resp := Response{OK: true}
	if result != nil {
		data, err := marshal(result)
		if err != nil {
			s.write(conn, Response{Error: fmt.Sprintf("internal: encoding response: %v", err)})
			return
		}
		resp.Data = data
	}
	s.write(conn, resp)
}

func (s *Server) write(conn net.Conn, resp Response) {
	_ = conn.SetWriteDeadline(time.Now().Add(writeTimeout))
	if err := newEncoder(conn).Encode(resp); err != nil {
		s.logger.Debug("failed to write control response", "err", err)
	}
}
