// Package mcp exposes the desktop as Model Context Protocol tools.
package mcp

import (
	"context"
	"errors"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/nelieo/aios/internal/control"
	"github.com/nelieo/aios/internal/output"
)

// Transports accepted by Serve.
const (
	TransportStdio = "stdio"
	TransportHTTP  = "streamable-http"
)

// Config holds MCP server configuration.
type Config struct {
	Transport string
	Addr      string
	Version   string
}

// Server wraps the MCP server. Every tool is translated into a control
// request and handed to the handler, which either applies it to a headless
// desktop or forwards it to a running shell.
type Server struct {
	handler control.Handler
	mcp     *mcpserver.MCPServer
}

// New creates a server with every desktop tool registered.
func New(handler control.Handler, version string) *Server {
	if version == "" {
		version = "dev"
	}
	s := &Server{
		handler: handler,
		mcp: mcpserver.NewMCPServer(
			"aios",
			version,
			mcpserver.WithToolCapabilities(false),
			mcpserver.WithInstructions("Window manager for the AIOS desktop. Windows are addressed by ID, title or app ID."),
		),
	}
	s.registerTools()
	return s
}

// Serve runs the server on the configured transport until it fails.
func (s *Server) Serve(cfg Config) error {
	switch cfg.Transport {
	case "", TransportStdio:
		return mcpserver.ServeStdio(s.mcp)
	case TransportHTTP:
		addr := cfg.Addr
		if addr == "" {
			addr = ":8080"
		}
		return mcpserver.NewStreamableHTTPServer(s.mcp).Start(addr)
	default:
		return fmt.Errorf("unsupported transport: %s (use stdio or streamable-http)", cfg.Transport)
	}
}

// Forward returns a handler that relays requests to a running desktop.
func Forward(client *control.Client) control.Handler {
	return func(ctx context.Context, req control.Request) (any, error) {
		var out any
		if err := client.Do(ctx, req.Action, req.Params, &out); err != nil {
			return nil, err
		}
		return out, nil
	}
}

// call runs one control request and renders the outcome as a tool result.
// Desktop errors are reported to the model, not returned as protocol errors.
func (s *Server) call(ctx context.Context, action string, params map[string]any) (*mcp.CallToolResult, error) {
	result, err := s.handler(ctx, control.Request{Action: action, Params: params})
	if err != nil {
		if errors.Is(err, control.ErrNotRunning) {
			return nil, err
		}
		return mcp.NewToolResultError(err.Error()), nil
	}
	if result == nil {
		return mcp.NewToolResultText("ok"), nil
	}
	text, err := output.YAML(result)
	if err != nil {
		return nil, err
	}
	return mcp.NewToolResultText(text), nil
}
