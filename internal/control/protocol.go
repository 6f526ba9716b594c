// Package control is the local socket other processes use to drive a running
// desktop. Each connection carries one CBOR request and one CBOR response.
package control

import (
	"fmt"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/fxamacker/cbor/v2"
)

// Actions accepted by the control socket.
const (
	ActionPing       = "ping"
	ActionApps       = "apps"
	ActionAppOpened  = "app_opened"
	ActionLaunchAll  = "launch_all"
	ActionList       = "list"
	ActionFocus      = "focus"
	ActionClose      = "close"
	ActionSwitch     = "switch"
	ActionMinimize   = "minimize"
	ActionRestoreAll = "restore_all"
	ActionMaximize   = "maximize"
	ActionMove       = "move"
	ActionResize     = "resize"
	ActionArrange    = "arrange"
	ActionPin        = "pin"
	ActionUnpin      = "unpin"
	ActionDock       = "dock"
	ActionWallpaper  = "wallpaper"
)

// Request is one control call. Params depend on the action.
type Request struct {
	Action string         `cbor:"action"`
	Params map[string]any `cbor:"params,omitempty"`
}

// Response is the envelope written back for every request. Data holds the
// CBOR-encoded result on success.
type Response struct {
	OK    bool            `cbor:"ok"`
	Error string          `cbor:"error,omitempty"`
	Data  cbor.RawMessage `cbor:"data,omitempty"`
}

// RemoteError is an error reported by the desktop for a request.
type RemoteError struct {
	Action  string
	Message string
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("%s: %s", e.Action, e.Message)
}

// DefaultSocketPath returns $XDG_RUNTIME_DIR/aios/control.sock.
func DefaultSocketPath() (string, error) {
	path, err := xdg.RuntimeFile(filepath.Join("aios", "control.sock"))
	if err != nil {
		return "", fmt.Errorf("failed to resolve control socket path: %w", err)
	}
	return path, nil
}
