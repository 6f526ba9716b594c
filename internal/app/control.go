package app

import (
	"context"

	tea "charm.land/bubbletea/v2"
	"github.com/nelieo/aios/internal/control"
)

// ControlRequest carries a control socket request into the update loop.
type ControlRequest struct {
	Request control.Request
	Reply   chan ControlReply
}

// ControlReply is the outcome of a ControlRequest.
type ControlReply struct {
	Data any
	Err  error
}

// ControlMsg is delivered to Update for every control request.
type ControlMsg ControlRequest

// ControlHandler returns a control.Handler that applies requests on the
// update goroutine, so socket clients never race with keyboard and mouse
// input.
func (m *OS) ControlHandler() control.Handler {
	ch := m.ControlChan
	return func(ctx context.Context, req control.Request) (any, error) {
		reply := make(chan ControlReply, 1)
		select {
		case ch <- ControlRequest{Request: req, Reply: reply}:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
		select {
		case r := <-reply:
			return r.Data, r.Err
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
}

// ListenForControl creates a command that waits for the next control request.
func ListenForControl(ch chan ControlRequest) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		req, ok := <-ch
		if !ok {
			return nil
		}
		return ControlMsg(req)
	}
}

// handleControl applies one request and answers the waiting client.
func (m *OS) handleControl(msg ControlMsg) {
	data, err := control.Apply(m.Desktop, msg.Request)
	if err != nil {
		m.LogWarn("control %s: %v", msg.Request.Action, err)
	} else if msg.Request.Action != control.ActionPing && msg.Request.Action != control.ActionList {
		m.LogInfo("control %s", msg.Request.Action)
	}
	msg.Reply <- ControlReply{Data: data, Err: err}
}
