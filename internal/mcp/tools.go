package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/nelieo/aios/internal/control"
)

var targetDescription = mcp.Description("Window ID, title or app ID. Defaults to the focused window.")

func (s *Server) registerTools() {
	s.mcp.AddTool(
		mcp.NewTool("list_apps",
			mcp.WithDescription("List the applications the desktop can launch, with their streaming URLs"),
		),
		s.simple(control.ActionApps),
	)

	s.mcp.AddTool(
		mcp.NewTool("list_windows",
			mcp.WithDescription("Describe the desktop: viewport, open windows in creation order, focused window, dock and wallpaper"),
		),
		s.simple(control.ActionList),
	)

	s.mcp.AddTool(
		mcp.NewTool("open_app",
			mcp.WithDescription("Open a window for an application, exactly like clicking it in the dock. Unknown apps open the fallback browser."),
			mcp.WithString("app", mcp.Required(), mcp.Description("Application ID, e.g. gmail, slack, notion")),
		),
		s.handleOpenApp,
	)

	s.mcp.AddTool(
		mcp.NewTool("launch_all",
			mcp.WithDescription("Open one window for every registered application"),
		),
		s.simple(control.ActionLaunchAll),
	)

	s.mcp.AddTool(
		mcp.NewTool("focus_window",
			mcp.WithDescription("Raise a window above all others, restoring it if minimized"),
			mcp.WithString("target", mcp.Required(), mcp.Description("Window ID, title or app ID")),
		),
		s.targeted(control.ActionSwitch),
	)

	s.mcp.AddTool(
		mcp.NewTool("close_window",
			mcp.WithDescription("Close a window"),
			mcp.WithString("target", targetDescription),
		),
		s.targeted(control.ActionClose),
	)

	s.mcp.AddTool(
		mcp.NewTool("minimize_window",
			mcp.WithDescription("Minimize a window, or restore it"),
			mcp.WithString("target", targetDescription),
			mcp.WithBoolean("restore", mcp.Description("Restore instead of minimizing")),
		),
		s.handleMinimize,
	)

	s.mcp.AddTool(
		mcp.NewTool("maximize_window",
			mcp.WithDescription("Toggle a window between filling the desktop and its previous rectangle"),
			mcp.WithString("target", targetDescription),
		),
		s.targeted(control.ActionMaximize),
	)

	s.mcp.AddTool(
		mcp.NewTool("move_window",
			mcp.WithDescription("Move a window to viewport pixel coordinates. With snap, a drop near the left or right edge fills that half."),
			mcp.WithString("target", targetDescription),
			mcp.WithNumber("x", mcp.Required(), mcp.Description("Left edge in pixels")),
			mcp.WithNumber("y", mcp.Required(), mcp.Description("Top edge in pixels")),
			mcp.WithBoolean("snap", mcp.Description("Treat the move as a drag release")),
		),
		s.handleMove,
	)

	s.mcp.AddTool(
		mcp.NewTool("resize_window",
			mcp.WithDescription("Resize a window. Sizes below 320x180 are raised to the minimum."),
			mcp.WithString("target", targetDescription),
			mcp.WithNumber("width", mcp.Required(), mcp.Min(1)),
			mcp.WithNumber("height", mcp.Required(), mcp.Min(1)),
			mcp.WithNumber("x", mcp.Description("New left edge, defaults to the current one")),
			mcp.WithNumber("y", mcp.Description("New top edge, defaults to the current one")),
		),
		s.handleResize,
	)

	s.mcp.AddTool(
		mcp.NewTool("arrange_grid",
			mcp.WithDescription("Lay every window out on a grid"),
		),
		s.simple(control.ActionArrange),
	)

	s.mcp.AddTool(
		mcp.NewTool("pin_app",
			mcp.WithDescription("Pin an application to the dock"),
			mcp.WithString("app", mcp.Required()),
		),
		s.appTool(control.ActionPin),
	)

	s.mcp.AddTool(
		mcp.NewTool("unpin_app",
			mcp.WithDescription("Remove an application from the dock"),
			mcp.WithString("app", mcp.Required()),
		),
		s.appTool(control.ActionUnpin),
	)

	s.mcp.AddTool(
		mcp.NewTool("set_wallpaper",
			mcp.WithDescription("Set the desktop wallpaper to an image URL or a CSS gradient. An empty value restores the default."),
			mcp.WithString("value", mcp.Description("Image URL or gradient")),
		),
		s.handleWallpaper,
	)
}

type toolHandler = func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error)

func (s *Server) simple(action string) toolHandler {
	return func(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return s.call(ctx, action, nil)
	}
}

func (s *Server) targeted(action string) toolHandler {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return s.call(ctx, action, withTarget(request, nil))
	}
}

func (s *Server) appTool(action string) toolHandler {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		app, err := request.RequireString("app")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return s.call(ctx, action, map[string]any{"app": app})
	}
}

func (s *Server) handleOpenApp(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return s.appTool(control.ActionAppOpened)(ctx, request)
}

func (s *Server) handleMinimize(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := withTarget(request, map[string]any{"restore": request.GetBool("restore", false)})
	return s.call(ctx, control.ActionMinimize, params)
}

func (s *Server) handleMove(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	x, err := request.RequireInt("x")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	y, err := request.RequireInt("y")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	params := withTarget(request, map[string]any{
		"x":    x,
		"y":    y,
		"snap": request.GetBool("snap", false),
	})
	return s.call(ctx, control.ActionMove, params)
}

func (s *Server) handleResize(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	width, err := request.RequireInt("width")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	height, err := request.RequireInt("height")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	params := map[string]any{"width": width, "height": height}
	args := request.GetArguments()
	for _, key := range []string{"x", "y"} {
		if _, ok := args[key]; ok {
			params[key] = request.GetInt(key, 0)
		}
	}
	return s.call(ctx, control.ActionResize, withTarget(request, params))
}

func (s *Server) handleWallpaper(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	value := request.GetString("value", "")
	if value == "" {
		return s.call(ctx, control.ActionWallpaper, map[string]any{"reset": true})
	}
	return s.call(ctx, control.ActionWallpaper, map[string]any{"value": value})
}

func withTarget(request mcp.CallToolRequest, params map[string]any) map[string]any {
	if params == nil {
		params = make(map[string]any)
	}
	if t := request.GetString("target", ""); t != "" {
		params["target"] = t
	}
	return params
}
