// Package tape parses and plays desktop scripts. A script is a list of
// commands, one per line, that drive the desktop through control actions:
//
//	# open the morning set
//	Launch gmail slack
//	Sleep 500ms
//	Arrange
//	Focus slack
package tape

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"time"
	"unicode"
)

// CommandType names a script command.
type CommandType string

// Script commands.
const (
	CommandTypeLaunch     CommandType = "Launch"
	CommandTypeLaunchAll  CommandType = "LaunchAll"
	CommandTypeFocus      CommandType = "Focus"
	CommandTypeClose      CommandType = "Close"
	CommandTypeMinimize   CommandType = "Minimize"
	CommandTypeRestore    CommandType = "Restore"
	CommandTypeRestoreAll CommandType = "RestoreAll"
	CommandTypeMaximize   CommandType = "Maximize"
	CommandTypeMove       CommandType = "Move"
	CommandTypeResize     CommandType = "Resize"
	CommandTypeArrange    CommandType = "Arrange"
	CommandTypePin        CommandType = "Pin"
	CommandTypeUnpin      CommandType = "Unpin"
	CommandTypeWallpaper  CommandType = "Wallpaper"
	CommandTypeSleep      CommandType = "Sleep"
)

// arity is the allowed argument count for each command. max < 0 means
// unbounded.
var arity = map[CommandType]struct{ min, max int }{
	CommandTypeLaunch:     {1, -1},
	CommandTypeLaunchAll:  {0, 0},
	CommandTypeFocus:      {1, 1},
	CommandTypeClose:      {0, 1},
	CommandTypeMinimize:   {0, 1},
	CommandTypeRestore:    {0, 1},
	CommandTypeRestoreAll: {0, 0},
	CommandTypeMaximize:   {0, 1},
	CommandTypeMove:       {3, 3},
	CommandTypeResize:     {3, 3},
	CommandTypeArrange:    {0, 0},
	CommandTypePin:        {1, 1},
	CommandTypeUnpin:      {1, 1},
	CommandTypeWallpaper:  {0, -1},
	CommandTypeSleep:      {1, 1},
}

// Command is one parsed script line.
type Command struct {
	Type CommandType
	Args []string
	Line int
}

func (c Command) String() string {
	if len(c.Args) == 0 {
		return string(c.Type)
	}
	return string(c.Type) + " " + strings.Join(c.Args, " ")
}

// ParseError reports a bad script line.
type ParseError struct {
	Line int
	Msg  string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.Msg)
}

// Parse reads a script. Blank lines and lines starting with # are skipped.
// Command names are case-insensitive.
func Parse(r io.Reader) ([]Command, error) {
	var cmds []Command
	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}

		fields := splitArgs(text)
		typ, ok := lookup(fields[0])
		if !ok {
			return nil, &ParseError{Line: line, Msg: fmt.Sprintf("unknown command %q", fields[0])}
		}
		args := fields[1:]
		if typ == CommandTypeWallpaper && len(args) > 0 {
			// CSS values contain spaces; keep the rest of the line whole
			args = []string{strings.TrimSpace(text[len(fields[0]):])}
		}

		n := arity[typ]
		if len(args) < n.min || (n.max >= 0 && len(args) > n.max) {
			return nil, &ParseError{Line: line, Msg: fmt.Sprintf("%s takes %s", typ, describeArity(n.min, n.max))}
		}
		if typ == CommandTypeSleep {
			if _, err := time.ParseDuration(args[0]); err != nil {
				return nil, &ParseError{Line: line, Msg: fmt.Sprintf("bad duration %q", args[0])}
			}
		}
		cmds = append(cmds, Command{Type: typ, Args: args, Line: line})
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return cmds, nil
}

func lookup(name string) (CommandType, bool) {
	for typ := range arity {
		if strings.EqualFold(string(typ), name) {
			return typ, true
		}
	}
	return "", false
}

func describeArity(lo, hi int) string {
	switch {
	case hi < 0:
		return fmt.Sprintf("at least %d argument(s)", lo)
	case lo == hi:
		return fmt.Sprintf("%d argument(s)", lo)
	default:
		return fmt.Sprintf("%d to %d arguments", lo, hi)
	}
}

// splitArgs splits on whitespace, keeping double-quoted runs together so
// window titles with spaces can be targeted.
func splitArgs(s string) []string {
	var (
		args    []string
		current strings.Builder
		quoted  bool
	)
	flush := func() {
		if current.Len() > 0 {
			args = append(args, current.String())
			current.Reset()
		}
	}
	for _, r := range s {
		switch {
		case r == '"':
			quoted = !quoted
		case unicode.IsSpace(r) && !quoted:
			flush()
		default:
			current.WriteRune(r)
		}
	}
	flush()
	return args
}
