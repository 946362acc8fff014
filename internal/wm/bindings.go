package wm

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/BurntSushi/xgb/xproto"

	"github.com/howl-wm/howl/internal/config"
	"github.com/howl-wm/howl/internal/layout"
)

// Action identifies a manager operation bound to a key or button.
type Action int

const (
	ActionFocusNext Action = iota
	ActionFocusPrev
	ActionMoveUp
	ActionMoveDown
	ActionWorkspace
	ActionNextWorkspace
	ActionPrevWorkspace
	ActionLastWorkspace
	ActionLayout
	ActionNextLayout
	ActionPrevLayout
	ActionLastLayout
	ActionSpawn
	ActionQuit
)

var actionNames = map[string]Action{
	"focus_next":     ActionFocusNext,
	"focus_prev":     ActionFocusPrev,
	"move_up":        ActionMoveUp,
	"move_down":      ActionMoveDown,
	"workspace":      ActionWorkspace,
	"next_workspace": ActionNextWorkspace,
	"prev_workspace": ActionPrevWorkspace,
	"last_workspace": ActionLastWorkspace,
	"layout":         ActionLayout,
	"next_layout":    ActionNextLayout,
	"prev_layout":    ActionPrevLayout,
	"last_layout":    ActionLastLayout,
	"spawn":          ActionSpawn,
	"quit":           ActionQuit,
}

// Binding is a compiled key or button binding: the chord plus the
// resolved action and its argument.
type Binding struct {
	Mods   uint16
	Key    string
	Button uint8

	Action Action
	Index  int         // workspace argument
	Mode   layout.Mode // layout argument
	Cmd    []string    // spawn argument
}

var modMasks = map[string]uint16{
	"shift":   xproto.ModMaskShift,
	"lock":    xproto.ModMaskLock,
	"control": xproto.ModMaskControl,
	"mod1":    xproto.ModMask1,
	"mod2":    xproto.ModMask2,
	"mod3":    xproto.ModMask3,
	"mod4":    xproto.ModMask4,
	"mod5":    xproto.ModMask5,
}

// ParseMods resolves modifier names to an X modifier mask.
func ParseMods(names []string) (uint16, error) {
	var mask uint16
	for _, name := range names {
		m, ok := modMasks[strings.ToLower(name)]
		if !ok {
			return 0, fmt.Errorf("unknown modifier: %q", name)
		}
		mask |= m
	}
	return mask, nil
}

// CompileKeyBindings resolves configured key bindings into the form the
// manager matches key press events against.
func CompileKeyBindings(keys []config.KeyBinding) ([]Binding, error) {
	bindings := make([]Binding, 0, len(keys))
	for i, kb := range keys {
		b, err := compile(kb.Mods, kb.Action, kb.Arg, kb.Cmd)
		if err != nil {
			return nil, fmt.Errorf("keys[%d]: %w", i, err)
		}
		b.Key = kb.Key
		bindings = append(bindings, b)
	}
	return bindings, nil
}

// CompileButtonBindings resolves configured button bindings.
func CompileButtonBindings(buttons []config.ButtonBinding) ([]Binding, error) {
	bindings := make([]Binding, 0, len(buttons))
	for i, bb := range buttons {
		b, err := compile(bb.Mods, bb.Action, bb.Arg, bb.Cmd)
		if err != nil {
			return nil, fmt.Errorf("buttons[%d]: %w", i, err)
		}
		b.Button = bb.Button
		bindings = append(bindings, b)
	}
	return bindings, nil
}

func compile(mods []string, action, arg string, cmd []string) (Binding, error) {
	mask, err := ParseMods(mods)
	if err != nil {
		return Binding{}, err
	}

	act, ok := actionNames[action]
	if !ok {
		return Binding{}, fmt.Errorf("unknown action: %q", action)
	}

	b := Binding{Mods: mask, Action: act}
	switch act {
	case ActionWorkspace:
		idx, err := strconv.Atoi(arg)
		if err != nil {
			return Binding{}, fmt.Errorf("workspace argument %q: %w", arg, err)
		}
		b.Index = idx
	case ActionLayout:
		mode, err := layout.ParseMode(arg)
		if err != nil {
			return Binding{}, err
		}
		b.Mode = mode
	case ActionSpawn:
		if len(cmd) == 0 {
			return Binding{}, fmt.Errorf("spawn binding requires a command")
		}
		b.Cmd = cmd
	}
	return b, nil
}
