package config

import (
	"fmt"
	"regexp"

	"github.com/howl-wm/howl/internal/layout"
)

// KeyBinding maps a modifier/key chord to a manager action.
type KeyBinding struct {
	Mods   []string `yaml:"mods"`
	Key    string   `yaml:"key"`
	Action string   `yaml:"action"`
	Arg    string   `yaml:"arg,omitempty"`
	Cmd    []string `yaml:"cmd,omitempty"`
}

// ButtonBinding maps a modifier/button chord to a manager action.
type ButtonBinding struct {
	Mods   []string `yaml:"mods"`
	Button uint8    `yaml:"button"`
	Action string   `yaml:"action"`
	Arg    string   `yaml:"arg,omitempty"`
	Cmd    []string `yaml:"cmd,omitempty"`
}

// Config is the effective window manager configuration.
type Config struct {
	Workspaces          int    `yaml:"workspaces"`
	Gap                 int    `yaml:"gap"`
	BorderWidth         int    `yaml:"border_width"`
	BorderFocus         string `yaml:"border_focus"`
	BorderUnfocus       string `yaml:"border_unfocus"`
	FocusFollowsPointer bool   `yaml:"focus_follows_pointer"`
	MonocleGap          bool   `yaml:"monocle_gap"`
	DefaultLayout       string `yaml:"default_layout"`

	Keys    []KeyBinding    `yaml:"keys"`
	Buttons []ButtonBinding `yaml:"buttons"`
}

var hexColourRe = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// Validate checks the scalar settings. Binding actions are resolved by
// the manager when it compiles the binding table.
func (c *Config) Validate() error {
	if c.Workspaces < 1 {
		return fmt.Errorf("workspaces must be at least 1, got %d", c.Workspaces)
	}
	if c.Gap < 0 {
		return fmt.Errorf("gap must not be negative, got %d", c.Gap)
	}
	if c.BorderWidth < 0 {
		return fmt.Errorf("border_width must not be negative, got %d", c.BorderWidth)
	}
	if !hexColourRe.MatchString(c.BorderFocus) {
		return fmt.Errorf("border_focus must be a #rrggbb colour, got %q", c.BorderFocus)
	}
	if !hexColourRe.MatchString(c.BorderUnfocus) {
		return fmt.Errorf("border_unfocus must be a #rrggbb colour, got %q", c.BorderUnfocus)
	}
	if _, err := layout.ParseMode(c.DefaultLayout); err != nil {
		return fmt.Errorf("default_layout: %w", err)
	}
	for i, kb := range c.Keys {
		if kb.Key == "" {
			return fmt.Errorf("keys[%d]: key must not be empty", i)
		}
		if kb.Action == "" {
			return fmt.Errorf("keys[%d]: action must not be empty", i)
		}
	}
	for i, bb := range c.Buttons {
		if bb.Button == 0 {
			return fmt.Errorf("buttons[%d]: button must not be zero", i)
		}
		if bb.Action == "" {
			return fmt.Errorf("buttons[%d]: action must not be empty", i)
		}
	}
	return nil
}
