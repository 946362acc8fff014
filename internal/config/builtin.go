package config

import "strconv"

// Default returns the builtin configuration, used as the base that any
// user file is merged over.
func Default() *Config {
	return &Config{
		Workspaces:          5,
		Gap:                 4,
		BorderWidth:         2,
		BorderFocus:         "#70898f",
		BorderUnfocus:       "#555555",
		FocusFollowsPointer: true,
		MonocleGap:          false,
		DefaultLayout:       "vstack",
		Keys:                defaultKeys(),
	}
}

func defaultKeys() []KeyBinding {
	keys := []KeyBinding{
		{Mods: []string{"mod4"}, Key: "Return", Action: "spawn", Cmd: []string{"urxvt"}},
		{Mods: []string{"mod4"}, Key: "d", Action: "spawn", Cmd: []string{"dmenu_run"}},

		{Mods: []string{"mod4"}, Key: "j", Action: "focus_next"},
		{Mods: []string{"mod4"}, Key: "k", Action: "focus_prev"},
		{Mods: []string{"mod4", "shift"}, Key: "j", Action: "move_down"},
		{Mods: []string{"mod4", "shift"}, Key: "k", Action: "move_up"},

		{Mods: []string{"mod4"}, Key: "m", Action: "layout", Arg: "monocle"},
		{Mods: []string{"mod4"}, Key: "g", Action: "layout", Arg: "grid"},
		{Mods: []string{"mod4"}, Key: "h", Action: "layout", Arg: "hstack"},
		{Mods: []string{"mod4"}, Key: "v", Action: "layout", Arg: "vstack"},
		{Mods: []string{"mod4"}, Key: "f", Action: "layout", Arg: "fibonacci"},
		{Mods: []string{"mod4"}, Key: "space", Action: "next_layout"},
		{Mods: []string{"mod4", "shift"}, Key: "space", Action: "prev_layout"},
		{Mods: []string{"mod4"}, Key: "Tab", Action: "last_layout"},

		{Mods: []string{"mod4"}, Key: "bracketright", Action: "next_workspace"},
		{Mods: []string{"mod4"}, Key: "bracketleft", Action: "prev_workspace"},
		{Mods: []string{"mod4"}, Key: "grave", Action: "last_workspace"},

		{Mods: []string{"mod4", "shift"}, Key: "q", Action: "quit"},
	}

	// One binding per workspace slot, mod4+1 .. mod4+5.
	for i, key := range []string{"1", "2", "3", "4", "5"} {
		keys = append(keys, KeyBinding{
			Mods:   []string{"mod4"},
			Key:    key,
			Action: "workspace",
			Arg:    strconv.Itoa(i),
		})
	}
	return keys
}
