package config

// KeyMappings defines all configurable key bindings
type KeyMappings struct {
	// Navigation
	PrevColumn  string `yaml:"prev_column" toml:"prev_column"`
	NextColumn  string `yaml:"next_column" toml:"next_column"`
	PrevProject string `yaml:"prev_project" toml:"prev_project"`
	NextProject string `yaml:"next_project" toml:"next_project"`

	// Status changes
	ChangeStatus string `yaml:"change_status" toml:"change_status"`
	Grab         string `yaml:"grab" toml:"grab"`
	Drop         string `yaml:"drop" toml:"drop"`
	CancelDrag   string `yaml:"cancel_drag" toml:"cancel_drag"`

	// Other
	Reload              string `yaml:"reload" toml:"reload"`
	DismissNotification string `yaml:"dismiss_notification" toml:"dismiss_notification"`
	ShowHelp            string `yaml:"show_help" toml:"show_help"`
	Quit                string `yaml:"quit" toml:"quit"`
}

// DefaultKeyMappings returns the default key mappings
func DefaultKeyMappings() KeyMappings {
	return KeyMappings{
		PrevColumn:  "h",
		NextColumn:  "l",
		PrevProject: "k",
		NextProject: "j",

		ChangeStatus: "s",
		Grab:         "space",
		Drop:         "enter",
		CancelDrag:   "esc",

		Reload:              "r",
		DismissNotification: "x",
		ShowHelp:            "?",
		Quit:                "q",
	}
}

// applyDefaults fills in missing key mappings with defaults
func (k *KeyMappings) applyDefaults() {
	defaults := DefaultKeyMappings()

	fill := func(dst *string, def string) {
		if *dst == "" {
			*dst = def
		}
	}
	fill(&k.PrevColumn, defaults.PrevColumn)
	fill(&k.NextColumn, defaults.NextColumn)
	fill(&k.PrevProject, defaults.PrevProject)
	fill(&k.NextProject, defaults.NextProject)
	fill(&k.ChangeStatus, defaults.ChangeStatus)
	fill(&k.Grab, defaults.Grab)
	fill(&k.Drop, defaults.Drop)
	fill(&k.CancelDrag, defaults.CancelDrag)
	fill(&k.Reload, defaults.Reload)
	fill(&k.DismissNotification, defaults.DismissNotification)
	fill(&k.ShowHelp, defaults.ShowHelp)
	fill(&k.Quit, defaults.Quit)
}
