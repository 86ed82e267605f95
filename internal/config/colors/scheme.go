package colors

// ColorScheme defines all configurable color values
type ColorScheme struct {
	// Preset name (e.g., "default", "monochrome", "dragon")
	Preset string `yaml:"preset" toml:"preset"`

	// Primary accent color (used for selections, titles, highlights)
	Accent string `yaml:"accent" toml:"accent"`

	// One header color per status column
	ToStart    string `yaml:"to_start" toml:"to_start"`
	InProgress string `yaml:"in_progress" toml:"in_progress"`
	Late       string `yaml:"late" toml:"late"`
	Done       string `yaml:"done" toml:"done"`

	// UI element colors
	ColumnBorder   string `yaml:"column_border" toml:"column_border"`
	CardBorder     string `yaml:"card_border" toml:"card_border"`
	SelectedBorder string `yaml:"selected_border" toml:"selected_border"`
	DragBorder     string `yaml:"drag_border" toml:"drag_border"`
	Pending        string `yaml:"pending" toml:"pending"`

	// Text colors
	Title  string `yaml:"title" toml:"title"`
	Subtle string `yaml:"subtle" toml:"subtle"` // Muted/placeholder text
	Normal string `yaml:"normal" toml:"normal"`

	// Notification colors (foreground/background pairs)
	InfoFg    string `yaml:"info_fg" toml:"info_fg"`
	InfoBg    string `yaml:"info_bg" toml:"info_bg"`
	SuccessFg string `yaml:"success_fg" toml:"success_fg"`
	SuccessBg string `yaml:"success_bg" toml:"success_bg"`
	ErrorFg   string `yaml:"error_fg" toml:"error_fg"`
	ErrorBg   string `yaml:"error_bg" toml:"error_bg"`
}

// GetPreset returns a preset color scheme by name
func GetPreset(name string) *ColorScheme {
	switch name {
	case "monochrome":
		return Monochrome()
	case "dragon":
		return Dragon()
	default:
		return Default()
	}
}

// fields lists every color slot so merging and defaulting stay in sync with the struct.
func (c *ColorScheme) fields() []*string {
	return []*string{
		&c.Accent,
		&c.ToStart, &c.InProgress, &c.Late, &c.Done,
		&c.ColumnBorder, &c.CardBorder, &c.SelectedBorder, &c.DragBorder, &c.Pending,
		&c.Title, &c.Subtle, &c.Normal,
		&c.InfoFg, &c.InfoBg, &c.SuccessFg, &c.SuccessBg, &c.ErrorFg, &c.ErrorBg,
	}
}

// ApplyDefaults fills in missing color values using the preset as base
func (c *ColorScheme) ApplyDefaults() {
	if c.Preset == "" {
		c.Preset = "default"
	}
	preset := GetPreset(c.Preset).fields()
	for i, f := range c.fields() {
		if *f == "" {
			*f = *preset[i]
		}
	}
}

// MergeFrom overrides colors with every non-empty value of other
func (c *ColorScheme) MergeFrom(other ColorScheme) {
	if other.Preset != "" {
		c.Preset = other.Preset
	}
	src := other.fields()
	for i, f := range c.fields() {
		if *src[i] != "" {
			*f = *src[i]
		}
	}
}
