package colors

// Monochrome returns a black and white color scheme
func Monochrome() *ColorScheme {
	return &ColorScheme{
		Preset: "monochrome",

		Accent: "#FFFFFF",

		ToStart:    "#FFFFFF",
		InProgress: "#FFFFFF",
		Late:       "#FFFFFF",
		Done:       "#FFFFFF",

		ColumnBorder:   "#FFFFFF",
		CardBorder:     "#585858",
		SelectedBorder: "#FFFFFF",
		DragBorder:     "#D0D0D0",
		Pending:        "#D0D0D0",

		Title:  "#FFFFFF",
		Subtle: "#585858",
		Normal: "#D0D0D0",

		InfoFg:    "#FFFFFF",
		InfoBg:    "#1C1C1C",
		SuccessFg: "#FFFFFF",
		SuccessBg: "#3A3A3A",
		ErrorFg:   "#FFFFFF",
		ErrorBg:   "#585858",
	}
}
