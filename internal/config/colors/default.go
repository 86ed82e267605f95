package colors

// Default returns the default color scheme (purple theme)
func Default() *ColorScheme {
	return &ColorScheme{
		Preset: "default",

		// Primary
		Accent: "#874BFD",

		// Columns
		ToStart:    "#5F87D7",
		InProgress: "#FFD700",
		Late:       "#FF5F5F",
		Done:       "#5FD75F",

		// UI elements
		ColumnBorder:   "#5F87D7",
		CardBorder:     "#585858",
		SelectedBorder: "#D75FD7",
		DragBorder:     "#FFAF00",
		Pending:        "#FFAF00",

		// Text
		Title:  "#D75FD7",
		Subtle: "#585858",
		Normal: "#D0D0D0",

		// Notifications
		InfoFg:    "#00AFFF",
		InfoBg:    "#00005F",
		SuccessFg: "#5FD75F",
		SuccessBg: "#005F00",
		ErrorFg:   "#FF0000",
		ErrorBg:   "#5F0000",
	}
}
