package colors

// Dragon returns the Kanagawa Dragon color scheme (dark theme with warm earth tones)
func Dragon() *ColorScheme {
	return &ColorScheme{
		Preset: "dragon",

		Accent: "#8992A7", // dragonViolet

		ToStart:    "#8BA4B0", // dragonBlue2
		InProgress: "#C4B28A", // dragonYellow
		Late:       "#C4746E", // dragonRed
		Done:       "#87A987", // dragonGreen2

		ColumnBorder:   "#625E5A", // dragonBlack6
		CardBorder:     "#393836", // dragonBlack4
		SelectedBorder: "#8EA4A2", // dragonAqua
		DragBorder:     "#FF9E3B", // roninYellow
		Pending:        "#FF9E3B",

		Title:  "#8BA4B0",
		Subtle: "#737C73", // dragonAsh
		Normal: "#C5C9C5", // dragonWhite

		InfoFg:    "#658594", // dragonBlue
		InfoBg:    "#252535", // winterBlue
		SuccessFg: "#87A987",
		SuccessBg: "#2B3328", // winterGreen
		ErrorFg:   "#E82424", // samuraiRed
		ErrorBg:   "#43242B", // winterRed
	}
}
