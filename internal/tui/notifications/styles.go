package notifications

import (
	"github.com/thenoetrevino/quadro/internal/config"
	"github.com/thenoetrevino/quadro/internal/notify"
)

type style struct {
	icon       string
	title      string
	foreground string
	background string
}

func styleFor(kind notify.Kind, scheme config.ColorScheme) style {
	switch kind {
	case notify.KindSuccess:
		return style{icon: "✓", title: "Saved", foreground: scheme.SuccessFg, background: scheme.SuccessBg}
	case notify.KindError:
		return style{icon: "✕", title: "Error", foreground: scheme.ErrorFg, background: scheme.ErrorBg}
	default:
		return style{icon: "🔔", title: "Info", foreground: scheme.InfoFg, background: scheme.InfoBg}
	}
}
