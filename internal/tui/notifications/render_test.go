package notifications

import (
	"strings"
	"testing"

	"charm.land/lipgloss/v2"
	"github.com/stretchr/testify/assert"

	"github.com/thenoetrevino/quadro/internal/config"
	"github.com/thenoetrevino/quadro/internal/notify"
)

func TestRender_ShowsKindAndMessage(t *testing.T) {
	scheme := config.DefaultColorScheme()

	tests := []struct {
		kind  notify.Kind
		title string
	}{
		{notify.KindSuccess, "Saved"},
		{notify.KindError, "Error"},
		{notify.KindInfo, "Info"},
	}
	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			out := Render(notify.Notification{Kind: tt.kind, Message: "Board reloaded"}, scheme)
			assert.Contains(t, out, tt.title)
			assert.Contains(t, out, "Board reloaded")
		})
	}
}

func TestRender_WrapsLongMessages(t *testing.T) {
	msg := strings.Repeat("word ", 40)
	out := Render(notify.Notification{Kind: notify.KindError, Message: msg}, config.DefaultColorScheme())

	// border and padding add four columns
	assert.LessOrEqual(t, lipgloss.Width(out), MaxWidth+4)
}

func TestRenderStack_NewestFirst(t *testing.T) {
	scheme := config.DefaultColorScheme()
	assert.Empty(t, RenderStack(nil, scheme))

	out := RenderStack([]notify.Notification{
		{Kind: notify.KindInfo, Message: "first"},
		{Kind: notify.KindInfo, Message: "second"},
	}, scheme)
	assert.Less(t, strings.Index(out, "second"), strings.Index(out, "first"))
}
