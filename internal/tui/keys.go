package tui

import (
	"charm.land/bubbles/v2/key"

	"github.com/thenoetrevino/quadro/internal/config"
)

// KeyMap holds the board's key bindings. It implements help.KeyMap.
type KeyMap struct {
	PrevColumn  key.Binding
	NextColumn  key.Binding
	PrevProject key.Binding
	NextProject key.Binding

	ChangeStatus key.Binding
	Grab         key.Binding
	Drop         key.Binding
	Cancel       key.Binding

	Reload  key.Binding
	Dismiss key.Binding
	Help    key.Binding
	Quit    key.Binding
}

// NewKeyMap builds bindings from the configured mappings. Arrow keys always
// work alongside the configured navigation keys.
func NewKeyMap(km config.KeyMappings) KeyMap {
	return KeyMap{
		PrevColumn:  key.NewBinding(key.WithKeys(km.PrevColumn, "left"), key.WithHelp(km.PrevColumn+"/←", "prev column")),
		NextColumn:  key.NewBinding(key.WithKeys(km.NextColumn, "right"), key.WithHelp(km.NextColumn+"/→", "next column")),
		PrevProject: key.NewBinding(key.WithKeys(km.PrevProject, "up"), key.WithHelp(km.PrevProject+"/↑", "up")),
		NextProject: key.NewBinding(key.WithKeys(km.NextProject, "down"), key.WithHelp(km.NextProject+"/↓", "down")),

		ChangeStatus: key.NewBinding(key.WithKeys(km.ChangeStatus), key.WithHelp(km.ChangeStatus, "change status")),
		Grab:         key.NewBinding(key.WithKeys(km.Grab), key.WithHelp(km.Grab, "grab card")),
		Drop:         key.NewBinding(key.WithKeys(km.Drop), key.WithHelp(km.Drop, "drop / confirm")),
		Cancel:       key.NewBinding(key.WithKeys(km.CancelDrag), key.WithHelp(km.CancelDrag, "cancel")),

		Reload:  key.NewBinding(key.WithKeys(km.Reload), key.WithHelp(km.Reload, "reload")),
		Dismiss: key.NewBinding(key.WithKeys(km.DismissNotification), key.WithHelp(km.DismissNotification, "dismiss")),
		Help:    key.NewBinding(key.WithKeys(km.ShowHelp), key.WithHelp(km.ShowHelp, "help")),
		Quit:    key.NewBinding(key.WithKeys(km.Quit, "ctrl+c"), key.WithHelp(km.Quit, "quit")),
	}
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Grab, k.ChangeStatus, k.Reload, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.PrevColumn, k.NextColumn, k.PrevProject, k.NextProject},
		{k.ChangeStatus, k.Grab, k.Drop, k.Cancel},
		{k.Reload, k.Dismiss, k.Help, k.Quit},
	}
}

// dragHelp is shown in the footer while a card is being dragged.
func (k KeyMap) dragHelp() []key.Binding {
	return []key.Binding{k.PrevColumn, k.NextColumn, k.PrevProject, k.NextProject, k.Drop, k.Cancel}
}

// menuHelp is shown in the footer while the status menu is open.
func (k KeyMap) menuHelp() []key.Binding {
	return []key.Binding{k.PrevProject, k.NextProject, k.Drop, k.Cancel}
}
