package components

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/widget"
)

// ToolbarButton is one icon in the toolbar. A nil *ToolbarButton in the list
// passed to NewToolbar becomes a separator.
type ToolbarButton struct {
	Icon    fyne.Resource
	Handler func()
}

type Toolbar struct {
	toolbar *widget.Toolbar
	actions []*widget.ToolbarAction
}

func NewToolbar(buttons ...*ToolbarButton) *Toolbar {
	t := &Toolbar{}

	items := make([]widget.ToolbarItem, 0, len(buttons))
	for _, button := range buttons {
		if button == nil {
			items = append(items, widget.NewToolbarSeparator())
			continue
		}
		action := widget.NewToolbarAction(button.Icon, t.wrap(button.Handler))
		t.actions = append(t.actions, action)
		items = append(items, action)
	}

	t.toolbar = widget.NewToolbar(items...)
	return t
}

func (t *Toolbar) GetContainer() fyne.CanvasObject {
	return t.toolbar
}

// Actions returns the buttons in display order, separators excluded.
func (t *Toolbar) Actions() []*widget.ToolbarAction {
	return t.actions
}

func (t *Toolbar) wrap(handler func()) func() {
	return func() {
		if handler != nil {
			handler()
		}
	}
}
