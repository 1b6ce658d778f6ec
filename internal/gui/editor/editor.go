// Package editor provides the multi-line text surface of the main window.
package editor

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/widget"
)

// Editor is a multi-line entry that also answers application shortcuts.
// A focused entry receives every key shortcut before the canvas does, so
// shortcuts such as Ctrl+N are registered here as well.
type Editor struct {
	widget.Entry

	shortcuts map[string]func()
}

func New(monospace, wrap bool) *Editor {
	e := &Editor{shortcuts: make(map[string]func())}
	e.MultiLine = true
	e.TextStyle = fyne.TextStyle{Monospace: monospace}
	e.Wrapping = fyne.TextWrapOff
	if wrap {
		e.Wrapping = fyne.TextWrapWord
	}
	e.ExtendBaseWidget(e)
	return e
}

func (e *Editor) AddShortcut(shortcut fyne.Shortcut, handler func()) {
	e.shortcuts[shortcut.ShortcutName()] = handler
}

func (e *Editor) TypedShortcut(shortcut fyne.Shortcut) {
	if handler, ok := e.shortcuts[shortcut.ShortcutName()]; ok {
		handler()
		return
	}
	e.Entry.TypedShortcut(shortcut)
}

// DeleteForward removes the selection, or the character after the cursor
// when nothing is selected.
func (e *Editor) DeleteForward() {
	e.TypedKey(&fyne.KeyEvent{Name: fyne.KeyDelete})
}
