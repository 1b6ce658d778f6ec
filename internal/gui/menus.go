package gui

import (
	"fmt"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"

	"notepad/internal/commands"
)

type binding struct {
	shortcut fyne.Shortcut
	keys     string
	// global bindings are registered on the canvas and the editor; the rest
	// are handled natively by the entry and only shown in the menu.
	global bool
}

func shortcutKey(key fyne.KeyName, modifier fyne.KeyModifier) fyne.Shortcut {
	return &desktop.CustomShortcut{KeyName: key, Modifier: fyne.KeyModifierShortcutDefault | modifier}
}

func keyBindings() map[commands.Action]binding {
	return map[commands.Action]binding{
		commands.New:       {shortcut: shortcutKey(fyne.KeyN, 0), keys: "Ctrl+N", global: true},
		commands.Open:      {shortcut: shortcutKey(fyne.KeyO, 0), keys: "Ctrl+O", global: true},
		commands.Save:      {shortcut: shortcutKey(fyne.KeyS, 0), keys: "Ctrl+S", global: true},
		commands.SaveAs:    {shortcut: shortcutKey(fyne.KeyS, fyne.KeyModifierShift), keys: "Ctrl+Shift+S", global: true},
		commands.Exit:      {shortcut: shortcutKey(fyne.KeyQ, 0), keys: "Ctrl+Q", global: true},
		commands.Undo:      {shortcut: &fyne.ShortcutUndo{}, keys: "Ctrl+Z"},
		commands.Redo:      {shortcut: &fyne.ShortcutRedo{}, keys: "Ctrl+Y"},
		commands.Cut:       {shortcut: &fyne.ShortcutCut{}, keys: "Ctrl+X"},
		commands.Copy:      {shortcut: &fyne.ShortcutCopy{}, keys: "Ctrl+C"},
		commands.Paste:     {shortcut: &fyne.ShortcutPaste{}, keys: "Ctrl+V"},
		commands.SelectAll: {shortcut: &fyne.ShortcutSelectAll{}, keys: "Ctrl+A"},
		commands.Delete:    {keys: "Del"},
	}
}

// menuLayout lists the main menu; an empty action is a separator.
var menuLayout = []struct {
	title   string
	actions []commands.Action
}{
	{"File", []commands.Action{commands.New, commands.Open, commands.Save, commands.SaveAs, "", commands.Close, "", commands.Exit}},
	{"Edit", []commands.Action{commands.Undo, commands.Redo, "", commands.Cut, commands.Copy, commands.Paste, commands.Delete, "", commands.SelectAll}},
	{"Help", []commands.Action{commands.HelpIndex, "", commands.About}},
}

func buildMainMenu(registry *commands.Registry, bindings map[commands.Action]binding) *fyne.MainMenu {
	menus := make([]*fyne.Menu, 0, len(menuLayout))
	for _, section := range menuLayout {
		items := make([]*fyne.MenuItem, 0, len(section.actions))
		for _, action := range section.actions {
			if action == "" {
				items = append(items, fyne.NewMenuItemSeparator())
				continue
			}
			if !registry.Has(action) {
				continue
			}

			item := fyne.NewMenuItem(action.Label(), registry.Trigger(action))
			if b, ok := bindings[action]; ok && b.shortcut != nil {
				item.Shortcut = b.shortcut
			}
			// Exit replaces the toolkit's own Quit item, which would skip
			// the unsaved changes prompt.
			item.IsQuit = action == commands.Exit
			items = append(items, item)
		}
		menus = append(menus, fyne.NewMenu(section.title, items...))
	}
	return fyne.NewMainMenu(menus...)
}

func helpIndex(registry *commands.Registry, bindings map[commands.Action]binding) string {
	var b strings.Builder
	b.WriteString("Keyboard shortcuts\n\n")
	for _, action := range registry.Actions() {
		binding, ok := bindings[action]
		if !ok {
			continue
		}
		fmt.Fprintf(&b, "%-14s %s\n", strings.TrimSuffix(action.Label(), "..."), binding.keys)
	}
	return strings.TrimRight(b.String(), "\n")
}
