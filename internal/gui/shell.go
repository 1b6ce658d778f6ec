// Package gui is the Fyne front end of the editor: the main window, its
// menus, toolbar and status bar, and the dialogs the document session uses.
package gui

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"

	"notepad/internal/commands"
	"notepad/internal/document"
	"notepad/internal/gui/components"
	"notepad/internal/gui/editor"
	"notepad/internal/logger"
)

const component = "Shell"

type Options struct {
	AppName   string
	Version   string
	Width     float32
	Height    float32
	Monospace bool
	Wrap      bool
}

// Shell connects the window to a document session. Every buffer change in
// the editor is reported to the session and every session change is shown
// in the editor, the title and the status bar.
type Shell struct {
	window   fyne.Window
	session  *document.Session
	dialogs  *Dialogs
	commands *commands.Registry
	bindings map[commands.Action]binding
	logger   logger.Logger
	opts     Options

	editor  *editor.Editor
	toolbar *components.Toolbar
	status  *components.StatusBar

	quit func()
}

func NewShell(window fyne.Window, session *document.Session, dialogs *Dialogs, opts Options, log logger.Logger) *Shell {
	if log == nil {
		log = logger.NoOpLogger{}
	}

	s := &Shell{
		window:   window,
		session:  session,
		dialogs:  dialogs,
		commands: commands.NewRegistry(log),
		bindings: keyBindings(),
		logger:   log,
		opts:     opts,
		editor:   editor.New(opts.Monospace, opts.Wrap),
		status:   components.NewStatusBar(),
		quit:     window.Close,
	}

	s.registerCommands()
	s.toolbar = s.buildToolbar()
	s.setupEditor()
	s.setupWindow()
	session.OnChange(s.refresh)

	s.render(session.State())

	log.Info(component, "shell initialized", map[string]interface{}{
		"actions": len(s.commands.Actions()),
	})
	return s
}

// SetQuitHandler replaces what runs once closing the window is allowed.
func (s *Shell) SetQuitHandler(quit func()) {
	s.quit = quit
}

// RequestClose closes the window unless the user keeps unsaved changes open.
func (s *Shell) RequestClose() {
	s.session.Close(func() {
		s.logger.Info(component, "closing window", nil)
		if s.quit != nil {
			s.quit()
		}
	})
}

func (s *Shell) Commands() *commands.Registry {
	return s.commands
}

func (s *Shell) Editor() *editor.Editor {
	return s.editor
}

func (s *Shell) StatusBar() *components.StatusBar {
	return s.status
}

func (s *Shell) registerCommands() {
	r := s.commands

	r.Register(commands.New, s.session.New)
	r.Register(commands.Open, s.session.Open)
	r.Register(commands.Save, s.session.Save)
	r.Register(commands.SaveAs, s.session.SaveAs)
	r.Register(commands.Close, s.RequestClose)
	r.Register(commands.Exit, s.RequestClose)

	r.Register(commands.Undo, s.editAction(&fyne.ShortcutUndo{}))
	r.Register(commands.Redo, s.editAction(&fyne.ShortcutRedo{}))
	r.Register(commands.Cut, func() {
		s.editAction(&fyne.ShortcutCut{Clipboard: s.clipboard()})()
	})
	r.Register(commands.Copy, func() {
		s.editAction(&fyne.ShortcutCopy{Clipboard: s.clipboard()})()
	})
	r.Register(commands.Paste, func() {
		s.editAction(&fyne.ShortcutPaste{Clipboard: s.clipboard()})()
	})
	r.Register(commands.Delete, func() {
		s.editor.DeleteForward()
		s.focusEditor()
	})
	r.Register(commands.SelectAll, s.editAction(&fyne.ShortcutSelectAll{}))

	r.Register(commands.HelpIndex, func() {
		s.dialogs.ShowInformation("Help Index", helpIndex(s.commands, s.bindings))
	})
	r.Register(commands.About, func() {
		s.dialogs.ShowInformation("About "+s.opts.AppName,
			fmt.Sprintf("%s %s\nA plain text editor.", s.opts.AppName, s.opts.Version))
	})
}

func (s *Shell) clipboard() fyne.Clipboard {
	return fyne.CurrentApp().Clipboard()
}

func (s *Shell) editAction(shortcut fyne.Shortcut) func() {
	return func() {
		s.editor.TypedShortcut(shortcut)
		s.focusEditor()
	}
}

func (s *Shell) buildToolbar() *components.Toolbar {
	button := func(icon fyne.Resource, action commands.Action) *components.ToolbarButton {
		return &components.ToolbarButton{Icon: icon, Handler: s.commands.Trigger(action)}
	}

	return components.NewToolbar(
		button(theme.DocumentCreateIcon(), commands.New),
		button(theme.FolderOpenIcon(), commands.Open),
		button(theme.DocumentSaveIcon(), commands.Save),
		nil,
		button(theme.ContentCutIcon(), commands.Cut),
		button(theme.ContentCopyIcon(), commands.Copy),
		button(theme.ContentPasteIcon(), commands.Paste),
		nil,
		button(theme.ContentUndoIcon(), commands.Undo),
		button(theme.ContentRedoIcon(), commands.Redo),
		nil,
		button(theme.HelpIcon(), commands.HelpIndex),
	)
}

func (s *Shell) setupEditor() {
	s.editor.OnChanged = s.session.Edit
	s.editor.OnCursorChanged = func() {
		s.status.SetCursor(s.editor.CursorRow, s.editor.CursorColumn)
	}

	for action, b := range s.bindings {
		if !b.global {
			continue
		}
		s.editor.AddShortcut(b.shortcut, s.commands.Trigger(action))
	}
}

func (s *Shell) setupWindow() {
	for action, b := range s.bindings {
		if !b.global {
			continue
		}
		trigger := s.commands.Trigger(action)
		s.window.Canvas().AddShortcut(b.shortcut, func(fyne.Shortcut) { trigger() })
	}

	s.window.SetMainMenu(buildMainMenu(s.commands, s.bindings))
	s.window.SetContent(container.NewBorder(
		s.toolbar.GetContainer(),
		s.status.GetContainer(),
		nil, nil,
		s.editor,
	))
	s.window.SetCloseIntercept(s.RequestClose)
	s.window.Resize(fyne.NewSize(s.opts.Width, s.opts.Height))
	s.focusEditor()
}

func (s *Shell) focusEditor() {
	s.window.Canvas().Focus(s.editor)
}

func (s *Shell) refresh(event document.Event) {
	s.render(event.State)

	if event.Err != nil {
		s.status.SetMessage(event.Err.Error())
		return
	}

	name := event.State.Name()
	switch event.Op {
	case document.OpNew:
		s.status.SetMessage("New document")
	case document.OpOpen:
		s.status.SetMessage("Opened " + name)
	case document.OpSave, document.OpSaveAs:
		s.status.SetMessage("Saved " + name)
	}
}

// render shows state in the window. Setting the editor text echoes back
// through OnChanged as an unchanged Edit, which the session ignores.
func (s *Shell) render(state document.State) {
	if s.editor.Text != state.Text {
		s.editor.SetText(state.Text)
	}
	s.window.SetTitle(state.Title(s.opts.AppName))
	s.status.SetModified(state.Dirty)
}
