package gui

import (
	"fmt"
	"io/fs"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"
	"github.com/pkg/errors"

	"notepad/internal/document"
	"notepad/internal/logger"
)

// Dialogs shows the modal prompts the document session needs. Every prompt
// replies exactly once, on the UI goroutine.
type Dialogs struct {
	window           fyne.Window
	logger           logger.Logger
	defaultExtension string
	openFilter       storage.FileFilter
}

func NewDialogs(window fyne.Window, defaultExtension string, log logger.Logger) *Dialogs {
	if log == nil {
		log = logger.NoOpLogger{}
	}
	return &Dialogs{
		window:           window,
		logger:           log,
		defaultExtension: defaultExtension,
	}
}

func (d *Dialogs) ConfirmUnsaved(name string, reply func(document.Choice)) {
	confirm, _ := d.newConfirmUnsaved(name, reply)
	confirm.Show()
}

// newConfirmUnsaved builds the unsaved-changes prompt with its buttons in
// display order: Save, Don't Save, Cancel.
func (d *Dialogs) newConfirmUnsaved(name string, reply func(document.Choice)) (*dialog.CustomDialog, []*widget.Button) {
	message := widget.NewLabel(fmt.Sprintf("Do you want to save changes to %s?", name))
	confirm := dialog.NewCustomWithoutButtons("Notepad", message, d.window)

	answered := false
	answer := func(choice document.Choice) func() {
		return func() {
			if answered {
				return
			}
			answered = true
			confirm.Hide()
			reply(choice)
		}
	}

	save := widget.NewButton("Save", answer(document.ChoiceSave))
	save.Importance = widget.HighImportance
	discard := widget.NewButton("Don't Save", answer(document.ChoiceDiscard))
	cancel := widget.NewButton("Cancel", answer(document.ChoiceCancel))

	confirm.SetButtons([]fyne.CanvasObject{save, discard, cancel})
	confirm.SetOnClosed(answer(document.ChoiceCancel))

	return confirm, []*widget.Button{save, discard, cancel}
}

func (d *Dialogs) ChooseOpenPath(dir string, reply func(string)) {
	open := dialog.NewFileOpen(d.openReply(reply), d.window)
	if d.openFilter != nil {
		open.SetFilter(d.openFilter)
	}
	d.setLocation(open, dir)
	open.Show()
}

// SetOpenFilter limits the open dialog to files with the given extensions.
// No extensions shows every file.
func (d *Dialogs) SetOpenFilter(extensions ...string) {
	if len(extensions) == 0 {
		d.openFilter = nil
		return
	}
	d.openFilter = storage.NewExtensionFileFilter(extensions)
}

func (d *Dialogs) openReply(reply func(string)) func(fyne.URIReadCloser, error) {
	return func(reader fyne.URIReadCloser, err error) {
		if err != nil {
			d.ShowError(err)
			reply("")
			return
		}
		if reader == nil {
			reply("")
			return
		}

		path := reader.URI().Path()
		_ = reader.Close()
		reply(path)
	}
}

// ChooseSavePath asks for a save target. The toolkit creates (and truncates)
// the chosen file before replying; the session then rewrites it in full.
func (d *Dialogs) ChooseSavePath(dir, name string, reply func(string, error)) {
	save := dialog.NewFileSave(d.saveReply(reply), d.window)
	save.SetFileName(d.suggestedName(name))
	d.setLocation(save, dir)
	save.Show()
}

// saveReply hands a target the toolkit failed to create back to the session,
// which reports it as a failed save of that target.
func (d *Dialogs) saveReply(reply func(string, error)) func(fyne.URIWriteCloser, error) {
	return func(writer fyne.URIWriteCloser, err error) {
		if err != nil {
			var pathErr *fs.PathError
			target := ""
			if errors.As(err, &pathErr) {
				target = pathErr.Path
			}
			d.logger.Warning("Dialogs", "save target unavailable", map[string]interface{}{
				"path":  target,
				"error": err.Error(),
			})
			reply(target, err)
			return
		}
		if writer == nil {
			reply("", nil)
			return
		}

		path := writer.URI().Path()
		_ = writer.Close()
		reply(path, nil)
	}
}

func (d *Dialogs) ShowError(err error) {
	dialog.ShowError(err, d.window)
}

func (d *Dialogs) ShowInformation(title, message string) {
	dialog.ShowInformation(title, message, d.window)
}

func (d *Dialogs) suggestedName(name string) string {
	if name != "" {
		return name
	}
	return "Untitled" + d.defaultExtension
}

// setLocation starts the file dialog in dir. Directories that cannot be
// listed are skipped and the toolkit's default location is used.
func (d *Dialogs) setLocation(fd *dialog.FileDialog, dir string) {
	if dir == "" {
		return
	}

	location, err := storage.ListerForURI(storage.NewFileURI(dir))
	if err != nil {
		d.logger.Debug("Dialogs", "dialog location unavailable", map[string]interface{}{
			"dir":   dir,
			"error": err.Error(),
		})
		return
	}
	fd.SetLocation(location)
}
