package gui

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/test"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"notepad/internal/document"
	"notepad/internal/logger"
	textstore "notepad/internal/storage"
)

type uriReader struct {
	uri    fyne.URI
	closed bool
}

func (r *uriReader) Read([]byte) (int, error) { return 0, io.EOF }
func (r *uriReader) Close() error             { r.closed = true; return nil }
func (r *uriReader) URI() fyne.URI            { return r.uri }

type uriWriter struct {
	uri    fyne.URI
	closed bool
}

func (w *uriWriter) Write(p []byte) (int, error) { return len(p), nil }
func (w *uriWriter) Close() error                { w.closed = true; return nil }
func (w *uriWriter) URI() fyne.URI               { return w.uri }

func newTestDialogs(t *testing.T) *Dialogs {
	t.Helper()
	test.NewTempApp(t)
	window := test.NewWindow(nil)
	t.Cleanup(window.Close)
	return NewDialogs(window, ".txt", nil)
}

type saveAnswer struct {
	path string
	err  error
}

func TestConfirmUnsavedReplies(t *testing.T) {
	cases := []struct {
		button int
		want   document.Choice
	}{
		{0, document.ChoiceSave},
		{1, document.ChoiceDiscard},
		{2, document.ChoiceCancel},
	}

	for _, tc := range cases {
		t.Run(tc.want.String(), func(t *testing.T) {
			test.NewTempApp(t)
			window := test.NewWindow(nil)
			defer window.Close()

			d := NewDialogs(window, ".txt", nil)
			var replies []document.Choice
			confirm, buttons := d.newConfirmUnsaved("a.txt", func(c document.Choice) {
				replies = append(replies, c)
			})
			require.Len(t, buttons, 3)
			confirm.Show()

			test.Tap(buttons[tc.button])
			assert.Equal(t, []document.Choice{tc.want}, replies, "closing after an answer must not reply again")
		})
	}
}

func TestConfirmUnsavedButtonLabels(t *testing.T) {
	test.NewTempApp(t)
	window := test.NewWindow(nil)
	defer window.Close()

	_, buttons := NewDialogs(window, ".txt", nil).newConfirmUnsaved("a.txt", func(document.Choice) {})

	assert.Equal(t, "Save", buttons[0].Text)
	assert.Equal(t, "Don't Save", buttons[1].Text)
	assert.Equal(t, "Cancel", buttons[2].Text)
}

func TestSuggestedName(t *testing.T) {
	d := &Dialogs{defaultExtension: ".txt"}

	assert.Equal(t, "Untitled.txt", d.suggestedName(""))
	assert.Equal(t, "notes.md", d.suggestedName("notes.md"))
}

func TestOpenReply(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a.txt")

	t.Run("selected file", func(t *testing.T) {
		d := newTestDialogs(t)
		var replies []string
		reader := &uriReader{uri: storage.NewFileURI(path)}

		d.openReply(func(p string) { replies = append(replies, p) })(reader, nil)

		assert.Equal(t, []string{path}, replies)
		assert.True(t, reader.closed)
	})

	t.Run("dismissed", func(t *testing.T) {
		d := newTestDialogs(t)
		var replies []string

		d.openReply(func(p string) { replies = append(replies, p) })(nil, nil)

		assert.Equal(t, []string{""}, replies)
	})

	t.Run("toolkit error", func(t *testing.T) {
		d := newTestDialogs(t)
		var replies []string

		d.openReply(func(p string) { replies = append(replies, p) })(nil, errors.New("no permission"))

		assert.Equal(t, []string{""}, replies)
	})
}

func TestSaveReply(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a.txt")

	t.Run("selected file", func(t *testing.T) {
		d := newTestDialogs(t)
		var replies []saveAnswer
		writer := &uriWriter{uri: storage.NewFileURI(path)}

		d.saveReply(func(p string, err error) { replies = append(replies, saveAnswer{p, err}) })(writer, nil)

		assert.Equal(t, []saveAnswer{{path: path}}, replies)
		assert.True(t, writer.closed)
	})

	t.Run("dismissed", func(t *testing.T) {
		d := newTestDialogs(t)
		var replies []saveAnswer

		d.saveReply(func(p string, err error) { replies = append(replies, saveAnswer{p, err}) })(nil, nil)

		assert.Equal(t, []saveAnswer{{}}, replies)
	})

	t.Run("target that cannot be created", func(t *testing.T) {
		d := newTestDialogs(t)
		var replies []saveAnswer
		createErr := &os.PathError{Op: "open", Path: path, Err: os.ErrPermission}

		d.saveReply(func(p string, err error) { replies = append(replies, saveAnswer{p, err}) })(nil, createErr)

		require.Len(t, replies, 1)
		assert.Equal(t, path, replies[0].path)
		assert.ErrorIs(t, replies[0].err, os.ErrPermission)
	})

	t.Run("error without a target", func(t *testing.T) {
		d := newTestDialogs(t)
		var replies []saveAnswer

		d.saveReply(func(p string, err error) { replies = append(replies, saveAnswer{p, err}) })(nil, errors.New("storage unavailable"))

		require.Len(t, replies, 1)
		assert.Equal(t, "", replies[0].path)
		assert.EqualError(t, replies[0].err, "storage unavailable")
	})
}

// refusingDialogs answers every save prompt as if the toolkit could not
// create the chosen file.
type refusingDialogs struct {
	*Dialogs
	target string
	shown  []error
}

func (r *refusingDialogs) ChooseSavePath(dir, name string, reply func(string, error)) {
	r.saveReply(reply)(nil, &os.PathError{Op: "open", Path: r.target, Err: os.ErrPermission})
}

func (r *refusingDialogs) ShowError(err error) {
	r.shown = append(r.shown, err)
}

func TestRefusedSaveTargetFailsTheSave(t *testing.T) {
	target := filepath.Join(t.TempDir(), "locked.txt")
	prompter := &refusingDialogs{Dialogs: newTestDialogs(t), target: target}
	session := document.NewSession(textstore.NewTextStore(nil), prompter, logger.NoOpLogger{})
	session.Edit("draft")

	session.SaveAs()

	assert.Equal(t, document.State{Path: target, Text: "draft", Dirty: true}, session.State())
	assert.Equal(t, "", session.Pending(), "the prompt replied, so later operations run")
	require.Len(t, prompter.shown, 1)
	var writeErr *document.WriteError
	require.ErrorAs(t, prompter.shown[0], &writeErr)
	assert.Equal(t, target, writeErr.Path)
}

func TestSetOpenFilter(t *testing.T) {
	d := newTestDialogs(t)
	assert.Nil(t, d.openFilter)

	d.SetOpenFilter(".txt")
	require.NotNil(t, d.openFilter)
	assert.True(t, d.openFilter.Matches(storage.NewFileURI("/tmp/notes.txt")))
	assert.False(t, d.openFilter.Matches(storage.NewFileURI("/tmp/photo.png")))

	d.SetOpenFilter()
	assert.Nil(t, d.openFilter)
}
