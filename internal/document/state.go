package document

import "path/filepath"

const untitled = "Untitled"

// Op identifies the operation that produced an Event
type Op string

const (
	OpNew    Op = "new"
	OpOpen   Op = "open"
	OpSave   Op = "save"
	OpSaveAs Op = "save_as"
	OpEdit   Op = "edit"
)

// State is a snapshot of the session
type State struct {
	Path  string
	Text  string
	Dirty bool
}

// Untitled reports whether the document has no backing file yet.
func (s State) Untitled() bool {
	return s.Path == ""
}

func (s State) Name() string {
	if s.Path == "" {
		return untitled
	}
	return filepath.Base(s.Path)
}

// Title renders the window title: "name - app", or just "app" for an
// untitled document, prefixed with "*" while there are unsaved changes.
func (s State) Title(appName string) string {
	title := appName
	if s.Path != "" {
		title = s.Name() + " - " + appName
	}
	if s.Dirty {
		title = "*" + title
	}
	return title
}

// Event is delivered to observers after every state change. Err is set when
// the operation failed; State then still describes the session.
type Event struct {
	Op    Op
	State State
	Err   error
}
