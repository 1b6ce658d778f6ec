// Package document owns the text being edited, the file it belongs to and
// whether it has unsaved changes. All methods must be called from the UI
// goroutine.
package document

import (
	"path/filepath"

	"notepad/internal/logger"
)

const component = "DocumentSession"

type Session struct {
	store    Store
	prompter Prompter
	logger   logger.Logger

	path  string
	text  string
	dirty bool

	// pending is set while an operation waits for a prompt reply; other
	// operations are ignored until it completes.
	pending   string
	observers []func(Event)
}

func NewSession(store Store, prompter Prompter, log logger.Logger) *Session {
	if log == nil {
		log = logger.NoOpLogger{}
	}
	return &Session{
		store:    store,
		prompter: prompter,
		logger:   log,
	}
}

func (s *Session) State() State {
	return State{Path: s.path, Text: s.text, Dirty: s.dirty}
}

// Pending returns the name of the operation waiting on a prompt, or "".
func (s *Session) Pending() string {
	return s.pending
}

// OnChange registers an observer called after every state change.
func (s *Session) OnChange(fn func(Event)) {
	s.observers = append(s.observers, fn)
}

// Edit replaces the buffer with the shell's current text. Identical text is
// ignored so that programmatic refreshes of the editor do not dirty it.
func (s *Session) Edit(text string) {
	if text == s.text {
		return
	}
	if !s.dirty {
		s.logger.Debug(component, "document modified", map[string]interface{}{
			"path": s.path,
		})
	}
	s.text = text
	s.dirty = true
	s.notify(OpEdit, nil)
}

// RequestDestructiveAction asks the user what to do with unsaved changes and
// reports whether the caller may discard the current buffer.
func (s *Session) RequestDestructiveAction(done func(Outcome)) {
	if !s.begin("guard") {
		return
	}
	s.guard(func(outcome Outcome) {
		s.end()
		if done != nil {
			done(outcome)
		}
	})
}

// New replaces the document with an empty, untitled one.
func (s *Session) New() {
	if !s.begin("new") {
		return
	}
	s.guard(func(outcome Outcome) {
		defer s.end()
		if outcome == Blocked {
			return
		}

		s.text, s.path, s.dirty = "", "", false
		s.logger.Info(component, "new document", nil)
		s.notify(OpNew, nil)
	})
}

// Open asks for a file and loads it.
func (s *Session) Open() {
	if !s.begin("open") {
		return
	}
	s.prompter.ChooseOpenPath(s.dir(), func(candidate string) {
		s.open(candidate, s.end)
	})
}

// OpenPath loads candidate without asking for a file first. An empty
// candidate means nothing was selected.
func (s *Session) OpenPath(candidate string) {
	if !s.begin("open") {
		return
	}
	s.open(candidate, s.end)
}

func (s *Session) open(candidate string, done func()) {
	if candidate == "" {
		done()
		return
	}

	s.guard(func(outcome Outcome) {
		defer done()
		if outcome == Blocked {
			s.logger.Debug(component, "open cancelled", map[string]interface{}{
				"candidate": candidate,
			})
			return
		}

		content, err := s.store.Read(candidate)
		if err != nil {
			s.fail(OpOpen, &ReadError{Path: candidate, Err: err})
			return
		}

		s.text, s.path, s.dirty = content, candidate, false
		s.logger.Info(component, "document opened", map[string]interface{}{
			"path":  candidate,
			"bytes": len(content),
		})
		s.notify(OpOpen, nil)
	})
}

// Save writes the document to its file, asking for one first when the
// document is untitled.
func (s *Session) Save() {
	if !s.begin("save") {
		return
	}
	s.save(func(bool) { s.end() })
}

// SaveAs asks for a new file and writes the document to it.
func (s *Session) SaveAs() {
	if !s.begin("save_as") {
		return
	}
	s.saveAs(func(bool) { s.end() })
}

// SaveAsPath binds the document to candidate and writes it. An empty
// candidate means nothing was selected.
func (s *Session) SaveAsPath(candidate string) {
	if !s.begin("save_as") {
		return
	}
	defer s.end()
	s.saveAsPath(candidate)
}

// Close runs quit once unsaved changes have been saved or discarded.
func (s *Session) Close(quit func()) {
	if !s.begin("close") {
		return
	}
	s.guard(func(outcome Outcome) {
		s.end()
		if outcome == Blocked {
			s.logger.Info(component, "close cancelled", nil)
			return
		}
		if quit != nil {
			quit()
		}
	})
}

// guard resolves unsaved changes before a destructive action. Choosing Save
// only allows the action when the save actually succeeded.
func (s *Session) guard(done func(Outcome)) {
	if !s.dirty {
		done(Allowed)
		return
	}

	s.prompter.ConfirmUnsaved(s.State().Name(), func(choice Choice) {
		s.logger.Debug(component, "unsaved changes prompt answered", map[string]interface{}{
			"choice": choice.String(),
		})

		switch choice {
		case ChoiceSave:
			s.save(func(saved bool) {
				if saved {
					done(Allowed)
					return
				}
				done(Blocked)
			})
		case ChoiceDiscard:
			done(Allowed)
		default:
			done(Blocked)
		}
	})
}

func (s *Session) save(done func(saved bool)) {
	if s.path == "" {
		s.saveAs(done)
		return
	}
	done(s.write(OpSave))
}

func (s *Session) saveAs(done func(saved bool)) {
	s.prompter.ChooseSavePath(s.dir(), s.baseName(), func(candidate string, err error) {
		if err != nil {
			done(s.rejectSaveTarget(candidate, err))
			return
		}
		done(s.saveAsPath(candidate))
	})
}

// saveAsPath rebinds the path before writing, so a failed write leaves the
// session pointing at candidate with its changes still unsaved.
func (s *Session) saveAsPath(candidate string) bool {
	if candidate == "" {
		return false
	}
	s.path = candidate
	return s.write(OpSaveAs)
}

// rejectSaveTarget handles a target the save dialog could not prepare. It
// fails the same way a write to that target would: a known target becomes
// the document's path and the changes stay unsaved.
func (s *Session) rejectSaveTarget(candidate string, err error) bool {
	if candidate != "" {
		s.path = candidate
	}
	s.fail(OpSaveAs, &WriteError{Path: candidate, Err: err})
	return false
}

func (s *Session) write(op Op) bool {
	if err := s.store.Write(s.path, s.text); err != nil {
		s.fail(op, &WriteError{Path: s.path, Err: err})
		return false
	}

	s.dirty = false
	s.logger.Info(component, "document saved", map[string]interface{}{
		"path":  s.path,
		"bytes": len(s.text),
	})
	s.notify(op, nil)
	return true
}

func (s *Session) fail(op Op, err error) {
	s.logger.Error(component, err, map[string]interface{}{
		"operation": string(op),
	})
	s.notify(op, err)
	s.prompter.ShowError(err)
}

func (s *Session) begin(op string) bool {
	if s.pending != "" {
		s.logger.Debug(component, "operation ignored while another is pending", map[string]interface{}{
			"operation": op,
			"pending":   s.pending,
		})
		return false
	}
	s.pending = op
	return true
}

func (s *Session) end() {
	s.pending = ""
}

func (s *Session) notify(op Op, err error) {
	event := Event{Op: op, State: s.State(), Err: err}
	for _, fn := range s.observers {
		fn(event)
	}
}

func (s *Session) dir() string {
	if s.path == "" {
		return ""
	}
	return filepath.Dir(s.path)
}

func (s *Session) baseName() string {
	if s.path == "" {
		return ""
	}
	return filepath.Base(s.path)
}
