// Package commands maps named editor actions to their handlers. Menus,
// toolbar buttons and keyboard shortcuts all dispatch through one Registry.
package commands

import (
	"github.com/pkg/errors"

	"notepad/internal/logger"
)

const component = "Commands"

var ErrUnknownAction = errors.New("unknown action")

type Action string

const (
	New       Action = "new"
	Open      Action = "open"
	Save      Action = "save"
	SaveAs    Action = "save_as"
	Close     Action = "close"
	Exit      Action = "exit"
	Undo      Action = "undo"
	Redo      Action = "redo"
	Cut       Action = "cut"
	Copy      Action = "copy"
	Paste     Action = "paste"
	Delete    Action = "delete"
	SelectAll Action = "select_all"
	HelpIndex Action = "help_index"
	About     Action = "about"
)

var labels = map[Action]string{
	New:       "New",
	Open:      "Open...",
	Save:      "Save",
	SaveAs:    "Save As...",
	Close:     "Close",
	Exit:      "Exit",
	Undo:      "Undo",
	Redo:      "Redo",
	Cut:       "Cut",
	Copy:      "Copy",
	Paste:     "Paste",
	Delete:    "Delete",
	SelectAll: "Select All",
	HelpIndex: "Help Index",
	About:     "About...",
}

// Label is the menu text for the action.
func (a Action) Label() string {
	if label, ok := labels[a]; ok {
		return label
	}
	return string(a)
}

type Registry struct {
	handlers map[Action]func()
	order    []Action
	logger   logger.Logger
}

func NewRegistry(log logger.Logger) *Registry {
	if log == nil {
		log = logger.NoOpLogger{}
	}
	return &Registry{
		handlers: make(map[Action]func()),
		logger:   log,
	}
}

// Register binds handler to action, replacing any previous binding.
func (r *Registry) Register(action Action, handler func()) {
	if _, exists := r.handlers[action]; !exists {
		r.order = append(r.order, action)
	}
	r.handlers[action] = handler
}

func (r *Registry) Has(action Action) bool {
	_, ok := r.handlers[action]
	return ok
}

// Actions lists registered actions in registration order.
func (r *Registry) Actions() []Action {
	actions := make([]Action, len(r.order))
	copy(actions, r.order)
	return actions
}

func (r *Registry) Dispatch(action Action) error {
	handler, ok := r.handlers[action]
	if !ok {
		err := errors.Wrap(ErrUnknownAction, string(action))
		r.logger.Warning(component, "dispatch of unregistered action", map[string]interface{}{
			"action": string(action),
		})
		return err
	}

	r.logger.Debug(component, "dispatch", map[string]interface{}{
		"action": string(action),
	})
	handler()
	return nil
}

// Trigger returns a closure dispatching action, for widget callbacks.
func (r *Registry) Trigger(action Action) func() {
	return func() {
		_ = r.Dispatch(action)
	}
}
