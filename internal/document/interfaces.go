package document

// Choice is the user's answer to the unsaved-changes prompt
type Choice int

const (
	ChoiceCancel Choice = iota
	ChoiceSave
	ChoiceDiscard
)

func (c Choice) String() string {
	switch c {
	case ChoiceSave:
		return "save"
	case ChoiceDiscard:
		return "discard"
	default:
		return "cancel"
	}
}

// Outcome of the unsaved-changes guard
type Outcome int

const (
	Blocked Outcome = iota
	Allowed
)

func (o Outcome) String() string {
	if o == Allowed {
		return "allowed"
	}
	return "blocked"
}

// Prompter is the shell side of the session. Every method is modal: the
// reply callback must be invoked exactly once, on the UI goroutine, when the
// user has answered. A dismissed path dialog replies with an empty path.
// ChooseSavePath replies with a non-nil err when the chosen target could not
// be prepared for writing; path is then the target, if known.
type Prompter interface {
	ConfirmUnsaved(name string, reply func(Choice))
	ChooseOpenPath(dir string, reply func(path string))
	ChooseSavePath(dir, name string, reply func(path string, err error))
	ShowError(err error)
}

// Store reads and writes whole documents.
type Store interface {
	Read(path string) (string, error)
	Write(path, text string) error
}
