package document

import "fmt"

// ReadError reports an Open whose target could not be loaded. The session is
// unchanged when it is returned.
type ReadError struct {
	Path string
	Err  error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("cannot open %s: %v", e.Path, e.Err)
}

func (e *ReadError) Unwrap() error {
	return e.Err
}

// WriteError reports a failed Save or Save As. The document stays dirty.
type WriteError struct {
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("cannot save: %v", e.Err)
	}
	return fmt.Sprintf("cannot save %s: %v", e.Path, e.Err)
}

func (e *WriteError) Unwrap() error {
	return e.Err
}
