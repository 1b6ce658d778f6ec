package components

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

type StatusBar struct {
	container    *fyne.Container
	messageLabel *widget.Label
	stateLabel   *widget.Label
	cursorLabel  *widget.Label
}

func NewStatusBar() *StatusBar {
	messageLabel := widget.NewLabel("Ready")
	messageLabel.Truncation = fyne.TextTruncateEllipsis
	stateLabel := widget.NewLabel("Saved")
	cursorLabel := widget.NewLabel("Ln 1, Col 1")

	detailsContainer := container.NewHBox(
		cursorLabel,
		widget.NewSeparator(),
		stateLabel,
	)

	mainContainer := container.NewBorder(
		nil, nil,
		nil,
		detailsContainer,
		messageLabel,
	)

	return &StatusBar{
		container:    mainContainer,
		messageLabel: messageLabel,
		stateLabel:   stateLabel,
		cursorLabel:  cursorLabel,
	}
}

func (sb *StatusBar) GetContainer() *fyne.Container {
	return sb.container
}

func (sb *StatusBar) SetMessage(message string) {
	sb.messageLabel.SetText(message)
}

func (sb *StatusBar) Message() string {
	return sb.messageLabel.Text
}

func (sb *StatusBar) SetModified(modified bool) {
	if modified {
		sb.stateLabel.SetText("Modified")
	} else {
		sb.stateLabel.SetText("Saved")
	}
}

func (sb *StatusBar) State() string {
	return sb.stateLabel.Text
}

// SetCursor shows a zero-based entry cursor as one-based line and column.
func (sb *StatusBar) SetCursor(row, col int) {
	sb.cursorLabel.SetText(fmt.Sprintf("Ln %d, Col %d", row+1, col+1))
}

func (sb *StatusBar) Cursor() string {
	return sb.cursorLabel.Text
}
