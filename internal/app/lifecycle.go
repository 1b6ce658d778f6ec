package app

import (
	"os"
	"path/filepath"

	"fyne.io/fyne/v2"
)

// Run shows the window and blocks until the application quits. A non-empty
// initialPath is opened once the event loop has started.
func (a *Application) Run(initialPath string) error {
	a.shutdown.Listen(func(sig os.Signal) {
		a.logger.Info("Lifecycle", "signal received", map[string]interface{}{
			"signal": sig.String(),
		})
		fyne.Do(a.shell.RequestClose)
	})

	a.fyneApp.Lifecycle().SetOnStarted(func() {
		a.OpenInitial(initialPath)
	})

	a.window.Show()
	a.logger.Info("Lifecycle", "window displayed", nil)
	a.fyneApp.Run()

	a.shutdown.Shutdown()
	return nil
}

// OpenInitial loads the file named on the command line.
func (a *Application) OpenInitial(path string) {
	if path == "" {
		return
	}
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	a.session.OpenPath(path)
}

// quit runs after the session allowed closing: cleanup first, then the
// master window, which ends the event loop.
func (a *Application) quit() {
	a.logger.Info("Lifecycle", "shutdown sequence initiated", nil)
	a.shutdown.Shutdown()
	a.window.Close()
}
