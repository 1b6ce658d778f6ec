package app

import (
	"fyne.io/fyne/v2"

	"notepad/internal/config"
	"notepad/internal/document"
	"notepad/internal/gui"
	"notepad/internal/logger"
	"notepad/internal/shutdown"
	"notepad/internal/storage"
)

const (
	AppName    = "Notepad"
	AppID      = "com.notepad.editor"
	AppVersion = "1.0.0"
)

// Application owns the single document session of the process and the
// window that edits it.
type Application struct {
	fyneApp  fyne.App
	window   fyne.Window
	config   config.Config
	logger   logger.Logger
	session  *document.Session
	shell    *gui.Shell
	shutdown *shutdown.Manager
}

func NewApplication(fyneApp fyne.App, cfg config.Config, log logger.Logger) (*Application, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if log == nil {
		log = logger.NoOpLogger{}
	}

	window := fyneApp.NewWindow(AppName)
	window.SetMaster()
	window.CenterOnScreen()

	log.Info("Application", "starting application", map[string]interface{}{
		"version":       AppVersion,
		"window_width":  cfg.Window.Width,
		"window_height": cfg.Window.Height,
		"log_level":     cfg.LogLevel,
	})

	store := storage.NewTextStore(log)
	dialogs := gui.NewDialogs(window, cfg.Editor.DefaultExtension, log)
	if cfg.Editor.FilterOpen && cfg.Editor.DefaultExtension != "" {
		dialogs.SetOpenFilter(cfg.Editor.DefaultExtension)
	}
	session := document.NewSession(store, dialogs, log)
	shell := gui.NewShell(window, session, dialogs, gui.Options{
		AppName:   AppName,
		Version:   AppVersion,
		Width:     cfg.Window.Width,
		Height:    cfg.Window.Height,
		Monospace: cfg.Editor.Monospace,
		Wrap:      cfg.Editor.Wrap,
	}, log)

	manager := shutdown.NewManager(log)
	if closer, ok := log.(shutdown.Shutdownable); ok {
		manager.Register(closer)
	}

	application := &Application{
		fyneApp:  fyneApp,
		window:   window,
		config:   cfg,
		logger:   log,
		session:  session,
		shell:    shell,
		shutdown: manager,
	}
	shell.SetQuitHandler(application.quit)

	log.Info("Application", "initialization complete", nil)
	return application, nil
}

func (a *Application) Session() *document.Session {
	return a.session
}

func (a *Application) Window() fyne.Window {
	return a.window
}
