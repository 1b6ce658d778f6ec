package main

import (
	"os"

	fyneapp "fyne.io/fyne/v2/app"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"notepad/internal/app"
	"notepad/internal/config"
	"notepad/internal/logger"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var (
		configPath string
		logLevel   string
	)

	cmd := &cobra.Command{
		Use:          "notepad [file]",
		Short:        "A plain text editor",
		Version:      app.AppVersion,
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(configPath, logLevel)
			if err != nil {
				return err
			}

			log, err := logger.New(cfg.LoggerOptions())
			if err != nil {
				return err
			}

			application, err := app.NewApplication(fyneapp.NewWithID(app.AppID), cfg, log)
			if err != nil {
				log.Error("Main", err, nil)
				log.Shutdown()
				return err
			}

			var initial string
			if len(args) == 1 {
				initial = args[0]
			}
			return application.Run(initial)
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "settings file (TOML); defaults to $NOTEPAD_CONFIG")
	cmd.Flags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error or off")

	return cmd
}

// loadConfig applies the --log-level flag over the file and environment.
func loadConfig(path, logLevel string) (config.Config, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return config.Config{}, err
	}

	if logLevel != "" {
		cfg.LogLevel = logLevel
		if err := cfg.Validate(); err != nil {
			return config.Config{}, errors.Wrap(err, "--log-level")
		}
	}
	return cfg, nil
}
