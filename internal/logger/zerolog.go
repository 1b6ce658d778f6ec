package logger

import (
	"io"
	"sync"

	"github.com/rs/zerolog"
)

type ZerologAdapter struct {
	// mu is held for reading while an entry is written, so Shutdown never
	// closes the log file under an in-flight write.
	mu     sync.RWMutex
	logger zerolog.Logger
	// console and closer are set when output is duplicated to a log file.
	console io.Writer
	closer  io.Closer
}

func NewZerolog(writer io.Writer, level zerolog.Level) *ZerologAdapter {
	logger := zerolog.New(writer).
		Level(level).
		With().
		Timestamp().
		Logger()

	return &ZerologAdapter{logger: logger}
}

func (z *ZerologAdapter) Debug(component, message string, fields map[string]interface{}) {
	z.mu.RLock()
	defer z.mu.RUnlock()
	withFields(z.logger.Debug(), component, fields).Msg(message)
}

func (z *ZerologAdapter) Info(component, message string, fields map[string]interface{}) {
	z.mu.RLock()
	defer z.mu.RUnlock()
	withFields(z.logger.Info(), component, fields).Msg(message)
}

func (z *ZerologAdapter) Warning(component, message string, fields map[string]interface{}) {
	z.mu.RLock()
	defer z.mu.RUnlock()
	withFields(z.logger.Warn(), component, fields).Msg(message)
}

func (z *ZerologAdapter) Error(component string, err error, fields map[string]interface{}) {
	z.mu.RLock()
	defer z.mu.RUnlock()
	withFields(z.logger.Error().Err(err), component, fields).Msg("operation failed")
}

// Shutdown closes the log file, if any, and keeps logging to the console.
// It is safe to call while other goroutines are logging.
func (z *ZerologAdapter) Shutdown() {
	z.mu.Lock()
	defer z.mu.Unlock()

	if z.closer == nil {
		return
	}
	z.logger.Debug().Str("component", "Logger").Msg("closing log file")
	z.logger = z.logger.Output(z.console)
	_ = z.closer.Close()
	z.closer = nil
}

func withFields(event *zerolog.Event, component string, fields map[string]interface{}) *zerolog.Event {
	event = event.Str("component", component)
	for k, v := range fields {
		event = event.Interface(k, v)
	}
	return event
}
