package shutdown

import (
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"notepad/internal/logger"
)

const component = "ShutdownManager"

type Shutdownable interface {
	Shutdown()
}

// Func adapts a plain function to Shutdownable
type Func func()

func (f Func) Shutdown() { f() }

type Manager struct {
	components []Shutdownable
	logger     logger.Logger
	timeout    time.Duration
	mu         sync.Mutex
	done       chan struct{}
	stop       chan struct{}
	signals    chan os.Signal
}

func NewManager(log logger.Logger) *Manager {
	if log == nil {
		log = logger.NoOpLogger{}
	}
	return &Manager{
		logger:  log,
		timeout: 10 * time.Second,
		done:    make(chan struct{}),
		stop:    make(chan struct{}),
	}
}

func (m *Manager) Register(c Shutdownable) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.components = append(m.components, c)
}

// Listen calls onSignal for every SIGINT/SIGTERM until Shutdown. The handler
// runs on the listener goroutine and must hand work to the UI goroutine itself.
func (m *Manager) Listen(onSignal func(os.Signal)) {
	m.signals = make(chan os.Signal, 1)
	signal.Notify(m.signals, os.Interrupt, syscall.SIGTERM)
	go m.listen(m.signals, onSignal)
}

func (m *Manager) listen(signals <-chan os.Signal, onSignal func(os.Signal)) {
	for {
		select {
		case sig := <-signals:
			m.logger.Info(component, "shutdown signal received", map[string]interface{}{
				"signal": sig.String(),
			})
			onSignal(sig)
		case <-m.stop:
			return
		}
	}
}

// Shutdown runs registered components in reverse order. Only the first call
// has any effect.
func (m *Manager) Shutdown() {
	m.mu.Lock()
	defer m.mu.Unlock()

	select {
	case <-m.done:
		return
	default:
		close(m.done)
	}

	close(m.stop)
	if m.signals != nil {
		signal.Stop(m.signals)
	}

	m.logger.Info(component, "shutdown sequence initiated", map[string]interface{}{
		"components": len(m.components),
	})

	for i := len(m.components) - 1; i >= 0; i-- {
		c := m.components[i]

		finished := make(chan struct{})
		go func() {
			defer close(finished)
			c.Shutdown()
		}()

		select {
		case <-finished:
		case <-time.After(m.timeout):
			m.logger.Warning(component, "component shutdown timeout", map[string]interface{}{
				"component_index": i,
			})
		}
	}

	m.logger.Info(component, "shutdown sequence completed", nil)
}

func (m *Manager) Done() <-chan struct{} {
	return m.done
}
