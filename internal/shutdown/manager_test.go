package shutdown

import (
	"os"
	"sync"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestShutdownRunsComponentsInReverseOrder(t *testing.T) {
	m := NewManager(nil)

	var order []string
	m.Register(Func(func() { order = append(order, "logger") }))
	m.Register(Func(func() { order = append(order, "shell") }))

	m.Shutdown()
	m.Shutdown()

	assert.Equal(t, []string{"shell", "logger"}, order)

	select {
	case <-m.Done():
	default:
		t.Fatal("done channel should be closed after shutdown")
	}
}

func TestShutdownTimesOutSlowComponent(t *testing.T) {
	m := NewManager(nil)
	m.timeout = 20 * time.Millisecond

	release := make(chan struct{})
	defer close(release)

	ran := false
	m.Register(Func(func() { ran = true }))
	m.Register(Func(func() { <-release }))

	start := time.Now()
	m.Shutdown()

	assert.True(t, ran)
	assert.Less(t, time.Since(start), 5*time.Second)
}

func TestListenForwardsSignalsUntilShutdown(t *testing.T) {
	m := NewManager(nil)

	signals := make(chan os.Signal)
	received := make(chan os.Signal, 2)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		m.listen(signals, func(sig os.Signal) { received <- sig })
	}()

	signals <- syscall.SIGTERM
	signals <- os.Interrupt

	assert.Equal(t, syscall.SIGTERM, <-received)
	assert.Equal(t, os.Interrupt, <-received)

	m.Shutdown()
	wg.Wait()
}
