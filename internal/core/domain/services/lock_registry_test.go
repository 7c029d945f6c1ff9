package services_test

import (
	"sync"
	"testing"
	"time"

	"orderflow/internal/core/domain/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderLockRegistry_Lock(t *testing.T) {
	t.Run("serializes concurrent holders of the same id", func(t *testing.T) {
		registry := services.NewOrderLockRegistry()

		const goroutines = 50
		counter := 0

		var wg sync.WaitGroup
		start := make(chan struct{})
		for i := 0; i < goroutines; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				<-start

				unlock := registry.Lock(1)
				defer unlock()

				// Unsynchronized increment; only safe if the handle
				// actually provides mutual exclusion.
				counter++
			}()
		}

		close(start)
		wg.Wait()

		assert.Equal(t, goroutines, counter)
		assert.Equal(t, 1, registry.Size())
	})

	t.Run("creates exactly one handle per id under racing lookups", func(t *testing.T) {
		registry := services.NewOrderLockRegistry()

		const goroutines = 32
		var wg sync.WaitGroup
		start := make(chan struct{})
		for i := 0; i < goroutines; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				<-start
				unlock := registry.Lock(99)
				unlock()
			}()
		}

		close(start)
		wg.Wait()

		assert.Equal(t, 1, registry.Size())
	})

	t.Run("different ids do not block each other", func(t *testing.T) {
		registry := services.NewOrderLockRegistry()

		// Hold id 1 for the whole test.
		unlockOne := registry.Lock(1)
		defer unlockOne()

		acquired := make(chan struct{})
		go func() {
			unlock := registry.Lock(2)
			defer unlock()
			close(acquired)
		}()

		select {
		case <-acquired:
		case <-time.After(2 * time.Second):
			t.Fatal("lock on id 2 blocked behind the holder of id 1")
		}
	})

	t.Run("handle is reusable after unlock", func(t *testing.T) {
		registry := services.NewOrderLockRegistry()

		unlock := registry.Lock(7)
		unlock()

		done := make(chan struct{})
		go func() {
			unlock := registry.Lock(7)
			unlock()
			close(done)
		}()

		select {
		case <-done:
		case <-time.After(2 * time.Second):
			t.Fatal("re-acquiring a released handle blocked")
		}
	})

	t.Run("size grows with distinct ids only", func(t *testing.T) {
		registry := services.NewOrderLockRegistry()
		require.Zero(t, registry.Size())

		for i := int64(1); i <= 5; i++ {
			unlock := registry.Lock(i)
			unlock()
		}
		unlock := registry.Lock(3)
		unlock()

		assert.Equal(t, 5, registry.Size())
	})
}
