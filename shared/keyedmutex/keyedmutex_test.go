package keyedmutex_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ComfortN/restaurent-cms/shared/keyedmutex"
)

func TestKeyedMutex_SerializesSameKey(t *testing.T) {
	km := keyedmutex.New()

	const iterations = 200

	counter := 0

	var wg sync.WaitGroup

	for i := 0; i < iterations; i++ {
		wg.Add(1)

		go func() {
			defer wg.Done()

			km.Lock("slot")
			defer km.Unlock("slot")

			// Unsynchronized increment; the race detector flags any
			// overlap between critical sections.
			counter++
		}()
	}

	wg.Wait()

	assert.Equal(t, iterations, counter)
}

func TestKeyedMutex_IndependentKeysDoNotBlock(t *testing.T) {
	km := keyedmutex.New()

	km.Lock("slot-a")
	defer km.Unlock("slot-a")

	done := make(chan struct{})

	go func() {
		km.Lock("slot-b")
		km.Unlock("slot-b")
		close(done)
	}()

	// Holding slot-a must not block slot-b.
	<-done
}

func TestKeyedMutex_Reentry(t *testing.T) {
	km := keyedmutex.New()

	km.Lock("slot")
	km.Unlock("slot")

	// The entry is dropped once released; relocking allocates a fresh one.
	km.Lock("slot")
	km.Unlock("slot")
}

func TestKey(t *testing.T) {
	assert.Equal(t, "restaurant|2026-09-07|6:00 PM", keyedmutex.Key("restaurant", "2026-09-07", "6:00 PM"))
	assert.Equal(t, "single", keyedmutex.Key("single"))
	assert.Equal(t, "", keyedmutex.Key())
}
