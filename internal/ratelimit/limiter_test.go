package ratelimit

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAdmit_UpToLimit(t *testing.T) {
	l := New(10, time.Minute)
	base := time.Now()

	for i := 0; i < 10; i++ {
		assert.True(t, l.Admit("1.2.3.4", base.Add(time.Duration(i)*time.Second)), "request %d should be admitted", i+1)
	}
	assert.False(t, l.Admit("1.2.3.4", base.Add(11*time.Second)), "11th request inside the window should be rejected")
}

func TestAdmit_WindowExpiry(t *testing.T) {
	l := New(10, time.Minute)
	base := time.Now()

	for i := 0; i < 10; i++ {
		l.Admit("client", base)
	}
	assert.False(t, l.Admit("client", base.Add(30*time.Second)))

	// Once the full window has elapsed the log is empty again.
	assert.True(t, l.Admit("client", base.Add(61*time.Second)))
}

func TestAdmit_RejectionNotRecorded(t *testing.T) {
	l := New(2, time.Minute)
	base := time.Now()

	l.Admit("c", base)
	l.Admit("c", base)
	assert.False(t, l.Admit("c", base.Add(time.Second)))
	assert.Equal(t, 2, l.Count("c", base.Add(time.Second)), "rejected request must not be logged")
}

func TestAdmit_ClientsAreIndependent(t *testing.T) {
	l := New(1, time.Minute)
	now := time.Now()

	assert.True(t, l.Admit("a", now))
	assert.True(t, l.Admit("b", now))
	assert.False(t, l.Admit("a", now))
}

func TestAdmit_ConcurrentSameClient(t *testing.T) {
	l := New(10, time.Minute)
	now := time.Now()

	var wg sync.WaitGroup
	admitted := make(chan bool, 100)
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			admitted <- l.Admit("same", now)
		}()
	}
	wg.Wait()
	close(admitted)

	count := 0
	for ok := range admitted {
		if ok {
			count++
		}
	}
	assert.Equal(t, 10, count, "exactly the limit should be admitted under contention")
}

func TestSweep(t *testing.T) {
	l := New(10, time.Minute)
	base := time.Now()

	for i := 0; i < 5; i++ {
		l.Admit(fmt.Sprintf("stale-%d", i), base)
	}
	l.Admit("fresh", base.Add(50*time.Second))

	evicted := l.Sweep(base.Add(70 * time.Second))
	assert.Equal(t, 5, evicted)
	assert.Equal(t, 1, l.Clients())

	// The surviving client's log is untouched.
	assert.Equal(t, 1, l.Count("fresh", base.Add(70*time.Second)))
}

func TestSweep_Empty(t *testing.T) {
	l := New(10, time.Minute)
	assert.Equal(t, 0, l.Sweep(time.Now()))
}
