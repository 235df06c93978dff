package debounce

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func waitFor(t *testing.T, ch <-chan string) string {
	t.Helper()
	select {
	case s := <-ch:
		return s
	case <-time.After(2 * time.Second):
		t.Fatal("debounced callback never fired")
		return ""
	}
}

func TestTriggerFiresAfterDelay(t *testing.T) {
	d := New(5 * time.Millisecond)
	fired := make(chan string, 1)

	d.Trigger(func() { fired <- "a" })
	assert.True(t, d.Pending())

	assert.Equal(t, "a", waitFor(t, fired))
}

func TestRetriggerReplacesPendingCallback(t *testing.T) {
	d := New(20 * time.Millisecond)
	fired := make(chan string, 2)

	d.Trigger(func() { fired <- "first" })
	d.Trigger(func() { fired <- "second" })

	assert.Equal(t, "second", waitFor(t, fired))

	// Only one callback ran.
	time.Sleep(50 * time.Millisecond)
	select {
	case s := <-fired:
		t.Fatalf("unexpected extra fire %q", s)
	default:
	}
}

func TestCancelDropsPendingCallback(t *testing.T) {
	d := New(10 * time.Millisecond)
	fired := make(chan string, 1)

	d.Trigger(func() { fired <- "a" })
	d.Cancel()

	assert.False(t, d.Pending())
	time.Sleep(40 * time.Millisecond)
	select {
	case <-fired:
		t.Fatal("cancelled callback fired")
	default:
	}
}

func TestFlushRunsPendingNow(t *testing.T) {
	d := New(time.Hour)
	ran := 0

	d.Trigger(func() { ran++ })
	d.Flush()

	assert.Equal(t, 1, ran)
	assert.False(t, d.Pending())

	// A second flush has nothing left to run.
	d.Flush()
	assert.Equal(t, 1, ran)
}

func TestPendingClearsAfterFire(t *testing.T) {
	d := New(5 * time.Millisecond)
	fired := make(chan string, 1)

	d.Trigger(func() { fired <- "a" })
	waitFor(t, fired)

	assert.False(t, d.Pending())
}
