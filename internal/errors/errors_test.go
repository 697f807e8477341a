package errors

import (
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEngineError_Message(t *testing.T) {
	err := NewRenderError("no_root_element", "content yielded no usable root").
		WithComponent("card").
		WithCause(fmt.Errorf("expected exactly one root, got 2"))

	msg := err.Error()
	assert.Contains(t, msg, "[no_root_element]")
	assert.Contains(t, msg, "component:card")
	assert.Contains(t, msg, "content yielded no usable root")
	assert.Contains(t, msg, "expected exactly one root, got 2")
}

func TestEngineError_Unwrap(t *testing.T) {
	cause := fmt.Errorf("parse failed")
	err := NewRenderError("no_root_element", "bad content").WithCause(cause)
	assert.Equal(t, cause, errors.Unwrap(err))
	assert.True(t, errors.Is(err, cause))
}

func TestEngineError_IsMatchesTypeAndCode(t *testing.T) {
	a := NewHookError("update_panic", "hook blew up")
	b := NewHookError("update_panic", "different message")
	c := NewHookError("insert_panic", "hook blew up")
	d := NewRenderError("update_panic", "same code, other category")

	assert.True(t, errors.Is(a, b))
	assert.False(t, errors.Is(a, c))
	assert.False(t, errors.Is(a, d))
}

func TestEngineError_WithContext(t *testing.T) {
	err := NewRegistrationError("duplicate_id", "already registered").
		WithContext("id", "button").
		WithContext("attempt", 2)
	assert.Equal(t, "button", err.Context["id"])
	assert.Equal(t, 2, err.Context["attempt"])
}

func TestRecoverability(t *testing.T) {
	assert.True(t, NewRegistrationError("c", "m").Recoverable)
	assert.True(t, NewRenderError("c", "m").Recoverable)
	assert.True(t, NewHookError("c", "m").Recoverable)
	assert.False(t, NewConfigError("c", "m").Recoverable)
	assert.False(t, NewInternalError("c", "m").Recoverable)
}

func TestCollector(t *testing.T) {
	c := NewCollector()
	assert.Equal(t, 0, c.Count())

	c.Add(nil)
	assert.Equal(t, 0, c.Count(), "nil errors are ignored")

	c.Add(NewHookError("focus_panic", "boom"))
	c.Add(NewHookError("update_panic", "bang"))
	require.Equal(t, 2, c.Count())

	all := c.All()
	require.Len(t, all, 2)
	assert.Contains(t, all[0].Error(), "focus_panic")

	// The returned slice is a copy; mutating it leaves the collector alone.
	all[0] = nil
	assert.NotNil(t, c.All()[0])

	c.Clear()
	assert.Equal(t, 0, c.Count())
}

func TestCollector_ConcurrentAdd(t *testing.T) {
	c := NewCollector()
	var wg sync.WaitGroup
	const goroutines, perGoroutine = 8, 50
	for g := 0; g < goroutines; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < perGoroutine; i++ {
				c.Add(NewHookError("code", fmt.Sprintf("err %d/%d", g, i)))
			}
		}(g)
	}
	wg.Wait()
	assert.Equal(t, goroutines*perGoroutine, c.Count())
}
