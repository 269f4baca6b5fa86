package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMemoryGetSet(t *testing.T) {
	ctx := context.Background()
	c := NewMemory[string]()

	_, ok := c.Get(ctx, "missing")
	assert.False(t, ok)

	c.Set(ctx, "greeting", "hello", time.Minute)
	got, ok := c.Get(ctx, "greeting")
	assert.True(t, ok)
	assert.Equal(t, "hello", got)
}

func TestMemoryExpiredEntryIsMissAndEvicted(t *testing.T) {
	ctx := context.Background()
	c := NewMemory[int]()

	now := time.Now()
	c.now = func() time.Time { return now }

	c.Set(ctx, "k", 42, 30*time.Minute)

	// Still live one second before the deadline.
	c.now = func() time.Time { return now.Add(30*time.Minute - time.Second) }
	got, ok := c.Get(ctx, "k")
	assert.True(t, ok)
	assert.Equal(t, 42, got)

	// At the deadline the entry is a miss and must be evicted.
	c.now = func() time.Time { return now.Add(30 * time.Minute) }
	_, ok = c.Get(ctx, "k")
	assert.False(t, ok)
	assert.Equal(t, 0, c.Len())
}

func TestMemoryOverwriteWins(t *testing.T) {
	ctx := context.Background()
	c := NewMemory[string]()

	c.Set(ctx, "k", "first", time.Minute)
	c.Set(ctx, "k", "second", time.Minute)

	got, ok := c.Get(ctx, "k")
	assert.True(t, ok)
	assert.Equal(t, "second", got)
}

func TestMemoryClear(t *testing.T) {
	ctx := context.Background()
	c := NewMemory[string]()

	c.Set(ctx, "a", "1", time.Minute)
	c.Set(ctx, "b", "2", time.Minute)
	assert.Equal(t, 2, c.Len())

	c.Clear(ctx)
	assert.Equal(t, 0, c.Len())

	_, ok := c.Get(ctx, "a")
	assert.False(t, ok)
}

func TestMemoryConcurrentAccess(t *testing.T) {
	ctx := context.Background()
	c := NewMemory[int]()

	done := make(chan struct{})
	for i := 0; i < 8; i++ {
		go func(n int) {
			defer func() { done <- struct{}{} }()
			for j := 0; j < 500; j++ {
				c.Set(ctx, "shared", n, time.Minute)
				c.Get(ctx, "shared")
			}
		}(i)
	}
	for i := 0; i < 8; i++ {
		<-done
	}

	_, ok := c.Get(ctx, "shared")
	assert.True(t, ok)
}
