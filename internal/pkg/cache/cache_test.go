package cache_test

import (
	"testing"
	"time"

	"github.com/MatheusFDS/deliveryserver-sub000/internal/pkg/cache"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCache_GetSet(t *testing.T) {
	t.Run("stored_value_is_returned_before_expiry", func(t *testing.T) {
		c := cache.New()
		c.Set("geocode:address=Rua A", "value", time.Minute)

		got, ok := c.Get("geocode:address=Rua A")

		require.True(t, ok)
		assert.Equal(t, "value", got)
	})

	t.Run("absent_key_misses", func(t *testing.T) {
		c := cache.New()

		_, ok := c.Get("missing")

		assert.False(t, ok)
	})

	t.Run("expired_entry_misses_and_is_removed", func(t *testing.T) {
		c := cache.New()
		c.Set("key", "value", time.Nanosecond)
		time.Sleep(5 * time.Millisecond)

		_, ok := c.Get("key")

		assert.False(t, ok)
		assert.Equal(t, 0, c.Len())
	})

	t.Run("del_removes_entry", func(t *testing.T) {
		c := cache.New()
		c.Set("key", "value", time.Minute)

		c.Del("key")

		_, ok := c.Get("key")
		assert.False(t, ok)
	})

	t.Run("non_positive_ttl_removes_entry", func(t *testing.T) {
		c := cache.New()
		c.Set("key", "value", time.Minute)

		c.Set("key", "value", 0)

		_, ok := c.Get("key")
		assert.False(t, ok)
	})
}

func TestCache_DefensiveCopies(t *testing.T) {
	type routeResult struct {
		Stops []string
	}

	c := cache.New()
	original := routeResult{Stops: []string{"a", "b"}}
	c.Set("route", original, time.Minute)

	// Mutating the stored value after Set must not affect the cache.
	original.Stops[0] = "mutated"

	got, ok := c.Get("route")
	require.True(t, ok)
	first, ok := got.(routeResult)
	require.True(t, ok)
	assert.Equal(t, []string{"a", "b"}, first.Stops)

	// Mutating a read value must not affect later reads.
	first.Stops[1] = "mutated"

	got, ok = c.Get("route")
	require.True(t, ok)
	second, ok := got.(routeResult)
	require.True(t, ok)
	assert.Equal(t, []string{"a", "b"}, second.Stops)
}

func TestCache_Sweep(t *testing.T) {
	c := cache.New()
	c.Set("stale-1", "v", time.Nanosecond)
	c.Set("stale-2", "v", time.Nanosecond)
	c.Set("fresh", "v", time.Minute)
	time.Sleep(5 * time.Millisecond)

	removed := c.Sweep()

	assert.Equal(t, 2, removed)
	assert.Equal(t, 1, c.Len())
	_, ok := c.Get("fresh")
	assert.True(t, ok)
}

func TestGenerateKey(t *testing.T) {
	t.Run("same_params_produce_identical_keys", func(t *testing.T) {
		first := cache.GenerateKey("geocode", map[string]string{"address": "X"})
		second := cache.GenerateKey("geocode", map[string]string{"address": "X"})

		assert.Equal(t, first, second)
	})

	t.Run("parameter_order_does_not_matter", func(t *testing.T) {
		first := cache.GenerateKey("route", map[string]string{"origin": "A", "destination": "B"})
		second := cache.GenerateKey("route", map[string]string{"destination": "B", "origin": "A"})

		assert.Equal(t, first, second)
		assert.Equal(t, "route:destination=B:origin=A", first)
	})

	t.Run("no_params_yields_bare_prefix", func(t *testing.T) {
		assert.Equal(t, "sweep", cache.GenerateKey("sweep", nil))
	})
}
