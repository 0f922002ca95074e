package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type clock struct{ t time.Time }

func (c *clock) now() time.Time { return c.t }

func newTestCache(size int, ttl time.Duration) (*LRUCache[string], *clock) {
	clk := &clock{t: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	c := NewLRUCache[string](size, ttl)
	c.now = clk.now
	return c, clk
}

func TestLRUGetSet(t *testing.T) {
	c, _ := newTestCache(2, time.Minute)

	_, ok := c.Get("accounts")
	assert.False(t, ok)

	c.Set("accounts", "a")
	got, ok := c.Get("accounts")
	require.True(t, ok)
	assert.Equal(t, "a", got)

	c.Set("accounts", "b")
	got, _ = c.Get("accounts")
	assert.Equal(t, "b", got)
	assert.Equal(t, 1, c.Size())

	assert.Equal(t, Stats{Hits: 2, Misses: 1, Size: 1}, c.Stats())
}

func TestLRUEvictsLeastRecentlyUsed(t *testing.T) {
	c, _ := newTestCache(2, time.Minute)
	c.Set("accounts", "1")
	c.Set("debts", "2")
	_, _ = c.Get("accounts") // debts is now the oldest
	c.Set("assets", "3")

	_, ok := c.Get("debts")
	assert.False(t, ok)
	_, ok = c.Get("accounts")
	assert.True(t, ok)
	_, ok = c.Get("assets")
	assert.True(t, ok)
}

func TestLRUEvictionCount(t *testing.T) {
	c, _ := newTestCache(1, time.Minute)
	c.Set("a", "1")
	c.Set("b", "2")
	c.Set("c", "3")
	assert.Equal(t, int64(2), c.Stats().Evictions)
	assert.Equal(t, 1, c.Size())
}

func TestLRUDeletePrefix(t *testing.T) {
	c, _ := newTestCache(0, time.Minute)
	for _, k := range []string{"accounts", "accounts/1", "accounts/2", "accountsX", "transactions/1"} {
		c.Set(k, k)
	}

	assert.Equal(t, 2, c.DeletePrefix("accounts/"))
	assert.Equal(t, 3, c.Size())
	_, ok := c.Get("accounts")
	assert.True(t, ok)
	_, ok = c.Get("accountsX")
	assert.True(t, ok)
	assert.Zero(t, c.DeletePrefix("debts/"))
}

func TestLRUUnbounded(t *testing.T) {
	c, _ := newTestCache(0, time.Minute)
	for _, k := range []string{"a", "b", "c", "d"} {
		c.Set(k, k)
	}
	assert.Equal(t, 4, c.Size())
}

func TestLRUExpiry(t *testing.T) {
	c, clk := newTestCache(10, time.Minute)
	c.Set("accounts", "1")
	c.Set("debts", "2")

	clk.t = clk.t.Add(30 * time.Second)
	c.Set("assets", "3")

	clk.t = clk.t.Add(45 * time.Second)
	_, ok := c.Get("accounts")
	assert.False(t, ok, "expired entry must miss")

	assert.Equal(t, 1, c.CleanExpired())
	assert.Equal(t, 1, c.Size())

	c.Delete("assets")
	assert.Equal(t, 0, c.Size())
}

func TestLRUClear(t *testing.T) {
	c, _ := newTestCache(10, time.Minute)
	c.Set("a", "1")
	c.Set("b", "2")
	c.Clear()
	assert.Equal(t, 0, c.Size())
	c.Set("c", "3")
	assert.Equal(t, 1, c.Size())
}

func TestManagerSweepAndStop(t *testing.T) {
	c, clk := newTestCache(10, time.Second)
	c.Set("a", "1")
	m := NewManager(nil)
	m.Register(c)

	clk.t = clk.t.Add(2 * time.Second)
	assert.Equal(t, 1, m.Sweep())

	m.StartCleanup(time.Hour)
	m.Stop()
	m.Stop()

	idle := NewManager(nil)
	idle.Stop()
}
