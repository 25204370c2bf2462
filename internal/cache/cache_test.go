package cache

import (
	"testing"
	"time"

	"scripture-tui/internal/api"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPutGet(t *testing.T) {
	c, err := NewCacheAt(t.TempDir(), time.Hour)
	require.NoError(t, err)

	opts := api.PassageOptions{Headings: true}
	_, ok := c.Get("passage", "John 3:16", opts)
	assert.False(t, ok)

	require.NoError(t, c.Put("passage", "John 3:16", opts, []byte(`{"query":"John 3:16"}`)))
	body, ok := c.Get("passage", "John 3:16", opts)
	require.True(t, ok)
	assert.JSONEq(t, `{"query":"John 3:16"}`, string(body))

	_, ok = c.Get("passage", "John 3:16", api.PassageOptions{})
	assert.False(t, ok)
	_, ok = c.Get("search", "John 3:16", opts)
	assert.False(t, ok)
}

func TestExpiry(t *testing.T) {
	c, err := NewCacheAt(t.TempDir(), time.Minute)
	require.NoError(t, err)
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }

	require.NoError(t, c.Put("search", "love", api.PassageOptions{}, []byte(`{}`)))
	_, ok := c.Get("search", "love", api.PassageOptions{})
	assert.True(t, ok)

	now = now.Add(2 * time.Minute)
	_, ok = c.Get("search", "love", api.PassageOptions{})
	assert.False(t, ok)
}

func TestRejectsNonJSON(t *testing.T) {
	c, err := NewCacheAt(t.TempDir(), 0)
	require.NoError(t, err)
	assert.Error(t, c.Put("search", "love", api.PassageOptions{}, []byte("<html>")))
}

func TestClearAndSize(t *testing.T) {
	c, err := NewCacheAt(t.TempDir(), 0)
	require.NoError(t, err)
	require.NoError(t, c.Put("search", "a", api.PassageOptions{}, []byte(`{"x":1}`)))

	size, err := c.GetCacheSize()
	require.NoError(t, err)
	assert.Positive(t, size)

	require.NoError(t, c.ClearCache())
	size, err = c.GetCacheSize()
	require.NoError(t, err)
	assert.Zero(t, size)
}

func TestKeyIsStable(t *testing.T) {
	a := Key("passage", "Gen 1:1", api.PassageOptions{Numbers: true})
	assert.Equal(t, a, Key("passage", "Gen 1:1", api.PassageOptions{Numbers: true}))
	assert.NotEqual(t, a, Key("passage", "Gen 1:1", api.PassageOptions{}))
	assert.Len(t, a, 64)
}
