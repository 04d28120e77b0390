package modcache

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsURL(t *testing.T) {
	tests := []struct {
		name     string
		dsn      string
		expected bool
	}{
		{"http URL", "http://example.com", true},
		{"https URL", "https://example.com", true},
		{"libsql URL", "libsql://db.turso.io", true},
		{"local file path", "/path/to/cache.db", false},
		{"relative path", ".fabc/modcache.db", false},
		{"empty string", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, isURL(tt.dsn))
		})
	}
}

func TestOpenLocalFile(t *testing.T) {
	dir := t.TempDir()
	dsn := filepath.Join(dir, "nested", "modcache.db")

	cache, err := Open(dsn)
	require.NoError(t, err)
	require.NotNil(t, cache)
	defer cache.Close()

	assert.DirExists(t, filepath.Dir(dsn))
}

func TestPutAndGetRoundTrip(t *testing.T) {
	dsn := filepath.Join(t.TempDir(), "modcache.db")
	cache, err := Open(dsn)
	require.NoError(t, err)
	defer cache.Close()

	path := "/src/util.fab"
	hash := "abc123"
	tree := `{"node":{"Name":"util","Children":{}}}`

	require.NoError(t, cache.Put(path, hash, tree))

	got, ok := cache.Get(path, hash)
	require.True(t, ok)
	assert.Equal(t, tree, got)
}

func TestGetMissOnHashMismatch(t *testing.T) {
	dsn := filepath.Join(t.TempDir(), "modcache.db")
	cache, err := Open(dsn)
	require.NoError(t, err)
	defer cache.Close()

	require.NoError(t, cache.Put("/src/a.fab", "hash-1", `{}`))

	_, ok := cache.Get("/src/a.fab", "hash-2")
	assert.False(t, ok)
}

func TestGetMissOnUnknownPath(t *testing.T) {
	dsn := filepath.Join(t.TempDir(), "modcache.db")
	cache, err := Open(dsn)
	require.NoError(t, err)
	defer cache.Close()

	_, ok := cache.Get("/src/never-put.fab", "hash")
	assert.False(t, ok)
}

func TestPutReplacesExistingRow(t *testing.T) {
	dsn := filepath.Join(t.TempDir(), "modcache.db")
	cache, err := Open(dsn)
	require.NoError(t, err)
	defer cache.Close()

	require.NoError(t, cache.Put("/src/a.fab", "hash-1", `{"v":1}`))
	require.NoError(t, cache.Put("/src/a.fab", "hash-1", `{"v":2}`))

	got, ok := cache.Get("/src/a.fab", "hash-1")
	require.True(t, ok)
	assert.Equal(t, `{"v":2}`, got)
}
