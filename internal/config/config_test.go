package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{EnvCacheDB, EnvDefaultTarget, EnvPackageName, EnvLibsqlToken} {
		old, had := os.LookupEnv(key)
		os.Unsetenv(key)
		t.Cleanup(func() {
			if had {
				os.Setenv(key, old)
			}
		})
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	d := Load()
	assert.Equal(t, defaultCacheDB, d.CacheDB)
	assert.Empty(t, d.DefaultTarget)
	assert.Empty(t, d.PackageName)
}

func TestLoadReadsEnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvCacheDB, "/tmp/custom-cache.db")
	t.Setenv(EnvDefaultTarget, "rs")
	t.Setenv(EnvPackageName, "widgets")

	d := Load()
	assert.Equal(t, "/tmp/custom-cache.db", d.CacheDB)
	assert.Equal(t, "rs", d.DefaultTarget)
	assert.Equal(t, "widgets", d.PackageName)
}

func TestLoadIgnoresMissingDotenv(t *testing.T) {
	clearEnv(t)
	wd, err := os.Getwd()
	assert.NoError(t, err)
	assert.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { os.Chdir(wd) })

	assert.NotPanics(t, func() { Load() })
}
