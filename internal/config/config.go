// Package config loads .env and environment defaults for cmd/fabc, which
// applies its CLI flags on top of them, mirroring the teacher's cmd/morfx flag style (pflag, loaded before any
// flag parsing, flags always win) and its db.Connect "DSN env var with a
// sane local default" convention.
package config

import (
	"os"

	"github.com/joho/godotenv"
)

// Env names fabc reads from the process environment (or an optional .env
// file in the working directory) before flags are parsed. Flags always
// take precedence over these.
const (
	EnvCacheDB       = "FABC_CACHE_DB"
	EnvDefaultTarget = "FABC_DEFAULT_TARGET"
	EnvPackageName   = "FABC_PACKAGE_NAME"
	EnvLibsqlToken   = "FABC_LIBSQL_AUTH_TOKEN"
)

const defaultCacheDB = ".fabc/modcache.db"

// Defaults is the set of values config.Load resolves from .env/environment,
// before cobra flag binding applies any explicit override.
type Defaults struct {
	CacheDB       string
	DefaultTarget string
	PackageName   string
}

// Load reads an optional .env file in the working directory (ignoring a
// missing file, exactly as the teacher's cmd/morfx and db packages do: `_ =
// godotenv.Load()`), then resolves Defaults from the environment.
func Load() Defaults {
	_ = godotenv.Load()

	d := Defaults{
		CacheDB: defaultCacheDB,
	}
	if v := os.Getenv(EnvCacheDB); v != "" {
		d.CacheDB = v
	}
	if v := os.Getenv(EnvDefaultTarget); v != "" {
		d.DefaultTarget = v
	}
	if v := os.Getenv(EnvPackageName); v != "" {
		d.PackageName = v
	}
	return d
}
