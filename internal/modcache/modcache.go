// Package modcache is the CLI detector's module resolution cache: a
// sqlite- (or libsql-) backed table of (absolute path, content hash) ->
// serialized command-tree fragment rows, so a clidetector run revisiting
// the same mounted submodule across a diamond-shaped mount graph (or
// across multiple root programs compiled in one process) doesn't re-parse
// it. Modeled directly on the teacher's db.Connect/db.Migrate pair
// (db/sqlite.go) and its models package (models/models.go); the core
// compiler phases stay cache-free and re-entrant; only internal/clidetector
// ever talks to this package.
package modcache

import (
	"database/sql"
	"database/sql/driver"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	libsql "github.com/tursodatabase/libsql-client-go/libsql"
	"gorm.io/datatypes"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"

	"github.com/oxhq/fabc/internal/config"
)

// Fragment is one cached row: the resolved command-tree JSON for the
// submodule at Path, keyed additionally by a content Hash so an edited
// source invalidates the cache entry naturally (a new hash simply misses).
type Fragment struct {
	ID   string `gorm:"primaryKey;type:varchar(64)"`
	Path string `gorm:"type:text;index"`
	Hash string `gorm:"type:varchar(64);index"`

	// CommandTree is the JSON of this submodule's command subtree together
	// with the nested mounts it resolved (clidetector's cachedFragment),
	// stored as flexible JSON exactly as the teacher's Stage model stores
	// TargetQuery/ScopeAST.
	CommandTree datatypes.JSON `gorm:"type:jsonb"`
}

func (Fragment) TableName() string { return "module_cache" }

// Cache wraps a *gorm.DB opened against either a local sqlite file or a
// remote libsql:// DSN, selected by DSN shape exactly as the teacher's
// db.Connect branches on isURL(dsn).
type Cache struct {
	db *gorm.DB
}

// Open connects to dsn (a file path, or a libsql://.../https:// URL for a
// shared build-farm cache) and runs migrations. An empty dsn falls back to
// config.EnvCacheDB's resolved default.
func Open(dsn string) (*Cache, error) {
	if dsn == "" {
		dsn = config.Load().CacheDB
	}

	if !isURL(dsn) {
		if dir := filepath.Dir(dsn); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("modcache: failed to create cache directory: %w", err)
			}
		}
	}

	gormCfg := &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)}

	var (
		dialector gorm.Dialector
		conn      *sql.DB
	)
	if isURL(dsn) {
		var (
			connector driver.Connector
			err       error
		)
		if token := os.Getenv(config.EnvLibsqlToken); token != "" {
			connector, err = libsql.NewConnector(dsn, libsql.WithAuthToken(token))
		} else {
			connector, err = libsql.NewConnector(dsn)
		}
		if err != nil {
			return nil, fmt.Errorf("modcache: failed to create libsql connector: %w", err)
		}
		conn = sql.OpenDB(connector)
		dialector = sqlite.New(sqlite.Config{DriverName: "libsql", Conn: conn, DSN: dsn})
	} else {
		dialector = sqlite.Open(dsn)
	}

	db, err := gorm.Open(dialector, gormCfg)
	if err != nil {
		if conn != nil {
			_ = conn.Close()
		}
		return nil, fmt.Errorf("modcache: failed to connect: %w", err)
	}

	if err := db.AutoMigrate(&Fragment{}); err != nil {
		return nil, fmt.Errorf("modcache: migration failed: %w", err)
	}

	return &Cache{db: db}, nil
}

// isURL mirrors the teacher's db.isURL: a DSN is remote when it looks like
// an http(s) or libsql URL rather than a local file path.
func isURL(dsn string) bool {
	return strings.HasPrefix(dsn, "http://") || strings.HasPrefix(dsn, "https://") || strings.HasPrefix(dsn, "libsql")
}

// Get looks up the cached fragment for (path, hash). A hash mismatch (the
// file changed since it was cached) is treated as a miss.
func (c *Cache) Get(path, hash string) (string, bool) {
	var row Fragment
	err := c.db.Where("path = ? AND hash = ?", path, hash).First(&row).Error
	if err != nil {
		return "", false
	}
	return string(row.CommandTree), true
}

// Put stores the serialized command-tree fragment for (path, hash),
// replacing any prior row with the same ID. The row's primary key is set
// before the call, so a plain Save would issue an UPDATE and silently
// affect zero rows on first insert; Clauses(OnConflict) forces the
// insert-or-update gorm's Save alone won't give us here.
func (c *Cache) Put(path, hash, commandTreeJSON string) error {
	row := Fragment{
		ID:          path + "@" + hash,
		Path:        path,
		Hash:        hash,
		CommandTree: datatypes.JSON(commandTreeJSON),
	}
	return c.db.Clauses(clause.OnConflict{UpdateAll: true}).Create(&row).Error
}

// Close releases the underlying connection.
func (c *Cache) Close() error {
	sqlDB, err := c.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
