package testsupport

import (
	"database/sql"
	"fmt"
	"sync/atomic"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"

	_ "github.com/mattn/go-sqlite3"
)

var dbCounter atomic.Int64

// NewSQLiteMemoryDB opens a process-shared in-memory sqlite database.
func NewSQLiteMemoryDB() (*sql.DB, error) {
	return sql.Open("sqlite3", "file::memory:?cache=shared")
}

// NewBunDB opens a fresh named in-memory sqlite database wrapped in bun.
// Each call gets its own database so tests do not share state.
func NewBunDB() (*bun.DB, error) {
	name := fmt.Sprintf("corpus_test_%d", dbCounter.Add(1))
	sqlDB, err := sql.Open("sqlite3", fmt.Sprintf("file:%s?mode=memory&cache=shared", name))
	if err != nil {
		return nil, err
	}
	// Keep a single connection so the in-memory database survives idle closes.
	sqlDB.SetMaxOpenConns(1)
	return bun.NewDB(sqlDB, sqlitedialect.New()), nil
}
