// Package testdb opens throwaway SQLite databases for package tests.
package testdb

import (
	"fmt"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/UFAZ-L2-CS1/DADLY/config"
	"github.com/UFAZ-L2-CS1/DADLY/models"
)

var seq atomic.Int64

// Open returns a migrated in-memory database private to t. The pool holds a
// single connection, so concurrent callers queue instead of seeing separate
// in-memory databases.
func Open(t testing.TB) *gorm.DB {
	t.Helper()
	return open(t, fmt.Sprintf("file:testdb%d?mode=memory&cache=shared", seq.Add(1)), 1)
}

// OpenConcurrent returns a migrated file-backed database that serves up to
// conns connections at once. Writers wait on each other through SQLite's
// busy timeout, so transactions from different goroutines really overlap.
func OpenConcurrent(t testing.TB, conns int) *gorm.DB {
	t.Helper()
	path := filepath.Join(t.TempDir(), "dadly.db")
	return open(t, "file:"+path+"?_pragma=busy_timeout(10000)", conns)
}

func open(t testing.TB, dsn string, conns int) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Discard,
		NowFunc:        func() time.Time { return time.Now().UTC() },
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(conns)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := config.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

// Recipe inserts a recipe with the given ingredient text entries.
func Recipe(t testing.TB, db *gorm.DB, name string, ingredients ...string) models.Recipe {
	t.Helper()
	r := models.Recipe{
		Name:         name,
		PrepTime:     10,
		CookTime:     20,
		Difficulty:   models.DifficultyEasy,
		Instructions: "Cook it.",
		Ingredients:  models.EncodeIngredients(ingredients),
	}
	if err := db.Create(&r).Error; err != nil {
		t.Fatalf("create recipe: %v", err)
	}
	return r
}

// User inserts a user with a placeholder password hash.
func User(t testing.TB, db *gorm.DB, email string) models.User {
	t.Helper()
	u := models.User{Email: email, Name: "Test", HashedPassword: "x", DietaryType: models.DietNone}
	if err := db.Create(&u).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}
	return u
}
