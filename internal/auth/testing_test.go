package auth

import (
	"context"
	"testing"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens a fresh in-memory store with the same error translation the
// production Postgres handle uses, so duplicate-key detection behaves the same.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("opening sqlite: %v", err)
	}
	if err := Migrate(gdb); err != nil {
		t.Fatalf("migrating: %v", err)
	}
	return gdb
}

// stubVerifier resolves tokens from a fixed map; unknown tokens fail the same
// way a bad signature would.
type stubVerifier struct {
	tokens map[string]GoogleClaims
}

func (s stubVerifier) Verify(_ context.Context, token string) (GoogleClaims, error) {
	claims, ok := s.tokens[token]
	if !ok {
		return GoogleClaims{}, ErrInvalidToken
	}
	return claims, nil
}

func countRows(t *testing.T, gdb *gorm.DB, model interface{}) int64 {
	t.Helper()
	var n int64
	if err := gdb.Model(model).Count(&n).Error; err != nil {
		t.Fatalf("counting rows: %v", err)
	}
	return n
}
