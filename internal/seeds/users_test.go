package seeds_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/empowered-auth/auth-backend/internal/auth"
	"github.com/empowered-auth/auth-backend/internal/seeds"
	"github.com/glebarez/sqlite"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const seedYAML = `users:
  - username: demo
    password: DemoPass123!
    email: demo@example.com
    name: Demo
    grade: other
    institute: Demo Institute
    city: Demo City
    marketing: "no"
`

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("opening sqlite: %v", err)
	}
	if err := auth.Migrate(gdb); err != nil {
		t.Fatalf("migrating: %v", err)
	}
	return gdb
}

func writeSeedFile(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "users.yaml")
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("writing seed file: %v", err)
	}
	return path
}

func TestSeedUsersCreatesHashedUser(t *testing.T) {
	gdb := newTestDB(t)
	path := writeSeedFile(t, seedYAML)

	if err := seeds.SeedUsers(gdb, path); err != nil {
		t.Fatalf("SeedUsers: %v", err)
	}

	var user auth.User
	if err := gdb.First(&user, "username = ?", "demo").Error; err != nil {
		t.Fatalf("seeded user not found: %v", err)
	}
	if user.HashedPassword == "DemoPass123!" {
		t.Error("password stored in plaintext")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte("DemoPass123!")); err != nil {
		t.Errorf("stored hash doesn't match seed password: %v", err)
	}
}

func TestSeedUsersIsIdempotent(t *testing.T) {
	gdb := newTestDB(t)
	path := writeSeedFile(t, seedYAML)

	if err := seeds.SeedUsers(gdb, path); err != nil {
		t.Fatalf("first run: %v", err)
	}
	if err := seeds.SeedUsers(gdb, path); err != nil {
		t.Fatalf("second run: %v", err)
	}

	var n int64
	if err := gdb.Model(&auth.User{}).Count(&n).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 1 {
		t.Errorf("expected 1 user after re-seeding, got %d", n)
	}
}

func TestSeedUsersRejectsInvalidGrade(t *testing.T) {
	gdb := newTestDB(t)
	path := writeSeedFile(t, `users:
  - username: bad
    password: x
    grade: 13th
`)

	if err := seeds.SeedUsers(gdb, path); err == nil {
		t.Fatal("expected an error for an invalid grade")
	}
}
