package seeds

import (
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/empowered-auth/auth-backend/internal/auth"
	"github.com/goccy/go-yaml"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// SeedUser is one entry in the users seed file. Passwords are plaintext in
// the file and hashed on insert, so seed files are for dev databases only.
type SeedUser struct {
	Username  string     `yaml:"username"`
	Password  string     `yaml:"password"`
	Email     string     `yaml:"email"`
	Name      string     `yaml:"name"`
	Grade     auth.Grade `yaml:"grade"`
	Institute string     `yaml:"institute"`
	City      string     `yaml:"city"`
	Marketing string     `yaml:"marketing"`
}

type seedFile struct {
	Users []SeedUser `yaml:"users"`
}

// SeedUsers loads the given YAML file and inserts any users that don't exist
// yet. Existing usernames are skipped, not updated.
func SeedUsers(gdb *gorm.DB, path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("could not read %s: %w", path, err)
	}

	var file seedFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}

	seeded := 0
	for _, su := range file.Users {
		if !su.Grade.Valid() {
			return fmt.Errorf("user %s: invalid grade %q", su.Username, su.Grade)
		}

		var existing auth.User
		err := gdb.First(&existing, "username = ?", su.Username).Error
		if err == nil {
			log.Printf("⚠️ User exists, skipping: %s", su.Username)
			continue
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("DB error on user %s: %w", su.Username, err)
		}

		hashed, err := bcrypt.GenerateFromPassword([]byte(su.Password), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("hashing password for %s: %w", su.Username, err)
		}

		user := auth.User{
			Username:       su.Username,
			HashedPassword: string(hashed),
			Email:          su.Email,
			Name:           su.Name,
			Grade:          su.Grade,
			Institute:      su.Institute,
			City:           su.City,
			Marketing:      su.Marketing,
		}
		if err := gdb.Create(&user).Error; err != nil {
			return fmt.Errorf("failed to create user %s: %w", su.Username, err)
		}
		seeded++
	}

	log.Printf("✅ Seeded %d users", seeded)
	return nil
}
