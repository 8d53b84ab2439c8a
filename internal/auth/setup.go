package auth

import "gorm.io/gorm"

// Migrate creates or updates the users and sessions tables.
func Migrate(gdb *gorm.DB) error {
	return gdb.AutoMigrate(&User{}, &Session{})
}
