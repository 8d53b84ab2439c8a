package auth

import "time"

// Grade is the school/college category a user self-reports at signup.
type Grade string

const (
	Grade8th          Grade = "8th"
	Grade9th          Grade = "9th"
	Grade10th         Grade = "10th"
	Grade11th         Grade = "11th"
	Grade12th         Grade = "12th"
	GradeUndergrad    Grade = "undergraduate"
	GradePostgrad     Grade = "postgraduate"
	GradeOther        Grade = "other"
)

func (g Grade) Valid() bool {
	switch g {
	case Grade8th, Grade9th, Grade10th, Grade11th, Grade12th,
		GradeUndergrad, GradePostgrad, GradeOther:
		return true
	}
	return false
}

// User is either a password account or a Google account. The two variants
// share one row shape: GoogleID is set only for accounts created through the
// Google flow and is nil for direct registrations.
type User struct {
	ID             uint    `gorm:"primaryKey" json:"id"`
	GoogleID       *string `gorm:"uniqueIndex" json:"-"`
	Username       string  `gorm:"uniqueIndex;not null" json:"username"`
	HashedPassword string  `gorm:"not null" json:"-"`
	Email          string  `gorm:"uniqueIndex" json:"email"`
	Name           string  `gorm:"not null" json:"name"`
	Grade          Grade   `gorm:"not null" json:"grade"`
	Institute      string  `gorm:"not null" json:"institute"`
	City           string  `gorm:"not null" json:"city"`
	Marketing      string  `gorm:"not null" json:"marketing"`
}

// Session is a server-side login record. The ID is the opaque token handed to
// the client as the session_id cookie.
type Session struct {
	ID        string    `gorm:"primaryKey" json:"-"`
	UserID    uint      `gorm:"not null;index" json:"-"`
	ExpiresAt time.Time `gorm:"not null"`
	CreatedAt time.Time

	User User `gorm:"constraint:OnDelete:CASCADE"`
}

func (User) TableName() string    { return "users" }
func (Session) TableName() string { return "sessions" }
