package auth

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
)

const (
	// SessionTTL is how long an issued session stays valid.
	SessionTTL = 7 * 24 * time.Hour

	sessionTokenBytes = 32
	maxSessionTries   = 3
)

// newSessionID is a var so tests can pin token values to exercise the
// collision path.
var newSessionID = func() (string, error) {
	buf := make([]byte, sessionTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

// CreateSession persists a new session for userID and returns its opaque id.
//
// A duplicate-key failure means the random id collided with an existing row;
// the insert is discarded and a fresh id is tried, up to maxSessionTries total
// attempts. Any other store error propagates immediately. Each failed insert
// is its own rolled-back transaction, so exhaustion leaves no rows behind.
func CreateSession(gdb *gorm.DB, userID uint) (string, error) {
	expiresAt := time.Now().UTC().Add(SessionTTL)

	for try := 0; try < maxSessionTries; try++ {
		id, err := newSessionID()
		if err != nil {
			return "", fmt.Errorf("generating session id: %w", err)
		}

		err = gdb.Create(&Session{
			ID:        id,
			UserID:    userID,
			ExpiresAt: expiresAt,
		}).Error
		if err == nil {
			return id, nil
		}
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			continue
		}
		return "", fmt.Errorf("storing session: %w", err)
	}

	return "", ErrSessionExhausted
}
