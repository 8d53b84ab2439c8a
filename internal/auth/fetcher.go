package auth

import (
	"github.com/empowered-auth/auth-backend/internal/middleware"
)

// FindSessionByID satisfies middleware.SessionFetcher so the session
// middleware can authenticate downstream requests against the session store.
func (h *Handler) FindSessionByID(id string) (middleware.SessionData, error) {
	var session Session
	if err := h.Service.DB.First(&session, "id = ?", id).Error; err != nil {
		return middleware.SessionData{}, err
	}

	return middleware.SessionData{
		UserID:    session.UserID,
		ExpiresAt: session.ExpiresAt,
	}, nil
}
