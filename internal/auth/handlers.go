package auth

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/empowered-auth/auth-backend/internal/middleware"
)

// Handler is the HTTP layer over Service. CookieSecure controls the Secure
// flag on session cookies and is on in production only.
type Handler struct {
	Service      *Service
	CookieSecure bool
}

func (h *Handler) setSessionCookie(w http.ResponseWriter, userID uint) error {
	sessionID, err := CreateSession(h.Service.DB, userID)
	if err != nil {
		return err
	}

	http.SetCookie(w, &http.Cookie{
		Name:     "session_id",
		Value:    sessionID,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   h.CookieSecure,
		MaxAge:   int(SessionTTL.Seconds()),
	})
	return nil
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeServiceError maps service errors onto HTTP statuses. Anything outside
// the taxonomy is logged and hidden behind a 500.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidCredentials):
		http.Error(w, "Invalid username or password", http.StatusUnauthorized)
	case errors.Is(err, ErrInvalidToken):
		http.Error(w, "Invalid Google token", http.StatusUnauthorized)
	case errors.Is(err, ErrAccountExists):
		http.Error(w, "Account already exists. Please log in.", http.StatusConflict)
	case errors.Is(err, ErrDuplicateField):
		http.Error(w, "Username or email is already taken.", http.StatusConflict)
	default:
		log.Printf("[auth] internal error: %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (h *Handler) LoginHandler(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request format", http.StatusBadRequest)
		return
	}
	if req.Username == "" || req.Password == "" {
		http.Error(w, "Username and password are required", http.StatusBadRequest)
		return
	}

	user, err := h.Service.Login(req.Username, req.Password)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	if err := h.setSessionCookie(w, user.ID); err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, user)
}

type googleVerifyRequest struct {
	Token string `json:"token"`
}

func (h *Handler) GoogleVerifyHandler(w http.ResponseWriter, r *http.Request) {
	var req googleVerifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request format", http.StatusBadRequest)
		return
	}
	if req.Token == "" {
		http.Error(w, "Token is required", http.StatusBadRequest)
		return
	}

	verified, err := h.Service.GoogleVerify(r.Context(), req.Token)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, verified)
}

type completeProfileRequest struct {
	Token     string `json:"token"`
	Username  string `json:"username"`
	Password  string `json:"password"`
	Grade     Grade  `json:"grade"`
	Institute string `json:"institute"`
	City      string `json:"city"`
	Marketing string `json:"marketing"`
}

func (h *Handler) CompleteProfileHandler(w http.ResponseWriter, r *http.Request) {
	var req completeProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request format", http.StatusBadRequest)
		return
	}
	if req.Token == "" || req.Username == "" || req.Password == "" {
		http.Error(w, "Token, username and password are required", http.StatusBadRequest)
		return
	}
	if !req.Grade.Valid() {
		http.Error(w, "Invalid grade", http.StatusBadRequest)
		return
	}

	user, err := h.Service.CompleteProfile(r.Context(), CompleteProfileInput{
		Token:     req.Token,
		Username:  req.Username,
		Password:  req.Password,
		Grade:     req.Grade,
		Institute: req.Institute,
		City:      req.City,
		Marketing: req.Marketing,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}

	if err := h.setSessionCookie(w, user.ID); err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, user)
}

func (h *Handler) MeHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized: missing user ID in context", http.StatusUnauthorized)
		return
	}

	var user User
	if err := h.Service.DB.First(&user, "id = ?", userID).Error; err != nil {
		http.Error(w, "Couldn't find user", http.StatusNotFound)
		return
	}

	writeJSON(w, http.StatusOK, user)
}

func (h *Handler) LogoutHandler(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie("session_id")
	if err != nil {
		http.Error(w, "Couldn't find cookie", http.StatusUnauthorized)
		return
	}

	var session Session
	if err := h.Service.DB.First(&session, "id = ?", cookie.Value).Error; err != nil {
		http.Error(w, "Couldn't find session", http.StatusUnauthorized)
		return
	}
	h.Service.DB.Delete(&session)

	// Replace the cookie with an expired empty one.
	http.SetCookie(w, &http.Cookie{
		Name:   "session_id",
		Value:  "",
		Path:   "/",
		MaxAge: -1,
	})

	w.WriteHeader(http.StatusOK)
}
