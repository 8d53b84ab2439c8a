package auth

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Service orchestrates the login and Google signup flows against an injected
// store handle and token verifier.
type Service struct {
	DB       *gorm.DB
	Verifier TokenVerifier
}

// Login authenticates a username/password pair and returns the user.
// Unknown username and wrong password both come back as
// ErrInvalidCredentials.
func (s *Service) Login(username, password string) (*User, error) {
	var user User
	err := s.DB.First(&user, "username = ?", username).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("looking up user: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}

	return &user, nil
}

// VerifiedToken echoes back a validated Google token with the claims the
// client needs to pre-fill the signup form.
type VerifiedToken struct {
	Token string `json:"token"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// GoogleVerify validates a Google ID token and checks that no account exists
// yet for its subject. It never creates anything; the client follows up with
// CompleteProfile once the remaining fields are collected.
func (s *Service) GoogleVerify(ctx context.Context, token string) (*VerifiedToken, error) {
	claims, err := s.Verifier.Verify(ctx, token)
	if err != nil {
		return nil, err
	}

	if _, err := s.userByGoogleID(claims.Subject); err == nil {
		return nil, ErrAccountExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	return &VerifiedToken{Token: token, Email: claims.Email, Name: claims.Name}, nil
}

// CompleteProfileInput carries the signup fields collected after a successful
// GoogleVerify, together with the re-sent ID token. There is no server-side
// state between the two steps, so the token is verified again from scratch.
type CompleteProfileInput struct {
	Token     string
	Username  string
	Password  string
	Grade     Grade
	Institute string
	City      string
	Marketing string
}

// CompleteProfile creates a Google-backed account and returns it. The token
// is re-verified and the subject re-checked exactly as in GoogleVerify; a
// username or email clash with a different account fails with
// ErrDuplicateField and leaves the store unchanged.
func (s *Service) CompleteProfile(ctx context.Context, in CompleteProfileInput) (*User, error) {
	claims, err := s.Verifier.Verify(ctx, in.Token)
	if err != nil {
		return nil, err
	}

	if _, err := s.userByGoogleID(claims.Subject); err == nil {
		return nil, ErrAccountExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	user := User{
		GoogleID:       &claims.Subject,
		Email:          claims.Email,
		Name:           claims.Name,
		Username:       in.Username,
		HashedPassword: string(hashed),
		Grade:          in.Grade,
		Institute:      in.Institute,
		City:           in.City,
		Marketing:      in.Marketing,
	}

	if err := s.DB.Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateField
		}
		return nil, fmt.Errorf("creating user: %w", err)
	}

	return &user, nil
}

func (s *Service) userByGoogleID(sub string) (*User, error) {
	var user User
	if err := s.DB.First(&user, "google_id = ?", sub).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("looking up google id: %w", err)
	}
	return &user, nil
}
