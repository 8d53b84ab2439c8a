package auth

import (
	"context"
	"fmt"

	"google.golang.org/api/idtoken"
)

// GoogleClaims is the subset of ID-token claims the signup flow needs.
type GoogleClaims struct {
	Subject string
	Email   string
	Name    string
}

// TokenVerifier validates a Google ID token and extracts its claims.
// Signature verification itself is delegated to Google's library; tests swap
// in a stub.
type TokenVerifier interface {
	Verify(ctx context.Context, token string) (GoogleClaims, error)
}

type googleVerifier struct {
	clientID string
}

// NewGoogleVerifier returns a TokenVerifier bound to the given OAuth client
// id. Tokens issued for any other audience fail verification.
func NewGoogleVerifier(clientID string) TokenVerifier {
	return &googleVerifier{clientID: clientID}
}

func (g *googleVerifier) Verify(ctx context.Context, token string) (GoogleClaims, error) {
	payload, err := idtoken.Validate(ctx, token, g.clientID)
	if err != nil {
		return GoogleClaims{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	return claimsFromPayload(payload), nil
}

func claimsFromPayload(payload *idtoken.Payload) GoogleClaims {
	claims := GoogleClaims{
		Subject: payload.Subject,
		Email:   stringClaim(payload.Claims, "email"),
	}

	// Prefer the given name, fall back to the full name.
	if name := stringClaim(payload.Claims, "given_name"); name != "" {
		claims.Name = name
	} else {
		claims.Name = stringClaim(payload.Claims, "name")
	}

	return claims
}

func stringClaim(claims map[string]interface{}, key string) string {
	if v, ok := claims[key].(string); ok {
		return v
	}
	return ""
}
