// internal/handlers/guest.go
package handlers

import (
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/jason-s-yu/memoria/internal/auth"
)

// EnsureGuestUser returns the guest id carried by the auth_token cookie. A missing or
// invalid token gets a fresh guest identity, and the new token is set on the response.
func EnsureGuestUser(w http.ResponseWriter, r *http.Request) (uuid.UUID, error) {
	if token := extractCookieToken(r.Header.Get("Cookie"), auth.CookieName); token != "" {
		if userID, err := auth.AuthenticateJWT(token); err == nil {
			return userID, nil
		}
	}

	userID, err := uuid.NewRandom()
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to generate guest id: %w", err)
	}
	token, err := auth.CreateGuestJWT(userID)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to create guest JWT: %w", err)
	}
	http.SetCookie(w, &http.Cookie{
		Name:     auth.CookieName,
		Value:    token,
		HttpOnly: true,
		Path:     "/",
		SameSite: http.SameSiteLaxMode,
	})
	return userID, nil
}

// authenticatedUser returns the guest id from the cookie without issuing a new one.
func authenticatedUser(r *http.Request) (uuid.UUID, error) {
	token := extractCookieToken(r.Header.Get("Cookie"), auth.CookieName)
	if token == "" {
		return uuid.Nil, auth.ErrInvalidToken
	}
	return auth.AuthenticateJWT(token)
}
