// Package identity resolves an optional bearer token into a caller
// identity. Unlike middleware-enforced auth, resolution never rejects the
// request: a missing, malformed, or expired token just means the caller is
// a guest.
package identity

import (
	"fmt"
	"strings"

	"github.com/golang-jwt/jwt/v4"
)

// Identity describes who the caller is for the current request.
type Identity struct {
	Authenticated bool
	UserID        string
}

// Guest is the identity of an anonymous caller.
var Guest = Identity{}

// Resolver validates bearer tokens issued by the login endpoint.
type Resolver struct {
	secret []byte
}

// NewResolver creates a resolver sharing the signing secret with the JWT
// middleware.
func NewResolver(secret string) *Resolver {
	return &Resolver{secret: []byte(secret)}
}

// Resolve inspects an Authorization header value and returns the caller's
// identity. Every failure path degrades to Guest rather than erroring.
func (r *Resolver) Resolve(authHeader string) Identity {
	if authHeader == "" {
		return Guest
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return Guest
	}

	token, err := jwt.Parse(parts[1], func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return r.secret, nil
	})
	if err != nil || !token.Valid {
		return Guest
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return Guest
	}

	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return Guest
	}

	return Identity{Authenticated: true, UserID: userID}
}
