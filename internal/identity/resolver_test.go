package identity

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

const testSecret = "test-secret-key-with-enough-length!!"

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}
	return signed
}

func TestResolve(t *testing.T) {
	resolver := NewResolver(testSecret)

	valid := signToken(t, testSecret, jwt.MapClaims{
		"user_id": "user-123",
		"exp":     time.Now().Add(time.Hour).Unix(),
	})
	expired := signToken(t, testSecret, jwt.MapClaims{
		"user_id": "user-123",
		"exp":     time.Now().Add(-time.Hour).Unix(),
	})
	wrongKey := signToken(t, "some-other-secret-key-entirely-ok", jwt.MapClaims{
		"user_id": "user-123",
		"exp":     time.Now().Add(time.Hour).Unix(),
	})
	noUserID := signToken(t, testSecret, jwt.MapClaims{
		"exp": time.Now().Add(time.Hour).Unix(),
	})

	tests := []struct {
		name       string
		header     string
		wantAuth   bool
		wantUserID string
	}{
		{
			name:       "valid token",
			header:     "Bearer " + valid,
			wantAuth:   true,
			wantUserID: "user-123",
		},
		{
			name:   "empty header",
			header: "",
		},
		{
			name:   "no bearer prefix",
			header: valid,
		},
		{
			name:   "wrong scheme",
			header: "Basic " + valid,
		},
		{
			name:   "garbage token",
			header: "Bearer not.a.token",
		},
		{
			name:   "expired token",
			header: "Bearer " + expired,
		},
		{
			name:   "signed with different key",
			header: "Bearer " + wrongKey,
		},
		{
			name:   "missing user_id claim",
			header: "Bearer " + noUserID,
		},
		{
			name:       "lowercase bearer",
			header:     "bearer " + valid,
			wantAuth:   true,
			wantUserID: "user-123",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := resolver.Resolve(tt.header)
			if got.Authenticated != tt.wantAuth {
				t.Errorf("Authenticated = %v, want %v", got.Authenticated, tt.wantAuth)
			}
			if got.UserID != tt.wantUserID {
				t.Errorf("UserID = %q, want %q", got.UserID, tt.wantUserID)
			}
		})
	}
}

func TestResolveNeverPanics(t *testing.T) {
	resolver := NewResolver(testSecret)
	for _, header := range []string{"Bearer", "Bearer ", "  ", "Bearer a b c"} {
		got := resolver.Resolve(header)
		if got.Authenticated {
			t.Errorf("header %q resolved as authenticated", header)
		}
	}
}
