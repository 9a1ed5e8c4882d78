package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sign(t *testing.T, method jwt.SigningMethod, secret any, claims jwtClaims) string {
	t.Helper()
	s, err := jwt.NewWithClaims(method, claims).SignedString(secret)
	require.NoError(t, err)
	return s
}

func claimsFor(subject string, expiresIn time.Duration) jwtClaims {
	now := time.Now()
	return jwtClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(expiresIn)),
		},
		Email: "owner@example.com",
	}
}

func TestJWTVerifier_Verify(t *testing.T) {
	const secret = "test-secret"
	v := NewJWTVerifier(secret)

	tests := []struct {
		name    string
		token   string
		wantID  string
		wantErr bool
	}{
		{
			name:   "valid token",
			token:  sign(t, jwt.SigningMethodHS256, []byte(secret), claimsFor("user-123", time.Hour)),
			wantID: "user-123",
		},
		{
			name:    "wrong secret",
			token:   sign(t, jwt.SigningMethodHS256, []byte("other"), claimsFor("user-123", time.Hour)),
			wantErr: true,
		},
		{
			name:    "expired",
			token:   sign(t, jwt.SigningMethodHS256, []byte(secret), claimsFor("user-123", -time.Minute)),
			wantErr: true,
		},
		{
			name:    "other hmac algorithm",
			token:   sign(t, jwt.SigningMethodHS512, []byte(secret), claimsFor("user-123", time.Hour)),
			wantErr: true,
		},
		{
			name:    "missing subject",
			token:   sign(t, jwt.SigningMethodHS256, []byte(secret), claimsFor("", time.Hour)),
			wantErr: true,
		},
		{
			name:    "garbage",
			token:   "not-a-jwt",
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, err := v.Verify(tt.token)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantID, id)
		})
	}
}
