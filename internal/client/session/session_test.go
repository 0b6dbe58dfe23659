package session

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signedToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	s, err := token.SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return s
}

func TestNew_ExtractsSubject(t *testing.T) {
	tok := signedToken(t, jwt.MapClaims{
		"sub": "user-42",
		"exp": jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})

	s, err := New(tok)
	require.NoError(t, err)
	assert.Equal(t, "user-42", s.UserID())
	assert.Equal(t, tok, s.Token())
}

func TestNew_MissingSubject(t *testing.T) {
	tok := signedToken(t, jwt.MapClaims{"exp": jwt.NewNumericDate(time.Now().Add(time.Hour))})

	_, err := New(tok)
	assert.Error(t, err)
}

func TestNew_Garbage(t *testing.T) {
	_, err := New("not-a-jwt")
	assert.Error(t, err)
}
