package services

import (
	"context"
	"database/sql"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"github.com/pvilks/wayfarer/internal/client/session"
	"github.com/pvilks/wayfarer/internal/client/store"
	"github.com/pvilks/wayfarer/internal/logging"

	_ "modernc.org/sqlite"
)

const testUserID = "user-1"

func newTestStore(t *testing.T) *store.Store {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	s, err := store.OpenDB(context.Background(), db)
	require.NoError(t, err)
	return s
}

func newTestSession(t *testing.T) *session.Session {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": testUserID,
		"exp": jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})
	signed, err := token.SignedString([]byte("test-secret"))
	require.NoError(t, err)

	sess, err := session.New(signed)
	require.NoError(t, err)
	return sess
}

func discardLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}
