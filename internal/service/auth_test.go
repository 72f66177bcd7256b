package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterAndLogin(t *testing.T) {
	db := setupTestDB(t)
	auth := NewAuthService(db, "test-secret")

	user, token, err := auth.Register("alice", "alice@example.com", "password123")
	require.NoError(t, err)
	assert.NotZero(t, user.ID)
	assert.NotEmpty(t, token)
	assert.NotEqual(t, "password123", user.PasswordHash)

	claims, err := auth.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, "alice", claims.Username)

	loginToken, err := auth.Login("alice", "password123")
	require.NoError(t, err)
	assert.NotEmpty(t, loginToken)

	_, err = auth.Login("alice", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = auth.Login("nobody", "password123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestRegisterDuplicateUsername(t *testing.T) {
	db := setupTestDB(t)
	auth := NewAuthService(db, "test-secret")

	_, _, err := auth.Register("alice", "alice@example.com", "password123")
	require.NoError(t, err)

	_, _, err = auth.Register("alice", "other@example.com", "password456")
	assert.ErrorIs(t, err, ErrUserExists)
}

func TestRegisterMissingFields(t *testing.T) {
	db := setupTestDB(t)
	auth := NewAuthService(db, "test-secret")

	_, _, err := auth.Register("", "alice@example.com", "password123")
	assert.ErrorIs(t, err, ErrMissingField)
}

func TestValidateTokenRejectsTampered(t *testing.T) {
	db := setupTestDB(t)
	auth := NewAuthService(db, "test-secret")
	other := NewAuthService(db, "other-secret")

	_, token, err := auth.Register("alice", "alice@example.com", "password123")
	require.NoError(t, err)

	_, err = other.ValidateToken(token)
	assert.Error(t, err)

	_, err = auth.ValidateToken("not-a-token")
	assert.Error(t, err)
}

func TestSetPassword(t *testing.T) {
	db := setupTestDB(t)
	auth := NewAuthService(db, "test-secret")

	user, _, err := auth.Register("alice", "alice@example.com", "password123")
	require.NoError(t, err)

	require.NoError(t, auth.SetPassword(user.ID, "newpassword"))

	_, err = auth.Login("alice", "password123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = auth.Login("alice", "newpassword")
	assert.NoError(t, err)

	assert.ErrorIs(t, auth.SetPassword(9999, "whatever"), ErrUserNotFound)
}
