package jwt

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndValidateToken(t *testing.T) {
	manager := NewManager("test-secret", time.Hour)
	userID := uuid.New()

	token, err := manager.GenerateToken(userID, "writer@example.com")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := manager.ValidateToken(token)
	require.NoError(t, err)

	assert.Equal(t, userID.String(), claims.UserID)
	assert.Equal(t, userID.String(), claims.Subject)
	assert.Equal(t, "writer@example.com", claims.Email)

	parsed, err := claims.SubjectID()
	require.NoError(t, err)
	assert.Equal(t, userID, parsed)
}

func TestValidateTokenWrongSecret(t *testing.T) {
	manager := NewManager("test-secret", time.Hour)

	token, err := manager.GenerateToken(uuid.New(), "writer@example.com")
	require.NoError(t, err)

	other := NewManager("other-secret", time.Hour)
	_, err = other.ValidateToken(token)
	assert.Error(t, err)
}

func TestValidateTokenExpired(t *testing.T) {
	manager := NewManager("test-secret", -time.Minute)

	token, err := manager.GenerateToken(uuid.New(), "writer@example.com")
	require.NoError(t, err)

	_, err = manager.ValidateToken(token)
	assert.Error(t, err)
}

func TestSubjectIDFallsBackToSubject(t *testing.T) {
	userID := uuid.New()
	claims := &Claims{}
	claims.Subject = userID.String()

	parsed, err := claims.SubjectID()
	require.NoError(t, err)
	assert.Equal(t, userID, parsed)
}
