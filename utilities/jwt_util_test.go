package utilities

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"linguastory-backend/internal/model"
)

func TestGenerateAndValidateTokens(t *testing.T) {
	user := &model.User{ID: 42, Username: "sara", Email: "sara@example.com"}

	access, refresh, err := GenerateTokens(user)
	require.NoError(t, err)
	require.NotEmpty(t, access)
	require.NotEmpty(t, refresh)

	claims, err := ValidateToken(access, false)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, "sara", claims.Username)
	assert.Equal(t, "sara@example.com", claims.Email)

	// A refresh token is not a valid access token and vice versa.
	_, err = ValidateToken(refresh, false)
	assert.Error(t, err)
	_, err = ValidateToken(access, true)
	assert.Error(t, err)
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	_, err := ValidateToken("not.a.token", false)
	assert.Error(t, err)
}

func TestRefreshTokens(t *testing.T) {
	user := &model.User{ID: 7, Username: "omar", Email: "omar@example.com"}
	_, refresh, err := GenerateTokens(user)
	require.NoError(t, err)

	newAccess, newRefresh, err := RefreshTokens(refresh)
	require.NoError(t, err)

	claims, err := ValidateToken(newAccess, false)
	require.NoError(t, err)
	assert.Equal(t, uint(7), claims.UserID)

	_, err = ValidateToken(newRefresh, true)
	assert.NoError(t, err)
}

func TestRefreshRejectsAccessToken(t *testing.T) {
	access, _, err := GenerateTokens(&model.User{ID: 1})
	require.NoError(t, err)

	_, _, err = RefreshTokens(access)
	assert.Error(t, err)
}

func TestEventBusDeliversToSubscribers(t *testing.T) {
	bus := NewEventBus()
	got := make(chan interface{}, 1)
	bus.Subscribe(EventLessonCompleted, func(data interface{}) {
		got <- data
	})

	bus.Publish(EventLessonCompleted, "lvl1-lesson-1")
	assert.Equal(t, "lvl1-lesson-1", <-got)

	// Publishing an event nobody subscribed to must not panic.
	bus.Publish(EventAudioFailed, "story")
}
