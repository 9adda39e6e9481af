package events

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTaskRequestEvent(t *testing.T) {
	event, err := NewTaskRequestEvent("some_task", map[string]string{"key": "value"})
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, event.ID)
	assert.Equal(t, "some_task", event.Type)
	assert.False(t, event.CreatedAt.IsZero())

	var payload map[string]string
	require.NoError(t, event.UnmarshalPayload(&payload))
	assert.Equal(t, "value", payload["key"])
}

func TestNewTaskRequestEventUnserializablePayload(t *testing.T) {
	_, err := NewTaskRequestEvent("some_task", make(chan int))
	assert.Error(t, err)
}

func TestNewPreferenceLearningEvent(t *testing.T) {
	userID := uuid.New()

	event, err := NewPreferenceLearningEvent(userID)
	require.NoError(t, err)

	assert.Equal(t, EventTypePreferenceLearning, event.Type)

	var payload PreferenceLearningPayload
	require.NoError(t, event.UnmarshalPayload(&payload))
	assert.Equal(t, userID.String(), payload.UserID)
}
