package task

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/kindredapp/kindred-api/internal/events"
)

// TaskFactoryEventHandler implements the events.EventHandler interface.
// It turns preference learning request events into queued tasks.
type TaskFactoryEventHandler struct {
	factory *PreferenceLearningTaskFactory
	queue   TaskQueueWriter
	logger  *slog.Logger
}

// NewTaskFactoryEventHandler creates a new event handler that uses the
// given factory to create tasks and enqueues them for the worker pool.
func NewTaskFactoryEventHandler(
	factory *PreferenceLearningTaskFactory,
	queue TaskQueueWriter,
	logger *slog.Logger,
) *TaskFactoryEventHandler {
	return &TaskFactoryEventHandler{
		factory: factory,
		queue:   queue,
		logger:  logger.With("component", "task_factory_event_handler"),
	}
}

// HandleEvent processes events by creating and enqueuing tasks. Events
// of other types are ignored, not errored, so additional handlers can
// coexist on the same emitter.
func (h *TaskFactoryEventHandler) HandleEvent(
	ctx context.Context,
	event *events.TaskRequestEvent,
) error {
	if event.Type != events.EventTypePreferenceLearning {
		h.logger.Debug("ignoring event with unsupported type",
			"event_type", event.Type,
			"event_id", event.ID)
		return nil
	}

	var payload events.PreferenceLearningPayload
	if err := event.UnmarshalPayload(&payload); err != nil {
		h.logger.Error("failed to unmarshal payload", "error", err, "event_id", event.ID)
		return fmt.Errorf("failed to unmarshal payload: %w", err)
	}

	userID, err := uuid.Parse(payload.UserID)
	if err != nil {
		h.logger.Error("invalid user ID in payload",
			"error", err,
			"user_id", payload.UserID,
			"event_id", event.ID)
		return fmt.Errorf("invalid user ID: %w", err)
	}

	t, err := h.factory.CreateTask(userID)
	if err != nil {
		h.logger.Error("failed to create task",
			"error", err,
			"user_id", userID,
			"event_id", event.ID)
		return fmt.Errorf("failed to create task: %w", err)
	}

	if err := h.queue.Enqueue(t); err != nil {
		h.logger.Error("failed to enqueue task",
			"error", err,
			"task_id", t.ID(),
			"user_id", userID,
			"event_id", event.ID)
		return fmt.Errorf("failed to enqueue task: %w", err)
	}

	h.logger.Info("task created and enqueued",
		"task_id", t.ID(),
		"user_id", userID,
		"event_id", event.ID)
	return nil
}

// Ensure TaskFactoryEventHandler implements events.EventHandler
var _ events.EventHandler = (*TaskFactoryEventHandler)(nil)
