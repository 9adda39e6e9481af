package task

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/kindredapp/kindred-api/internal/service/matching"
)

// Common errors
var (
	ErrNilLearner  = errors.New("learner cannot be nil")
	ErrNilLogger   = errors.New("logger cannot be nil")
	ErrEmptyUserID = errors.New("user ID cannot be empty")
)

// PreferenceLearner defines the learning operation the task delegates
// to. It is implemented by matching.Learner.
type PreferenceLearner interface {
	// Learn runs one learning session for the given user
	Learn(ctx context.Context, userID uuid.UUID) (*matching.LearningSummary, error)
}

// preferenceLearningPayload represents the serialized data stored in the task
type preferenceLearningPayload struct {
	UserID uuid.UUID `json:"user_id"`
}

// PreferenceLearningTask implements the Task interface for running one
// preference learning session in the background.
type PreferenceLearningTask struct {
	id      uuid.UUID
	userID  uuid.UUID
	learner PreferenceLearner
	logger  *slog.Logger
	status  TaskStatus
}

// NewPreferenceLearningTask creates a new preference learning task
func NewPreferenceLearningTask(
	userID uuid.UUID,
	learner PreferenceLearner,
	logger *slog.Logger,
) (*PreferenceLearningTask, error) {
	if learner == nil {
		return nil, ErrNilLearner
	}
	if logger == nil {
		return nil, ErrNilLogger
	}
	if userID == uuid.Nil {
		return nil, ErrEmptyUserID
	}

	return &PreferenceLearningTask{
		id:      uuid.New(),
		userID:  userID,
		learner: learner,
		logger:  logger.With("task_type", TaskTypePreferenceLearning, "user_id", userID),
		status:  TaskStatusPending,
	}, nil
}

// ID returns the task's unique identifier
func (t *PreferenceLearningTask) ID() uuid.UUID {
	return t.id
}

// Type returns the task type identifier
func (t *PreferenceLearningTask) Type() string {
	return TaskTypePreferenceLearning
}

// Payload returns the task data as a byte slice
func (t *PreferenceLearningTask) Payload() []byte {
	payload := preferenceLearningPayload{
		UserID: t.userID,
	}

	data, err := json.Marshal(payload)
	if err != nil {
		t.logger.Error("failed to marshal task payload", "error", err)
		return []byte{}
	}

	return data
}

// Status returns the current task status
func (t *PreferenceLearningTask) Status() TaskStatus {
	return t.status
}

// Execute runs the learning session and records the outcome in the task
// status. A user whose profile has vanished between enqueue and
// execution fails the task; the learner's own session semantics handle
// everything else.
func (t *PreferenceLearningTask) Execute(ctx context.Context) error {
	t.status = TaskStatusProcessing
	t.logger.Info("starting preference learning task")

	if err := ctx.Err(); err != nil {
		t.status = TaskStatusFailed
		t.logger.Error("task cancelled by context", "error", err)
		return fmt.Errorf("task cancelled by context: %w", err)
	}

	summary, err := t.learner.Learn(ctx, t.userID)
	if err != nil {
		t.status = TaskStatusFailed
		t.logger.Error("learning session failed", "error", err)
		return fmt.Errorf("learning session failed: %w", err)
	}

	t.status = TaskStatusCompleted
	t.logger.Info("preference learning task completed",
		"accepted_seen", summary.AcceptedSeen,
		"rejected_seen", summary.RejectedSeen,
		"interest_weights_learned", summary.InterestWeightsLearned,
		"learning_sessions", summary.LearningSessions)
	return nil
}

// Ensure PreferenceLearningTask implements Task
var _ Task = (*PreferenceLearningTask)(nil)
