package task

import (
	"log/slog"

	"github.com/google/uuid"
)

// PreferenceLearningTaskFactory creates PreferenceLearningTask instances
type PreferenceLearningTaskFactory struct {
	learner PreferenceLearner
	logger  *slog.Logger
}

// NewPreferenceLearningTaskFactory creates a new factory for PreferenceLearningTasks
func NewPreferenceLearningTaskFactory(
	learner PreferenceLearner,
	logger *slog.Logger,
) *PreferenceLearningTaskFactory {
	return &PreferenceLearningTaskFactory{
		learner: learner,
		logger:  logger.With("component", "preference_learning_task_factory"),
	}
}

// CreateTask creates a new PreferenceLearningTask for the specified user
func (f *PreferenceLearningTaskFactory) CreateTask(userID uuid.UUID) (Task, error) {
	return NewPreferenceLearningTask(userID, f.learner, f.logger)
}
