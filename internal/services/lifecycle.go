package services

import (
	"fmt"
	"time"

	"task-tracker.com/task-tracker/internal/constants"
	model "task-tracker.com/task-tracker/internal/models"
)

// applyCompletion enforces the completion invariant after a mutation. A
// completed task always reports full progress. completedAt is stamped when
// the task enters the completed status, or when it is missing. Leaving the
// completed status does not revert either field.
func applyCompletion(task *model.Task, previous constants.TaskStatus, now time.Time) {
	if task.Status != constants.StatusCompleted {
		return
	}

	task.Progress = 100
	if previous != constants.StatusCompleted || task.CompletedAt == nil {
		completedAt := now.UTC()
		task.CompletedAt = &completedAt
	}
}

// appendAttachments adds URLs after the existing ones, preserving order.
func appendAttachments(task *model.Task, urls ...[]string) {
	for _, batch := range urls {
		task.Attachments = append(task.Attachments, batch...)
	}
}

func taskUploadPrefix(now time.Time) string {
	now = now.UTC()
	return fmt.Sprintf("tasks/%04d/%02d/%02d", now.Year(), int(now.Month()), now.Day())
}

func userUploadPrefix(userID string) string {
	return "users/" + userID
}
