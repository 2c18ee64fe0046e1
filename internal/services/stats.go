package services

import (
	"task-tracker.com/task-tracker/internal/constants"
	dto "task-tracker.com/task-tracker/internal/data_models"
	model "task-tracker.com/task-tracker/internal/models"
)

const recentTasksLimit = 5

// BuildTaskStats reduces a task set to the dashboard counters. Tasks with a
// status outside the four buckets still count towards the totals.
func BuildTaskStats(tasks []model.Task) dto.TaskStats {
	stats := dto.TaskStats{TotalTasks: len(tasks)}

	totalProgress := 0
	for _, task := range tasks {
		stats.TotalStoryPoints += task.StoryPoints
		totalProgress += task.Progress

		switch {
		case task.Status == constants.StatusCompleted:
			stats.CompletedTasks++
		case task.Status.IsInProgress():
			stats.InProgressTasks++
		case task.Status == constants.StatusNew:
			stats.NewTasks++
		case task.Status == constants.StatusInReview:
			stats.InReviewTasks++
		}
	}

	if stats.TotalTasks > 0 {
		stats.AverageProgress = float64(totalProgress) / float64(stats.TotalTasks)
	}

	// Guarded on story points but divided by the task count, as the
	// dashboard has always reported it.
	if stats.TotalStoryPoints > 0 {
		stats.OverallEfficiency = float64(stats.CompletedTasks*100) / float64(stats.TotalTasks)
	}

	return stats
}

type userAccumulator struct {
	stats         dto.UserStats
	taskCount     int
	totalProgress int
}

// BuildUserStats groups tasks by assignee in order of first appearance.
// Tasks without an assignee are skipped.
func BuildUserStats(tasks []model.Task) []dto.UserStats {
	order := make([]string, 0)
	byUser := make(map[string]*userAccumulator)

	for _, task := range tasks {
		if task.AssignedToID == "" {
			continue
		}

		acc, ok := byUser[task.AssignedToID]
		if !ok {
			acc = &userAccumulator{stats: dto.UserStats{UserID: task.AssignedToID}}
			byUser[task.AssignedToID] = acc
			order = append(order, task.AssignedToID)
		}

		acc.taskCount++
		acc.totalProgress += task.Progress
		acc.stats.TotalStoryPoints += task.StoryPoints
		if task.Status == constants.StatusCompleted {
			acc.stats.CompletedTasks++
		}
	}

	result := make([]dto.UserStats, 0, len(order))
	for _, userID := range order {
		acc := byUser[userID]
		if acc.taskCount > 0 {
			acc.stats.AverageProgress = float64(acc.totalProgress) / float64(acc.taskCount)
			// Same rule as the overall figure: a user whose tasks carry no
			// story points reports zero efficiency, otherwise completed tasks
			// over assigned tasks.
			if acc.stats.TotalStoryPoints > 0 {
				acc.stats.Efficiency = float64(acc.stats.CompletedTasks*100) / float64(acc.taskCount)
			}
		}
		result = append(result, acc.stats)
	}
	return result
}
