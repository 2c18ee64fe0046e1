package services

import (
	"time"

	"task-tracker.com/task-tracker/internal/constants"
	dto "task-tracker.com/task-tracker/internal/data_models"
	model "task-tracker.com/task-tracker/internal/models"
)

// BuildUserReport reduces one user's tasks to the report metrics.
//
// A completed task is on time when completedAt falls before the end of its
// target day. Tasks still in review count as needing revision, and the
// first-time acceptance rate is completed / (completed + in review).
func BuildUserReport(tasks []model.Task) dto.UserReportResponse {
	var (
		report dto.UserReportResponse

		timedCompletions int
		completionHours  float64
		delayDays        float64
	)

	for _, task := range tasks {
		report.TaskMetrics.TotalTasks++
		report.ProductivityMetrics.TotalStoryPoints += task.StoryPoints

		switch {
		case task.Status == constants.StatusCompleted:
			report.TaskMetrics.CompletedTasks++
			report.ProductivityMetrics.StoryPointsCompleted += task.StoryPoints

			if task.CompletedAt == nil {
				continue
			}
			timedCompletions++
			completionHours += task.CompletedAt.Sub(task.CreatedAt).Hours()

			deadline := endOfDay(task.TargetCompletionDate)
			if task.CompletedAt.Before(deadline) {
				report.TimelineMetrics.TasksCompletedOnTime++
			} else {
				report.TimelineMetrics.TasksDelayed++
				delayDays += task.CompletedAt.Sub(deadline).Hours() / 24
			}
		case task.Status.IsInProgress():
			report.TaskMetrics.InProgressTasks++
		case task.Status == constants.StatusInReview:
			report.QualityMetrics.TasksNeedingRevision++
		}
	}

	tm := &report.TaskMetrics
	pm := &report.ProductivityMetrics
	tl := &report.TimelineMetrics
	qm := &report.QualityMetrics

	if timedCompletions > 0 {
		tm.AverageCompletionTime = completionHours / float64(timedCompletions)
		tm.OnTimeDelivery = percent(tl.TasksCompletedOnTime, timedCompletions)
	}
	if tm.TotalTasks > 0 {
		pm.AverageStoryPointsPerTask = float64(pm.TotalStoryPoints) / float64(tm.TotalTasks)
	}
	if pm.TotalStoryPoints > 0 {
		pm.Efficiency = percent(pm.StoryPointsCompleted, pm.TotalStoryPoints)
	}
	if tl.TasksDelayed > 0 {
		tl.AverageDelay = delayDays / float64(tl.TasksDelayed)
	}
	if reviewed := tm.CompletedTasks + qm.TasksNeedingRevision; reviewed > 0 {
		qm.FirstTimeAcceptanceRate = percent(tm.CompletedTasks, reviewed)
	}

	return report
}

func endOfDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC).AddDate(0, 0, 1)
}

func percent(part, whole int) float64 {
	return float64(part*100) / float64(whole)
}
