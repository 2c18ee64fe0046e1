package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"task-tracker.com/task-tracker/internal/constants"
	model "task-tracker.com/task-tracker/internal/models"
)

func TestBuildTaskStats_Empty(t *testing.T) {
	stats := BuildTaskStats(nil)
	assert.Zero(t, stats.TotalTasks)
	assert.Zero(t, stats.AverageProgress)
	assert.Zero(t, stats.OverallEfficiency)
}

func TestBuildTaskStats_CountsLegacyInProgress(t *testing.T) {
	tasks := []model.Task{
		{Status: constants.StatusInProgress, Progress: 20, StoryPoints: 3},
		{Status: constants.StatusInProgressLegacy, Progress: 40, StoryPoints: 2},
		{Status: constants.StatusNew, StoryPoints: 1},
		{Status: constants.StatusInReview, Progress: 90, StoryPoints: 5},
		{Status: constants.StatusCompleted, Progress: 100, StoryPoints: 8},
	}

	stats := BuildTaskStats(tasks)
	assert.Equal(t, 5, stats.TotalTasks)
	assert.Equal(t, 2, stats.InProgressTasks)
	assert.Equal(t, 1, stats.NewTasks)
	assert.Equal(t, 1, stats.InReviewTasks)
	assert.Equal(t, 1, stats.CompletedTasks)
	assert.Equal(t, 19, stats.TotalStoryPoints)
	assert.InDelta(t, 50.0, stats.AverageProgress, 1e-9)
	assert.InDelta(t, 20.0, stats.OverallEfficiency, 1e-9)
}

func TestBuildTaskStats_UnknownStatusCountsOnlyInTotals(t *testing.T) {
	tasks := []model.Task{
		{Status: constants.StatusCompleted, Progress: 100, StoryPoints: 2},
		{Status: constants.StatusInProgressLegacy, Progress: 10, StoryPoints: 2},
		{Status: constants.StatusNew, StoryPoints: 2},
		{Status: constants.TaskStatus("blocked"), Progress: 30, StoryPoints: 2},
		{Status: constants.TaskStatus(""), StoryPoints: 2},
	}

	stats := BuildTaskStats(tasks)
	buckets := stats.CompletedTasks + stats.InProgressTasks + stats.NewTasks + stats.InReviewTasks
	assert.Equal(t, 3, buckets)
	assert.Equal(t, buckets+2, stats.TotalTasks)
	assert.Equal(t, 10, stats.TotalStoryPoints)
	assert.InDelta(t, 28.0, stats.AverageProgress, 1e-9)
	assert.InDelta(t, 20.0, stats.OverallEfficiency, 1e-9)
}

func TestBuildTaskStats_NoStoryPointsMeansNoEfficiency(t *testing.T) {
	tasks := []model.Task{
		{Status: constants.StatusCompleted, Progress: 100},
		{Status: constants.StatusCompleted, Progress: 100},
	}

	stats := BuildTaskStats(tasks)
	assert.Equal(t, 2, stats.CompletedTasks)
	assert.Zero(t, stats.OverallEfficiency)
}

func TestBuildUserStats(t *testing.T) {
	tasks := []model.Task{
		{AssignedToID: "bob", Status: constants.StatusCompleted, Progress: 100, StoryPoints: 3},
		{AssignedToID: "", Status: constants.StatusCompleted, Progress: 100, StoryPoints: 3},
		{AssignedToID: "alice", Status: constants.StatusNew, Progress: 0},
		{AssignedToID: "bob", Status: constants.StatusInProgress, Progress: 50, StoryPoints: 2},
	}

	stats := BuildUserStats(tasks)
	require.Len(t, stats, 2)

	assert.Equal(t, "bob", stats[0].UserID)
	assert.Equal(t, 1, stats[0].CompletedTasks)
	assert.Equal(t, 5, stats[0].TotalStoryPoints)
	assert.InDelta(t, 75.0, stats[0].AverageProgress, 1e-9)
	assert.InDelta(t, 50.0, stats[0].Efficiency, 1e-9)

	assert.Equal(t, "alice", stats[1].UserID)
	assert.Zero(t, stats[1].Efficiency)
}

func TestBuildUserStats_NoStoryPointsMeansNoEfficiency(t *testing.T) {
	tasks := []model.Task{
		{AssignedToID: "carol", Status: constants.StatusCompleted, Progress: 100},
		{AssignedToID: "carol", Status: constants.StatusNew},
	}

	stats := BuildUserStats(tasks)
	require.Len(t, stats, 1)
	assert.Equal(t, 1, stats[0].CompletedTasks)
	assert.InDelta(t, 50.0, stats[0].AverageProgress, 1e-9)
	assert.Zero(t, stats[0].Efficiency)
}

func TestBuildUserStats_EmptyIsNotNil(t *testing.T) {
	stats := BuildUserStats(nil)
	assert.NotNil(t, stats)
	assert.Empty(t, stats)
}

func TestBuildUserReport(t *testing.T) {
	created := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	target := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)
	onTime := time.Date(2024, 3, 10, 23, 0, 0, 0, time.UTC)
	late := time.Date(2024, 3, 13, 0, 0, 0, 0, time.UTC)

	tasks := []model.Task{
		{Status: constants.StatusCompleted, StoryPoints: 5, CreatedAt: created, CompletedAt: &onTime, TargetCompletionDate: target},
		{Status: constants.StatusCompleted, StoryPoints: 3, CreatedAt: created, CompletedAt: &late, TargetCompletionDate: target},
		{Status: constants.StatusInProgress, StoryPoints: 2, CreatedAt: created, TargetCompletionDate: target},
		{Status: constants.StatusInReview, StoryPoints: 0, CreatedAt: created, TargetCompletionDate: target},
	}

	report := BuildUserReport(tasks)

	assert.Equal(t, 4, report.TaskMetrics.TotalTasks)
	assert.Equal(t, 2, report.TaskMetrics.CompletedTasks)
	assert.Equal(t, 1, report.TaskMetrics.InProgressTasks)
	assert.InDelta(t, (230.0+279.0)/2, report.TaskMetrics.AverageCompletionTime, 1e-9)
	assert.InDelta(t, 50.0, report.TaskMetrics.OnTimeDelivery, 1e-9)

	assert.Equal(t, 10, report.ProductivityMetrics.TotalStoryPoints)
	assert.Equal(t, 8, report.ProductivityMetrics.StoryPointsCompleted)
	assert.InDelta(t, 2.5, report.ProductivityMetrics.AverageStoryPointsPerTask, 1e-9)
	assert.InDelta(t, 80.0, report.ProductivityMetrics.Efficiency, 1e-9)

	assert.Equal(t, 1, report.TimelineMetrics.TasksCompletedOnTime)
	assert.Equal(t, 1, report.TimelineMetrics.TasksDelayed)
	assert.InDelta(t, 2.0, report.TimelineMetrics.AverageDelay, 1e-9)

	assert.Equal(t, 1, report.QualityMetrics.TasksNeedingRevision)
	assert.InDelta(t, 200.0/3, report.QualityMetrics.FirstTimeAcceptanceRate, 1e-9)
}

func TestBuildUserReport_Empty(t *testing.T) {
	report := BuildUserReport(nil)
	assert.Zero(t, report.TaskMetrics.TotalTasks)
	assert.Zero(t, report.TaskMetrics.OnTimeDelivery)
	assert.Zero(t, report.ProductivityMetrics.Efficiency)
	assert.Zero(t, report.QualityMetrics.FirstTimeAcceptanceRate)
}

func TestNextEmployeeID(t *testing.T) {
	cases := []struct {
		name     string
		existing []string
		want     int64
	}{
		{name: "none", existing: nil, want: 20000},
		{name: "highest plus one", existing: []string{"20000", "20007", "20003"}, want: 20008},
		{name: "non numeric ignored", existing: []string{"abc", "", "20001"}, want: 20002},
		{name: "below base ignored", existing: []string{"42", "19999"}, want: 20000},
		{name: "only garbage", existing: []string{"EMP-1"}, want: 20000},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, NextEmployeeID(tc.existing, 20000))
		})
	}
}
