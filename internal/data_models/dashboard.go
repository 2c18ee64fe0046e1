package dto

import model "task-tracker.com/task-tracker/internal/models"

type TaskStats struct {
	TotalTasks        int     `json:"totalTasks"`
	CompletedTasks    int     `json:"completedTasks"`
	InProgressTasks   int     `json:"inProgressTasks"`
	NewTasks          int     `json:"newTasks"`
	InReviewTasks     int     `json:"inReviewTasks"`
	TotalStoryPoints  int     `json:"totalStoryPoints"`
	AverageProgress   float64 `json:"averageProgress"`
	OverallEfficiency float64 `json:"overallEfficiency"`
}

type UserStats struct {
	UserID           string  `json:"userId"`
	CompletedTasks   int     `json:"completedTasks"`
	TotalStoryPoints int     `json:"totalStoryPoints"`
	AverageProgress  float64 `json:"averageProgress"`
	Efficiency       float64 `json:"efficiency"`
}

type DashboardResponse struct {
	TaskStats   TaskStats    `json:"taskStats"`
	UserStats   []UserStats  `json:"userStats"`
	RecentTasks []model.Task `json:"recentTasks"`
}
