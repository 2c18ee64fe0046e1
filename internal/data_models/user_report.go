package dto

type TaskMetrics struct {
	TotalTasks            int     `json:"totalTasks"`
	CompletedTasks        int     `json:"completedTasks"`
	InProgressTasks       int     `json:"inProgressTasks"`
	AverageCompletionTime float64 `json:"averageCompletionTime"`
	OnTimeDelivery        float64 `json:"onTimeDelivery"`
}

type ProductivityMetrics struct {
	TotalStoryPoints          int     `json:"totalStoryPoints"`
	AverageStoryPointsPerTask float64 `json:"averageStoryPointsPerTask"`
	StoryPointsCompleted      int     `json:"storyPointsCompleted"`
	Efficiency                float64 `json:"efficiency"`
}

type TimelineMetrics struct {
	TasksCompletedOnTime int     `json:"tasksCompletedOnTime"`
	TasksDelayed         int     `json:"tasksDelayed"`
	AverageDelay         float64 `json:"averageDelay"`
}

type QualityMetrics struct {
	TasksNeedingRevision    int     `json:"tasksNeedingRevision"`
	FirstTimeAcceptanceRate float64 `json:"firstTimeAcceptanceRate"`
}

// UserReportResponse units: AverageCompletionTime in hours, AverageDelay in
// days, rates and efficiency in percent.
type UserReportResponse struct {
	TaskMetrics         TaskMetrics         `json:"taskMetrics"`
	ProductivityMetrics ProductivityMetrics `json:"productivityMetrics"`
	TimelineMetrics     TimelineMetrics     `json:"timelineMetrics"`
	QualityMetrics      QualityMetrics      `json:"qualityMetrics"`
}
