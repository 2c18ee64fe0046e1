package constants

type TaskStatus string

const (
	StatusNew        TaskStatus = "new"
	StatusInProgress TaskStatus = "in_progress"
	StatusInReview   TaskStatus = "in_review"
	StatusCompleted  TaskStatus = "completed"

	// StatusInProgressLegacy is an older spelling still present in stored rows
	// and accepted on input. Aggregations count it as StatusInProgress.
	StatusInProgressLegacy TaskStatus = "inProgress"
)

// IsInProgress reports whether s is either spelling of the in-progress status.
func (s TaskStatus) IsInProgress() bool {
	return s == StatusInProgress || s == StatusInProgressLegacy
}

func TaskStatuses() []TaskStatus {
	return []TaskStatus{StatusNew, StatusInProgress, StatusInReview, StatusCompleted, StatusInProgressLegacy}
}

type TaskType string

const (
	TypeTask                TaskType = "task"
	TypeEngineeringRequest  TaskType = "engineering_request"
	TypeBusinessOnboarding  TaskType = "business_onboarding"
	TypeFunctionalityReview TaskType = "functionality_review"
)

func TaskTypes() []TaskType {
	return []TaskType{TypeTask, TypeEngineeringRequest, TypeBusinessOnboarding, TypeFunctionalityReview}
}

type TaskPriority string

const (
	PriorityLow    TaskPriority = "low"
	PriorityMedium TaskPriority = "medium"
	PriorityHigh   TaskPriority = "high"
	PriorityUrgent TaskPriority = "urgent"
)

func TaskPriorities() []TaskPriority {
	return []TaskPriority{PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent}
}

const MaxTaskAttachmentsPerRequest = 10
