package dto

type CreateTaskRequest struct {
	Title                 string   `json:"title" validate:"required"`
	Type                  string   `json:"type" validate:"required,task_type"`
	Priority              string   `json:"priority" validate:"required,task_priority"`
	TargetCompletionDate  string   `json:"targetCompletionDate" validate:"required,calendar_date"`
	Description           string   `json:"description" validate:"required"`
	BusinessJustification string   `json:"businessJustification" validate:"required"`
	TechnicalRequirements *string  `json:"technicalRequirements"`
	Dependencies          *string  `json:"dependencies"`
	AcceptanceCriteria    string   `json:"acceptanceCriteria" validate:"required"`
	AssignedToID          string   `json:"assignedToId" validate:"required"`
	StoryPoints           *int     `json:"storyPoints" validate:"required,min=0"`
	AdminPanelLink        *string  `json:"adminPanelLink"`
	Attachments           []string `json:"attachments"`
}

// UpdateTaskRequest carries a partial update; nil fields are left untouched.
type UpdateTaskRequest struct {
	Title                 *string  `json:"title" validate:"omitempty,min=1"`
	Type                  *string  `json:"type" validate:"omitempty,task_type"`
	Priority              *string  `json:"priority" validate:"omitempty,task_priority"`
	TargetCompletionDate  *string  `json:"targetCompletionDate" validate:"omitempty,calendar_date"`
	Description           *string  `json:"description"`
	BusinessJustification *string  `json:"businessJustification"`
	TechnicalRequirements *string  `json:"technicalRequirements"`
	Dependencies          *string  `json:"dependencies"`
	AcceptanceCriteria    *string  `json:"acceptanceCriteria"`
	AssignedToID          *string  `json:"assignedToId" validate:"omitempty,min=1"`
	AdminPanelLink        *string  `json:"adminPanelLink"`
	Status                *string  `json:"status" validate:"omitempty,task_status"`
	StoryPoints           *int     `json:"storyPoints" validate:"omitempty,min=0"`
	Progress              *int     `json:"progress" validate:"omitempty,min=0,max=100"`
	Attachments           []string `json:"attachments"`
}

type UpdateTaskStatusRequest struct {
	Status string `json:"status" validate:"required,task_status"`
}

type TaskFilterRequest struct {
	Search        string `query:"search"`
	Type          string `query:"type" validate:"omitempty,task_type"`
	Status        string `query:"status" validate:"omitempty,task_status"`
	Priority      string `query:"priority" validate:"omitempty,task_priority"`
	RequestedByID string `query:"requestedById"`
	AssignedToID  string `query:"assignedToId"`
	FromDate      string `query:"fromDate" validate:"omitempty,calendar_date"`
	ToDate        string `query:"toDate" validate:"omitempty,calendar_date"`
	SortBy        string `query:"sortBy"`
	SortOrder     string `query:"sortOrder" validate:"omitempty,oneof=ASC DESC asc desc"`
}

type DashboardFilterRequest struct {
	FromDate string `query:"fromDate" validate:"omitempty,calendar_date"`
	ToDate   string `query:"toDate" validate:"omitempty,calendar_date"`
}

type UserReportRequest struct {
	UserID   string `query:"userId" validate:"required"`
	FromDate string `query:"fromDate" validate:"omitempty,calendar_date"`
	ToDate   string `query:"toDate" validate:"omitempty,calendar_date"`
	Format   string `query:"format" validate:"omitempty,oneof=json pdf"`
}
