package validators

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"task-tracker.com/task-tracker/internal/constants"
	dto "task-tracker.com/task-tracker/internal/data_models"
	apperrors "task-tracker.com/task-tracker/internal/errors"
	repository "task-tracker.com/task-tracker/internal/repositories"
	"task-tracker.com/task-tracker/internal/services"
)

func CreateTask(req *dto.CreateTaskRequest) (services.CreateTaskInput, error) {
	if err := Struct(req); err != nil {
		return services.CreateTaskInput{}, err
	}

	target, err := parseDateField("targetCompletionDate", req.TargetCompletionDate)
	if err != nil {
		return services.CreateTaskInput{}, err
	}

	return services.CreateTaskInput{
		Title:                 req.Title,
		Type:                  constants.TaskType(req.Type),
		Priority:              constants.TaskPriority(req.Priority),
		TargetCompletionDate:  target,
		Description:           req.Description,
		BusinessJustification: req.BusinessJustification,
		TechnicalRequirements: req.TechnicalRequirements,
		Dependencies:          req.Dependencies,
		AcceptanceCriteria:    req.AcceptanceCriteria,
		AssignedToID:          req.AssignedToID,
		StoryPoints:           *req.StoryPoints,
		AdminPanelLink:        req.AdminPanelLink,
		Attachments:           req.Attachments,
	}, nil
}

func UpdateTask(req *dto.UpdateTaskRequest) (services.UpdateTaskInput, error) {
	if err := Struct(req); err != nil {
		return services.UpdateTaskInput{}, err
	}

	in := services.UpdateTaskInput{
		Title:                 req.Title,
		Description:           req.Description,
		BusinessJustification: req.BusinessJustification,
		TechnicalRequirements: req.TechnicalRequirements,
		Dependencies:          req.Dependencies,
		AcceptanceCriteria:    req.AcceptanceCriteria,
		AssignedToID:          req.AssignedToID,
		AdminPanelLink:        req.AdminPanelLink,
		StoryPoints:           req.StoryPoints,
		Progress:              req.Progress,
		Attachments:           req.Attachments,
	}
	if req.Type != nil {
		t := constants.TaskType(*req.Type)
		in.Type = &t
	}
	if req.Priority != nil {
		p := constants.TaskPriority(*req.Priority)
		in.Priority = &p
	}
	if req.Status != nil {
		s := constants.TaskStatus(*req.Status)
		in.Status = &s
	}
	if req.TargetCompletionDate != nil {
		target, err := parseDateField("targetCompletionDate", *req.TargetCompletionDate)
		if err != nil {
			return services.UpdateTaskInput{}, err
		}
		in.TargetCompletionDate = &target
	}
	return in, nil
}

func TaskStatus(req *dto.UpdateTaskStatusRequest) (constants.TaskStatus, error) {
	if err := Struct(req); err != nil {
		return "", err
	}
	return constants.TaskStatus(req.Status), nil
}

func TaskFilter(req *dto.TaskFilterRequest) (repository.TaskFilter, error) {
	if err := Struct(req); err != nil {
		return repository.TaskFilter{}, err
	}

	targetDate, err := DateRange(req.FromDate, req.ToDate)
	if err != nil {
		return repository.TaskFilter{}, err
	}

	return repository.TaskFilter{
		Search:        req.Search,
		Type:          constants.TaskType(req.Type),
		Status:        constants.TaskStatus(req.Status),
		Priority:      constants.TaskPriority(req.Priority),
		RequestedByID: req.RequestedByID,
		AssignedToID:  req.AssignedToID,
		TargetDate:    targetDate,
		SortBy:        req.SortBy,
		SortOrder:     req.SortOrder,
	}, nil
}

// DateRange parses an optional pair of dates. Either bound may be empty.
func DateRange(from, to string) (repository.DateRange, error) {
	var r repository.DateRange
	if from != "" {
		t, err := parseDateField("fromDate", from)
		if err != nil {
			return r, err
		}
		r.From = &t
	}
	if to != "" {
		t, err := parseDateField("toDate", to)
		if err != nil {
			return r, err
		}
		r.To = &t
	}
	return r, nil
}

// TaskID parses a path id.
func TaskID(raw string) (uint, error) {
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, apperrors.ErrInvalidTaskID
	}
	return uint(id), nil
}

func parseDateField(field, value string) (time.Time, error) {
	t, err := ParseDate(value)
	if err != nil {
		return time.Time{}, echo.NewHTTPError(http.StatusBadRequest, field+" must be a date (YYYY-MM-DD)")
	}
	return t, nil
}
