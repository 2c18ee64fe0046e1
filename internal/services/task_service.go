package services

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"task-tracker.com/task-tracker/internal/constants"
	dto "task-tracker.com/task-tracker/internal/data_models"
	apperrors "task-tracker.com/task-tracker/internal/errors"
	model "task-tracker.com/task-tracker/internal/models"
	repository "task-tracker.com/task-tracker/internal/repositories"
	"task-tracker.com/task-tracker/internal/storage"
)

// CreateTaskInput is a validated creation request.
type CreateTaskInput struct {
	Title                 string
	Type                  constants.TaskType
	Priority              constants.TaskPriority
	TargetCompletionDate  time.Time
	Description           string
	BusinessJustification string
	TechnicalRequirements *string
	Dependencies          *string
	AcceptanceCriteria    string
	AssignedToID          string
	StoryPoints           int
	AdminPanelLink        *string
	Attachments           []string
}

// UpdateTaskInput is a validated partial update. Nil fields are untouched and
// Attachments are appended.
type UpdateTaskInput struct {
	Title                 *string
	Type                  *constants.TaskType
	Priority              *constants.TaskPriority
	TargetCompletionDate  *time.Time
	Description           *string
	BusinessJustification *string
	TechnicalRequirements *string
	Dependencies          *string
	AcceptanceCriteria    *string
	AssignedToID          *string
	AdminPanelLink        *string
	Status                *constants.TaskStatus
	StoryPoints           *int
	Progress              *int
	Attachments           []string
}

type TaskService struct {
	tasks    *repository.TaskRepository
	users    *repository.UserRepository
	uploader storage.Uploader
	log      *zap.Logger
	now      func() time.Time
}

func NewTaskService(
	tasks *repository.TaskRepository,
	users *repository.UserRepository,
	uploader storage.Uploader,
	log *zap.Logger,
) *TaskService {
	return &TaskService{
		tasks:    tasks,
		users:    users,
		uploader: uploader,
		log:      log,
		now:      time.Now,
	}
}

func (s *TaskService) CreateTask(
	ctx context.Context,
	requesterID string,
	in CreateTaskInput,
	files []storage.File,
) (*model.Task, error) {
	if len(files) > constants.MaxTaskAttachmentsPerRequest {
		return nil, apperrors.ErrTooManyFiles
	}
	if err := s.ensureAssignee(ctx, in.AssignedToID); err != nil {
		return nil, err
	}

	uploaded, err := s.uploadTaskFiles(ctx, files)
	if err != nil {
		return nil, err
	}

	task := &model.Task{
		Title:                 in.Title,
		Type:                  in.Type,
		Priority:              in.Priority,
		Status:                constants.StatusNew,
		TargetCompletionDate:  in.TargetCompletionDate.UTC(),
		Description:           in.Description,
		BusinessJustification: in.BusinessJustification,
		TechnicalRequirements: in.TechnicalRequirements,
		Dependencies:          in.Dependencies,
		AcceptanceCriteria:    in.AcceptanceCriteria,
		AdminPanelLink:        in.AdminPanelLink,
		StoryPoints:           in.StoryPoints,
		Attachments:           datatypes.JSONSlice[string]{},
		RequestedByID:         requesterID,
		AssignedToID:          in.AssignedToID,
	}
	appendAttachments(task, uploaded, in.Attachments)
	applyCompletion(task, "", s.now())

	if err := s.tasks.Create(ctx, task); err != nil {
		return nil, err
	}

	s.log.Info("task created",
		zap.Uint("task_id", task.ID),
		zap.String("requested_by", requesterID),
		zap.String("assigned_to", in.AssignedToID),
		zap.Int("attachments", len(task.Attachments)),
	)

	return s.tasks.FindByID(ctx, task.ID)
}

func (s *TaskService) ListTasks(ctx context.Context, filter repository.TaskFilter) ([]model.Task, error) {
	return s.tasks.List(ctx, filter)
}

// ListMyTasks lists the tasks the caller requested.
func (s *TaskService) ListMyTasks(ctx context.Context, callerID string, filter repository.TaskFilter) ([]model.Task, error) {
	filter.RequestedByID = callerID
	return s.tasks.List(ctx, filter)
}

func (s *TaskService) GetTask(ctx context.Context, id uint) (*model.Task, error) {
	task, err := s.tasks.FindByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.ErrTaskNotFound
	}
	return task, err
}

func (s *TaskService) UpdateTask(
	ctx context.Context,
	id uint,
	in UpdateTaskInput,
	files []storage.File,
) (*model.Task, error) {
	if len(files) > constants.MaxTaskAttachmentsPerRequest {
		return nil, apperrors.ErrTooManyFiles
	}

	task, err := s.GetTask(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.AssignedToID != nil && *in.AssignedToID != task.AssignedToID {
		if err := s.ensureAssignee(ctx, *in.AssignedToID); err != nil {
			return nil, err
		}
	}

	uploaded, err := s.uploadTaskFiles(ctx, files)
	if err != nil {
		return nil, err
	}

	previous := task.Status
	applyTaskUpdate(task, in)
	appendAttachments(task, uploaded, in.Attachments)
	applyCompletion(task, previous, s.now())

	if err := s.save(ctx, task); err != nil {
		return nil, err
	}

	s.log.Info("task updated",
		zap.Uint("task_id", task.ID),
		zap.String("status", string(task.Status)),
		zap.Int("new_attachments", len(uploaded)+len(in.Attachments)),
	)

	return s.tasks.FindByID(ctx, task.ID)
}

func (s *TaskService) UpdateTaskStatus(ctx context.Context, id uint, status constants.TaskStatus) (*model.Task, error) {
	task, err := s.GetTask(ctx, id)
	if err != nil {
		return nil, err
	}

	previous := task.Status
	task.Status = status
	applyCompletion(task, previous, s.now())

	if err := s.save(ctx, task); err != nil {
		return nil, err
	}

	s.log.Info("task status changed",
		zap.Uint("task_id", task.ID),
		zap.String("from", string(previous)),
		zap.String("to", string(status)),
	)

	return s.tasks.FindByID(ctx, task.ID)
}

func (s *TaskService) DeleteTask(ctx context.Context, id uint) error {
	err := s.tasks.SoftDelete(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperrors.ErrTaskNotFound
	}
	if err != nil {
		return err
	}

	s.log.Info("task deleted", zap.Uint("task_id", id))
	return nil
}

func (s *TaskService) Dashboard(ctx context.Context, targetDate repository.DateRange) (*dto.DashboardResponse, error) {
	tasks, err := s.tasks.ListByTargetDate(ctx, targetDate)
	if err != nil {
		return nil, err
	}

	recent, err := s.tasks.Recent(ctx, recentTasksLimit)
	if err != nil {
		return nil, err
	}

	return &dto.DashboardResponse{
		TaskStats:   BuildTaskStats(tasks),
		UserStats:   BuildUserStats(tasks),
		RecentTasks: recent,
	}, nil
}

func (s *TaskService) UserReport(ctx context.Context, userID string, targetDate repository.DateRange) (*dto.UserReportResponse, error) {
	exists, err := s.users.Exists(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, apperrors.ErrUserNotFound
	}

	tasks, err := s.tasks.ListAssignedTo(ctx, userID, targetDate)
	if err != nil {
		return nil, err
	}

	report := BuildUserReport(tasks)
	return &report, nil
}

func (s *TaskService) ensureAssignee(ctx context.Context, userID string) error {
	exists, err := s.users.Exists(ctx, userID)
	if err != nil {
		return err
	}
	if !exists {
		return apperrors.ErrAssigneeNotFound
	}
	return nil
}

func (s *TaskService) uploadTaskFiles(ctx context.Context, files []storage.File) ([]string, error) {
	if len(files) == 0 {
		return nil, nil
	}

	urls, err := s.uploader.UploadMany(ctx, files, taskUploadPrefix(s.now()))
	if err != nil {
		s.log.Warn("task attachment upload failed", zap.Int("files", len(files)), zap.Error(err))
		return nil, err
	}
	return urls, nil
}

func (s *TaskService) save(ctx context.Context, task *model.Task) error {
	if task.Attachments == nil {
		task.Attachments = datatypes.JSONSlice[string]{}
	}
	// The foreign key columns are authoritative; stale preloads must not
	// override them.
	task.RequestedBy = nil
	task.AssignedTo = nil

	err := s.tasks.Save(ctx, task)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperrors.ErrTaskNotFound
	}
	return err
}

func applyTaskUpdate(task *model.Task, in UpdateTaskInput) {
	if in.Title != nil {
		task.Title = *in.Title
	}
	if in.Type != nil {
		task.Type = *in.Type
	}
	if in.Priority != nil {
		task.Priority = *in.Priority
	}
	if in.TargetCompletionDate != nil {
		task.TargetCompletionDate = in.TargetCompletionDate.UTC()
	}
	if in.Description != nil {
		task.Description = *in.Description
	}
	if in.BusinessJustification != nil {
		task.BusinessJustification = *in.BusinessJustification
	}
	if in.TechnicalRequirements != nil {
		task.TechnicalRequirements = in.TechnicalRequirements
	}
	if in.Dependencies != nil {
		task.Dependencies = in.Dependencies
	}
	if in.AcceptanceCriteria != nil {
		task.AcceptanceCriteria = *in.AcceptanceCriteria
	}
	if in.AssignedToID != nil {
		task.AssignedToID = *in.AssignedToID
	}
	if in.AdminPanelLink != nil {
		task.AdminPanelLink = in.AdminPanelLink
	}
	if in.Status != nil {
		task.Status = *in.Status
	}
	if in.StoryPoints != nil {
		task.StoryPoints = *in.StoryPoints
	}
	if in.Progress != nil {
		task.Progress = *in.Progress
	}
}
