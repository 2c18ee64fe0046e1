package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"task-tracker.com/task-tracker/internal/constants"
	model "task-tracker.com/task-tracker/internal/models"
)

var taskSortColumns = map[string]string{
	"id":                   "id",
	"title":                "title",
	"type":                 "type",
	"priority":             "priority",
	"status":               "status",
	"targetCompletionDate": "target_completion_date",
	"storyPoints":          "story_points",
	"progress":             "progress",
	"completedAt":          "completed_at",
	"createdAt":            "created_at",
	"updatedAt":            "updated_at",
}

type TaskFilter struct {
	Search        string
	Type          constants.TaskType
	Status        constants.TaskStatus
	Priority      constants.TaskPriority
	RequestedByID string
	AssignedToID  string
	TargetDate    DateRange
	SortBy        string
	SortOrder     string
}

type TaskRepository struct {
	db *gorm.DB
}

func NewTaskRepository(db *gorm.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

func (r *TaskRepository) withRelations(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Preload("RequestedBy").Preload("AssignedTo")
}

func (r *TaskRepository) Create(ctx context.Context, task *model.Task) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(task).Error
}

func (r *TaskRepository) FindByID(ctx context.Context, id uint) (*model.Task, error) {
	var task model.Task
	err := r.withRelations(ctx).First(&task, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &task, nil
}

// List returns every task matching filter. The result is not paginated.
func (r *TaskRepository) List(ctx context.Context, filter TaskFilter) ([]model.Task, error) {
	order, err := orderClause(taskSortColumns, filter.SortBy, filter.SortOrder, "created_at")
	if err != nil {
		return nil, err
	}

	query := r.withRelations(ctx)

	if filter.Search != "" {
		query = query.Where("LOWER(title) LIKE ?", likePattern(filter.Search))
	}
	if filter.Type != "" {
		query = query.Where("type = ?", filter.Type)
	}
	switch {
	case filter.Status.IsInProgress():
		// Either spelling selects both, matching how the dashboard counts them.
		query = query.Where("status IN ?", []constants.TaskStatus{
			constants.StatusInProgress,
			constants.StatusInProgressLegacy,
		})
	case filter.Status != "":
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Priority != "" {
		query = query.Where("priority = ?", filter.Priority)
	}
	if filter.RequestedByID != "" {
		query = query.Where("requested_by_id = ?", filter.RequestedByID)
	}
	if filter.AssignedToID != "" {
		query = query.Where("assigned_to_id = ?", filter.AssignedToID)
	}
	query = whereTargetDate(query, filter.TargetDate)

	var tasks []model.Task
	if err := query.Order(order).Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

func (r *TaskRepository) ListByTargetDate(ctx context.Context, targetDate DateRange) ([]model.Task, error) {
	var tasks []model.Task
	err := whereTargetDate(r.withRelations(ctx), targetDate).Find(&tasks).Error
	return tasks, err
}

func (r *TaskRepository) ListAssignedTo(ctx context.Context, userID string, targetDate DateRange) ([]model.Task, error) {
	var tasks []model.Task
	query := r.db.WithContext(ctx).Where("assigned_to_id = ?", userID)
	err := whereTargetDate(query, targetDate).Order("created_at asc").Find(&tasks).Error
	return tasks, err
}

func (r *TaskRepository) Recent(ctx context.Context, limit int) ([]model.Task, error) {
	var tasks []model.Task
	err := r.withRelations(ctx).Order("created_at desc").Order("id desc").Limit(limit).Find(&tasks).Error
	return tasks, err
}

// Save writes every column of an existing live task and never inserts. It
// reports gorm.ErrRecordNotFound when the task is gone or soft-deleted.
// Associations are never written through a task; only the foreign keys are.
func (r *TaskRepository) Save(ctx context.Context, task *model.Task) error {
	res := r.db.WithContext(ctx).Select("*").Omit(clause.Associations).Updates(task)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// SoftDelete marks the task deleted. It reports gorm.ErrRecordNotFound when no
// live task has that id.
func (r *TaskRepository) SoftDelete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&model.Task{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func whereTargetDate(query *gorm.DB, targetDate DateRange) *gorm.DB {
	from, to, ok := targetDate.Bounds()
	if !ok {
		return query
	}
	return query.Where("target_completion_date >= ? AND target_completion_date < ?", from, to)
}
