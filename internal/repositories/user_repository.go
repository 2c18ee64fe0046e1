package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"task-tracker.com/task-tracker/internal/constants"
	model "task-tracker.com/task-tracker/internal/models"
)

var userSortColumns = map[string]string{
	"createdAt":  "created_at",
	"name":       "name",
	"email":      "email",
	"employeeId": "employee_id",
	"status":     "status",
	"role":       "role",
	"department": "department",
}

type UserFilter struct {
	Status     constants.UserStatus
	Role       constants.UserRole
	Department constants.Department
	Search     string
	SortBy     string
	SortOrder  string
	Page       int
	Limit      int
}

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, user *model.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByIDUnscoped also returns soft-deleted users.
func (r *UserRepository) FindByIDUnscoped(ctx context.Context, id string) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).Unscoped().First(&user, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByEmail returns nil, nil when no live user has that email.
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).First(&user, "email = ?", email).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) Exists(ctx context.Context, id string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.User{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

// Save writes every column of an existing live user and never inserts. It
// reports gorm.ErrRecordNotFound when the user is gone or soft-deleted.
func (r *UserRepository) Save(ctx context.Context, user *model.User) error {
	res := r.db.WithContext(ctx).Select("*").Updates(user)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// SoftDelete reports gorm.ErrRecordNotFound when no live user has that id.
func (r *UserRepository) SoftDelete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Delete(&model.User{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *UserRepository) List(ctx context.Context, filter UserFilter) ([]model.User, int64, error) {
	order, err := orderClause(userSortColumns, filter.SortBy, filter.SortOrder, "created_at")
	if err != nil {
		return nil, 0, err
	}

	query := r.db.WithContext(ctx).Model(&model.User{})
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Role != "" {
		query = query.Where("role = ?", filter.Role)
	}
	if filter.Department != "" {
		query = query.Where("department = ?", filter.Department)
	}
	if filter.Search != "" {
		query = query.Where("LOWER(name) LIKE ?", likePattern(filter.Search))
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var users []model.User
	err = query.Order(order).
		Offset((filter.Page - 1) * filter.Limit).
		Limit(filter.Limit).
		Find(&users).Error
	if err != nil {
		return nil, 0, err
	}
	return users, total, nil
}

// EmployeeIDs lists every assigned employee id, including those of deleted
// users, so that ids are never handed out twice.
func (r *UserRepository) EmployeeIDs(ctx context.Context) ([]string, error) {
	var ids []string
	err := r.db.WithContext(ctx).Unscoped().Model(&model.User{}).
		Where("employee_id IS NOT NULL").
		Pluck("employee_id", &ids).Error
	return ids, err
}

// Restore writes user including its deleted_at column, reviving a
// soft-deleted row in place.
func (r *UserRepository) Restore(ctx context.Context, user *model.User) error {
	user.DeletedAt = gorm.DeletedAt{}
	return r.db.WithContext(ctx).Unscoped().Save(user).Error
}
