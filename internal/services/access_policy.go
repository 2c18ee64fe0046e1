package services

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"task-tracker.com/task-tracker/internal/constants"
	apperrors "task-tracker.com/task-tracker/internal/errors"
	repository "task-tracker.com/task-tracker/internal/repositories"
)

// AccessPolicy decides whether an authenticated subject may perform an
// administrative action.
type AccessPolicy interface {
	RequireAdmin(ctx context.Context, subjectID string) error
}

// RolePolicy reads the caller's stored role on every check, so a demotion
// takes effect on the next request.
type RolePolicy struct {
	users *repository.UserRepository
}

func NewRolePolicy(users *repository.UserRepository) *RolePolicy {
	return &RolePolicy{users: users}
}

func (p *RolePolicy) RequireAdmin(ctx context.Context, subjectID string) error {
	if subjectID == "" {
		return apperrors.ErrAdminOnly
	}

	user, err := p.users.FindByID(ctx, subjectID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperrors.ErrAdminOnly
	}
	if err != nil {
		return err
	}

	if user.Role != constants.RoleAdmin {
		return apperrors.ErrAdminOnly
	}
	return nil
}
