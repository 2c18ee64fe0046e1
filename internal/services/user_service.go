package services

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"task-tracker.com/task-tracker/internal/constants"
	dto "task-tracker.com/task-tracker/internal/data_models"
	apperrors "task-tracker.com/task-tracker/internal/errors"
	"task-tracker.com/task-tracker/internal/identity"
	model "task-tracker.com/task-tracker/internal/models"
	repository "task-tracker.com/task-tracker/internal/repositories"
	"task-tracker.com/task-tracker/internal/sequence"
	"task-tracker.com/task-tracker/internal/storage"
)

const (
	defaultUserPage  = 1
	defaultUserLimit = 10
	maxUserLimit     = 100

	maxEmployeeIDAttempts = 3
)

type CreateUserInput struct {
	Name        string
	Phone       *string
	Email       string
	BirthDate   *time.Time
	Gender      *constants.Gender
	Department  *constants.Department
	Designation *string
	Role        *constants.UserRole
}

type UpdateUserStatusInput struct {
	Status      constants.UserStatus
	Role        *constants.UserRole
	Department  *constants.Department
	Designation *string
	EmployeeID  *string
}

type UpdateProfileInput struct {
	Name      *string
	BirthDate *time.Time
	Gender    *constants.Gender
	Phone     *string
}

type UserServiceOptions struct {
	DefaultPassword string
}

type UserService struct {
	users       *repository.UserRepository
	policy      AccessPolicy
	identities  identity.Provider
	uploader    storage.Uploader
	employeeIDs sequence.Sequence
	opts        UserServiceOptions
	log         *zap.Logger
}

func NewUserService(
	users *repository.UserRepository,
	policy AccessPolicy,
	identities identity.Provider,
	uploader storage.Uploader,
	employeeIDs sequence.Sequence,
	opts UserServiceOptions,
	log *zap.Logger,
) *UserService {
	return &UserService{
		users:       users,
		policy:      policy,
		identities:  identities,
		uploader:    uploader,
		employeeIDs: employeeIDs,
		opts:        opts,
		log:         log,
	}
}

// CreateUser provisions an identity (or reuses an existing one with the same
// email) and an active profile with the next employee id. An identity created
// here is removed again when the profile cannot be stored.
func (s *UserService) CreateUser(ctx context.Context, callerID string, in CreateUserInput) (*model.User, error) {
	if err := s.policy.RequireAdmin(ctx, callerID); err != nil {
		return nil, err
	}

	email := strings.ToLower(strings.TrimSpace(in.Email))
	taken, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if taken != nil {
		return nil, apperrors.ErrEmailTaken
	}

	employeeID, err := s.allocateEmployeeID(ctx)
	if err != nil {
		return nil, err
	}

	uid, created, err := s.provisionIdentity(ctx, email, s.opts.DefaultPassword, in.Name)
	if err != nil {
		return nil, err
	}

	role := constants.RoleUser
	if in.Role != nil {
		role = *in.Role
	}

	user := &model.User{
		ID:          uid,
		Name:        &in.Name,
		Phone:       in.Phone,
		Email:       &email,
		BirthDate:   in.BirthDate,
		Gender:      in.Gender,
		Role:        role,
		Status:      constants.UserStatusActive,
		Department:  in.Department,
		Designation: in.Designation,
		EmployeeID:  employeeID,
	}
	if err := s.insertProfile(ctx, user); err != nil {
		s.discardIdentity(ctx, uid, created)
		return nil, err
	}

	s.log.Info("user created",
		zap.String("user_id", user.ID),
		zap.String("employee_id", *user.EmployeeID),
		zap.String("role", string(role)),
		zap.String("created_by", callerID),
	)
	return user, nil
}

func (s *UserService) ListUsers(ctx context.Context, callerID string, filter repository.UserFilter) (*dto.UserListResponse, error) {
	if err := s.policy.RequireAdmin(ctx, callerID); err != nil {
		return nil, err
	}

	if filter.Page == 0 {
		filter.Page = defaultUserPage
	}
	if filter.Limit == 0 {
		filter.Limit = defaultUserLimit
	}
	if filter.Page < 1 {
		return nil, apperrors.ErrInvalidPage
	}
	if filter.Limit < 1 || filter.Limit > maxUserLimit {
		return nil, apperrors.ErrInvalidLimit
	}

	users, total, err := s.users.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	views := make([]model.UserAdminView, 0, len(users))
	for _, u := range users {
		views = append(views, u.AdminView())
	}
	return &dto.UserListResponse{Users: views, Total: total}, nil
}

func (s *UserService) UpdateUserStatus(
	ctx context.Context,
	callerID, userID string,
	in UpdateUserStatusInput,
) (*model.User, error) {
	if err := s.policy.RequireAdmin(ctx, callerID); err != nil {
		return nil, err
	}

	user, err := s.findUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	user.Status = in.Status
	if in.Role != nil {
		user.Role = *in.Role
	}
	if in.Department != nil {
		user.Department = in.Department
	}
	if in.Designation != nil {
		user.Designation = in.Designation
	}
	if in.EmployeeID != nil {
		user.EmployeeID = in.EmployeeID
	}

	if err := s.saveUser(ctx, user); err != nil {
		return nil, err
	}

	s.log.Info("user status updated",
		zap.String("user_id", user.ID),
		zap.String("status", string(user.Status)),
		zap.String("role", string(user.Role)),
		zap.String("updated_by", callerID),
	)
	return user, nil
}

func (s *UserService) GetProfile(ctx context.Context, userID string) (*model.User, error) {
	return s.findUser(ctx, userID)
}

func (s *UserService) GetProfileByID(ctx context.Context, userID string) (*model.User, error) {
	return s.findUser(ctx, userID)
}

// UpdateProfile applies the caller's own edits. The stored email is refreshed
// from the verified claims.
func (s *UserService) UpdateProfile(
	ctx context.Context,
	claims identity.Claims,
	in UpdateProfileInput,
	photo *storage.File,
) (*model.User, error) {
	user, err := s.findUser(ctx, claims.SubjectID)
	if err != nil {
		return nil, err
	}

	if photo != nil {
		url, err := s.uploader.Upload(ctx, *photo, userUploadPrefix(user.ID))
		if err != nil {
			s.log.Warn("profile photo upload failed", zap.String("user_id", user.ID), zap.Error(err))
			return nil, err
		}
		user.Photo = &url
	}

	if in.Name != nil {
		user.Name = in.Name
	}
	if in.BirthDate != nil {
		user.BirthDate = in.BirthDate
	}
	if in.Gender != nil {
		user.Gender = in.Gender
	}
	if in.Phone != nil {
		user.Phone = in.Phone
	}
	if claims.Email != "" {
		email := strings.ToLower(claims.Email)
		user.Email = &email
	}

	if err := s.saveUser(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// DeleteUser revokes the user's identity, marks the profile rejected and
// soft-deletes it.
func (s *UserService) DeleteUser(ctx context.Context, callerID, userID string) error {
	if err := s.policy.RequireAdmin(ctx, callerID); err != nil {
		return err
	}

	user, err := s.findUser(ctx, userID)
	if err != nil {
		return err
	}

	if err := s.identities.DeleteIdentity(ctx, user.ID); err != nil {
		return err
	}

	user.Status = constants.UserStatusRejected
	if err := s.saveUser(ctx, user); err != nil {
		return err
	}
	if err := s.users.SoftDelete(ctx, user.ID); err != nil {
		return err
	}

	s.log.Info("user deleted", zap.String("user_id", user.ID), zap.String("deleted_by", callerID))
	return nil
}

func (s *UserService) DeleteProfile(ctx context.Context, userID string) error {
	err := s.users.SoftDelete(ctx, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperrors.ErrUserNotFound
	}
	if err != nil {
		return err
	}

	s.log.Info("profile deleted", zap.String("user_id", userID))
	return nil
}

// EnsureProfile returns the caller's profile, creating it on first
// authentication. A soft-deleted profile is never recreated.
func (s *UserService) EnsureProfile(ctx context.Context, claims identity.Claims) (*model.User, error) {
	user, err := s.users.FindByIDUnscoped(ctx, claims.SubjectID)
	if err == nil {
		if user.DeletedAt.Valid {
			return nil, apperrors.ErrProfileRemoved
		}
		return user, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	user = &model.User{
		ID:     claims.SubjectID,
		Status: constants.UserStatusActive,
	}
	if claims.Email != "" {
		email := strings.ToLower(claims.Email)
		user.Email = &email
	}
	if claims.DisplayName != "" {
		user.Name = &claims.DisplayName
	}
	if claims.PictureURL != "" {
		user.Photo = &claims.PictureURL
	}

	if err := s.users.Create(ctx, user); err != nil {
		// A concurrent first request created it.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return s.findUser(ctx, claims.SubjectID)
		}
		return nil, err
	}

	s.log.Info("profile created on first sign-in", zap.String("user_id", user.ID))
	return user, nil
}

// BootstrapAdmin provisions an administrator without an authenticated
// caller. An existing profile for the email is promoted instead.
func (s *UserService) BootstrapAdmin(ctx context.Context, email, password, name string) (*model.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	existing, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		existing.Role = constants.RoleAdmin
		existing.Status = constants.UserStatusActive
		if err := s.saveUser(ctx, existing); err != nil {
			return nil, err
		}
		s.log.Info("existing user promoted to admin", zap.String("user_id", existing.ID))
		return existing, nil
	}

	employeeID, err := s.allocateEmployeeID(ctx)
	if err != nil {
		return nil, err
	}

	uid, created, err := s.provisionIdentity(ctx, email, password, name)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		ID:         uid,
		Email:      &email,
		Role:       constants.RoleAdmin,
		Status:     constants.UserStatusActive,
		EmployeeID: employeeID,
	}
	if name != "" {
		user.Name = &name
	}
	if err := s.insertProfile(ctx, user); err != nil {
		s.discardIdentity(ctx, uid, created)
		return nil, err
	}

	s.log.Info("admin bootstrapped", zap.String("user_id", user.ID))
	return user, nil
}

// allocateEmployeeID draws the next id and checks it against every id already
// stored. When an id set by hand is ahead of the counter, the counter is
// moved past it and the draw repeated.
func (s *UserService) allocateEmployeeID(ctx context.Context) (*string, error) {
	for attempt := 0; attempt < maxEmployeeIDAttempts; attempt++ {
		existing, err := s.users.EmployeeIDs(ctx)
		if err != nil {
			return nil, err
		}
		floor := NextEmployeeID(existing, 0)

		n, err := s.employeeIDs.Next(ctx)
		if err != nil {
			return nil, err
		}
		if n >= floor {
			return formatEmployeeID(n), nil
		}

		s.log.Warn("employee id sequence behind stored ids",
			zap.Int64("drawn", n),
			zap.Int64("floor", floor),
		)
		if err := s.employeeIDs.AdvanceTo(ctx, floor); err != nil {
			return nil, err
		}
	}
	return nil, apperrors.ErrEmployeeIDTaken
}

// provisionIdentity reports whether the identity was created by this call.
func (s *UserService) provisionIdentity(ctx context.Context, email, password, name string) (string, bool, error) {
	ident, err := s.identities.FindByEmail(ctx, email)
	if err != nil {
		return "", false, err
	}
	if ident != nil {
		return ident.UID, false, nil
	}
	uid, err := s.identities.CreateIdentity(ctx, email, password, name)
	if err != nil {
		return "", false, err
	}
	return uid, true, nil
}

func (s *UserService) discardIdentity(ctx context.Context, uid string, created bool) {
	if !created {
		return
	}
	if err := s.identities.DeleteIdentity(ctx, uid); err != nil {
		s.log.Error("identity left without a profile", zap.String("user_id", uid), zap.Error(err))
	}
}

// insertProfile creates the row, or revives a soft-deleted row left behind
// for the same identity. A live row for the identity is a conflict.
func (s *UserService) insertProfile(ctx context.Context, user *model.User) error {
	previous, err := s.users.FindByIDUnscoped(ctx, user.ID)
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		err = s.users.Create(ctx, user)
	case err != nil:
		return err
	case !previous.DeletedAt.Valid:
		return apperrors.ErrEmailTaken
	default:
		user.CreatedAt = previous.CreatedAt
		err = s.users.Restore(ctx, user)
	}

	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return apperrors.ErrEmployeeIDTaken
	}
	return err
}

func (s *UserService) saveUser(ctx context.Context, user *model.User) error {
	err := s.users.Save(ctx, user)
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return apperrors.ErrUserNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return apperrors.ErrEmployeeIDTaken
	}
	return err
}

func (s *UserService) findUser(ctx context.Context, userID string) (*model.User, error) {
	user, err := s.users.FindByID(ctx, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.ErrUserNotFound
	}
	return user, err
}

func formatEmployeeID(n int64) *string {
	id := strconv.FormatInt(n, 10)
	return &id
}
