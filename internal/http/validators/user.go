package validators

import (
	"time"

	"task-tracker.com/task-tracker/internal/constants"
	dto "task-tracker.com/task-tracker/internal/data_models"
	repository "task-tracker.com/task-tracker/internal/repositories"
	"task-tracker.com/task-tracker/internal/services"
)

func Login(req *dto.LoginRequest) error {
	return Struct(req)
}

func CreateUser(req *dto.CreateUserRequest) (services.CreateUserInput, error) {
	if err := Struct(req); err != nil {
		return services.CreateUserInput{}, err
	}

	birthDate, err := optionalDate("birthDate", req.BirthDate)
	if err != nil {
		return services.CreateUserInput{}, err
	}

	return services.CreateUserInput{
		Name:        req.Name,
		Phone:       req.Phone,
		Email:       req.Email,
		BirthDate:   birthDate,
		Gender:      castPtr[constants.Gender](req.Gender),
		Department:  castPtr[constants.Department](req.Department),
		Designation: req.Designation,
		Role:        castPtr[constants.UserRole](req.Role),
	}, nil
}

func UpdateUserStatus(req *dto.UpdateUserStatusRequest) (services.UpdateUserStatusInput, error) {
	if err := Struct(req); err != nil {
		return services.UpdateUserStatusInput{}, err
	}

	return services.UpdateUserStatusInput{
		Status:      constants.UserStatus(req.Status),
		Role:        castPtr[constants.UserRole](req.Role),
		Department:  castPtr[constants.Department](req.Department),
		Designation: req.Designation,
		EmployeeID:  req.EmployeeID,
	}, nil
}

func UpdateProfile(req *dto.UpdateProfileRequest) (services.UpdateProfileInput, error) {
	if err := Struct(req); err != nil {
		return services.UpdateProfileInput{}, err
	}

	birthDate, err := optionalDate("birthDate", req.BirthDate)
	if err != nil {
		return services.UpdateProfileInput{}, err
	}

	return services.UpdateProfileInput{
		Name:      req.Name,
		BirthDate: birthDate,
		Gender:    castPtr[constants.Gender](req.Gender),
		Phone:     req.Phone,
	}, nil
}

func UserFilter(req *dto.UserListRequest) (repository.UserFilter, error) {
	if err := Struct(req); err != nil {
		return repository.UserFilter{}, err
	}

	return repository.UserFilter{
		Status:     constants.UserStatus(req.Status),
		Role:       constants.UserRole(req.Role),
		Department: constants.Department(req.Department),
		Search:     req.Search,
		SortBy:     req.SortBy,
		SortOrder:  req.SortOrder,
		Page:       req.Page,
		Limit:      req.Limit,
	}, nil
}

func optionalDate(field string, value *string) (*time.Time, error) {
	if value == nil || *value == "" {
		return nil, nil
	}
	t, err := parseDateField(field, *value)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func castPtr[T ~string](s *string) *T {
	if s == nil {
		return nil
	}
	v := T(*s)
	return &v
}
