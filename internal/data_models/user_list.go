package dto

import model "task-tracker.com/task-tracker/internal/models"

type UserListResponse struct {
	Users []model.UserAdminView `json:"users"`
	Total int64                 `json:"total"`
}
