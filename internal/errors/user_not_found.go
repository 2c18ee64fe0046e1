package errors

import "net/http"

var ErrUserNotFound = &Exception{
	Message:    "user not found",
	StatusCode: http.StatusNotFound,
}

var ErrAssigneeNotFound = &Exception{
	Message:    "assigned user not found",
	StatusCode: http.StatusNotFound,
}
