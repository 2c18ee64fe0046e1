package errors

import "net/http"

var ErrTaskNotFound = &Exception{
	Message:    "task not found",
	StatusCode: http.StatusNotFound,
}

var ErrInvalidTaskID = &Exception{
	Message:    "invalid task id",
	StatusCode: http.StatusBadRequest,
}
