package errors

import "net/http"

var ErrEmailTaken = &Exception{
	Message:    "user with this email already exists",
	StatusCode: http.StatusConflict,
}

var ErrEmployeeIDTaken = &Exception{
	Message:    "employee id is already assigned",
	StatusCode: http.StatusConflict,
}
