package errors

import "net/http"

var ErrAdminOnly = &Exception{
	Message:    "only administrators can perform this action",
	StatusCode: http.StatusForbidden,
}
