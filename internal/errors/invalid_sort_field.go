package errors

import "net/http"

var ErrInvalidSortField = &Exception{
	Message:    "unsupported sort field",
	StatusCode: http.StatusBadRequest,
}

var ErrInvalidSortOrder = &Exception{
	Message:    "sort order must be ASC or DESC",
	StatusCode: http.StatusBadRequest,
}
