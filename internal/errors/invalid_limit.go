package errors

import "net/http"

var ErrInvalidLimit = &Exception{
	Message:    "limit must be between 1 and 100",
	StatusCode: http.StatusBadRequest,
}

var ErrInvalidPage = &Exception{
	Message:    "page must be positive",
	StatusCode: http.StatusBadRequest,
}
