package errors

import "net/http"

var ErrTooManyFiles = &Exception{
	Message:    "at most 10 files can be uploaded at once",
	StatusCode: http.StatusBadRequest,
}

var ErrFileTooLarge = &Exception{
	Message:    "file exceeds the upload size limit",
	StatusCode: http.StatusBadRequest,
}

var ErrInvalidUploadPath = &Exception{
	Message:    "invalid upload path",
	StatusCode: http.StatusBadRequest,
}
