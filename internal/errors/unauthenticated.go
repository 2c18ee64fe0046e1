package errors

import "net/http"

var ErrUnauthenticated = &Exception{
	Message:    "missing or invalid credential",
	StatusCode: http.StatusUnauthorized,
}

var ErrInvalidLogin = &Exception{
	Message:    "invalid email or password",
	StatusCode: http.StatusUnauthorized,
}

var ErrProfileRemoved = &Exception{
	Message:    "profile has been removed",
	StatusCode: http.StatusUnauthorized,
}
