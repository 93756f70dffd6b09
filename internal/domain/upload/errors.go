package upload

import "errors"

var (
	ErrNoFile       = errors.New("no file uploaded")
	ErrTooManyFiles = errors.New("too many files in request")
	ErrBadForm      = errors.New("malformed multipart form")
)
