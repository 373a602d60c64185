package upload

import "errors"

var (
	ErrUploadFailed    = errors.New("upload failed")
	ErrInvalidFileType = errors.New("unsupported file type")
	ErrFileTooLarge    = errors.New("file too large")
	ErrUploadNotFound  = errors.New("upload not found")
)
