package photo

import "errors"

var (
	ErrPhotoNotFound = errors.New("photo not found")
)
