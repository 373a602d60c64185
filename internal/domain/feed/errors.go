package feed

import "errors"

var (
	ErrFetchFailed    = errors.New("failed to fetch photos")
	ErrLikeFailed     = errors.New("failed to record like")
	ErrCommentFailed  = errors.New("failed to add comment")
	ErrPhotoNotInView = errors.New("photo not in view")
	ErrViewNotLoaded  = errors.New("view not loaded")
)
