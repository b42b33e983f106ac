package release_no_shows

import "errors"

var (
	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("release_no_shows: internal error")
)
