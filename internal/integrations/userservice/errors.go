package userservice

import "errors"

var (
	// ErrUserNotFound UserService вернул 404
	ErrUserNotFound = errors.New("userservice: user not found")

	// ErrInternal запрос не удалось построить или отправить
	ErrInternal = errors.New("userservice: request failed")

	// ErrInvalidResponse неожиданный статус или тело ответа
	ErrInvalidResponse = errors.New("userservice: invalid response")
)
