package user

import "errors"

var (
	// ErrUserNotFound возвращается, когда пользователь не найден
	ErrUserNotFound = errors.New("user.repository: user not found")

	// ErrUsernameTaken возвращается при нарушении уникальности username
	ErrUsernameTaken = errors.New("user.repository: username already taken")

	// ErrEmailTaken возвращается при нарушении уникальности email
	ErrEmailTaken = errors.New("user.repository: email already taken")

	// ErrGoogleIDTaken возвращается при нарушении уникальности google_id
	ErrGoogleIDTaken = errors.New("user.repository: google account already linked")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("user.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("user.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("user.repository: failed to scan row")
)
