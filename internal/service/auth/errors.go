package auth

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("auth.service: invalid input data")

	// ErrUsernameTaken возвращается, если username уже занят
	ErrUsernameTaken = errors.New("auth.service: username already taken")

	// ErrEmailTaken возвращается, если email уже используется другим аккаунтом
	ErrEmailTaken = errors.New("auth.service: email already in use")

	// ErrInvalidCredentials возвращается при неверном логине или пароле
	ErrInvalidCredentials = errors.New("auth.service: invalid username or password")

	// ErrGoogleAuthFailed возвращается, если Google credential не прошел проверку
	ErrGoogleAuthFailed = errors.New("auth.service: google authentication failed")

	// ErrUserNotFound возвращается, когда пользователь не найден
	ErrUserNotFound = errors.New("auth.service: user not found")

	// ErrInvalidImage возвращается для файлов, не являющихся изображением
	ErrInvalidImage = errors.New("auth.service: unsupported image type")

	// ErrImageTooLarge возвращается, если изображение превышает допустимый размер
	ErrImageTooLarge = errors.New("auth.service: image is too large")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("auth.service: internal error")
)
