package googleauth

import "errors"

var (
	// ErrInvalidToken возвращается, если Google отклонил токен
	ErrInvalidToken = errors.New("googleauth client: invalid token")

	// ErrAudienceMismatch возвращается, если токен выпущен для другого приложения
	ErrAudienceMismatch = errors.New("googleauth client: token audience mismatch")

	// ErrEmailNotVerified возвращается, если email аккаунта не подтвержден
	ErrEmailNotVerified = errors.New("googleauth client: email is not verified")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("googleauth client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от Google
	ErrInvalidResponse = errors.New("googleauth client: invalid response")
)
