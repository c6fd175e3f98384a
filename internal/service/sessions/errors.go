package sessions

import "errors"

var (
	// ErrSessionNotFound возвращается, когда сессия не найдена или принадлежит другому пользователю
	ErrSessionNotFound = errors.New("sessions.service: session not found")

	// ErrSessionInactive возвращается для отозванной или истекшей сессии
	ErrSessionInactive = errors.New("sessions.service: session is not active")

	// ErrUserNotFound возвращается, когда владелец сессии удален
	ErrUserNotFound = errors.New("sessions.service: user not found")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("sessions.service: internal error")
)
