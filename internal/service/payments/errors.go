package payments

import "errors"

var (
	// ErrPaymentNotFound возвращается, когда платеж не найден
	ErrPaymentNotFound = errors.New("payments.service: payment not found")

	// ErrAccessDenied возвращается, когда платеж принадлежит другому пользователю
	ErrAccessDenied = errors.New("payments.service: access denied")

	// ErrInvalidStatus возвращается при неизвестном статусе платежа
	ErrInvalidStatus = errors.New("payments.service: invalid payment status")

	// ErrExceedsBalance возвращается, если сумма завершенных платежей превысит цену пакета
	ErrExceedsBalance = errors.New("payments.service: payment exceeds outstanding balance")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("payments.service: internal error")
)
