package record_payment

import "errors"

var (
	// ErrRecordNotFound возвращается, когда запись обслуживания не найдена или недоступна пользователю
	ErrRecordNotFound = errors.New("record_payment: service record not found")

	// ErrExceedsBalance возвращается, если сумма завершенных платежей превысит цену пакета
	ErrExceedsBalance = errors.New("record_payment: payment exceeds outstanding balance")

	// ErrNumberTaken возвращается, когда номер платежа уже занят
	ErrNumberTaken = errors.New("record_payment: payment number already exists")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("record_payment: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("record_payment: internal error")
)
