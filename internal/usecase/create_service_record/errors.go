package create_service_record

import "errors"

var (
	// ErrCarNotFound возвращается, когда автомобиль не найден или недоступен пользователю
	ErrCarNotFound = errors.New("create_service_record: car not found")

	// ErrPackageNotFound возвращается, когда пакет не найден или недоступен пользователю
	ErrPackageNotFound = errors.New("create_service_record: package not found")

	// ErrServiceDateInFuture возвращается, когда дата обслуживания слишком далеко в будущем
	ErrServiceDateInFuture = errors.New("create_service_record: service date is too far in the future")

	// ErrNumberTaken возвращается, когда номер записи уже занят
	ErrNumberTaken = errors.New("create_service_record: record number already exists")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_service_record: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_service_record: internal error")
)
