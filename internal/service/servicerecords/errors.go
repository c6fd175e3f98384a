package servicerecords

import "errors"

var (
	// ErrRecordNotFound возвращается, когда запись обслуживания не найдена
	ErrRecordNotFound = errors.New("servicerecords.service: service record not found")

	// ErrAccessDenied возвращается, когда запись принадлежит другому пользователю
	ErrAccessDenied = errors.New("servicerecords.service: access denied")

	// ErrCarNotFound возвращается, когда автомобиль не найден или недоступен пользователю
	ErrCarNotFound = errors.New("servicerecords.service: car not found")

	// ErrPackageNotFound возвращается, когда пакет не найден или недоступен пользователю
	ErrPackageNotFound = errors.New("servicerecords.service: package not found")

	// ErrNumberTaken возвращается, если номер записи уже существует
	ErrNumberTaken = errors.New("servicerecords.service: record number already exists")

	// ErrServiceDateInFuture возвращается, если дата обслуживания дальше чем на день вперед
	ErrServiceDateInFuture = errors.New("servicerecords.service: service date is too far in the future")

	// ErrExceedsBalance возвращается, если завершенные платежи записи превышают цену нового пакета
	ErrExceedsBalance = errors.New("servicerecords.service: payment exceeds outstanding balance")

	// ErrRecordInUse возвращается при удалении записи, по которой есть платежи
	ErrRecordInUse = errors.New("servicerecords.service: service record has payments")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("servicerecords.service: invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("servicerecords.service: internal error")
)
