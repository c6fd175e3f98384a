package servicerecord

import "errors"

var (
	// ErrRecordNotFound возвращается, когда запись обслуживания не найдена
	ErrRecordNotFound = errors.New("servicerecord.repository: service record not found")

	// ErrNumberTaken возвращается при нарушении уникальности номера записи
	ErrNumberTaken = errors.New("servicerecord.repository: record number already exists")

	// ErrRecordInUse возвращается при удалении записи, по которой есть платежи
	ErrRecordInUse = errors.New("servicerecord.repository: service record has payments")

	// ErrBrokenReference возвращается, если автомобиль или пакет удалены в процессе записи
	ErrBrokenReference = errors.New("servicerecord.repository: car or package does not exist")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("servicerecord.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("servicerecord.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("servicerecord.repository: failed to scan row")
)
