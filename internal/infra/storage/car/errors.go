package car

import "errors"

var (
	// ErrCarNotFound возвращается, когда автомобиль не найден
	ErrCarNotFound = errors.New("car.repository: car not found")

	// ErrPlateTaken возвращается при нарушении уникальности номерного знака
	ErrPlateTaken = errors.New("car.repository: plate number already registered")

	// ErrCarInUse возвращается при удалении автомобиля, на который ссылаются записи обслуживания
	ErrCarInUse = errors.New("car.repository: car is referenced by service records")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("car.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("car.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("car.repository: failed to scan row")
)
