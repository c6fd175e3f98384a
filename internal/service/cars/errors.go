package cars

import "errors"

var (
	// ErrCarNotFound возвращается, когда автомобиль не найден
	ErrCarNotFound = errors.New("cars.service: car not found")

	// ErrAccessDenied возвращается, когда автомобиль принадлежит другому пользователю
	ErrAccessDenied = errors.New("cars.service: access denied")

	// ErrPlateTaken возвращается, если номерной знак уже зарегистрирован
	ErrPlateTaken = errors.New("cars.service: plate number already registered")

	// ErrCarInUse возвращается при удалении автомобиля, на который ссылаются записи обслуживания
	ErrCarInUse = errors.New("cars.service: car has service records")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("cars.service: invalid input data")

	// ErrInvalidImage возвращается для файлов, не являющихся изображением
	ErrInvalidImage = errors.New("cars.service: unsupported image type")

	// ErrImageTooLarge возвращается, если изображение превышает допустимый размер
	ErrImageTooLarge = errors.New("cars.service: image is too large")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("cars.service: internal error")
)
