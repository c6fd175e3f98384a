package packages

import "errors"

var (
	// ErrPackageNotFound возвращается, когда пакет не найден
	ErrPackageNotFound = errors.New("packages.service: package not found")

	// ErrAccessDenied возвращается, когда пакет принадлежит другому пользователю
	ErrAccessDenied = errors.New("packages.service: access denied")

	// ErrNumberTaken возвращается, если номер пакета уже существует
	ErrNumberTaken = errors.New("packages.service: package number already exists")

	// ErrPackageInUse возвращается при удалении пакета, на который ссылаются записи обслуживания
	ErrPackageInUse = errors.New("packages.service: package has service records")

	// ErrPriceBelowPaid возвращается, если новая цена меньше уже оплаченной по одной из записей суммы
	ErrPriceBelowPaid = errors.New("packages.service: package price is below the amount already paid")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("packages.service: invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("packages.service: internal error")
)
