package washpackage

import "errors"

var (
	// ErrPackageNotFound возвращается, когда пакет услуг не найден
	ErrPackageNotFound = errors.New("package.repository: package not found")

	// ErrNumberTaken возвращается при нарушении уникальности номера пакета
	ErrNumberTaken = errors.New("package.repository: package number already exists")

	// ErrPackageInUse возвращается при удалении пакета, на который ссылаются записи обслуживания
	ErrPackageInUse = errors.New("package.repository: package is referenced by service records")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("package.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("package.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("package.repository: failed to scan row")
)
