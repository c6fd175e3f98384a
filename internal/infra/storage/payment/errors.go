package payment

import "errors"

var (
	// ErrPaymentNotFound возвращается, когда платеж не найден
	ErrPaymentNotFound = errors.New("payment.repository: payment not found")

	// ErrNumberTaken возвращается при нарушении уникальности номера платежа
	ErrNumberTaken = errors.New("payment.repository: payment number already exists")

	// ErrBrokenReference возвращается, если запись обслуживания удалена в процессе оплаты
	ErrBrokenReference = errors.New("payment.repository: service record does not exist")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("payment.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("payment.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("payment.repository: failed to scan row")
)
