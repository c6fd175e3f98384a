package record_payment

import (
	"time"

	"github.com/m04kA/SMC-CarWashService/internal/domain"
	"github.com/m04kA/SMC-CarWashService/internal/service/payments/models"
)

// Request модель запроса на регистрацию платежа
type Request struct {
	Actor            domain.Actor `json:"-"`                                                                     // Кто регистрирует платеж (он же владелец)
	PaymentNumber    string       `json:"paymentNumber" validate:"max=30"`                                       // Номер платежа (пустой - будет сгенерирован)
	ServicePackageID int64        `json:"servicePackage" validate:"required,gt=0"`                               // ID оплачиваемой записи обслуживания
	AmountPaid       float64      `json:"amountPaid" validate:"gt=0"`                                            // Сумма
	PaymentDate      time.Time    `json:"paymentDate" validate:"required"`                                       // Дата платежа
	PaymentMethod    string       `json:"paymentMethod" validate:"oneof=cash mobile_money bank_transfer card"` // Способ оплаты
	Status           string       `json:"status" validate:"oneof=completed pending failed"`                      // Пустой - completed
}

// Response созданный платеж в формате API
type Response = models.PaymentResponse
