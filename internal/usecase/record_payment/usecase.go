package record_payment

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-CarWashService/internal/domain"
	paymentRepo "github.com/m04kA/SMC-CarWashService/internal/infra/storage/payment"
	recordRepo "github.com/m04kA/SMC-CarWashService/internal/infra/storage/servicerecord"
	"github.com/m04kA/SMC-CarWashService/internal/service/payments/models"
	"github.com/m04kA/SMC-CarWashService/pkg/validation"
)

// generatedNumberAttempts число попыток подобрать свободный сгенерированный номер
const generatedNumberAttempts = 5

// UseCase use case для регистрации платежа по записи обслуживания
type UseCase struct {
	paymentRepo PaymentRepository
	recordRepo  RecordRepository
	numbers     NumberGenerator
	txManager   TransactionManager
	activities  ActivityRecorder
	validator   *validation.Validator
	logger      Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	paymentRepo PaymentRepository,
	recordRepo RecordRepository,
	numbers NumberGenerator,
	txManager TransactionManager,
	activities ActivityRecorder,
	logger Logger,
) *UseCase {
	return &UseCase{
		paymentRepo: paymentRepo,
		recordRepo:  recordRepo,
		numbers:     numbers,
		txManager:   txManager,
		activities:  activities,
		validator:   validation.New(),
		logger:      logger,
	}
}

// Execute выполняет use case регистрации платежа.
// Запись обслуживания блокируется (FOR UPDATE), чтобы параллельные платежи
// не превысили цену пакета.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("RecordPayment: user=%d, record=%d, amount=%.2f, method=%s, status=%s",
		req.Actor.UserID, req.ServicePackageID, req.AmountPaid, req.PaymentMethod, req.Status)

	// 1. Валидация входных данных
	req.PaymentNumber = strings.ToUpper(strings.TrimSpace(req.PaymentNumber))
	if req.Status == "" {
		req.Status = string(domain.DefaultPaymentStatus)
	}
	if err := uc.validator.Struct(req); err != nil {
		uc.logger.Warn("RecordPayment: validation failed: %v", err)
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	// 2. Сохраняем платеж; коллизия сгенерированного номера прерывает
	// транзакцию, поэтому она повторяется целиком с новым номером
	generate := req.PaymentNumber == ""
	attempts := 1
	if generate {
		attempts = generatedNumberAttempts
	}

	var (
		result *domain.Payment
		err    error
	)
	for i := 0; i < attempts; i++ {
		number := req.PaymentNumber
		if generate {
			number = uc.numbers.PaymentNumber()
		}

		result, err = uc.create(ctx, req, number)
		if !errors.Is(err, ErrNumberTaken) {
			break
		}
	}
	if err != nil {
		return nil, err
	}

	uc.activities.Record(ctx, domain.NewActivity(req.Actor.UserID, domain.ActionPaymentCreate,
		"Payment recorded", fmt.Sprintf("Payment %s of %.2f recorded", result.PaymentNumber, result.AmountPaid),
		domain.EntityPayment, result.ID))

	uc.logger.Info("RecordPayment: successfully created payment id=%d", result.ID)

	resp := models.FromDomainPayment(result)
	return &resp, nil
}

// create блокирует запись обслуживания, проверяет остаток и вставляет платеж
// в одной сериализуемой транзакции
func (uc *UseCase) create(ctx context.Context, req *Request, number string) (*domain.Payment, error) {
	status := domain.PaymentStatus(req.Status)
	var result *domain.Payment

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// Блокируем запись обслуживания
		record, err := uc.recordRepo.GetByIDForUpdate(txCtx, req.ServicePackageID)
		if err != nil {
			if errors.Is(err, recordRepo.ErrRecordNotFound) {
				uc.logger.Warn("RecordPayment: record id=%d not found", req.ServicePackageID)
				return ErrRecordNotFound
			}
			uc.logger.Error("RecordPayment: failed to lock record id=%d: %v", req.ServicePackageID, err)
			return fmt.Errorf("%w: failed to lock record: %v", ErrInternal, err)
		}
		if !req.Actor.CanAccess(record.UserID) {
			uc.logger.Warn("RecordPayment: record id=%d is not visible to user=%d", record.ID, req.Actor.UserID)
			return ErrRecordNotFound
		}

		// Проверяем остаток только для завершенных платежей
		if status == domain.PaymentStatusCompleted {
			paid, err := uc.paymentRepo.SumCompleted(txCtx, record.ID, 0)
			if err != nil {
				uc.logger.Error("RecordPayment: failed to sum payments for record id=%d: %v", record.ID, err)
				return fmt.Errorf("%w: failed to sum payments: %v", ErrInternal, err)
			}

			price := packagePrice(record)
			if domain.ExceedsBalance(price, paid, req.AmountPaid) {
				uc.logger.Warn("RecordPayment: amount %.2f exceeds balance of record id=%d: price=%.2f, paid=%.2f",
					req.AmountPaid, record.ID, price, paid)
				return ErrExceedsBalance
			}
		}

		created, err := uc.paymentRepo.Create(txCtx, &domain.Payment{
			UserID:           req.Actor.UserID,
			PaymentNumber:    number,
			AmountPaid:       req.AmountPaid,
			PaymentDate:      req.PaymentDate,
			PaymentMethod:    domain.PaymentMethod(req.PaymentMethod),
			Status:           status,
			ServicePackageID: record.ID,
		})
		if err != nil {
			switch {
			case errors.Is(err, paymentRepo.ErrNumberTaken):
				uc.logger.Warn("RecordPayment: payment number %s already exists", number)
				return ErrNumberTaken
			case errors.Is(err, paymentRepo.ErrBrokenReference):
				return ErrRecordNotFound
			}
			uc.logger.Error("RecordPayment: failed to create payment: %v", err)
			return fmt.Errorf("%w: failed to create payment: %v", ErrInternal, err)
		}

		// Перечитываем платеж вместе с данными записи
		result, err = uc.paymentRepo.GetByID(txCtx, created.ID)
		if err != nil {
			uc.logger.Error("RecordPayment: failed to reload payment id=%d: %v", created.ID, err)
			return fmt.Errorf("%w: failed to reload payment: %v", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func packagePrice(record *domain.ServiceRecord) float64 {
	if record.Package == nil {
		return 0
	}
	return record.Package.PackagePrice
}
