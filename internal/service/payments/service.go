package payments

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-CarWashService/internal/domain"
	paymentRepo "github.com/m04kA/SMC-CarWashService/internal/infra/storage/payment"
	"github.com/m04kA/SMC-CarWashService/internal/service/payments/models"
)

// Service сервис платежей.
// Регистрация платежа выполняется в usecase record_payment.
type Service struct {
	paymentRepo PaymentRepository
	recordRepo  RecordRepository
	txManager   TransactionManager
	activities  ActivityRecorder
	logger      Logger
	now         func() time.Time
}

// NewService создает новый экземпляр сервиса платежей
func NewService(
	paymentRepo PaymentRepository,
	recordRepo RecordRepository,
	txManager TransactionManager,
	activities ActivityRecorder,
	logger Logger,
) *Service {
	return &Service{
		paymentRepo: paymentRepo,
		recordRepo:  recordRepo,
		txManager:   txManager,
		activities:  activities,
		logger:      logger,
		now:         time.Now,
	}
}

// List возвращает платежи, доступные пользователю
func (s *Service) List(ctx context.Context, actor domain.Actor) ([]models.PaymentResponse, error) {
	s.logger.Info("List: fetching payments for user=%d, admin=%t", actor.UserID, actor.IsAdmin())

	list, err := s.paymentRepo.List(ctx, actor.OwnerScope())
	if err != nil {
		s.logger.Error("List: repository error for user=%d: %v", actor.UserID, err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainPaymentList(list), nil
}

// ListByOwner возвращает платежи конкретного пользователя
func (s *Service) ListByOwner(ctx context.Context, userID int64) ([]models.PaymentResponse, error) {
	return s.List(ctx, domain.Actor{UserID: userID, Role: domain.RoleUser})
}

// GetByID возвращает платеж с проверкой прав доступа
func (s *Service) GetByID(ctx context.Context, actor domain.Actor, id int64) (*models.PaymentResponse, error) {
	payment, err := s.get(ctx, "GetByID", actor, id)
	if err != nil {
		return nil, err
	}

	resp := models.FromDomainPayment(payment)
	return &resp, nil
}

// UpdateStatus меняет статус платежа.
// При переводе в completed проверяется, что оплата не превысит цену пакета.
func (s *Service) UpdateStatus(ctx context.Context, actor domain.Actor, id int64, req *models.UpdateStatusRequest) (*models.PaymentResponse, error) {
	status := domain.PaymentStatus(req.Status)
	s.logger.Info("UpdateStatus: payment id=%d to %s by user=%d", id, status, actor.UserID)

	if !status.IsValid() {
		s.logger.Warn("UpdateStatus: invalid status=%q", req.Status)
		return nil, ErrInvalidStatus
	}

	var result *domain.Payment
	err := s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		payment, err := s.get(txCtx, "UpdateStatus", actor, id)
		if err != nil {
			return err
		}

		if status == domain.PaymentStatusCompleted && !payment.IsCompleted() {
			if err := s.checkBalance(txCtx, payment); err != nil {
				return err
			}
		}

		now := s.now().UTC()
		if err := s.paymentRepo.UpdateStatus(txCtx, id, status, now); err != nil {
			if errors.Is(err, paymentRepo.ErrPaymentNotFound) {
				return ErrPaymentNotFound
			}
			s.logger.Error("UpdateStatus: repository error for payment id=%d: %v", id, err)
			return fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
		}

		payment.Status = status
		payment.UpdatedAt = now
		result = payment
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.activities.Record(ctx, domain.NewActivity(actor.UserID, domain.ActionPaymentStatus,
		"Payment status changed", fmt.Sprintf("Payment %s marked as %s", result.PaymentNumber, status),
		domain.EntityPayment, id))

	s.logger.Info("UpdateStatus: payment id=%d is now %s", id, status)
	resp := models.FromDomainPayment(result)
	return &resp, nil
}

// checkBalance блокирует запись обслуживания и сверяет сумму оплат с ценой пакета
func (s *Service) checkBalance(ctx context.Context, payment *domain.Payment) error {
	record, err := s.recordRepo.GetByIDForUpdate(ctx, payment.ServicePackageID)
	if err != nil {
		s.logger.Error("UpdateStatus: failed to lock record id=%d: %v", payment.ServicePackageID, err)
		return fmt.Errorf("%w: UpdateStatus - lock record: %v", ErrInternal, err)
	}

	paid, err := s.paymentRepo.SumCompleted(ctx, record.ID, payment.ID)
	if err != nil {
		s.logger.Error("UpdateStatus: failed to sum payments for record id=%d: %v", record.ID, err)
		return fmt.Errorf("%w: UpdateStatus - sum payments: %v", ErrInternal, err)
	}

	var price float64
	if record.Package != nil {
		price = record.Package.PackagePrice
	}

	if domain.ExceedsBalance(price, paid, payment.AmountPaid) {
		s.logger.Warn("UpdateStatus: payment id=%d exceeds balance: price=%.2f, paid=%.2f, amount=%.2f",
			payment.ID, price, paid, payment.AmountPaid)
		return ErrExceedsBalance
	}
	return nil
}

// Delete удаляет платеж
func (s *Service) Delete(ctx context.Context, actor domain.Actor, id int64) error {
	s.logger.Info("Delete: payment id=%d by user=%d", id, actor.UserID)

	payment, err := s.get(ctx, "Delete", actor, id)
	if err != nil {
		return err
	}

	if err := s.paymentRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, paymentRepo.ErrPaymentNotFound) {
			return ErrPaymentNotFound
		}
		s.logger.Error("Delete: repository error for payment id=%d: %v", id, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	s.activities.Record(ctx, domain.NewActivity(actor.UserID, domain.ActionPaymentDelete,
		"Payment deleted", fmt.Sprintf("Payment %s deleted", payment.PaymentNumber), domain.EntityPayment, id))

	s.logger.Info("Delete: payment id=%d deleted", id)
	return nil
}

func (s *Service) get(ctx context.Context, op string, actor domain.Actor, id int64) (*domain.Payment, error) {
	payment, err := s.paymentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, paymentRepo.ErrPaymentNotFound) {
			s.logger.Warn("%s: payment id=%d not found", op, id)
			return nil, ErrPaymentNotFound
		}
		s.logger.Error("%s: repository error for payment id=%d: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}

	if !actor.CanAccess(payment.UserID) {
		s.logger.Warn("%s: access denied for user=%d to payment id=%d", op, actor.UserID, id)
		return nil, ErrAccessDenied
	}

	return payment, nil
}
