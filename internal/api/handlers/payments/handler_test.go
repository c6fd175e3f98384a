package payments

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/m04kA/SMC-CarWashService/internal/api/middleware"
	"github.com/m04kA/SMC-CarWashService/internal/domain"
	paymentService "github.com/m04kA/SMC-CarWashService/internal/service/payments"
	"github.com/m04kA/SMC-CarWashService/internal/service/payments/models"
	recordPayment "github.com/m04kA/SMC-CarWashService/internal/usecase/record_payment"
	"github.com/m04kA/SMC-CarWashService/pkg/logger"
	"github.com/m04kA/SMC-CarWashService/pkg/validation"
)

type useCaseMock struct {
	mock.Mock
}

func (m *useCaseMock) Execute(ctx context.Context, req *recordPayment.Request) (*recordPayment.Response, error) {
	args := m.Called(ctx, req)
	resp, _ := args.Get(0).(*recordPayment.Response)
	return resp, args.Error(1)
}

type serviceMock struct {
	mock.Mock
}

func (m *serviceMock) List(ctx context.Context, actor domain.Actor) ([]models.PaymentResponse, error) {
	args := m.Called(ctx, actor)
	list, _ := args.Get(0).([]models.PaymentResponse)
	return list, args.Error(1)
}

func (m *serviceMock) GetByID(ctx context.Context, actor domain.Actor, id int64) (*models.PaymentResponse, error) {
	args := m.Called(ctx, actor, id)
	payment, _ := args.Get(0).(*models.PaymentResponse)
	return payment, args.Error(1)
}

func (m *serviceMock) UpdateStatus(ctx context.Context, actor domain.Actor, id int64, req *models.UpdateStatusRequest) (*models.PaymentResponse, error) {
	args := m.Called(ctx, actor, id, req)
	payment, _ := args.Get(0).(*models.PaymentResponse)
	return payment, args.Error(1)
}

func (m *serviceMock) Delete(ctx context.Context, actor domain.Actor, id int64) error {
	return m.Called(ctx, actor, id).Error(0)
}

var actor = domain.Actor{UserID: 7, Role: domain.RoleUser}

func withActor(r *http.Request, vars map[string]string) *http.Request {
	r = r.WithContext(middleware.WithAuth(r.Context(), &domain.User{ID: actor.UserID, Role: actor.Role}, "sid"))
	if vars != nil {
		r = mux.SetURLVars(r, vars)
	}
	return r
}

func TestHandler_Create(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		setup      func(m *useCaseMock)
		wantStatus int
		wantBody   string
	}{
		{
			name: "recorded",
			body: `{"amountPaid":5000,"paymentDate":"2025-10-15","paymentMethod":"cash","status":"","servicePackage":"10"}`,
			setup: func(m *useCaseMock) {
				m.On("Execute", mock.Anything, &recordPayment.Request{
					Actor:            actor,
					AmountPaid:       5000,
					PaymentDate:      time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC),
					PaymentMethod:    "cash",
					ServicePackageID: 10,
				}).Return(&recordPayment.Response{ID: 1, PaymentNumber: "PAY-2025-0001", Status: "completed"}, nil)
			},
			wantStatus: http.StatusCreated,
		},
		{
			name: "validation message",
			body: `{"amountPaid":0,"paymentDate":"2025-10-15","paymentMethod":"cash","servicePackage":"10"}`,
			setup: func(m *useCaseMock) {
				m.On("Execute", mock.Anything, mock.Anything).Return(nil,
					fmt.Errorf("%w: %w", recordPayment.ErrInvalidInput, validation.NewError("amountPaid", "amountPaid must be greater than 0")))
			},
			wantStatus: http.StatusBadRequest,
			wantBody:   `{"code":400,"message":"amountPaid must be greater than 0"}`,
		},
		{
			name:       "bad date",
			body:       `{"amountPaid":10,"paymentDate":"yesterday","paymentMethod":"cash","servicePackage":"10"}`,
			setup:      func(m *useCaseMock) {},
			wantStatus: http.StatusBadRequest,
			wantBody:   `{"code":400,"message":"Invalid payment date, expected YYYY-MM-DD"}`,
		},
		{
			name: "record not visible",
			body: `{"amountPaid":10,"paymentDate":"2025-10-15","paymentMethod":"cash","servicePackage":"99"}`,
			setup: func(m *useCaseMock) {
				m.On("Execute", mock.Anything, mock.Anything).Return(nil, recordPayment.ErrRecordNotFound)
			},
			wantStatus: http.StatusNotFound,
			wantBody:   `{"code":404,"message":"Service record not found"}`,
		},
		{
			name: "exceeds balance",
			body: `{"amountPaid":9000,"paymentDate":"2025-10-15","paymentMethod":"card","servicePackage":10}`,
			setup: func(m *useCaseMock) {
				m.On("Execute", mock.Anything, mock.Anything).Return(nil, recordPayment.ErrExceedsBalance)
			},
			wantStatus: http.StatusConflict,
			wantBody:   `{"code":409,"message":"Payment exceeds outstanding balance"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := new(useCaseMock)
			tt.setup(uc)

			rec := httptest.NewRecorder()
			NewHandler(uc, new(serviceMock), logger.NewNop()).Create(rec,
				withActor(httptest.NewRequest(http.MethodPost, "/payment", strings.NewReader(tt.body)), nil))

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantBody != "" {
				assert.JSONEq(t, tt.wantBody, rec.Body.String())
			} else {
				assert.Contains(t, rec.Body.String(), `"paymentNumber":"PAY-2025-0001"`)
			}
			uc.AssertExpectations(t)
		})
	}
}

func TestHandler_UpdateStatus(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantMsg    string
	}{
		{name: "changed", wantStatus: http.StatusOK},
		{name: "unknown status", err: paymentService.ErrInvalidStatus, wantStatus: http.StatusBadRequest, wantMsg: "Status must be one of: completed, pending, failed"},
		{name: "exceeds balance", err: paymentService.ErrExceedsBalance, wantStatus: http.StatusConflict, wantMsg: "Payment exceeds outstanding balance"},
		{name: "foreign payment", err: paymentService.ErrAccessDenied, wantStatus: http.StatusForbidden, wantMsg: "You do not have access to this payment"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(serviceMock)
			call := svc.On("UpdateStatus", mock.Anything, actor, int64(1), &models.UpdateStatusRequest{Status: "completed"})
			if tt.err != nil {
				call.Return(nil, tt.err)
			} else {
				call.Return(&models.PaymentResponse{ID: 1, Status: "completed"}, nil)
			}

			rec := httptest.NewRecorder()
			NewHandler(new(useCaseMock), svc, logger.NewNop()).UpdateStatus(rec, withActor(
				httptest.NewRequest(http.MethodPatch, "/payment/1/status", strings.NewReader(`{"status":"completed"}`)),
				map[string]string{"id": "1"}))

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantMsg != "" {
				assert.JSONEq(t, fmt.Sprintf(`{"code":%d,"message":%q}`, tt.wantStatus, tt.wantMsg), rec.Body.String())
			}
			svc.AssertExpectations(t)
		})
	}
}

func TestHandler_GetAndDelete(t *testing.T) {
	svc := new(serviceMock)
	svc.On("GetByID", mock.Anything, actor, int64(2)).Return(nil, paymentService.ErrPaymentNotFound)
	svc.On("Delete", mock.Anything, actor, int64(3)).Return(nil)
	h := NewHandler(new(useCaseMock), svc, logger.NewNop())

	rec := httptest.NewRecorder()
	h.Get(rec, withActor(httptest.NewRequest(http.MethodGet, "/payment/2", nil), map[string]string{"id": "2"}))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = httptest.NewRecorder()
	h.Delete(rec, withActor(httptest.NewRequest(http.MethodDelete, "/payment/3", nil), map[string]string{"id": "3"}))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"message":"Payment deleted successfully"}`, rec.Body.String())
}
