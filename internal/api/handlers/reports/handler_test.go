package reports

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/m04kA/SMC-CarWashService/internal/api/middleware"
	"github.com/m04kA/SMC-CarWashService/internal/domain"
	reportService "github.com/m04kA/SMC-CarWashService/internal/service/reports"
	"github.com/m04kA/SMC-CarWashService/internal/service/reports/models"
	"github.com/m04kA/SMC-CarWashService/pkg/logger"
	"github.com/m04kA/SMC-CarWashService/pkg/validation"
)

type serviceMock struct {
	mock.Mock
}

func (m *serviceMock) Daily(ctx context.Context, actor domain.Actor, days int) ([]models.DailyReportResponse, error) {
	args := m.Called(ctx, actor, days)
	list, _ := args.Get(0).([]models.DailyReportResponse)
	return list, args.Error(1)
}

func (m *serviceMock) Summary(ctx context.Context, actor domain.Actor) (*models.SummaryResponse, error) {
	args := m.Called(ctx, actor)
	summary, _ := args.Get(0).(*models.SummaryResponse)
	return summary, args.Error(1)
}

var user = domain.Actor{UserID: 7, Role: domain.RoleUser}

func request(target string) *http.Request {
	r := httptest.NewRequest(http.MethodGet, target, nil)
	return r.WithContext(middleware.WithAuth(r.Context(), &domain.User{ID: user.UserID, Role: user.Role}, "sid"))
}

func TestHandler_Daily(t *testing.T) {
	t.Run("default period", func(t *testing.T) {
		svc := new(serviceMock)
		svc.On("Daily", mock.Anything, user, domain.DefaultReportDays).Return([]models.DailyReportResponse{
			{Date: "2025-10-15", TotalRevenue: 15000, TotalServices: 3, PopularPackage: "Basic wash"},
		}, nil)

		rec := httptest.NewRecorder()
		NewHandler(svc, logger.NewNop()).Daily(rec, request("/reports/daily"))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"popularPackage":"Basic wash"`)
		svc.AssertExpectations(t)
	})

	t.Run("out of range", func(t *testing.T) {
		svc := new(serviceMock)
		svc.On("Daily", mock.Anything, user, 365).Return(nil,
			fmt.Errorf("%w: %w", reportService.ErrInvalidInput, validation.NewError("days", "days must be between 1 and 90")))

		rec := httptest.NewRecorder()
		NewHandler(svc, logger.NewNop()).Daily(rec, request("/reports/daily?days=365"))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.JSONEq(t, `{"code":400,"message":"days must be between 1 and 90"}`, rec.Body.String())
	})

	t.Run("explicit zero is not the default", func(t *testing.T) {
		svc := new(serviceMock)
		svc.On("Daily", mock.Anything, user, 0).Return(nil,
			fmt.Errorf("%w: %w", reportService.ErrInvalidInput, validation.NewError("days", "days must be between 1 and 90")))

		rec := httptest.NewRecorder()
		NewHandler(svc, logger.NewNop()).Daily(rec, request("/reports/daily?days=0"))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.JSONEq(t, `{"code":400,"message":"days must be between 1 and 90"}`, rec.Body.String())
		svc.AssertExpectations(t)
	})

	t.Run("not a number", func(t *testing.T) {
		rec := httptest.NewRecorder()
		NewHandler(new(serviceMock), logger.NewNop()).Daily(rec, request("/reports/daily?days=week"))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestHandler_Summary(t *testing.T) {
	svc := new(serviceMock)
	svc.On("Summary", mock.Anything, user).Return(&models.SummaryResponse{TotalCars: 2, TotalRevenue: 30000}, nil)

	rec := httptest.NewRecorder()
	NewHandler(svc, logger.NewNop()).Summary(rec, request("/reports/summary"))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"totalCars":2,"totalPackages":0,"totalServices":0,"totalPayments":0,"totalRevenue":30000}`, rec.Body.String())
}
