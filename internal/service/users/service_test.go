package users

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CarWashService/internal/domain"
	userRepo "github.com/m04kA/SMC-CarWashService/internal/infra/storage/user"
	carModels "github.com/m04kA/SMC-CarWashService/internal/service/cars/models"
	packageModels "github.com/m04kA/SMC-CarWashService/internal/service/packages/models"
	paymentModels "github.com/m04kA/SMC-CarWashService/internal/service/payments/models"
	recordModels "github.com/m04kA/SMC-CarWashService/internal/service/servicerecords/models"
	sessionModels "github.com/m04kA/SMC-CarWashService/internal/service/sessions/models"
	"github.com/m04kA/SMC-CarWashService/pkg/logger"
)

type fakeUsers map[int64]*domain.User

func (f fakeUsers) List(_ context.Context) ([]*domain.User, error) {
	list := make([]*domain.User, 0, len(f))
	for _, u := range f {
		list = append(list, u)
	}
	return list, nil
}

func (f fakeUsers) GetByID(_ context.Context, id int64) (*domain.User, error) {
	if u, ok := f[id]; ok {
		return u, nil
	}
	return nil, userRepo.ErrUserNotFound
}

type carLister struct{}

func (carLister) ListByOwner(_ context.Context, userID int64) ([]carModels.CarResponse, error) {
	return []carModels.CarResponse{{ID: 1, UserID: userID, PlateNumber: "RAB 123A"}}, nil
}

type packageLister struct{}

func (packageLister) ListByOwner(_ context.Context, userID int64) ([]packageModels.PackageResponse, error) {
	return []packageModels.PackageResponse{{ID: 2, UserID: userID}}, nil
}

type recordLister struct{}

func (recordLister) ListByOwner(_ context.Context, _ int64) ([]recordModels.ServiceRecordResponse, error) {
	return []recordModels.ServiceRecordResponse{}, nil
}

type paymentLister struct{ err error }

func (l paymentLister) ListByOwner(_ context.Context, _ int64) ([]paymentModels.PaymentResponse, error) {
	if l.err != nil {
		return nil, l.err
	}
	return []paymentModels.PaymentResponse{{ID: 3}}, nil
}

type sessionLister struct{}

func (sessionLister) ListForUser(_ context.Context, _ int64) ([]sessionModels.SessionResponse, error) {
	return []sessionModels.SessionResponse{{SessionID: "s-1"}}, nil
}

func newService(payments paymentLister) *Service {
	users := fakeUsers{
		7: {ID: 7, Username: "owner", Role: domain.RoleUser, Provider: domain.ProviderLocal},
		1: {ID: 1, Username: "root", Role: domain.RoleAdmin, Provider: domain.ProviderLocal},
	}
	return NewService(users, carLister{}, packageLister{}, recordLister{}, payments, sessionLister{}, logger.NewNop())
}

func TestService_List(t *testing.T) {
	s := newService(paymentLister{})

	list, err := s.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, list, 2)
}

func TestService_Details(t *testing.T) {
	s := newService(paymentLister{})

	details, err := s.Details(context.Background(), 7)
	require.NoError(t, err)

	assert.Equal(t, "owner", details.User.Username)
	require.Len(t, details.Cars, 1)
	assert.Equal(t, int64(7), details.Cars[0].UserID)
	assert.Len(t, details.Packages, 1)
	assert.NotNil(t, details.Services)
	assert.Len(t, details.Payments, 1)
	assert.Equal(t, "s-1", details.Sessions[0].SessionID)
}

func TestService_Details_Errors(t *testing.T) {
	_, err := newService(paymentLister{}).Details(context.Background(), 99)
	assert.ErrorIs(t, err, ErrUserNotFound)

	_, err = newService(paymentLister{err: errors.New("boom")}).Details(context.Background(), 7)
	assert.ErrorIs(t, err, ErrInternal)
}
