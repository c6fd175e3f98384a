package servicerecords

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CarWashService/internal/domain"
	carRepo "github.com/m04kA/SMC-CarWashService/internal/infra/storage/car"
	recordRepo "github.com/m04kA/SMC-CarWashService/internal/infra/storage/servicerecord"
	packageRepo "github.com/m04kA/SMC-CarWashService/internal/infra/storage/washpackage"
	"github.com/m04kA/SMC-CarWashService/internal/service/servicerecords/models"
	"github.com/m04kA/SMC-CarWashService/pkg/logger"
)

var today = time.Date(2025, 6, 10, 15, 0, 0, 0, time.UTC)

type fakeRecords struct {
	items    map[int64]*domain.ServiceRecord
	withPays map[int64]bool
	locked   []int64
}

func (f *fakeRecords) GetByIDForUpdate(ctx context.Context, id int64) (*domain.ServiceRecord, error) {
	r, err := f.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	f.locked = append(f.locked, id)
	return r, nil
}

func (f *fakeRecords) GetByID(_ context.Context, id int64) (*domain.ServiceRecord, error) {
	r, ok := f.items[id]
	if !ok {
		return nil, recordRepo.ErrRecordNotFound
	}
	cp := *r
	return &cp, nil
}

func (f *fakeRecords) List(_ context.Context, ownerID *int64) ([]*domain.ServiceRecord, error) {
	var list []*domain.ServiceRecord
	for _, r := range f.items {
		if ownerID == nil || r.UserID == *ownerID {
			list = append(list, r)
		}
	}
	return list, nil
}

func (f *fakeRecords) Update(_ context.Context, record *domain.ServiceRecord) error {
	for id, r := range f.items {
		if id != record.ID && r.RecordNumber == record.RecordNumber {
			return recordRepo.ErrNumberTaken
		}
	}
	f.items[record.ID] = record
	return nil
}

func (f *fakeRecords) Delete(_ context.Context, id int64) error {
	if f.withPays[id] {
		return recordRepo.ErrRecordInUse
	}
	delete(f.items, id)
	return nil
}

// fakePayments сумма завершенных платежей по записи
type fakePayments map[int64]float64

func (f fakePayments) SumCompleted(_ context.Context, recordID int64, _ int64) (float64, error) {
	return f[recordID], nil
}

type fakeCars map[int64]*domain.Car

func (f fakeCars) GetByID(_ context.Context, id int64) (*domain.Car, error) {
	c, ok := f[id]
	if !ok {
		return nil, carRepo.ErrCarNotFound
	}
	return c, nil
}

type fakePackages map[int64]*domain.Package

func (f fakePackages) GetByID(_ context.Context, id int64) (*domain.Package, error) {
	p, ok := f[id]
	if !ok {
		return nil, packageRepo.ErrPackageNotFound
	}
	return p, nil
}

type passthroughTx struct{}

func (passthroughTx) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type recorder struct {
	actions []domain.ActivityAction
}

func (r *recorder) Record(_ context.Context, a *domain.Activity) {
	r.actions = append(r.actions, a.Action)
}

var (
	owner = domain.Actor{UserID: 7, Role: domain.RoleUser}
	other = domain.Actor{UserID: 8, Role: domain.RoleUser}
	admin = domain.Actor{UserID: 1, Role: domain.RoleAdmin}
)

func newFixture() (*Service, *fakeRecords, *recorder) {
	records := &fakeRecords{
		items: map[int64]*domain.ServiceRecord{
			1: {ID: 1, UserID: 7, RecordNumber: "SRV-2025-0001", ServiceDate: today, CarID: 10, PackageID: 20},
			2: {ID: 2, UserID: 8, RecordNumber: "SRV-2025-0002", ServiceDate: today, CarID: 11, PackageID: 21},
		},
		withPays: map[int64]bool{},
	}
	cars := fakeCars{10: {ID: 10, UserID: 7}, 11: {ID: 11, UserID: 8}, 12: {ID: 12, UserID: 7}}
	pkgs := fakePackages{
		20: {ID: 20, UserID: 7, PackagePrice: 5000},
		21: {ID: 21, UserID: 8, PackagePrice: 5000},
		22: {ID: 22, UserID: 7, PackagePrice: 2000},
		23: {ID: 23, UserID: 7, PackagePrice: 3000},
	}
	payments := fakePayments{1: 3000}
	rec := &recorder{}

	s := NewService(records, payments, cars, pkgs, passthroughTx{}, rec, logger.NewNop())
	s.now = func() time.Time { return today }
	return s, records, rec
}

func TestService_ListScope(t *testing.T) {
	s, _, _ := newFixture()

	mine, err := s.List(context.Background(), owner)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, "2025-06-10", mine[0].ServiceDate)

	all, err := s.List(context.Background(), admin)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestService_Update(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		actor   domain.Actor
		id      int64
		req     models.UpdateRecordRequest
		wantErr error
	}{
		{
			name:  "moves to another own car",
			actor: owner, id: 1,
			req: models.UpdateRecordRequest{ServiceDate: today.AddDate(0, 0, -1), CarID: 12, PackageID: 20},
		},
		{
			name:  "tomorrow is allowed",
			actor: owner, id: 1,
			req: models.UpdateRecordRequest{ServiceDate: today.AddDate(0, 0, 1), CarID: 10, PackageID: 20},
		},
		{
			name:  "two days ahead rejected",
			actor: owner, id: 1,
			req:     models.UpdateRecordRequest{ServiceDate: today.AddDate(0, 0, 2), CarID: 10, PackageID: 20},
			wantErr: ErrServiceDateInFuture,
		},
		{
			name:  "foreign car is invisible",
			actor: owner, id: 1,
			req:     models.UpdateRecordRequest{ServiceDate: today, CarID: 11, PackageID: 20},
			wantErr: ErrCarNotFound,
		},
		{
			name:  "unknown package",
			actor: owner, id: 1,
			req:     models.UpdateRecordRequest{ServiceDate: today, CarID: 10, PackageID: 99},
			wantErr: ErrPackageNotFound,
		},
		{
			name:  "foreign record",
			actor: other, id: 1,
			req:     models.UpdateRecordRequest{ServiceDate: today, CarID: 11, PackageID: 21},
			wantErr: ErrAccessDenied,
		},
		{
			name:  "duplicate number",
			actor: owner, id: 1,
			req:     models.UpdateRecordRequest{RecordNumber: "srv-2025-0002", ServiceDate: today, CarID: 10, PackageID: 20},
			wantErr: ErrNumberTaken,
		},
		{
			name:  "cheaper package below paid amount",
			actor: owner, id: 1,
			req:     models.UpdateRecordRequest{ServiceDate: today, CarID: 10, PackageID: 22},
			wantErr: ErrExceedsBalance,
		},
		{
			name:  "package priced exactly at paid amount",
			actor: owner, id: 1,
			req: models.UpdateRecordRequest{ServiceDate: today, CarID: 10, PackageID: 23},
		},
		{
			name:  "missing car",
			actor: owner, id: 1,
			req:     models.UpdateRecordRequest{ServiceDate: today, PackageID: 20},
			wantErr: ErrInvalidInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, _, rec := newFixture()

			resp, err := s.Update(ctx, tt.actor, tt.id, &tt.req)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Empty(t, rec.actions)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.req.CarID, resp.Car.ID)
			assert.Equal(t, "SRV-2025-0001", resp.RecordNumber)
			assert.Equal(t, []domain.ActivityAction{domain.ActionServiceUpdate}, rec.actions)
		})
	}
}

func TestService_Update_LocksRecord(t *testing.T) {
	s, records, _ := newFixture()

	_, err := s.Update(context.Background(), owner, 1, &models.UpdateRecordRequest{ServiceDate: today, CarID: 10, PackageID: 22})
	require.ErrorIs(t, err, ErrExceedsBalance)

	assert.Equal(t, []int64{1}, records.locked)
	assert.Equal(t, int64(20), records.items[1].PackageID, "rejected update keeps the package")
}

func TestService_Delete(t *testing.T) {
	ctx := context.Background()
	s, records, _ := newFixture()

	records.withPays[1] = true
	assert.ErrorIs(t, s.Delete(ctx, owner, 1), ErrRecordInUse)

	records.withPays[1] = false
	assert.ErrorIs(t, s.Delete(ctx, other, 1), ErrAccessDenied)
	require.NoError(t, s.Delete(ctx, admin, 1))

	_, err := s.GetByID(ctx, owner, 1)
	assert.ErrorIs(t, err, ErrRecordNotFound)
}
