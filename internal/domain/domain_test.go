package domain

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestActor_Scope(t *testing.T) {
	user := Actor{UserID: 7, Role: RoleUser}
	admin := Actor{UserID: 1, Role: RoleAdmin}

	assert.True(t, user.CanAccess(7))
	assert.False(t, user.CanAccess(8))
	assert.True(t, admin.CanAccess(8))

	require.NotNil(t, user.OwnerScope())
	assert.Equal(t, int64(7), *user.OwnerScope())
	assert.Nil(t, admin.OwnerScope())
}

func TestServiceDateAllowed(t *testing.T) {
	now := time.Date(2025, time.June, 10, 23, 30, 0, 0, time.UTC)

	assert.True(t, ServiceDateAllowed(now.AddDate(0, -1, 0), now))
	assert.True(t, ServiceDateAllowed(time.Date(2025, time.June, 10, 0, 0, 0, 0, time.UTC), now))
	assert.True(t, ServiceDateAllowed(time.Date(2025, time.June, 11, 0, 0, 0, 0, time.UTC), now))
	assert.False(t, ServiceDateAllowed(time.Date(2025, time.June, 12, 0, 0, 0, 0, time.UTC), now))
}

func TestExceedsBalance(t *testing.T) {
	assert.False(t, ExceedsBalance(100, 0, 100))
	assert.False(t, ExceedsBalance(10.3, 0.1, 10.2))
	assert.True(t, ExceedsBalance(100, 60, 40.01))
	assert.True(t, ExceedsBalance(50, 50, 0.01))
}

func TestPaymentEnums(t *testing.T) {
	assert.True(t, PaymentMethodMobileMoney.IsValid())
	assert.False(t, PaymentMethod("cheque").IsValid())
	assert.True(t, PaymentStatusFailed.IsValid())
	assert.False(t, PaymentStatus("refunded").IsValid())
}

func TestSession_State(t *testing.T) {
	now := time.Date(2025, time.June, 10, 12, 0, 0, 0, time.UTC)
	s := &Session{LastActive: now.Add(-2 * time.Minute), ExpiresAt: now.Add(time.Hour)}

	assert.True(t, s.IsActive(now))
	assert.True(t, s.NeedsTouch(now, time.Minute))
	assert.False(t, s.NeedsTouch(now, 5*time.Minute))
	assert.False(t, s.IsActive(now.Add(2*time.Hour)))

	revoked := now
	s.RevokedAt = &revoked
	assert.False(t, s.IsActive(now))
}

func TestPercentChange(t *testing.T) {
	assert.Equal(t, 0.0, PercentChange(10, 0))
	assert.Equal(t, 50.0, PercentChange(150, 100))
	assert.Equal(t, -25.0, PercentChange(75, 100))
	assert.Equal(t, 33.33, PercentChange(4, 3))
}

func TestBuildDailyReports(t *testing.T) {
	end := time.Date(2025, time.June, 10, 15, 0, 0, 0, time.UTC)
	day := func(d int) time.Time { return time.Date(2025, time.June, d, 0, 0, 0, 0, time.UTC) }

	stats := []DailyStats{
		{Date: day(7), Revenue: 100, Services: 2, Cars: 2},
		{Date: day(8), Revenue: 150, Services: 3, Cars: 2, PopularPackage: "Full Wash"},
		{Date: day(10), Revenue: 50, Services: 1, Cars: 1, NewCustomers: 2},
	}

	reports := BuildDailyReports(stats, end, 3)
	require.Len(t, reports, 3)

	assert.Equal(t, day(10), reports[0].Date)
	assert.Equal(t, 50.0, reports[0].TotalRevenue)
	assert.Equal(t, 2, reports[0].NewCustomers)
	// предыдущий день без выручки
	assert.Equal(t, 0.0, reports[0].RevenueChange)

	assert.Equal(t, day(9), reports[1].Date)
	assert.Equal(t, 0.0, reports[1].TotalRevenue)
	assert.Equal(t, -100.0, reports[1].RevenueChange)

	assert.Equal(t, day(8), reports[2].Date)
	assert.Equal(t, "Full Wash", reports[2].PopularPackage)
	assert.Equal(t, 50.0, reports[2].RevenueChange)
	assert.Equal(t, 50.0, reports[2].ServicesChange)
}

func TestNewActivity(t *testing.T) {
	a := NewActivity(3, ActionCarCreate, "Car added", "RAB 123A", EntityCar, 12)
	require.NotNil(t, a.EntityType)
	require.NotNil(t, a.EntityID)
	assert.Equal(t, EntityCar, *a.EntityType)
	assert.Equal(t, int64(12), *a.EntityID)

	login := NewActivity(3, ActionLogin, "Signed in", "", "", 0)
	assert.Nil(t, login.EntityType)
	assert.Nil(t, login.EntityID)
}

func TestClipClientField(t *testing.T) {
	assert.Equal(t, "10.0.0.1", ClipClientField(" 10.0.0.1 "))
	assert.Len(t, []rune(ClipClientField(strings.Repeat("я", 100))), MaxClientFieldLength)
	assert.Equal(t, strings.Repeat("a", MaxClientFieldLength), ClipClientField(strings.Repeat("a", MaxClientFieldLength)))
}
