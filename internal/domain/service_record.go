package domain

import "time"

// ServiceRecord represents one car-wash appointment: a car served with a package on a date
type ServiceRecord struct {
	ID           int64
	UserID       int64
	RecordNumber string
	ServiceDate  time.Time
	CarID        int64
	PackageID    int64
	CreatedAt    time.Time
	UpdatedAt    time.Time

	// Joined data for responses
	Car      *CarSummary
	Package  *PackageSummary
	Username string
}

// ServiceRecordSummary is the short record view embedded into payments
type ServiceRecordSummary struct {
	ID           int64
	RecordNumber string
	Car          CarSummary
	Package      PackageSummary
}

// ServiceDateAllowed reports whether the service date is not more than
// MaxServiceDateAheadDay days after now (compared by calendar day)
func ServiceDateAllowed(serviceDate, now time.Time) bool {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	day := time.Date(serviceDate.Year(), serviceDate.Month(), serviceDate.Day(), 0, 0, 0, 0, time.UTC)
	return !day.After(today.AddDate(0, 0, MaxServiceDateAheadDay))
}
