package domain

import "time"

// Car represents a vehicle registered by a user
type Car struct {
	ID          int64
	UserID      int64
	PlateNumber string
	CarType     string
	CarSize     string
	DriverName  string
	PhoneNumber string
	Image       *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// CarSummary is the short car view embedded into service records and payments
type CarSummary struct {
	ID          int64
	PlateNumber string
	CarType     string
	DriverName  string
}
