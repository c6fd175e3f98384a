package domain

import "time"

// Package represents a priced car-wash offering
type Package struct {
	ID                 int64
	UserID             int64
	PackageNumber      string
	PackageName        string
	PackageDescription string
	PackagePrice       float64
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// PackageSummary is the short package view embedded into service records and payments
type PackageSummary struct {
	ID           int64
	PackageName  string
	PackagePrice float64
}
