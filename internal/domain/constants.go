package domain

// Time format constants
const (
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// Business validation constants
const (
	MinUsernameLength      = 3
	MaxUsernameLength      = 50
	MinPasswordLength      = 6
	MaxPackageNameLength   = 100
	MaxServiceDateAheadDay = 1 // service date may be at most one day in the future
)

// Activity listing limits
const (
	DefaultActivityLimit = 50
	MaxActivityLimit     = 200
)

// Report window limits
const (
	DefaultReportDays = 7
	MinReportDays     = 1
	MaxReportDays     = 90
)

// Upload directories inside the file store
const (
	ProfileImagesDir = "profiles"
	CarImagesDir     = "cars"
)
