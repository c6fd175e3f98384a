package domain

import "time"

// ActivityAction identifies what happened
type ActivityAction string

const (
	ActionRegister      ActivityAction = "register"
	ActionLogin         ActivityAction = "login"
	ActionLogout        ActivityAction = "logout"
	ActionProfileUpdate ActivityAction = "profile_update"
	ActionSessionRevoke ActivityAction = "session_revoke"
	ActionCarCreate     ActivityAction = "car_create"
	ActionCarUpdate     ActivityAction = "car_update"
	ActionCarDelete     ActivityAction = "car_delete"
	ActionPackageCreate ActivityAction = "package_create"
	ActionPackageUpdate ActivityAction = "package_update"
	ActionPackageDelete ActivityAction = "package_delete"
	ActionServiceCreate ActivityAction = "service_create"
	ActionServiceUpdate ActivityAction = "service_update"
	ActionServiceDelete ActivityAction = "service_delete"
	ActionPaymentCreate ActivityAction = "payment_create"
	ActionPaymentStatus ActivityAction = "payment_status"
	ActionPaymentDelete ActivityAction = "payment_delete"
)

// Entity types referenced by activities
const (
	EntityUser    = "user"
	EntitySession = "session"
	EntityCar     = "car"
	EntityPackage = "package"
	EntityService = "service"
	EntityPayment = "payment"
)

// Activity is an entry of the user's activity feed
type Activity struct {
	ID          int64
	UserID      int64
	Action      ActivityAction
	Title       string
	Description string
	EntityType  *string
	EntityID    *int64
	CreatedAt   time.Time
}

// NewActivity builds an activity entry about an entity
func NewActivity(userID int64, action ActivityAction, title, description, entityType string, entityID int64) *Activity {
	a := &Activity{
		UserID:      userID,
		Action:      action,
		Title:       title,
		Description: description,
	}
	if entityType != "" {
		a.EntityType = &entityType
	}
	if entityID != 0 {
		a.EntityID = &entityID
	}
	return a
}
