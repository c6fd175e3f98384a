package models

import (
	"time"

	"github.com/m04kA/SMC-CarWashService/internal/domain"
)

// ActivityResponse запись ленты активности
type ActivityResponse struct {
	ID          int64   `json:"_id"`
	UserID      int64   `json:"userId"`
	Action      string  `json:"action"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	EntityType  *string `json:"entityType,omitempty"`
	EntityID    *int64  `json:"entityId,omitempty"`
	CreatedAt   string  `json:"createdAt"`
}

// FromDomainActivity конвертирует domain.Activity в ActivityResponse
func FromDomainActivity(a *domain.Activity) ActivityResponse {
	return ActivityResponse{
		ID:          a.ID,
		UserID:      a.UserID,
		Action:      string(a.Action),
		Title:       a.Title,
		Description: a.Description,
		EntityType:  a.EntityType,
		EntityID:    a.EntityID,
		CreatedAt:   a.CreatedAt.Format(time.RFC3339),
	}
}

// FromDomainActivityList конвертирует список активностей
func FromDomainActivityList(list []*domain.Activity) []ActivityResponse {
	result := make([]ActivityResponse, 0, len(list))
	for _, a := range list {
		result = append(result, FromDomainActivity(a))
	}
	return result
}
