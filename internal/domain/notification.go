package domain

import "time"

type NotificationType string

const (
	NotificationRentalRequest      NotificationType = "RENTAL_REQUEST"
	NotificationRentalApproved     NotificationType = "RENTAL_APPROVED"
	NotificationRentalDenied       NotificationType = "RENTAL_DENIED"
	NotificationCollectionRequest  NotificationType = "COLLECTION_REQUEST"
	NotificationCollectionApproved NotificationType = "COLLECTION_APPROVED"
	NotificationCollectionDenied   NotificationType = "COLLECTION_DENIED"
)

type Notification struct {
	ID         int32            `json:"id"`
	UserID     int32            `json:"user_id"`
	Type       NotificationType `json:"type"`
	Message    string           `json:"message"`
	RelatedURL string           `json:"related_url,omitempty"`
	IsRead     bool             `json:"is_read"`
	CreatedOn  time.Time        `json:"created_on"`
}
