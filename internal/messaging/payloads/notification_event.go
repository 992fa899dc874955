package payloads

import "time"

// NotificationEvent mirrors a notification row published to RabbitMQ for
// out-of-band delivery channels. The database row stays the source of truth;
// losing an event loses nothing the API cannot serve.
type NotificationEvent struct {
	NotificationID string    `json:"notification_id"`
	UserID         string    `json:"user_id"`
	Message        string    `json:"message"`
	CreatedAt      time.Time `json:"created_at"`
}
