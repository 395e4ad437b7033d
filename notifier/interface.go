package notifier

import (
	"context"

	"github.com/essomba/schoolhub/model"
)

// NotificationPublisher hands a persisted notification to the delivery
// pipeline.
type NotificationPublisher interface {
	Publish(ctx context.Context, notification *model.Notification) error
}
